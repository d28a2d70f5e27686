package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"mcbridge/internal/bridge"
	"mcbridge/internal/config"
	"mcbridge/internal/database"
	"mcbridge/internal/minecraft"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	fmt.Println("🌉 Minecraft ↔ Discord Chat Bridge Starting...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.BotToken == "" || cfg.GuildID == "" {
		log.Fatal("DISCORD_BOT_TOKEN and DISCORD_GUILD_ID must be set")
	}

	// Initialize stats database
	fmt.Println("🗄️ Initializing stats database...")
	db, err := database.NewDatabase(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Start the game server loop
	fmt.Println("🎮 Starting game server loop...")
	server := minecraft.NewServer(db, nil)
	go server.Run()
	defer server.Stop()

	// Build the bridge
	fmt.Println("🌉 Connecting bridge to Discord...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	b, err := newBuilder(cfg).Build(ctx, cfg.BotToken, cfg.GuildID, server)
	if err != nil {
		log.Fatalf("Failed to build bridge: %v", err)
	}
	defer b.Close()

	showChannels(b)

	if cfg.AnnounceStartup {
		b.SendToDiscord("The server is now back online.")
	}

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	fmt.Println("✅ Bridge is running. Press Ctrl+C to stop.")
	<-stop

	fmt.Println("🛑 Shutting down bridge...")
}

// newBuilder maps the environment configuration onto the bridge
// builder. Unset formats keep the builder defaults.
func newBuilder(cfg *config.Config) *bridge.Builder {
	builder := bridge.NewBuilder().
		AddChannels(cfg.Channels).
		EnableTTS(cfg.TTS).
		IgnoreBots(cfg.IgnoreBots).
		SendAchievements(cfg.SendAchievements).
		SendConnects(cfg.SendConnects).
		SendDisconnects(cfg.SendDisconnects).
		SendDeaths(cfg.SendDeaths).
		SendMessages(cfg.SendMessages)

	if cfg.MinecraftChatFormat != "" {
		builder.MinecraftChatFormat(cfg.MinecraftChatFormat)
	}
	if cfg.DiscordJoinFormat != "" {
		builder.DiscordJoinFormat(cfg.DiscordJoinFormat)
	}
	if cfg.DiscordPartFormat != "" {
		builder.DiscordPartFormat(cfg.DiscordPartFormat)
	}
	if cfg.DiscordAchievementFormat != "" {
		builder.DiscordAchievementFormat(cfg.DiscordAchievementFormat)
	}
	if cfg.DiscordDeathFormat != "" {
		builder.DiscordDeathFormat(cfg.DiscordDeathFormat)
	}
	if cfg.DiscordMessageFormat != "" {
		builder.DiscordMessageFormat(cfg.DiscordMessageFormat)
	}

	return builder
}

// showChannels displays the resolved relay targets
func showChannels(b *bridge.Bridge) {
	channels := b.Channels()
	if len(channels) == 0 {
		fmt.Println("\n⚠️ No matching channels found in the guild")
		return
	}

	fmt.Println("\n🔌 Relaying to channels:")
	for _, channel := range channels {
		fmt.Printf("  ✅ #%s\n", channel.Name)
	}
	fmt.Println()
}
