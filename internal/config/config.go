package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the bridge's flat key/value configuration, read once at
// startup from the environment. The defaults double as the contract for
// absent keys.
type Config struct {
	// Authentication
	BotToken string `env:"DISCORD_BOT_TOKEN"`
	GuildID  string `env:"DISCORD_GUILD_ID"`

	// Bridge settings
	Channels   []string `env:"BRIDGE_CHANNELS" envSeparator:","`
	TTS        bool     `env:"BRIDGE_TTS" envDefault:"false"`
	IgnoreBots bool     `env:"BRIDGE_IGNORE_BOTS" envDefault:"false"`

	// Message categories, each independently toggleable
	SendAchievements bool `env:"MESSAGES_ACHIEVEMENTS" envDefault:"true"`
	SendConnects     bool `env:"MESSAGES_CONNECTS" envDefault:"true"`
	SendDisconnects  bool `env:"MESSAGES_DISCONNECTS" envDefault:"true"`
	SendDeaths       bool `env:"MESSAGES_DEATHS" envDefault:"true"`
	SendMessages     bool `env:"MESSAGES_CHAT" envDefault:"true"`
	AnnounceStartup  bool `env:"MESSAGES_STARTUP" envDefault:"true"`

	// Message formats (positional %N$s templates)
	MinecraftChatFormat      string `env:"FORMATS_MINECRAFT_CHAT"`
	DiscordJoinFormat        string `env:"FORMATS_DISCORD_JOIN"`
	DiscordPartFormat        string `env:"FORMATS_DISCORD_PART"`
	DiscordAchievementFormat string `env:"FORMATS_DISCORD_ACHIEVEMENT"`
	DiscordDeathFormat       string `env:"FORMATS_DISCORD_DEATH"`
	DiscordMessageFormat     string `env:"FORMATS_DISCORD_MESSAGE"`

	// Stats database
	DatabasePath string `env:"DATABASE_PATH" envDefault:"./bridge.db"`

	// Bound on construction-time network calls
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"30s"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %v", err)
	}
	return cfg, nil
}
