package bridge

import (
	"context"
	"fmt"

	"mcbridge/internal/format"
	"mcbridge/internal/platforms/discord"
	"mcbridge/internal/types"
)

// settings is the immutable configuration snapshot a Bridge is built
// from. It is produced by Builder.snapshot and never mutated afterwards,
// so both event goroutines read it without synchronization.
type settings struct {
	channels   map[string]struct{}
	tts        bool
	ignoreBots bool

	sendAchievements bool
	sendConnects     bool
	sendDisconnects  bool
	sendDeaths       bool
	sendMessages     bool

	minecraftChatFormat      string
	discordJoinFormat        string
	discordPartFormat        string
	discordAchievementFormat string
	discordDeathFormat       string
	discordMessageFormat     string
}

// Builder accumulates bridge settings and produces a connected Bridge.
// All setters are chainable. The zero toggles default to: TTS off, bot
// messages relayed, every message category enabled.
type Builder struct {
	cfg settings
}

// NewBuilder creates a builder with the default settings.
func NewBuilder() *Builder {
	return &Builder{cfg: settings{
		channels:         make(map[string]struct{}),
		sendAchievements: true,
		sendConnects:     true,
		sendDisconnects:  true,
		sendDeaths:       true,
		sendMessages:     true,

		minecraftChatFormat:      "<%1$s@Discord> %2$s",
		discordJoinFormat:        ":space_invader: %1$s has entered the server",
		discordPartFormat:        ":broken_heart: %1$s has left the server",
		discordAchievementFormat: ":trophy: %1$s has just earned the achievement [%2$s]",
		discordDeathFormat:       ":skull_crossbones: %2$s",
		discordMessageFormat:     ":speech_balloon: <%1$s> %2$s",
	}}
}

// AddChannel adds a channel name to relay into. Names are
// case-insensitive and may carry a leading "#".
func (b *Builder) AddChannel(name string) *Builder {
	b.cfg.channels[normalizeChannelName(name)] = struct{}{}
	return b
}

// AddChannels adds a list of channel names.
func (b *Builder) AddChannels(names []string) *Builder {
	for _, name := range names {
		b.AddChannel(name)
	}
	return b
}

// EnableTTS toggles text-to-speech on outgoing Discord messages.
func (b *Builder) EnableTTS(enable bool) *Builder {
	b.cfg.tts = enable
	return b
}

// IgnoreBots toggles whether bot-authored Discord messages are relayed.
func (b *Builder) IgnoreBots(ignore bool) *Builder {
	b.cfg.ignoreBots = ignore
	return b
}

// SendAchievements toggles relaying of achievement unlocks.
func (b *Builder) SendAchievements(send bool) *Builder {
	b.cfg.sendAchievements = send
	return b
}

// SendConnects toggles relaying of player connects.
func (b *Builder) SendConnects(send bool) *Builder {
	b.cfg.sendConnects = send
	return b
}

// SendDisconnects toggles relaying of player disconnects.
func (b *Builder) SendDisconnects(send bool) *Builder {
	b.cfg.sendDisconnects = send
	return b
}

// SendDeaths toggles relaying of player deaths.
func (b *Builder) SendDeaths(send bool) *Builder {
	b.cfg.sendDeaths = send
	return b
}

// SendMessages toggles relaying of chat messages.
func (b *Builder) SendMessages(send bool) *Builder {
	b.cfg.sendMessages = send
	return b
}

// MinecraftChatFormat sets the Discord→Minecraft chat template
// (author, content).
func (b *Builder) MinecraftChatFormat(pattern string) *Builder {
	b.cfg.minecraftChatFormat = pattern
	return b
}

// DiscordJoinFormat sets the player connect template (player).
func (b *Builder) DiscordJoinFormat(pattern string) *Builder {
	b.cfg.discordJoinFormat = pattern
	return b
}

// DiscordPartFormat sets the player disconnect template (player).
func (b *Builder) DiscordPartFormat(pattern string) *Builder {
	b.cfg.discordPartFormat = pattern
	return b
}

// DiscordAchievementFormat sets the achievement template
// (player, achievement).
func (b *Builder) DiscordAchievementFormat(pattern string) *Builder {
	b.cfg.discordAchievementFormat = pattern
	return b
}

// DiscordDeathFormat sets the death template (player, death message).
func (b *Builder) DiscordDeathFormat(pattern string) *Builder {
	b.cfg.discordDeathFormat = pattern
	return b
}

// DiscordMessageFormat sets the Minecraft→Discord chat template
// (player, message).
func (b *Builder) DiscordMessageFormat(pattern string) *Builder {
	b.cfg.discordMessageFormat = pattern
	return b
}

// snapshot validates the templates and returns an immutable copy of the
// accumulated settings. Malformed templates fail here, before anything
// touches the network.
func (b *Builder) snapshot() (*settings, error) {
	templates := []struct {
		name    string
		pattern string
		argc    int
	}{
		{"minecraftChat", b.cfg.minecraftChatFormat, 2},
		{"discordJoin", b.cfg.discordJoinFormat, 1},
		{"discordPart", b.cfg.discordPartFormat, 1},
		{"discordAchievement", b.cfg.discordAchievementFormat, 2},
		{"discordDeath", b.cfg.discordDeathFormat, 2},
		{"discordMessage", b.cfg.discordMessageFormat, 2},
	}
	for _, tmpl := range templates {
		if err := format.Validate(tmpl.pattern, tmpl.argc); err != nil {
			return nil, fmt.Errorf("invalid %s template %q: %w", tmpl.name, tmpl.pattern, err)
		}
	}

	cfg := b.cfg
	cfg.channels = make(map[string]struct{}, len(b.cfg.channels))
	for name := range b.cfg.channels {
		cfg.channels[name] = struct{}{}
	}

	return &cfg, nil
}

// Build connects to Discord and constructs the bridge: it authenticates
// with the bot token, resolves the bot's identity, the guild and the
// configured channels, and registers the Discord listener. The Minecraft
// listener is attached later, on the first session-ready event. Build
// blocks until construction finishes or ctx expires and never returns a
// partially connected bridge.
func (b *Builder) Build(ctx context.Context, token, guildID string, server GameServer) (*Bridge, error) {
	if guildID == "" {
		return nil, fmt.Errorf("%w: guild ID is empty", types.ErrUnknownGuild)
	}

	cfg, err := b.snapshot()
	if err != nil {
		return nil, err
	}

	conn, err := discord.Connect(ctx, token)
	if err != nil {
		return nil, err
	}

	bridge, err := newBridge(ctx, cfg, guildID, conn, server)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return bridge, nil
}
