package types

import (
	"context"
	"errors"
)

// Error classes surfaced during bridge construction. All of them are
// fatal to construction; callers match with errors.Is.
var (
	ErrAuthentication = errors.New("authentication with Discord failed")
	ErrConnection     = errors.New("connection to Discord failed")
	ErrUnknownGuild   = errors.New("configured guild not found")
)

// Channel is a text channel inside the destination guild.
type Channel struct {
	ID   string
	Name string
}

// Message represents an inbound chat message from Discord.
type Message struct {
	GuildID    string
	ChannelID  string
	AuthorID   string
	AuthorName string
	AuthorNick string
	AuthorBot  bool
	Content    string // mention-stripped text content
}

// Session is a connected Discord session the bridge drives. Handler
// registrations return a removal func so the bridge can unhook itself
// on teardown.
type Session interface {
	// SelfID returns the bot's own user ID.
	SelfID() string

	// TextChannels returns all text channels of the given guild. It fails
	// with ErrUnknownGuild when the guild does not exist or is not
	// accessible to the authenticated bot.
	TextChannels(ctx context.Context, guildID string) ([]Channel, error)

	// SendMessage sends a message to a single channel.
	SendMessage(channelID, content string, tts bool) error

	// OnReady registers a handler for the session-established event. If
	// the session is already ready the handler is invoked immediately;
	// it may also fire again after automatic reconnects.
	OnReady(fn func()) (remove func())

	// OnMessage registers a handler for incoming guild messages.
	OnMessage(fn func(*Message)) (remove func())

	// Close shuts the session down.
	Close() error
}
