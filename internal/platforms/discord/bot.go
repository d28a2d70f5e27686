// Package discord wraps the discordgo session behind the types.Session
// interface the bridge consumes.
package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"

	"mcbridge/internal/types"

	"github.com/bwmarrin/discordgo"
)

// Client is a connected Discord bot session.
type Client struct {
	session *discordgo.Session
	selfID  string

	ready     atomic.Bool
	readyOnce sync.Once
	readyCh   chan struct{}
}

var _ types.Session = (*Client)(nil)

// Connect authenticates with Discord and opens the gateway connection.
// It blocks until the session is ready or ctx expires. Failures are
// classified as types.ErrAuthentication or types.ErrConnection.
func Connect(ctx context.Context, token string) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: bot token is empty", types.ErrAuthentication)
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrConnection, err)
	}

	session.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMessages |
		discordgo.IntentMessageContent

	// Authenticate over REST first; this resolves our own identity and
	// turns a bad token into a clean error before the gateway handshake.
	self, err := session.User("@me", discordgo.WithContext(ctx))
	if err != nil {
		return nil, classifyAuthError(err)
	}

	client := &Client{
		session: session,
		selfID:  self.ID,
		readyCh: make(chan struct{}),
	}

	session.AddHandler(func(_ *discordgo.Session, _ *discordgo.Ready) {
		client.ready.Store(true)
		client.readyOnce.Do(func() { close(client.readyCh) })
	})

	if err := session.Open(); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrConnection, err)
	}

	select {
	case <-client.readyCh:
	case <-ctx.Done():
		session.Close()
		return nil, fmt.Errorf("%w: timed out waiting for session ready: %v", types.ErrConnection, ctx.Err())
	}

	log.Printf("✅ Discord bot connected as %s", self.Username)
	return client, nil
}

// SelfID returns the bot's own user ID.
func (c *Client) SelfID() string {
	return c.selfID
}

// TextChannels returns all text channels of the given guild.
func (c *Client) TextChannels(ctx context.Context, guildID string) ([]types.Channel, error) {
	if _, err := c.session.Guild(guildID, discordgo.WithContext(ctx)); err != nil {
		if restStatus(err) == http.StatusNotFound || restStatus(err) == http.StatusForbidden {
			return nil, fmt.Errorf("%w: %s", types.ErrUnknownGuild, guildID)
		}
		return nil, fmt.Errorf("%w: %v", types.ErrConnection, err)
	}

	channels, err := c.session.GuildChannels(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrConnection, err)
	}

	var result []types.Channel
	for _, channel := range channels {
		if channel.Type != discordgo.ChannelTypeGuildText {
			continue
		}
		result = append(result, types.Channel{ID: channel.ID, Name: channel.Name})
	}

	return result, nil
}

// SendMessage sends a message to a single channel, with or without
// text-to-speech.
func (c *Client) SendMessage(channelID, content string, tts bool) error {
	_, err := c.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: content,
		TTS:     tts,
	})
	if err != nil {
		return fmt.Errorf("error sending message to channel %s: %v", channelID, err)
	}
	return nil
}

// OnReady registers fn for the gateway Ready event. Discord redelivers
// Ready after re-identifying, so fn may run more than once; if the
// session is already ready, fn additionally runs right away so late
// registrants do not miss the initial event.
func (c *Client) OnReady(fn func()) (remove func()) {
	remove = c.session.AddHandler(func(_ *discordgo.Session, _ *discordgo.Ready) {
		fn()
	})
	if c.ready.Load() {
		fn()
	}
	return remove
}

// OnMessage registers fn for incoming guild messages. Direct messages
// are not forwarded.
func (c *Client) OnMessage(fn func(*types.Message)) (remove func()) {
	return c.session.AddHandler(func(_ *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil || m.GuildID == "" {
			return
		}

		msg := &types.Message{
			GuildID:    m.GuildID,
			ChannelID:  m.ChannelID,
			AuthorID:   m.Author.ID,
			AuthorName: m.Author.Username,
			AuthorBot:  m.Author.Bot,
			Content:    m.ContentWithMentionsReplaced(),
		}
		if m.Member != nil {
			msg.AuthorNick = m.Member.Nick
		}

		fn(msg)
	})
}

// Close shuts the gateway connection down.
func (c *Client) Close() error {
	if err := c.session.Close(); err != nil {
		return fmt.Errorf("error closing Discord connection: %v", err)
	}
	log.Printf("🔌 Discord bot disconnected")
	return nil
}

// classifyAuthError maps discordgo REST errors onto the bridge's error
// classes.
func classifyAuthError(err error) error {
	if errors.Is(err, discordgo.ErrUnauthorized) || restStatus(err) == http.StatusUnauthorized {
		return fmt.Errorf("%w: %v", types.ErrAuthentication, err)
	}
	return fmt.Errorf("%w: %v", types.ErrConnection, err)
}

// restStatus extracts the HTTP status from a discordgo REST error, or 0.
func restStatus(err error) int {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil {
		return restErr.Response.StatusCode
	}
	return 0
}
