// Package bridge relays chat traffic between a Minecraft-style game
// server and the text channels of a Discord guild.
package bridge

import (
	"context"
	"log"
	"sync"
	"sync/atomic"

	"mcbridge/internal/minecraft"
	"mcbridge/internal/types"
)

// GameServer is the local-domain surface the bridge consumes. All
// methods except Submit must be used from the server loop; Submit
// marshals work onto it from any goroutine.
type GameServer interface {
	Subscribe(kind minecraft.EventKind, priority minecraft.Priority, fn minecraft.Handler) *minecraft.Subscription
	Submit(task func()) error
	Broadcast(message string)
	HasUnlocked(player, achievement string) bool
	CanUnlock(player string, achievement minecraft.Achievement) bool
}

// Bridge relays messages between the game server and the resolved
// Discord channels. It is constructed once via Builder.Build and lives
// until Close.
type Bridge struct {
	conn   types.Session
	server GameServer
	cfg    *settings

	guildID  string
	selfID   string
	channels []types.Channel // resolved at construction, never mutated

	// activated guards the one-time registration of the Minecraft
	// listener against redelivered ready events. It is the only state
	// shared between the two event domains.
	activated atomic.Bool
	closed    atomic.Bool

	mu            sync.Mutex
	subs          []*minecraft.Subscription
	removeReady   func()
	removeMessage func()
}

// newBridge resolves the destination and wires the Discord listener.
// Exposed to Builder.Build and to tests, which supply a fake session.
func newBridge(ctx context.Context, cfg *settings, guildID string, conn types.Session, server GameServer) (*Bridge, error) {
	available, err := conn.TextChannels(ctx, guildID)
	if err != nil {
		return nil, err
	}

	resolved := resolveChannels(available, cfg.channels)
	if len(resolved) == 0 {
		log.Printf("⚠️ No configured channel matches the guild's channel list; nothing will be relayed to Discord")
	}

	b := &Bridge{
		conn:     conn,
		server:   server,
		cfg:      cfg,
		guildID:  guildID,
		selfID:   conn.SelfID(),
		channels: resolved,
	}

	b.removeReady = conn.OnReady(b.onReady)
	b.removeMessage = conn.OnMessage(b.onDiscordMessage)

	return b, nil
}

// Channels returns the resolved target channels.
func (b *Bridge) Channels() []types.Channel {
	out := make([]types.Channel, len(b.channels))
	copy(out, b.channels)
	return out
}

// SendToDiscord sends text to every resolved channel. Each channel is
// dispatched on its own goroutine; one channel failing does not affect
// the others, and no delivery confirmation is surfaced.
func (b *Bridge) SendToDiscord(text string) {
	for _, channel := range b.channels {
		channel := channel
		go func() {
			if err := b.conn.SendMessage(channel.ID, text, b.cfg.tts); err != nil {
				log.Printf("❌ Failed to relay to #%s: %v", channel.Name, err)
			}
		}()
	}
}

// Close tears the bridge down: both Discord handler registrations are
// removed, the Minecraft handlers are unsubscribed if activation
// happened, and the session is closed. Safe to call more than once.
func (b *Bridge) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}

	if b.removeReady != nil {
		b.removeReady()
	}
	if b.removeMessage != nil {
		b.removeMessage()
	}

	b.mu.Lock()
	subs := b.subs
	b.subs = nil
	b.mu.Unlock()
	for _, sub := range subs {
		sub.Unsubscribe()
	}

	return b.conn.Close()
}
