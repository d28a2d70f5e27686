package bridge

import (
	"log"

	"mcbridge/internal/format"
	"mcbridge/internal/types"
)

// onReady handles the Discord session-ready event. Discord redelivers
// it after automatic reconnects, but subscribing the Minecraft handlers
// twice would duplicate every relayed message, so only the first
// transition attaches them. The handlers then stay attached for the
// bridge's lifetime, across reconnects.
func (b *Bridge) onReady() {
	if b.activated.CompareAndSwap(false, true) {
		b.attachGameListeners()
		log.Printf("🔗 Bridge activated: game event handlers attached")
	}
}

// onDiscordMessage relays an incoming Discord message into local chat.
// Runs on the Discord connection's goroutine, so the actual broadcast is
// marshaled onto the server loop and never awaited here.
func (b *Bridge) onDiscordMessage(m *types.Message) {
	if m.GuildID != b.guildID {
		return
	}

	if b.cfg.ignoreBots && m.AuthorBot {
		return
	}

	// Never relay our own messages back into the server.
	if m.AuthorID == b.selfID {
		return
	}

	author := m.AuthorNick
	if author == "" {
		author = m.AuthorName
	}

	text, err := format.Format(b.cfg.minecraftChatFormat, author, m.Content)
	if err != nil {
		log.Printf("❌ Failed to format Discord message: %v", err)
		return
	}

	if err := b.server.Submit(func() { b.server.Broadcast(text) }); err != nil {
		log.Printf("❌ Failed to hand message to the server loop: %v", err)
	}
}
