package bridge

import (
	"log"

	"mcbridge/internal/format"
	"mcbridge/internal/minecraft"
)

// attachGameListeners subscribes one handler per relayed event
// category. Everything registers at the lowest priority so the bridge
// observes events only after the server's own processing; a chat
// message cancelled by another handler is never relayed.
func (b *Bridge) attachGameListeners() {
	subs := []*minecraft.Subscription{
		b.server.Subscribe(minecraft.EventChat, minecraft.PriorityLowest, b.onChat),
		b.server.Subscribe(minecraft.EventPlayerJoin, minecraft.PriorityLowest, b.onPlayerJoin),
		b.server.Subscribe(minecraft.EventPlayerQuit, minecraft.PriorityLowest, b.onPlayerQuit),
		b.server.Subscribe(minecraft.EventPlayerDeath, minecraft.PriorityLowest, b.onPlayerDeath),
		b.server.Subscribe(minecraft.EventAchievement, minecraft.PriorityLowest, b.onAchievement),
	}

	b.mu.Lock()
	if b.closed.Load() {
		// Close won the race and already drained b.subs; detach right
		// away instead of leaving the handlers attached forever.
		b.mu.Unlock()
		for _, sub := range subs {
			sub.Unsubscribe()
		}
		return
	}
	b.subs = subs
	b.mu.Unlock()
}

func (b *Bridge) onChat(ev minecraft.Event) {
	if !b.cfg.sendMessages {
		return
	}

	chat := ev.(*minecraft.ChatEvent)
	b.sendFormatted(b.cfg.discordMessageFormat, chat.Player.Name, chat.Message)
}

func (b *Bridge) onPlayerJoin(ev minecraft.Event) {
	if !b.cfg.sendConnects {
		return
	}

	join := ev.(*minecraft.PlayerJoinEvent)
	b.sendFormatted(b.cfg.discordJoinFormat, join.Player.Name)
}

func (b *Bridge) onPlayerQuit(ev minecraft.Event) {
	if !b.cfg.sendDisconnects {
		return
	}

	quit := ev.(*minecraft.PlayerQuitEvent)
	b.sendFormatted(b.cfg.discordPartFormat, quit.Player.Name)
}

func (b *Bridge) onPlayerDeath(ev minecraft.Event) {
	if !b.cfg.sendDeaths {
		return
	}

	death := ev.(*minecraft.PlayerDeathEvent)
	b.sendFormatted(b.cfg.discordDeathFormat, death.Player.Name, death.Message)
}

// onAchievement relays achievement unlocks edge-triggered: the event
// fires for every earn attempt, but only the transition into "newly
// unlockable and not yet unlocked" is relayed.
func (b *Bridge) onAchievement(ev minecraft.Event) {
	if !b.cfg.sendAchievements {
		return
	}

	earned := ev.(*minecraft.AchievementEvent)
	player := earned.Player.Name
	if b.server.HasUnlocked(player, earned.Achievement.Name) || !b.server.CanUnlock(player, earned.Achievement) {
		return
	}

	b.sendFormatted(b.cfg.discordAchievementFormat, player, earned.Achievement.Name)
}

// sendFormatted renders the template and ships it to Discord. A bad
// template fails only this relay.
func (b *Bridge) sendFormatted(pattern string, args ...string) {
	text, err := format.Format(pattern, args...)
	if err != nil {
		log.Printf("❌ Failed to format outgoing message: %v", err)
		return
	}
	b.SendToDiscord(text)
}
