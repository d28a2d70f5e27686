// Package minecraft implements the game server side of the bridge: a
// prioritized event bus, the single-goroutine server loop with its task
// queue, and achievement stat tracking.
package minecraft

// EventKind identifies a category of server event.
type EventKind int

const (
	EventChat EventKind = iota
	EventPlayerJoin
	EventPlayerQuit
	EventPlayerDeath
	EventAchievement
)

// Priority orders handlers for a single event. Lower values run first;
// PriorityLowest handlers observe an event only after everything else
// has processed (and possibly cancelled) it.
type Priority int

const (
	PriorityHighest Priority = iota
	PriorityHigh
	PriorityNormal
	PriorityLow
	PriorityLowest
)

// Player identifies a connected player by display name.
type Player struct {
	Name string
}

// Achievement is an unlockable milestone. Parent, when set, names the
// achievement that must be unlocked first.
type Achievement struct {
	Name   string
	Parent string
}

// Event is implemented by all server event types.
type Event interface {
	Kind() EventKind
}

// Cancellable is implemented by events that earlier handlers can veto.
type Cancellable interface {
	IsCancelled() bool
}

// ChatEvent fires when a player submits a chat message. Higher-priority
// handlers may cancel it, in which case lower-priority handlers never
// see it.
type ChatEvent struct {
	Player    Player
	Message   string
	cancelled bool
}

func (*ChatEvent) Kind() EventKind { return EventChat }

// Cancel vetoes the message; it will not be delivered to remaining
// handlers or to local chat.
func (e *ChatEvent) Cancel() { e.cancelled = true }

func (e *ChatEvent) IsCancelled() bool { return e.cancelled }

// PlayerJoinEvent fires when a player connects.
type PlayerJoinEvent struct {
	Player Player
}

func (*PlayerJoinEvent) Kind() EventKind { return EventPlayerJoin }

// PlayerQuitEvent fires when a player disconnects.
type PlayerQuitEvent struct {
	Player Player
}

func (*PlayerQuitEvent) Kind() EventKind { return EventPlayerQuit }

// PlayerDeathEvent fires when a player dies. Message is the rendered
// death message, e.g. "Bob fell from a high place".
type PlayerDeathEvent struct {
	Player  Player
	Message string
}

func (*PlayerDeathEvent) Kind() EventKind { return EventPlayerDeath }

// AchievementEvent fires when a player attempts to earn an achievement.
// It is dispatched before the unlock is recorded, so handlers observe
// the pre-unlock stat state.
type AchievementEvent struct {
	Player      Player
	Achievement Achievement
}

func (*AchievementEvent) Kind() EventKind { return EventAchievement }
