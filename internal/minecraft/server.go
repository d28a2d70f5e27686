package minecraft

import (
	"errors"
	"log"
	"sync"
	"sync/atomic"
)

const taskQueueSize = 256

var (
	// ErrStopped is returned by Submit after the server loop has stopped.
	ErrStopped = errors.New("server loop stopped")

	// ErrQueueFull is returned by Submit when the task queue is full. The
	// submitted task is dropped; callers treat this as fatal to that task
	// only.
	ErrQueueFull = errors.New("server task queue full")
)

// StatStore persists per-player achievement unlocks.
type StatStore interface {
	HasUnlocked(player, achievement string) (bool, error)
	Unlock(player, achievement string) error
}

// Server models the game server's main loop: a single goroutine that
// owns all game state. Anything touching that state from another
// goroutine must be marshaled through Submit. Event dispatch and the
// Fire* helpers run on the loop itself.
type Server struct {
	bus       *EventBus
	stats     StatStore
	broadcast func(string)

	tasks    chan func()
	stop     chan struct{}
	done     chan struct{}
	started  atomic.Bool
	stopOnce sync.Once
}

// NewServer creates a server backed by the given stat store. broadcast
// receives every message broadcast to local chat; it runs on the server
// loop and may be nil.
func NewServer(stats StatStore, broadcast func(string)) *Server {
	return &Server{
		bus:       NewEventBus(),
		stats:     stats,
		broadcast: broadcast,
		tasks:     make(chan func(), taskQueueSize),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Run drains the task queue until Stop is called. It is the server's
// main loop and must run on its own goroutine.
func (s *Server) Run() {
	s.started.Store(true)
	defer close(s.done)
	for {
		select {
		case task := <-s.tasks:
			task()
		case <-s.stop:
			// Drain what was accepted before the stop.
			for {
				select {
				case task := <-s.tasks:
					task()
				default:
					return
				}
			}
		}
	}
}

// Stop terminates the loop and waits for it to finish. When Run was
// never started there is nothing to wait for and Stop returns at once.
func (s *Server) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	if s.started.Load() {
		<-s.done
	}
}

// Submit schedules task on the server loop without blocking. The caller
// gets no completion signal; a rejected submission fails only that task.
func (s *Server) Submit(task func()) error {
	select {
	case <-s.stop:
		return ErrStopped
	default:
	}

	select {
	case s.tasks <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe registers an event handler on the server's bus.
func (s *Server) Subscribe(kind EventKind, priority Priority, fn Handler) *Subscription {
	return s.bus.Subscribe(kind, priority, fn)
}

// Broadcast sends a system message to all connected players. Must be
// called on the server loop.
func (s *Server) Broadcast(message string) {
	log.Printf("💬 [CHAT] %s", message)
	if s.broadcast != nil {
		s.broadcast(message)
	}
}

// HasUnlocked reports whether the player already earned the achievement.
func (s *Server) HasUnlocked(player, achievement string) bool {
	unlocked, err := s.stats.HasUnlocked(player, achievement)
	if err != nil {
		log.Printf("⚠️ Failed to read stats for %s: %v", player, err)
		return false
	}
	return unlocked
}

// CanUnlock reports whether the achievement's prerequisite is satisfied
// for the player.
func (s *Server) CanUnlock(player string, achievement Achievement) bool {
	if achievement.Parent == "" {
		return true
	}
	return s.HasUnlocked(player, achievement.Parent)
}

// FireChat dispatches a chat event and, unless it was cancelled,
// broadcasts the message locally. Returns the event so callers can
// inspect the cancellation state. Must be called on the server loop.
func (s *Server) FireChat(player Player, message string) *ChatEvent {
	ev := &ChatEvent{Player: player, Message: message}
	s.bus.Fire(ev)
	if !ev.IsCancelled() {
		s.Broadcast("<" + player.Name + "> " + message)
	}
	return ev
}

// FireJoin dispatches a player connect event.
func (s *Server) FireJoin(player Player) {
	s.bus.Fire(&PlayerJoinEvent{Player: player})
}

// FireQuit dispatches a player disconnect event.
func (s *Server) FireQuit(player Player) {
	s.bus.Fire(&PlayerQuitEvent{Player: player})
}

// FireDeath dispatches a player death event with its death message.
func (s *Server) FireDeath(player Player, message string) {
	s.bus.Fire(&PlayerDeathEvent{Player: player, Message: message})
}

// FireAchievement dispatches an achievement event and then records the
// unlock when the player is eligible. Handlers run before the unlock is
// stored, so an already-unlocked or not-yet-unlockable achievement is
// observable as such during dispatch.
func (s *Server) FireAchievement(player Player, achievement Achievement) {
	ev := &AchievementEvent{Player: player, Achievement: achievement}
	s.bus.Fire(ev)

	if !s.HasUnlocked(player.Name, achievement.Name) && s.CanUnlock(player.Name, achievement) {
		if err := s.stats.Unlock(player.Name, achievement.Name); err != nil {
			log.Printf("⚠️ Failed to record achievement %s for %s: %v", achievement.Name, player.Name, err)
		}
	}
}
