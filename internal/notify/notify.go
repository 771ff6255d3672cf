// Package notify holds the transient notification stack: short-lived
// messages that dismiss themselves after a fixed interval, independently
// of one another.
package notify

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// DefaultTTL matches the dismiss interval of the web widget this tool
// descends from.
const DefaultTTL = 3 * time.Second

// Level is a presentation hint only; it never changes dismissal behavior.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// Notification is one transient message.
type Notification struct {
	ID      string
	Message string
	Level   Level
}

// ExpiredMsg is delivered when a notification's timer fires.
type ExpiredMsg struct {
	ID string
}

// Stack is the ordered set of live notifications. Not safe for concurrent
// use; it lives inside the single-threaded update loop.
type Stack struct {
	ttl   time.Duration
	items []Notification
}

// NewStack creates a stack with the given time-to-live; ttl <= 0 uses
// DefaultTTL.
func NewStack(ttl time.Duration) *Stack {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Stack{ttl: ttl}
}

// Push appends a notification and returns the command that will expire it.
// Each notification carries its own timer keyed by ID, so stacked
// notifications dismiss on their own schedules.
func (s *Stack) Push(level Level, message string) tea.Cmd {
	n := Notification{ID: uuid.NewString(), Message: message, Level: level}
	s.items = append(s.items, n)
	return tea.Tick(s.ttl, func(time.Time) tea.Msg {
		return ExpiredMsg{ID: n.ID}
	})
}

// Expire removes the notification with the given ID. Unknown IDs are a
// no-op; a notification may already be gone after a Clear.
func (s *Stack) Expire(id string) {
	for i, n := range s.items {
		if n.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Clear drops all live notifications. Their timers still fire, landing on
// Expire as no-ops.
func (s *Stack) Clear() {
	s.items = nil
}

// Items returns the live notifications, oldest first.
func (s *Stack) Items() []Notification {
	return append([]Notification(nil), s.items...)
}

func (s *Stack) Len() int { return len(s.items) }
