package conversation

import (
	"time"

	"odoosense/app/client/odoo"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in a conversation. AttachedData carries the structured
// result that produced it, if any. Turns are never mutated after appending.
type Turn struct {
	Role         Role
	Content      string
	AttachedData *odoo.QueryResult
	Timestamp    time.Time
}

// State holds the per-session turn log and a scratch key/value context.
// The log is capped: once maxTurns is reached the oldest turn is evicted.
// Single session, single active turn, so no locking.
type State struct {
	maxTurns int
	turns    []Turn
	scratch  map[string]any
}

func NewState(maxTurns int) *State {
	return &State{
		maxTurns: maxTurns,
		scratch:  make(map[string]any),
	}
}

func (s *State) AddMessage(role Role, content string, data *odoo.QueryResult) {
	turn := Turn{
		Role:         role,
		Content:      content,
		AttachedData: data,
		Timestamp:    time.Now(),
	}

	if s.maxTurns > 0 && len(s.turns) >= s.maxTurns {
		s.turns = append(s.turns[1:], turn)
	} else {
		s.turns = append(s.turns, turn)
	}
}

// RecentContext returns the last n turns in insertion order, fewer if the
// history is shorter.
func (s *State) RecentContext(n int) []Turn {
	if n <= 0 || len(s.turns) == 0 {
		return nil
	}
	if n > len(s.turns) {
		n = len(s.turns)
	}

	recent := make([]Turn, n)
	copy(recent, s.turns[len(s.turns)-n:])

	return recent
}

func (s *State) Len() int {
	return len(s.turns)
}

func (s *State) SetContext(key string, value any) {
	s.scratch[key] = value
}

// GetContext reports the stored value and whether the key was present;
// a missing key is not an error.
func (s *State) GetContext(key string) (any, bool) {
	value, ok := s.scratch[key]
	return value, ok
}

func (s *State) ClearContext() {
	s.scratch = make(map[string]any)
}
