package conversation

import (
	"slices"
	"strings"
	"sync"
)

const (
	maxExchanges         = 2
	noHistoryPlaceholder = "（無歷史）"
)

// Store keeps a bounded per-user dialogue log. Entries alternate between
// user and assistant turns by insertion order, no speaker tag is kept.
// Process-scoped only, rebuilt empty on restart.
type Store struct {
	mu            sync.Mutex
	maxMessages   int
	conversations map[string][]string
}

func NewStore() *Store {
	return &Store{
		maxMessages:   maxExchanges * 2,
		conversations: make(map[string][]string),
	}
}

// Append adds content to the end of the user's log, trimming from the
// front so the log never holds more than maxMessages entries.
func (s *Store) Append(userID, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := append(s.conversations[userID], content)
	if len(entries) > s.maxMessages {
		entries = entries[len(entries)-s.maxMessages:]
	}

	s.conversations[userID] = entries
}

// History returns a copy of the user's log, oldest first. Unknown users
// yield an empty slice.
func (s *Store) History(userID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.conversations[userID])
}

func (s *Store) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.conversations, userID)
}

// historyContext formats the user's log for prompt embedding, leaving out
// the last entry: the current turn is appended before the prompt is built,
// and the prompt carries it separately.
func (s *Store) historyContext(userID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.conversations[userID]
	if len(entries) < 2 {
		return noHistoryPlaceholder
	}

	return strings.Join(entries[:len(entries)-1], "\n")
}
