package domain

// SessionState represents the bot user's current interaction state
type SessionState string

const (
	StateIdle      SessionState = "idle"
	StateReviewing SessionState = "reviewing"
	StateRevealed  SessionState = "revealed"
)

// ReviewSession holds the due queue a user is working through
type ReviewSession struct {
	State     SessionState
	Queue     []string
	Index     int
	MessageID int // For editing the card message
}

// Current returns the word under review, or empty string when the queue is exhausted
func (s *ReviewSession) Current() string {
	if s == nil || s.Index >= len(s.Queue) {
		return ""
	}
	return s.Queue[s.Index]
}

// Remaining returns how many words are left including the current one
func (s *ReviewSession) Remaining() int {
	if s == nil || s.Index >= len(s.Queue) {
		return 0
	}
	return len(s.Queue) - s.Index
}
