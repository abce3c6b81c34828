package testutil

import (
	"time"

	"lexmora/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestWord creates a fresh word captured at capturedAt
func NewTestWord(word string, capturedAt time.Time) *domain.Word {
	return domain.NewWord(word, "https://example.com/"+word, nil, capturedAt)
}

// NewDueWord creates a word whose next review is at next
func NewDueWord(word string, next time.Time) domain.Word {
	w := domain.NewWord(word, "", nil, next.AddDate(0, 0, -1))
	w.NextReviewAt = next
	return *w
}

// FixedClock returns a clock function that always reports t
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
