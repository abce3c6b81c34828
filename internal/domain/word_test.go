package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeWord(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "mixed case", input: "Serendipity", expected: "serendipity"},
		{name: "surrounding whitespace", input: "  Hello \n", expected: "hello"},
		{name: "unicode", input: "ÉCOLE", expected: "école"},
		{name: "blank", input: "   ", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeWord(tt.input))
		})
	}
}

func TestNewWord_Defaults(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	w := NewWord("serendipity", "https://example.com", nil, now)

	assert.Equal(t, "serendipity", w.Word)
	assert.Equal(t, now, w.CapturedAt)
	assert.Equal(t, DefaultEaseFactor, w.EaseFactor)
	assert.Equal(t, 0, w.IntervalDays)
	assert.Equal(t, 0, w.Repetitions)
	assert.Equal(t, 0, w.Lapses)
	assert.Equal(t, now.Add(24*time.Hour), w.NextReviewAt)
	assert.False(t, w.IsMastered)
	assert.Nil(t, w.MasteredAt)
	assert.Nil(t, w.Meanings)
}

func TestNewWord_DropsEmptyMeanings(t *testing.T) {
	w := NewWord("x", "", []Meaning{}, time.Now())
	assert.Nil(t, w.Meanings)
}

func TestWord_IsDue(t *testing.T) {
	now := time.Now()
	w := &Word{NextReviewAt: now}

	assert.True(t, w.IsDue(now))
	assert.True(t, w.IsDue(now.Add(time.Second)))
	assert.False(t, w.IsDue(now.Add(-time.Second)))
}

func TestWord_LastActivity(t *testing.T) {
	captured := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mastered := captured.AddDate(0, 2, 0)

	w := &Word{CapturedAt: captured}
	assert.Equal(t, captured, w.LastActivity())

	w.MasteredAt = &mastered
	assert.Equal(t, mastered, w.LastActivity())
}

func TestStorageError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("apply response: %w", &StorageError{Op: "update", Err: cause})

	var se *StorageError
	assert.True(t, errors.As(err, &se))
	assert.Equal(t, "update", se.Op)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "storage update: connection refused")
}
