package handler

import (
	"context"
	"testing"
	"time"

	"lexmora/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCallbackData(t *testing.T) {
	tests := []struct {
		name            string
		input           string
		expectedUnique  string
		expectedPayload string
	}{
		{
			name:            "grade with telebot prefix",
			input:           "\fgrade|good",
			expectedUnique:  "grade",
			expectedPayload: "good",
		},
		{
			name:            "grade without prefix",
			input:           "grade|easy",
			expectedUnique:  "grade",
			expectedPayload: "easy",
		},
		{
			name:            "trailing newline on payload",
			input:           "\fgrade|again\n",
			expectedUnique:  "grade",
			expectedPayload: "again",
		},
		{
			name:           "button without payload",
			input:          "\fshow",
			expectedUnique: "show",
		},
		{
			name:           "main menu with surrounding whitespace",
			input:          "  main_menu  ",
			expectedUnique: "main_menu",
		},
		{
			name:            "payload keeps later separators",
			input:           "grade|good|extra",
			expectedUnique:  "grade",
			expectedPayload: "good|extra",
		},
		{
			name:  "empty data",
			input: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unique, payload := splitCallbackData(tt.input)
			assert.Equal(t, tt.expectedUnique, unique)
			assert.Equal(t, tt.expectedPayload, payload)
		})
	}
}

func TestHandleCallback_RoutesGradePayload(t *testing.T) {
	captured := time.Date(2024, 6, 13, 12, 0, 0, 0, time.UTC)
	h, words := newTestHandler(t, captured)

	_, _, err := words.Capture(context.Background(), "apple", "", nil)
	require.NoError(t, err)
	words.WithClock(func() time.Time { return captured.AddDate(0, 0, 2) })

	session := &domain.ReviewSession{State: domain.StateRevealed, Queue: []string{"apple"}}
	h.SetSession(testUser, session)

	c := button("\fgrade|easy")
	require.NoError(t, h.handleCallback(c))

	assert.Equal(t, "easy", c.callback.Data)
	assert.Nil(t, h.GetSession(testUser))

	apple, err := words.Get(context.Background(), "apple")
	require.NoError(t, err)
	assert.Equal(t, 1, apple.Repetitions)
	assert.InDelta(t, 2.6, apple.EaseFactor, 1e-9)
}

func TestHandleCallback_RoutesShow(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	h, words := newTestHandler(t, now)

	_, _, err := words.Capture(context.Background(), "apple", "", nil)
	require.NoError(t, err)

	session := &domain.ReviewSession{State: domain.StateReviewing, Queue: []string{"apple"}}
	h.SetSession(testUser, session)

	c := button("\fshow")
	require.NoError(t, h.handleCallback(c))

	assert.Equal(t, domain.StateRevealed, session.State)
	assert.Len(t, c.edited, 1)
}

func TestHandleCallback_Unknown(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	h, _ := newTestHandler(t, now)

	session := &domain.ReviewSession{State: domain.StateRevealed, Queue: []string{"apple"}}
	h.SetSession(testUser, session)

	c := button("\funknown|good")
	require.NoError(t, h.handleCallback(c))

	assert.Equal(t, 0, session.Index)
	assert.Empty(t, c.edited)
	assert.Empty(t, c.sent)
}
