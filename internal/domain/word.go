package domain

import (
	"strings"
	"time"
)

// Scheduling defaults for a freshly captured word
const (
	DefaultEaseFactor   = 2.5
	MinEaseFactor       = 1.3
	DefaultIntervalDays = 0
	FirstReviewDelay    = 24 * time.Hour
)

// Meaning is a single dictionary sense attached to a word
type Meaning struct {
	PartOfSpeech string `json:"part_of_speech"`
	Definition   string `json:"definition"`
	Example      string `json:"example,omitempty"`
}

// Word is the scheduling record of a captured word, keyed by its normalized text
type Word struct {
	Word         string     `json:"word"`
	CapturedAt   time.Time  `json:"captured_at"`
	SourceURL    string     `json:"source_url"`
	Meanings     []Meaning  `json:"meanings,omitempty"`
	EaseFactor   float64    `json:"ease_factor"`
	IntervalDays int        `json:"interval_days"`
	Repetitions  int        `json:"repetitions"`
	Lapses       int        `json:"lapses"`
	NextReviewAt time.Time  `json:"next_review_at"`
	IsMastered   bool       `json:"is_mastered"`
	MasteredAt   *time.Time `json:"mastered_at"`
}

// NormalizeWord returns the storage key for user-supplied word text
func NormalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// NewWord builds a pristine record for a word captured at now.
// The word must already be normalized.
func NewWord(word, sourceURL string, meanings []Meaning, now time.Time) *Word {
	w := &Word{
		Word:         word,
		CapturedAt:   now,
		SourceURL:    sourceURL,
		EaseFactor:   DefaultEaseFactor,
		IntervalDays: DefaultIntervalDays,
		NextReviewAt: now.Add(FirstReviewDelay),
	}
	if len(meanings) > 0 {
		w.Meanings = meanings
	}
	return w
}

// IsDue reports whether the word should be reviewed at now
func (w *Word) IsDue(now time.Time) bool {
	return !w.NextReviewAt.After(now)
}

// LastActivity returns the most recent activity timestamp of the word:
// the mastery time when set, otherwise the capture time.
func (w *Word) LastActivity() time.Time {
	if w.MasteredAt != nil {
		return *w.MasteredAt
	}
	return w.CapturedAt
}
