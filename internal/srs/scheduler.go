// Package srs implements the SM-2 variant used to schedule word reviews.
package srs

import (
	"math"
	"time"

	"lexmora/internal/domain"
)

// Mastery thresholds
const (
	MasteredRepetitions     = 5
	MasteredMinIntervalDays = 21
	MasteredMinQuality      = Good
)

// MaxIntervalDays caps the gap between reviews at about a century
const MaxIntervalDays = 36500

const day = 24 * time.Hour

// EaseFactor returns the SM-2 ease after a review of the given quality, floored at 1.3
func EaseFactor(current float64, q Quality) float64 {
	penalty := float64(MaxQuality - q)
	ef := current + (0.1 - penalty*(0.08+penalty*0.02))
	return math.Max(domain.MinEaseFactor, ef)
}

// Review returns the record that results from reviewing w with the given quality at now.
// The input record is not modified.
func Review(w domain.Word, quality float64, now time.Time) domain.Word {
	q := ClampQuality(quality)
	previousInterval := w.IntervalDays

	next := w
	next.EaseFactor = EaseFactor(w.EaseFactor, q)

	if !q.Passed() {
		next.Repetitions = 0
		next.IntervalDays = 1
		next.Lapses++
	} else {
		next.Repetitions++
		switch next.Repetitions {
		case 1:
			next.IntervalDays = 1
		case 2:
			next.IntervalDays = 6
		default:
			interval := math.Round(float64(previousInterval) * next.EaseFactor)
			next.IntervalDays = int(math.Min(MaxIntervalDays, math.Max(1, interval)))
		}
	}

	next.NextReviewAt = now.Add(time.Duration(next.IntervalDays) * day)

	if !next.IsMastered && isMastered(next.Repetitions, next.IntervalDays, q) {
		masteredAt := now
		next.IsMastered = true
		next.MasteredAt = &masteredAt
	}

	return next
}

func isMastered(repetitions, intervalDays int, q Quality) bool {
	return repetitions >= MasteredRepetitions &&
		intervalDays >= MasteredMinIntervalDays &&
		q >= MasteredMinQuality
}
