package srs

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Quality is the recall quality of a review on the SM-2 0-5 scale
type Quality int

const (
	// Complete blackout
	Blackout Quality = 0
	// Failed to recall
	Again Quality = 1
	// Recalled with difficulty
	Hard Quality = 2
	// Recalled correctly
	Good Quality = 4
	// Recalled instantly
	Easy Quality = 5

	MinQuality Quality = 0
	MaxQuality Quality = 5

	// PassThreshold is the lowest quality counted as a successful recall
	PassThreshold Quality = 3
)

var qualityByName = map[string]Quality{
	"again": Again,
	"hard":  Hard,
	"good":  Good,
	"easy":  Easy,
}

// ClampQuality rounds q to the nearest integer and clamps it to [0, 5]
func ClampQuality(q float64) Quality {
	if math.IsNaN(q) {
		return MinQuality
	}
	r := math.Round(q)
	if r < float64(MinQuality) {
		return MinQuality
	}
	if r > float64(MaxQuality) {
		return MaxQuality
	}
	return Quality(r)
}

// Passed reports whether q counts as a successful recall
func (q Quality) Passed() bool {
	return q >= PassThreshold
}

// String returns the review button name for the four named levels and the digit otherwise
func (q Quality) String() string {
	switch q {
	case Again:
		return "again"
	case Hard:
		return "hard"
	case Good:
		return "good"
	case Easy:
		return "easy"
	}
	return strconv.Itoa(int(q))
}

// ParseQuality accepts a button name ("again", "hard", "good", "easy") or a number.
// Numbers are clamped the same way ClampQuality does.
func ParseQuality(s string) (Quality, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if q, ok := qualityByName[s]; ok {
		return q, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid quality %q", s)
	}
	return ClampQuality(f), nil
}
