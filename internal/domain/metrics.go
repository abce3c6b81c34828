package domain

// Metrics aggregates review progress over all stored words
type Metrics struct {
	TotalWords    int `json:"total_words"`
	MasteredWords int `json:"mastered_words"`
	InReviewWords int `json:"in_review_words"`
	ReviewedToday int `json:"reviewed_today"`
	StreakDays    int `json:"streak_days"`
}
