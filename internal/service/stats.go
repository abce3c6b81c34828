package service

import (
	"context"
	"sort"
	"time"

	"lexmora/internal/domain"
	"lexmora/internal/repository"

	"go.uber.org/zap"
)

// StatsService computes progress metrics over the stored words
type StatsService struct {
	wordRepo repository.WordRepository
	loc      *time.Location
	logger   *zap.Logger
	now      func() time.Time
}

// NewStatsService creates a new stats service. Calendar days are taken in loc.
func NewStatsService(wordRepo repository.WordRepository, loc *time.Location, logger *zap.Logger) *StatsService {
	if loc == nil {
		loc = time.UTC
	}
	return &StatsService{
		wordRepo: wordRepo,
		loc:      loc,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock replaces the time source
func (s *StatsService) WithClock(now func() time.Time) *StatsService {
	s.now = now
	return s
}

// Metrics returns the aggregate progress of all words
func (s *StatsService) Metrics(ctx context.Context) (*domain.Metrics, error) {
	total, mastered, err := s.wordRepo.Count(ctx)
	if err != nil {
		return nil, &domain.StorageError{Op: "count", Err: err}
	}

	times, err := s.wordRepo.ActivityTimes(ctx)
	if err != nil {
		return nil, &domain.StorageError{Op: "activity", Err: err}
	}

	inReview := total - mastered
	if inReview < 0 {
		inReview = 0
	}

	today := s.now().In(s.loc)
	active := activeDays(times, s.loc)

	return &domain.Metrics{
		TotalWords:    total,
		MasteredWords: mastered,
		InReviewWords: inReview,
		ReviewedToday: active[dayKey(today)],
		StreakDays:    streak(active, today),
	}, nil
}

// ActivityDays returns the days with activity, newest first, capped at limit when positive
func (s *StatsService) ActivityDays(ctx context.Context, limit int) ([]domain.Day, error) {
	times, err := s.wordRepo.ActivityTimes(ctx)
	if err != nil {
		return nil, &domain.StorageError{Op: "activity", Err: err}
	}

	counts := make(map[time.Time]int)
	for _, t := range times {
		counts[domain.StartOfDay(t.In(s.loc))]++
	}

	days := make([]domain.Day, 0, len(counts))
	for date, n := range counts {
		days = append(days, domain.Day{Date: date, WordCount: n})
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.After(days[j].Date)
	})

	if limit > 0 && len(days) > limit {
		days = days[:limit]
	}
	return days, nil
}

// Report logs a metrics snapshot together with the size of the due queue
func (s *StatsService) Report(ctx context.Context) error {
	s.logger.Info("Starting progress report")

	metrics, err := s.Metrics(ctx)
	if err != nil {
		s.logger.Error("Failed to compute metrics", zap.Error(err))
		return err
	}

	due, err := s.wordRepo.ListDue(ctx, s.now(), 0)
	if err != nil {
		s.logger.Error("Failed to list due words", zap.Error(err))
		return &domain.StorageError{Op: "list due", Err: err}
	}

	s.logger.Info("Progress report",
		zap.Int("total_words", metrics.TotalWords),
		zap.Int("mastered_words", metrics.MasteredWords),
		zap.Int("in_review_words", metrics.InReviewWords),
		zap.Int("reviewed_today", metrics.ReviewedToday),
		zap.Int("streak_days", metrics.StreakDays),
		zap.Int("due_words", len(due)),
	)
	return nil
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// activeDays counts activity timestamps per calendar day in loc
func activeDays(times []time.Time, loc *time.Location) map[string]int {
	days := make(map[string]int, len(times))
	for _, t := range times {
		days[dayKey(t.In(loc))]++
	}
	return days
}

// streak counts consecutive active days ending today
func streak(active map[string]int, today time.Time) int {
	n := 0
	for d := today; active[dayKey(d)] > 0; d = d.AddDate(0, 0, -1) {
		n++
	}
	return n
}
