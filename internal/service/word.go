package service

import (
	"context"
	"errors"
	"time"

	"lexmora/internal/domain"
	"lexmora/internal/repository"
	"lexmora/internal/srs"

	"go.uber.org/zap"
)

// WordService handles capture, review and removal of words
type WordService struct {
	wordRepo repository.WordRepository
	logger   *zap.Logger
	locks    *keyLocker
	now      func() time.Time
}

// NewWordService creates a new word service
func NewWordService(wordRepo repository.WordRepository, logger *zap.Logger) *WordService {
	return &WordService{
		wordRepo: wordRepo,
		logger:   logger,
		locks:    newKeyLocker(),
		now:      time.Now,
	}
}

// WithClock replaces the time source, used by tests and the importer
func (s *WordService) WithClock(now func() time.Time) *WordService {
	s.now = now
	return s
}

// Capture stores a new word with default scheduling.
// It returns the stored record and whether it was created by this call.
// Blank input is a no-op returning (nil, false, nil).
func (s *WordService) Capture(ctx context.Context, word, sourceURL string, meanings []domain.Meaning) (*domain.Word, bool, error) {
	key := domain.NormalizeWord(word)
	if key == "" {
		return nil, false, nil
	}

	unlock := s.locks.Lock(key)
	defer unlock()

	w := domain.NewWord(key, sourceURL, meanings, s.clock())
	created, err := s.wordRepo.Insert(ctx, w)
	if err != nil {
		return nil, false, &domain.StorageError{Op: "insert", Err: err}
	}

	if !created {
		existing, err := s.wordRepo.Get(ctx, key)
		if err != nil {
			return nil, false, storageErr("get", err)
		}
		return existing, false, nil
	}

	s.logger.Info("Word captured", zap.String("word", key), zap.String("source_url", sourceURL))
	return w, true, nil
}

// Get returns the stored record for word
func (s *WordService) Get(ctx context.Context, word string) (*domain.Word, error) {
	key := domain.NormalizeWord(word)
	if key == "" {
		return nil, domain.ErrNotFound
	}

	w, err := s.wordRepo.Get(ctx, key)
	if err != nil {
		return nil, storageErr("get", err)
	}
	return w, nil
}

// Forget deletes a word; forgetting an unknown word succeeds
func (s *WordService) Forget(ctx context.Context, word string) error {
	key := domain.NormalizeWord(word)
	if key == "" {
		return nil
	}

	unlock := s.locks.Lock(key)
	defer unlock()

	if err := s.wordRepo.Delete(ctx, key); err != nil {
		return &domain.StorageError{Op: "delete", Err: err}
	}

	s.logger.Info("Word forgotten", zap.String("word", key))
	return nil
}

// ClearAll deletes every stored word
func (s *WordService) ClearAll(ctx context.Context) error {
	if err := s.wordRepo.DeleteAll(ctx); err != nil {
		return &domain.StorageError{Op: "delete all", Err: err}
	}

	s.logger.Info("All words cleared")
	return nil
}

// ApplyResponse records a review of word with the given quality and returns the updated record.
// Unknown words yield domain.ErrNotFound and nothing is created.
func (s *WordService) ApplyResponse(ctx context.Context, word string, quality float64) (*domain.Word, error) {
	w, _, err := s.Grade(ctx, word, quality)
	return w, err
}

// Grade is ApplyResponse that also reports whether this review mastered the word
func (s *WordService) Grade(ctx context.Context, word string, quality float64) (*domain.Word, bool, error) {
	key := domain.NormalizeWord(word)
	if key == "" {
		return nil, false, domain.ErrNotFound
	}

	unlock := s.locks.Lock(key)
	defer unlock()

	now := s.clock()
	newlyMastered := false
	updated, err := s.wordRepo.Update(ctx, key, func(w *domain.Word) error {
		wasMastered := w.IsMastered
		*w = srs.Review(*w, quality, now)
		newlyMastered = w.IsMastered && !wasMastered
		return nil
	})
	if err != nil {
		return nil, false, storageErr("update", err)
	}

	s.logger.Debug("Review applied",
		zap.String("word", key),
		zap.Float64("quality", quality),
		zap.Int("interval_days", updated.IntervalDays),
		zap.Float64("ease_factor", updated.EaseFactor),
	)
	if newlyMastered {
		s.logger.Info("Word mastered", zap.String("word", key))
	}

	return updated, newlyMastered, nil
}

// DueQueue returns words due now, earliest first. A limit <= 0 means no limit.
func (s *WordService) DueQueue(ctx context.Context, limit int) ([]domain.Word, error) {
	words, err := s.wordRepo.ListDue(ctx, s.clock(), limit)
	if err != nil {
		return nil, &domain.StorageError{Op: "list due", Err: err}
	}
	return words, nil
}

// clock returns the current time at the microsecond precision both stores keep
func (s *WordService) clock() time.Time {
	return s.now().Truncate(time.Microsecond)
}

// storageErr wraps err unless it is a lookup miss
func storageErr(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrNotFound
	}
	return &domain.StorageError{Op: op, Err: err}
}
