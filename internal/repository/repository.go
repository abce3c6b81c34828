package repository

import (
	"context"
	"time"

	"lexmora/internal/domain"
)

// UpdateFunc mutates a loaded word inside a storage transaction.
// Returning an error aborts the transaction without writing.
type UpdateFunc func(w *domain.Word) error

// WordRepository defines word data operations.
// Lookups of a missing word return domain.ErrNotFound.
type WordRepository interface {
	// Insert stores w unless a record with the same key exists; reports whether it was created
	Insert(ctx context.Context, w *domain.Word) (bool, error)
	Get(ctx context.Context, word string) (*domain.Word, error)
	// Update loads the word, applies fn and writes the result in one transaction
	Update(ctx context.Context, word string, fn UpdateFunc) (*domain.Word, error)
	Delete(ctx context.Context, word string) error
	DeleteAll(ctx context.Context) error
	// ListDue returns words with next_review_at <= now ordered by next_review_at, then word.
	// A limit <= 0 means no limit.
	ListDue(ctx context.Context, now time.Time, limit int) ([]domain.Word, error)
	Count(ctx context.Context) (total, mastered int, err error)
	// ActivityTimes returns the last activity timestamp of every word
	ActivityTimes(ctx context.Context) ([]time.Time, error)
}
