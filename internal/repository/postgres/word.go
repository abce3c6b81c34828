package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lexmora/internal/domain"
	"lexmora/internal/repository"
)

const wordColumns = `word, captured_at, source_url, meanings, ease_factor, interval_days,
	repetitions, lapses, next_review_at, is_mastered, mastered_at`

// WordRepo implements repository.WordRepository on PostgreSQL
type WordRepo struct {
	db *sql.DB
}

// NewWordRepo creates a new word repository
func NewWordRepo(db *sql.DB) *WordRepo {
	return &WordRepo{db: db}
}

var _ repository.WordRepository = (*WordRepo)(nil)

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// Insert saves a new word, leaving an existing record with the same key untouched
func (r *WordRepo) Insert(ctx context.Context, w *domain.Word) (bool, error) {
	meanings, err := encodeMeanings(w.Meanings)
	if err != nil {
		return false, err
	}

	query := `
		INSERT INTO words (` + wordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (word) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query,
		w.Word, w.CapturedAt, w.SourceURL, meanings, w.EaseFactor, w.IntervalDays,
		w.Repetitions, w.Lapses, w.NextReviewAt, w.IsMastered, nullTime(w.MasteredAt),
	)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Get returns the word stored under the given key
func (r *WordRepo) Get(ctx context.Context, word string) (*domain.Word, error) {
	query := `SELECT ` + wordColumns + ` FROM words WHERE word = $1`

	w, err := scanWord(r.db.QueryRowContext(ctx, query, word))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

// Update locks the row, applies fn and writes the scheduling fields back in one transaction
func (r *WordRepo) Update(ctx context.Context, word string, fn repository.UpdateFunc) (*domain.Word, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `SELECT ` + wordColumns + ` FROM words WHERE word = $1 FOR UPDATE`
	w, err := scanWord(tx.QueryRowContext(ctx, query, word))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := fn(w); err != nil {
		return nil, err
	}

	update := `
		UPDATE words
		SET ease_factor = $2,
			interval_days = $3,
			repetitions = $4,
			lapses = $5,
			next_review_at = $6,
			is_mastered = $7,
			mastered_at = $8
		WHERE word = $1
	`
	if _, err := tx.ExecContext(ctx, update,
		w.Word, w.EaseFactor, w.IntervalDays, w.Repetitions, w.Lapses,
		w.NextReviewAt, w.IsMastered, nullTime(w.MasteredAt),
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return w, nil
}

// Delete removes a word; deleting a missing word is not an error
func (r *WordRepo) Delete(ctx context.Context, word string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM words WHERE word = $1`, word)
	return err
}

// DeleteAll removes every word
func (r *WordRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM words`)
	return err
}

// ListDue returns words due at now, earliest first
func (r *WordRepo) ListDue(ctx context.Context, now time.Time, limit int) ([]domain.Word, error) {
	query := `
		SELECT ` + wordColumns + `
		FROM words
		WHERE next_review_at <= $1
		ORDER BY next_review_at ASC, word ASC
	`
	args := []interface{}{now}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []domain.Word
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, err
		}
		words = append(words, *w)
	}

	return words, rows.Err()
}

// Count returns the total number of words and how many of them are mastered
func (r *WordRepo) Count(ctx context.Context) (int, int, error) {
	query := `SELECT COUNT(*), COUNT(*) FILTER (WHERE is_mastered) FROM words`

	var total, mastered int
	if err := r.db.QueryRowContext(ctx, query).Scan(&total, &mastered); err != nil {
		return 0, 0, err
	}
	return total, mastered, nil
}

// ActivityTimes returns mastered_at, or captured_at when not mastered, for every word
func (r *WordRepo) ActivityTimes(ctx context.Context) ([]time.Time, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT COALESCE(mastered_at, captured_at) FROM words`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var times []time.Time
	for rows.Next() {
		var ts time.Time
		if err := rows.Scan(&ts); err != nil {
			return nil, err
		}
		times = append(times, ts)
	}

	return times, rows.Err()
}

func scanWord(s rowScanner) (*domain.Word, error) {
	var w domain.Word
	var meanings []byte
	var masteredAt sql.NullTime

	err := s.Scan(
		&w.Word, &w.CapturedAt, &w.SourceURL, &meanings, &w.EaseFactor, &w.IntervalDays,
		&w.Repetitions, &w.Lapses, &w.NextReviewAt, &w.IsMastered, &masteredAt,
	)
	if err != nil {
		return nil, err
	}

	if len(meanings) > 0 {
		if err := json.Unmarshal(meanings, &w.Meanings); err != nil {
			return nil, fmt.Errorf("decode meanings of %q: %w", w.Word, err)
		}
	}
	if masteredAt.Valid {
		w.MasteredAt = &masteredAt.Time
	}

	return &w, nil
}

func encodeMeanings(meanings []domain.Meaning) (interface{}, error) {
	if len(meanings) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(meanings)
	if err != nil {
		return nil, fmt.Errorf("encode meanings: %w", err)
	}
	// lib/pq sends []byte as bytea, jsonb needs text
	return string(b), nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
