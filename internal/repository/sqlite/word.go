package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lexmora/internal/domain"
	"lexmora/internal/repository"

	"github.com/jmoiron/sqlx"
)

// Fixed width so that stored timestamps order lexically
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const wordColumns = `word, captured_at, source_url, meanings, ease_factor, interval_days,
	repetitions, lapses, next_review_at, is_mastered, mastered_at`

type wordRow struct {
	Word         string         `db:"word"`
	CapturedAt   string         `db:"captured_at"`
	SourceURL    string         `db:"source_url"`
	Meanings     sql.NullString `db:"meanings"`
	EaseFactor   float64        `db:"ease_factor"`
	IntervalDays int            `db:"interval_days"`
	Repetitions  int            `db:"repetitions"`
	Lapses       int            `db:"lapses"`
	NextReviewAt string         `db:"next_review_at"`
	IsMastered   bool           `db:"is_mastered"`
	MasteredAt   sql.NullString `db:"mastered_at"`
}

// WordRepo implements repository.WordRepository on SQLite
type WordRepo struct {
	db *sqlx.DB
}

// NewWordRepo creates a new word repository
func NewWordRepo(db *sqlx.DB) *WordRepo {
	return &WordRepo{db: db}
}

var _ repository.WordRepository = (*WordRepo)(nil)

// Insert saves a new word, leaving an existing record with the same key untouched
func (r *WordRepo) Insert(ctx context.Context, w *domain.Word) (bool, error) {
	row, err := toRow(w)
	if err != nil {
		return false, err
	}

	query := `
		INSERT INTO words (` + wordColumns + `)
		VALUES (:word, :captured_at, :source_url, :meanings, :ease_factor, :interval_days,
			:repetitions, :lapses, :next_review_at, :is_mastered, :mastered_at)
		ON CONFLICT (word) DO NOTHING
	`
	res, err := r.db.NamedExecContext(ctx, query, row)
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
	var row wordRow
	err := r.db.GetContext(ctx, &row, `SELECT `+wordColumns+` FROM words WHERE word = ?`, word)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromRow(row)
}

// Update applies fn to the stored word inside an immediate transaction
func (r *WordRepo) Update(ctx context.Context, word string, fn repository.UpdateFunc) (*domain.Word, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var row wordRow
	err = tx.GetContext(ctx, &row, `SELECT `+wordColumns+` FROM words WHERE word = ?`, word)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	w, err := fromRow(row)
	if err != nil {
		return nil, err
	}
	if err := fn(w); err != nil {
		return nil, err
	}

	updated, err := toRow(w)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE words
		SET ease_factor = :ease_factor,
			interval_days = :interval_days,
			repetitions = :repetitions,
			lapses = :lapses,
			next_review_at = :next_review_at,
			is_mastered = :is_mastered,
			mastered_at = :mastered_at
		WHERE word = :word
	`
	if _, err := tx.NamedExecContext(ctx, query, updated); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return w, nil
}

// Delete removes a word; deleting a missing word is not an error
func (r *WordRepo) Delete(ctx context.Context, word string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM words WHERE word = ?`, word)
	return err
}

// DeleteAll removes every word
func (r *WordRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM words`)
	return err
}

// ListDue returns words due at now, earliest first
func (r *WordRepo) ListDue(ctx context.Context, now time.Time, limit int) ([]domain.Word, error) {
	if limit <= 0 {
		limit = -1 // no limit in SQLite
	}

	var rows []wordRow
	query := `
		SELECT ` + wordColumns + `
		FROM words
		WHERE next_review_at <= ?
		ORDER BY next_review_at ASC, word ASC
		LIMIT ?
	`
	if err := r.db.SelectContext(ctx, &rows, query, formatTime(now), limit); err != nil {
		return nil, err
	}

	words := make([]domain.Word, 0, len(rows))
	for _, row := range rows {
		w, err := fromRow(row)
		if err != nil {
			return nil, err
		}
		words = append(words, *w)
	}
	return words, nil
}

// Count returns the total number of words and how many of them are mastered
func (r *WordRepo) Count(ctx context.Context) (int, int, error) {
	var counts struct {
		Total    int `db:"total"`
		Mastered int `db:"mastered"`
	}
	query := `SELECT COUNT(*) AS total, COALESCE(SUM(is_mastered), 0) AS mastered FROM words`
	if err := r.db.GetContext(ctx, &counts, query); err != nil {
		return 0, 0, err
	}
	return counts.Total, counts.Mastered, nil
}

// ActivityTimes returns mastered_at, or captured_at when not mastered, for every word
func (r *WordRepo) ActivityTimes(ctx context.Context) ([]time.Time, error) {
	var raw []string
	if err := r.db.SelectContext(ctx, &raw, `SELECT COALESCE(mastered_at, captured_at) FROM words`); err != nil {
		return nil, err
	}

	times := make([]time.Time, 0, len(raw))
	for _, s := range raw {
		t, err := parseTime(s)
		if err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, nil
}

func toRow(w *domain.Word) (wordRow, error) {
	row := wordRow{
		Word:         w.Word,
		CapturedAt:   formatTime(w.CapturedAt),
		SourceURL:    w.SourceURL,
		EaseFactor:   w.EaseFactor,
		IntervalDays: w.IntervalDays,
		Repetitions:  w.Repetitions,
		Lapses:       w.Lapses,
		NextReviewAt: formatTime(w.NextReviewAt),
		IsMastered:   w.IsMastered,
	}
	if len(w.Meanings) > 0 {
		b, err := json.Marshal(w.Meanings)
		if err != nil {
			return wordRow{}, fmt.Errorf("encode meanings: %w", err)
		}
		row.Meanings = sql.NullString{String: string(b), Valid: true}
	}
	if w.MasteredAt != nil {
		row.MasteredAt = sql.NullString{String: formatTime(*w.MasteredAt), Valid: true}
	}
	return row, nil
}

func fromRow(row wordRow) (*domain.Word, error) {
	w := &domain.Word{
		Word:         row.Word,
		SourceURL:    row.SourceURL,
		EaseFactor:   row.EaseFactor,
		IntervalDays: row.IntervalDays,
		Repetitions:  row.Repetitions,
		Lapses:       row.Lapses,
		IsMastered:   row.IsMastered,
	}

	var err error
	if w.CapturedAt, err = parseTime(row.CapturedAt); err != nil {
		return nil, err
	}
	if w.NextReviewAt, err = parseTime(row.NextReviewAt); err != nil {
		return nil, err
	}
	if row.MasteredAt.Valid {
		t, err := parseTime(row.MasteredAt.String)
		if err != nil {
			return nil, err
		}
		w.MasteredAt = &t
	}
	if row.Meanings.Valid && row.Meanings.String != "" {
		if err := json.Unmarshal([]byte(row.Meanings.String), &w.Meanings); err != nil {
			return nil, fmt.Errorf("decode meanings of %q: %w", row.Word, err)
		}
	}
	return w, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}
