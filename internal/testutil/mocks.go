package testutil

import (
	"context"
	"time"

	"lexmora/internal/domain"
	"lexmora/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockWordRepository is a mock for WordRepository
type MockWordRepository struct {
	mock.Mock
}

var _ repository.WordRepository = (*MockWordRepository)(nil)

func (m *MockWordRepository) Insert(ctx context.Context, w *domain.Word) (bool, error) {
	args := m.Called(ctx, w)
	return args.Bool(0), args.Error(1)
}

func (m *MockWordRepository) Get(ctx context.Context, word string) (*domain.Word, error) {
	args := m.Called(ctx, word)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Word), args.Error(1)
}

// Update applies fn to a copy of the stored word passed as the first return value
func (m *MockWordRepository) Update(ctx context.Context, word string, fn repository.UpdateFunc) (*domain.Word, error) {
	args := m.Called(ctx, word, fn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if err := args.Error(1); err != nil {
		return nil, err
	}
	w := *args.Get(0).(*domain.Word)
	if err := fn(&w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (m *MockWordRepository) Delete(ctx context.Context, word string) error {
	args := m.Called(ctx, word)
	return args.Error(0)
}

func (m *MockWordRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockWordRepository) ListDue(ctx context.Context, now time.Time, limit int) ([]domain.Word, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Word), args.Error(1)
}

func (m *MockWordRepository) Count(ctx context.Context) (int, int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockWordRepository) ActivityTimes(ctx context.Context) ([]time.Time, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}
