package mocks

import (
	"context"
	"time"

	"github.com/tdp/popcorn-palace/internal/domain"
)

type MockShowtimeRepo struct {
	domain.ShowtimeRepository
	GetAllFunc         func(ctx context.Context) ([]*domain.Showtime, error)
	GetByIDFunc        func(ctx context.Context, id int64) (*domain.Showtime, error)
	GetByMovieIDFunc   func(ctx context.Context, movieID int64) ([]*domain.Showtime, error)
	GetOverlappingFunc func(ctx context.Context, theater string, start, end time.Time) ([]*domain.Showtime, error)
	CreateFunc         func(ctx context.Context, showtime *domain.Showtime) error
	UpdateFunc         func(ctx context.Context, showtime *domain.Showtime) error
	DeleteFunc         func(ctx context.Context, id int64) error
}

func (m *MockShowtimeRepo) GetAll(ctx context.Context) ([]*domain.Showtime, error) {
	return m.GetAllFunc(ctx)
}

func (m *MockShowtimeRepo) GetByID(ctx context.Context, id int64) (*domain.Showtime, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *MockShowtimeRepo) GetByMovieID(ctx context.Context, movieID int64) ([]*domain.Showtime, error) {
	return m.GetByMovieIDFunc(ctx, movieID)
}

func (m *MockShowtimeRepo) GetOverlapping(
	ctx context.Context,
	theater string,
	start, end time.Time) ([]*domain.Showtime, error) {

	return m.GetOverlappingFunc(ctx, theater, start, end)
}

func (m *MockShowtimeRepo) Create(ctx context.Context, showtime *domain.Showtime) error {
	return m.CreateFunc(ctx, showtime)
}

func (m *MockShowtimeRepo) Update(ctx context.Context, showtime *domain.Showtime) error {
	return m.UpdateFunc(ctx, showtime)
}

func (m *MockShowtimeRepo) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}
