package mocks

import (
	"context"

	"github.com/tdp/popcorn-palace/internal/domain"
)

type MockMovieRepo struct {
	domain.MovieRepository
	GetAllFunc     func(ctx context.Context) ([]*domain.Movie, error)
	GetByIDFunc    func(ctx context.Context, id int64) (*domain.Movie, error)
	GetByTitleFunc func(ctx context.Context, title string) (*domain.Movie, error)
	CreateFunc     func(ctx context.Context, movie *domain.Movie) error
	UpdateFunc     func(ctx context.Context, movie *domain.Movie) error
	DeleteFunc     func(ctx context.Context, id int64) error
}

func (m *MockMovieRepo) GetAll(ctx context.Context) ([]*domain.Movie, error) {
	return m.GetAllFunc(ctx)
}

func (m *MockMovieRepo) GetByID(ctx context.Context, id int64) (*domain.Movie, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *MockMovieRepo) GetByTitle(ctx context.Context, title string) (*domain.Movie, error) {
	return m.GetByTitleFunc(ctx, title)
}

func (m *MockMovieRepo) Create(ctx context.Context, movie *domain.Movie) error {
	return m.CreateFunc(ctx, movie)
}

func (m *MockMovieRepo) Update(ctx context.Context, movie *domain.Movie) error {
	return m.UpdateFunc(ctx, movie)
}

func (m *MockMovieRepo) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}
