package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tdp/popcorn-palace/internal/domain"
)

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func (p *PostgresMovieRepository) GetAll(ctx context.Context) ([]*domain.Movie, error) {
	query := `
		SELECT id, title, genre, duration, rating, release_year
		FROM movies
	`

	rows, err := querierFrom(ctx, p.db).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := []*domain.Movie{}

	for rows.Next() {
		var movie domain.Movie

		err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Genre,
			&movie.Duration,
			&movie.Rating,
			&movie.ReleaseYear,
		)

		if err != nil {
			return nil, err
		}

		movies = append(movies, &movie)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return movies, nil
}

func (p *PostgresMovieRepository) GetByID(ctx context.Context, id int64) (*domain.Movie, error) {
	query := `
		SELECT id, title, genre, duration, rating, release_year
		FROM movies
		WHERE id = $1
	`

	return p.getOne(ctx, query, id)
}

func (p *PostgresMovieRepository) GetByTitle(ctx context.Context, title string) (*domain.Movie, error) {
	query := `
		SELECT id, title, genre, duration, rating, release_year
		FROM movies
		WHERE title = $1
	`

	return p.getOne(ctx, query, title)
}

func (p *PostgresMovieRepository) getOne(ctx context.Context, query string, arg any) (*domain.Movie, error) {
	var movie domain.Movie

	err := querierFrom(ctx, p.db).QueryRow(ctx, query, arg).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Genre,
		&movie.Duration,
		&movie.Rating,
		&movie.ReleaseYear,
	)

	if err != nil {
		return nil, mapError(err)
	}

	return &movie, nil
}

func (p *PostgresMovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	query := `
		INSERT INTO movies (title, genre, duration, rating, release_year)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := querierFrom(ctx, p.db).QueryRow(
		ctx,
		query,
		movie.Title,
		movie.Genre,
		movie.Duration,
		movie.Rating,
		movie.ReleaseYear,
	).Scan(&movie.ID)

	if err != nil {
		return mapError(err)
	}

	return nil
}

func (p *PostgresMovieRepository) Update(ctx context.Context, movie *domain.Movie) error {
	query := `
		UPDATE movies
		SET title = $1, genre = $2, duration = $3, rating = $4, release_year = $5
		WHERE id = $6
	`

	tag, err := querierFrom(ctx, p.db).Exec(
		ctx,
		query,
		movie.Title,
		movie.Genre,
		movie.Duration,
		movie.Rating,
		movie.ReleaseYear,
		movie.ID,
	)

	if err != nil {
		return mapError(err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresMovieRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM movies
		WHERE id = $1
	`

	tag, err := querierFrom(ctx, p.db).Exec(ctx, query, id)
	if err != nil {
		return mapDeleteError(err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}
