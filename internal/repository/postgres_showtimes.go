package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tdp/popcorn-palace/internal/domain"
)

type PostgresShowtimeRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowtimeRepository(db *pgxpool.Pool) *PostgresShowtimeRepository {
	return &PostgresShowtimeRepository{
		db: db,
	}
}

func (p *PostgresShowtimeRepository) GetAll(ctx context.Context) ([]*domain.Showtime, error) {
	query := `
		SELECT id, movie_id, theater, start_time, end_time, price
		FROM showtimes
	`

	rows, err := querierFrom(ctx, p.db).Query(ctx, query)
	if err != nil {
		return nil, err
	}

	return collectShowtimes(rows)
}

func (p *PostgresShowtimeRepository) GetByID(ctx context.Context, id int64) (*domain.Showtime, error) {
	query := `
		SELECT id, movie_id, theater, start_time, end_time, price
		FROM showtimes
		WHERE id = $1
	`

	var showtime domain.Showtime

	err := querierFrom(ctx, p.db).QueryRow(ctx, query, id).Scan(
		&showtime.ID,
		&showtime.MovieID,
		&showtime.Theater,
		&showtime.StartTime,
		&showtime.EndTime,
		&showtime.Price,
	)

	if err != nil {
		return nil, mapError(err)
	}

	return &showtime, nil
}

func (p *PostgresShowtimeRepository) GetByMovieID(ctx context.Context, movieID int64) ([]*domain.Showtime, error) {
	query := `
		SELECT id, movie_id, theater, start_time, end_time, price
		FROM showtimes
		WHERE movie_id = $1
	`

	rows, err := querierFrom(ctx, p.db).Query(ctx, query, movieID)
	if err != nil {
		return nil, err
	}

	return collectShowtimes(rows)
}

// GetOverlapping uses inclusive bounds on both ends, so an interval that
// merely touches another at a single instant is reported as overlapping.
func (p *PostgresShowtimeRepository) GetOverlapping(
	ctx context.Context,
	theater string,
	start, end time.Time) ([]*domain.Showtime, error) {

	query := `
		SELECT id, movie_id, theater, start_time, end_time, price
		FROM showtimes
		WHERE theater = $1 AND start_time <= $3 AND $2 <= end_time
	`

	rows, err := querierFrom(ctx, p.db).Query(ctx, query, theater, start, end)
	if err != nil {
		return nil, err
	}

	return collectShowtimes(rows)
}

func collectShowtimes(rows pgx.Rows) ([]*domain.Showtime, error) {
	defer rows.Close()

	showtimes := []*domain.Showtime{}

	for rows.Next() {
		var showtime domain.Showtime

		err := rows.Scan(
			&showtime.ID,
			&showtime.MovieID,
			&showtime.Theater,
			&showtime.StartTime,
			&showtime.EndTime,
			&showtime.Price,
		)

		if err != nil {
			return nil, err
		}

		showtimes = append(showtimes, &showtime)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return showtimes, nil
}

func (p *PostgresShowtimeRepository) Create(ctx context.Context, showtime *domain.Showtime) error {
	query := `
		INSERT INTO showtimes (movie_id, theater, start_time, end_time, price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := querierFrom(ctx, p.db).QueryRow(
		ctx,
		query,
		showtime.MovieID,
		showtime.Theater,
		showtime.StartTime,
		showtime.EndTime,
		showtime.Price,
	).Scan(&showtime.ID)

	if err != nil {
		return mapError(err)
	}

	return nil
}

func (p *PostgresShowtimeRepository) Update(ctx context.Context, showtime *domain.Showtime) error {
	query := `
		UPDATE showtimes
		SET movie_id = $1, theater = $2, start_time = $3, end_time = $4, price = $5
		WHERE id = $6
	`

	tag, err := querierFrom(ctx, p.db).Exec(
		ctx,
		query,
		showtime.MovieID,
		showtime.Theater,
		showtime.StartTime,
		showtime.EndTime,
		showtime.Price,
		showtime.ID,
	)

	if err != nil {
		return mapError(err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresShowtimeRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM showtimes
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
