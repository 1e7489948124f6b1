package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tdp/popcorn-palace/internal/domain"
)

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

func (p *PostgresBookingRepository) GetAll(ctx context.Context) ([]*domain.Booking, error) {
	query := `
		SELECT id, showtime_id, seat_number, user_id
		FROM bookings
	`

	rows, err := querierFrom(ctx, p.db).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []*domain.Booking{}

	for rows.Next() {
		var booking domain.Booking

		err := rows.Scan(
			&booking.ID,
			&booking.ShowtimeID,
			&booking.SeatNumber,
			&booking.UserID,
		)

		if err != nil {
			return nil, err
		}

		bookings = append(bookings, &booking)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (p *PostgresBookingRepository) GetByShowtimeAndSeat(
	ctx context.Context,
	showtimeID int64,
	seatNumber int) (*domain.Booking, error) {

	query := `
		SELECT id, showtime_id, seat_number, user_id
		FROM bookings
		WHERE showtime_id = $1 AND seat_number = $2
	`

	var booking domain.Booking

	err := querierFrom(ctx, p.db).QueryRow(ctx, query, showtimeID, seatNumber).Scan(
		&booking.ID,
		&booking.ShowtimeID,
		&booking.SeatNumber,
		&booking.UserID,
	)

	if err != nil {
		return nil, mapError(err)
	}

	return &booking, nil
}

func (p *PostgresBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (id, showtime_id, seat_number, user_id)
		VALUES ($1, $2, $3, $4)
	`

	_, err := querierFrom(ctx, p.db).Exec(
		ctx,
		query,
		booking.ID,
		booking.ShowtimeID,
		booking.SeatNumber,
		booking.UserID,
	)

	if err != nil {
		return mapError(err)
	}

	return nil
}

func (p *PostgresBookingRepository) DeleteByShowtimeID(ctx context.Context, showtimeID int64) error {
	query := `
		DELETE FROM bookings
		WHERE showtime_id = $1
	`

	// Deleting zero rows is fine; a showtime without bookings is normal.
	_, err := querierFrom(ctx, p.db).Exec(ctx, query, showtimeID)

	return err
}
