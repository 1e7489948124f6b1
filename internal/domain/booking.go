package domain

import (
	"context"

	"github.com/google/uuid"
)

// Booking reserves one seat for one showtime. A (showtime, seat) pair can be
// booked at most once; bookings are never updated in place.
type Booking struct {
	ID         uuid.UUID
	ShowtimeID int64
	SeatNumber int
	UserID     string
}

type BookingRepository interface {
	GetAll(ctx context.Context) ([]*Booking, error)
	GetByShowtimeAndSeat(ctx context.Context, showtimeID int64, seatNumber int) (*Booking, error)
	Create(ctx context.Context, booking *Booking) error

	// DeleteByShowtimeID removes every booking of the showtime. Removing
	// zero rows is not an error.
	DeleteByShowtimeID(ctx context.Context, showtimeID int64) error
}
