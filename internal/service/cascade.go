package service

import (
	"context"

	"github.com/tdp/popcorn-palace/internal/domain"
)

// Cascade walks the movie -> showtime -> booking ownership chain for
// operations that span more than one entity. It holds no invariants of its
// own; delete walks must run inside a transaction supplied by the caller,
// and bookings are always removed strictly before their owning showtime.
type Cascade struct {
	showtimes domain.ShowtimeRepository
	bookings  domain.BookingRepository
}

func NewCascade(showtimes domain.ShowtimeRepository, bookings domain.BookingRepository) *Cascade {
	return &Cascade{
		showtimes: showtimes,
		bookings:  bookings,
	}
}

// RevalidateShowtimes checks that every showtime of the movie still runs at
// least as long as the movie. It is consulted when a movie's duration grows
// after showtimes were scheduled against the old value; the first violation
// aborts with the offending showtime id.
func (c *Cascade) RevalidateShowtimes(ctx context.Context, movie *domain.Movie) error {
	showtimes, err := c.showtimes.GetByMovieID(ctx, movie.ID)
	if err != nil {
		return err
	}

	for _, showtime := range showtimes {
		if showtime.DurationMinutes() < movie.Duration {
			return domain.InvalidArgumentError(
				"the updated duration conflicts with showtime %d: a showtime must be at least as long as the movie",
				showtime.ID,
			)
		}
	}

	return nil
}

// DeleteShowtimesForMovie removes every showtime of the movie, each one's
// bookings first.
func (c *Cascade) DeleteShowtimesForMovie(ctx context.Context, movieID int64) error {
	showtimes, err := c.showtimes.GetByMovieID(ctx, movieID)
	if err != nil {
		return err
	}

	for _, showtime := range showtimes {
		if err := c.bookings.DeleteByShowtimeID(ctx, showtime.ID); err != nil {
			return err
		}

		if err := c.showtimes.Delete(ctx, showtime.ID); err != nil {
			return err
		}
	}

	return nil
}

// DeleteBookingsForShowtime removes all bookings owned by the showtime.
// Removing zero bookings is not an error.
func (c *Cascade) DeleteBookingsForShowtime(ctx context.Context, showtimeID int64) error {
	return c.bookings.DeleteByShowtimeID(ctx, showtimeID)
}
