package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Showtime is a screening of a movie in a theater over a time interval.
// The theater name is the exclusivity key: two showtimes in the same theater
// must not overlap in time.
type Showtime struct {
	ID        int64
	MovieID   int64
	Theater   string
	StartTime time.Time
	EndTime   time.Time
	Price     decimal.Decimal
}

// DurationMinutes returns the length of the showtime in whole minutes,
// truncated the same way the sufficiency check expects.
func (s *Showtime) DurationMinutes() int {
	return int(s.EndTime.Sub(s.StartTime) / time.Minute)
}

// ShowtimeUpdate carries the fields of a partial showtime update; nil means
// the field was omitted.
type ShowtimeUpdate struct {
	MovieID   *int64
	Theater   *string
	StartTime *time.Time
	EndTime   *time.Time
	Price     *decimal.Decimal
}

type ShowtimeRepository interface {
	GetAll(ctx context.Context) ([]*Showtime, error)
	GetByID(ctx context.Context, id int64) (*Showtime, error)
	GetByMovieID(ctx context.Context, movieID int64) ([]*Showtime, error)

	// GetOverlapping returns the showtimes in the theater whose interval
	// shares at least one instant with [start, end], bounds included.
	GetOverlapping(ctx context.Context, theater string, start, end time.Time) ([]*Showtime, error)

	Create(ctx context.Context, showtime *Showtime) error
	Update(ctx context.Context, showtime *Showtime) error
	Delete(ctx context.Context, id int64) error
}
