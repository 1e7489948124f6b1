package domain

import "context"

// Movie is a catalog entry that showtimes are scheduled against. Duration is
// the runtime in minutes and acts as the lower bound for the length of every
// showtime referencing the movie.
type Movie struct {
	ID          int64
	Title       string
	Genre       string
	Duration    int
	Rating      float64
	ReleaseYear int
}

// MovieUpdate carries the fields of a partial movie update. A nil field was
// omitted by the caller and keeps its current value; a non-nil field is
// validated and applied. This keeps "omitted" distinguishable from "set to
// the zero value".
type MovieUpdate struct {
	Title       *string
	Genre       *string
	Duration    *int
	Rating      *float64
	ReleaseYear *int
}

type MovieRepository interface {
	GetAll(ctx context.Context) ([]*Movie, error)
	GetByID(ctx context.Context, id int64) (*Movie, error)
	GetByTitle(ctx context.Context, title string) (*Movie, error)
	Create(ctx context.Context, movie *Movie) error
	Update(ctx context.Context, movie *Movie) error
	Delete(ctx context.Context, id int64) error
}
