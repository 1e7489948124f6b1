package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/tdp/popcorn-palace/internal/domain"
)

// MoviePolicy bounds the rating and release year accepted by the registry.
// A zero ceiling or bound disables that check; the minimal contract
// (non-negative rating, positive release year) always applies.
type MoviePolicy struct {
	MaxRating      float64
	MinReleaseYear int
	MaxReleaseYear int
}

func DefaultMoviePolicy() MoviePolicy {
	return MoviePolicy{
		MaxRating:      10,
		MinReleaseYear: 1888,
		MaxReleaseYear: time.Now().Year() + 5,
	}
}

// MovieService owns movie records. Titles are unique across all movies, and
// a movie is only ever deleted through the cascade that removes its
// showtimes and their bookings first.
type MovieService struct {
	movies  domain.MovieRepository
	cascade *Cascade
	tx      domain.TxRunner
	policy  MoviePolicy
	locks   *KeyMutex
}

func NewMovieService(
	movies domain.MovieRepository,
	cascade *Cascade,
	tx domain.TxRunner,
	policy MoviePolicy,
	locks *KeyMutex,
) *MovieService {
	return &MovieService{
		movies:  movies,
		cascade: cascade,
		tx:      tx,
		policy:  policy,
		locks:   locks,
	}
}

func (s *MovieService) GetAll(ctx context.Context) ([]*domain.Movie, error) {
	return s.movies.GetAll(ctx)
}

func (s *MovieService) Create(ctx context.Context, movie *domain.Movie) (*domain.Movie, error) {
	if err := s.validateMovie(movie); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(movieTitleKey(movie.Title))
	defer unlock()

	_, err := s.movies.GetByTitle(ctx, movie.Title)
	if err == nil {
		return nil, domain.ConflictError("a movie with this title already exists")
	}
	if !errors.Is(err, domain.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.movies.Create(ctx, movie); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ConflictError("a movie with this title already exists")
		}
		return nil, err
	}

	return movie, nil
}

// Update applies a partial update to the movie with the given title. If the
// merged duration is larger than before, every showtime referencing the
// movie is re-validated first and the whole update is rejected on the first
// showtime that would become too short.
func (s *MovieService) Update(ctx context.Context, title string, update domain.MovieUpdate) (*domain.Movie, error) {
	unlock := s.locks.Lock(movieTitleKey(title))
	defer unlock()

	existing, err := s.movies.GetByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.NotFoundError("there is no movie with the given title '%s'", title)
		}
		return nil, err
	}

	// The showtime scheduler checks sufficiency against this movie under
	// the same key, so a duration change cannot race a showtime insert.
	unlockMovie := s.locks.Lock(movieKey(existing.ID))
	defer unlockMovie()

	merged := *existing

	if update.Title != nil {
		if strings.TrimSpace(*update.Title) == "" {
			return nil, domain.InvalidArgumentError("title can't be empty")
		}
		if *update.Title != existing.Title {
			other, err := s.movies.GetByTitle(ctx, *update.Title)
			switch {
			case err == nil && other.ID != existing.ID:
				return nil, domain.ConflictError("the updated title is already taken")
			case err != nil && !errors.Is(err, domain.ErrRecordNotFound):
				return nil, err
			}
		}
		merged.Title = *update.Title
	}

	if update.Genre != nil {
		if err := s.validateGenre(*update.Genre); err != nil {
			return nil, err
		}
		merged.Genre = *update.Genre
	}

	if update.Duration != nil {
		if *update.Duration <= 0 {
			return nil, domain.InvalidArgumentError("duration must be greater than 0")
		}
		merged.Duration = *update.Duration
	}

	if update.Rating != nil {
		if err := s.validateRating(*update.Rating); err != nil {
			return nil, err
		}
		merged.Rating = *update.Rating
	}

	if update.ReleaseYear != nil {
		if err := s.validateReleaseYear(*update.ReleaseYear); err != nil {
			return nil, err
		}
		merged.ReleaseYear = *update.ReleaseYear
	}

	if merged.Duration > existing.Duration {
		if err := s.cascade.RevalidateShowtimes(ctx, &merged); err != nil {
			return nil, err
		}
	}

	if err := s.movies.Update(ctx, &merged); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ConflictError("the updated title is already taken")
		}
		return nil, err
	}

	return &merged, nil
}

// Delete removes the movie with the given title together with all of its
// showtimes and their bookings, in one transaction. Children go first so no
// reader ever observes a booking or showtime without its owner.
func (s *MovieService) Delete(ctx context.Context, title string) error {
	unlock := s.locks.Lock(movieTitleKey(title))
	defer unlock()

	movie, err := s.movies.GetByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.NotFoundError("there is no movie with the given title '%s'", title)
		}
		return err
	}

	// Keeps a concurrent showtime insert for this movie from slipping in
	// between the cascade's enumeration and the movie row's removal.
	unlockMovie := s.locks.Lock(movieKey(movie.ID))
	defer unlockMovie()

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.cascade.DeleteShowtimesForMovie(ctx, movie.ID); err != nil {
			return err
		}

		return s.movies.Delete(ctx, movie.ID)
	})
}

func (s *MovieService) validateMovie(movie *domain.Movie) error {
	if strings.TrimSpace(movie.Title) == "" {
		return domain.InvalidArgumentError("title is required and can't be empty")
	}

	if err := s.validateGenre(movie.Genre); err != nil {
		return err
	}

	if movie.Duration <= 0 {
		return domain.InvalidArgumentError("duration is required and must be greater than 0")
	}

	if err := s.validateRating(movie.Rating); err != nil {
		return err
	}

	return s.validateReleaseYear(movie.ReleaseYear)
}

func (s *MovieService) validateGenre(genre string) error {
	if strings.TrimSpace(genre) == "" {
		return domain.InvalidArgumentError("genre is required and can't be empty")
	}

	for _, ch := range genre {
		if unicode.IsDigit(ch) {
			return domain.InvalidArgumentError("genre must not contain digits")
		}
	}

	return nil
}

func (s *MovieService) validateRating(rating float64) error {
	if rating < 0 {
		return domain.InvalidArgumentError("rating must be a non-negative number")
	}

	if s.policy.MaxRating > 0 && rating > s.policy.MaxRating {
		return domain.InvalidArgumentError("rating must not exceed %g", s.policy.MaxRating)
	}

	return nil
}

func (s *MovieService) validateReleaseYear(year int) error {
	if year <= 0 {
		return domain.InvalidArgumentError("releaseYear must be a positive number")
	}

	if s.policy.MinReleaseYear > 0 && year < s.policy.MinReleaseYear {
		return domain.InvalidArgumentError("releaseYear must not be earlier than %d", s.policy.MinReleaseYear)
	}

	if s.policy.MaxReleaseYear > 0 && year > s.policy.MaxReleaseYear {
		return domain.InvalidArgumentError("releaseYear must not be later than %d", s.policy.MaxReleaseYear)
	}

	return nil
}
