package service

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tdp/popcorn-palace/internal/domain"
)

// ShowtimeService owns showtime records. For a fixed theater no two
// showtimes may overlap in time (bounds included, so exact boundary touches
// conflict), and a showtime must run at least as long as its movie.
type ShowtimeService struct {
	showtimes domain.ShowtimeRepository
	movies    domain.MovieRepository
	cascade   *Cascade
	tx        domain.TxRunner
	locks     *KeyMutex
}

func NewShowtimeService(
	showtimes domain.ShowtimeRepository,
	movies domain.MovieRepository,
	cascade *Cascade,
	tx domain.TxRunner,
	locks *KeyMutex,
) *ShowtimeService {
	return &ShowtimeService{
		showtimes: showtimes,
		movies:    movies,
		cascade:   cascade,
		tx:        tx,
		locks:     locks,
	}
}

func (s *ShowtimeService) GetAll(ctx context.Context) ([]*domain.Showtime, error) {
	return s.showtimes.GetAll(ctx)
}

func (s *ShowtimeService) GetByID(ctx context.Context, id int64) (*domain.Showtime, error) {
	showtime, err := s.showtimes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.NotFoundError("there is no showtime with the given id: %d", id)
		}
		return nil, err
	}

	return showtime, nil
}

func (s *ShowtimeService) Create(ctx context.Context, showtime *domain.Showtime) (*domain.Showtime, error) {
	if err := validateShowtimeFields(showtime); err != nil {
		return nil, err
	}

	// The overlap check and the insert must be serialized per theater, or
	// two concurrent adds could both pass the check and both commit. The
	// movie key serializes the sufficiency check against duration updates:
	// without it, this read could see the old duration while an increase
	// revalidates before the insert lands.
	unlock := s.locks.LockAll(movieKey(showtime.MovieID), theaterKey(showtime.Theater))
	defer unlock()

	movie, err := s.movies.GetByID(ctx, showtime.MovieID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.InvalidArgumentError("movie with the given id does not exist")
		}
		return nil, err
	}

	if showtime.DurationMinutes() < movie.Duration {
		return nil, domain.InvalidArgumentError(
			"the duration of a showtime must be equal or greater than the movie's duration")
	}

	overlapping, err := s.showtimes.GetOverlapping(ctx, showtime.Theater, showtime.StartTime, showtime.EndTime)
	if err != nil {
		return nil, err
	}
	if len(overlapping) > 0 {
		return nil, domain.ConflictError("the showtime you are trying to add overlaps with an existing showtime")
	}

	if err := s.showtimes.Create(ctx, showtime); err != nil {
		return nil, err
	}

	return showtime, nil
}

// Update applies a partial update to the showtime with the given id. After
// merging, the interval ordering, the duration sufficiency against the
// (possibly re-resolved) movie, and the non-overlap invariant are all
// re-checked against the merged record, excluding the record itself from
// the overlap query.
func (s *ShowtimeService) Update(ctx context.Context, id int64, update domain.ShowtimeUpdate) (*domain.Showtime, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Lock every theater and movie the merged record can land in. The set
	// is known before merging: the current values plus the supplied ones,
	// if any. The movie keys serialize the sufficiency check against
	// concurrent duration updates.
	keys := []string{theaterKey(current.Theater), movieKey(current.MovieID)}
	if update.Theater != nil {
		keys = append(keys, theaterKey(*update.Theater))
	}
	if update.MovieID != nil {
		keys = append(keys, movieKey(*update.MovieID))
	}
	unlock := s.locks.LockAll(keys...)
	defer unlock()

	// Re-read under the lock; a concurrent update may have landed since.
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := *existing

	if update.MovieID != nil {
		if *update.MovieID <= 0 {
			return nil, domain.InvalidArgumentError("movieId must be a valid id greater than 0")
		}
		if _, err := s.movies.GetByID(ctx, *update.MovieID); err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return nil, domain.NotFoundError("there is no movie with the given id: %d", *update.MovieID)
			}
			return nil, err
		}
		merged.MovieID = *update.MovieID
	}

	if update.Theater != nil && strings.TrimSpace(*update.Theater) != "" {
		merged.Theater = *update.Theater
	}

	if update.StartTime != nil {
		merged.StartTime = *update.StartTime
	}

	if update.EndTime != nil {
		merged.EndTime = *update.EndTime
	}

	if update.Price != nil && update.Price.IsPositive() {
		merged.Price = *update.Price
	}

	if !merged.StartTime.Before(merged.EndTime) {
		return nil, domain.InvalidArgumentError("startTime must be earlier than endTime")
	}

	movie, err := s.movies.GetByID(ctx, merged.MovieID)
	if err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
		return nil, err
	}
	if movie != nil && merged.DurationMinutes() < movie.Duration {
		return nil, domain.InvalidArgumentError(
			"the duration of a showtime must be equal or greater than the movie's duration")
	}

	overlapping, err := s.showtimes.GetOverlapping(ctx, merged.Theater, merged.StartTime, merged.EndTime)
	if err != nil {
		return nil, err
	}
	for _, other := range overlapping {
		if other.ID != id {
			return nil, domain.ConflictError("the updated showtime overlaps with an existing showtime")
		}
	}

	if err := s.showtimes.Update(ctx, &merged); err != nil {
		return nil, err
	}

	return &merged, nil
}

// Delete removes the showtime and all of its bookings in one transaction,
// bookings first.
func (s *ShowtimeService) Delete(ctx context.Context, id int64) error {
	// Serialized with booking creation for the same showtime.
	unlock := s.locks.Lock(showtimeKey(id))
	defer unlock()

	showtime, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.cascade.DeleteBookingsForShowtime(ctx, showtime.ID); err != nil {
			return err
		}

		return s.showtimes.Delete(ctx, showtime.ID)
	})
}

// validateShowtimeFields checks everything that needs no storage access;
// movie resolution and the sufficiency check run later, under the locks.
func validateShowtimeFields(showtime *domain.Showtime) error {
	if showtime.MovieID <= 0 {
		return domain.InvalidArgumentError("movieId is required and must be a valid id")
	}

	if strings.TrimSpace(showtime.Theater) == "" {
		return domain.InvalidArgumentError("theater is required and can't be empty")
	}

	if showtime.StartTime.IsZero() {
		return domain.InvalidArgumentError("startTime is required and can't be empty")
	}

	if showtime.EndTime.IsZero() {
		return domain.InvalidArgumentError("endTime is required and can't be empty")
	}

	if !showtime.StartTime.Before(showtime.EndTime) {
		return domain.InvalidArgumentError("startTime must be earlier than endTime")
	}

	if showtime.Price.Cmp(decimal.Zero) <= 0 {
		return domain.InvalidArgumentError("price is required and must be greater than 0")
	}

	return nil
}
