package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/tdp/popcorn-palace/internal/domain"
)

// BookingService owns booking records. A (showtime, seat) pair is booked at
// most once; bookings are never updated, only created and deleted.
type BookingService struct {
	bookings  domain.BookingRepository
	showtimes domain.ShowtimeRepository
	locks     *KeyMutex
}

func NewBookingService(
	bookings domain.BookingRepository,
	showtimes domain.ShowtimeRepository,
	locks *KeyMutex,
) *BookingService {
	return &BookingService{
		bookings:  bookings,
		showtimes: showtimes,
		locks:     locks,
	}
}

func (s *BookingService) GetAll(ctx context.Context) ([]*domain.Booking, error) {
	return s.bookings.GetAll(ctx)
}

func (s *BookingService) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if booking.ShowtimeID <= 0 {
		return nil, domain.InvalidArgumentError("showtimeId is required and must be a valid number greater than 0")
	}

	if _, err := s.showtimes.GetByID(ctx, booking.ShowtimeID); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.InvalidArgumentError(
				"there is no showtime with the given showtimeId: %d", booking.ShowtimeID)
		}
		return nil, err
	}

	if booking.SeatNumber <= 0 {
		return nil, domain.InvalidArgumentError("seatNumber is required and must be greater than 0")
	}

	if strings.TrimSpace(booking.UserID) == "" {
		return nil, domain.InvalidArgumentError("userId is required and can't be empty")
	}

	if _, err := uuid.Parse(booking.UserID); err != nil {
		return nil, domain.InvalidArgumentError("userId must be a valid UUID")
	}

	// The seat check and the insert must be serialized per showtime, or two
	// concurrent bookings for the same seat could both pass the check.
	unlock := s.locks.Lock(showtimeKey(booking.ShowtimeID))
	defer unlock()

	_, err := s.bookings.GetByShowtimeAndSeat(ctx, booking.ShowtimeID, booking.SeatNumber)
	if err == nil {
		return nil, domain.ConflictError("the selected seat is already taken for this showtime")
	}
	if !errors.Is(err, domain.ErrRecordNotFound) {
		return nil, err
	}

	booking.ID = uuid.New()

	if err := s.bookings.Create(ctx, booking); err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict):
			return nil, domain.ConflictError("the selected seat is already taken for this showtime")
		case errors.Is(err, domain.ErrRecordNotFound):
			// The showtime was cascade-deleted between the existence check
			// and the insert.
			return nil, domain.InvalidArgumentError(
				"there is no showtime with the given showtimeId: %d", booking.ShowtimeID)
		default:
			return nil, err
		}
	}

	return booking, nil
}
