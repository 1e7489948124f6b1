package mocks

import (
	"context"

	"github.com/tdp/popcorn-palace/internal/domain"
)

type MockBookingRepo struct {
	domain.BookingRepository
	GetAllFunc               func(ctx context.Context) ([]*domain.Booking, error)
	GetByShowtimeAndSeatFunc func(ctx context.Context, showtimeID int64, seatNumber int) (*domain.Booking, error)
	CreateFunc               func(ctx context.Context, booking *domain.Booking) error
	DeleteByShowtimeIDFunc   func(ctx context.Context, showtimeID int64) error
}

func (m *MockBookingRepo) GetAll(ctx context.Context) ([]*domain.Booking, error) {
	return m.GetAllFunc(ctx)
}

func (m *MockBookingRepo) GetByShowtimeAndSeat(
	ctx context.Context,
	showtimeID int64,
	seatNumber int) (*domain.Booking, error) {

	return m.GetByShowtimeAndSeatFunc(ctx, showtimeID, seatNumber)
}

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	return m.CreateFunc(ctx, booking)
}

func (m *MockBookingRepo) DeleteByShowtimeID(ctx context.Context, showtimeID int64) error {
	return m.DeleteByShowtimeIDFunc(ctx, showtimeID)
}
