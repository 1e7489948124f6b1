package app

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/tdp/popcorn-palace/internal/domain"
	"github.com/tdp/popcorn-palace/internal/mocks"
)

func TestGetAllBookings(t *testing.T) {
	bookingID := uuid.New()
	userID := uuid.NewString()

	app := newTestApplication(testRepos{
		bookings: &mocks.MockBookingRepo{
			GetAllFunc: func(ctx context.Context) ([]*domain.Booking, error) {
				return []*domain.Booking{
					{ID: bookingID, ShowtimeID: 1, SeatNumber: 15, UserID: userID},
				}, nil
			},
		},
	})

	w := executeRequest(t, app, http.MethodGet, "/bookings/", nil)

	if got := w.Code; got != http.StatusOK {
		t.Errorf("GetAllBookings() status = %v, want %v", got, http.StatusOK)
	}

	var response []BookingResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	want := []BookingResponse{
		{ID: bookingID, ShowtimeID: 1, SeatNumber: 15, UserID: userID},
	}
	if diff := cmp.Diff(want, response); diff != "" {
		t.Errorf("GetAllBookings() response mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateBooking(t *testing.T) {
	userID := uuid.NewString()

	showtimeRepo := func() *mocks.MockShowtimeRepo {
		return &mocks.MockShowtimeRepo{
			GetByIDFunc: func(ctx context.Context, id int64) (*domain.Showtime, error) {
				if id == 1 {
					return &domain.Showtime{ID: 1}, nil
				}
				return nil, domain.ErrRecordNotFound
			},
		}
	}

	tests := []struct {
		name                     string
		body                     any
		getByShowtimeAndSeatFunc func(ctx context.Context, showtimeID int64, seatNumber int) (*domain.Booking, error)
		wantStatus               int
		wantErrMessage           string
		wantField                string
		wantIssue                string
		wantBookingID            bool
	}{
		{
			name:          "books a free seat",
			body:          BookingRequest{ShowtimeID: 1, SeatNumber: 15, UserID: userID},
			wantStatus:    http.StatusCreated,
			wantBookingID: true,
		},
		{
			name:       "rejects a missing showtime id",
			body:       BookingRequest{SeatNumber: 15, UserID: userID},
			wantStatus: http.StatusBadRequest,
			wantField:  "ShowtimeID",
			wantIssue:  "is required",
		},
		{
			name:       "rejects a malformed user id",
			body:       BookingRequest{ShowtimeID: 1, SeatNumber: 15, UserID: "not-a-uuid"},
			wantStatus: http.StatusBadRequest,
			wantField:  "UserID",
			wantIssue:  "must be a valid UUID",
		},
		{
			name:           "rejects an unresolvable showtime id",
			body:           BookingRequest{ShowtimeID: 99, SeatNumber: 15, UserID: userID},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "there is no showtime with the given showtimeId: 99",
		},
		{
			name: "rejects a seat that is already taken",
			body: BookingRequest{ShowtimeID: 1, SeatNumber: 15, UserID: userID},
			getByShowtimeAndSeatFunc: func(ctx context.Context, showtimeID int64, seatNumber int) (*domain.Booking, error) {
				return &domain.Booking{ID: uuid.New(), ShowtimeID: showtimeID, SeatNumber: seatNumber}, nil
			},
			wantStatus:     http.StatusConflict,
			wantErrMessage: "the selected seat is already taken for this showtime",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getByShowtimeAndSeat := tt.getByShowtimeAndSeatFunc
			if getByShowtimeAndSeat == nil {
				getByShowtimeAndSeat = func(ctx context.Context, showtimeID int64, seatNumber int) (*domain.Booking, error) {
					return nil, domain.ErrRecordNotFound
				}
			}

			app := newTestApplication(testRepos{
				showtimes: showtimeRepo(),
				bookings: &mocks.MockBookingRepo{
					GetByShowtimeAndSeatFunc: getByShowtimeAndSeat,
					CreateFunc: func(ctx context.Context, booking *domain.Booking) error {
						return nil
					},
				},
			})

			w := executeRequest(t, app, http.MethodPost, "/bookings/", tt.body)

			if got := w.Code; got != tt.wantStatus {
				t.Errorf("CreateBooking() status = %v, want %v", got, tt.wantStatus)
			}

			switch {
			case tt.wantBookingID:
				var response CreateBookingResponse
				if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}
				if response.BookingID == uuid.Nil {
					t.Errorf("CreateBooking() did not return a booking id")
				}
			case tt.wantIssue != "":
				checkValidationIssue(t, w, tt.wantField, tt.wantIssue)
			case tt.wantErrMessage != "":
				checkErrorMessage(t, w, tt.wantErrMessage)
			}
		})
	}
}
