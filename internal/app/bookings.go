package app

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/tdp/popcorn-palace/internal/domain"
)

type BookingRequest struct {
	ShowtimeID int64  `json:"showtimeId" validate:"required,gt=0"`
	SeatNumber int    `json:"seatNumber" validate:"required,gt=0"`
	UserID     string `json:"userId" validate:"required,notblank,uuid"`
}

type BookingResponse struct {
	ID         uuid.UUID `json:"bookingId"`
	ShowtimeID int64     `json:"showtimeId"`
	SeatNumber int       `json:"seatNumber"`
	UserID     string    `json:"userId"`
}

type CreateBookingResponse struct {
	BookingID uuid.UUID `json:"bookingId"`
}

func (app *Application) GetAllBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := app.bookings.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]BookingResponse, len(bookings))
	for i, booking := range bookings {
		resp[i] = BookingResponse{
			ID:         booking.ID,
			ShowtimeID: booking.ShowtimeID,
			SeatNumber: booking.SeatNumber,
			UserID:     booking.UserID,
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req BookingRequest

	err := app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(req)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	booking := &domain.Booking{
		ShowtimeID: req.ShowtimeID,
		SeatNumber: req.SeatNumber,
		UserID:     req.UserID,
	}

	booking, err = app.bookings.Create(r.Context(), booking)
	if err != nil {
		app.engineErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, CreateBookingResponse{BookingID: booking.ID}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
