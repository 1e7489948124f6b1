package app

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tdp/popcorn-palace/internal/domain"
)

type ShowtimeRequest struct {
	MovieID   int64           `json:"movieId" validate:"required,gt=0"`
	Theater   string          `json:"theater" validate:"required,notblank"`
	StartTime time.Time       `json:"startTime" validate:"required"`
	EndTime   time.Time       `json:"endTime" validate:"required"`
	Price     decimal.Decimal `json:"price"`
}

type ShowtimeUpdateRequest struct {
	MovieID   *int64           `json:"movieId"`
	Theater   *string          `json:"theater"`
	StartTime *time.Time       `json:"startTime"`
	EndTime   *time.Time       `json:"endTime"`
	Price     *decimal.Decimal `json:"price"`
}

type ShowtimeResponse struct {
	Id        int64           `json:"id"`
	MovieID   int64           `json:"movieId"`
	Theater   string          `json:"theater"`
	StartTime time.Time       `json:"startTime"`
	EndTime   time.Time       `json:"endTime"`
	Price     decimal.Decimal `json:"price"`
}

func (app *Application) GetAllShowtimes(w http.ResponseWriter, r *http.Request) {
	showtimes, err := app.showtimes.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]ShowtimeResponse, len(showtimes))
	for i, showtime := range showtimes {
		resp[i] = toShowtimeResponse(showtime)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetShowtime(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "showtimeId")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	showtime, err := app.showtimes.GetByID(r.Context(), id)
	if err != nil {
		app.engineErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toShowtimeResponse(showtime), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateShowtime(w http.ResponseWriter, r *http.Request) {
	var req ShowtimeRequest

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

	showtime := &domain.Showtime{
		MovieID:   req.MovieID,
		Theater:   req.Theater,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Price:     req.Price,
	}

	showtime, err = app.showtimes.Create(r.Context(), showtime)
	if err != nil {
		app.engineErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toShowtimeResponse(showtime), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateShowtime(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "showtimeId")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	var req ShowtimeUpdateRequest

	err = app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	update := domain.ShowtimeUpdate{
		MovieID:   req.MovieID,
		Theater:   req.Theater,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Price:     req.Price,
	}

	showtime, err := app.showtimes.Update(r.Context(), id, update)
	if err != nil {
		app.engineErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toShowtimeResponse(showtime), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteShowtime(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "showtimeId")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	err = app.showtimes.Delete(r.Context(), id)
	if err != nil {
		app.engineErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toShowtimeResponse(showtime *domain.Showtime) ShowtimeResponse {
	return ShowtimeResponse{
		Id:        showtime.ID,
		MovieID:   showtime.MovieID,
		Theater:   showtime.Theater,
		StartTime: showtime.StartTime,
		EndTime:   showtime.EndTime,
		Price:     showtime.Price,
	}
}
