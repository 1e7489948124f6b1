package app

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/tdp/popcorn-palace/internal/mocks"
	"github.com/tdp/popcorn-palace/internal/service"
	appvalidator "github.com/tdp/popcorn-palace/internal/validator"
)

// testRepos bundles the mocks behind a test application; tests fill in only
// the funcs the handler under test will reach.
type testRepos struct {
	movies    *mocks.MockMovieRepo
	showtimes *mocks.MockShowtimeRepo
	bookings  *mocks.MockBookingRepo
}

func newTestApplication(repos testRepos) *Application {
	if repos.movies == nil {
		repos.movies = &mocks.MockMovieRepo{}
	}
	if repos.showtimes == nil {
		repos.showtimes = &mocks.MockShowtimeRepo{}
	}
	if repos.bookings == nil {
		repos.bookings = &mocks.MockBookingRepo{}
	}

	tx := &mocks.MockTxRunner{}
	cascade := service.NewCascade(repos.showtimes, repos.bookings)
	locks := service.NewKeyMutex()

	return &Application{
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		validator: appvalidator.NewValidator(),
		movies:    service.NewMovieService(repos.movies, cascade, tx, service.DefaultMoviePolicy(), locks),
		showtimes: service.NewShowtimeService(repos.showtimes, repos.movies, cascade, tx, locks),
		bookings:  service.NewBookingService(repos.bookings, repos.showtimes, locks),
	}
}

// executeRequest dispatches through the full router so URL parameters and
// middleware behave as in production.
func executeRequest(t *testing.T, app *Application, method, url string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	app.Routes().ServeHTTP(w, r)

	return w
}

func checkErrorMessage(t *testing.T, w *httptest.ResponseRecorder, want string) {
	t.Helper()

	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}

	if resp.Message != want {
		t.Errorf("Error message = %q, want %q", resp.Message, want)
	}
}

func checkValidationIssue(t *testing.T, w *httptest.ResponseRecorder, field, issue string) {
	t.Helper()

	var resp ValidationErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode validation error response: %v", err)
	}

	for _, vErr := range resp.ValidationErrors {
		if vErr.Field == field && vErr.Issue == issue {
			return
		}
	}

	t.Errorf("validation issue {%s: %s} not found in %+v", field, issue, resp.ValidationErrors)
}

func ptr[T any](v T) *T {
	return &v
}
