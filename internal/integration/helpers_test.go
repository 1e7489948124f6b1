package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func prepareRequest(method, path string, body io.Reader) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

func jsonBodyString(body string) io.Reader {
	return strings.NewReader(body)
}

// compareResponse compares the response body against the expected JSON,
// ignoring the non-deterministic fields.
func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	var expected any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		return k == "timestamp" || k == "requestId" || k == "bookingId" || k == "id"
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func insertMovie(t testing.TB, app *TestApp, title string, duration int) int64 {
	var id int64

	err := app.DB.QueryRow(context.Background(),
		`INSERT INTO movies (title, genre, duration, rating, release_year)
		 VALUES ($1, 'Sci-Fi', $2, 8.3, 2021)
		 RETURNING id`,
		title, duration).Scan(&id)
	require.NoError(t, err)

	return id
}

func insertShowtime(t testing.TB, app *TestApp, movieID int64, theater string, start, end time.Time) int64 {
	var id int64

	err := app.DB.QueryRow(context.Background(),
		`INSERT INTO showtimes (movie_id, theater, start_time, end_time, price)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		movieID, theater, start, end, decimal.NewFromFloat(12.50)).Scan(&id)
	require.NoError(t, err)

	return id
}

func countRows(t testing.TB, app *TestApp, table string) int {
	var n int

	err := app.DB.QueryRow(context.Background(), "SELECT count(*) FROM "+table).Scan(&n)
	require.NoError(t, err)

	return n
}
