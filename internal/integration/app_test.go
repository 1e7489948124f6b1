package integration_test

import (
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tdp/popcorn-palace/internal/app"
	appvalidator "github.com/tdp/popcorn-palace/internal/validator"
)

type TestApp struct {
	App *app.Application
	DB  *pgxpool.Pool
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	application := app.NewApp(cfg, logger, db, validator)

	return &TestApp{
		App: application,
		DB:  db,
	}, nil
}
