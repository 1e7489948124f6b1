package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riandyrn/otelchi"

	"github.com/tdp/popcorn-palace/internal/repository"
	"github.com/tdp/popcorn-palace/internal/service"
	appvalidator "github.com/tdp/popcorn-palace/internal/validator"
	"github.com/tdp/popcorn-palace/internal/vcs"
)

var (
	version = vcs.Version()
)

type Config struct {
	Port int
	Env  string
	DB   DBConfig

	OtelCollectorUrl string

	MaxRating      float64
	MinReleaseYear int
	MaxReleaseYear int
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type Application struct {
	config    Config
	logger    *slog.Logger
	db        *pgxpool.Pool
	validator *validator.Validate

	movies    *service.MovieService
	showtimes *service.ShowtimeService
	bookings  *service.BookingService
}

func Run() error {
	var cfg Config

	flag.IntVar(&cfg.Port, "port", 3000, "server port")
	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")

	flag.StringVar(&cfg.DB.DSN, "db-dsn", "", "PostgreSQL DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")

	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", "", "OpenTelemetry collector URL")

	flag.Float64Var(&cfg.MaxRating, "movie-max-rating", 10, "Highest accepted movie rating (0 disables the ceiling)")
	flag.IntVar(&cfg.MinReleaseYear, "movie-min-release-year", 1888, "Earliest accepted release year (0 disables the bound)")
	flag.IntVar(&cfg.MaxReleaseYear, "movie-max-release-year", time.Now().Year()+5, "Latest accepted release year (0 disables the bound)")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	db, err := NewDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	app := NewApp(cfg, logger, db, appvalidator.NewValidator())

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	return app.Serve()
}

func NewApp(cfg Config, logger *slog.Logger, db *pgxpool.Pool, validator *validator.Validate) *Application {
	movieRepo := repository.NewPostgresMovieRepository(db)
	showtimeRepo := repository.NewPostgresShowtimeRepository(db)
	bookingRepo := repository.NewPostgresBookingRepository(db)
	txRunner := repository.NewPgxTxRunner(db)

	cascade := service.NewCascade(showtimeRepo, bookingRepo)

	policy := service.MoviePolicy{
		MaxRating:      cfg.MaxRating,
		MinReleaseYear: cfg.MinReleaseYear,
		MaxReleaseYear: cfg.MaxReleaseYear,
	}

	// One lock table for all three services: the keys they guard (movies,
	// theaters, showtimes) cross service boundaries.
	locks := service.NewKeyMutex()

	return &Application{
		config:    cfg,
		logger:    logger,
		db:        db,
		validator: validator,
		movies:    service.NewMovieService(movieRepo, cascade, txRunner, policy, locks),
		showtimes: service.NewShowtimeService(showtimeRepo, movieRepo, cascade, txRunner, locks),
		bookings:  service.NewBookingService(bookingRepo, showtimeRepo, locks),
	}
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) Serve() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
		}

		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(otelchi.Middleware("popcorn-palace", otelchi.WithChiRoutes(r)))
	r.Use(app.recoverPanic)

	r.Get("/healthcheck", app.Healthcheck)

	r.Route("/movies", func(r chi.Router) {
		r.Get("/all", app.GetAllMovies)
		r.Post("/", app.CreateMovie)
		r.Post("/update/{movieTitle}", app.UpdateMovie)
		r.Delete("/{movieTitle}", app.DeleteMovie)
	})

	r.Route("/showtimes", func(r chi.Router) {
		r.Get("/all", app.GetAllShowtimes)
		r.Get("/{showtimeId}", app.GetShowtime)
		r.Post("/", app.CreateShowtime)
		r.Post("/update/{showtimeId}", app.UpdateShowtime)
		r.Delete("/{showtimeId}", app.DeleteShowtime)
	})

	r.Route("/bookings", func(r chi.Router) {
		r.Get("/", app.GetAllBookings)
		r.Post("/", app.CreateBooking)
	})

	return r
}
