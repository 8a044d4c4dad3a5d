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

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-catalog/internal/database"
	"github.com/metinatakli/movie-catalog/internal/domain"
	"github.com/metinatakli/movie-catalog/internal/repository"
	"github.com/metinatakli/movie-catalog/internal/service"
	appvalidator "github.com/metinatakli/movie-catalog/internal/validator"
	"github.com/metinatakli/movie-catalog/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const serviceName = "movie-catalog-api"

var (
	version = vcs.Version()
)

type pinger interface {
	Ping(ctx context.Context) error
}

type Application struct {
	config         Config
	logger         *slog.Logger
	db             pinger
	redis          redis.UniversalClient
	validator      *validator.Validate
	sessionManager *scs.SessionManager

	movieService  *service.MovieService
	ratingService *service.RatingService
}

// NewApp wires the catalog services over the given stores. db and redisClient
// are only used by the health check and may be nil.
func NewApp(
	cfg Config,
	logger *slog.Logger,
	db pinger,
	redisClient redis.UniversalClient,
	validator *validator.Validate,
	sessionManager *scs.SessionManager,
	movieRepo domain.MovieRepository,
	ratingRepo domain.RatingRepository) *Application {

	return &Application{
		config:         cfg,
		logger:         logger,
		db:             db,
		redis:          redisClient,
		validator:      validator,
		sessionManager: sessionManager,
		movieService:   service.NewMovieService(logger, validator, movieRepo, ratingRepo),
		ratingService:  service.NewRatingService(logger, movieRepo, ratingRepo),
	}
}

func Run() error {
	cfg, displayVersion, err := ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		return err
	}

	if displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := slog.New(NewMultiHandler(
		slog.NewTextHandler(os.Stdout, nil),
		otelslog.NewHandler(serviceName),
	))

	shutdownTelemetry, err := InitTelemetry(cfg, logger)
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	var (
		db         pinger
		movieRepo  domain.MovieRepository
		ratingRepo domain.RatingRepository
	)

	if cfg.DB.DSN == "" {
		logger.Warn("database DSN not set, using the in-memory store")

		store := repository.NewMemoryStore()
		movieRepo, ratingRepo = store, store
	} else {
		if cfg.DB.Migrate {
			err = database.Migrate(cfg.DB.DSN)
			if err != nil {
				return err
			}
		}

		pool, err := NewDatabasePool(cfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		db = pool
		movieRepo = repository.NewPostgresMovieRepository(pool)
		ratingRepo = repository.NewPostgresRatingRepository(pool)
	}

	var (
		redisClient    redis.UniversalClient
		sessionManager *scs.SessionManager
	)

	if cfg.Redis.URL == "" {
		sessionManager = NewSessionManager(memstore.New())
	} else {
		client, err := NewRedisClient(cfg)
		if err != nil {
			return err
		}
		defer client.Close()

		redisClient = client
		sessionManager = NewSessionManager(goredisstore.New(client))
	}

	app := NewApp(cfg, logger, db, redisClient, appvalidator.NewValidator(), sessionManager, movieRepo, ratingRepo)

	return app.run()
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	return database.NewPool(database.PoolConfig{
		DSN:          cfg.DB.DSN,
		MaxOpenConns: cfg.DB.MaxOpenConns,
		MaxIdleTime:  cfg.DB.MaxIdleTime,
	})
}

func NewSessionManager(store scs.Store) *scs.SessionManager {
	sessionManager := scs.New()

	sessionManager.Store = store
	sessionManager.IdleTimeout = 20 * time.Minute
	sessionManager.Cookie.Name = "session_id"

	return sessionManager
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	err := errors.Join(redisotel.InstrumentTracing(rdb), redisotel.InstrumentMetrics(rdb))
	if err != nil {
		rdb.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}

func (app *Application) run() error {
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

		shutdownError <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env, "version", version)

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
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(app.recoverPanic)
	r.Use(app.sessionManager.LoadAndSave)

	r.Get("/healthcheck", app.GetHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(app.requireAuthentication)

		r.Route("/movies", func(r chi.Router) {
			r.Get("/", app.GetMovies)
			r.With(app.requireRole(RoleEditor)).Post("/", app.CreateMovie)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", app.GetMovie)
				r.With(app.requireRole(RoleEditor)).Put("/", app.UpdateMovie)
				r.With(app.requireRole(RoleAdmin)).Delete("/", app.DeleteMovie)

				r.Put("/ratings", app.RateMovie)
				r.Delete("/ratings", app.DeleteRating)
			})
		})

		r.Get("/ratings/me", app.GetUserRatings)
	})

	return r
}
