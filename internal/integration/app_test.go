package integration_test

import (
	"log/slog"
	"os"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-catalog/internal/app"
	"github.com/metinatakli/movie-catalog/internal/repository"
	appvalidator "github.com/metinatakli/movie-catalog/internal/validator"
)

type TestApp struct {
	App      *app.Application
	DB       *pgxpool.Pool
	Sessions *scs.SessionManager
	Movies   *repository.PostgresMovieRepository
	Ratings  *repository.PostgresRatingRepository
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	sessionManager := app.NewSessionManager(goredisstore.New(redisClient))

	movieRepo := repository.NewPostgresMovieRepository(db)
	ratingRepo := repository.NewPostgresRatingRepository(db)

	application := app.NewApp(
		cfg,
		logger,
		db,
		redisClient,
		validator,
		sessionManager,
		movieRepo,
		ratingRepo,
	)

	return &TestApp{
		App:      application,
		DB:       db,
		Sessions: sessionManager,
		Movies:   movieRepo,
		Ratings:  ratingRepo,
	}, nil
}
