package app

import (
	"context"
	"net/http"
	"time"

	"github.com/metinatakli/movie-catalog/api"
	"github.com/metinatakli/movie-catalog/internal/vcs"
)

const (
	StatusUp   = "UP"
	StatusDown = "DOWN"
)

func (app *Application) GetHealth(w http.ResponseWriter, r *http.Request) {
	status := StatusUp
	httpStatus := http.StatusOK

	err := app.pingDependencies(r.Context())
	if err != nil {
		app.logError(r, err)

		status = StatusDown
		httpStatus = http.StatusServiceUnavailable
	}

	resp := api.HealthcheckResponse{
		Status: status,
		SystemInfo: api.SystemInfo{
			Version:     vcs.Version(),
			Environment: app.config.Env,
		},
	}

	err = app.writeJSON(w, httpStatus, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) pingDependencies(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if app.db != nil {
		err := app.db.Ping(ctx)
		if err != nil {
			return err
		}
	}

	if app.redis != nil {
		err := app.redis.Ping(ctx).Err()
		if err != nil {
			return err
		}
	}

	return nil
}
