// Package app provides application initialization and dependency injection.
package app

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/meal-planner-service/config"
	"github.com/guttosm/meal-planner-service/internal/http"
)

// App is the wired application.
type App struct {
	Router   *gin.Engine
	services *ServiceComponents
	db       *DatabaseComponents
}

// InitializeApp creates and wires all application dependencies.
func InitializeApp(cfg config.Config) (*App, error) {
	InitializeLogger(cfg.Log)

	db := InitializeDatabase(cfg.Database, cfg.Recorder.Retention)
	services := InitializeServices(cfg, db)

	rc, err := InitializeRouter(services, db, cfg)
	if err != nil {
		services.Close()
		_ = db.Close(context.Background())
		return nil, err
	}

	return &App{
		Router:   http.NewRouter(rc.Handlers, rc.HealthHandler, rc.Config),
		services: services,
		db:       db,
	}, nil
}

// Close flushes plan history and disconnects from MongoDB. Call it after
// the HTTP server has stopped accepting requests.
func (a *App) Close(ctx context.Context) error {
	a.services.Close()
	return a.db.Close(ctx)
}
