package app

import (
	"context"

	"log/slog"

	"github.com/kingfoodmart/kfm-insights/config"
	httpapi "github.com/kingfoodmart/kfm-insights/internal/api/http"
	"github.com/kingfoodmart/kfm-insights/internal/apisrv/insights"
	"github.com/kingfoodmart/kfm-insights/internal/cache"
	"github.com/kingfoodmart/kfm-insights/internal/observe"
	"github.com/kingfoodmart/kfm-insights/internal/store"
)

// App is the main application
type App struct {
	hs   *httpapi.Server
	db   *store.MongoStore
	c    *config.Config
	done chan struct{}
}

// New returns a new instance of App
func New(c *config.Config) *App {
	return &App{
		c:    c,
		done: make(chan struct{}),
	}
}

// Start starts the app
func (a *App) Start(ctx context.Context) error {
	var err error
	slog.Default().InfoContext(ctx, "starting insights service")

	a.db, err = store.New(ctx, a.c.Mongo)
	if err != nil {
		slog.Default().ErrorContext(ctx, "couldn't connect to document store",
			slog.String("err", err.Error()),
		)
		return err
	}

	reg := observe.NewRegistry()
	snapshots := cache.New(a.db, a.c.Cache, reg)
	insightsS := insights.New(snapshots, reg, &a.c.Insights)

	a.hs = httpapi.New(&a.c.HTTP, insightsS, reg)
	if err = a.hs.Start(ctx); err != nil {
		slog.Default().ErrorContext(ctx, "cannot start http server",
			slog.String("err", err.Error()),
		)
		return err
	}

	return nil
}

// Stop stops the application and waits for all services to exit
func (a *App) Stop(ctx context.Context) {
	if a.hs != nil {
		_ = a.hs.Stop(ctx)
	}
	if a.db != nil {
		_ = a.db.Close(ctx)
	}
	close(a.done)
}

// Done returns a channel that is closed after the application has exited
func (a *App) Done() chan struct{} {
	return a.done
}
