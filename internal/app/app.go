package app

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/kharcha/kharcha/internal/config"
	"github.com/kharcha/kharcha/internal/database"
	"github.com/kharcha/kharcha/internal/scheduler"
	"github.com/kharcha/kharcha/pkg/reminder"
	log "github.com/sirupsen/logrus"
)

// Application wires configuration, database, router, scheduler, and server
// lifecycle.
type Application struct {
	cfg       config.Application
	deps      *Dependencies
	router    *mux.Router
	srv       *http.Server
	scheduler *scheduler.Scheduler
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication() (*Application, error) {
	cfg, err := config.Load("./config/application.yaml")
	if err != nil {
		return nil, err
	}

	// DB + migrations
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	// db will be closed when server shuts down; defer not possible here, leave to process exit.
	if err := database.Migrate(cfg.Database); err != nil {
		return nil, err
	}

	r := mux.NewRouter()

	// Build dependencies (services, handlers...)
	deps := BuildDependencies(db, cfg)

	// Middleware chain
	SetupMiddleware(r, deps, cfg)

	// Routes
	RegisterRoutes(r, deps, cfg)

	srv := &http.Server{
		Handler:      r,
		Addr:         ":8080",
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	app := &Application{cfg: cfg, deps: deps, router: r, srv: srv}

	if cfg.Reminders.Enabled {
		interval := time.Duration(cfg.Reminders.IntervalSeconds) * time.Second
		app.scheduler = scheduler.New(interval, reminder.NewDispatchJob(deps.ReminderDispatcher))
	}

	return app, nil
}

// Run starts the background scheduler and the HTTP server, and blocks.
func (a *Application) Run() error {
	if a.scheduler != nil {
		a.scheduler.Start()
		defer a.scheduler.Stop(5 * time.Second)
	}
	log.Infof("Starting server on %s", a.srv.Addr)
	return a.srv.ListenAndServe()
}

// Dispatcher exposes the reminder dispatcher for one-shot runs.
func (a *Application) Dispatcher() *reminder.Dispatcher {
	return a.deps.ReminderDispatcher
}
