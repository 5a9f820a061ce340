package ui

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"colguard/adapters/tabular"
	"colguard/app"
	"colguard/ports"
)

// App represents the HTTP application
type App struct {
	router   *chi.Mux
	detector *app.DetectorService
	reader   ports.DatasetReader
	runs     ports.RunRepository // nil when persistence is disabled
	port     string
}

// Config holds HTTP application configuration
type Config struct {
	Port    string
	Workers int
}

// NewApp creates a new HTTP application
func NewApp(config Config, runs ports.RunRepository) *App {
	workers := config.Workers
	if workers < 1 {
		workers = 1
	}

	a := &App{
		router:   chi.NewRouter(),
		detector: app.NewDetectorService(app.WithWorkers(workers)),
		reader:   tabular.NewDataReader(),
		runs:     runs,
		port:     config.Port,
	}

	a.setupMiddleware()
	a.setupRoutes()
	return a
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Timeout(5 * time.Minute))
}

func (a *App) setupRoutes() {
	a.router.Get("/health", a.handleHealth)

	a.router.Post("/detect", a.handleDetect)
	a.router.Post("/detect/dataset", a.handleDetectDataset)
	a.router.Post("/detect/report", a.handleDetectReport)

	a.router.Get("/runs", a.handleListRuns)
	a.router.Get("/runs/{id}", a.handleGetRun)
}

// Router exposes the configured router, mainly for tests
func (a *App) Router() http.Handler {
	return a.router
}

// Start runs the HTTP server until it fails
func (a *App) Start() error {
	addr := fmt.Sprintf(":%s", a.port)
	log.Printf("[UI] listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}
