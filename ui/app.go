package ui

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"studysize/adapters/report"
	"studysize/app"
	"studysize/internal"
	apperrors "studysize/internal/errors"
	"studysize/ports"
)

// App serves the calculator over a JSON HTTP API
type App struct {
	router   *chi.Mux
	calc     ports.Calculator
	sweeps   *app.SweepService
	writers  report.Writers
	validate *validator.Validate
	logger   *internal.Logger
	config   Config
}

// Config holds HTTP application configuration
type Config struct {
	Port              string
	ReadTimeout       time.Duration
	ShutdownTimeout   time.Duration
	DefaultConfidence float64
}

// NewApp creates a new HTTP application
func NewApp(config Config, calc ports.Calculator, sweeps *app.SweepService, logger *internal.Logger) *App {
	if config.DefaultConfidence == 0 {
		config.DefaultConfidence = 0.95
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	a := &App{
		router:   chi.NewRouter(),
		calc:     calc,
		sweeps:   sweeps,
		writers:  report.DefaultWriters("Study size sweep"),
		validate: validate,
		logger:   logger,
		config:   config,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.RealIP)
	a.router.Use(a.requestLogger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		a.writeError(w, apperrors.NotFound("route "+r.URL.Path))
	})

	a.router.Get("/healthz", a.handleHealth)

	a.router.Route("/api", func(r chi.Router) {
		r.Get("/functions", a.handleListFunctions)
		r.Get("/functions/{name}", a.handleGetFunction)

		r.Post("/sample-size", a.handleSampleSize)
		r.Post("/precision", a.handlePrecision)
		r.Post("/upper-bound", a.handleUpperBound)

		r.Post("/map", a.handleMap)
		r.Post("/plot", a.handlePlot)
	})
}

// Handler exposes the router, mainly for tests
func (a *App) Handler() http.Handler {
	return a.router
}

// Start serves until ctx is canceled, then shuts down gracefully
func (a *App) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + strings.TrimPrefix(a.config.Port, ":"),
		Handler:           a.router,
		ReadHeaderTimeout: a.config.ReadTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Starting study size API on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.ShutdownTimeout)
	defer cancel()
	a.logger.Info("Shutting down study size API")
	return srv.Shutdown(shutdownCtx)
}

// requestLogger emits one structured debug event per request.
func (a *App) requestLogger(next http.Handler) http.Handler {
	if a.logger.GetLevel() < internal.LogLevelDebug {
		return next
	}
	zl := a.logger.Zerolog()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zl.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("elapsed", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}
