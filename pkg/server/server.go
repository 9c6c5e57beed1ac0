package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	handlers "github.com/leano777/bidflow/pkg/handlers/estimate"
	scopehandlers "github.com/leano777/bidflow/pkg/handlers/scope"
	"github.com/leano777/bidflow/pkg/services/alternates"
	"github.com/leano777/bidflow/pkg/services/assembly"
	"github.com/leano777/bidflow/pkg/services/compile"
	"github.com/leano777/bidflow/pkg/services/costing"

	bidflowmiddleware "github.com/leano777/bidflow/pkg/server/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type WebAPI struct {
	router *chi.Mux
	logger *zerolog.Logger
	server *http.Server
}

type Dependencies struct {
	Compiler   *compile.Compiler
	Assembly   *assembly.Engine
	Alternates *alternates.Manager
	Rates      costing.Rates
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	estHandler := handlers.NewHandler(config.Dependencies.Compiler, config.Dependencies.Assembly)
	scopeHandler := scopehandlers.NewHandler(
		config.Dependencies.Alternates,
		config.Dependencies.Compiler,
		config.Dependencies.Rates,
	)

	router := chi.NewRouter()

	router.Use(bidflowmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/estimates/compile", estHandler.Compile)
		r.Post("/estimates/scenarios", estHandler.Scenarios)
		r.Post("/scope/price", estHandler.PriceScope)
		r.Post("/rates/decompose", estHandler.Decompose)

		r.Post("/scopes", scopeHandler.CreateBase)
		r.Route("/scopes/{baseID}", func(r chi.Router) {
			r.Get("/alternates", scopeHandler.ListAlternates)
			r.Post("/alternates", scopeHandler.CreateAlternate)
			r.Post("/comparisons", scopeHandler.Compare)
		})
	})

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
