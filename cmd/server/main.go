package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yardroster/backend/internal/config"
	httpapi "github.com/yardroster/backend/internal/http"
	"github.com/yardroster/backend/internal/http/handlers"
	"github.com/yardroster/backend/internal/planner"
	"github.com/yardroster/backend/internal/solver"
	"github.com/yardroster/backend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "yardroster-backend").Logger()

	ctx := context.Background()

	var backend store.Backend
	if cfg.DatabaseURL != "" {
		pg, err := store.NewPostgresBackend(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect db")
		}
		backend = pg
		logger.Info().Msg("using postgres snapshot backend")
	} else {
		backend = store.NewFileBackend(cfg.StatePath)
		logger.Info().Str("path", cfg.StatePath).Msg("using file snapshot backend")
	}
	defer backend.Close()

	snapshots := store.NewSnapshotStore(backend, time.Duration(cfg.SaveDebounceMS)*time.Millisecond, logger)

	defaults := planner.DefaultSettings()
	state := snapshots.Load(ctx, store.SchedulerState{
		Workers:           planner.DefaultEmployees(),
		CarYards:          planner.DefaultCarYards(),
		MaxHoursPerDay:    defaults.MaxHoursPerDay,
		EarliestStartTime: defaults.EarliestStartTime,
		MaxRadius:         defaults.MaxRadius,
	})
	settings := planner.Settings{
		MaxHoursPerDay:      state.MaxHoursPerDay,
		EarliestStartTime:   state.EarliestStartTime,
		MaxRadius:           state.MaxRadius,
		TravelBufferMinutes: defaults.TravelBufferMinutes,
	}
	p := planner.New(state.Workers, state.CarYards)

	var adapter solver.Adapter
	if cfg.SolverBaseURL == "" {
		adapter = solver.MockAdapter{}
		logger.Info().Msg("using mock solver adapter")
	} else {
		adapter = solver.HTTPAdapter{
			BaseURL:  cfg.SolverBaseURL,
			Endpoint: cfg.RosterEndpoint,
			Timeout:  time.Duration(cfg.SolverTimeoutMS) * time.Millisecond,
		}
	}

	h := handlers.New(p, settings, adapter, snapshots, logger)
	router := httpapi.Router(cfg, h, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	snapshots.Flush()
	logger.Info().Msg("server stopped")
}
