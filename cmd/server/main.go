package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/dkeye/aircast/internal/adapters/http"
	"github.com/dkeye/aircast/internal/app"
	"github.com/dkeye/aircast/internal/config"
	"github.com/dkeye/aircast/internal/discovery"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	// Human-friendly output for terminal; in production you may want JSON only.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	stats := app.NewStatsBroadcaster()
	reg := app.NewRegistry(stats)
	relay := app.NewRelay(reg)
	store := app.NewSessionStore(clock.New(), cfg.SessionMaxAge)
	store.StartSweeper(ctx, cfg.SessionSweep)

	adv := discovery.NewAdvertiser()
	if cfg.MDNS {
		if err := adv.Start(cfg.ServiceName, cfg.Port); err != nil {
			log.Warn().Err(err).Msg("mdns advertisement unavailable")
		}
	}
	defer adv.Shutdown()

	r := router.SetupRouter(ctx, cfg, router.Deps{
		Registry: reg,
		Relay:    relay,
		Sessions: store,
	})
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("Aircast server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
