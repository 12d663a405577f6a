package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/findash/findash/auth"
	"github.com/findash/findash/auth/sqlitestore"
	"github.com/findash/findash/internal/config"
	"github.com/findash/findash/mockapi"
	"github.com/findash/findash/monitor"
	"github.com/findash/findash/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running server: %s\n", err)
		os.Exit(1)
	}
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	cfg, err := config.Load(configPath())
	if err != nil {
		return errors.Wrap(err, "loading config")
	}

	log := newLogger(cfg)
	displayAppname(cfg.AppName)

	store, err := sqlitestore.Open(cfg.Storage.SQLitePath)
	if err != nil {
		return errors.Wrap(err, "opening session store")
	}
	defer store.Close()

	api, err := mockapi.New(cfg.Backend.TokenSecret,
		mockapi.WithLatencyBounds(cfg.MinLatency(), cfg.MaxLatency()),
		mockapi.WithLogger(log),
	)
	if err != nil {
		return errors.Wrap(err, "building mock backend")
	}

	authService, err := auth.NewService(api, store,
		auth.WithSessionTTL(cfg.SessionTTL()),
		auth.WithLogger(log),
	)
	if err != nil {
		return errors.Wrap(err, "building auth service")
	}
	authService.RestoreFromStorage(context.Background())

	sessionMonitor, err := monitor.New(authService,
		func() { log.Info().Msg("redirecting to login") },
		monitor.WithThresholds(cfg.Session.WarningThresholdSecs, cfg.Session.CriticalThresholdSecs),
		monitor.WithLogger(log),
	)
	if err != nil {
		return errors.Wrap(err, "building session monitor")
	}
	sessionMonitor.Start()
	defer sessionMonitor.Stop()

	srv, err := server.New(cfg, api, log)
	if err != nil {
		return errors.Wrap(err, "building server")
	}

	httpServer := &http.Server{Addr: cfg.Port, Handler: srv}
	go listenAndServe(httpServer, log)
	waitForStopSignal()
	return shutdown(httpServer)
}

func configPath() string {
	if path := os.Getenv("FINDASH_CONFIG"); path != "" {
		return path
	}
	return "findash.toml"
}

func newLogger(cfg config.Config) zerolog.Logger {
	if cfg.Env == "DEV" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func listenAndServe(server *http.Server, log zerolog.Logger) {
	log.Info().Str("addr", server.Addr).Msg("server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "server.Shutdown")
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
