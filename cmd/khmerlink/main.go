package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "net/http/pprof"

	"github.com/go-chi/chi/v5"
	"github.com/iVbk/khmerlink/internal/config"
	"github.com/iVbk/khmerlink/internal/handler"
	"github.com/iVbk/khmerlink/internal/logger"
	"github.com/iVbk/khmerlink/internal/repository"
	"golang.org/x/crypto/acme/autocert"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Server run context.
	serverCtx, serverStopCtx := context.WithCancel(context.Background())
	defer serverStopCtx()

	cfg := config.MustLoad()

	logger := logger.Get(cfg)
	defer logger.Sync()

	store, err := repository.NewMappingStore(cfg, logger)
	if err != nil {
		return fmt.Errorf("new store: %w", err)
	}

	handler, err := handler.New(store, logger, cfg)
	if err != nil {
		return fmt.Errorf("new handler: %w", err)
	}

	hs := &http.Server{
		Addr:              cfg.Server.RunAddress.String(),
		Handler:           handler.Register(chi.NewRouter()),
		ReadHeaderTimeout: cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Graceful shutdown.
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT,
			syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)

		s := <-sig

		logger.Sugar().Infof("Shutting down server with %s timeout: %s",
			cfg.Server.ShutdownTimeout, s)

		if err = hs.Shutdown(serverCtx); err != nil {
			logger.Sugar().Errorf("graceful shutdown failed: %s", err)
		}
		serverStopCtx()
	}()

	logger.Sugar().Infof("Server has started: %s", cfg.Server.RunAddress)
	logger.Sugar().Infof("Return address: %s", cfg.Server.ReturnAddress)
	switch cfg.TLSEnabled {
	case true:
		cm := &autocert.Manager{
			Cache:  autocert.DirCache("cache/certs"),
			Prompt: autocert.AcceptTOS,
		}
		hs.TLSConfig = cm.TLSConfig()
		logger.Info("The server is running over the SSL protocol")
		if err = hs.ListenAndServeTLS("", ""); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("run server failed: %w", err)
		}
	default:
		if err = hs.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("run server failed: %w", err)
		}
	}

	// Wait for server context to be stopped
	select {
	case <-serverCtx.Done():
	case <-time.After(cfg.Server.ShutdownTimeout):
		return errors.New("graceful shutdown timed out.. forcing exit")
	}

	return nil
}

func printBuildInfo() {
	if buildVersion == "" {
		fmt.Println("Build version: N/A")
	} else {
		fmt.Printf("Build version: %s\n", buildVersion)
	}
	if buildDate == "" {
		fmt.Println("Build date: N/A")
	} else {
		fmt.Printf("Build date: %s\n", buildDate)
	}
	if buildCommit == "" {
		fmt.Println("Build commit: N/A")
	} else {
		fmt.Printf("Build commit: %s\n", buildCommit)
	}
}
