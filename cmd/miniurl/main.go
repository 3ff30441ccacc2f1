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

	"github.com/TigerNinja22/Mini-URL/internal/config"
	"github.com/TigerNinja22/Mini-URL/internal/handler"
	"github.com/TigerNinja22/Mini-URL/internal/logger"
	"github.com/TigerNinja22/Mini-URL/internal/repository"
	"github.com/go-chi/chi/v5"
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

	l := logger.New(cfg.Logger)
	defer func() {
		_ = l.Sync()
	}()

	store, err := repository.NewStorage(serverCtx, cfg, l)
	if err != nil {
		return fmt.Errorf("new storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			l.Errorf("close storage: %v", err)
		}
	}()

	h, err := handler.New(store, cfg, l)
	if err != nil {
		return fmt.Errorf("new handler: %w", err)
	}

	hs := &http.Server{
		Addr:              cfg.Server.RunAddress.String(),
		Handler:           h.Register(chi.NewRouter()),
		ReadHeaderTimeout: cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Graceful shutdown.
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT,
			syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)

		s := <-sig

		l.With(serverCtx, "signal", s.String()).
			Infof("Shutting down server with %s timeout",
				cfg.Server.ShutdownTimeout)

		if err := hs.Shutdown(serverCtx); err != nil {
			l.Errorf("graceful shutdown failed: %s", err)
		}
		serverStopCtx()
	}()

	l.Infof("Server has started: %s", cfg.Server.RunAddress)
	l.Infof("Return address: %s", cfg.Server.ReturnAddress)
	switch cfg.TLSEnabled {
	case true:
		cm := &autocert.Manager{
			Cache:  autocert.DirCache("cache/certs"),
			Prompt: autocert.AcceptTOS,
		}
		hs.TLSConfig = cm.TLSConfig()
		l.Info("The server is running over the SSL protocol")
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

	// Wait for server context to be stopped.
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
