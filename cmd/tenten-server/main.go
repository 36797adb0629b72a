package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/plus3/tenten/config"
	"github.com/plus3/tenten/server"
)

func main() {
	addr := flag.String("addr", ":8080", "Address to listen on.")
	configPath := flag.String("config", "", "Path to a YAML tuning file. Defaults are used when empty.")
	logJSON := flag.Bool("log-json", false, "Log JSON lines instead of the development console format.")
	flag.Parse()

	logger, err := newLogger(*logJSON)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	store := server.NewStore(cfg, logger)
	srv := &http.Server{
		Addr:              *addr,
		Handler:           server.New(store, server.WithLogger(logger)).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	}()

	logger.Info("listening", zap.String("addr", *addr), zap.Stringer("mode", cfg.Mode))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("serve", zap.Error(err))
	}
	logger.Info("stopped", zap.Int("games", store.Len()))
}

func newLogger(json bool) (*zap.Logger, error) {
	if json {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
