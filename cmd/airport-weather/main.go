package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/i474232898/airport-weather/internal/api/http"
	"github.com/i474232898/airport-weather/internal/cli"
	"github.com/i474232898/airport-weather/internal/config"
	"github.com/i474232898/airport-weather/internal/loader"
	"github.com/i474232898/airport-weather/internal/log"
	"github.com/i474232898/airport-weather/internal/scheduler"
	"github.com/i474232898/airport-weather/internal/source"
	"github.com/i474232898/airport-weather/internal/store"
	"github.com/i474232898/airport-weather/internal/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := log.Init(cfg.Debug); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	// Data files come from a directory unless a base URL is configured.
	var src source.Source = source.NewDir(cfg.DataDir)
	if cfg.DataBaseURL != "" {
		src = source.NewHTTP(&http.Client{Timeout: cfg.HTTPTimeout}, cfg.DataBaseURL)
	}

	ld := loader.New(src, loader.Files{
		AirportCodes: cfg.AirportCodesFile,
		FlightDelays: cfg.FlightDelaysFile,
		Weather:      cfg.WeatherFile,
	})
	service := weather.NewService(store.NewDatasetStore(), ld)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := service.Reload(ctx); err != nil {
		if errors.Is(err, weather.ErrMissingFile) {
			log.Fatalf("could not find data file (%v); ensure the data files are in %s", err, src.Name())
		}
		log.Fatalf("failed to load data: %v", err)
	}

	if len(os.Args) > 1 && os.Args[1] == "serve" {
		serve(ctx, cfg, service)
		return
	}

	session := cli.NewSession(os.Stdin, os.Stdout, service, cli.Options{
		ChartDir:  cfg.ChartDir,
		ExportDir: cfg.ExportDir,
	})
	if err := session.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("session failed: %v", err)
	}
}

func serve(ctx context.Context, cfg *config.AppConfig, service *weather.Service) {
	sched := scheduler.New(cfg.ReloadInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := httpapi.NewApp(service, true)

	go func() {
		log.Infof("listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Errorf("fiber server stopped: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorf("error during shutdown: %v", err)
	}
}
