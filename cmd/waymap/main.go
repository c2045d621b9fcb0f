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

	"github.com/woozymasta/waymap/internal/config"
	"github.com/woozymasta/waymap/internal/logger"
	"github.com/woozymasta/waymap/internal/provider"
	"github.com/woozymasta/waymap/internal/server"
	"github.com/woozymasta/waymap/internal/shell"
	"github.com/woozymasta/waymap/internal/store"
	"github.com/woozymasta/waymap/internal/waypoint"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile  string `short:"c" long:"config"       env:"CONFIG_FILE"     description:"Path to configuration file" default:"config.yaml"`
	Addr        string `short:"a" long:"addr"         env:"LISTEN_ADDRESS"  description:"Address to listen on"       default:"0.0.0.0"`
	Source      string `short:"s" long:"source"       env:"WAYPOINTS"       description:"Waypoint CSV path or URL (overrides config)"`
	MapboxToken string `long:"mapbox-token"           env:"MAPBOX_TOKEN"    description:"Mapbox access token"`
	GoogleKey   string `long:"google-key"             env:"GOOGLE_MAPS_KEY" description:"Google Maps API key"`
	Port        int    `short:"p" long:"port"         env:"LISTEN_PORT"     description:"Port to listen on"          default:"8080"`
	NoMinify    bool   `long:"no-minify"              env:"NO_MINIFY"       description:"Serve the page without minification"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	// Setup Logging
	opts.Logger.Setup()

	// Load Config
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	cfg.Override(opts.Source, config.Credentials{Mapbox: opts.MapboxToken, Google: opts.GoogleKey})

	registry, err := provider.NewRegistry(cfg.Credentials, provider.ViewFromConfig(cfg))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load map widgets")
	}

	client := &http.Client{Timeout: 15 * time.Second}
	reader := waypoint.NewReader(cfg.Source, client)
	st := store.New(reader)

	sh, err := shell.New(st, registry, shell.Options{Title: cfg.Title, Minify: !opts.NoMinify})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build page shell")
	}

	srvCtx := server.NewServerContext(sh, st, registry, reader)

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	httpServer := &http.Server{
		Addr:              listenAddr,
		Handler:           srvCtx.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sh.Mount(gctx)
		<-gctx.Done()
		sh.Unmount()
		return nil
	})

	g.Go(func() error {
		log.Info().
			Str("addr", listenAddr).
			Str("source", cfg.Source).
			Str("default_provider", string(provider.Default)).
			Msg("Web server started")

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}

	log.Info().Msg("Server stopped")
}
