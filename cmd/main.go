package main

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/cinex/internal/repositories"
	"github.com/desertthunder/cinex/internal/services"
	"github.com/desertthunder/cinex/internal/session"
	"github.com/desertthunder/cinex/internal/shared"
)

func main() {
	ctx := context.Background()
	logger := shared.NewLogger(nil)

	configPath := os.Getenv("CINEX_CONFIG")
	if configPath == "" {
		configPath = "config.toml"
	}

	config := shared.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		loaded, err := shared.LoadConfig(configPath)
		if err != nil {
			logger.Fatalf("invalid config %s: %v", configPath, err)
		}
		config = loaded
	}
	shared.SetLogLevel(logger, shared.ParseLevel(config.Log.Level))

	db, err := shared.OpenDatabase(ctx, config.Database)
	if err != nil {
		logger.Fatalf("failed to open session database: %v", err)
	}
	defer db.Close()

	sess := session.New(repositories.NewSessionRepository(db), logger)

	movieAPI := services.NewMovieAPI(services.MovieAPIOptions{
		BaseURL:           config.API.BaseURL,
		Timeout:           config.API.Timeout(),
		RequestsPerSecond: config.API.RequestsPerSecond,
		Burst:             config.API.Burst,
		Token:             sess.Token,
		Logger:            logger,
	})

	api := services.NewAPIService(config.API.BaseURL, nil)
	if sess.Authenticated() {
		api = movieAPI.Raw()
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Client:     movieAPI,
		API:        api,
		Session:    sess,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "cinex",
		Usage:    "Browse movies, manage your wishlist and subscription from the terminal",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(ctx, os.Args); err != nil {
		switch {
		case errors.Is(err, shared.ErrNotAuthenticated):
			logger.Error("not signed in, run `cinex auth login`", "error", err)
			db.Close()
			os.Exit(1)
		default:
			logger.Fatalf("application error: %v", err)
		}
	}
}
