package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"quizquest/internal/attempt"
	"quizquest/internal/cli"
	"quizquest/internal/client"
	"quizquest/internal/config"
	"quizquest/internal/domain"
	"quizquest/internal/logger"
)

func main() {
	var (
		serverURL   = flag.String("server", "http://localhost:8090", "quizquest API server URL")
		challengeID = flag.String("challenge", "", "id of the challenge to play")
		token       = flag.String("token", "", "bearer token for an authenticated attempt")
	)
	flag.Parse()

	if *challengeID == "" {
		fmt.Fprintln(os.Stderr, "usage: play -challenge <id> [-server <url>] [-token <jwt>]")
		os.Exit(2)
	}

	// A quiet logger keeps the interactive session clean.
	if err := logger.Initialize(config.LoggerConfig{Level: "error", Env: "production"}); err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := []client.Option{}
	if *token != "" {
		opts = append(opts, client.WithAuthToken(*token))
	}
	api := client.NewHTTPClient(*serverURL, opts...)

	engine := attempt.NewEngine(api, api, domain.Identity{})
	player := cli.NewPlayer(engine, os.Stdin, os.Stdout)

	if err := player.Run(ctx, *challengeID); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
