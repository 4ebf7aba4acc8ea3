// Command dashboard is a terminal client for the Lema API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"lema/internal/dashboard"
	"lema/pkg/apiclient"
)

func main() {
	apiURL := flag.String("api", envOr("LEMA_API_URL", "http://localhost:4000"), "API base URL")
	tokenURL := flag.String("token-url", envOr("LEMA_TOKEN_URL", ""), "token refresh endpoint")
	clientID := flag.String("client-id", envOr("LEMA_CLIENT_ID", ""), "OAuth client id used for refresh")
	statePath := flag.String("state", dashboard.DefaultMemoryPath(), "file remembering the last viewed page")
	flag.Parse()

	notifier := dashboard.NewNotifier(os.Stderr)
	client, err := apiclient.New(apiclient.Options{
		BaseURL:      *apiURL,
		Tokens:       apiclient.NewMemoryTokenStore(os.Getenv("LEMA_TOKEN"), os.Getenv("LEMA_REFRESH_TOKEN")),
		Notifier:     notifier,
		TokenURL:     *tokenURL,
		ClientID:     *clientID,
		ClientSecret: os.Getenv("LEMA_CLIENT_SECRET"),
		OnLoginRequired: func() {
			fmt.Fprintln(os.Stderr, "Session expired. Please log in again.")
		},
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	mem, err := dashboard.LoadPageMemory(*statePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	app := &dashboard.App{
		Client:   client,
		Memory:   mem,
		Notifier: notifier,
		Out:      os.Stdout,
		Err:      os.Stderr,
		In:       os.Stdin,
		Width:    dashboard.TerminalWidth(int(os.Stdout.Fd())),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, flag.Args()); err != nil {
		stop()
		if errors.Is(err, dashboard.ErrUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
