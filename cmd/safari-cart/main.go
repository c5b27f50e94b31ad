package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aaravmahajanofficial/safari-storefront/internal/cart"
	"github.com/aaravmahajanofficial/safari-storefront/internal/cartstore"
	"github.com/aaravmahajanofficial/safari-storefront/internal/cli"
	"github.com/aaravmahajanofficial/safari-storefront/internal/config"
	appErrors "github.com/aaravmahajanofficial/safari-storefront/internal/errors"
	"github.com/aaravmahajanofficial/safari-storefront/pkg/storefront"
)

func main() {
	os.Exit(run())
}

func run() int {

	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "can not read configuration: %s\n", err.Error())
		return 1
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelWarn
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := cartstore.Open(ctx, cfg)
	if err != nil {
		slog.Error("Error opening cart storage", slog.String("storage", cfg.Storage), slog.String("error", err.Error()))
		return 1
	}

	defer func() {
		if err := store.Close(); err != nil {
			slog.Warn("Error closing cart storage", slog.String("error", err.Error()))
		}
	}()

	engine, err := cart.Open(ctx, store, cart.WithKey(cfg.CartKey), cart.WithLogger(logger))
	if err != nil {
		slog.Error("Error loading cart", slog.String("error", err.Error()))
		return 1
	}

	client := storefront.NewClient(cfg.APIURL, cfg.APITimeout, storefront.WithLogger(logger))
	app := cli.NewApp(cfg, client, engine, os.Stdout, logger)

	if err := app.Run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, cli.ErrUsage) {
			return 2
		}

		if appErr, ok := appErrors.IsAppError(err); ok && appErr.Code == appErrors.ErrCodeThirdPartyError {
			fmt.Fprintln(os.Stderr, "No se pudo conectar con la tienda. Intenta nuevamente.")
		} else {
			fmt.Fprintln(os.Stderr, err.Error())
		}
		return 1
	}

	return 0
}
