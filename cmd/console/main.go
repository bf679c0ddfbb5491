package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/elson2121/Airline-Management-System/internal/booking"
	"github.com/elson2121/Airline-Management-System/internal/config"
	"github.com/elson2121/Airline-Management-System/internal/console"
	"github.com/elson2121/Airline-Management-System/internal/logging"
	"github.com/elson2121/Airline-Management-System/internal/service"
	"github.com/elson2121/Airline-Management-System/internal/store/driver"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "airline console: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.New(config.DefaultPath)
	if err != nil {
		return err
	}
	logger := logging.New(cfg.Log.Level)
	entry := logrus.NewEntry(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	st, err := driver.Open(ctx, cfg, logging.Component(logger, "store"))
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	engine := booking.New(booking.WithLogger(entry))
	svc := service.New(engine, st, service.WithLogger(entry), service.WithAdminPassword(cfg.Admin.Password))
	defer svc.Close()

	if _, err := svc.Load(ctx); err != nil && !errors.Is(err, service.ErrPersist) {
		return err
	}

	return console.New(svc, os.Stdin, os.Stdout, entry).Run(ctx)
}
