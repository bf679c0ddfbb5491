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

	"github.com/elson2121/Airline-Management-System/internal/activities"
	"github.com/elson2121/Airline-Management-System/internal/booking"
	"github.com/elson2121/Airline-Management-System/internal/config"
	"github.com/elson2121/Airline-Management-System/internal/handlers"
	"github.com/elson2121/Airline-Management-System/internal/logging"
	"github.com/elson2121/Airline-Management-System/internal/middleware"
	"github.com/elson2121/Airline-Management-System/internal/router"
	"github.com/elson2121/Airline-Management-System/internal/service"
	"github.com/elson2121/Airline-Management-System/internal/store/driver"
	"github.com/elson2121/Airline-Management-System/internal/websocket"
	"github.com/elson2121/Airline-Management-System/internal/worker"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.temporal.io/sdk/client"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Fatal("Server failed")
	}
}

func run() error {
	cfg, err := config.New(config.DefaultPath)
	if err != nil {
		return err
	}
	logger := logging.New(cfg.Log.Level)
	entry := logrus.NewEntry(logger)
	log := logging.Component(logger, "server")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	st, err := driver.Open(ctx, cfg, logging.Component(logger, "store"))
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	hub := websocket.NewHub(entry)
	engine := booking.New(booking.WithLogger(entry), booking.WithNotifier(hub))

	opts := []service.Option{
		service.WithLogger(entry),
		service.WithAdminPassword(cfg.Admin.Password),
	}

	var temporalClient client.Client
	if cfg.Temporal.Host != "" {
		log.WithField("host", cfg.Temporal.Host).Info("Connecting to Temporal")
		temporalClient, err = client.Dial(client.Options{
			HostPort:  cfg.Temporal.Host,
			Namespace: cfg.Temporal.Namespace,
			Logger:    logging.NewTemporal(logging.Component(logger, "temporal")),
		})
		if err != nil {
			return fmt.Errorf("connecting to temporal: %w", err)
		}
		defer temporalClient.Close()
		opts = append(opts, service.WithTemporal(temporalClient, cfg.Temporal.TaskQueue))
	} else {
		log.Info("TEMPORAL_HOST not set, seat hold workflows disabled")
	}

	svc := service.New(engine, st, opts...)
	defer svc.Close()

	if _, err := svc.Load(ctx); err != nil && !errors.Is(err, service.ErrPersist) {
		return err
	}

	var middlewares []mux.MiddlewareFunc
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.WithError(err).Warn("Redis not reachable, idempotency keys will pass through until it is")
		}
		middlewares = append(middlewares, middleware.Idempotency(rdb, logging.Component(logger, "idempotency")))
	}

	h := handlers.NewHandler(svc, entry)
	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router.SetupRouter(h, hub.ServeWS, middlewares...),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, runCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run(runCtx)
		return nil
	})

	if temporalClient != nil {
		w := worker.New(temporalClient, cfg.Temporal.TaskQueue, activities.NewActivities(svc))
		g.Go(func() error {
			if err := w.Start(); err != nil {
				return fmt.Errorf("starting temporal worker: %w", err)
			}
			log.WithField("taskQueue", cfg.Temporal.TaskQueue).Info("Temporal worker started")
			<-runCtx.Done()
			w.Stop()
			return nil
		})
	}

	g.Go(func() error {
		log.WithField("port", cfg.HTTP.Port).Info("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("running http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-runCtx.Done()
		log.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	if saveErr := svc.Save(context.Background()); saveErr != nil {
		err = errors.Join(err, saveErr)
	}
	log.Info("Server stopped")
	return err
}
