// Package driver picks the snapshot store named in the configuration.
package driver

import (
	"context"
	"fmt"

	"github.com/elson2121/Airline-Management-System/internal/config"
	"github.com/elson2121/Airline-Management-System/internal/store"
	"github.com/elson2121/Airline-Management-System/internal/store/csvstore"
	"github.com/elson2121/Airline-Management-System/internal/store/postgres"
	"github.com/sirupsen/logrus"
)

const (
	File     = "file"
	Postgres = "postgres"
)

func Open(ctx context.Context, cfg *config.Config, log *logrus.Entry) (store.Store, error) {
	switch cfg.Store.Driver {
	case File, "":
		log.WithField("dir", cfg.Store.DataDir).Info("Using flat-file store")
		return csvstore.New(cfg.Store.DataDir, log), nil
	case Postgres:
		st, err := postgres.Open(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
		log.Info("Using postgres store")
		return st, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
