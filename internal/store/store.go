// Package store defines how the engine's state is persisted. Every save is a
// full rewrite of the snapshot; there is no incremental log.
package store

import (
	"context"

	"github.com/elson2121/Airline-Management-System/shared/models"
)

type Store interface {
	// Load returns the saved snapshot. A store that has never been written
	// returns an empty snapshot and no error.
	Load(ctx context.Context) (models.Snapshot, error)
	Save(ctx context.Context, snap models.Snapshot) error
	Close() error
}
