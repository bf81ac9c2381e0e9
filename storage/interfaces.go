package storage

import "github.com/sedama0217-sketch/PMserch/models"

// StateStore is the interface any snapshot persistence backend must satisfy.
// Load on a never-written store returns an empty snapshot, not an error;
// Save must replace the previous snapshot atomically.
type StateStore interface {
	Load() (models.Snapshot, error)
	Save(models.Snapshot) error
}
