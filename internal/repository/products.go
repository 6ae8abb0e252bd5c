package repository

import (
	"github.com/imyashkale/kmsdash/internal/database"
)

// Re-export errors from database package so callers need only this package
var ErrNotFound = database.ErrNotFound

// ProductDatabase defines the interface for fetching the raw nested product
// records consumed by the catalog builder. A load failure means "no catalog
// available" to callers, never a fatal condition.
type ProductDatabase interface {
	Load() (interface{}, error)
}

// fileProductDatabase implements ProductDatabase using the on-disk loader
type fileProductDatabase struct {
	loader *database.Loader
}

// NewProductDatabase creates a new file-backed product database
func NewProductDatabase(loader *database.Loader) ProductDatabase {
	return &fileProductDatabase{
		loader: loader,
	}
}

// Load returns the raw database tree
func (r *fileProductDatabase) Load() (interface{}, error) {
	return r.loader.Load()
}
