package weather

import (
	"context"
	"time"
)

// Loader produces a freshly built Dataset from the underlying source files.
type Loader interface {
	Load(ctx context.Context) (*Dataset, error)
}

// Store is the contract for the holder of the current dataset.
type Store interface {
	Save(ds *Dataset)
	Current() (*Dataset, error)
}

// StoreStats is implemented by stores that track how often the dataset has
// been replaced.
type StoreStats interface {
	Stats() (swaps int, savedAt time.Time)
}
