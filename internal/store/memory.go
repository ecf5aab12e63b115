package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/airport-weather/internal/weather"
)

var (
	// ErrNotLoaded is returned before any dataset has been saved.
	ErrNotLoaded = errors.New("dataset not loaded")
)

// DatasetStore is a concurrency-safe holder of the current dataset. Datasets
// are immutable, so readers may keep using a snapshot after a swap.
type DatasetStore struct {
	mu sync.RWMutex

	current *weather.Dataset
	swaps   int
	savedAt time.Time
}

// NewDatasetStore creates an empty DatasetStore.
func NewDatasetStore() *DatasetStore {
	return &DatasetStore{}
}

// Save replaces the current dataset. A nil dataset is ignored.
func (s *DatasetStore) Save(ds *weather.Dataset) {
	if ds == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = ds
	s.swaps++
	s.savedAt = time.Now().UTC()
}

// Current returns the most recently saved dataset.
func (s *DatasetStore) Current() (*weather.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, ErrNotLoaded
	}
	return s.current, nil
}

// Stats reports how many datasets have been saved and when the last one was.
func (s *DatasetStore) Stats() (swaps int, savedAt time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.swaps, s.savedAt
}
