package weather

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/airport-weather/internal/log"
)

// AnalysisRequest selects one airport, an inclusive date range and a metric.
// Values are expected to have passed the input validators already.
type AnalysisRequest struct {
	Airport string
	Start   time.Time
	End     time.Time
	Metric  Metric
}

// Analysis is the filtered view for one request.
type Analysis struct {
	ID      string         `json:"id"`
	Airport string         `json:"airport"`
	Station string         `json:"station,omitempty"`
	Start   time.Time      `json:"start"`
	End     time.Time      `json:"end"`
	Metric  Metric         `json:"metric"`
	Records []JoinedRecord `json:"records"`

	// Missing is the number of records in range without a value for Metric.
	Missing int     `json:"missing"`
	Summary Summary `json:"summary"`
}

// Empty reports whether no records matched the request.
func (a *Analysis) Empty() bool {
	return len(a.Records) == 0
}

// Service orchestrates loading datasets into the store and querying them.
type Service struct {
	store  Store
	loader Loader
}

// NewService creates a new Service.
func NewService(store Store, loader Loader) *Service {
	return &Service{
		store:  store,
		loader: loader,
	}
}

// Reload builds a new dataset and stores it. On failure the previous dataset
// stays current.
func (s *Service) Reload(ctx context.Context) error {
	if s.loader == nil {
		return fmt.Errorf("no dataset loader configured")
	}

	started := time.Now()
	ds, err := s.loader.Load(ctx)
	if err != nil {
		log.Errorf("dataset reload failed; keeping last good dataset if any: %v", err)
		return fmt.Errorf("reload dataset: %w", err)
	}

	s.store.Save(ds)
	log.Infof("dataset reloaded in %s", time.Since(started))
	return nil
}

// Dataset returns the current dataset.
func (s *Service) Dataset() (*Dataset, error) {
	return s.store.Current()
}

// Stats reports how many datasets the store has accepted and when the last
// one was saved. Stores without bookkeeping report zero values.
func (s *Service) Stats() (reloads int, lastReload time.Time) {
	if st, ok := s.store.(StoreStats); ok {
		return st.Stats()
	}
	return 0, time.Time{}
}

// Analyze filters the current dataset for req and summarizes the result.
func (s *Service) Analyze(req AnalysisRequest) (*Analysis, error) {
	if req.Start.After(req.End) {
		return nil, NewValidationError(ErrRange, "End date must be on or after start date.")
	}

	ds, err := s.store.Current()
	if err != nil {
		return nil, err
	}

	records := Filter(ds.Joined, req.Airport, req.Start, req.End)
	station, _ := ds.Station(req.Airport)

	log.Debugf("analyze %s %s..%s %s: %d records", req.Airport,
		FormatDay(req.Start), FormatDay(req.End), req.Metric.Key, len(records))

	return &Analysis{
		ID:      uuid.NewString(),
		Airport: req.Airport,
		Station: station,
		Start:   req.Start,
		End:     req.End,
		Metric:  req.Metric,
		Records: records,
		Missing: CountMissing(records, req.Metric),
		Summary: Summarize(records, req.Metric),
	}, nil
}
