// Package matrix is the read facade over the four matrix files and the
// MAGERIT mutation operations built on top of it.
package matrix

import (
	"secmatrix/internal/csvstore"
	"secmatrix/internal/metrics"
	"secmatrix/internal/models"

	"github.com/rs/zerolog/log"
)

type Service struct {
	store   *csvstore.Store
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func New(store *csvstore.Store, opts ...Option) *Service {
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot reads a source and splits it around its header row. A source
// without its sentinel yields only its leading metadata rows.
func (s *Service) Snapshot(name models.SourceName) (models.TableSnapshot, error) {
	src, err := s.store.Source(name)
	if err != nil {
		return models.TableSnapshot{}, err
	}

	rows, err := s.store.Read(name)
	if err != nil {
		return models.TableSnapshot{}, err
	}

	idx, ok := csvstore.LocateHeader(rows, src.Sentinel)
	if !ok {
		log.Warn().
			Str("source", string(name)).
			Str("sentinel", src.Sentinel).
			Msg("header row not found, returning metadata only")

		snap := models.EmptySnapshot()
		snap.Metadata = append(snap.Metadata, rows[:min(src.MetadataFallback, len(rows))]...)
		return snap, nil
	}

	return csvstore.Partition(rows, idx), nil
}

// All reads every source. The first failing source aborts the call.
func (s *Service) All() (map[models.SourceName]models.TableSnapshot, error) {
	out := make(map[models.SourceName]models.TableSnapshot, len(models.SourceOrder))
	for _, name := range models.SourceOrder {
		snap, err := s.Snapshot(name)
		if err != nil {
			return nil, err
		}
		out[name] = snap
	}
	return out, nil
}

// Select reads only the named sources.
func (s *Service) Select(names []models.SourceName) (map[models.SourceName]models.TableSnapshot, error) {
	out := make(map[models.SourceName]models.TableSnapshot, len(names))
	for _, name := range names {
		if _, done := out[name]; done {
			continue
		}
		snap, err := s.Snapshot(name)
		if err != nil {
			return nil, err
		}
		out[name] = snap
	}
	return out, nil
}
