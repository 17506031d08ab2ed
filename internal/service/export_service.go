package service

import (
	"context"
	"time"

	"github.com/gradstat/placement-backend/internal/cache"
	"github.com/gradstat/placement-backend/internal/dataset"
	"github.com/gradstat/placement-backend/internal/export"
	"github.com/gradstat/placement-backend/internal/model"
	"github.com/rs/zerolog"
)

// ExportService produces downloadable snapshots of the filtered view:
// a PDF report (memoized per filter selection — the render is
// deterministic, so the cached blob is exactly what a recompute would
// produce) and a CSV of the filtered rows.
type ExportService struct {
	data  *dataset.Repository
	store cache.Store
	ttl   time.Duration
	log   zerolog.Logger
}

// NewExportService creates a new ExportService.
func NewExportService(data *dataset.Repository, store cache.Store, ttl time.Duration, log zerolog.Logger) *ExportService {
	return &ExportService{data: data, store: store, ttl: ttl, log: log}
}

// PDF renders the report for a filter selection.
func (s *ExportService) PDF(ctx context.Context, sel model.FilterSelection) ([]byte, error) {
	view, norm := s.data.Filter(sel)
	key := "pdf:" + cache.SelectionKey(norm)

	if blob, ok := s.store.Get(ctx, key); ok {
		return blob, nil
	}

	started := time.Now()
	metrics := ComputeMetrics(view)
	charts := buildCharts(view)

	blob, err := export.RenderPDF(view, metrics, charts)
	if err != nil {
		return nil, err
	}
	s.log.Debug().
		Int("rows", len(view)).
		Int("bytes", len(blob)).
		Dur("elapsed", time.Since(started)).
		Msg("PDF report rendered")

	s.store.Set(ctx, key, blob, s.ttl)
	return blob, nil
}

// CSV serializes the filtered rows with the canonical header.
func (s *ExportService) CSV(sel model.FilterSelection) []byte {
	view, _ := s.data.Filter(sel)
	return export.RenderCSV(view)
}
