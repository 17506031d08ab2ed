package service

import (
	"context"
	"testing"
	"time"

	"github.com/gradstat/placement-backend/internal/cache"
	"github.com/gradstat/placement-backend/internal/dataset"
	"github.com/gradstat/placement-backend/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChartService(ds model.Dataset) *ChartService {
	repo := dataset.NewRepository(ds, zerolog.Nop())
	return NewChartService(repo, cache.NewMemory(), time.Minute, zerolog.Nop())
}

func TestChartNames(t *testing.T) {
	names := ChartNames()
	require.Len(t, names, 10)
	assert.Equal(t, "placement-trends", names[0])
	assert.Equal(t, "growth-heatmap", names[9])
}

func TestBuildAll(t *testing.T) {
	svc := newChartService(chartDataset())

	results := svc.BuildAll(context.Background(), model.FilterSelection{})
	require.Len(t, results, 10)
	for i, r := range results {
		assert.Equal(t, chartBuilders[i].name, r.Name)
		assert.NotNil(t, r.Chart, r.Name)
		assert.NotEmpty(t, r.Insight, r.Name)
	}
}

func TestBuildAllEmptySelectionResult(t *testing.T) {
	svc := newChartService(chartDataset())

	results := svc.BuildAll(context.Background(), model.FilterSelection{Years: []int{1999}})
	require.Len(t, results, 10)
	for _, r := range results {
		assert.Nil(t, r.Chart, r.Name)
		assert.Empty(t, r.Insight, r.Name)
	}
}

func TestBuildAllMemoized(t *testing.T) {
	repo := dataset.NewRepository(chartDataset(), zerolog.Nop())
	store := cache.NewMemory()
	svc := NewChartService(repo, store, time.Minute, zerolog.Nop())
	ctx := context.Background()

	first := svc.BuildAll(ctx, model.FilterSelection{Years: []int{2023}})

	_, norm := repo.Filter(model.FilterSelection{Years: []int{2023}})
	_, ok := store.Get(ctx, "charts:"+cache.SelectionKey(norm))
	assert.True(t, ok, "bundle should be cached after the first build")

	second := svc.BuildAll(ctx, model.FilterSelection{Years: []int{2023}})
	assert.Equal(t, first, second)
}

func TestBuildByName(t *testing.T) {
	svc := newChartService(chartDataset())
	ctx := context.Background()

	result, ok := svc.Build(ctx, "top-companies", model.FilterSelection{})
	require.True(t, ok)
	assert.Equal(t, "top-companies", result.Name)
	assert.Equal(t, "Top Recruiting Companies", result.Title)
	require.NotNil(t, result.Chart)

	_, ok = svc.Build(ctx, "no-such-chart", model.FilterSelection{})
	assert.False(t, ok)
}
