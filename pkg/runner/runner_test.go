package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mosaic/pkg/benchmarks"
	"mosaic/pkg/common"
	"mosaic/pkg/component"
	"mosaic/pkg/conditions"
	"mosaic/pkg/initialization"
	"mosaic/pkg/replacement"
	"mosaic/pkg/run"
	"mosaic/pkg/state"
)

func randomSearch() *run.Configuration[*benchmarks.Sphere, []float64] {
	return run.NewBuilder[*benchmarks.Sphere, []float64]().
		Do(initialization.NewRandomSpread[*benchmarks.Sphere](5)).
		Evaluate().
		UpdateBestIndividual().
		While(conditions.NewLessThanIterations[*benchmarks.Sphere](20), func(b *run.Builder[*benchmarks.Sphere, []float64]) {
			b.Do(initialization.NewRandomSpread[*benchmarks.Sphere](5)).
				Evaluate().
				Do(replacement.NewKeepNewest[*benchmarks.Sphere, []float64]()).
				UpdateBestIndividual()
		}).
		Build()
}

func bestValues(t *testing.T, results []Result[*benchmarks.Sphere, []float64]) []float64 {
	t.Helper()
	out := make([]float64, 0, len(results))
	for _, res := range results {
		require.NoError(t, res.Err, "run %d", res.Index)
		ref, err := state.Borrow[common.BestIndividual[[]float64]](res.State)
		require.NoError(t, err, "run %d", res.Index)
		best := ref.Get().Get()
		require.NotNil(t, best, "run %d has no best", res.Index)
		v, ok := best.Value()
		require.True(t, ok)
		out = append(out, v.Float64())
		ref.Release()
	}
	return out
}

func TestBatchRunsAll(t *testing.T) {
	b := New(randomSearch)
	results, err := b.Run(context.Background(), benchmarks.NewSphere(3), 8, 1)
	require.NoError(t, err)
	require.Len(t, results, 8)

	seen := map[string]bool{}
	for i, res := range results {
		assert.Equal(t, i, res.Index)
		assert.NotEmpty(t, res.ID)
		assert.False(t, seen[res.ID], "duplicate run id %s", res.ID)
		seen[res.ID] = true
	}
	for _, v := range bestValues(t, results) {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 3.0)
	}
}

func TestBatchDeterministicInSeed(t *testing.T) {
	p := benchmarks.NewSphere(3)

	parallel := New(randomSearch)
	sequential := New(randomSearch)
	sequential.Parallelism = 1

	first, err := parallel.Run(context.Background(), p, 6, 99)
	require.NoError(t, err)
	second, err := sequential.Run(context.Background(), p, 6, 99)
	require.NoError(t, err)

	assert.Equal(t, bestValues(t, first), bestValues(t, second))
}

func TestBatchDifferentSeedsDiffer(t *testing.T) {
	p := benchmarks.NewSphere(3)
	b := New(randomSearch)

	first, err := b.Run(context.Background(), p, 4, 1)
	require.NoError(t, err)
	second, err := b.Run(context.Background(), p, 4, 2)
	require.NoError(t, err)

	assert.NotEqual(t, bestValues(t, first), bestValues(t, second))
}

func TestBatchRecordsPerRunFailure(t *testing.T) {
	boom := errors.New("boom")
	factory := func() *run.Configuration[*benchmarks.Sphere, []float64] {
		return run.NewBuilder[*benchmarks.Sphere, []float64]().
			Do(component.NewFunc("fail", func(*benchmarks.Sphere, *state.State) error {
				return boom
			})).
			Build()
	}

	results, err := New(factory).Run(context.Background(), benchmarks.NewSphere(3), 3, 1)
	require.NoError(t, err)
	for _, res := range results {
		assert.ErrorIs(t, res.Err, boom)
		assert.NotNil(t, res.State)
	}
}

func TestBatchHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(randomSearch).Run(ctx, benchmarks.NewSphere(3), 4, 1)
	require.ErrorIs(t, err, context.Canceled)
}

func TestBatchRejectsUnknownBackend(t *testing.T) {
	b := New(randomSearch)
	b.Backend = "mt19937"

	_, err := b.Run(context.Background(), benchmarks.NewSphere(3), 1, 1)
	require.Error(t, err)
}
