package observability_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/cambium/pkg/domain"
	"github.com/aretw0/cambium/pkg/observability"
)

func TestMetrics(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	require.NoError(t, err)
	hooks := metrics.Hooks()

	hooks.OnCommit(ctx, &domain.TransitionEvent{
		Machine: "TrafficLight", State: "Green", Next: "Yellow",
	})
	hooks.OnCommit(ctx, &domain.TransitionEvent{
		Machine: "TrafficLight", State: "Green", Next: "Yellow",
	})
	hooks.OnCommit(ctx, &domain.TransitionEvent{
		Machine: "TrafficLight", State: "End",
	})
	hooks.OnFailure(ctx, &domain.TransitionEvent{
		Machine: "TrafficLight", State: "Green", Err: errors.New("boom"),
	})

	assert.Equal(t, float64(2), testutil.ToFloat64(
		metrics.Transitions().WithLabelValues("TrafficLight", "Green", "Yellow")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		metrics.Transitions().WithLabelValues("TrafficLight", "End", "")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		metrics.Failures().WithLabelValues("TrafficLight", "Green")))
}

func TestMetricsDoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	_, err = observability.NewMetrics(reg)
	assert.Error(t, err)
}
