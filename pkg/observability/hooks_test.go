package observability_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/cambium/pkg/domain"
	"github.com/aretw0/cambium/pkg/observability"
)

func TestMerge(t *testing.T) {
	ctx := context.Background()
	var calls []string

	first := domain.LifecycleHooks{
		OnCommit: func(context.Context, *domain.TransitionEvent) { calls = append(calls, "first") },
	}
	second := domain.LifecycleHooks{
		OnCommit:  func(context.Context, *domain.TransitionEvent) { calls = append(calls, "second") },
		OnFailure: func(context.Context, *domain.TransitionEvent) { calls = append(calls, "failure") },
	}

	merged := observability.Merge(first, second)

	merged.OnCommit(ctx, &domain.TransitionEvent{})
	assert.Equal(t, []string{"first", "second"}, calls)

	calls = nil
	merged.OnFailure(ctx, &domain.TransitionEvent{})
	assert.Equal(t, []string{"failure"}, calls)

	// A slot nobody fills stays nil so the dispatcher skips it.
	assert.Nil(t, merged.OnBind)
	assert.Nil(t, merged.OnInvoke)
}

func TestLoggingHooks(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	hooks := observability.NewLoggingHooks(slog.New(slog.NewJSONHandler(&buf, nil)))

	hooks.OnCommit(ctx, &domain.TransitionEvent{
		Type:       domain.EventCommit,
		Machine:    "TrafficLight",
		State:      "Green",
		Transition: "slow_down",
		Next:       "Yellow",
	})
	hooks.OnFailure(ctx, &domain.TransitionEvent{
		Type:    domain.EventFailure,
		Machine: "TrafficLight",
		State:   "Green",
		Err:     errors.New("boom"),
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"msg":"commit"`)
	assert.Contains(t, lines[0], `"from":"Green"`)
	assert.Contains(t, lines[0], `"to":"Yellow"`)
	assert.Contains(t, lines[1], `"msg":"dispatch failed"`)
	assert.Contains(t, lines[1], `"error":"boom"`)
}
