package dsl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/cambium/pkg/domain"
	"github.com/aretw0/cambium/pkg/dsl"
	"github.com/aretw0/cambium/pkg/summary"
)

func TestBuilder(t *testing.T) {
	t.Run("Fluent Declaration", func(t *testing.T) {
		b := dsl.New("TrafficLight")
		b.State("Green").Transition("slow_down", nil, "Yellow")
		b.State("Yellow").Transition("stop", nil, "Red")
		b.State("Red").Transition("go", nil, "Green")

		m, err := b.Complete()
		require.NoError(t, err)
		assert.Equal(t, "TrafficLight", m.Name())
		assert.Len(t, m.States(), 3)

		green, ok := m.State("Green")
		require.True(t, ok)
		tr, ok := green.Transition("slow_down")
		require.True(t, ok)
		assert.Equal(t, []string{"Yellow"}, tr.OutputNames())
	})

	t.Run("Options", func(t *testing.T) {
		b := dsl.New("Machine")
		parent := b.State("Parent", dsl.Abstract())
		b.State("HTTPState", dsl.Extends(parent), dsl.Slug("http"), dsl.Label("HTTP state"))

		m, err := b.Complete()
		require.NoError(t, err)

		s, ok := m.State("HTTPState")
		require.True(t, ok)
		assert.Equal(t, "http", s.Slug())
		assert.Equal(t, "HTTP state", s.Label())
		assert.True(t, s.Is(parent.Ref()))
	})

	t.Run("Declaration Error Surfaces From Complete", func(t *testing.T) {
		b := dsl.New("Machine")
		concrete := b.State("S1")
		b.State("S2", dsl.Extends(concrete))

		_, err := b.Complete()
		var inhErr *domain.InheritedFromStateError
		require.ErrorAs(t, err, &inhErr)

		// The chain stays usable after a failed declaration; the recorded
		// error still wins over any later validation.
		b.State("S3").Transition("t", nil, "S1")
		_, err = b.Complete()
		assert.ErrorAs(t, err, &inhErr)
	})

	t.Run("Duplicate Names Surface From Complete", func(t *testing.T) {
		b := dsl.New("Machine")
		b.State("S1")
		b.State("S1")

		_, err := b.Complete()
		var dupErr *domain.DuplicateStateNamesError
		assert.ErrorAs(t, err, &dupErr)
	})
}

func TestBuilderTransitionExpr(t *testing.T) {
	t.Run("Stringified Outputs", func(t *testing.T) {
		b := dsl.New("Machine")
		b.State("S1").TransitionExpr("transit", nil, "[S2, S3]")
		b.State("S2")
		b.State("S3")

		m, err := b.Complete()
		require.NoError(t, err)

		s1, _ := m.State("S1")
		tr, ok := s1.Transition("transit")
		require.True(t, ok)
		assert.Equal(t, []string{"S2", "S3"}, tr.OutputNames())
	})

	t.Run("Empty List Is Terminal", func(t *testing.T) {
		b := dsl.New("Machine")
		b.State("End").TransitionExpr("noop", nil, "[]")

		m, err := b.Complete()
		require.NoError(t, err)

		end, _ := m.State("End")
		tr, ok := end.Transition("noop")
		require.True(t, ok)
		assert.Empty(t, tr.OutputNames())
	})

	t.Run("Unparseable Expression", func(t *testing.T) {
		b := dsl.New("Machine")
		b.State("S1").TransitionExpr("transit", nil, "S2")
		b.State("S2")

		_, err := b.Complete()
		var parseErr *dsl.UnparsableOutputsError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "S1", parseErr.State)
		assert.Equal(t, "transit", parseErr.Transition)
		assert.Equal(t, "S2", parseErr.Expr)
	})
}

func TestBuilderSummary(t *testing.T) {
	declare := func() *dsl.Builder {
		b := dsl.New("TrafficLight")
		b.State("Green").Transition("slow_down", nil, "Yellow")
		b.State("Yellow").Transition("stop", nil, "Red")
		b.State("Red").Transition("go", nil, "Green")
		return b
	}

	t.Run("Matching Summary", func(t *testing.T) {
		b := declare().Summary(summary.FromMap(map[string][]string{
			"Green":  {"Yellow"},
			"Yellow": {"Red"},
			"Red":    {"Green"},
		}))
		_, err := b.Complete()
		assert.NoError(t, err)
	})

	t.Run("Disagreeing Summary", func(t *testing.T) {
		b := declare().Summary(summary.FromMap(map[string][]string{
			"Green":  {"Yellow", "Red"},
			"Yellow": {"Red"},
			"Red":    {"Green"},
		}))
		_, err := b.Complete()
		var sumErr *summary.IncorrectSummaryError
		require.ErrorAs(t, err, &sumErr)
		assert.Len(t, sumErr.WrongOutputs, 1)
		assert.True(t, b.Machine().Completed(), "the machine itself completed; only the summary disagreed")
	})
}

func TestBuilderCompleteTwice(t *testing.T) {
	b := dsl.New("Machine")
	b.State("S1")

	_, err := b.Complete()
	require.NoError(t, err)

	_, err = b.Complete()
	assert.ErrorIs(t, err, domain.ErrAlreadyComplete)
}
