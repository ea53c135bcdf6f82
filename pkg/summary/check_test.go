package summary_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/cambium/pkg/domain"
	"github.com/aretw0/cambium/pkg/dsl"
	"github.com/aretw0/cambium/pkg/summary"
)

func trafficLight(t *testing.T) *domain.Machine {
	t.Helper()
	b := dsl.New("TrafficLight")
	b.State("Green").Transition("slow_down", nil, "Yellow")
	b.State("Yellow").Transition("stop", nil, "Red")
	b.State("Red").Transition("go", nil, "Green")
	m, err := b.Complete()
	require.NoError(t, err)
	return m
}

func TestParse(t *testing.T) {
	t.Run("Ordered Mapping", func(t *testing.T) {
		g, err := summary.Parse([]byte("Green: [Yellow]\nYellow: [Red]\nRed: [Green]\n"))
		require.NoError(t, err)
		assert.Equal(t, summary.Graph{
			{State: "Green", Outputs: []string{"Yellow"}},
			{State: "Yellow", Outputs: []string{"Red"}},
			{State: "Red", Outputs: []string{"Green"}},
		}, g)
	})

	t.Run("Null Outputs", func(t *testing.T) {
		g, err := summary.Parse([]byte("End:\n"))
		require.NoError(t, err)
		assert.Equal(t, summary.Graph{{State: "End"}}, g)
	})

	t.Run("Empty Document", func(t *testing.T) {
		g, err := summary.Parse(nil)
		require.NoError(t, err)
		assert.Empty(t, g)
	})

	t.Run("Not A Mapping", func(t *testing.T) {
		_, err := summary.Parse([]byte("- Green\n- Yellow\n"))
		assert.EqualError(t, err, "summary must be a mapping of state name to output list")
	})

	t.Run("Scalar Outputs", func(t *testing.T) {
		_, err := summary.Parse([]byte("Green: Yellow\n"))
		assert.EqualError(t, err, "summary entry Green: outputs must be a list")
	})
}

func TestCheck(t *testing.T) {
	m := trafficLight(t)

	t.Run("Matching Graph", func(t *testing.T) {
		g := summary.FromMap(map[string][]string{
			"Green":  {"Yellow"},
			"Yellow": {"Red"},
			"Red":    {"Green"},
		})
		assert.NoError(t, summary.Check(m, g))
	})

	t.Run("Wrong Outputs", func(t *testing.T) {
		g := summary.FromMap(map[string][]string{
			"Green":  {"Yellow", "Red"},
			"Yellow": {"Red"},
			"Red":    {"Green"},
		})
		err := summary.Check(m, g)

		var sumErr *summary.IncorrectSummaryError
		require.ErrorAs(t, err, &sumErr)
		assert.Equal(t, []summary.OutputDiff{{
			State:   "Green",
			Summary: []string{"Red", "Yellow"},
			Actual:  []string{"Yellow"},
		}}, sumErr.WrongOutputs)
		assert.Equal(t, "\n"+
			"Wrong outputs:\n"+
			"\n"+
			"Outputs of Green:\n"+
			"According to summary      : Red, Yellow\n"+
			"According to actual states: Yellow\n"+
			"\n",
			err.Error())
	})

	t.Run("Missing States", func(t *testing.T) {
		g := summary.FromMap(map[string][]string{
			"Green":  {"Yellow"},
			"Yellow": {"Red"},
			"Red":    {"Green"},
			"S3":     nil,
			"S1":     {"S3", "S2"},
		})
		err := summary.Check(m, g)

		var sumErr *summary.IncorrectSummaryError
		require.ErrorAs(t, err, &sumErr)
		assert.Equal(t, "\n"+
			"Missing states:\n"+
			"\n"+
			"b.State(\"S1\").\n"+
			"\tTransition(\"to_s_2\", nil, \"S2\").\n"+
			"\tTransition(\"to_s_3\", nil, \"S3\")\n"+
			"\n"+
			"b.State(\"S3\")\n"+
			"\n",
			err.Error())
	})

	t.Run("Extra States", func(t *testing.T) {
		g := summary.FromMap(map[string][]string{
			"Green":  {"Yellow"},
			"Yellow": {"Red"},
		})
		err := summary.Check(m, g)

		var sumErr *summary.IncorrectSummaryError
		require.ErrorAs(t, err, &sumErr)
		assert.Equal(t, []string{"Red"}, sumErr.ExtraStates)
		assert.Equal(t, "\n"+
			"Extra states:\n"+
			"\n"+
			"Red\n"+
			"\n",
			err.Error())
	})

	t.Run("Incomplete Machine", func(t *testing.T) {
		err := summary.Check(domain.New("Machine"), nil)
		assert.ErrorIs(t, err, domain.ErrNotComplete)
	})
}

func TestCheckIgnoresAbstractStates(t *testing.T) {
	b := dsl.New("MyMachine")
	parent := b.State("Parent", dsl.Abstract())
	parent.Transition("reset", nil, "Child1")
	b.State("Child1", dsl.Extends(parent)).Transition("next", nil, "Child2")
	b.State("Child2", dsl.Extends(parent))
	m, err := b.Complete()
	require.NoError(t, err)

	// Only concrete states appear in the implemented graph; inherited
	// transitions count towards their outputs.
	g := summary.FromMap(map[string][]string{
		"Child1": {"Child1", "Child2"},
		"Child2": {"Child1"},
	})
	assert.NoError(t, summary.Check(m, g))
}

func TestCheckDeduplicatesOutputs(t *testing.T) {
	b := dsl.New("Machine")
	b.State("S1").
		Transition("a", nil, "S2").
		Transition("b", nil, "S2")
	b.State("S2")
	m, err := b.Complete()
	require.NoError(t, err)

	g := summary.FromMap(map[string][]string{
		"S1": {"S2"},
		"S2": nil,
	})
	assert.NoError(t, summary.Check(m, g))
}

func TestScaffold(t *testing.T) {
	m := trafficLight(t)

	t.Run("Nothing Missing", func(t *testing.T) {
		g := summary.FromMap(map[string][]string{"Green": {"Yellow"}})
		stubs, err := summary.Scaffold(m, g)
		require.NoError(t, err)
		assert.Empty(t, stubs)
	})

	t.Run("Missing States Render As Stubs", func(t *testing.T) {
		g := summary.FromMap(map[string][]string{
			"S1": {"S2", "S3"},
			"S3": nil,
		})
		stubs, err := summary.Scaffold(m, g)
		require.NoError(t, err)
		assert.Equal(t,
			"b.State(\"S1\").\n"+
				"\tTransition(\"to_s_2\", nil, \"S2\").\n"+
				"\tTransition(\"to_s_3\", nil, \"S3\")\n"+
				"\n"+
				"b.State(\"S3\")\n"+
				"\n",
			stubs)
	})

	t.Run("Incomplete Machine", func(t *testing.T) {
		_, err := summary.Scaffold(domain.New("Machine"), nil)
		assert.ErrorIs(t, err, domain.ErrNotComplete)
	})
}
