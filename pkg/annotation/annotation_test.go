package annotation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/cambium/pkg/annotation"
)

func TestExtractStateNames(t *testing.T) {
	t.Run("Valid Lists", func(t *testing.T) {
		cases := []struct {
			input string
			want  []string
		}{
			{"[Green]", []string{"Green"}},
			{"[Green, Yellow]", []string{"Green", "Yellow"}},
			{"[Green,Yellow,Red]", []string{"Green", "Yellow", "Red"}},
			{"[ S1 , S2 ]", []string{"S1", "S2"}},
			{"[]", []string{}},
			{"[_private]", []string{"_private"}},
			{"[State2]", []string{"State2"}},
		}
		for _, tc := range cases {
			names, ok := annotation.ExtractStateNames(tc.input)
			assert.True(t, ok, "input %q should parse", tc.input)
			assert.Equal(t, tc.want, names, "input %q", tc.input)
		}
	})

	t.Run("Unparseable", func(t *testing.T) {
		cases := []string{
			"",
			"x x",
			"x;x",
			"[x[y]]",
			"Green",          // bare identifier: single state by value, not a list
			"[Green",         // unterminated
			"Green]",         // no opening bracket
			"[Green] extra",  // trailing content
			"[Green,]",       // trailing comma
			"[,Green]",       // leading comma
			"[Green,,Red]",   // double comma
			"[2Green]",       // identifier starting with a digit
			"[Green, 2]",     // digit-only token
			"[[Green]]",      // nested brackets
			"[Green][Red]",   // two lists
			"[Green-Yellow]", // non-identifier character
		}
		for _, input := range cases {
			names, ok := annotation.ExtractStateNames(input)
			assert.False(t, ok, "input %q should not parse", input)
			assert.Nil(t, names, "input %q", input)
		}
	})
}
