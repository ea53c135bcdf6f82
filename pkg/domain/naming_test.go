package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/cambium/pkg/domain"
)

func TestSplitWords(t *testing.T) {
	cases := []struct {
		input string
		want  []string
	}{
		{"AbcDef", []string{"Abc", "Def"}},
		{"S2", []string{"S", "2"}},
		{"CommonState2", []string{"Common", "State", "2"}},
		{"Green", []string{"Green"}},
		{"HTTPState", []string{"H", "T", "T", "P", "State"}},
		{"", nil},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, domain.SplitWords(tc.input), "input %q", tc.input)
	}
}

func TestLabelize(t *testing.T) {
	assert.Equal(t, "Abc Def", domain.Labelize("AbcDef"))
	assert.Equal(t, "Green", domain.Labelize("Green"))
}

func TestSnakeCase(t *testing.T) {
	assert.Equal(t, "s_2", domain.SnakeCase("S2"))
	assert.Equal(t, "common_state_2", domain.SnakeCase("CommonState2"))
	assert.Equal(t, "yellow", domain.SnakeCase("Yellow"))
}
