package domain

import (
	"strings"
	"unicode"
)

// SplitWords splits a CamelCase identifier into its words. Digit runs count
// as words of their own: "AbcDef" -> [Abc Def], "S2" -> [S 2].
func SplitWords(s string) []string {
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	var prev rune
	for i, r := range s {
		switch {
		case unicode.IsUpper(r):
			flush()
		case unicode.IsDigit(r):
			if i > 0 && !unicode.IsDigit(prev) {
				flush()
			}
		default:
			if i > 0 && unicode.IsDigit(prev) {
				flush()
			}
		}
		current.WriteRune(r)
		prev = r
	}
	flush()
	return words
}

// Labelize derives a human-readable label from a slug: "AbcDef" -> "Abc Def".
func Labelize(slug string) string {
	return strings.Join(SplitWords(slug), " ")
}

// SnakeCase lowers a CamelCase name to underscore form: "S2" -> "s_2",
// "CommonState2" -> "common_state_2". Used for generated transition names.
func SnakeCase(name string) string {
	words := SplitWords(name)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "_")
}
