// Package annotation extracts state-name lists from stringified declarations
// such as "[Green, Yellow]". Machine definitions written by hand often refer
// to states that are declared later in the document, so output lists arrive
// as text and resolve once the machine completes.
package annotation

import "unicode"

// ExtractStateNames parses a bracketed, comma-separated list of identifiers
// into the ordered name list. The empty list "[]" is valid and yields zero
// names.
//
// The second return value reports whether the input was parseable at all.
// Unparseable input is not an error: a bare identifier, for example, denotes
// a single state referenced by value rather than a name list, and the caller
// decides what to do with it.
func ExtractStateNames(s string) ([]string, bool) {
	toks, ok := tokenize(s)
	if !ok {
		return nil, false
	}
	return parseList(toks)
}

type tokenKind int

const (
	tokOpen tokenKind = iota
	tokClose
	tokComma
	tokIdent
)

type token struct {
	kind tokenKind
	text string
}

func tokenize(s string) ([]token, bool) {
	var toks []token
	runes := []rune(s)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '[':
			toks = append(toks, token{kind: tokOpen})
			i++
		case r == ']':
			toks = append(toks, token{kind: tokClose})
			i++
		case r == ',':
			toks = append(toks, token{kind: tokComma})
			i++
		case isIdentStart(r):
			start := i
			for i < len(runes) && isIdentPart(runes[i]) {
				i++
			}
			toks = append(toks, token{kind: tokIdent, text: string(runes[start:i])})
		default:
			return nil, false
		}
	}
	return toks, true
}

// parseList accepts exactly one bracketed list: "[", idents separated by
// commas, "]", end of input. Anything else, including nested brackets or
// trailing tokens, is unparseable.
func parseList(toks []token) ([]string, bool) {
	if len(toks) < 2 || toks[0].kind != tokOpen || toks[len(toks)-1].kind != tokClose {
		return nil, false
	}
	inner := toks[1 : len(toks)-1]

	names := []string{}
	expectIdent := true
	for _, t := range inner {
		if expectIdent {
			if t.kind != tokIdent {
				return nil, false
			}
			names = append(names, t.text)
		} else if t.kind != tokComma {
			return nil, false
		}
		expectIdent = !expectIdent
	}
	// A trailing comma leaves expectIdent true with at least one name parsed.
	if len(inner) > 0 && expectIdent {
		return nil, false
	}
	return names, true
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
