package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent folds an identifier for fuzzy matching: CamelCase is
// tokenized, everything is lower-cased and separators (_, -, space) are
// dropped, so "someString", "some_string" and "SomeString" all become
// "somestring".
func NormalizeIdent(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, tok := range tokenize(s) {
		b.WriteString(strings.ToLower(tok))
	}

	return b.String()
}

// TokenizeIdent splits an identifier into lowercase tokens.
// Examples:
//   - "withDbRef" -> ["with", "db", "ref"]
//   - "XMLParser" -> ["xml", "parser"]
//   - "order_id" -> ["order", "id"]
func TokenizeIdent(s string) []string {
	tokens := tokenize(s)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}

	return tokens
}

func tokenize(s string) []string {
	if s == "" {
		return nil
	}

	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// startsToken reports whether runes[i] begins a new CamelCase word.
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	// "someString": lower to upper.
	if !unicode.IsUpper(prev) {
		return true
	}

	// "XMLParser": the last upper of an acronym followed by a lower.
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
