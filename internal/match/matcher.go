// Package match implements keyword detection over normalized message text.
//
// Matching is a pure function of (text, registry): the text is lowercased and
// split on whitespace, trailing punctuation is stripped from each token, and
// tokens are compared for exact equality against each keyword's lowercased
// term. The first qualifying token in left-to-right scan order wins; if the
// registry contains duplicate terms, registry order decides between them.
package match

import (
	"strings"

	"tickethawk.app/ingest/internal/model"
)

// tokenPunctuation is the fixed set removed from tokens before comparison,
// so "broken." and "page?" still match their terms.
const tokenPunctuation = ".,!?"

// First returns the first keyword whose term exactly matches a token of text,
// scanning tokens left to right. Returns (zero, false) when nothing matches.
func First(text string, registry []model.Keyword) (model.Keyword, bool) {
	if text == "" || len(registry) == 0 {
		return model.Keyword{}, false
	}

	for _, token := range Tokenize(text) {
		for _, kw := range registry {
			if token == strings.ToLower(kw.Term) {
				return kw, true
			}
		}
	}
	return model.Keyword{}, false
}

// Tokenize lowercases text, splits on whitespace and removes every occurrence
// of the punctuation set from each token. Tokens that strip to nothing are
// dropped.
func Tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		token := strings.Map(func(r rune) rune {
			if strings.ContainsRune(tokenPunctuation, r) {
				return -1
			}
			return r
		}, f)
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}
