// Package textnorm canonicalizes free text so that answers and catalog entries
// can be compared regardless of case, accents and punctuation variants.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = runes.Remove(runes.In(unicode.Mn))

var punct = strings.NewReplacer(
	"’", "'", // right single quotation mark
	"`", "'",
	"–", "-", // en dash
	"—", "-", // em dash
	"−", "-", // minus sign
)

// Normalize lowercases s, decomposes it, drops combining marks, unifies
// apostrophes and dashes, collapses whitespace and folds the Greek final sigma
// to σ.
//
// Normalize is idempotent.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	// A fresh chain per call: transform.Chain is stateful.
	t := transform.Chain(norm.NFD, stripMarks)
	lower := strings.ToLower(s)
	out, _, err := transform.String(t, lower)
	if err != nil {
		out = lower
	}
	out = punct.Replace(out)
	out = strings.Join(strings.Fields(out), " ")
	return strings.ReplaceAll(out, "ς", "σ")
}
