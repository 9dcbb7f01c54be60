// Package text holds the input-side text handling shared by the G2P
// adapters: whitespace normalization and script detection.
package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize composes s to NFC, collapses every whitespace run to a single
// space and trims the ends. Whitespace is any rune for which unicode.IsSpace
// holds, including NBSP and the ideographic space. Whitespace-only input
// yields "".
func Normalize(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripAccents removes combining marks, so "café" becomes "cafe".
func StripAccents(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		return s
	}
	return out
}
