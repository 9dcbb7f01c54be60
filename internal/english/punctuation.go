package english

import "strings"

// punctuationMap translates raw engine punctuation onto the vocabulary.
var punctuationMap = map[string]string{
	".":   ".",
	",":   ",",
	"!":   "!",
	"?":   "?",
	"-":   "-",
	";":   ".",
	":":   ".",
	"...": ".",
}

// cleanTokens applies the post-processing rules to raw engine output:
// blanks are dropped, punctuation is translated, quotes and apostrophes are
// dropped and everything else passes through unchanged.
func cleanTokens(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, tok := range raw {
		cleaned := strings.TrimSpace(tok)
		if cleaned == "" {
			continue
		}
		if mapped, ok := punctuationMap[cleaned]; ok {
			out = append(out, mapped)
			continue
		}
		switch cleaned {
		case "'", `"`, " ":
			continue
		}
		out = append(out, cleaned)
	}
	return out
}
