package english

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"

	"github.com/example/go-genie-tts/internal/text"
)

// DefaultMaxEditDistance bounds the nearest-word search for words missing
// from the dictionary.
const DefaultMaxEditDistance = 1

// Words this short are spelled instead of matched to a neighbour.
const minFuzzyWordLen = 4

var letterPhones = map[rune][]string{
	'a': {"EY1"}, 'b': {"B", "IY1"}, 'c': {"S", "IY1"}, 'd': {"D", "IY1"},
	'e': {"IY1"}, 'f': {"EH1", "F"}, 'g': {"JH", "IY1"}, 'h': {"EY1", "CH"},
	'i': {"AY1"}, 'j': {"JH", "EY1"}, 'k': {"K", "EY1"}, 'l': {"EH1", "L"},
	'm': {"EH1", "M"}, 'n': {"EH1", "N"}, 'o': {"OW1"}, 'p': {"P", "IY1"},
	'q': {"K", "Y", "UW1"}, 'r': {"AA1", "R"}, 's': {"EH1", "S"}, 't': {"T", "IY1"},
	'u': {"Y", "UW1"}, 'v': {"V", "IY1"}, 'w': {"D", "AH1", "B", "AH0", "L", "Y", "UW0"},
	'x': {"EH1", "K", "S"}, 'y': {"W", "AY1"}, 'z': {"Z", "IY1"},
}

// CMUEngine is a dictionary-driven Engine. Its output follows g2p_en
// conventions: word phones and punctuation marks separated by " " tokens.
type CMUEngine struct {
	dict            *Dict
	maxEditDistance int
}

// CMUOption configures a CMUEngine.
type CMUOption func(*CMUEngine)

// WithMaxEditDistance sets the largest Levenshtein distance at which an
// unknown word borrows the pronunciation of a dictionary word. Zero or less
// disables the search and unknown words are spelled out.
func WithMaxEditDistance(n int) CMUOption {
	return func(e *CMUEngine) { e.maxEditDistance = n }
}

// NewCMUEngine returns an engine backed by dict.
func NewCMUEngine(dict *Dict, opts ...CMUOption) *CMUEngine {
	e := &CMUEngine{dict: dict, maxEditDistance: DefaultMaxEditDistance}
	for _, fn := range opts {
		fn(e)
	}
	return e
}

// Phonemize implements Engine. It never fails.
func (e *CMUEngine) Phonemize(s string) ([]string, error) {
	var out []string
	for _, tok := range tokenize(s) {
		phones := []string{tok.text}
		if tok.word {
			phones = e.wordPhones(tok.text)
		}
		if len(phones) == 0 {
			continue
		}
		if len(out) > 0 {
			out = append(out, " ")
		}
		out = append(out, phones...)
	}
	return out, nil
}

func (e *CMUEngine) wordPhones(word string) []string {
	if phones, ok := e.dict.Lookup(word); ok {
		return phones
	}
	if phones, ok := e.nearest(word); ok {
		return phones
	}
	return spell(word)
}

// nearest returns the pronunciation of the closest dictionary word. Ties go
// to the alphabetically first candidate.
func (e *CMUEngine) nearest(word string) ([]string, bool) {
	upper := strings.ToUpper(word)
	if e.maxEditDistance <= 0 || len(upper) < minFuzzyWordLen {
		return nil, false
	}

	best, bestDist := "", e.maxEditDistance+1
	for _, cand := range e.dict.words {
		if abs(len(cand)-len(upper)) > e.maxEditDistance {
			continue
		}
		if d := levenshtein.ComputeDistance(upper, cand); d < bestDist {
			best, bestDist = cand, d
		}
	}
	if best == "" {
		return nil, false
	}
	return e.dict.entries[best], true
}

func spell(word string) []string {
	var out []string
	for _, r := range strings.ToLower(word) {
		out = append(out, letterPhones[r]...)
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

type token struct {
	text string
	word bool
}

// tokenize splits s into words and punctuation marks. Digit runs become
// number words, dot runs become "...", curly quotes are straightened and
// everything else separates words.
func tokenize(s string) []token {
	rs := []rune(text.StripAccents(s))

	var (
		toks []token
		word []rune
	)
	flush := func() {
		if len(word) > 0 {
			toks = append(toks, token{text: strings.ToLower(string(word)), word: true})
			word = word[:0]
		}
	}
	mark := func(m string) {
		flush()
		toks = append(toks, token{text: m})
	}

	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch {
		case unicode.IsLetter(r):
			word = append(word, r)
		case r == '\'' || r == '’' || r == '‘':
			if len(word) > 0 && i+1 < len(rs) && unicode.IsLetter(rs[i+1]) {
				word = append(word, '\'')
				continue
			}
			mark("'")
		case r >= '0' && r <= '9':
			flush()
			j := i
			for j < len(rs) && rs[j] >= '0' && rs[j] <= '9' {
				j++
			}
			for _, w := range numberWords(string(rs[i:j])) {
				toks = append(toks, token{text: w, word: true})
			}
			i = j - 1
		case r == '.' || r == '…':
			j := i
			for j < len(rs) && (rs[j] == '.' || rs[j] == '…') {
				j++
			}
			if j-i == 1 && r == '.' {
				mark(".")
			} else {
				mark("...")
			}
			i = j - 1
		case r == '"' || r == '“' || r == '”':
			mark(`"`)
		case strings.ContainsRune(",!?-;:", r):
			mark(string(r))
		default:
			flush()
		}
	}
	flush()

	return toks
}
