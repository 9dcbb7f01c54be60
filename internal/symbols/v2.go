package symbols

import (
	"slices"
	"sync"
)

const pad = "_"

var punctuation = []string{"!", "?", "…", ",", ".", "-"}

var pauses = []string{"SP", "SP2", "SP3", Unknown}

// Japanese phones as produced by OpenJTalk-style frontends.
var japanesePhones = []string{
	"A", "E", "I", "N", "O", "U",
	"a", "b", "by", "ch", "cl", "d", "dy", "e", "f", "g", "gy", "h", "hy",
	"i", "j", "k", "ky", "m", "my", "n", "ny", "o", "p", "pau", "py", "r",
	"ry", "s", "sh", "t", "ts", "ty", "u", "v", "w", "y", "z",
}

var arpabetVowels = []string{
	"AA", "AE", "AH", "AO", "AW", "AY", "EH", "ER", "EY",
	"IH", "IY", "OW", "OY", "UH", "UW",
}

var arpabetConsonants = []string{
	"B", "CH", "D", "DH", "F", "G", "HH", "JH", "K", "L", "M", "N", "NG",
	"P", "R", "S", "SH", "T", "TH", "V", "W", "Y", "Z", "ZH",
}

// V2Symbols returns the built-in symbol list: pad, punctuation, pause
// markers, the unknown symbol, Japanese phones and stress-marked ARPAbet,
// deduplicated and sorted.
func V2Symbols() []string {
	set := map[string]struct{}{pad: {}}
	add := func(list ...string) {
		for _, s := range list {
			set[s] = struct{}{}
		}
	}
	add(punctuation...)
	add(pauses...)
	add(japanesePhones...)
	add(arpabetConsonants...)
	add("ER", "IH")
	for _, v := range arpabetVowels {
		add(v+"0", v+"1", v+"2")
	}

	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

var v2 = sync.OnceValue(func() *Vocabulary {
	v, err := New(V2Symbols(), Unknown)
	if err != nil {
		panic("symbols: invalid built-in vocabulary: " + err.Error())
	}
	return v
})

// V2 returns the shared built-in vocabulary.
func V2() *Vocabulary { return v2() }
