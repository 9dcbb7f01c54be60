package english

import (
	"slices"
	"strings"
	"testing"
)

func newCoreEngine(t *testing.T, opts ...CMUOption) *CMUEngine {
	t.Helper()

	dict, err := CoreDict()
	if err != nil {
		t.Fatalf("CoreDict: %v", err)
	}
	return NewCMUEngine(dict, opts...)
}

func TestCMUEngine_Phonemize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // tokens joined with "|"
	}{
		{
			name:  "hello world",
			input: "Hello, world!",
			want:  "HH|AH0|L|OW1| |,| |W|ER1|L|D| |!",
		},
		{
			name:  "case insensitive",
			input: "HELLO",
			want:  "HH|AH0|L|OW1",
		},
		{
			name:  "contraction stays one word",
			input: "don't",
			want:  "D|OW1|N|T",
		},
		{
			name:  "quoted word keeps quote marks",
			input: `'hello' "yes"`,
			want:  `'| |HH|AH0|L|OW1| |'| |"| |Y|EH1|S| |"`,
		},
		{
			name:  "dot run becomes ellipsis",
			input: "no... yes",
			want:  "N|OW1| |...| |Y|EH1|S",
		},
		{
			name:  "unicode ellipsis",
			input: "no…",
			want:  "N|OW1| |...",
		},
		{
			name:  "semicolon and colon pass through",
			input: "yes; no: ok",
			want:  "Y|EH1|S| |;| |N|OW1| |:| |OW2|K|EY1",
		},
		{
			name:  "numbers are read as words",
			input: "42",
			want:  "F|AO1|R|T|IY0| |T|UW1",
		},
		{
			name:  "accents are stripped before lookup",
			input: "café",
			want:  "K|AH0|F|EY1",
		},
		{
			name:  "nearest dictionary word",
			input: "wurld",
			want:  "W|ER1|L|D",
		},
		{
			name:  "short unknown word is spelled",
			input: "xyz",
			want:  "EH1|K|S|W|AY1|Z|IY1",
		},
		{
			name:  "symbols separate words",
			input: "yes/no",
			want:  "Y|EH1|S| |N|OW1",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	eng := newCoreEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := eng.Phonemize(tt.input)
			if err != nil {
				t.Fatalf("Phonemize: %v", err)
			}
			if joined := strings.Join(got, "|"); joined != tt.want {
				t.Errorf("Phonemize(%q) = %q; want %q", tt.input, joined, tt.want)
			}
		})
	}
}

func TestCMUEngine_FuzzyMatchDisabled(t *testing.T) {
	eng := newCoreEngine(t, WithMaxEditDistance(0))

	got, err := eng.Phonemize("wurld")
	if err != nil {
		t.Fatalf("Phonemize: %v", err)
	}

	want := slices.Concat(letterPhones['w'], letterPhones['u'], letterPhones['r'], letterPhones['l'], letterPhones['d'])
	if !slices.Equal(got, want) {
		t.Errorf("Phonemize = %q; want %q", got, want)
	}
}

func TestCMUEngine_DistantWordIsSpelled(t *testing.T) {
	eng := newCoreEngine(t)

	got, err := eng.Phonemize("qqqqq")
	if err != nil {
		t.Fatalf("Phonemize: %v", err)
	}
	if len(got) != 5*len(letterPhones['q']) {
		t.Errorf("Phonemize = %q; want five spelled letters", got)
	}
}

func TestCMUEngine_DoesNotAliasDictionary(t *testing.T) {
	eng := newCoreEngine(t)

	got, _ := eng.Phonemize("hello")
	got[0] = "mutated"

	again, _ := eng.Phonemize("hello")
	if again[0] != "HH" {
		t.Fatalf("dictionary entry mutated: %q", again)
	}
}
