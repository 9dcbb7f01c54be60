// Package g2p routes text to a language-specific grapheme-to-phoneme adapter
// and resolves the resulting tokens to vocabulary IDs.
package g2p

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/example/go-genie-tts/internal/japanese"
	"github.com/example/go-genie-tts/internal/symbols"
	"github.com/example/go-genie-tts/internal/text"
)

// Language identifies the adapter a text was routed to.
type Language string

const (
	English  Language = "en"
	Japanese Language = "ja"
)

// DetectLanguage routes the whole string: a single Japanese or CJK codepoint
// makes it Japanese, mixed-script input is not segmented.
func DetectLanguage(s string) Language {
	if text.HasJapanese(s) {
		return Japanese
	}
	return English
}

// EnglishPhonemizer converts English text into symbol tokens.
type EnglishPhonemizer interface {
	Phonemes(text string) ([]string, error)
}

// Dispatcher converts text into symbol IDs.
type Dispatcher struct {
	english  EnglishPhonemizer
	japanese japanese.Phonemizer
	vocab    *symbols.Vocabulary
	log      *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for per-call debug output.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) { d.log = l }
}

// New returns a Dispatcher. A nil ja routes Japanese text to
// japanese.Unavailable.
func New(en EnglishPhonemizer, ja japanese.Phonemizer, vocab *symbols.Vocabulary, opts ...Option) *Dispatcher {
	if ja == nil {
		ja = japanese.Unavailable{}
	}
	d := &Dispatcher{
		english:  en,
		japanese: ja,
		vocab:    vocab,
		log:      slog.Default(),
	}
	for _, fn := range opts {
		fn(d)
	}
	return d
}

// Vocabulary returns the vocabulary IDs are resolved against.
func (d *Dispatcher) Vocabulary() *symbols.Vocabulary { return d.vocab }

// TextToPhones converts text into vocabulary IDs. Tokens outside the
// vocabulary map to the unknown symbol's ID.
func (d *Dispatcher) TextToPhones(ctx context.Context, s string) ([]int, error) {
	_, syms, err := d.Symbols(ctx, s)
	if err != nil {
		return nil, err
	}

	ids := make([]int, len(syms))
	for i, sym := range syms {
		// Symbols only returns vocabulary members.
		ids[i], _ = d.vocab.ID(sym)
	}
	return ids, nil
}

// Symbols converts text into vocabulary symbols, substituting the unknown
// symbol for tokens outside the vocabulary, and reports the language used.
func (d *Dispatcher) Symbols(ctx context.Context, s string) (Language, []string, error) {
	lang := DetectLanguage(s)
	if s == "" {
		return lang, []string{}, nil
	}

	var (
		tokens []string
		err    error
	)
	switch lang {
	case Japanese:
		tokens, err = d.japanese.Phones(ctx, s)
	default:
		tokens, err = d.english.Phonemes(s)
	}
	if err != nil {
		return lang, nil, fmt.Errorf("%s g2p: %w", lang, err)
	}

	out := make([]string, len(tokens))
	unknown := 0
	for i, tok := range tokens {
		if d.vocab.Contains(tok) {
			out[i] = tok
			continue
		}
		out[i] = d.vocab.Unknown()
		unknown++
	}

	d.log.DebugContext(ctx, "text converted",
		slog.String("language", string(lang)),
		slog.Int("text_len", len(s)),
		slog.Int("tokens", len(out)),
		slog.Int("unknown", unknown),
	)

	return lang, out, nil
}
