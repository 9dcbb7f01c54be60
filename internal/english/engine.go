// Package english converts English text into ARPAbet phoneme tokens drawn
// from the synthesis vocabulary.
package english

import "sync"

// Engine is a grapheme-to-phoneme engine. It returns raw tokens: stress-marked
// ARPAbet phones, punctuation marks and " " word separators.
type Engine interface {
	Phonemize(text string) ([]string, error)
}

// EngineFunc adapts a plain function to Engine.
type EngineFunc func(text string) ([]string, error)

// Phonemize calls f(text).
func (f EngineFunc) Phonemize(text string) ([]string, error) { return f(text) }

// Lazy returns an Engine that calls build on first use and reuses the result
// for the process lifetime. A build error is returned on every call.
func Lazy(build func() (Engine, error)) Engine {
	return &lazyEngine{build: sync.OnceValues(build)}
}

type lazyEngine struct {
	build func() (Engine, error)
}

func (l *lazyEngine) Phonemize(text string) ([]string, error) {
	eng, err := l.build()
	if err != nil {
		return nil, err
	}
	return eng.Phonemize(text)
}
