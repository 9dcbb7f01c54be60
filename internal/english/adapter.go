package english

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/example/go-genie-tts/internal/symbols"
	"github.com/example/go-genie-tts/internal/text"
)

// DefaultCacheSize is the number of distinct normalized inputs memoized by
// an Adapter.
const DefaultCacheSize = 1024

// Adapter turns English text into vocabulary symbols using an Engine.
type Adapter struct {
	engine Engine
	vocab  *symbols.Vocabulary
	cache  *lru.Cache[string, []string]

	mu sync.Mutex // serializes engine calls
}

type adapterOptions struct {
	cacheSize int
}

// AdapterOption configures an Adapter.
type AdapterOption func(*adapterOptions)

// WithCacheSize sets the LRU capacity. Zero or less disables memoization.
func WithCacheSize(n int) AdapterOption {
	return func(o *adapterOptions) { o.cacheSize = n }
}

// NewAdapter returns an Adapter that filters engine output against vocab.
func NewAdapter(engine Engine, vocab *symbols.Vocabulary, optFns ...AdapterOption) (*Adapter, error) {
	opts := adapterOptions{cacheSize: DefaultCacheSize}
	for _, fn := range optFns {
		fn(&opts)
	}

	a := &Adapter{engine: engine, vocab: vocab}
	if opts.cacheSize > 0 {
		cache, err := lru.New[string, []string](opts.cacheSize)
		if err != nil {
			return nil, fmt.Errorf("create phoneme cache: %w", err)
		}
		a.cache = cache
	}
	return a, nil
}

// Phonemes converts text into vocabulary symbols. Tokens the vocabulary does
// not know are dropped; the unknown symbol is never emitted.
func (a *Adapter) Phonemes(s string) ([]string, error) {
	normalized := text.Normalize(s)
	if normalized == "" {
		return []string{}, nil
	}

	raw, err := a.run(normalized)
	if err != nil {
		return nil, err
	}

	tokens := cleanTokens(raw)
	out := tokens[:0]
	for _, tok := range tokens {
		if a.vocab.Contains(tok) {
			out = append(out, tok)
		}
	}
	return out, nil
}

// run returns the engine's raw tokens for normalized text, consulting the
// cache first. The returned slice is owned by the caller.
func (a *Adapter) run(normalized string) ([]string, error) {
	if a.cache != nil {
		if cached, ok := a.cache.Get(normalized); ok {
			return append([]string(nil), cached...), nil
		}
	}

	a.mu.Lock()
	raw, err := a.engine.Phonemize(normalized)
	a.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("english engine: %w", err)
	}

	if a.cache != nil {
		a.cache.Add(normalized, append([]string(nil), raw...))
	}
	return append([]string(nil), raw...), nil
}

// CacheLen returns the number of memoized inputs.
func (a *Adapter) CacheLen() int {
	if a.cache == nil {
		return 0
	}
	return a.cache.Len()
}
