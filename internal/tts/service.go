// Package tts wires the text frontend together from configuration: the
// symbol vocabulary, the English and Japanese adapters and the dispatcher.
package tts

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/example/go-genie-tts/internal/config"
	"github.com/example/go-genie-tts/internal/english"
	"github.com/example/go-genie-tts/internal/g2p"
	"github.com/example/go-genie-tts/internal/japanese"
	"github.com/example/go-genie-tts/internal/symbols"
)

// Result is one converted text.
type Result struct {
	Language g2p.Language `json:"language"`
	Symbols  []string     `json:"symbols"`
	IDs      []int        `json:"ids"`
}

// Service converts text to symbols and IDs using the configured adapters.
type Service struct {
	dispatcher *g2p.Dispatcher
	engine     english.Engine
	adapter    *english.Adapter
}

// NewService loads the vocabulary and builds the dispatcher from cfg. The
// English dictionary is loaded lazily on first use.
func NewService(cfg config.Config) (*Service, error) {
	vocab, err := LoadVocabulary(cfg.Paths.SymbolsPath)
	if err != nil {
		return nil, err
	}

	engine := english.Lazy(func() (english.Engine, error) {
		dict, err := LoadDictionary(cfg.Paths.DictPath)
		if err != nil {
			return nil, err
		}
		slog.Debug("english dictionary loaded", slog.Int("entries", dict.Len()))
		return english.NewCMUEngine(dict, english.WithMaxEditDistance(cfg.G2P.MaxEditDistance)), nil
	})

	adapter, err := english.NewAdapter(engine, vocab, english.WithCacheSize(cfg.G2P.CacheSize))
	if err != nil {
		return nil, err
	}

	ja, err := japanesePhonemizer(cfg.G2P)
	if err != nil {
		return nil, err
	}

	return &Service{
		dispatcher: g2p.New(adapter, ja, vocab),
		engine:     engine,
		adapter:    adapter,
	}, nil
}

// LoadVocabulary reads the vocabulary file at path, or returns the built-in
// v2 vocabulary when path is empty.
func LoadVocabulary(path string) (*symbols.Vocabulary, error) {
	if path == "" {
		return symbols.V2(), nil
	}
	return symbols.LoadFile(path, symbols.Unknown)
}

// LoadDictionary reads a pronouncing dictionary file, or returns the embedded
// core dictionary when path is empty.
func LoadDictionary(path string) (*english.Dict, error) {
	if path == "" {
		return english.CoreDict()
	}
	return english.LoadDictFile(path)
}

func japanesePhonemizer(cfg config.G2PConfig) (japanese.Phonemizer, error) {
	backend, err := config.NormalizeJapaneseBackend(cfg.JapaneseBackend)
	if err != nil {
		return nil, err
	}
	switch backend {
	case config.JapaneseCommand:
		if cfg.JapaneseCommand == "" {
			return nil, fmt.Errorf("japanese backend %q requires japanese_command", backend)
		}
		return &japanese.Command{Path: cfg.JapaneseCommand, Args: cfg.JapaneseArgs}, nil
	default:
		return japanese.Unavailable{}, nil
	}
}

// Warm forces the English engine to load so the first request does not pay
// for dictionary parsing.
func (s *Service) Warm() error {
	_, err := s.engine.Phonemize("")
	return err
}

// Phonemize converts text into symbols and IDs.
func (s *Service) Phonemize(ctx context.Context, input string) (Result, error) {
	lang, syms, err := s.dispatcher.Symbols(ctx, input)
	if err != nil {
		return Result{}, err
	}

	vocab := s.dispatcher.Vocabulary()
	ids := make([]int, len(syms))
	for i, sym := range syms {
		ids[i], _ = vocab.ID(sym)
	}

	return Result{Language: lang, Symbols: syms, IDs: ids}, nil
}

// TextToPhones converts text into vocabulary IDs.
func (s *Service) TextToPhones(ctx context.Context, input string) ([]int, error) {
	return s.dispatcher.TextToPhones(ctx, input)
}

// Symbols lists the vocabulary in ID order.
func (s *Service) Symbols() []string {
	return s.dispatcher.Vocabulary().Symbols()
}

// CacheLen reports how many English inputs are memoized.
func (s *Service) CacheLen() int {
	return s.adapter.CacheLen()
}
