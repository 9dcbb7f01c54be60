// Package symbols defines the fixed symbol vocabulary accepted by the
// synthesis model and the mapping between symbols and their integer IDs.
package symbols

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Unknown is the placeholder symbol substituted for out-of-vocabulary tokens.
const Unknown = "UNK"

var (
	// ErrDuplicateSymbol is returned when a symbol appears more than once.
	ErrDuplicateSymbol = errors.New("duplicate symbol")
	// ErrMissingUnknown is returned when the vocabulary lacks the unknown symbol.
	ErrMissingUnknown = errors.New("vocabulary has no unknown symbol")
	// ErrEmptySymbol is returned for a blank vocabulary entry.
	ErrEmptySymbol = errors.New("empty symbol")
)

// Vocabulary is an immutable, bijective symbol <-> ID table. IDs are dense
// and start at 0 in the order the symbols were given.
type Vocabulary struct {
	symbols []string
	ids     map[string]int
	unknown string
	unkID   int
}

// New builds a Vocabulary from an ordered symbol list. unknown must be one of
// the symbols.
func New(symbols []string, unknown string) (*Vocabulary, error) {
	v := &Vocabulary{
		symbols: append([]string(nil), symbols...),
		ids:     make(map[string]int, len(symbols)),
		unknown: unknown,
	}
	for i, s := range v.symbols {
		if s == "" {
			return nil, fmt.Errorf("symbol at index %d: %w", i, ErrEmptySymbol)
		}
		if prev, ok := v.ids[s]; ok {
			return nil, fmt.Errorf("%w %q at index %d (first seen at %d)", ErrDuplicateSymbol, s, i, prev)
		}
		v.ids[s] = i
	}

	id, ok := v.ids[unknown]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrMissingUnknown, unknown)
	}
	v.unkID = id

	return v, nil
}

// Load reads one symbol per line. Blank lines are skipped; a line holding a
// single space is kept as the space symbol.
func Load(r io.Reader, unknown string) (*Vocabulary, error) {
	var list []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == " " {
			list = append(list, line)
			continue
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		list = append(list, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read symbols: %w", err)
	}

	return New(list, unknown)
}

// LoadFile reads a vocabulary file in the format accepted by Load.
func LoadFile(path string, unknown string) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open symbols file: %w", err)
	}
	defer func() { _ = f.Close() }()

	v, err := Load(f, unknown)
	if err != nil {
		return nil, fmt.Errorf("load symbols %q: %w", path, err)
	}
	return v, nil
}

// Len returns the number of symbols.
func (v *Vocabulary) Len() int { return len(v.symbols) }

// Contains reports whether s is a vocabulary symbol.
func (v *Vocabulary) Contains(s string) bool {
	_, ok := v.ids[s]
	return ok
}

// ID returns the ID of s.
func (v *Vocabulary) ID(s string) (int, bool) {
	id, ok := v.ids[s]
	return id, ok
}

// Symbol returns the symbol with the given ID.
func (v *Vocabulary) Symbol(id int) (string, bool) {
	if id < 0 || id >= len(v.symbols) {
		return "", false
	}
	return v.symbols[id], true
}

// Unknown returns the placeholder symbol.
func (v *Vocabulary) Unknown() string { return v.unknown }

// UnknownID returns the ID of the placeholder symbol.
func (v *Vocabulary) UnknownID() int { return v.unkID }

// Symbols returns a copy of the symbols in ID order.
func (v *Vocabulary) Symbols() []string {
	return append([]string(nil), v.symbols...)
}
