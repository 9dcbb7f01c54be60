package english

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
)

// ErrEmptyDictionary is returned when a dictionary source has no entries.
var ErrEmptyDictionary = errors.New("pronouncing dictionary is empty")

//go:embed cmudict_core.txt
var coreDict string

// Dict is a pronouncing dictionary keyed by upper-case word.
type Dict struct {
	entries map[string][]string
	words   []string // sorted keys, for nearest-word search
}

// ParseDict reads CMU pronouncing dictionary lines ("WORD  PH1 PH2 ...").
// Lines starting with ";;;" are comments. Alternate pronunciations written as
// "WORD(1)" are ignored in favour of the first one.
func ParseDict(r io.Reader) (*Dict, error) {
	d := &Dict{entries: make(map[string][]string)}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";;;") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: want word and phones, got %q", lineNo, line)
		}
		word := strings.ToUpper(fields[0])
		if strings.HasSuffix(word, ")") {
			continue
		}
		if _, dup := d.entries[word]; dup {
			continue
		}
		d.entries[word] = fields[1:]
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}
	if len(d.entries) == 0 {
		return nil, ErrEmptyDictionary
	}

	d.words = make([]string, 0, len(d.entries))
	for w := range d.entries {
		d.words = append(d.words, w)
	}
	slices.Sort(d.words)

	return d, nil
}

// LoadDictFile parses a dictionary file from disk.
func LoadDictFile(path string) (*Dict, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer func() { _ = f.Close() }()

	d, err := ParseDict(f)
	if err != nil {
		return nil, fmt.Errorf("parse dictionary %q: %w", path, err)
	}
	return d, nil
}

var core = sync.OnceValues(func() (*Dict, error) {
	return ParseDict(strings.NewReader(coreDict))
})

// CoreDict returns the embedded dictionary of common English words.
func CoreDict() (*Dict, error) { return core() }

// Lookup returns the pronunciation of word (case-insensitive).
func (d *Dict) Lookup(word string) ([]string, bool) {
	phones, ok := d.entries[strings.ToUpper(word)]
	return phones, ok
}

// Len returns the number of entries.
func (d *Dict) Len() int { return len(d.entries) }
