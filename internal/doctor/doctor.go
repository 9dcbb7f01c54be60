// Package doctor provides environment preflight checks for genietts.
package doctor

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// PassMark and FailMark are the prefix symbols printed for each check result.
const (
	PassMark = "✓"
	FailMark = "✗"
)

// VersionFunc returns a version string or an error if the component is unavailable.
type VersionFunc func() (string, error)

// CountFunc loads a resource and reports how many entries it holds.
type CountFunc func() (int, error)

// Config holds injectable dependencies for each doctor check.
type Config struct {
	// Vocabulary loads the symbol vocabulary and returns its size.
	Vocabulary CountFunc
	// Dictionary loads the English pronouncing dictionary and returns its entry count.
	Dictionary CountFunc
	// JapaneseVersion probes the external Japanese phonemizer command.
	JapaneseVersion VersionFunc
	// SkipJapanese skips the Japanese command check (backend "none").
	SkipJapanese bool
	// PythonVersion returns the Python version string (e.g. "3.11.4") used
	// by a Python-based Japanese command.
	PythonVersion VersionFunc
	// SkipPython skips the Python version check.
	SkipPython bool
	// DataFiles is the list of configured data file paths to verify on disk.
	DataFiles []string
}

// Result collects the outcome of all checks.
type Result struct {
	failures []string
}

// Failed returns true if any check failed.
func (r *Result) Failed() bool { return len(r.failures) > 0 }

// Failures returns the list of failure messages.
func (r *Result) Failures() []string { return append([]string(nil), r.failures...) }

// AddFailure appends an external failure message to the result.
func (r *Result) AddFailure(msg string) { r.failures = append(r.failures, msg) }

func (r *Result) fail(msg string) { r.failures = append(r.failures, msg) }

// Run executes all configured checks and writes human-readable output to w.
// Each check line is prefixed with PassMark or FailMark. Checks with a nil
// probe are not run.
func Run(cfg Config, w io.Writer) Result {
	var res Result

	// ---- data files -------------------------------------------------------
	for _, path := range cfg.DataFiles {
		if _, err := os.Stat(path); err != nil {
			res.fail(fmt.Sprintf("data file %q: %v", path, err))
			fmt.Fprintf(w, "%s data file %s: not found\n", FailMark, path)
		} else {
			fmt.Fprintf(w, "%s data file: %s\n", PassMark, path)
		}
	}

	// ---- symbol vocabulary ------------------------------------------------
	if cfg.Vocabulary != nil {
		n, err := cfg.Vocabulary()
		if err != nil {
			res.fail(fmt.Sprintf("symbol vocabulary: %v", err))
			fmt.Fprintf(w, "%s symbol vocabulary: %v\n", FailMark, err)
		} else {
			fmt.Fprintf(w, "%s symbol vocabulary: %d symbols\n", PassMark, n)
		}
	}

	// ---- english dictionary -----------------------------------------------
	if cfg.Dictionary != nil {
		n, err := cfg.Dictionary()
		switch {
		case err != nil:
			res.fail(fmt.Sprintf("english dictionary: %v", err))
			fmt.Fprintf(w, "%s english dictionary: %v\n", FailMark, err)
		case n == 0:
			res.fail("english dictionary: no entries")
			fmt.Fprintf(w, "%s english dictionary: no entries\n", FailMark)
		default:
			fmt.Fprintf(w, "%s english dictionary: %d entries\n", PassMark, n)
		}
	}

	// ---- japanese command -------------------------------------------------
	if cfg.SkipJapanese {
		fmt.Fprintf(w, "%s japanese command: skipped\n", PassMark)
	} else if cfg.JapaneseVersion != nil {
		ver, err := cfg.JapaneseVersion()
		if err != nil {
			res.fail(fmt.Sprintf("japanese command: %v", err))
			fmt.Fprintf(w, "%s japanese command: not found (%v)\n", FailMark, err)
		} else {
			fmt.Fprintf(w, "%s japanese command: %s\n", PassMark, ver)
		}
	}

	// ---- Python version ---------------------------------------------------
	if cfg.SkipPython {
		fmt.Fprintf(w, "%s python version: skipped\n", PassMark)
	} else if cfg.PythonVersion != nil {
		pyVer, err := cfg.PythonVersion()
		if err != nil {
			res.fail(fmt.Sprintf("python version: %v", err))
			fmt.Fprintf(w, "%s python version: not found (%v)\n", FailMark, err)
		} else if pyErr := checkPythonVersion(pyVer); pyErr != nil {
			res.fail(fmt.Sprintf("python version: %v", pyErr))
			fmt.Fprintf(w, "%s python version %s: %v\n", FailMark, pyVer, pyErr)
		} else {
			fmt.Fprintf(w, "%s python version: %s\n", PassMark, pyVer)
		}
	}

	return res
}

// checkPythonVersion returns an error if ver is outside [3.9, 3.15).
// ver is expected to be a string like "3.11.4".
func checkPythonVersion(ver string) error {
	major, minor, err := parseMajorMinor(ver)
	if err != nil {
		return fmt.Errorf("cannot parse %q: %w", ver, err)
	}
	if major != 3 {
		return fmt.Errorf("requires Python 3, got %d", major)
	}
	if minor < 9 {
		return fmt.Errorf("requires Python >=3.9, got 3.%d", minor)
	}
	if minor >= 15 {
		return fmt.Errorf("requires Python <3.15, got 3.%d", minor)
	}
	return nil
}

func parseMajorMinor(ver string) (major, minor int, err error) {
	parts := strings.SplitN(ver, ".", 3)
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("unexpected version format %q", ver)
	}
	major, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("bad major in %q: %w", ver, err)
	}
	minor, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("bad minor in %q: %w", ver, err)
	}
	return major, minor, nil
}
