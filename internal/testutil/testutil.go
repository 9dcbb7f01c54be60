// Package testutil provides shared skip helpers for integration tests.
//
// Each helper calls t.Skip with a clear human-readable reason when the named
// prerequisite is absent, so integration tests remain runnable in partial
// environments without failing noisily.
//
// Typical usage:
//
//	func TestMyIntegration(t *testing.T) {
//	    dict := testutil.RequireCMUDict(t)
//	    ...
//	}
package testutil

import (
	"os"
	"os/exec"
	"runtime"
	"testing"
)

// RequirePOSIXShell skips the test on Windows or when sh is not in PATH.
// It returns the resolved path of sh.
func RequirePOSIXShell(tb testing.TB) string {
	tb.Helper()

	if runtime.GOOS == "windows" {
		tb.Skipf("shell-based command tests require a POSIX shell")
		return ""
	}

	sh, err := exec.LookPath("sh")
	if err != nil {
		tb.Skipf("sh not available: %v", err)
		return ""
	}
	return sh
}

// RequireCMUDict skips the test unless GENIETTS_PATHS_DICT_PATH names a
// readable pronouncing dictionary file. It returns that path.
func RequireCMUDict(tb testing.TB) string {
	tb.Helper()

	p := os.Getenv("GENIETTS_PATHS_DICT_PATH")
	if p == "" {
		tb.Skipf("full CMU dictionary not configured; set GENIETTS_PATHS_DICT_PATH")
		return ""
	}

	// #nosec G703 -- Integration tests intentionally accept explicit env-provided local paths.
	if _, err := os.Stat(p); err != nil {
		tb.Skipf("CMU dictionary not found at GENIETTS_PATHS_DICT_PATH=%q", p)
		return ""
	}
	return p
}

// RequireJapaneseCommand skips the test unless GENIETTS_G2P_JAPANESE_COMMAND
// names an executable found in PATH. It returns the resolved path.
func RequireJapaneseCommand(tb testing.TB) string {
	tb.Helper()

	exe := os.Getenv("GENIETTS_G2P_JAPANESE_COMMAND")
	if exe == "" {
		tb.Skipf("japanese phonemizer command not configured; set GENIETTS_G2P_JAPANESE_COMMAND")
		return ""
	}

	path, err := exec.LookPath(exe)
	if err != nil {
		tb.Skipf("japanese phonemizer command not available (%q not in PATH)", exe)
		return ""
	}
	return path
}
