package japanese

import (
	"context"
	"errors"
	"os/exec"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/example/go-genie-tts/internal/testutil"
)

func TestUnavailable(t *testing.T) {
	_, err := Unavailable{}.Phones(context.Background(), "こんにちは")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v; want ErrUnavailable", err)
	}
}

func TestPhonemizerFunc(t *testing.T) {
	var p Phonemizer = PhonemizerFunc(func(_ context.Context, text string) ([]string, error) {
		return strings.Split(text, ""), nil
	})

	got, err := p.Phones(context.Background(), "ab")
	if err != nil {
		t.Fatalf("Phones: %v", err)
	}
	if !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Phones = %q", got)
	}
}

func TestCommand_EmptyPath(t *testing.T) {
	_, err := (&Command{}).Phones(context.Background(), "テスト")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v; want ErrUnavailable", err)
	}
}

func TestCommand_ReadsStdoutTokens(t *testing.T) {
	sh := testutil.RequirePOSIXShell(t)

	// Echo stdin back so the test can check the text reached the process.
	c := &Command{Path: sh, Args: []string{"-c", `read -r line; printf 'k o N\n  n i "%s"\n' "$line"`}}

	got, err := c.Phones(context.Background(), "chiwa")
	if err != nil {
		t.Fatalf("Phones: %v", err)
	}

	want := []string{"k", "o", "N", "n", "i", `"chiwa"`}
	if !slices.Equal(got, want) {
		t.Errorf("Phones = %q; want %q", got, want)
	}
}

func TestCommand_FailureIncludesStderr(t *testing.T) {
	sh := testutil.RequirePOSIXShell(t)

	c := &Command{Path: sh, Args: []string{"-c", "echo 'dictionary missing' >&2; exit 3"}}

	_, err := c.Phones(context.Background(), "テスト")
	if err == nil {
		t.Fatal("expected error")
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Errorf("err = %v; want wrapped *exec.ExitError", err)
	}
	if !strings.Contains(err.Error(), "dictionary missing") {
		t.Errorf("err = %q; want stderr text", err)
	}
}

func TestCommand_HonoursContext(t *testing.T) {
	sh := testutil.RequirePOSIXShell(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := &Command{Path: sh, Args: []string{"-c", "exec sleep 5"}}
	_, err := c.Phones(ctx, "テスト")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v; want context.DeadlineExceeded", err)
	}
}
