// Package japanese defines the collaborator the dispatcher uses for Japanese
// text. Phonemization itself is delegated to an external program.
package japanese

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// waitDelay bounds how long Phones waits for output pipes after the process
// is killed on context cancellation.
const waitDelay = 2 * time.Second

// ErrUnavailable is returned when no Japanese phonemizer is configured.
var ErrUnavailable = errors.New("japanese phonemizer not configured")

// Phonemizer converts Japanese text into phone tokens in reading order.
type Phonemizer interface {
	Phones(ctx context.Context, text string) ([]string, error)
}

// PhonemizerFunc adapts a plain function to Phonemizer.
type PhonemizerFunc func(ctx context.Context, text string) ([]string, error)

// Phones calls f(ctx, text).
func (f PhonemizerFunc) Phones(ctx context.Context, text string) ([]string, error) {
	return f(ctx, text)
}

// Unavailable is a Phonemizer that always fails with ErrUnavailable.
type Unavailable struct{}

// Phones implements Phonemizer.
func (Unavailable) Phones(context.Context, string) ([]string, error) {
	return nil, ErrUnavailable
}

// Command runs an external phonemizer. The text is written to its stdin and
// stdout is read as whitespace-separated phone tokens.
type Command struct {
	Path string
	Args []string
}

// Phones implements Phonemizer.
func (c *Command) Phones(ctx context.Context, text string) ([]string, error) {
	if c.Path == "" {
		return nil, ErrUnavailable
	}

	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Stdin = strings.NewReader(text)
	cmd.WaitDelay = waitDelay

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("japanese phonemizer %s: %w", c.Path, ctxErr)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("japanese phonemizer %s: %w: %s", c.Path, err, msg)
		}
		return nil, fmt.Errorf("japanese phonemizer %s: %w", c.Path, err)
	}

	return strings.Fields(out.String()), nil
}
