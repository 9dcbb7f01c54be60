package config

import (
	"fmt"
	"strings"
)

const (
	JapaneseNone    = "none"
	JapaneseCommand = "command"
)

func NormalizeJapaneseBackend(raw string) (string, error) {
	backend := strings.ToLower(strings.TrimSpace(raw))
	switch backend {
	case "", JapaneseNone, "off", "disabled":
		return JapaneseNone, nil
	case JapaneseCommand, "cmd", "exec":
		return JapaneseCommand, nil
	default:
		return "", fmt.Errorf(
			"invalid japanese backend %q (expected %s|%s)",
			raw,
			JapaneseNone,
			JapaneseCommand,
		)
	}
}
