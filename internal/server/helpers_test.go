package server_test

import (
	"testing"

	"github.com/example/go-genie-tts/internal/config"
	"github.com/example/go-genie-tts/internal/tts"
)

func newService(t *testing.T) *tts.Service {
	t.Helper()

	svc, err := tts.NewService(config.DefaultConfig())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}
