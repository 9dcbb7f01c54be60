package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/example/go-genie-tts/internal/g2p"
	"github.com/example/go-genie-tts/internal/server"
	"github.com/example/go-genie-tts/internal/tts"
)

// stubPhonemizer implements server.Phonemizer for tests.
type stubPhonemizer struct {
	res   tts.Result
	err   error
	texts []string
}

func (s *stubPhonemizer) Phonemize(_ context.Context, text string) (tts.Result, error) {
	s.texts = append(s.texts, text)
	return s.res, s.err
}

// stubSymbols implements server.SymbolLister for tests.
type stubSymbols struct {
	symbols []string
}

func (s *stubSymbols) Symbols() []string { return s.symbols }

func newTestHandler(p server.Phonemizer, syms server.SymbolLister) http.Handler {
	return server.NewHandler(p, syms)
}

func postPhonemize(h http.Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/phonemize", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, req)
	return rec
}

// ---------------------------------------------------------------------------
// GET /health
// ---------------------------------------------------------------------------

func TestHealth_Returns200WithStatusOK(t *testing.T) {
	h := newTestHandler(&stubPhonemizer{}, &stubSymbols{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}

	var body map[string]string
	err := json.NewDecoder(rec.Body).Decode(&body)
	if err != nil {
		t.Fatalf("decode body: %v", err)
	}

	if body["status"] != "ok" {
		t.Errorf("want status=ok, got %q", body["status"])
	}

	if _, ok := body["version"]; !ok {
		t.Error("want version field in response")
	}
}

// ---------------------------------------------------------------------------
// GET /symbols
// ---------------------------------------------------------------------------

func TestSymbols_ReturnsJSONArrayInIDOrder(t *testing.T) {
	h := newTestHandler(&stubPhonemizer{}, &stubSymbols{symbols: []string{"_", "HH", "UNK"}})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/symbols", nil)
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}

	var got []string
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	if !slices.Equal(got, []string{"_", "HH", "UNK"}) {
		t.Errorf("symbols = %q", got)
	}
}

func TestSymbols_ReturnsEmptyArrayWhenNil(t *testing.T) {
	h := newTestHandler(&stubPhonemizer{}, &stubSymbols{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/symbols", nil)
	h.ServeHTTP(rec, req)

	if got := rec.Body.String(); got != "[]\n" {
		t.Errorf("body = %q; want %q", got, "[]\n")
	}
}

// ---------------------------------------------------------------------------
// POST /phonemize
// ---------------------------------------------------------------------------

func TestPhonemize_ReturnsResult(t *testing.T) {
	p := &stubPhonemizer{res: tts.Result{
		Language: g2p.English,
		Symbols:  []string{"HH", "AH0"},
		IDs:      []int{40, 9},
	}}
	h := newTestHandler(p, &stubSymbols{})

	rec := postPhonemize(h, `{"text":"Hello."}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var got tts.Result
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	if got.Language != g2p.English || !slices.Equal(got.IDs, []int{40, 9}) || !slices.Equal(got.Symbols, []string{"HH", "AH0"}) {
		t.Errorf("result = %+v", got)
	}
	if !slices.Equal(p.texts, []string{"Hello."}) {
		t.Errorf("phonemizer texts = %q", p.texts)
	}
}

func TestPhonemize_EmptyTextReturnsEmptyArrays(t *testing.T) {
	h := newTestHandler(&stubPhonemizer{res: tts.Result{Language: g2p.English}}, &stubSymbols{})

	rec := postPhonemize(h, `{"text":""}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}

	var body map[string]json.RawMessage
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if string(body["ids"]) != "[]" || string(body["symbols"]) != "[]" {
		t.Errorf("ids=%s symbols=%s; want empty arrays", body["ids"], body["symbols"])
	}
}

func TestPhonemize_MethodNotAllowed(t *testing.T) {
	h := newTestHandler(&stubPhonemizer{}, &stubSymbols{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/phonemize", nil)
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("want 405, got %d", rec.Code)
	}
}

func TestPhonemize_InvalidJSON(t *testing.T) {
	h := newTestHandler(&stubPhonemizer{}, &stubSymbols{})

	rec := postPhonemize(h, `{not json`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", rec.Code)
	}
}

func TestPhonemize_MissingTextField(t *testing.T) {
	for _, body := range []string{`{}`, `{"text":null}`, `{"txt":"hello"}`} {
		t.Run(body, func(t *testing.T) {
			p := &stubPhonemizer{}
			h := newTestHandler(p, &stubSymbols{})

			rec := postPhonemize(h, body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("want 400, got %d", rec.Code)
			}
			if len(p.texts) != 0 {
				t.Errorf("phonemizer called with %q; want no calls", p.texts)
			}
		})
	}
}

func TestPhonemize_FailureReturns500(t *testing.T) {
	h := newTestHandler(&stubPhonemizer{err: errors.New("japanese phonemizer not configured")}, &stubSymbols{})

	rec := postPhonemize(h, `{"text":"こんにちは"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d", rec.Code)
	}

	var body map[string]string
	_ = json.NewDecoder(rec.Body).Decode(&body)
	if body["error"] != "japanese phonemizer not configured" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestPhonemize_EndToEndWithService(t *testing.T) {
	svc := newService(t)
	h := newTestHandler(svc, svc)

	rec := postPhonemize(h, `{"text":"Hello,  world!"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var got tts.Result
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	want := []string{"HH", "AH0", "L", "OW1", ",", "W", "ER1", "L", "D", "!"}
	if !slices.Equal(got.Symbols, want) {
		t.Errorf("symbols = %q; want %q", got.Symbols, want)
	}
	if len(got.IDs) != len(want) {
		t.Errorf("len(ids) = %d; want %d", len(got.IDs), len(want))
	}
}
