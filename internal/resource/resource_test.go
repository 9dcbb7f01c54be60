package resource

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

const dictBody = "hello HH AH0 L OW1\nworld W ER1 L D\n"

func sha256Hex(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}

// dictServer serves body and counts requests.
func dictServer(t *testing.T, body string) (*httptest.Server, *int32) {
	t.Helper()

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if r.URL.Path != "/cmudict.dict" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

// ---------------------------------------------------------------------------
// PinnedManifest
// ---------------------------------------------------------------------------

func TestPinnedManifest_CMUDict(t *testing.T) {
	m, err := PinnedManifest(CMUDict)
	if err != nil {
		t.Fatalf("PinnedManifest(%q) error = %v", CMUDict, err)
	}
	if m.Name != CMUDict || len(m.Files) != 1 {
		t.Fatalf("manifest = %+v", m)
	}
	f := m.Files[0]
	if f.Filename != "cmudict.dict" || !strings.HasPrefix(f.URL, "https://") {
		t.Errorf("file = %+v", f)
	}
}

func TestPinnedManifest_Unknown(t *testing.T) {
	if _, err := PinnedManifest("wordnet"); err == nil {
		t.Error("PinnedManifest(unknown) = nil; want error")
	}
}

// ---------------------------------------------------------------------------
// Download
// ---------------------------------------------------------------------------

func TestDownload_FetchesAndWritesLock(t *testing.T) {
	srv, _ := dictServer(t, dictBody)
	dir := t.TempDir()

	paths, err := Download(context.Background(), DownloadOptions{
		Name:   CMUDict,
		OutDir: dir,
		URL:    srv.URL + "/cmudict.dict",
	})
	if err != nil {
		t.Fatalf("Download: %v", err)
	}

	if len(paths) != 1 || paths[0] != filepath.Join(dir, "cmudict.dict") {
		t.Fatalf("paths = %v", paths)
	}
	got, err := os.ReadFile(paths[0])
	if err != nil || string(got) != dictBody {
		t.Fatalf("downloaded content = %q, %v", got, err)
	}

	lock := readLockManifest(filepath.Join(dir, LockFilename))
	if lock.Name != CMUDict {
		t.Errorf("lock name = %q", lock.Name)
	}
	if rec := lock.Files["cmudict.dict"]; rec.SHA256 != sha256Hex([]byte(dictBody)) {
		t.Errorf("lock sha = %q; want %q", rec.SHA256, sha256Hex([]byte(dictBody)))
	}
	if _, err := os.Stat(paths[0] + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}
}

func TestDownload_SkipsWhenLockMatches(t *testing.T) {
	srv, hits := dictServer(t, dictBody)
	dir := t.TempDir()
	opts := DownloadOptions{Name: CMUDict, OutDir: dir, URL: srv.URL + "/cmudict.dict"}

	if _, err := Download(context.Background(), opts); err != nil {
		t.Fatalf("first Download: %v", err)
	}

	var out strings.Builder
	opts.Stdout = &out
	if _, err := Download(context.Background(), opts); err != nil {
		t.Fatalf("second Download: %v", err)
	}

	if n := atomic.LoadInt32(hits); n != 1 {
		t.Errorf("server hits = %d; want 1", n)
	}
	if !strings.Contains(out.String(), "skip cmudict.dict") {
		t.Errorf("output = %q; want skip line", out.String())
	}
}

func TestDownload_ChecksumMismatch(t *testing.T) {
	srv, _ := dictServer(t, dictBody)
	dir := t.TempDir()

	_, err := Download(context.Background(), DownloadOptions{
		Name:   CMUDict,
		OutDir: dir,
		URL:    srv.URL + "/cmudict.dict",
		SHA256: strings.Repeat("0", 64),
	})
	if !errors.Is(err, ErrChecksumMismatch) {
		t.Fatalf("err = %v; want ErrChecksumMismatch", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "cmudict.dict")); !os.IsNotExist(err) {
		t.Error("mismatched file must not be moved into place")
	}
}

func TestDownload_PinnedChecksumAccepted(t *testing.T) {
	srv, _ := dictServer(t, dictBody)

	_, err := Download(context.Background(), DownloadOptions{
		Name:   CMUDict,
		OutDir: t.TempDir(),
		URL:    srv.URL + "/cmudict.dict",
		SHA256: strings.ToUpper(sha256Hex([]byte(dictBody))),
	})
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
}

func TestDownload_HTTPError(t *testing.T) {
	srv, _ := dictServer(t, dictBody)

	_, err := Download(context.Background(), DownloadOptions{
		Name:   CMUDict,
		OutDir: t.TempDir(),
		URL:    srv.URL + "/missing.dict",
	})
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("err = %v; want 404 failure", err)
	}
}

func TestDownload_Validation(t *testing.T) {
	tests := []struct {
		name string
		opts DownloadOptions
	}{
		{"no name", DownloadOptions{OutDir: "x"}},
		{"no out dir", DownloadOptions{Name: CMUDict}},
		{"unknown", DownloadOptions{Name: "wordnet", OutDir: "x"}},
		{"bad sha", DownloadOptions{Name: CMUDict, OutDir: "x", SHA256: "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Download(context.Background(), tt.opts); err == nil {
				t.Error("Download = nil; want error")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func TestExistingMatches(t *testing.T) {
	tmp := t.TempDir()
	p := filepath.Join(tmp, "x.dict")
	if err := os.WriteFile(p, []byte("hello"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	ok, err := existingMatches(p, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824")
	if err != nil {
		t.Fatalf("existingMatches error: %v", err)
	}
	if !ok {
		t.Fatal("expected checksum match")
	}

	ok, err = existingMatches(filepath.Join(tmp, "missing"), strings.Repeat("a", 64))
	if err != nil || ok {
		t.Errorf("existingMatches(missing) = %v, %v; want false, nil", ok, err)
	}

	if _, err := existingMatches(tmp, strings.Repeat("a", 64)); err == nil {
		t.Error("existingMatches(dir) = nil; want error")
	}
}

func TestFileSHA256_MissingFile(t *testing.T) {
	if _, err := fileSHA256("/nonexistent/file.dict"); err == nil {
		t.Error("fileSHA256(missing) = nil; want error")
	}
}

func TestIsSHA256Hex(t *testing.T) {
	for v, want := range map[string]bool{
		strings.Repeat("a", 64): true,
		strings.Repeat("F", 64): true,
		strings.Repeat("a", 63): false,
		strings.Repeat("g", 64): false,
		"":                      false,
	} {
		if got := isSHA256Hex(v); got != want {
			t.Errorf("isSHA256Hex(%q) = %v; want %v", v, got, want)
		}
	}
}

func TestReadLockManifest_InvalidJSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), LockFilename)
	if err := os.WriteFile(p, []byte("{bad"), 0o644); err != nil {
		t.Fatal(err)
	}

	lock := readLockManifest(p)
	if lock.Name != "" || lock.Files != nil {
		t.Errorf("lock = %+v; want zero value", lock)
	}
}

func TestWriteLockManifest_MissingParent(t *testing.T) {
	p := filepath.Join(t.TempDir(), "subdir", LockFilename)

	if err := writeLockManifest(p, lockManifest{Files: map[string]lockRecord{}}); err == nil {
		t.Error("writeLockManifest(missing parent) = nil; want error")
	}
}
