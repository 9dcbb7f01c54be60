// Package resource downloads and verifies external data files such as the
// full CMU pronouncing dictionary.
package resource

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// ErrChecksumMismatch is returned when a downloaded file does not match its
// pinned checksum.
var ErrChecksumMismatch = errors.New("checksum mismatch")

// LockFilename is written into the output directory after each download.
const LockFilename = "resources.lock.json"

type DownloadOptions struct {
	Name   string
	OutDir string
	// URL overrides the manifest URL. Only valid for single-file manifests.
	URL string
	// SHA256 overrides the pinned checksum. Only valid for single-file manifests.
	SHA256 string
	Client *http.Client
	Stdout io.Writer
}

type lockManifest struct {
	Name      string                `json:"name"`
	Generated string                `json:"generated"`
	Files     map[string]lockRecord `json:"files"`
}

type lockRecord struct {
	URL    string `json:"url"`
	SHA256 string `json:"sha256"`
}

var shaHexPattern = regexp.MustCompile(`(?i)^[a-f0-9]{64}$`)

// Download fetches every file of the named manifest into opts.OutDir and
// returns the local paths. Files already present with a matching checksum are
// skipped.
func Download(ctx context.Context, opts DownloadOptions) ([]string, error) {
	if opts.Name == "" {
		return nil, fmt.Errorf("resource name is required")
	}
	if opts.OutDir == "" {
		return nil, fmt.Errorf("out dir is required")
	}
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: 0}
	}

	manifest, err := PinnedManifest(opts.Name)
	if err != nil {
		return nil, err
	}
	if (opts.URL != "" || opts.SHA256 != "") && len(manifest.Files) != 1 {
		return nil, fmt.Errorf("url and sha256 overrides need a single-file manifest, %q has %d files", opts.Name, len(manifest.Files))
	}
	if opts.SHA256 != "" && !isSHA256Hex(opts.SHA256) {
		return nil, fmt.Errorf("invalid sha256 %q", opts.SHA256)
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create out dir: %w", err)
	}

	lockPath := filepath.Join(opts.OutDir, LockFilename)
	lock := readLockManifest(lockPath)
	if lock.Files == nil {
		lock.Files = make(map[string]lockRecord)
	}
	lock.Name = manifest.Name
	lock.Generated = time.Now().UTC().Format(time.RFC3339)

	paths := make([]string, 0, len(manifest.Files))
	for _, f := range manifest.Files {
		if opts.URL != "" {
			f.URL = opts.URL
		}
		if opts.SHA256 != "" {
			f.SHA256 = opts.SHA256
		}

		expected := strings.ToLower(f.SHA256)
		if expected == "" {
			if lr, ok := lock.Files[f.Filename]; ok && lr.URL == f.URL && isSHA256Hex(lr.SHA256) {
				expected = strings.ToLower(lr.SHA256)
			}
		}

		localPath := filepath.Join(opts.OutDir, filepath.FromSlash(f.Filename))
		paths = append(paths, localPath)

		if expected != "" {
			if ok, err := existingMatches(localPath, expected); err != nil {
				return nil, err
			} else if ok {
				fmt.Fprintf(opts.Stdout, "skip %s (checksum match)\n", f.Filename)
				lock.Files[f.Filename] = lockRecord{URL: f.URL, SHA256: expected}
				continue
			}
		}

		fmt.Fprintf(opts.Stdout, "download %s -> %s\n", f.URL, localPath)
		tmp, actual, err := downloadWithProgress(ctx, opts.Client, f, localPath, opts.Stdout)
		if err != nil {
			return nil, err
		}
		if expected != "" && actual != expected {
			_ = os.Remove(tmp)
			return nil, fmt.Errorf("%w for %s: expected %s got %s", ErrChecksumMismatch, f.Filename, expected, actual)
		}
		if err := os.Rename(tmp, localPath); err != nil {
			_ = os.Remove(tmp)
			return nil, fmt.Errorf("move temp file into place: %w", err)
		}
		fmt.Fprintf(opts.Stdout, "verified %s (sha256=%s)\n", f.Filename, actual)
		lock.Files[f.Filename] = lockRecord{URL: f.URL, SHA256: actual}
	}

	if err := writeLockManifest(lockPath, lock); err != nil {
		return nil, err
	}
	fmt.Fprintf(opts.Stdout, "wrote lock manifest: %s\n", lockPath)
	return paths, nil
}

func existingMatches(path, expected string) (bool, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat existing file: %w", err)
	}
	if fi.IsDir() {
		return false, fmt.Errorf("expected file at %s, found directory", path)
	}
	actual, err := fileSHA256(path)
	if err != nil {
		return false, err
	}
	return actual == expected, nil
}

// downloadWithProgress streams file.URL into a temp file next to outPath and
// returns the temp path and its sha256. The caller moves it into place.
func downloadWithProgress(ctx context.Context, client *http.Client, file File, outPath string, stdout io.Writer) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.URL, nil)
	if err != nil {
		return "", "", fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("download request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", "", fmt.Errorf("download failed for %s: %s", file.Filename, resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", "", fmt.Errorf("create local subdir: %w", err)
	}

	tmp := outPath + ".tmp"
	fh, err := os.Create(tmp)
	if err != nil {
		return "", "", fmt.Errorf("create temp file: %w", err)
	}

	h := sha256.New()
	mw := io.MultiWriter(fh, h)

	var written int64
	buf := make([]byte, 64*1024)
	total := resp.ContentLength
	lastPrint := time.Now()
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			wn, writeErr := mw.Write(buf[:n])
			if writeErr != nil {
				_ = fh.Close()
				_ = os.Remove(tmp)
				return "", "", fmt.Errorf("write temp file: %w", writeErr)
			}
			written += int64(wn)
			if time.Since(lastPrint) > 700*time.Millisecond {
				if total > 0 {
					pct := float64(written) * 100 / float64(total)
					fmt.Fprintf(stdout, "  progress: %.1f%% (%d/%d bytes)\n", pct, written, total)
				} else {
					fmt.Fprintf(stdout, "  progress: %d bytes\n", written)
				}
				lastPrint = time.Now()
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			_ = fh.Close()
			_ = os.Remove(tmp)
			return "", "", fmt.Errorf("download read failed: %w", readErr)
		}
	}

	if err := fh.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", "", fmt.Errorf("close temp file: %w", err)
	}

	return tmp, hex.EncodeToString(h.Sum(nil)), nil
}

func isSHA256Hex(v string) bool {
	return shaHexPattern.MatchString(v)
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for checksum: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("read file for checksum: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func readLockManifest(path string) lockManifest {
	b, err := os.ReadFile(path)
	if err != nil {
		return lockManifest{}
	}
	var out lockManifest
	if err := json.Unmarshal(b, &out); err != nil {
		return lockManifest{}
	}
	if out.Files == nil {
		out.Files = map[string]lockRecord{}
	}
	return out
}

func writeLockManifest(path string, lock lockManifest) error {
	b, err := json.MarshalIndent(lock, "", "  ")
	if err != nil {
		return fmt.Errorf("encode lock manifest: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write lock manifest: %w", err)
	}
	return nil
}
