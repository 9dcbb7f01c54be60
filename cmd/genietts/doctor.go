package main

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/go-genie-tts/internal/config"
	"github.com/example/go-genie-tts/internal/doctor"
	"github.com/example/go-genie-tts/internal/symbols"
	"github.com/example/go-genie-tts/internal/tts"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Run local dictionary, vocabulary and phonemizer checks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "japanese backend: %s\n", cfg.G2P.JapaneseBackend)

			useCommand := cfg.G2P.JapaneseBackend == config.JapaneseCommand
			result := doctor.Run(doctor.Config{
				Vocabulary: func() (int, error) {
					return probeVocabulary(cfg.Paths.SymbolsPath)
				},
				Dictionary: func() (int, error) {
					dict, err := tts.LoadDictionary(cfg.Paths.DictPath)
					if err != nil {
						return 0, err
					}
					return dict.Len(), nil
				},
				JapaneseVersion: func() (string, error) {
					return probeJapaneseCommand(cfg.G2P.JapaneseCommand)
				},
				SkipJapanese:  !useCommand,
				PythonVersion: probePythonVersion,
				SkipPython:    !useCommand || !isPythonCommand(cfg.G2P.JapaneseCommand),
				DataFiles:     collectDataFiles(cfg),
			}, out)

			if result.Failed() {
				for _, f := range result.Failures() {
					fmt.Fprintf(cmd.ErrOrStderr(), "FAIL: %s\n", f)
				}

				return errors.New("doctor checks failed")
			}

			_, _ = fmt.Fprintln(out, "doctor checks passed")

			return nil
		},
	}
}

func probeVocabulary(path string) (int, error) {
	vocab, err := tts.LoadVocabulary(path)
	if err != nil {
		return 0, err
	}
	if !vocab.Contains(symbols.Unknown) {
		return 0, fmt.Errorf("unknown symbol %q missing", symbols.Unknown)
	}
	return vocab.Len(), nil
}

// probeJapaneseCommand resolves the configured command in PATH.
func probeJapaneseCommand(exe string) (string, error) {
	if exe == "" {
		return "", errors.New("japanese_command is empty")
	}
	path, err := exec.LookPath(exe)
	if err != nil {
		return "", err
	}
	return path, nil
}

func isPythonCommand(exe string) bool {
	return strings.HasPrefix(filepath.Base(exe), "python")
}

// probePythonVersion tries python3 then python and returns the version string.
func probePythonVersion() (string, error) {
	for _, bin := range []string{"python3", "python"} {
		out, err := exec.CommandContext(context.Background(), bin, "--version").Output()
		if err != nil {
			continue
		}
		// Output is e.g. "Python 3.11.4\n"
		raw := strings.TrimSpace(string(out))

		raw = strings.TrimPrefix(raw, "Python ")
		if raw != "" {
			return raw, nil
		}
	}

	return "", errors.New("python3/python not found on PATH")
}

// collectDataFiles returns the configured data files as absolute paths so
// the doctor stat check is CWD-independent in its output.
func collectDataFiles(cfg config.Config) []string {
	var paths []string
	for _, p := range []string{cfg.Paths.DictPath, cfg.Paths.SymbolsPath} {
		if p == "" {
			continue
		}
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		paths = append(paths, p)
	}
	return paths
}
