package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/go-genie-tts/internal/tts"
)

const (
	formatIDs     = "ids"
	formatSymbols = "symbols"
	formatJSON    = "json"
)

func newPhonemizeCmd() *cobra.Command {
	var (
		text   string
		format string
	)

	cmd := &cobra.Command{
		Use:   "phonemize",
		Short: "Convert text to phoneme IDs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			if format != formatIDs && format != formatSymbols && format != formatJSON {
				return fmt.Errorf("--format must be one of ids|symbols|json, got %q", format)
			}

			input, err := readInputText(text, cmd.Flags().Changed("text"), cmd.InOrStdin())
			if err != nil {
				return err
			}

			svc, err := tts.NewService(cfg)
			if err != nil {
				return err
			}

			res, err := svc.Phonemize(cmd.Context(), input)
			if err != nil {
				return err
			}

			return writeResult(cmd.OutOrStdout(), res, format)
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Text to convert (read from stdin when the flag is not given)")
	cmd.Flags().StringVar(&format, "format", formatIDs, "Output format: ids|symbols|json")

	return cmd
}

// readInputText returns the --text value whenever the flag was given, even
// if it is blank, and otherwise reads stdin. Blank text converts to no IDs.
func readInputText(text string, textSet bool, stdin io.Reader) (string, error) {
	if textSet {
		return text, nil
	}

	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	input := strings.TrimSpace(string(b))
	if input == "" {
		return "", fmt.Errorf("either provide --text or pipe text on stdin")
	}
	return input, nil
}

func writeResult(w io.Writer, res tts.Result, format string) error {
	switch format {
	case formatJSON:
		if res.Symbols == nil {
			res.Symbols = []string{}
		}
		if res.IDs == nil {
			res.IDs = []int{}
		}
		return json.NewEncoder(w).Encode(res)
	case formatSymbols:
		_, err := fmt.Fprintln(w, strings.Join(res.Symbols, " "))
		return err
	default:
		parts := make([]string, len(res.IDs))
		for i, id := range res.IDs {
			parts[i] = strconv.Itoa(id)
		}
		_, err := fmt.Fprintln(w, strings.Join(parts, " "))
		return err
	}
}
