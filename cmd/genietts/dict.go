package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/go-genie-tts/internal/resource"
)

func newDictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dict",
		Short: "Manage the English pronouncing dictionary",
	}
	cmd.AddCommand(newDictDownloadCmd())
	return cmd
}

func newDictDownloadCmd() *cobra.Command {
	var (
		outDir   string
		url      string
		checksum string
	)

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download the full CMU pronouncing dictionary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := requireConfig(); err != nil {
				return err
			}

			paths, err := resource.Download(cmd.Context(), resource.DownloadOptions{
				Name:   resource.CMUDict,
				OutDir: outDir,
				URL:    url,
				SHA256: checksum,
				Stdout: cmd.OutOrStdout(),
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "set paths.dict_path (or GENIETTS_PATHS_DICT_PATH) to %s\n", paths[0])
			return err
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", "data", "Directory to download into")
	cmd.Flags().StringVar(&url, "url", "", "Override the dictionary URL")
	cmd.Flags().StringVar(&checksum, "sha256", "", "Expected sha256 of the dictionary file")

	return cmd
}
