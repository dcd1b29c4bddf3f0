package main

import (
	"time"

	"github.com/spf13/cobra"
)

type loadOutput struct {
	Command    string `json:"command"`
	Source     string `json:"source"`
	Rows       int64  `json:"rows"`
	DurationMS int64  `json:"duration_ms"`
}

func newLoadCmd() *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "load [--file <path>]",
		Short: "Ensure the schema and bulk load one forest (generated, or imported from a JSON file)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pool, err := connectDB(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			ctx := serviceContext(cmd.Context(), pool)

			start := time.Now()
			rows, err := newDirectoryService().EnsureAndLoad(ctx, filePath)
			if err != nil {
				return err
			}

			source := "generated"
			if filePath != "" {
				source = filePath
			}
			return writeJSONLine(loadOutput{
				Command:    "load",
				Source:     source,
				Rows:       rows,
				DurationMS: time.Since(start).Milliseconds(),
			})
		},
	}

	cmd.Flags().StringVar(&filePath, "file", "", "Path to a JSON array of node records; generates a synthetic forest when omitted")
	return cmd
}
