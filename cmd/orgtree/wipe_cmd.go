package main

import (
	"github.com/spf13/cobra"
)

type wipeOutput struct {
	Command string `json:"command"`
	Rows    int64  `json:"rows"`
}

func newWipeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wipe",
		Short: "Delete all nodes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pool, err := connectDB(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			ctx := serviceContext(cmd.Context(), pool)
			rows, err := newDirectoryService().Wipe(ctx)
			if err != nil {
				return err
			}
			return writeJSONLine(wipeOutput{Command: "wipe", Rows: rows})
		},
	}
}
