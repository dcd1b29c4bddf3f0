package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newColleaguesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "colleagues <staff-id>",
		Short: "Print the names of all staff in the office enclosing the given node id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			staffID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid staff id %q: %w", args[0], err)
			}

			pool, err := connectDB(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			ctx := serviceContext(cmd.Context(), pool)
			names, err := newDirectoryService().ListColleagues(ctx, staffID)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
