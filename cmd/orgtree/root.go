package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "orgtree",
		Short:         "Office/department/staff directory tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newLoadCmd())
	cmd.AddCommand(newColleaguesCmd())
	cmd.AddCommand(newWipeCmd())
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
