package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tscore",
		Short: "Structural type-checker core: lower, evaluate, and inspect TOML type fixtures",
	}
	cmd.AddCommand(newCheckCommand())
	cmd.AddCommand(newDumpCommand())
	cmd.AddCommand(newLoadCommand())
	cmd.AddCommand(newExploreCommand())
	return cmd
}
