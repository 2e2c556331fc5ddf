package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newClearCommand(ctx *commandContext) *cobra.Command {
	var purge bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the icon cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEngine(true, func(eng *engine) error {
				out := cmd.OutOrStdout()
				removed := eng.cache.Len()
				eng.cache.Clear()
				if err := eng.cache.Write(cmd.Context()); err != nil {
					return err
				}
				if purge {
					if err := eng.vault.Purge(); err != nil {
						return err
					}
					fmt.Fprintf(out, "Cleared %d entries and purged vault assets\n", removed)
					return nil
				}
				fmt.Fprintf(out, "Cleared %d entries\n", removed)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&purge, "purge", false, "Also delete generated vault assets")
	return cmd
}
