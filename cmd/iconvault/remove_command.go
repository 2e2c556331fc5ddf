package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <key>",
		Short: "Remove one cached entry and flush the pack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEngine(true, func(eng *engine) error {
				out := cmd.OutOrStdout()
				key := args[0]

				// App keys are absolute paths or kind-prefixed ids, so
				// probing that namespace first cannot shadow a file
				// extension entry.
				removed := eng.cache.RemoveAppIcon(key)
				if !removed {
					removed = eng.cache.RemoveFileIcon(key)
				}
				if !removed {
					fmt.Fprintf(out, "No cache entry for %q\n", key)
					return nil
				}
				if err := eng.cache.Write(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(out, "Removed %q\n", key)
				return nil
			})
		},
	}
}
