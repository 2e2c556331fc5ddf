package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"iconvault/internal/icon"
)

func newAppCommand(ctx *commandContext) *cobra.Command {
	var legacy bool
	var force bool

	cmd := &cobra.Command{
		Use:   "app <id>...",
		Short: "Extract and cache icons for application identities",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEngine(true, func(eng *engine) error {
				out := cmd.OutOrStdout()
				failures := 0
				for _, arg := range args {
					id := icon.PackagedApp(arg)
					if legacy {
						id = icon.LegacyApp(arg)
					}
					if force {
						eng.cache.RemoveAppIcon(id.String())
					}
					if err := eng.extractor.ExtractApp(cmd.Context(), id); err != nil {
						failures++
						fmt.Fprintf(out, "%s: %v\n", id.String(), err)
						continue
					}
					if desc, ok := eng.cache.AppIcon(id.String()); ok {
						fmt.Fprintf(out, "%s -> %s\n", id.String(), desc.Primary())
					}
				}
				if failures > 0 {
					return fmt.Errorf("%d of %d identities failed", failures, len(args))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&legacy, "legacy", false, "Treat identities as opaque legacy identities")
	cmd.Flags().BoolVar(&force, "force", false, "Re-extract even when the cache already holds an entry")
	return cmd
}
