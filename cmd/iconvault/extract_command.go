package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"iconvault/internal/config"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "extract <path>...",
		Short: "Extract and cache icons for files, executables, and shortcuts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEngine(true, func(eng *engine) error {
				out := cmd.OutOrStdout()
				failures := 0
				for _, arg := range args {
					path, err := config.ExpandPath(arg)
					if err != nil {
						return err
					}
					if force {
						eng.dropPathEntry(path)
					}
					if err := eng.extractor.ExtractPath(cmd.Context(), path); err != nil {
						failures++
						fmt.Fprintf(out, "%s: %v\n", arg, err)
						continue
					}
					if desc, ok := eng.descriptorForPath(path); ok {
						fmt.Fprintf(out, "%s -> %s\n", arg, desc.Primary())
					} else {
						fmt.Fprintf(out, "%s: nothing to extract\n", arg)
					}
				}
				if failures > 0 {
					return fmt.Errorf("%d of %d paths failed", failures, len(args))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Re-extract even when the cache already holds an entry")
	return cmd
}
