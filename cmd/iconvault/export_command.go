package main

import (
	"bytes"
	"fmt"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"iconvault/internal/config"
	"iconvault/internal/imaging"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var size int

	cmd := &cobra.Command{
		Use:   "export <key> <out.png>",
		Short: "Copy a cached asset out of the vault",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEngine(false, func(eng *engine) error {
				key := args[0]
				outPath, err := config.ExpandPath(args[1])
				if err != nil {
					return err
				}

				desc, ok := eng.lookup(key)
				if !ok {
					return fmt.Errorf("no cache entry for %q", key)
				}
				data, err := eng.vault.ReadAsset(desc.Primary())
				if err != nil {
					return err
				}

				if size > 0 {
					img, err := png.Decode(bytes.NewReader(data))
					if err != nil {
						return fmt.Errorf("decode asset: %w", err)
					}
					var buf bytes.Buffer
					if err := imaging.EncodePNG(&buf, imaging.Thumbnail(img, size)); err != nil {
						return err
					}
					data = buf.Bytes()
				}

				if err := os.WriteFile(outPath, data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", outPath, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", key, outPath)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&size, "size", 0, "Downscale the longest edge to this many pixels")
	return cmd
}
