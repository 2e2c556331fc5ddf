package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"iconvault/internal/icon"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached icon entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEngine(false, func(eng *engine) error {
				out := cmd.OutOrStdout()
				snap := eng.cache.Entries()
				if len(snap.Apps)+len(snap.Files) == 0 {
					fmt.Fprintln(out, "Icon cache is empty")
					return nil
				}

				rows := make([][]string, 0, len(snap.Apps)+len(snap.Files))
				rows = append(rows, namespaceRows("app", snap.Apps)...)
				rows = append(rows, namespaceRows("file", snap.Files)...)

				rendered := renderTable(out,
					[]string{"Namespace", "Key", "Kind", "Assets"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
				)
				fmt.Fprintln(out, rendered)
				return nil
			})
		},
	}
}

func namespaceRows(namespace string, entries map[string]icon.Descriptor) [][]string {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		desc := entries[key]
		kind := "static"
		if desc.IsDynamic() {
			kind = "dynamic"
		}
		rows = append(rows, []string{namespace, key, kind, strings.Join(desc.Assets(), ", ")})
	}
	return rows
}
