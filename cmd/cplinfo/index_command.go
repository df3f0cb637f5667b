package main

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"cplinfo/internal/trackindex"
)

func newIndexCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	indexCmd := &cobra.Command{
		Use:   "index",
		Short: "List recorded inspections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := trackindex.Open(cfg.Index.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			comps, err := store.Compositions(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, comps)
			}
			if len(comps) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no inspections recorded")
				return nil
			}

			tw := table.NewWriter()
			tw.SetStyle(table.StyleRounded)
			tw.AppendHeader(table.Row{"Composition", "Title", "Namespace", "Inspected"})
			for _, comp := range comps {
				tw.AppendRow(table.Row{
					comp.Path,
					comp.Title,
					comp.Namespace,
					comp.InspectedAt.UTC().Format(time.RFC3339),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), tw.Render())
			return nil
		},
	}

	indexCmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit recorded inspections as JSON")
	return indexCmd
}
