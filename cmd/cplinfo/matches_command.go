package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"cplinfo/internal/trackindex"
)

func newMatchesCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	matchesCmd := &cobra.Command{
		Use:   "matches <fingerprint>",
		Short: "List indexed compositions carrying a track with the given fingerprint",
		Args:  cobra.ExactArgs(1),
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

			matches, err := store.FindByFingerprint(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, matches)
			}
			if len(matches) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no matching tracks indexed")
				return nil
			}

			rows := make([][]string, 0, len(matches))
			for _, m := range matches {
				rows = append(rows, []string{
					m.Path,
					m.Title,
					m.Kind,
					m.TrackID,
					m.InspectedAt.UTC().Format(time.RFC3339),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderMatchTable(rows))
			return nil
		},
	}

	matchesCmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit matches as JSON")
	return matchesCmd
}
