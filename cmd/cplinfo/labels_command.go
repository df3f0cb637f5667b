package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLabelsCommand(ctx *commandContext) *cobra.Command {
	var labelsPath string

	labelsCmd := &cobra.Command{
		Use:   "labels",
		Short: "Work with the SMPTE UL label registry",
	}
	labelsCmd.PersistentFlags().StringVar(&labelsPath, "registry", "", "Path to a SMPTE UL label registry document")

	lookupCmd := &cobra.Command{
		Use:   "lookup <ul>",
		Short: "Resolve a UL identifier to its registered label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := ctx.registry(labelsPath)
			if err != nil {
				return err
			}
			label, ok := registry.Lookup(args[0])
			if !ok {
				return fmt.Errorf("no label registered for %s", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), label)
			return nil
		},
	}

	countCmd := &cobra.Command{
		Use:   "count",
		Short: "Print the number of registry entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := ctx.registry(labelsPath)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), registry.Len())
			return nil
		},
	}

	labelsCmd.AddCommand(lookupCmd)
	labelsCmd.AddCommand(countCmd)
	return labelsCmd
}
