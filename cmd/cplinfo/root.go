package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var logLevelFlag string

	ctx := newCommandContext(&configFlag, &logLevelFlag)

	opts := &inspectOptions{}

	rootCmd := &cobra.Command{
		Use:           "cplinfo [cpl_file]",
		Short:         "Extracts composition information from an IMF CPL document",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runInspect(ctx, cmd, args[0], opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Diagnostic level: debug, info, warn, or error")
	rootCmd.Flags().StringVarP(&opts.format, "format", "f", "", "Report format: json, text, or table")
	rootCmd.Flags().StringVar(&opts.labelsPath, "labels", "", "Path to a SMPTE UL label registry document")
	rootCmd.Flags().BoolVar(&opts.noIndex, "no-index", false, "Skip recording this inspection in the track index")

	rootCmd.AddCommand(newLabelsCommand(ctx))
	rootCmd.AddCommand(newMatchesCommand(ctx))
	rootCmd.AddCommand(newIndexCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
