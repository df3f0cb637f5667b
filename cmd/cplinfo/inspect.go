package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"cplinfo/internal/cpl"
	"cplinfo/internal/logging"
	"cplinfo/internal/report"
	"cplinfo/internal/trackindex"
)

type inspectOptions struct {
	format     string
	labelsPath string
	noIndex    bool
}

// runInspect extracts the composition model from the given CPL file and
// renders the report to stdout. Unreadable or unparsable input returns an
// error, which the CLI surfaces as a non-zero exit.
func runInspect(ctx *commandContext, cmd *cobra.Command, path string, opts *inspectOptions) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	format := opts.format
	if format == "" {
		format = cfg.Output.Format
	}
	switch format {
	case "json", "text", "table":
	default:
		return fmt.Errorf("report format: unsupported value %q", format)
	}

	registry, err := ctx.registry(opts.labelsPath)
	if err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open cpl: %w", err)
	}
	defer file.Close()

	comp, err := cpl.Parse(file, logger)
	if err != nil {
		return err
	}

	if cfg.Index.Enabled && !opts.noIndex {
		recordInspection(ctx, path, comp)
	}

	rep := report.Build(comp, registry, logger)

	switch format {
	case "json":
		return writeJSON(cmd, rep)
	case "text":
		return renderTextReport(cmd.OutOrStdout(), rep)
	case "table":
		fmt.Fprintln(cmd.OutOrStdout(), renderTrackTable(rep))
		return nil
	}
	return nil
}

// recordInspection stores the result in the fingerprint index. Index
// failures are diagnostics, never inspection failures.
func recordInspection(ctx *commandContext, path string, comp *cpl.Composition) {
	logger := logging.NewComponentLogger(ctx.logger, "trackindex")

	store, err := trackindex.Open(ctx.cfg.Index.Path)
	if err != nil {
		logger.Warn("track index unavailable", logging.Args(logging.Error(err))...)
		return
	}
	defer store.Close()

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	entry := trackindex.Composition{
		Path:        absPath,
		Title:       comp.ContentTitle,
		Namespace:   comp.Namespace,
		InspectedAt: time.Now().UTC(),
	}
	for _, track := range comp.VirtualTracks {
		summary := track.Summary()
		seconds, _ := summary.Duration.Float64()
		entry.Tracks = append(entry.Tracks, trackindex.Track{
			TrackID:         summary.TrackID,
			Kind:            track.Kind().String(),
			Fingerprint:     summary.Fingerprint,
			DurationSeconds: seconds,
			ResourceCount:   summary.ResourceCount,
		})
	}

	if _, err := store.Record(context.Background(), entry); err != nil {
		logger.Warn("failed to record inspection", logging.Args(logging.Error(err))...)
	}
}
