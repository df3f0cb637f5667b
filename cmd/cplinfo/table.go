package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"cplinfo/internal/report"
)

// renderTrackTable renders the per-track summary as a rounded table.
func renderTrackTable(rep report.Composition) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Kind", "Track ID", "Resources", "Duration", "Fingerprint"})

	for _, track := range rep.VirtualTracks {
		tw.AppendRow(table.Row{
			track.Kind,
			track.VirtualTrackID,
			track.ResourceCount,
			track.Duration,
			track.Fingerprint,
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}

// renderMatchTable renders fingerprint index matches.
func renderMatchTable(rows [][]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Composition", "Title", "Kind", "Track ID", "Inspected"})
	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		tw.AppendRow(r)
	}
	return tw.Render()
}
