package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"cplinfo/internal/report"
)

const (
	ansiReset = "\x1b[0m"
	ansiBlue  = "\x1b[34m"
)

// renderTextReport writes the report as indented plain text. Headers are
// colorized when stdout is a terminal.
func renderTextReport(w io.Writer, rep report.Composition) error {
	colorize := shouldColorize(w)

	writeHeader(w, "Composition", colorize)
	writeField(w, 1, "namespace", rep.Namespace)
	writeField(w, 1, "content_title", nullable(rep.ContentTitle))

	for _, track := range rep.VirtualTracks {
		writeHeader(w, track.Kind, colorize)
		writeField(w, 1, "virtual_track_id", track.VirtualTrackID)
		writeField(w, 1, "fingerprint", track.Fingerprint)
		writeField(w, 1, "resource_count", fmt.Sprint(track.ResourceCount))
		writeField(w, 1, "duration", track.Duration)

		switch essence := track.EssenceInfo.(type) {
		case report.ImageEssence:
			writeField(w, 1, "sample_rate", essence.SampleRate)
			writeField(w, 1, "stored_width", fmt.Sprint(essence.StoredWidth))
			writeField(w, 1, "stored_height", fmt.Sprint(essence.StoredHeight))
			writeField(w, 1, "picture_compression", nullable(essence.PictureCompression))
			writeField(w, 1, "container_format", nullable(essence.ContainerFormat))
			writeField(w, 1, "transfer_characteristic", nullable(essence.TransferCharacteristic))
			writeField(w, 1, "coding_equations", nullable(essence.CodingEquations))
			writeField(w, 1, "color_encoding", nullable(essence.ColorEncoding))
		case report.AudioEssence:
			writeField(w, 1, "sample_rate", essence.SampleRate)
			writeField(w, 1, "spoken_language", nullable(essence.SpokenLanguage))
			writeField(w, 1, "soundfield", nullable(essence.Soundfield))
			writeField(w, 1, "container_format", nullable(essence.ContainerFormat))
			writeField(w, 1, "channel_assignment", nullable(essence.ChannelAssignment))
			writeField(w, 1, "channels", strings.Join(essence.Channels, ", "))
		case report.SubtitleEssence:
			writeField(w, 1, "sample_rate", essence.SampleRate)
			writeField(w, 1, "subtitle_language", nullable(essence.SubtitleLanguage))
			writeField(w, 1, "container_format", nullable(essence.ContainerFormat))
		}
	}
	return nil
}

func writeHeader(w io.Writer, title string, colorize bool) {
	line := fmt.Sprintf("== %s ==", title)
	if colorize {
		line = ansiBlue + line + ansiReset
	}
	fmt.Fprintln(w, line)
}

func writeField(w io.Writer, indent int, key, value string) {
	if value == "" {
		value = "-"
	}
	fmt.Fprintf(w, "%s%s: %s\n", strings.Repeat("  ", indent), key, value)
}

func nullable(value *string) string {
	if value == nil {
		return "-"
	}
	return *value
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
