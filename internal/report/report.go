package report

import (
	"log/slog"
	"math/big"

	"golang.org/x/text/language"

	"cplinfo/internal/cpl"
	"cplinfo/internal/labels"
	"cplinfo/internal/logging"
	"cplinfo/internal/rational"
)

// Composition is the root of the rendered report.
type Composition struct {
	Namespace     string  `json:"namespace"`
	ContentTitle  *string `json:"content_title"`
	VirtualTracks []Track `json:"virtual_tracks"`
}

// Track is one virtual track entry. EssenceInfo holds the kind-specific
// struct so field order in serialized output follows the kind's contract.
type Track struct {
	Kind           string `json:"kind"`
	Fingerprint    string `json:"fingerprint"`
	VirtualTrackID string `json:"virtual_track_id"`
	ResourceCount  int    `json:"resource_count"`
	Duration       string `json:"duration"`
	EssenceInfo    any    `json:"essence_info"`
}

// ImageEssence is the essence_info payload for image tracks. Pointer fields
// are null when the source field was absent or its UL had no registry entry.
type ImageEssence struct {
	SampleRate             string  `json:"sample_rate"`
	StoredWidth            int     `json:"stored_width"`
	StoredHeight           int     `json:"stored_height"`
	PictureCompression     *string `json:"picture_compression"`
	ContainerFormat        *string `json:"container_format"`
	TransferCharacteristic *string `json:"transfer_characteristic"`
	CodingEquations        *string `json:"coding_equations"`
	ColorEncoding          *string `json:"color_encoding"`
}

// AudioEssence is the essence_info payload for audio tracks. Channels and
// Soundfield carry raw MCA tag symbols, never resolved labels.
type AudioEssence struct {
	SampleRate        string   `json:"sample_rate"`
	SpokenLanguage    *string  `json:"spoken_language"`
	Soundfield        *string  `json:"soundfield"`
	ContainerFormat   *string  `json:"container_format"`
	ChannelAssignment *string  `json:"channel_assignment"`
	Channels          []string `json:"channels"`
}

// SubtitleEssence is the essence_info payload for subtitle tracks.
type SubtitleEssence struct {
	SampleRate       string  `json:"sample_rate"`
	SubtitleLanguage *string `json:"subtitle_language"`
	ContainerFormat  *string `json:"container_format"`
}

// Build renders the composition model into its report shape, resolving UL
// identifiers against the supplied registry.
func Build(comp *cpl.Composition, registry *labels.Registry, logger *slog.Logger) Composition {
	log := logging.NewComponentLogger(logger, "report")

	out := Composition{
		Namespace:    comp.Namespace,
		ContentTitle: optional(comp.ContentTitle),
	}

	for _, track := range comp.VirtualTracks {
		out.VirtualTracks = append(out.VirtualTracks, buildTrack(track, registry, log))
	}
	return out
}

func buildTrack(track cpl.VirtualTrack, registry *labels.Registry, log *slog.Logger) Track {
	summary := track.Summary()
	out := Track{
		Kind:           track.Kind().String(),
		Fingerprint:    summary.Fingerprint,
		VirtualTrackID: summary.TrackID,
		ResourceCount:  summary.ResourceCount,
		Duration:       rational.Clock(summary.Duration),
	}

	switch t := track.(type) {
	case *cpl.ImageTrack:
		out.EssenceInfo = ImageEssence{
			SampleRate:             sampleRate(t.SampleRate),
			StoredWidth:            t.StoredWidth,
			StoredHeight:           t.StoredHeight,
			PictureCompression:     resolveUL(registry, t.PictureCompression),
			ContainerFormat:        resolveUL(registry, t.ContainerFormat),
			TransferCharacteristic: resolveUL(registry, t.TransferCharacteristic),
			CodingEquations:        resolveUL(registry, t.CodingEquations),
			ColorEncoding:          resolveUL(registry, t.ColorPrimaries),
		}
	case *cpl.AudioTrack:
		validateLanguageTag(log, summary.TrackID, t.SpokenLanguage)
		channels := t.Channels
		if channels == nil {
			channels = []string{}
		}
		out.EssenceInfo = AudioEssence{
			SampleRate:        sampleRate(t.SampleRate),
			SpokenLanguage:    optional(t.SpokenLanguage),
			Soundfield:        optional(t.Soundfield),
			ContainerFormat:   resolveUL(registry, t.ContainerFormat),
			ChannelAssignment: resolveUL(registry, t.ChannelAssignment),
			Channels:          channels,
		}
	case *cpl.SubtitleTrack:
		validateLanguageTag(log, summary.TrackID, t.SubtitleLanguage)
		out.EssenceInfo = SubtitleEssence{
			SampleRate:       sampleRate(t.SampleRate),
			SubtitleLanguage: optional(t.SubtitleLanguage),
			ContainerFormat:  resolveUL(registry, t.ContainerFormat),
		}
	}

	return out
}

// resolveUL maps a raw UL identifier to its display label. Both an absent
// identifier and a registry miss render as null.
func resolveUL(registry *labels.Registry, ul string) *string {
	if ul == "" {
		return nil
	}
	label, ok := registry.Lookup(ul)
	if !ok {
		return nil
	}
	return &label
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func sampleRate(rate *big.Rat) string {
	if rate == nil {
		return ""
	}
	return rate.RatString()
}

// validateLanguageTag emits a diagnostic for malformed RFC 5646 tags. The
// raw value is reported either way.
func validateLanguageTag(log *slog.Logger, trackID, tag string) {
	if tag == "" {
		return
	}
	if _, err := language.Parse(tag); err != nil {
		log.Warn("language tag is not valid RFC 5646",
			logging.Args(
				logging.String("tag", tag),
				logging.String(logging.FieldTrackID, trackID))...)
	}
}
