package cpl

import (
	"log/slog"
	"math/big"
	"strconv"

	"cplinfo/internal/logging"
	"cplinfo/internal/rational"
	"cplinfo/internal/xmltree"
)

// TrackKind enumerates the closed set of virtual track kinds. Sequence local
// names outside this set are skipped with a warning; there is no catch-all
// kind.
type TrackKind int

const (
	KindImage TrackKind = iota
	KindAudio
	KindSubtitle
)

// String returns the report-level kind tag.
func (k TrackKind) String() string {
	switch k {
	case KindImage:
		return "main_image"
	case KindAudio:
		return "main_audio"
	case KindSubtitle:
		return "main_subtitle"
	default:
		return "unknown"
	}
}

// sequenceKinds maps sequence element local names to track kinds.
var sequenceKinds = map[string]TrackKind{
	"MainImageSequence": KindImage,
	"MainAudioSequence": KindAudio,
	"SubtitlesSequence": KindSubtitle,
}

// TrackSummary carries the fields common to every virtual track. Duration is
// exact seconds; ResourceCount is the raw resource list length, including
// zero-duration resources that contribute neither duration nor fingerprint.
type TrackSummary struct {
	TrackID       string
	Fingerprint   string
	Duration      *big.Rat
	ResourceCount int
}

// VirtualTrack is one timeline of a single essence kind. Tracks are
// constructed once from an essence descriptor element and an aggregated
// resource summary, and are immutable afterwards.
type VirtualTrack interface {
	Kind() TrackKind
	Summary() TrackSummary
}

// ImageTrack describes a MainImageSequence virtual track. UL-valued fields
// hold raw identifier strings; resolution to display labels happens at
// report time.
type ImageTrack struct {
	TrackSummary

	SampleRate             *big.Rat
	StoredWidth            int
	StoredHeight           int
	PictureCompression     string
	ContainerFormat        string
	TransferCharacteristic string
	CodingEquations        string
	ColorPrimaries         string
}

func (t *ImageTrack) Kind() TrackKind       { return KindImage }
func (t *ImageTrack) Summary() TrackSummary { return t.TrackSummary }

// AudioTrack describes a MainAudioSequence virtual track. Channel labels and
// the soundfield group label are MCA tag symbols reported verbatim, never
// label-resolved.
type AudioTrack struct {
	TrackSummary

	SampleRate        *big.Rat
	SpokenLanguage    string
	Channels          []string
	Soundfield        string
	ContainerFormat   string
	ChannelAssignment string
}

func (t *AudioTrack) Kind() TrackKind       { return KindAudio }
func (t *AudioTrack) Summary() TrackSummary { return t.TrackSummary }

// SubtitleTrack describes a SubtitlesSequence virtual track.
type SubtitleTrack struct {
	TrackSummary

	SampleRate       *big.Rat
	SubtitleLanguage string
	ContainerFormat  string
}

func (t *SubtitleTrack) Kind() TrackKind       { return KindSubtitle }
func (t *SubtitleTrack) Summary() TrackSummary { return t.TrackSummary }

func newImageTrack(descriptor *xmltree.Element, summary TrackSummary, logger *slog.Logger) *ImageTrack {
	return &ImageTrack{
		TrackSummary:           summary,
		SampleRate:             descriptorRational(descriptor, "SampleRate", logger),
		StoredWidth:            descriptorInt(descriptor, "StoredWidth", logger),
		StoredHeight:           descriptorInt(descriptor, "StoredHeight", logger),
		PictureCompression:     descriptorText(descriptor, nsRegElements, "PictureCompression"),
		ContainerFormat:        descriptorText(descriptor, nsRegElements, "ContainerFormat"),
		TransferCharacteristic: descriptorText(descriptor, nsRegElements, "TransferCharacteristic"),
		CodingEquations:        descriptorText(descriptor, nsRegElements, "CodingEquations"),
		ColorPrimaries:         descriptorText(descriptor, nsRegElements, "ColorPrimaries"),
	}
}

func newAudioTrack(descriptor *xmltree.Element, summary TrackSummary, logger *slog.Logger) *AudioTrack {
	track := &AudioTrack{
		TrackSummary:      summary,
		SampleRate:        descriptorRational(descriptor, "SampleRate", logger),
		SpokenLanguage:    descriptorText(descriptor, nsRegElements, "RFC5646SpokenLanguage"),
		ContainerFormat:   descriptorText(descriptor, nsRegElements, "ContainerFormat"),
		ChannelAssignment: descriptorText(descriptor, nsRegElements, "ChannelAssignment"),
	}

	tagSymbol := name(nsRegElements, "MCATagSymbol")
	for _, sub := range descriptor.FindAll(name(nsRegGroups, "AudioChannelLabelSubDescriptor")) {
		if symbol, ok := sub.FindText(tagSymbol); ok {
			track.Channels = append(track.Channels, symbol)
		}
	}
	if soundfield := descriptor.Find(name(nsRegGroups, "SoundfieldGroupLabelSubDescriptor")); soundfield != nil {
		if symbol, ok := soundfield.FindText(tagSymbol); ok {
			track.Soundfield = symbol
		}
	}

	return track
}

func newSubtitleTrack(descriptor *xmltree.Element, summary TrackSummary, logger *slog.Logger) *SubtitleTrack {
	return &SubtitleTrack{
		TrackSummary:     summary,
		SampleRate:       descriptorRational(descriptor, "SampleRate", logger),
		SubtitleLanguage: descriptorText(descriptor, nsRegTypes, "RFC5646LanguageTagList"),
		ContainerFormat:  descriptorText(descriptor, nsRegElements, "ContainerFormat"),
	}
}

func buildTrack(kind TrackKind, descriptor *xmltree.Element, summary TrackSummary, logger *slog.Logger) VirtualTrack {
	switch kind {
	case KindImage:
		return newImageTrack(descriptor, summary, logger)
	case KindAudio:
		return newAudioTrack(descriptor, summary, logger)
	case KindSubtitle:
		return newSubtitleTrack(descriptor, summary, logger)
	default:
		return nil
	}
}

// descriptorText returns the first matching descendant's text, or "" when
// the field is absent. Absence of optional metadata is not an error.
func descriptorText(descriptor *xmltree.Element, space, local string) string {
	text, _ := descriptor.FindText(name(space, local))
	return text
}

func descriptorRational(descriptor *xmltree.Element, local string, logger *slog.Logger) *big.Rat {
	text, ok := descriptor.FindText(name(nsRegElements, local))
	if !ok {
		return nil
	}
	value, err := rational.Parse(text)
	if err != nil {
		logger.Warn("descriptor field is not a valid rational",
			logging.Args(logging.String("field", local), logging.Error(err))...)
		return nil
	}
	return value
}

func descriptorInt(descriptor *xmltree.Element, local string, logger *slog.Logger) int {
	text, ok := descriptor.FindText(name(nsRegElements, local))
	if !ok {
		return 0
	}
	value, err := strconv.Atoi(text)
	if err != nil {
		logger.Warn("descriptor field is not a valid integer",
			logging.Args(logging.String("field", local), logging.Error(err))...)
		return 0
	}
	return value
}
