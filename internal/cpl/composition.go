package cpl

import (
	"fmt"
	"io"
	"log/slog"
	"math/big"

	"github.com/google/uuid"

	"cplinfo/internal/logging"
	"cplinfo/internal/rational"
	"cplinfo/internal/xmltree"
)

// Composition is the extracted model of one CPL document. EditRate is
// strictly positive; VirtualTracks preserves the document order of the
// sequences they were built from. The model is never mutated after Build
// returns.
type Composition struct {
	Namespace     string
	ContentTitle  string
	EditRate      *big.Rat
	VirtualTracks []VirtualTrack
}

// Parse reads a CPL document and builds its composition model.
func Parse(r io.Reader, logger *slog.Logger) (*Composition, error) {
	root, err := xmltree.Parse(r)
	if err != nil {
		return nil, err
	}
	return Build(root, logger)
}

// Build extracts the composition model from a parsed document root.
//
// An unexpected root namespace or element name is diagnosed but extraction
// proceeds, using the root's namespace as the working namespace for every
// relative lookup. Malformed sequences are skipped individually; Build fails
// when the document carries no usable edit rate or sequence list, or when a
// resource cannot be timed.
func Build(root *xmltree.Element, logger *slog.Logger) (*Composition, error) {
	log := logging.NewComponentLogger(logger, "cpl")

	ns := root.Name.Space
	if !CompatibleCPLNamespace(ns) {
		log.Error("unknown CompositionPlaylist namespace",
			logging.Args(logging.String(logging.FieldNamespace, ns))...)
	}
	if root.Name.Local != rootLocalName {
		log.Error("unknown CompositionPlaylist element name",
			logging.Args(logging.String("element", root.Name.Local))...)
	}

	comp := &Composition{Namespace: ns}
	// Direct children only: resources reuse the EditRate local name deeper
	// in the tree and must never stand in for the composition value.
	comp.ContentTitle, _ = root.ChildText(name(ns, "ContentTitle"))

	editRateText, ok := root.ChildText(name(ns, "EditRate"))
	if !ok {
		return nil, fmt.Errorf("composition is missing EditRate")
	}
	editRate, err := rational.Parse(editRateText)
	if err != nil {
		return nil, fmt.Errorf("composition edit rate: %w", err)
	}
	if editRate.Sign() <= 0 {
		return nil, fmt.Errorf("composition edit rate %s is not positive", editRateText)
	}
	comp.EditRate = editRate

	sequenceList := root.Path(
		name(ns, "SegmentList"),
		name(ns, "Segment"),
		name(ns, "SequenceList"),
	)
	if sequenceList == nil {
		return nil, fmt.Errorf("composition has no SegmentList/Segment/SequenceList")
	}

	for _, sequence := range sequenceList.Children {
		track, err := buildSequence(root, sequence, ns, comp.EditRate, log)
		if err != nil {
			return nil, err
		}
		if track != nil {
			comp.VirtualTracks = append(comp.VirtualTracks, track)
		}
	}

	return comp, nil
}

// buildSequence turns one sequence element into a virtual track. A nil track
// with a nil error means the sequence was skipped after logging why; a
// non-nil error means the extraction as a whole must fail.
func buildSequence(root, sequence *xmltree.Element, ns string, editRate *big.Rat, log *slog.Logger) (VirtualTrack, error) {
	local := sequence.Name.Local

	trackID, ok := sequence.ChildText(name(ns, "TrackId"))
	if !ok || trackID == "" {
		log.Error("sequence is missing TrackId",
			logging.Args(logging.String(logging.FieldSequence, local))...)
		return nil, nil
	}
	warnIfNotUUID(log, trackID, "TrackId")

	if !CompatibleCoreNamespace(sequence.Name.Space) {
		log.Warn("unknown virtual track namespace",
			logging.Args(
				logging.String(logging.FieldNamespace, sequence.Name.Space),
				logging.String(logging.FieldTrackID, trackID))...)
		return nil, nil
	}

	kind, ok := sequenceKinds[local]
	if !ok {
		log.Warn("unknown sequence kind",
			logging.Args(
				logging.String(logging.FieldSequence, local),
				logging.String(logging.FieldTrackID, trackID))...)
		return nil, nil
	}

	sourceEncoding, ok := sequence.FindText(name(ns, "SourceEncoding"))
	if !ok || sourceEncoding == "" {
		log.Error("sequence is missing SourceEncoding",
			logging.Args(logging.String(logging.FieldTrackID, trackID))...)
		return nil, nil
	}
	warnIfNotUUID(log, sourceEncoding, "SourceEncoding")

	descriptor := findEssenceDescriptor(root, ns, sourceEncoding)
	if descriptor == nil {
		log.Error("no essence descriptor matches SourceEncoding",
			logging.Args(
				logging.String("source_encoding", sourceEncoding),
				logging.String(logging.FieldTrackID, trackID))...)
		return nil, nil
	}

	resources := collectResources(root, ns, trackID)
	totals, err := aggregateResources(resources, ns, editRate)
	if err != nil {
		return nil, fmt.Errorf("track %s: %w", trackID, err)
	}

	summary := TrackSummary{
		TrackID:       trackID,
		Fingerprint:   totals.Fingerprint,
		Duration:      totals.Duration,
		ResourceCount: totals.Count,
	}
	return buildTrack(kind, descriptor, summary, log), nil
}

// findEssenceDescriptor locates the descriptor whose Id child equals the
// given SourceEncoding value, searching the whole document.
func findEssenceDescriptor(root *xmltree.Element, ns, sourceEncoding string) *xmltree.Element {
	idName := name(ns, "Id")
	for _, descriptor := range root.FindAll(name(ns, "EssenceDescriptor")) {
		if id, ok := descriptor.ChildText(idName); ok && id == sourceEncoding {
			return descriptor
		}
	}
	return nil
}

// collectResources gathers every resource belonging to the track, matched by
// TrackId across all segments, preserving document order.
func collectResources(root *xmltree.Element, ns, trackID string) []*xmltree.Element {
	trackIDName := name(ns, "TrackId")
	resourceName := name(ns, "Resource")

	var resources []*xmltree.Element
	for _, segmentList := range root.FindAll(name(ns, "SegmentList")) {
		for _, segment := range segmentList.Children {
			if segment.Name != name(ns, "Segment") {
				continue
			}
			sequenceList := segment.Child(name(ns, "SequenceList"))
			if sequenceList == nil {
				continue
			}
			for _, sequence := range sequenceList.Children {
				if id, ok := sequence.ChildText(trackIDName); !ok || id != trackID {
					continue
				}
				resourceList := sequence.Child(name(ns, "ResourceList"))
				if resourceList == nil {
					continue
				}
				for _, resource := range resourceList.Children {
					if resource.Name == resourceName {
						resources = append(resources, resource)
					}
				}
			}
		}
	}
	return resources
}

// warnIfNotUUID flags identifier values that are not urn:uuid URNs. The raw
// value is still used verbatim for cross-referencing.
func warnIfNotUUID(log *slog.Logger, value, field string) {
	if _, err := uuid.Parse(value); err != nil {
		log.Warn("identifier is not a valid UUID urn",
			logging.Args(logging.String("field", field), logging.String("value", value))...)
	}
}
