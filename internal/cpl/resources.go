package cpl

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"strconv"

	"cplinfo/internal/rational"
	"cplinfo/internal/xmltree"
)

// resourceTotals is the aggregated view of one track's resource list.
// Count is the raw list length; resources whose computed duration is zero
// are counted here but excluded from Duration and Fingerprint.
type resourceTotals struct {
	Fingerprint string
	Duration    *big.Rat
	Count       int
}

// aggregateResources folds an ordered resource list into a total playable
// duration and a SHA-1 content fingerprint. The digest covers, per
// contributing resource in document order, the canonical strings of entry
// point, duration, repeat count, and track file id; equivalent rational
// spellings therefore hash identically, and reordering resources changes the
// digest. A resource missing both SourceDuration and IntrinsicDuration is a
// fatal extraction error.
func aggregateResources(resources []*xmltree.Element, ns string, defaultEditRate *big.Rat) (resourceTotals, error) {
	digest := sha1.New()
	total := new(big.Rat)

	for i, resource := range resources {
		editRate := defaultEditRate
		if text, ok := resource.FindText(name(ns, "EditRate")); ok {
			parsed, err := rational.Parse(text)
			if err != nil {
				return resourceTotals{}, fmt.Errorf("resource %d: edit rate: %w", i, err)
			}
			editRate = parsed
		}
		if editRate == nil || editRate.Sign() <= 0 {
			return resourceTotals{}, fmt.Errorf("resource %d: edit rate must be positive", i)
		}

		entryFrames, err := resourceFrames(resource, ns, "EntryPoint", 0)
		if err != nil {
			return resourceTotals{}, fmt.Errorf("resource %d: %w", i, err)
		}
		entryPoint := new(big.Rat).Mul(editRate, big.NewRat(entryFrames, 1))

		durationFrames, err := resourceDurationFrames(resource, ns)
		if err != nil {
			return resourceTotals{}, fmt.Errorf("resource %d: %w", i, err)
		}
		if durationFrames < 0 {
			return resourceTotals{}, fmt.Errorf("resource %d: negative duration %d frames", i, durationFrames)
		}
		duration := new(big.Rat).Quo(big.NewRat(durationFrames, 1), editRate)

		// Zero-length resources contribute nothing to duration or
		// fingerprint but still count toward the raw resource total.
		if duration.Sign() == 0 {
			continue
		}
		total.Add(total, duration)

		repeatCount := int64(1)
		if text, ok := resource.FindText(name(ns, "RepeatCount")); ok {
			repeatCount, err = strconv.ParseInt(text, 10, 64)
			if err != nil {
				return resourceTotals{}, fmt.Errorf("resource %d: repeat count: %w", i, err)
			}
		}

		trackFileID, _ := resource.FindText(name(ns, "TrackFileId"))

		io.WriteString(digest, rational.Canonical(entryPoint))
		io.WriteString(digest, rational.Canonical(duration))
		io.WriteString(digest, strconv.FormatInt(repeatCount, 10))
		io.WriteString(digest, trackFileID)
	}

	return resourceTotals{
		Fingerprint: hex.EncodeToString(digest.Sum(nil)),
		Duration:    total,
		Count:       len(resources),
	}, nil
}

func resourceFrames(resource *xmltree.Element, ns, local string, fallback int64) (int64, error) {
	text, ok := resource.FindText(name(ns, local))
	if !ok || text == "" {
		return fallback, nil
	}
	frames, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", local, err)
	}
	return frames, nil
}

// resourceDurationFrames prefers SourceDuration and falls back to
// IntrinsicDuration; a resource carrying neither cannot be timed.
func resourceDurationFrames(resource *xmltree.Element, ns string) (int64, error) {
	if text, ok := resource.FindText(name(ns, "SourceDuration")); ok && text != "" {
		frames, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("SourceDuration: %w", err)
		}
		return frames, nil
	}
	if text, ok := resource.FindText(name(ns, "IntrinsicDuration")); ok && text != "" {
		frames, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("IntrinsicDuration: %w", err)
		}
		return frames, nil
	}
	return 0, fmt.Errorf("resource has neither SourceDuration nor IntrinsicDuration")
}
