package cpl

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	"cplinfo/internal/logging"
)

const fixtureCPL = `<?xml version="1.0" encoding="UTF-8"?>
<CompositionPlaylist xmlns="http://www.smpte-ra.org/schemas/2067-3/2016"
    xmlns:cc="http://www.smpte-ra.org/schemas/2067-2/2016"
    xmlns:r0="http://www.smpte-ra.org/reg/395/2014/13/1/aaf"
    xmlns:r1="http://www.smpte-ra.org/reg/335/2012"
    xmlns:r2="http://www.smpte-ra.org/reg/2003/2012">
  <Id>urn:uuid:9e1a2b3c-4d5e-4f60-8172-839405a6b7c8</Id>
  <ContentTitle>Example Feature</ContentTitle>
  <EditRate>24000 1001</EditRate>
  <EssenceDescriptorList>
    <EssenceDescriptor>
      <Id>urn:uuid:aaaaaaaa-1111-4111-8111-aaaaaaaaaaaa</Id>
      <r0:CDCIDescriptor>
        <r1:SampleRate>24000/1001</r1:SampleRate>
        <r1:StoredWidth>3840</r1:StoredWidth>
        <r1:StoredHeight>2160</r1:StoredHeight>
        <r1:PictureCompression>urn:smpte:ul:060e2b34.0401010d.04010202.03010105</r1:PictureCompression>
        <r1:ContainerFormat>urn:smpte:ul:060e2b34.04010107.0d010301.02040102</r1:ContainerFormat>
        <r1:TransferCharacteristic>urn:smpte:ul:060e2b34.04010101.04010101.01020000</r1:TransferCharacteristic>
        <r1:CodingEquations>urn:smpte:ul:060e2b34.04010101.04010201.01020000</r1:CodingEquations>
        <r1:ColorPrimaries>urn:smpte:ul:060e2b34.04010106.04010201.01030000</r1:ColorPrimaries>
      </r0:CDCIDescriptor>
    </EssenceDescriptor>
    <EssenceDescriptor>
      <Id>urn:uuid:bbbbbbbb-2222-4222-8222-bbbbbbbbbbbb</Id>
      <r0:WAVEPCMDescriptor>
        <r1:SampleRate>48000/1</r1:SampleRate>
        <r1:RFC5646SpokenLanguage>en-US</r1:RFC5646SpokenLanguage>
        <r1:ContainerFormat>urn:smpte:ul:060e2b34.04010101.0d010301.02060200</r1:ContainerFormat>
        <r1:ChannelAssignment>urn:smpte:ul:060e2b34.0401010d.04020210.04010000</r1:ChannelAssignment>
        <r0:AudioChannelLabelSubDescriptor>
          <r1:MCATagSymbol>chL</r1:MCATagSymbol>
        </r0:AudioChannelLabelSubDescriptor>
        <r0:AudioChannelLabelSubDescriptor>
          <r1:MCATagSymbol>chR</r1:MCATagSymbol>
        </r0:AudioChannelLabelSubDescriptor>
        <r0:SoundfieldGroupLabelSubDescriptor>
          <r1:MCATagSymbol>sg51</r1:MCATagSymbol>
        </r0:SoundfieldGroupLabelSubDescriptor>
      </r0:WAVEPCMDescriptor>
    </EssenceDescriptor>
    <EssenceDescriptor>
      <Id>urn:uuid:cccccccc-3333-4333-8333-cccccccccccc</Id>
      <r0:TimedTextDescriptor>
        <r1:SampleRate>24000/1001</r1:SampleRate>
        <r2:RFC5646LanguageTagList>de-DE</r2:RFC5646LanguageTagList>
        <r1:ContainerFormat>urn:smpte:ul:060e2b34.04010107.0d010301.02040102</r1:ContainerFormat>
      </r0:TimedTextDescriptor>
    </EssenceDescriptor>
  </EssenceDescriptorList>
  <SegmentList>
    <Segment>
      <Id>urn:uuid:1c2d3e4f-5a6b-4c7d-8e9f-0a1b2c3d4e5f</Id>
      <SequenceList>
        <cc:MainImageSequence>
          <Id>urn:uuid:0112fd31-2b62-4e8d-a612-2ff4c6e3a4b5</Id>
          <TrackId>urn:uuid:11111111-aaaa-4aaa-8aaa-111111111111</TrackId>
          <ResourceList>
            <Resource>
              <Id>urn:uuid:6a1d2d35-6a88-42d4-9a46-a41f4e7f2d3c</Id>
              <EditRate>24 1</EditRate>
              <IntrinsicDuration>120</IntrinsicDuration>
              <SourceEncoding>urn:uuid:aaaaaaaa-1111-4111-8111-aaaaaaaaaaaa</SourceEncoding>
              <TrackFileId>urn:uuid:dddddddd-4444-4444-8444-dddddddddddd</TrackFileId>
            </Resource>
            <Resource>
              <Id>urn:uuid:7b2e3f46-7b99-43e5-8b57-b52f5f803e4d</Id>
              <EditRate>24 1</EditRate>
              <SourceDuration>84</SourceDuration>
              <IntrinsicDuration>120</IntrinsicDuration>
              <SourceEncoding>urn:uuid:aaaaaaaa-1111-4111-8111-aaaaaaaaaaaa</SourceEncoding>
              <TrackFileId>urn:uuid:eeeeeeee-5555-4555-8555-eeeeeeeeeeee</TrackFileId>
            </Resource>
          </ResourceList>
        </cc:MainImageSequence>
        <cc:MainAudioSequence>
          <Id>urn:uuid:0223fe42-3c73-4f9e-b723-3ff5d7f4b5c6</Id>
          <TrackId>urn:uuid:22222222-bbbb-4bbb-8bbb-222222222222</TrackId>
          <ResourceList>
            <Resource>
              <Id>urn:uuid:8c3f4057-8caa-44f6-9c68-c63f60914f5e</Id>
              <EditRate>48000 1</EditRate>
              <IntrinsicDuration>408000</IntrinsicDuration>
              <SourceEncoding>urn:uuid:bbbbbbbb-2222-4222-8222-bbbbbbbbbbbb</SourceEncoding>
              <TrackFileId>urn:uuid:ffffffff-6666-4666-8666-ffffffffffff</TrackFileId>
            </Resource>
          </ResourceList>
        </cc:MainAudioSequence>
        <cc:SubtitlesSequence>
          <Id>urn:uuid:0334ff53-4d84-409f-a834-400608a5c6d7</Id>
          <TrackId>urn:uuid:33333333-cccc-4ccc-8ccc-333333333333</TrackId>
          <ResourceList>
            <Resource>
              <Id>urn:uuid:9d405168-9dbb-4507-8d79-d7407192506f</Id>
              <EditRate>24 1</EditRate>
              <IntrinsicDuration>204</IntrinsicDuration>
              <SourceEncoding>urn:uuid:cccccccc-3333-4333-8333-cccccccccccc</SourceEncoding>
              <TrackFileId>urn:uuid:abababab-7777-4777-8777-abababababab</TrackFileId>
            </Resource>
          </ResourceList>
        </cc:SubtitlesSequence>
      </SequenceList>
    </Segment>
  </SegmentList>
</CompositionPlaylist>`

func buildFixture(t *testing.T, doc string) (*Composition, string) {
	t.Helper()
	var logBuf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "console", Writer: &logBuf})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	comp, err := Parse(strings.NewReader(doc), logger)
	if err != nil {
		t.Fatalf("Parse failed: %v\nlog:\n%s", err, logBuf.String())
	}
	return comp, logBuf.String()
}

func TestBuildComposition(t *testing.T) {
	comp, logOutput := buildFixture(t, fixtureCPL)

	if comp.Namespace != "http://www.smpte-ra.org/schemas/2067-3/2016" {
		t.Errorf("namespace: got %q", comp.Namespace)
	}
	if comp.ContentTitle != "Example Feature" {
		t.Errorf("content title: got %q", comp.ContentTitle)
	}
	if want := big.NewRat(24000, 1001); comp.EditRate.Cmp(want) != 0 {
		t.Errorf("edit rate: got %s, want 24000/1001", comp.EditRate.RatString())
	}
	if len(comp.VirtualTracks) != 3 {
		t.Fatalf("virtual tracks: got %d, want 3\nlog:\n%s", len(comp.VirtualTracks), logOutput)
	}

	image, ok := comp.VirtualTracks[0].(*ImageTrack)
	if !ok {
		t.Fatalf("track 0: got %T, want *ImageTrack", comp.VirtualTracks[0])
	}
	if image.StoredWidth != 3840 || image.StoredHeight != 2160 {
		t.Errorf("stored size: got %dx%d, want 3840x2160", image.StoredWidth, image.StoredHeight)
	}
	if want := big.NewRat(24000, 1001); image.SampleRate.Cmp(want) != 0 {
		t.Errorf("image sample rate: got %s", image.SampleRate.RatString())
	}
	// 120 frames at 24fps plus 84 frames (SourceDuration wins) at 24fps.
	if want := big.NewRat(17, 2); image.Duration.Cmp(want) != 0 {
		t.Errorf("image duration: got %s, want 17/2", image.Duration.RatString())
	}
	if image.ResourceCount != 2 {
		t.Errorf("image resource count: got %d, want 2", image.ResourceCount)
	}
	if len(image.Fingerprint) != 40 {
		t.Errorf("image fingerprint length: got %d, want 40 hex chars", len(image.Fingerprint))
	}

	audio, ok := comp.VirtualTracks[1].(*AudioTrack)
	if !ok {
		t.Fatalf("track 1: got %T, want *AudioTrack", comp.VirtualTracks[1])
	}
	if audio.SpokenLanguage != "en-US" {
		t.Errorf("spoken language: got %q", audio.SpokenLanguage)
	}
	if len(audio.Channels) != 2 || audio.Channels[0] != "chL" || audio.Channels[1] != "chR" {
		t.Errorf("channels: got %v, want [chL chR]", audio.Channels)
	}
	if audio.Soundfield != "sg51" {
		t.Errorf("soundfield: got %q", audio.Soundfield)
	}
	if want := big.NewRat(17, 2); audio.Duration.Cmp(want) != 0 {
		t.Errorf("audio duration: got %s, want 17/2", audio.Duration.RatString())
	}

	subtitle, ok := comp.VirtualTracks[2].(*SubtitleTrack)
	if !ok {
		t.Fatalf("track 2: got %T, want *SubtitleTrack", comp.VirtualTracks[2])
	}
	if subtitle.SubtitleLanguage != "de-DE" {
		t.Errorf("subtitle language: got %q", subtitle.SubtitleLanguage)
	}
	if subtitle.Kind().String() != "main_subtitle" {
		t.Errorf("kind tag: got %q", subtitle.Kind().String())
	}
}

func TestBuildSkipsSequenceWithoutDescriptor(t *testing.T) {
	doc := strings.Replace(fixtureCPL,
		"urn:uuid:bbbbbbbb-2222-4222-8222-bbbbbbbbbbbb</Id>",
		"urn:uuid:bbbbbbbb-9999-4999-8999-bbbbbbbbbbbb</Id>", 1)

	comp, logOutput := buildFixture(t, doc)

	// Audio sequence drops, image and subtitle still extract.
	if len(comp.VirtualTracks) != 2 {
		t.Fatalf("virtual tracks: got %d, want 2", len(comp.VirtualTracks))
	}
	if _, ok := comp.VirtualTracks[0].(*ImageTrack); !ok {
		t.Errorf("track 0: got %T, want *ImageTrack", comp.VirtualTracks[0])
	}
	if _, ok := comp.VirtualTracks[1].(*SubtitleTrack); !ok {
		t.Errorf("track 1: got %T, want *SubtitleTrack", comp.VirtualTracks[1])
	}
	if !strings.Contains(logOutput, "no essence descriptor matches SourceEncoding") {
		t.Errorf("expected descriptor diagnostic, log:\n%s", logOutput)
	}
}

func TestBuildSkipsUnknownSequenceKind(t *testing.T) {
	doc := strings.Replace(fixtureCPL, "cc:SubtitlesSequence", "cc:MarkerSequence", 2)

	comp, logOutput := buildFixture(t, doc)

	if len(comp.VirtualTracks) != 2 {
		t.Fatalf("virtual tracks: got %d, want 2", len(comp.VirtualTracks))
	}
	if !strings.Contains(logOutput, "unknown sequence kind") {
		t.Errorf("expected unknown-kind warning, log:\n%s", logOutput)
	}
}

func TestBuildSkipsUnknownCoreNamespace(t *testing.T) {
	doc := strings.Replace(fixtureCPL,
		`xmlns:cc="http://www.smpte-ra.org/schemas/2067-2/2016"`,
		`xmlns:cc="http://example.com/not-a-core-namespace"`, 1)

	comp, logOutput := buildFixture(t, doc)

	if len(comp.VirtualTracks) != 0 {
		t.Fatalf("virtual tracks: got %d, want 0", len(comp.VirtualTracks))
	}
	if !strings.Contains(logOutput, "unknown virtual track namespace") {
		t.Errorf("expected namespace warning, log:\n%s", logOutput)
	}
}

func TestBuildWarnsOnUnknownRootNamespace(t *testing.T) {
	doc := strings.Replace(fixtureCPL,
		`xmlns="http://www.smpte-ra.org/schemas/2067-3/2016"`,
		`xmlns="http://example.com/unknown-cpl"`, 1)
	// The working namespace changes with the root, so relative lookups
	// must be rewritten too for the document to stay coherent.
	doc = strings.ReplaceAll(doc, "http://www.smpte-ra.org/schemas/2067-3/2016", "http://example.com/unknown-cpl")

	comp, logOutput := buildFixture(t, doc)

	if comp.Namespace != "http://example.com/unknown-cpl" {
		t.Errorf("namespace: got %q", comp.Namespace)
	}
	if len(comp.VirtualTracks) != 3 {
		t.Errorf("extraction should proceed despite unknown root namespace, got %d tracks", len(comp.VirtualTracks))
	}
	if !strings.Contains(logOutput, "unknown CompositionPlaylist namespace") {
		t.Errorf("expected root namespace diagnostic, log:\n%s", logOutput)
	}
}

func TestBuildFailsWithoutEditRate(t *testing.T) {
	doc := strings.Replace(fixtureCPL, "<EditRate>24000 1001</EditRate>", "", 1)

	var logBuf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "console", Writer: &logBuf})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	if _, err := Parse(strings.NewReader(doc), logger); err == nil {
		t.Error("expected fatal error for missing EditRate")
	}
}

func TestBuildFailsWhenResourceCannotBeTimed(t *testing.T) {
	doc := strings.Replace(fixtureCPL,
		"<IntrinsicDuration>408000</IntrinsicDuration>", "", 1)

	var logBuf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "console", Writer: &logBuf})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	_, err = Parse(strings.NewReader(doc), logger)
	if err == nil {
		t.Fatal("expected fatal error for a resource with no duration fields")
	}
	if !strings.Contains(err.Error(), "SourceDuration") {
		t.Errorf("error should name the missing duration fields, got %v", err)
	}
}

func TestBuildSkipsSequenceMissingTrackId(t *testing.T) {
	doc := strings.Replace(fixtureCPL,
		"<TrackId>urn:uuid:33333333-cccc-4ccc-8ccc-333333333333</TrackId>", "", 1)

	comp, logOutput := buildFixture(t, doc)

	if len(comp.VirtualTracks) != 2 {
		t.Fatalf("virtual tracks: got %d, want 2", len(comp.VirtualTracks))
	}
	if !strings.Contains(logOutput, "sequence is missing TrackId") {
		t.Errorf("expected TrackId diagnostic, log:\n%s", logOutput)
	}
}
