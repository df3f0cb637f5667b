package xmltree

import (
	"strings"
	"testing"
)

const sampleDoc = `<?xml version="1.0" encoding="UTF-8"?>
<root xmlns="urn:example:main" xmlns:x="urn:example:other">
  <title>Hello</title>
  <empty></empty>
  <group>
    <x:item>first</x:item>
    <x:item>second</x:item>
  </group>
  <x:item>third</x:item>
</root>`

func parseSample(t *testing.T) *Element {
	t.Helper()
	root, err := Parse(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return root
}

func TestParseResolvesNamespaces(t *testing.T) {
	root := parseSample(t)

	want := Name{Space: "urn:example:main", Local: "root"}
	if root.Name != want {
		t.Errorf("root name: got %v, want %v", root.Name, want)
	}
}

func TestSplitQName(t *testing.T) {
	tests := []struct {
		qname string
		space string
		local string
	}{
		{"{urn:example:main}root", "urn:example:main", "root"},
		{"bare", "", "bare"},
		{"{}empty", "", "empty"},
	}
	for _, tc := range tests {
		space, local := SplitQName(tc.qname)
		if space != tc.space || local != tc.local {
			t.Errorf("SplitQName(%q): got (%q, %q), want (%q, %q)", tc.qname, space, local, tc.space, tc.local)
		}
	}
}

func TestChildText(t *testing.T) {
	root := parseSample(t)

	text, ok := root.ChildText(Name{Space: "urn:example:main", Local: "title"})
	if !ok || text != "Hello" {
		t.Errorf("ChildText(title): got (%q, %v), want (\"Hello\", true)", text, ok)
	}

	text, ok = root.ChildText(Name{Space: "urn:example:main", Local: "empty"})
	if !ok || text != "" {
		t.Errorf("ChildText(empty): got (%q, %v), want (\"\", true)", text, ok)
	}

	if _, ok := root.ChildText(Name{Space: "urn:example:main", Local: "missing"}); ok {
		t.Error("ChildText(missing): expected ok=false")
	}
}

func TestFindReturnsFirstInDocumentOrder(t *testing.T) {
	root := parseSample(t)

	item := root.Find(Name{Space: "urn:example:other", Local: "item"})
	if item == nil {
		t.Fatal("Find(item) returned nil")
	}
	if item.Text() != "first" {
		t.Errorf("Find(item) text: got %q, want \"first\"", item.Text())
	}
}

func TestFindAllDocumentOrder(t *testing.T) {
	root := parseSample(t)

	items := root.FindAll(Name{Space: "urn:example:other", Local: "item"})
	if len(items) != 3 {
		t.Fatalf("FindAll(item): got %d elements, want 3", len(items))
	}
	wantOrder := []string{"first", "second", "third"}
	for i, item := range items {
		if item.Text() != wantOrder[i] {
			t.Errorf("FindAll(item)[%d]: got %q, want %q", i, item.Text(), wantOrder[i])
		}
	}
}

func TestPath(t *testing.T) {
	root := parseSample(t)

	group := root.Path(Name{Space: "urn:example:main", Local: "group"})
	if group == nil {
		t.Fatal("Path(group) returned nil")
	}

	missing := root.Path(
		Name{Space: "urn:example:main", Local: "group"},
		Name{Space: "urn:example:main", Local: "nope"},
	)
	if missing != nil {
		t.Error("Path with missing step should return nil")
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	if _, err := Parse(strings.NewReader("<a><b></a>")); err == nil {
		t.Error("expected error for mismatched tags")
	}
	if _, err := Parse(strings.NewReader("")); err == nil {
		t.Error("expected error for empty input")
	}
}
