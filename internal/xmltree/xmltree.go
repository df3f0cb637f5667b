package xmltree

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Name identifies an element by namespace URI and local name. Space is empty
// for elements without a namespace.
type Name struct {
	Space string
	Local string
}

// String renders the name in Clark notation ({namespace}local).
func (n Name) String() string {
	if n.Space == "" {
		return n.Local
	}
	return "{" + n.Space + "}" + n.Local
}

// Attr is a single attribute on an element.
type Attr struct {
	Name  Name
	Value string
}

// Element is one node of a parsed document.
type Element struct {
	Name     Name
	Attrs    []Attr
	Children []*Element

	text string
}

// SplitQName splits a Clark-notation qualified name ({namespace}local) into
// its namespace and local parts. A name without a namespace segment yields an
// empty namespace.
func SplitQName(qname string) (string, string) {
	if strings.HasPrefix(qname, "{") {
		if end := strings.Index(qname, "}"); end >= 0 {
			return qname[1:end], qname[end+1:]
		}
	}
	return "", qname
}

// Parse reads a well-formed XML document and returns its root element.
func Parse(r io.Reader) (*Element, error) {
	decoder := xml.NewDecoder(r)

	var root *Element
	var stack []*Element

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}

		switch tok := token.(type) {
		case xml.StartElement:
			elem := &Element{Name: Name{Space: tok.Name.Space, Local: tok.Name.Local}}
			if len(tok.Attr) > 0 {
				elem.Attrs = make([]Attr, 0, len(tok.Attr))
				for _, attr := range tok.Attr {
					if attr.Name.Space == "xmlns" || (attr.Name.Space == "" && attr.Name.Local == "xmlns") {
						continue
					}
					elem.Attrs = append(elem.Attrs, Attr{
						Name:  Name{Space: attr.Name.Space, Local: attr.Name.Local},
						Value: attr.Value,
					})
				}
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("parse xml: multiple root elements")
				}
				root = elem
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, elem)
			}
			stack = append(stack, elem)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				current := stack[len(stack)-1]
				current.text += string(tok)
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("parse xml: document has no root element")
	}
	return root, nil
}

// Text returns the element's character data with surrounding whitespace
// trimmed.
func (e *Element) Text() string {
	return strings.TrimSpace(e.text)
}

// Child returns the first direct child with the given name, or nil.
func (e *Element) Child(name Name) *Element {
	for _, child := range e.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// ChildText returns the text of the first direct child with the given name.
// The second return value reports whether the child exists.
func (e *Element) ChildText(name Name) (string, bool) {
	child := e.Child(name)
	if child == nil {
		return "", false
	}
	return child.Text(), true
}

// Find returns the first descendant with the given name in document order,
// or nil. The element itself is not considered.
func (e *Element) Find(name Name) *Element {
	for _, child := range e.Children {
		if child.Name == name {
			return child
		}
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// FindText returns the text of the first descendant with the given name. The
// second return value reports whether such a descendant exists.
func (e *Element) FindText(name Name) (string, bool) {
	found := e.Find(name)
	if found == nil {
		return "", false
	}
	return found.Text(), true
}

// FindAll returns every descendant with the given name in document order.
func (e *Element) FindAll(name Name) []*Element {
	var out []*Element
	e.appendAll(name, &out)
	return out
}

func (e *Element) appendAll(name Name, out *[]*Element) {
	for _, child := range e.Children {
		if child.Name == name {
			*out = append(*out, child)
		}
		child.appendAll(name, out)
	}
}

// Path descends through a chain of direct children, returning nil if any
// step is missing.
func (e *Element) Path(names ...Name) *Element {
	current := e
	for _, name := range names {
		current = current.Child(name)
		if current == nil {
			return nil
		}
	}
	return current
}
