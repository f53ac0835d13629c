package feed

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// Attr is a single XML attribute.
type Attr struct {
	Name  string
	Value string
}

// Node is one element of the parsed feed tree. The tree is read-only after
// parsing; extractors navigate it through the accessors below, which make
// absence and multiplicity explicit instead of failing.
type Node struct {
	// Name is the element's local name.
	Name string
	// Attrs holds the element's attributes in document order.
	Attrs []Attr
	// Children holds the element's child elements in document order.
	Children []*Node

	text strings.Builder
}

// Attr returns the value of the named attribute. The second result reports
// whether the attribute is present.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrValue returns the named attribute's value, or the empty string when it
// is absent.
func (n *Node) AttrValue(name string) string {
	v, _ := n.Attr(name)
	return v
}

// Child returns the first child element with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns all child elements with the given name, in document
// order. A missing name yields an empty slice, never an error.
func (n *Node) ChildrenNamed(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// ChildText returns the trimmed text of the first child element with the
// given name, or the empty string when the child is absent.
func (n *Node) ChildText(name string) string {
	if c := n.Child(name); c != nil {
		return c.Text()
	}
	return ""
}

// Text returns the element's own character data, whitespace-trimmed. Text of
// nested elements is not included.
func (n *Node) Text() string {
	return strings.TrimSpace(n.text.String())
}

// Parse reads an XML document into a Node tree and returns its root element.
//
// The decoder is deliberately lenient: unknown entities pass through,
// DOCTYPE declarations are skipped, and non-UTF-8 charsets (vendor exports
// are commonly windows-1251) are transcoded. External DTDs and external
// entities are never fetched or expanded, so a feed that declares a DOCTYPE
// pointing at a well-known DTD parses as if the reference resolved to an
// empty document.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false
	dec.Entity = xml.HTMLEntity
	dec.CharsetReader = charset.NewReaderLabel

	var root *Node
	var stack []*Node
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Name: t.Name.Local}
			for _, a := range t.Attr {
				n.Attrs = append(n.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, &ParseError{Err: errors.New("multiple root elements")}
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		default:
			// Directives (DOCTYPE), processing instructions and comments
			// carry no catalog data.
		}
	}

	if root == nil {
		return nil, &ParseError{Err: errors.New("document has no root element")}
	}
	if len(stack) != 0 {
		return nil, &ParseError{Err: errors.New("unexpected end of document")}
	}
	return root, nil
}

// NormalizeRoot strips an optional wrapping container: when the root has
// exactly one child element and that child is itself a container of further
// elements, the child becomes the effective root. Extraction is then uniform
// whether or not the export wraps its payload.
func NormalizeRoot(root *Node) *Node {
	if root == nil {
		return nil
	}
	if len(root.Children) == 1 && len(root.Children[0].Children) > 0 {
		return root.Children[0]
	}
	return root
}
