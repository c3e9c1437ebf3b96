// Package ttml builds a small element tree out of a timed-text markup
// document and offers the lookups the lyrics parser needs: children by tag
// name in document order, leading text and attributes. Names are compared on
// their local part, so namespaced dialects (tt, ttm:agent, iTunesMetadata)
// resolve the same way as the bare reference shape.
package ttml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Node is a single element of the parsed tree.
type Node struct {
	Name     string
	Attrs    []xml.Attr
	children []*Node
	text     strings.Builder
	hasText  bool
}

// Parse reads one well-formed document from raw and returns its root element.
func Parse(raw string) (*Node, error) {
	return Decode(strings.NewReader(raw))
}

// Decode reads one well-formed document from r and returns its root element.
func Decode(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = true

	var (
		root  *Node
		stack []*Node
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := &Node{Name: t.Name.Local, Attrs: append([]xml.Attr(nil), t.Attr...)}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("second root element <%s> at offset %d", t.Name.Local, dec.InputOffset())
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, node)
			}
			stack = append(stack, node)

		case xml.EndElement:
			node := stack[len(stack)-1]
			node.hasText = strings.TrimSpace(node.text.String()) != ""
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 0 {
				if strings.TrimSpace(string(t)) != "" {
					return nil, fmt.Errorf("character data outside the root element at offset %d", dec.InputOffset())
				}
				continue
			}
			// Only text that precedes the first child element counts as the
			// element's own text.
			node := stack[len(stack)-1]
			if len(node.children) == 0 {
				node.text.Write(t)
			}
		}
	}

	if root == nil {
		return nil, errors.New("document has no root element")
	}
	return root, nil
}

// Child returns the first child element with the given local name.
func (n *Node) Child(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Children returns every child element with the given local name, in
// document order.
func (n *Node) Children(name string) []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// FirstChild returns the first child element, or nil when there is none.
func (n *Node) FirstChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// Elements returns all child elements in document order.
func (n *Node) Elements() []*Node {
	return n.children
}

// Text returns the character data that precedes the node's first child
// element. Whitespace-only content is reported as absent; anything else is
// returned verbatim.
func (n *Node) Text() (string, bool) {
	if !n.hasText {
		return "", false
	}
	return n.text.String(), true
}

// Attr looks up an attribute by local name.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}
