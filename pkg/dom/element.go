package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Element is a handle to one element node. Two handles are equal under
// [Element.Is] when they refer to the same node.
type Element struct {
	n   *html.Node
	doc *Document
}

// Document returns the document that owns e.
func (e *Element) Document() *Document { return e.doc }

// Tag returns the lower-case element name, such as "text" or "tspan".
func (e *Element) Tag() string { return e.n.Data }

// ID returns the id attribute, or "".
func (e *Element) ID() string { return attr(e.n, "id") }

// Is reports whether e and other refer to the same node.
func (e *Element) Is(other *Element) bool {
	return other != nil && e.n == other.n
}

// Attr returns the value of the named attribute and whether it is set.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets the named attribute, replacing any existing value.
func (e *Element) SetAttr(name, value string) {
	for i, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			e.n.Attr[i].Val = value
			return
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr deletes the named attribute if present.
func (e *Element) RemoveAttr(name string) {
	attrs := e.n.Attr[:0]
	for _, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			continue
		}
		attrs = append(attrs, a)
	}
	e.n.Attr = attrs
}

// TextContent returns the concatenated text of e and its descendants.
func (e *Element) TextContent() string {
	var b strings.Builder
	walk(e.n, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		return true
	})
	return b.String()
}

// SetTextContent replaces all children of e with a single text node.
func (e *Element) SetTextContent(s string) {
	e.RemoveChildren()
	if s != "" {
		e.n.AppendChild(&html.Node{Type: html.TextNode, Data: s})
	}
}

// Parent returns the parent element, or nil at the top of the tree.
func (e *Element) Parent() *Element {
	p := e.n.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return e.doc.wrap(p)
}

// Closest returns e or its nearest ancestor with the given tag, or nil.
func (e *Element) Closest(tag string) *Element {
	for n := e.n; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && n.Data == tag {
			return e.doc.wrap(n)
		}
	}
	return nil
}

// Children returns the element children of e.
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.wrap(c))
		}
	}
	return out
}

// AppendElement creates a child element named tag at the end of e. The
// child inherits e's namespace, so a <tspan> created under an SVG <text>
// is an SVG element.
func (e *Element) AppendElement(tag string) *Element {
	n := &html.Node{
		Type:      html.ElementNode,
		Data:      tag,
		Namespace: e.n.Namespace,
	}
	e.n.AppendChild(n)
	return e.doc.wrap(n)
}

// Remove detaches e from its parent. It is a no-op for detached elements.
func (e *Element) Remove() {
	if e.n.Parent != nil {
		e.n.Parent.RemoveChild(e.n)
	}
}

// RemoveChildren detaches every child node of e.
func (e *Element) RemoveChildren() {
	for c := e.n.FirstChild; c != nil; c = e.n.FirstChild {
		e.n.RemoveChild(c)
	}
}

// FontSize returns the effective font size of e in pixels.
func (e *Element) FontSize() float64 {
	return fontSize(e.n)
}

// ComputedTextLength returns the rendered width of e's text in pixels at
// its effective font size.
func (e *Element) ComputedTextLength() float64 {
	return e.doc.measurer.Measure(e.TextContent(), e.FontSize())
}
