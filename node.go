package dom2rec

import (
	"strings"

	"golang.org/x/net/html"
)

// Node is the view of a parsed document node the normalizer works on.
// Any parser can be plugged in by satisfying it.
type Node interface {
	// NodeName follows the DOM convention: upper-case HTML element names,
	// "#text", "#comment" and so on for other node kinds.
	NodeName() string
	Attributes() []Attribute
	HasAttributes() bool
	Style() Style
	ChildNodes() []Node
}

// Style is the inline style declaration block of a node.
type Style interface {
	CSSText() string
	Len() int
	// Item returns the property name declared at position i.
	Item(i int) string
	PropertyValue(name string) string
}

// htmlNode adapts a golang.org/x/net/html node to Node.
type htmlNode struct {
	n     *html.Node
	style *InlineStyle
}

// FromHTML wraps n so it can be normalized.
func FromHTML(n *html.Node) Node {
	return &htmlNode{n: n}
}

func (h *htmlNode) NodeName() string {
	switch h.n.Type {
	case html.ElementNode:
		if h.n.Namespace == "" {
			return strings.ToUpper(h.n.Data)
		}
		// foreign content (svg, math) keeps its case
		return h.n.Data
	case html.TextNode:
		return "#text"
	case html.CommentNode:
		return "#comment"
	case html.DocumentNode:
		return "#document"
	case html.DoctypeNode:
		return h.n.Data
	case html.RawNode:
		return "#raw"
	default:
		return "#unknown"
	}
}

func (h *htmlNode) Attributes() []Attribute {
	if h.n.Type != html.ElementNode {
		return nil
	}
	attrs := make([]Attribute, 0, len(h.n.Attr))
	for _, a := range h.n.Attr {
		name := a.Key
		if a.Namespace != "" {
			name = a.Namespace + ":" + a.Key
		}
		attrs = append(attrs, Attribute{Name: name, Value: a.Val})
	}
	return attrs
}

func (h *htmlNode) HasAttributes() bool {
	return h.n.Type == html.ElementNode && len(h.n.Attr) > 0
}

func (h *htmlNode) Style() Style {
	if h.style == nil {
		h.style = ParseInlineStyle(h.styleAttr())
	}
	return h.style
}

func (h *htmlNode) styleAttr() string {
	if h.n.Type != html.ElementNode {
		return ""
	}
	for _, a := range h.n.Attr {
		if a.Namespace == "" && a.Key == "style" {
			return a.Val
		}
	}
	return ""
}

func (h *htmlNode) ChildNodes() []Node {
	var children []Node
	for c := h.n.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, FromHTML(c))
	}
	return children
}
