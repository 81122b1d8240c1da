package dom2rec

import (
	"log/slog"
	"strings"
)

// Normalizer converts parsed nodes into Records.
type Normalizer struct {
	vocab  *Vocabulary
	logger *slog.Logger
}

// NewNormalizer creates a normalizer. A nil vocabulary selects the built-in
// tables and a nil logger the default slog logger.
func NewNormalizer(vocab *Vocabulary, logger *slog.Logger) *Normalizer {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{
		vocab:  vocab,
		logger: logger,
	}
}

// Normalize builds the record tree rooted at n. Unsupported tags are
// replaced and reported with one warning each.
func (nz *Normalizer) Normalize(n Node) Record {
	tag := nz.tag(n.NodeName())
	attrs := nz.attrs(n)
	style := nz.style(n.Style())

	children := make([]Record, 0)
	for _, child := range n.ChildNodes() {
		children = append(children, nz.Normalize(child))
	}

	return Record{
		Tag:      tag,
		Attrs:    attrs,
		Style:    style,
		Children: children,
	}
}

func (nz *Normalizer) tag(nodeName string) string {
	tag := strings.ToLower(nodeName)
	replacement, substituted := nz.vocab.Classify(tag)
	if substituted {
		nz.logger.Warn("unsupported tag substituted", "tag", tag, "replacement", replacement)
	}
	return replacement
}

func (nz *Normalizer) attrs(n Node) []Attribute {
	attrs := make([]Attribute, 0)
	if !n.HasAttributes() {
		return attrs
	}
	for _, a := range n.Attributes() {
		if a.Name == "style" {
			continue
		}
		attrs = append(attrs, a)
	}
	return attrs
}

// style copies the declarations in order. A style whose text is empty yields
// no declarations even if it reports some.
func (nz *Normalizer) style(s Style) []PropertyValue {
	props := make([]PropertyValue, 0)
	if s == nil || s.CSSText() == "" {
		return props
	}
	for i := 0; i < s.Len(); i++ {
		name := s.Item(i)
		props = append(props, PropertyValue{
			Property: name,
			Value:    s.PropertyValue(name),
		})
	}
	return props
}
