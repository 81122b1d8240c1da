package dom2rec

import (
	"io"
	"strings"
)

// Stringify renders r in record notation. level is the nesting depth of r;
// the root is rendered at level 0.
func Stringify(r Record, level int) string {
	var b strings.Builder
	writeRecord(&b, r, level)
	return b.String()
}

// WriteRecord renders r to w.
func WriteRecord(w io.Writer, r Record, level int) error {
	_, err := io.WriteString(w, Stringify(r, level))
	return err
}

func indent(level int) string {
	return strings.Repeat(" ", level*2)
}

func writeRecord(b *strings.Builder, r Record, level int) {
	b.WriteString("[#")
	b.WriteString(r.Tag)
	writeAttrs(b, r)

	if r.IsLeaf() {
		b.WriteString("]")
		return
	}

	b.WriteString(" children:\n")
	childIndent := indent(level + 1)
	for i, child := range r.Children {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(childIndent)
		writeRecord(b, child, level+1)
	}
	b.WriteString("\n")
	b.WriteString(indent(level))
	b.WriteString("]")
}

// writeAttrs writes the attribute and style segment. Attributes with an
// empty value are skipped; values are written verbatim.
func writeAttrs(b *strings.Builder, r Record) {
	for _, a := range r.Attrs {
		if a.Value == "" {
			continue
		}
		b.WriteString(" ")
		b.WriteString(a.Name)
		b.WriteString(`: "`)
		b.WriteString(a.Value)
		b.WriteString(`"`)
	}

	if len(r.Style) == 0 {
		return
	}
	b.WriteString(" style: [")
	for i, p := range r.Style {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Property)
		b.WriteString(`: "`)
		b.WriteString(p.Value)
		b.WriteString(`"`)
	}
	b.WriteString("]")
}
