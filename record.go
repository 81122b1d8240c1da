package dom2rec

// Attribute is a single name/value pair taken from a node.
type Attribute struct {
	Name  string `toml:"name"`
	Value string `toml:"value"`
}

// PropertyValue is one declaration of an inline style.
type PropertyValue struct {
	Property string `toml:"property"`
	Value    string `toml:"value"`
}

// Record is the normalized form of one node.
type Record struct {
	Tag      string          `toml:"tag"`      // always a member of the vocabulary
	Attrs    []Attribute     `toml:"attrs"`    // source order, never contains style
	Style    []PropertyValue `toml:"style"`    // declaration order
	Children []Record        `toml:"children"` // document order
}

// Attr returns the value of the named attribute.
func (r Record) Attr(name string) (string, bool) {
	for _, a := range r.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// IsLeaf reports whether the record has no children.
func (r Record) IsLeaf() bool {
	return len(r.Children) == 0
}
