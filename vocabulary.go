package dom2rec

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/samber/lo"
)

// Replacement tags used for tags outside the vocabulary.
const (
	InlineFallback = "span"
	BlockFallback  = "div"
)

var defaultSupportedTags = strings.Fields(`
	html body div span p a i img br hr
	h1 h2 h3 h4 h5 h6 ul ol li
	table caption colgroup col thead tbody tfoot tr th td
	form input button select option optgroup textarea label fieldset legend
	iframe canvas video audio source
	svg g defs use symbol path rect circle ellipse line polyline polygon text tspan
	lineargradient radialgradient stop clippath mask pattern image
`)

// Elements that are inline-level in the HTML rendering model.
var defaultInlineElements = strings.Fields(`
	a abbr acronym audio b bdi bdo big br button canvas cite code data datalist
	del dfn em embed i iframe img input ins kbd label map mark meter noscript
	object output picture progress q ruby s samp script select slot small span
	strong sub sup svg template textarea time tt u var video wbr
`)

// Vocabulary is the closed set of tags emitted verbatim plus the inline
// classification used to pick a replacement for everything else.
// A Vocabulary is immutable once built.
type Vocabulary struct {
	supported map[string]struct{}
	inline    map[string]struct{}
}

// NewVocabulary builds a vocabulary from tag lists. Names are lower-cased.
// The fallback tags are always supported so every classification lands
// inside the vocabulary.
func NewVocabulary(supported, inline []string) *Vocabulary {
	supported = append(slices.Clone(supported), InlineFallback, BlockFallback)
	return &Vocabulary{
		supported: tagSet(supported),
		inline:    tagSet(inline),
	}
}

// DefaultVocabulary returns the built-in tag tables.
func DefaultVocabulary() *Vocabulary {
	return NewVocabulary(defaultSupportedTags, defaultInlineElements)
}

func tagSet(tags []string) map[string]struct{} {
	return lo.SliceToMap(tags, func(t string) (string, struct{}) {
		return strings.ToLower(strings.TrimSpace(t)), struct{}{}
	})
}

// Extend returns a new vocabulary with the given tags added.
func (v *Vocabulary) Extend(supported, inline []string) *Vocabulary {
	return NewVocabulary(
		append(v.Supported(), supported...),
		append(v.Inline(), inline...),
	)
}

// IsSupported reports whether tag is emitted verbatim.
func (v *Vocabulary) IsSupported(tag string) bool {
	_, ok := v.supported[tag]
	return ok
}

// IsInline reports whether tag is inline-level.
func (v *Vocabulary) IsInline(tag string) bool {
	_, ok := v.inline[tag]
	return ok
}

// Classify maps a lower-case tag name to the tag to emit. substituted is
// true when the tag is outside the vocabulary.
func (v *Vocabulary) Classify(tag string) (replacement string, substituted bool) {
	if v.IsSupported(tag) {
		return tag, false
	}
	if v.IsInline(tag) {
		return InlineFallback, true
	}
	return BlockFallback, true
}

// Supported lists the supported tags in sorted order.
func (v *Vocabulary) Supported() []string {
	return sortedKeys(v.supported)
}

// Inline lists the inline elements in sorted order.
func (v *Vocabulary) Inline() []string {
	return sortedKeys(v.inline)
}

func sortedKeys(m map[string]struct{}) []string {
	keys := lo.Keys(m)
	slices.Sort(keys)
	return keys
}

// VocabularyFile is the on-disk form of a vocabulary override.
type VocabularyFile struct {
	Supported []string `toml:"supported"`
	Inline    []string `toml:"inline"`
	// Replace discards the built-in tables instead of extending them.
	Replace bool `toml:"replace"`
}

// LoadVocabularyFile reads a TOML vocabulary file and applies it on top of
// the defaults.
func LoadVocabularyFile(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewIOError(fmt.Sprintf("读取词表文件失败 %q", path), err)
	}

	var file VocabularyFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, NewConfigError(fmt.Sprintf("解析词表文件失败 %q", path), err)
	}

	if file.Replace {
		if len(file.Supported) == 0 {
			return nil, NewConfigError(fmt.Sprintf("词表文件 %q 替换模式下 supported 不能为空", path), nil)
		}
		return NewVocabulary(file.Supported, file.Inline), nil
	}
	return DefaultVocabulary().Extend(file.Supported, file.Inline), nil
}
