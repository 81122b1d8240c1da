package dom2rec

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// ConverterOptions configures a Converter.
type ConverterOptions struct {
	Vocabulary *Vocabulary
	Logger     *slog.Logger

	// Selector is a CSS selector choosing the root element instead of body.
	Selector string
	// XPath is an XPath expression choosing the root node instead of body.
	XPath string
}

// Converter runs the parse, normalize and serialize pipeline.
// It holds no per-call state and may be shared between goroutines.
type Converter struct {
	normalizer *Normalizer
	logger     *slog.Logger
	matcher    goquery.Matcher
	selector   string
	xpath      string
}

// NewConverter creates a converter. opts may be nil.
func NewConverter(opts *ConverterOptions) (*Converter, error) {
	if opts == nil {
		opts = &ConverterOptions{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Converter{
		normalizer: NewNormalizer(opts.Vocabulary, logger),
		logger:     logger,
		selector:   strings.TrimSpace(opts.Selector),
		xpath:      strings.TrimSpace(opts.XPath),
	}

	if c.selector != "" && c.xpath != "" {
		return nil, NewConfigError("selector 与 xpath 不能同时指定", nil)
	}
	if c.selector != "" {
		sel, err := cascadia.Compile(c.selector)
		if err != nil {
			return nil, NewConfigError(fmt.Sprintf("无效的CSS选择器 %q", c.selector), err)
		}
		c.matcher = sel
	}
	return c, nil
}

// ConvertDocument converts the body of an HTML document with the built-in
// vocabulary.
func ConvertDocument(src string) (string, error) {
	c, err := NewConverter(nil)
	if err != nil {
		return "", err
	}
	return c.ConvertString(src)
}

// ConvertString converts an HTML document held in a string.
func (c *Converter) ConvertString(src string) (string, error) {
	return c.ConvertReader(strings.NewReader(src))
}

// ConvertReader parses an HTML document from r and converts its root.
func (c *Converter) ConvertReader(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", NewParseError("解析HTML失败", err)
	}

	root, err := c.findRoot(doc)
	if err != nil {
		return "", err
	}

	out := c.ConvertNode(root)
	c.logger.Debug("Converted document", "root", root.Data, "bytes", len(out))
	return out, nil
}

// ConvertNode normalizes and serializes an already parsed node.
func (c *Converter) ConvertNode(n *html.Node) string {
	return Stringify(c.Record(n), 0)
}

// Record normalizes an already parsed node.
func (c *Converter) Record(n *html.Node) Record {
	return c.normalizer.Normalize(FromHTML(n))
}

func (c *Converter) findRoot(doc *goquery.Document) (*html.Node, error) {
	switch {
	case c.xpath != "":
		n, err := htmlquery.Query(doc.Get(0), c.xpath)
		if err != nil {
			return nil, NewConfigError(fmt.Sprintf("无效的XPath表达式 %q", c.xpath), err)
		}
		if n == nil {
			return nil, NewValidationError(fmt.Sprintf("未找到匹配节点 (xpath: %s)", c.xpath))
		}
		return n, nil

	case c.matcher != nil:
		sel := doc.FindMatcher(c.matcher).First()
		if sel.Length() == 0 {
			return nil, NewValidationError(fmt.Sprintf("未找到匹配元素 (选择器: %s)", c.selector))
		}
		return sel.Get(0), nil

	default:
		body := doc.Find("body").First()
		if body.Length() == 0 {
			return nil, NewValidationError("文档中没有body元素")
		}
		return body.Get(0), nil
	}
}
