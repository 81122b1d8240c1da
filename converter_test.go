package dom2rec_test

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/r3labs/diff/v3"
	"golang.org/x/net/html"

	main "github.com/fdkevin0/dom2rec"
)

var (
	//go:embed testdata/menu.html
	menuHTML string

	//go:embed testdata/menu.rec
	menuRecord string
)

func newTestConverter(t *testing.T, opts main.ConverterOptions) (*main.Converter, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	opts.Logger = slog.New(slog.NewTextHandler(&logs, nil))
	c, err := main.NewConverter(&opts)
	if err != nil {
		t.Fatalf("NewConverter returned error: %v", err)
	}
	return c, &logs
}

func TestConvertScenarios(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		selector string
		want     string
		warnings int
	}{
		{"plain attribute", `<div class="x"></div>`, "div", `[#div class: "x"]`, 0},
		{"inline style", `<div style="opacity: 0;"></div>`, "div", `[#div style: [opacity: "0"]]`, 0},
		{"unsupported inline tag", `<b></b>`, "b", `[#span]`, 1},
		{"unsupported block tag", `<foo></foo>`, "foo", `[#div]`, 1},
		{"children", `<div><i class="a"></i><i class="b"></i></div>`, "div", "[#div children:\n  [#i class: \"a\"]\n  [#i class: \"b\"]\n]", 0},
		{"empty attribute", `<div title=""></div>`, "div", `[#div]`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, logs := newTestConverter(t, main.ConverterOptions{Selector: tt.selector})
			got, err := c.ConvertString(tt.html)
			if err != nil {
				t.Fatalf("ConvertString returned error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ConvertString() =\n%s\nwant\n%s", got, tt.want)
			}
			if n := strings.Count(logs.String(), "level=WARN"); n != tt.warnings {
				t.Fatalf("expected %d warnings, got %d: %s", tt.warnings, n, logs.String())
			}
		})
	}
}

func TestConvertDocumentUsesBody(t *testing.T) {
	got, err := main.ConvertDocument(`<div class="x"></div>`)
	if err != nil {
		t.Fatalf("ConvertDocument returned error: %v", err)
	}
	want := "[#body children:\n  [#div class: \"x\"]\n]"
	if got != want {
		t.Fatalf("ConvertDocument() =\n%s\nwant\n%s", got, want)
	}
}

func TestConvertMenuDocument(t *testing.T) {
	c, logs := newTestConverter(t, main.ConverterOptions{})

	first, err := c.ConvertString(menuHTML)
	if err != nil {
		t.Fatalf("ConvertString returned error: %v", err)
	}
	if first != menuRecord {
		t.Fatalf("unexpected output:\n%s\nwant\n%s", first, menuRecord)
	}

	second, err := c.ConvertString(menuHTML)
	if err != nil {
		t.Fatalf("ConvertString returned error: %v", err)
	}
	if first != second {
		t.Fatal("conversion is not deterministic")
	}
	if logs.Len() != 0 {
		t.Fatalf("expected no warnings, got: %s", logs.String())
	}
}

func TestConverterXPath(t *testing.T) {
	c, logs := newTestConverter(t, main.ConverterOptions{XPath: `//div[@id='app']`})

	got, err := c.ConvertString(`<div id="other"></div><div id="app"><p>hi</p></div>`)
	if err != nil {
		t.Fatalf("ConvertString returned error: %v", err)
	}
	want := "[#div id: \"app\" children:\n  [#p children:\n    [#div]\n  ]\n]"
	if got != want {
		t.Fatalf("ConvertString() =\n%s\nwant\n%s", got, want)
	}
	// the text node inside <p>
	if n := strings.Count(logs.String(), "level=WARN"); n != 1 {
		t.Fatalf("expected 1 warning, got %d", n)
	}
}

func TestConverterRecord(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<ul class="nav"><li data-x="" style="color: red">a</li></ul>`))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	ul := doc.FirstChild.LastChild.FirstChild

	c, _ := newTestConverter(t, main.ConverterOptions{})
	got := c.Record(ul)

	want := main.Record{
		Tag:   "ul",
		Attrs: []main.Attribute{{Name: "class", Value: "nav"}},
		Style: []main.PropertyValue{},
		Children: []main.Record{{
			Tag:   "li",
			Attrs: []main.Attribute{{Name: "data-x", Value: ""}},
			Style: []main.PropertyValue{{Property: "color", Value: "red"}},
			Children: []main.Record{{
				Tag:      "div",
				Attrs:    []main.Attribute{},
				Style:    []main.PropertyValue{},
				Children: []main.Record{},
			}},
		}},
	}

	if !reflect.DeepEqual(got, want) {
		changes, err := diff.Diff(got, want)
		if err != nil {
			t.Error(err)
		}
		for _, change := range changes {
			fmt.Printf("Field: %s, From: %v, To: %v\n", change.Path, change.From, change.To)
		}
		t.Fatalf("Record() does not match expected tree")
	}
}

func TestConverterErrors(t *testing.T) {
	tests := []struct {
		name string
		opts main.ConverterOptions
		html string
		want main.ErrorType
	}{
		{"selector without match", main.ConverterOptions{Selector: "#missing"}, `<div></div>`, main.ValidationError},
		{"xpath without match", main.ConverterOptions{XPath: "//section"}, `<div></div>`, main.ValidationError},
		{"invalid xpath", main.ConverterOptions{XPath: "//div["}, `<div></div>`, main.ConfigError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestConverter(t, tt.opts)
			_, err := c.ConvertString(tt.html)
			var appErr *main.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("expected AppError, got %T (%v)", err, err)
			}
			if appErr.Type != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, appErr.Type)
			}
		})
	}
}

func TestNewConverterRejectsBadOptions(t *testing.T) {
	for _, opts := range []main.ConverterOptions{
		{Selector: "div["},
		{Selector: "div", XPath: "//div"},
	} {
		_, err := main.NewConverter(&opts)
		var appErr *main.AppError
		if !errors.As(err, &appErr) || appErr.Type != main.ConfigError {
			t.Fatalf("NewConverter(%+v) = %v, want ConfigError", opts, err)
		}
	}
}

// walk visits every record of a tree.
func walk(r main.Record, fn func(main.Record)) {
	fn(r)
	for _, c := range r.Children {
		walk(c, fn)
	}
}

func TestConvertedTreeInvariants(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(menuHTML + `<section><b title="" tabindex="0">x</b><!-- note --><svg><circle r="1"/></svg></section>`))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	body := doc.FirstChild.LastChild

	vocab := main.DefaultVocabulary()
	c, _ := newTestConverter(t, main.ConverterOptions{Vocabulary: vocab})
	root := c.Record(body)

	walk(root, func(r main.Record) {
		if !vocab.IsSupported(r.Tag) {
			t.Fatalf("tag %q outside the vocabulary", r.Tag)
		}
		if _, ok := r.Attr("style"); ok {
			t.Fatalf("style attribute kept on %q", r.Tag)
		}

		out := main.Stringify(r, 0)
		header := strings.SplitN(out, "\n", 2)[0]
		if r.IsLeaf() == strings.Contains(header, " children:") {
			t.Fatalf("leaf rule violated for %q: %s", r.Tag, header)
		}
		if len(r.Style) == 0 && strings.Contains(header, " style: [") {
			t.Fatalf("empty style rendered for %q: %s", r.Tag, header)
		}
		for _, a := range r.Attrs {
			seg := " " + a.Name + ": \""
			if n := strings.Count(header, seg); (a.Value == "" && n != 0) || (a.Value != "" && n != 1) {
				t.Fatalf("attribute %q (value %q) rendered %d times: %s", a.Name, a.Value, n, header)
			}
		}
	})

	// indentation of immediate children and the closing bracket
	for level := 0; level < 3; level++ {
		lines := strings.Split(main.Stringify(root, level), "\n")
		childIndent := strings.Repeat(" ", 2*(level+1))
		for _, line := range lines[1 : len(lines)-1] {
			if !strings.HasPrefix(line, childIndent) {
				t.Fatalf("line %q not indented by %d at level %d", line, 2*(level+1), level)
			}
		}
		if last := lines[len(lines)-1]; last != strings.Repeat(" ", 2*level)+"]" {
			t.Fatalf("closing line %q at level %d", last, level)
		}
	}
}
