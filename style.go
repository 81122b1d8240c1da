package dom2rec

import (
	"bytes"
	"strings"

	"github.com/samber/lo"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// InlineStyle is a parsed style attribute. It satisfies Style.
type InlineStyle struct {
	decls []PropertyValue
}

type declState int

const (
	expectName declState = iota
	expectColon
	inValue
	skipDecl
)

// ParseInlineStyle parses the contents of a style attribute. Declarations
// without a value or with a syntax error are dropped, and a property declared
// twice keeps its last value.
func ParseInlineStyle(text string) *InlineStyle {
	s := &InlineStyle{}
	if strings.TrimSpace(text) == "" {
		return s
	}

	var (
		state declState
		name  string
		value strings.Builder
		space bool
		depth int
	)

	l := css.NewLexer(parse.NewInputString(text))
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			break
		}
		if tt == css.CommentToken {
			continue
		}

		switch tt {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken, css.LeftBraceToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken, css.RightBraceToken:
			depth = max(depth-1, 0)
		}

		switch state {
		case expectName:
			switch {
			case tt == css.WhitespaceToken || tt == css.SemicolonToken:
			case tt == css.IdentToken || bytes.HasPrefix(data, []byte("--")):
				name = string(data)
				state = expectColon
			default:
				state = skipDecl
			}

		case expectColon:
			switch tt {
			case css.WhitespaceToken:
			case css.ColonToken:
				value.Reset()
				space = false
				depth = 0
				state = inValue
			default:
				state = skipDecl
			}

		case inValue:
			if tt == css.SemicolonToken && depth == 0 {
				s.add(name, cleanValue(value.String()))
				state = expectName
				continue
			}
			if tt == css.WhitespaceToken {
				space = true
				continue
			}
			if space && value.Len() > 0 {
				value.WriteByte(' ')
			}
			space = false
			value.Write(data)
		}

		// a malformed declaration runs to the next top-level semicolon
		if state == skipDecl && tt == css.SemicolonToken && depth == 0 {
			state = expectName
		}
	}

	if state == inValue {
		s.add(name, cleanValue(value.String()))
	}
	return s
}

func (s *InlineStyle) add(property, value string) {
	if !strings.HasPrefix(property, "--") {
		property = strings.ToLower(property)
	}
	if property == "" || value == "" {
		return
	}
	s.decls = lo.Reject(s.decls, func(d PropertyValue, _ int) bool {
		return d.Property == property
	})
	s.decls = append(s.decls, PropertyValue{Property: property, Value: value})
}

// cleanValue removes the !important priority.
func cleanValue(raw string) string {
	value := strings.TrimSpace(raw)
	if i := strings.LastIndex(value, "!"); i >= 0 {
		if strings.EqualFold(strings.TrimSpace(value[i+1:]), "important") {
			value = strings.TrimSpace(value[:i])
		}
	}
	return value
}

// CSSText returns the canonical text of the declaration block, or "" when it
// holds no declarations.
func (s *InlineStyle) CSSText() string {
	return strings.Join(lo.Map(s.decls, func(d PropertyValue, _ int) string {
		return d.Property + ": " + d.Value + ";"
	}), " ")
}

func (s *InlineStyle) Len() int {
	return len(s.decls)
}

func (s *InlineStyle) Item(i int) string {
	if i < 0 || i >= len(s.decls) {
		return ""
	}
	return s.decls[i].Property
}

func (s *InlineStyle) PropertyValue(name string) string {
	if !strings.HasPrefix(name, "--") {
		name = strings.ToLower(name)
	}
	for _, d := range s.decls {
		if d.Property == name {
			return d.Value
		}
	}
	return ""
}
