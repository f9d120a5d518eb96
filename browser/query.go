package browser

import (
	"fmt"
	"strings"
)

type selectorKind int

const (
	xpathSelector selectorKind = iota
	cssSelector
)

// Query describes how to find elements on the current page. It is evaluated afresh every
// time it is used, since the page changes between actions.
type Query struct {
	tag   string
	text  string
	css   string
	index int
}

// ByText matches elements with the given tag ("*" or "" for any) whose text content contains
// text. The match is a case-sensitive substring match.
func ByText(tag, text string) Query {
	if tag == "" {
		tag = "*"
	}
	return Query{tag: tag, text: text, index: -1}
}

// ByCSS matches elements with a CSS selector.
func ByCSS(selector string) Query {
	return Query{css: selector, index: -1}
}

// Nth narrows the query to the match at position i in document order, counting from 0.
func (q Query) Nth(i int) Query {
	q.index = i
	return q
}

func (q Query) Tag() string  { return q.tag }
func (q Query) Text() string { return q.text }
func (q Query) CSS() string  { return q.css }

// Index returns the position set with Nth, if any.
func (q Query) Index() (int, bool) {
	return q.index, q.index >= 0
}

func (q Query) String() string {
	var s string
	if q.css != "" {
		s = fmt.Sprintf("css %q", q.css)
	} else {
		s = fmt.Sprintf("<%s> containing %q", q.tag, q.text)
	}
	if q.index >= 0 {
		s += fmt.Sprintf(" [%d]", q.index)
	}
	return s
}

func (q Query) selector() (selectorKind, string) {
	if q.css != "" {
		return cssSelector, q.css
	}
	return xpathSelector, fmt.Sprintf("//%s[contains(., %s)]", q.tag, xpathLiteral(q.text))
}

// xpathLiteral quotes s as an XPath 1.0 string literal. XPath has no escape sequences, so a
// string containing both kinds of quote is assembled with concat().
func xpathLiteral(s string) string {
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	parts := strings.Split(s, `"`)
	quoted := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `'"'`)
		}
		if p != "" {
			quoted = append(quoted, `"`+p+`"`)
		}
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}
