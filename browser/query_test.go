package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextQuerySelector(t *testing.T) {
	kind, sel := ByText("span", "Use Anonymously").selector()
	assert.Equal(t, xpathSelector, kind)
	assert.Equal(t, `//span[contains(., "Use Anonymously")]`, sel)
}

func TestTextQueryWithAnyTag(t *testing.T) {
	_, sel := ByText("", "Settings").selector()
	assert.Equal(t, `//*[contains(., "Settings")]`, sel)
}

func TestCSSQuerySelector(t *testing.T) {
	kind, sel := ByCSS("input").selector()
	assert.Equal(t, cssSelector, kind)
	assert.Equal(t, "input", sel)
}

func TestNthDoesNotChangeOriginal(t *testing.T) {
	q := ByText("div", "Settings")
	q5 := q.Nth(5)

	_, ok := q.Index()
	assert.False(t, ok)
	i, ok := q5.Index()
	assert.True(t, ok)
	assert.Equal(t, 5, i)
	assert.Equal(t, `<div> containing "Settings" [5]`, q5.String())
}

func TestXPathLiteral(t *testing.T) {
	assert.Equal(t, `"penguinfan1234"`, xpathLiteral("penguinfan1234"))
	assert.Equal(t, `'say "hi"'`, xpathLiteral(`say "hi"`))
	assert.Equal(t, `"it's"`, xpathLiteral("it's"))
	assert.Equal(t, `concat("it's ", '"', "quoted", '"')`, xpathLiteral(`it's "quoted"`))
}
