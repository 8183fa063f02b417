package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElementClassFromString(t *testing.T) {
	classes := NewElementClassFromString("  one two   three ")

	assert.Equal(t, 3, classes.Len())
	assert.True(t, classes.Contains("one"))
	assert.True(t, classes.IsActive("two"))
	assert.False(t, classes.Contains("four"))
}

func TestElementClassToggle(t *testing.T) {
	classes := NewElementClass()
	classes.Add("one")

	assert.True(t, classes.IsActive("one"))
	classes.Toggle("one")
	assert.False(t, classes.IsActive("one"))
	assert.True(t, classes.Contains("one"))
	classes.Toggle("one")
	assert.True(t, classes.IsActive("one"))

	// toggling an unknown class does nothing
	classes.Toggle("missing")
	assert.False(t, classes.Contains("missing"))
}

func TestElementClassSetActive(t *testing.T) {
	classes := NewElementClass()
	classes.Add("one")
	classes.SetActive("one", false)
	assert.False(t, classes.IsActive("one"))

	// adding an existing class must not re-activate it
	classes.Add("one")
	assert.False(t, classes.IsActive("one"))

	classes.SetActive("one", true)
	assert.True(t, classes.IsActive("one"))
}

func TestElementClassRemoveAndNames(t *testing.T) {
	classes := NewElementClassFromString("one two")
	classes.SetActive("two", false)

	assert.ElementsMatch(t, []string{"one", "two"}, classes.Names())
	assert.ElementsMatch(t, []string{"one"}, classes.ActiveNames())

	classes.Remove("one")
	assert.False(t, classes.Contains("one"))
	assert.Equal(t, 1, classes.Len())
	assert.False(t, classes.IsEmpty())
}

func TestMatchesTagAndAttributes(t *testing.T) {
	a := NewElementNode("b", "", map[string]string{"x": "1", "y": "2"}).ElementData()
	b := NewElementNode("b", "", map[string]string{"y": "2", "x": "1"}).ElementData()
	c := NewElementNode("b", "", map[string]string{"x": "1"}).ElementData()
	d := NewElementNode("i", "", map[string]string{"x": "1", "y": "2"}).ElementData()

	assert.True(t, a.MatchesTagAndAttributes(b))
	assert.False(t, a.MatchesTagAndAttributes(c))
	assert.False(t, a.MatchesTagAndAttributes(d))
}

func TestSpecialAndFormattingSets(t *testing.T) {
	div := NewElementNode("div", "", nil).ElementData()
	b := NewElementNode("b", "", nil).ElementData()
	foreign := NewElementNode("foreignObject", SVGNamespace, nil).ElementData()

	assert.True(t, div.IsSpecial())
	assert.False(t, div.IsFormatting())
	assert.True(t, b.IsFormatting())
	assert.False(t, b.IsSpecial())
	assert.True(t, foreign.IsSpecial())
	assert.True(t, foreign.IsHTMLIntegrationPoint())
}

func TestMathMLIntegrationPoints(t *testing.T) {
	mi := NewElementNode("mi", MathMLNamespace, nil).ElementData()
	annotation := NewElementNode("annotation-xml", MathMLNamespace, map[string]string{"encoding": "Text/HTML"}).ElementData()

	assert.True(t, mi.IsMathMLIntegrationPoint())
	assert.False(t, mi.IsHTMLIntegrationPoint())
	assert.True(t, annotation.IsHTMLIntegrationPoint())
}
