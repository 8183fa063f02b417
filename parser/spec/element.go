package spec

import "strings"

// ElementClass is a map of classes applied to an element.
// key = name, value = is_active; is_active is used to toggle a class
// without removing it (JavaScript API).
type ElementClass struct {
	classMap map[string]bool
}

func NewElementClass() ElementClass {
	return ElementClass{classMap: map[string]bool{}}
}

// NewElementClassFromString seeds a class set from a space-delimited
// class attribute value. All classes start active.
func NewElementClassFromString(classString string) ElementClass {
	c := NewElementClass()
	for _, name := range strings.Fields(classString) {
		c.Add(name)
	}
	return c
}

// Len counts the classes (active or inactive) assigned to an element.
func (c *ElementClass) Len() int {
	return len(c.classMap)
}

func (c *ElementClass) IsEmpty() bool {
	return len(c.classMap) == 0
}

func (c *ElementClass) Contains(name string) bool {
	_, ok := c.classMap[name]
	return ok
}

// Add adds a new class as active. Adding an existing class does nothing,
// so an inactive class is not unintentionally re-activated.
func (c *ElementClass) Add(name string) {
	if c.classMap == nil {
		c.classMap = map[string]bool{}
	}
	if !c.Contains(name) {
		c.classMap[name] = true
	}
}

// Remove removes a class. Does nothing if the class doesn't exist.
func (c *ElementClass) Remove(name string) {
	delete(c.classMap, name)
}

// Toggle flips a class between active and inactive. Does nothing if the
// class doesn't exist.
func (c *ElementClass) Toggle(name string) {
	if active, ok := c.classMap[name]; ok {
		c.classMap[name] = !active
	}
}

// SetActive sets a class explicitly active or inactive. Does nothing if
// the class doesn't exist.
func (c *ElementClass) SetActive(name string, active bool) {
	if _, ok := c.classMap[name]; ok {
		c.classMap[name] = active
	}
}

// IsActive reports whether a class is active. Returns false if the class
// doesn't exist.
func (c *ElementClass) IsActive(name string) bool {
	return c.classMap[name]
}

// Names returns all class names, active or not.
func (c *ElementClass) Names() []string {
	names := make([]string, 0, len(c.classMap))
	for name := range c.classMap {
		names = append(names, name)
	}
	return names
}

// ActiveNames returns the names of the active classes only.
func (c *ElementClass) ActiveNames() []string {
	var names []string
	for name, active := range c.classMap {
		if active {
			names = append(names, name)
		}
	}
	return names
}

// ElementData is the payload of an element node.
type ElementData struct {
	// Name of the element (e.g. div)
	Name string
	// Namespace of the element, always set (HTML when unspecified)
	Namespace string
	// Attributes stored as key-value pairs. Prefer Document.SetAttribute
	// over mutating the map directly so the named-id index and the class
	// set stay in sync.
	Attributes map[string]string
	// Classes applied to the element
	Classes ElementClass
	// ForceAsync is only meaningful for <script> elements.
	ForceAsync bool
	// TemplateContents is only set for <template> elements.
	TemplateContents *DocumentFragment
}

func (d *ElementData) IsNamespace(namespace string) bool {
	return d.Namespace == namespace
}

func (d *ElementData) AddClass(name string) {
	d.Classes.Add(name)
}

// Attribute returns the attribute value, or false when absent.
func (d *ElementData) Attribute(name string) (string, bool) {
	v, ok := d.Attributes[name]
	return v, ok
}

// IsSpecial reports whether the element is in the per-namespace "special"
// element set.
// https://html.spec.whatwg.org/multipage/parsing.html#special
func (d *ElementData) IsSpecial() bool {
	switch d.Namespace {
	case HTMLNamespace:
		return specialHTMLElements[d.Name]
	case MathMLNamespace:
		return specialMathMLElements[d.Name]
	case SVGNamespace:
		return specialSVGElements[d.Name]
	}
	return false
}

// IsFormatting reports whether the element is a formatting element.
func (d *ElementData) IsFormatting() bool {
	return d.Namespace == HTMLNamespace && formattingHTMLElements[d.Name]
}

// IsMathMLIntegrationPoint reports whether the element is a MathML text
// integration point.
// https://html.spec.whatwg.org/multipage/parsing.html#mathml-text-integration-point
func (d *ElementData) IsMathMLIntegrationPoint() bool {
	if d.Namespace != MathMLNamespace {
		return false
	}
	switch d.Name {
	case "mi", "mo", "mn", "ms", "mtext":
		return true
	}
	return false
}

// IsHTMLIntegrationPoint reports whether the element is an HTML
// integration point.
// https://html.spec.whatwg.org/multipage/parsing.html#html-integration-point
func (d *ElementData) IsHTMLIntegrationPoint() bool {
	if d.Namespace == MathMLNamespace && d.Name == "annotation-xml" {
		enc := d.Attributes["encoding"]
		return strings.EqualFold(enc, "text/html") || strings.EqualFold(enc, "application/xhtml+xml")
	}
	if d.Namespace == SVGNamespace {
		switch d.Name {
		case "foreignObject", "desc", "title":
			return true
		}
	}
	return false
}

// MatchesTagAndAttributes compares tag, namespace and the attribute map
// without regard to order. Used by the Noah's Ark clause.
func (d *ElementData) MatchesTagAndAttributes(other *ElementData) bool {
	if d.Name != other.Name || d.Namespace != other.Namespace {
		return false
	}
	if len(d.Attributes) != len(other.Attributes) {
		return false
	}
	for k, v := range d.Attributes {
		if ov, ok := other.Attributes[k]; !ok || ov != v {
			return false
		}
	}
	return true
}
