package scene

import "strings"

// Attr is a single element attribute.
type Attr struct {
	Name  string
	Value string
}

// Element is a node of the vector scene.
//
// The "style" attribute is never stored in Attrs; it lives in Style.
type Element struct {
	Name     string
	Attrs    []Attr
	Style    Style
	Text     string
	Children []*Element
}

// New creates an element with the given tag name.
func New(name string) *Element {
	return &Element{Name: name}
}

// Attr returns the value of the named attribute, or "" if it is absent.
func (e *Element) Attr(name string) string {
	v, _ := e.LookupAttr(name)
	return v
}

// LookupAttr returns the value of the named attribute and whether it exists.
func (e *Element) LookupAttr(name string) (string, bool) {
	if name == "style" {
		return e.Style.String(), e.Style.Len() > 0
	}
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets an attribute, keeping the position of an existing one.
// Setting "style" replaces the inline declarations. It returns e for chaining.
func (e *Element) SetAttr(name, value string) *Element {
	if name == "style" {
		e.Style = ParseStyle(value)
		return e
	}
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return e
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
	return e
}

// RemoveAttr deletes an attribute if present.
func (e *Element) RemoveAttr(name string) {
	if name == "style" {
		e.Style = Style{}
		return
	}
	for i, a := range e.Attrs {
		if a.Name == name {
			e.Attrs = append(e.Attrs[:i], e.Attrs[i+1:]...)
			return
		}
	}
}

// HasClass reports whether the class attribute lists class.
func (e *Element) HasClass(class string) bool {
	for _, c := range strings.Fields(e.Attr("class")) {
		if c == class {
			return true
		}
	}
	return false
}

// Append adds children and returns e.
func (e *Element) Append(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// Clone returns a deep copy that shares no state with e.
func (e *Element) Clone() *Element {
	if e == nil {
		return nil
	}
	c := &Element{
		Name:  e.Name,
		Style: e.Style.clone(),
		Text:  e.Text,
	}
	if len(e.Attrs) > 0 {
		c.Attrs = append([]Attr(nil), e.Attrs...)
	}
	if len(e.Children) > 0 {
		c.Children = make([]*Element, len(e.Children))
		for i, child := range e.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}

// Walk visits e and its descendants depth-first. Returning false from fn
// skips the children of the visited element.
func (e *Element) Walk(fn func(*Element) bool) {
	if e == nil || !fn(e) {
		return
	}
	for _, child := range e.Children {
		child.Walk(fn)
	}
}

// Find returns the first descendant of e (e excluded) carrying class.
func (e *Element) Find(class string) *Element {
	for _, child := range e.Children {
		if child.HasClass(class) {
			return child
		}
		if found := child.Find(class); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant of e (e excluded) carrying class.
func (e *Element) FindAll(class string) []*Element {
	var out []*Element
	for _, child := range e.Children {
		child.Walk(func(el *Element) bool {
			if el.HasClass(class) {
				out = append(out, el)
			}
			return true
		})
	}
	return out
}

// Transform returns the element's effective transform. An inline CSS
// transform replaces the transform attribute; "none" clears it.
func (e *Element) Transform() (Transform, error) {
	v := e.Attr("transform")
	if css := e.Style.Get("transform"); css != "" {
		v = css
	}
	if v == "" || v == "none" {
		return nil, nil
	}
	return ParseTransform(v)
}
