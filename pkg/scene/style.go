package scene

import "strings"

// Declaration is one CSS property/value pair.
type Declaration struct {
	Property string
	Value    string
}

// Style is an ordered list of inline CSS declarations.
// The zero value is an empty style ready to use.
type Style struct {
	decls []Declaration
}

// ParseStyle parses the contents of a style attribute.
// Malformed declarations are dropped.
func ParseStyle(s string) Style {
	var st Style
	for _, part := range strings.Split(s, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		st.Set(prop, value)
	}
	return st
}

// Get returns the value of a property, or "" if unset.
func (s *Style) Get(property string) string {
	property = normalizeProperty(property)
	for _, d := range s.decls {
		if d.Property == property {
			return d.Value
		}
	}
	return ""
}

// Set assigns a property. An empty value removes it, matching how
// assigning "" to an element's style property clears it.
func (s *Style) Set(property, value string) {
	property = normalizeProperty(property)
	value = strings.TrimSpace(value)
	if property == "" {
		return
	}
	if value == "" {
		s.Remove(property)
		return
	}
	for i := range s.decls {
		if s.decls[i].Property == property {
			s.decls[i].Value = value
			return
		}
	}
	s.decls = append(s.decls, Declaration{Property: property, Value: value})
}

// Remove deletes a property if present.
func (s *Style) Remove(property string) {
	property = normalizeProperty(property)
	for i, d := range s.decls {
		if d.Property == property {
			s.decls = append(s.decls[:i], s.decls[i+1:]...)
			return
		}
	}
}

// Len returns the number of declarations.
func (s *Style) Len() int { return len(s.decls) }

// Declarations returns a copy of the declarations in order.
func (s *Style) Declarations() []Declaration {
	return append([]Declaration(nil), s.decls...)
}

// String renders the declarations as a style attribute value.
func (s *Style) String() string {
	var b strings.Builder
	for i, d := range s.decls {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(d.Property)
		b.WriteString(": ")
		b.WriteString(d.Value)
	}
	return b.String()
}

func (s Style) clone() Style {
	if len(s.decls) == 0 {
		return Style{}
	}
	return Style{decls: append([]Declaration(nil), s.decls...)}
}

func normalizeProperty(p string) string {
	return strings.ToLower(strings.TrimSpace(p))
}
