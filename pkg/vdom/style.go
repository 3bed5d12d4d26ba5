package vdom

import "strings"

// Style is an ordered set of inline style declarations.
type Style struct {
	names  []string
	values map[string]string
}

// ParseStyle parses a style attribute such as "width: 10px; opacity: 0.5".
// Malformed declarations are skipped.
func ParseStyle(s string) *Style {
	st := &Style{values: make(map[string]string)}
	for _, decl := range strings.Split(s, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if name == "" {
			continue
		}
		st.Set(name, value)
	}
	return st
}

// Get returns the value of a property.
func (s *Style) Get(name string) string {
	return s.values[name]
}

// Set assigns a property, keeping its original position when it already exists.
// An empty value removes the property.
func (s *Style) Set(name, value string) {
	if value == "" {
		s.Remove(name)
		return
	}
	if _, ok := s.values[name]; !ok {
		s.names = append(s.names, name)
	}
	s.values[name] = value
}

// Remove deletes a property.
func (s *Style) Remove(name string) {
	if _, ok := s.values[name]; !ok {
		return
	}
	delete(s.values, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
}

// String renders the declarations in insertion order.
func (s *Style) String() string {
	var b strings.Builder
	for i, n := range s.names {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(n)
		b.WriteString(": ")
		b.WriteString(s.values[n])
	}
	return b.String()
}

// StyleValue returns one inline style property of the node.
func (v *VNode) StyleValue(name string) string {
	s, _ := v.GetAttr("style")
	return ParseStyle(s).Get(name)
}

// SetStyle sets one inline style property of the node.
func (v *VNode) SetStyle(name, value string) {
	s, _ := v.GetAttr("style")
	st := ParseStyle(s)
	st.Set(name, value)
	if out := st.String(); out != "" {
		v.SetAttr("style", out)
	} else {
		v.RemoveAttr("style")
	}
}
