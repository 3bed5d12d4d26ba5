package vdom

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSelector is returned for selectors outside the supported grammar.
var ErrInvalidSelector = errors.New("vdom: invalid selector")

// Selector is a compiled selector list.
//
// Supported grammar: comma separated groups of compound selectors joined by
// the descendant combinator (whitespace). A compound selector is an optional
// tag name or "*" followed by any number of .class, #id, [attr] and
// [attr=value] parts.
type Selector struct {
	groups [][]compound
}

type compound struct {
	tag     string
	id      string
	classes []string
	attrs   []attrMatch
}

type attrMatch struct {
	name     string
	value    string
	hasValue bool
}

// Compile parses a selector string.
func Compile(sel string) (*Selector, error) {
	sel = strings.TrimSpace(sel)
	if sel == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidSelector)
	}

	s := &Selector{}
	for _, group := range strings.Split(sel, ",") {
		fields := strings.Fields(group)
		if len(fields) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSelector, sel)
		}
		chain := make([]compound, 0, len(fields))
		for _, f := range fields {
			c, err := parseCompound(f)
			if err != nil {
				return nil, err
			}
			chain = append(chain, c)
		}
		s.groups = append(s.groups, chain)
	}
	return s, nil
}

func parseCompound(s string) (compound, error) {
	var c compound
	i := 0
	for i < len(s) && s[i] != '.' && s[i] != '#' && s[i] != '[' {
		i++
	}
	c.tag = s[:i]
	if c.tag == "*" {
		c.tag = ""
	} else if !validName(c.tag) {
		return c, fmt.Errorf("%w: %q", ErrInvalidSelector, s)
	}

	for i < len(s) {
		switch s[i] {
		case '.', '#':
			j := i + 1
			for j < len(s) && s[j] != '.' && s[j] != '#' && s[j] != '[' {
				j++
			}
			name := s[i+1 : j]
			if name == "" {
				return c, fmt.Errorf("%w: %q", ErrInvalidSelector, s)
			}
			if s[i] == '.' {
				c.classes = append(c.classes, name)
			} else {
				c.id = name
			}
			i = j
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return c, fmt.Errorf("%w: unterminated attribute in %q", ErrInvalidSelector, s)
			}
			body := s[i+1 : i+end]
			var m attrMatch
			if name, value, ok := strings.Cut(body, "="); ok {
				m = attrMatch{name: name, value: strings.Trim(value, `"'`), hasValue: true}
			} else {
				m = attrMatch{name: body}
			}
			if m.name == "" {
				return c, fmt.Errorf("%w: %q", ErrInvalidSelector, s)
			}
			c.attrs = append(c.attrs, m)
			i += end + 1
		default:
			return c, fmt.Errorf("%w: %q", ErrInvalidSelector, s)
		}
	}
	return c, nil
}

func validName(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

func (c compound) matches(n *VNode) bool {
	if n == nil || n.Kind != KindElement {
		return false
	}
	if c.tag != "" && !strings.EqualFold(c.tag, n.Tag) {
		return false
	}
	if c.id != "" && n.ElementID() != c.id {
		return false
	}
	for _, cls := range c.classes {
		if !n.HasClass(cls) {
			return false
		}
	}
	for _, a := range c.attrs {
		v, ok := n.GetAttr(a.name)
		if !ok || (a.hasValue && v != a.value) {
			return false
		}
	}
	return true
}

// Matches reports whether the node matches any group of the selector.
func (s *Selector) Matches(n *VNode) bool {
	for _, chain := range s.groups {
		if matchChain(chain, n) {
			return true
		}
	}
	return false
}

// matchChain matches right to left. Taking the nearest matching ancestor is
// always sufficient because the only combinator is descendant.
func matchChain(chain []compound, n *VNode) bool {
	last := len(chain) - 1
	if !chain[last].matches(n) {
		return false
	}
	anc := n.Parent
	for i := last - 1; i >= 0; i-- {
		for anc != nil && !chain[i].matches(anc) {
			anc = anc.Parent
		}
		if anc == nil {
			return false
		}
		anc = anc.Parent
	}
	return true
}

// QueryAll returns the descendants of root that match s, in document order.
// root itself is never included.
func (s *Selector) QueryAll(root *VNode) []*VNode {
	if root == nil {
		return nil
	}
	var out []*VNode
	for _, child := range root.Children {
		Walk(child, func(n *VNode) bool {
			if s.Matches(n) {
				out = append(out, n)
			}
			return true
		})
	}
	return out
}

// QueryAll compiles sel and returns the matching descendants of root.
// Invalid selectors match nothing.
func QueryAll(root *VNode, sel string) []*VNode {
	s, err := Compile(sel)
	if err != nil {
		return nil
	}
	return s.QueryAll(root)
}
