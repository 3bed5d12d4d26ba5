package vdom

import (
	"fmt"
	"strings"
)

// AppendChild adds child as the last child of parent.
// A child that is still attached elsewhere is detached first.
func AppendChild(parent, child *VNode) {
	if parent == nil || child == nil {
		return
	}
	if child.Parent != nil {
		RemoveChild(child.Parent, child)
	}
	child.Parent = parent
	parent.Children = append(parent.Children, child)
}

// RemoveChild detaches child from parent. It reports whether child was found.
func RemoveChild(parent, child *VNode) bool {
	if parent == nil || child == nil {
		return false
	}
	for i, c := range parent.Children {
		if c == child {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			child.Parent = nil
			return true
		}
	}
	return false
}

// Detach removes the node from its parent, if any.
func Detach(node *VNode) bool {
	if node == nil || node.Parent == nil {
		return false
	}
	return RemoveChild(node.Parent, node)
}

// Contains reports whether node is root or one of its descendants.
func Contains(root, node *VNode) bool {
	for n := node; n != nil; n = n.Parent {
		if n == root {
			return true
		}
	}
	return false
}

// Walk visits node and its descendants in document order.
// Returning false from fn skips the subtree of the visited node.
func Walk(node *VNode, fn func(*VNode) bool) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	for _, child := range node.Children {
		Walk(child, fn)
	}
}

// Clone returns a deep copy of node without parent, HIDs or event handlers.
func Clone(node *VNode) *VNode {
	if node == nil {
		return nil
	}

	c := &VNode{
		Kind:       node.Kind,
		Tag:        node.Tag,
		Text:       node.Text,
		Layout:     node.Layout,
		ScrollLeft: node.ScrollLeft,
	}

	if node.Props != nil {
		c.Props = make(Props, len(node.Props))
		for k, v := range node.Props {
			if isEventHandler(k) {
				continue
			}
			c.Props[k] = v
		}
	}

	if len(node.Children) > 0 {
		c.Children = make([]*VNode, 0, len(node.Children))
		for _, child := range node.Children {
			cc := Clone(child)
			cc.Parent = c
			c.Children = append(c.Children, cc)
		}
	}

	return c
}

// Attribute helpers

// GetAttr returns the string form of an attribute and whether it is present.
func (v *VNode) GetAttr(name string) (string, bool) {
	if v == nil || v.Props == nil {
		return "", false
	}
	val, ok := v.Props[name]
	if !ok || val == nil {
		return "", false
	}
	switch s := val.(type) {
	case string:
		return s, true
	case bool:
		if !s {
			return "", false
		}
		return "", true
	default:
		return fmt.Sprint(s), true
	}
}

// HasAttr reports whether the attribute is present, regardless of value.
func (v *VNode) HasAttr(name string) bool {
	_, ok := v.GetAttr(name)
	return ok
}

// SetAttr sets an attribute value.
func (v *VNode) SetAttr(name string, value any) {
	if v.Props == nil {
		v.Props = make(Props)
	}
	v.Props[name] = value
}

// RemoveAttr deletes an attribute.
func (v *VNode) RemoveAttr(name string) {
	delete(v.Props, name)
}

// ElementID returns the id attribute.
func (v *VNode) ElementID() string {
	id, _ := v.GetAttr("id")
	return id
}

// Class helpers

// Classes returns the class list in order.
func (v *VNode) Classes() []string {
	s, _ := v.GetAttr("class")
	return strings.Fields(s)
}

// HasClass reports whether the class list contains name.
func (v *VNode) HasClass(name string) bool {
	for _, c := range v.Classes() {
		if c == name {
			return true
		}
	}
	return false
}

// AddClass appends name to the class list if it is missing.
func (v *VNode) AddClass(name string) {
	if name == "" || v.HasClass(name) {
		return
	}
	v.SetAttr("class", strings.Join(append(v.Classes(), name), " "))
}

// RemoveClass removes every occurrence of name from the class list.
func (v *VNode) RemoveClass(name string) {
	classes := v.Classes()
	kept := classes[:0]
	for _, c := range classes {
		if c != name {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		v.RemoveAttr("class")
		return
	}
	v.SetAttr("class", strings.Join(kept, " "))
}
