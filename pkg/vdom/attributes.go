package vdom

import "strings"

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// StyleAttr sets the style attribute (named to avoid conflict with a Style element).
func StyleAttr(style string) Attr { return attr("style", style) }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Flag creates a presence-only attribute with an empty value.
func Flag(name string) Attr { return attr(name, "") }

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// TitleAttr sets the title attribute (named to avoid conflict with a Title element).
func TitleAttr(title string) Attr { return attr("title", title) }

// Draggable sets the draggable attribute.
func Draggable() Attr { return attr("draggable", "true") }

// Box sets the initial layout box. It is not rendered as an attribute.
func Box(x, y, width, height float64) Attr {
	return attr(layoutProp, Rect{X: x, Y: y, Width: width, Height: height})
}

// layoutProp is the internal prop consumed by createElement for Box.
const layoutProp = "_layout"
