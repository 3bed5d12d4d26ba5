package vdom

import "strings"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement VKind = iota // <div>, <button>, etc.
	KindText                 // Plain text node
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

// Rect is a layout box in client pixels.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// IsZero reports whether the box was never measured.
func (r Rect) IsZero() bool {
	return r.Width == 0 && r.Height == 0
}

// VNode is a document node.
type VNode struct {
	Kind     VKind    // Node type
	Tag      string   // Element tag name (e.g., "div")
	Props    Props    // Attributes and event handlers
	Children []*VNode // Child nodes
	Parent   *VNode   // Owning element, nil for detached roots
	Text     string   // For KindText
	HID      string   // Hydration ID (assigned when mounted)

	// Layout is the last box reported by the client.
	Layout Rect

	// ScrollLeft is the horizontal scroll offset of a scroll container.
	ScrollLeft float64
}

// Props holds attributes and event handlers.
type Props map[string]any

// IsInteractive returns true if this node has event handlers.
func (v *VNode) IsInteractive() bool {
	if v == nil || v.Kind != KindElement {
		return false
	}
	for key := range v.Props {
		if isEventHandler(key) {
			return true
		}
	}
	return false
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler represents an event handler.
type EventHandler struct {
	Event   string // "ondragstart", "onpointerdown", etc.
	Handler any    // Function to call
}

// isEventHandler reports whether a prop key names a handler.
func isEventHandler(key string) bool {
	return strings.HasPrefix(key, "on")
}
