package drag

import "time"

// Markers recognised in the document.
const (
	// NoDragAttr on any ancestor of the pointer-down target vetoes a drag.
	// Only its presence matters.
	NoDragAttr = "data-no-drag"

	// ExcludeAttr marks descendants that are stripped from single clones.
	ExcludeAttr = "data-remove-from-draggable"

	// SelectedClass is removed from clones so the drag image never shows
	// selected styling.
	SelectedClass = "selected-draggable"
)

// Defaults for the tunables exposed through Options.
const (
	DefaultScrollInterval = 500 * time.Millisecond
	DefaultTriggerRange   = 150.0
	DefaultMaxRotation    = 2.0

	// ClonePadding is the inner padding of a clone container in pixels. It is
	// also the cursor offset handed to SetDragImage.
	ClonePadding = 30

	// StackGap is the vertical gap between copies in a multi clone.
	StackGap = 2

	// DimOpacity is applied to every element of a multi drag.
	DimOpacity = "0.5"
)

// Config configures one draggable element. The zero value is an enabled
// drag without payload, selection or autoscroll.
type Config struct {
	// Selector identifies the elements that take part in a multi drag.
	// It is evaluated within the dragged element's grandparent.
	Selector string

	// Disabled suppresses all behavior.
	Disabled bool

	// Payload is handed to every drop target at drag start. Nil means no
	// payload.
	Payload Payload

	// ViewportID is the id of the scroll container to autoscroll.
	ViewportID string

	// ExtendWithClass is added to generated clones.
	ExtendWithClass string
}
