package drag

import (
	"fmt"

	"github.com/vango-dev/dragkit/pkg/vdom"
)

// VisualPort applies the visual changes a drag needs.
type VisualPort interface {
	// Dim marks a participating element while it is dragged.
	Dim(n *vdom.VNode)
	// Restore undoes Dim.
	Restore(n *vdom.VNode)
	// PositionOffscreen places a clone container outside the visible area,
	// rotated by deg degrees.
	PositionOffscreen(n *vdom.VNode, deg float64)
}

// StyleVisual implements VisualPort with inline styles.
type StyleVisual struct{}

// Dim implements VisualPort.
func (StyleVisual) Dim(n *vdom.VNode) {
	n.SetStyle("opacity", DimOpacity)
}

// Restore implements VisualPort.
func (StyleVisual) Restore(n *vdom.VNode) {
	n.SetStyle("opacity", "1")
}

// PositionOffscreen implements VisualPort.
func (StyleVisual) PositionOffscreen(n *vdom.VNode, deg float64) {
	n.SetStyle("position", "absolute")
	n.SetStyle("top", "-9999px")
	n.SetStyle("left", "-9999px")
	n.SetStyle("display", "inline-block")
	n.SetStyle("padding", fmt.Sprintf("%dpx", ClonePadding))
	n.SetStyle("transform", fmt.Sprintf("rotate(%sdeg)", formatFloat(deg)))
}

func formatFloat(f float64) string {
	return fmt.Sprintf("%.4g", f)
}
