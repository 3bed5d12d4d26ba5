package dragserver

import (
	"github.com/vango-dev/dragkit/pkg/drag"
	"github.com/vango-dev/dragkit/pkg/protocol"
	"github.com/vango-dev/dragkit/pkg/vdom"
)

// recorder is the platform of a session. It applies each effect to the
// server-side document and queues the command that replays it on the
// client.
type recorder struct {
	visual   drag.StyleVisual
	scroller drag.OffsetScroller
	pending  []protocol.Command
}

func (r *recorder) add(c protocol.Command) {
	r.pending = append(r.pending, c)
}

// drain returns the queued commands and resets the queue.
func (r *recorder) drain() []protocol.Command {
	cmds := r.pending
	r.pending = nil
	return cmds
}

// NodeMounted implements vdom.MutationObserver.
func (r *recorder) NodeMounted(parent, node *vdom.VNode) {
	r.add(protocol.NewMountCloneCommand(parent.HID, protocol.VNodeToWire(node)))
}

// NodeRemoved implements vdom.MutationObserver.
func (r *recorder) NodeRemoved(_, node *vdom.VNode) {
	r.add(protocol.NewRemoveNodeCommand(node.HID))
}

// Dim implements drag.VisualPort.
func (r *recorder) Dim(n *vdom.VNode) {
	r.visual.Dim(n)
	r.add(protocol.NewSetStyleCommand(n.HID, "opacity", n.StyleValue("opacity")))
}

// Restore implements drag.VisualPort.
func (r *recorder) Restore(n *vdom.VNode) {
	r.visual.Restore(n)
	r.add(protocol.NewSetStyleCommand(n.HID, "opacity", n.StyleValue("opacity")))
}

// PositionOffscreen implements drag.VisualPort. Clone containers are
// positioned before they are mounted, so the styles reach the client inside
// the MountClone node.
func (r *recorder) PositionOffscreen(n *vdom.VNode, deg float64) {
	r.visual.PositionOffscreen(n, deg)
}

// ScrollBy implements drag.Scroller.
func (r *recorder) ScrollBy(viewport *vdom.VNode, dx, dy float64) {
	r.scroller.ScrollBy(viewport, dx, dy)
	r.add(protocol.NewScrollByCommand(viewport.HID, dx, dy))
}

// SetDragImage implements vdom.DataTransfer.
func (r *recorder) SetDragImage(node *vdom.VNode, x, y float64) {
	r.add(protocol.NewSetDragImageCommand(node.HID, x, y))
}

// SetData implements vdom.DataTransfer.
func (r *recorder) SetData(format, data string) {
	r.add(protocol.NewSetDataCommand(format, data))
}
