package vdom

// Event type names used by dispatch.
const (
	EventPointerDown = "pointerdown"
	EventDragStart   = "dragstart"
	EventDrag        = "drag"
	EventDragEnd     = "dragend"
)

// event creates an EventHandler with the given name and handler.
// The name is prefixed with "on" (e.g., "dragstart" becomes "ondragstart").
func event(name string, handler any) EventHandler {
	return EventHandler{Event: "on" + name, Handler: handler}
}

// OnPointerDown handles pointerdown events.
func OnPointerDown(handler any) EventHandler { return event(EventPointerDown, handler) }

// OnDragStart handles dragstart events.
func OnDragStart(handler any) EventHandler { return event(EventDragStart, handler) }

// OnDrag handles drag events (fired repeatedly while dragging).
func OnDrag(handler any) EventHandler { return event(EventDrag, handler) }

// OnDragEnd handles dragend events.
func OnDragEnd(handler any) EventHandler { return event(EventDragEnd, handler) }

// DataTransfer is the platform drag buffer available during dragstart.
type DataTransfer interface {
	// SetDragImage uses node as the drag image, with the cursor at (x, y)
	// relative to the node's top-left corner.
	SetDragImage(node *VNode, x, y float64)

	// SetData places data of the given format on the transfer buffer.
	SetData(format, data string)
}

// Event is a dispatched UI event.
type Event struct {
	Type          string
	Target        *VNode
	CurrentTarget *VNode
	ClientX       float64
	ClientY       float64

	// DataTransfer is set for drag events. It may be nil.
	DataTransfer DataTransfer

	defaultPrevented bool
	stopped          bool
}

// PreventDefault suppresses the platform's default action.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// StopPropagation stops the event from reaching further ancestors.
func (e *Event) StopPropagation() { e.stopped = true }

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool { return e.stopped }

// Dispatch delivers ev to its target and then to each ancestor until a
// handler stops propagation. Handlers may be func(*Event) or func().
// It returns the number of handlers invoked.
func Dispatch(ev *Event) int {
	if ev == nil || ev.Target == nil {
		return 0
	}
	key := "on" + ev.Type
	calls := 0
	for n := ev.Target; n != nil; n = n.Parent {
		h, ok := n.Props[key]
		if !ok || h == nil {
			continue
		}
		ev.CurrentTarget = n
		switch fn := h.(type) {
		case func(*Event):
			fn(ev)
			calls++
		case func():
			fn()
			calls++
		}
		if ev.stopped {
			break
		}
	}
	ev.CurrentTarget = nil
	return calls
}
