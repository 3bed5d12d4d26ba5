// Package drag implements pointer-driven drag and drop on a vdom document.
//
// A Controller attaches drag behavior to elements. Each attachment is a
// small state machine:
//
//	Idle --dragstart--> Dragging --dragend--> Idle
//
// On drag start the controller checks the pointer-down target for a veto
// marker (NoDragAttr), resolves the multi drag selection, builds an offscreen
// clone, mounts it, registers the payload with every drop target, and hands
// the clone to the platform as drag image. Drag motion feeds the edge
// autoscroller. Drag end removes the clone, restores dimmed elements and
// unregisters drop targets, whether or not the drag started.
//
// None of these branches produce errors. Veto, disabled configs, missing
// viewports and empty selections are ordinary outcomes.
//
// Usage:
//
//	reg := drag.NewMapRegistry()
//	c := drag.New(doc, drag.WithRegistry(reg), drag.WithLogger(logger))
//	h := c.Attach(card, drag.Config{
//	    Selector:   ".selected-draggable",
//	    Payload:    drag.Immediate{Value: cardID},
//	    ViewportID: "board",
//	})
//	defer h.Destroy()
package drag
