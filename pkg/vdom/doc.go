// Package vdom provides the server-side document model used by dragkit.
//
// The document is an in-memory tree of VNodes that mirrors the client DOM.
// Unlike a render-only virtual DOM, nodes keep a parent link so that event
// dispatch can bubble and drag logic can walk ancestry, and each node carries
// the layout box last reported by the client.
//
// # Core Types
//
// VNode is the fundamental building block representing elements and text.
// Props holds attributes and event handlers. Attr and EventHandler are used
// to build Props.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    Span(Text("Title")),
//	    OnDragStart(handler),
//	)
//
// # Documents and events
//
// A Document wraps a body element, indexes nodes by id and hydration ID, and
// notifies a MutationObserver when nodes are mounted or removed. Dispatch
// delivers an Event to its target and bubbles it through the ancestors until
// a handler stops propagation.
package vdom
