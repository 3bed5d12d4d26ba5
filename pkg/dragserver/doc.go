// Package dragserver serves drag sessions over a websocket.
//
// Each connection gets its own Session: a document built by the caller, a
// drag controller bound to it and a recorder that turns every platform
// effect of the drag core into a protocol command. The client sends event
// frames and receives one command frame per dispatched event:
//
//	client                          server
//	  │── Event(seq=7, DragStart) ──▶│  dispatch on the session document
//	  │◀── Commands(seq=7, ...) ─────│  MountClone, SetStyle, SetData, ...
//
// Layout events update element boxes and get no reply. Malformed input is
// answered with an error frame and the connection stays open.
package dragserver
