// Package protocol implements the binary wire protocol between a drag client
// and the server.
//
// The client reports pointer and drag events on elements identified by their
// hydration ID (HID). The server answers each event with a batch of commands
// that mirror what the drag core did to its document: mount a clone, set a
// style, set the drag image, fill the transfer buffer, scroll a viewport.
//
// # Wire Format
//
// All messages are framed with a 4-byte header:
//
//	┌─────────────┬──────────────┬───────────────────────────────┐
//	│ Frame Type  │ Flags        │ Payload Length                │
//	│ (1 byte)    │ (1 byte)     │ (2 bytes, big-endian)         │
//	└─────────────┴──────────────┴───────────────────────────────┘
//
// # Frame Types
//
//   - FrameEvent (0x01): Client → Server events
//   - FrameCommands (0x02): Server → Client commands
//   - FrameError (0x05): Error message
//
// # Events
//
//	[Seq: uvarint][Type: byte][HID: len-prefixed][ClientX: svarint][ClientY: svarint]
//
// Layout events carry X, Y, Width and Height instead of the client position.
//
// # Commands
//
//	[Seq: uvarint][Count: uvarint]{[Op: byte][HID: len-prefixed][op data]}
//
// Decoding enforces allocation, collection and depth limits so a malicious
// client cannot make the server allocate unbounded memory.
package protocol
