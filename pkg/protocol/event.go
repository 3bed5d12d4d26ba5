package protocol

import (
	"errors"

	"github.com/vango-dev/dragkit/pkg/vdom"
)

// EventType identifies the type of client event.
type EventType uint8

// Event type constants.
const (
	EventPointerDown EventType = 0x03

	// EventLayout reports the measured box of an element.
	EventLayout EventType = 0x31

	EventDragStart EventType = 0x50
	EventDragEnd   EventType = 0x51
	EventDrag      EventType = 0x53
)

// String returns the string representation of the event type.
func (et EventType) String() string {
	switch et {
	case EventPointerDown:
		return "PointerDown"
	case EventLayout:
		return "Layout"
	case EventDragStart:
		return "DragStart"
	case EventDragEnd:
		return "DragEnd"
	case EventDrag:
		return "Drag"
	default:
		return "Unknown"
	}
}

// DOMName returns the event name used by vdom listeners, or "" for events
// that are not dispatched.
func (et EventType) DOMName() string {
	switch et {
	case EventPointerDown:
		return vdom.EventPointerDown
	case EventDragStart:
		return vdom.EventDragStart
	case EventDragEnd:
		return vdom.EventDragEnd
	case EventDrag:
		return vdom.EventDrag
	default:
		return ""
	}
}

// PointerEventData is the payload of pointer and drag events.
type PointerEventData struct {
	ClientX int
	ClientY int
}

// LayoutEventData is the payload of EventLayout.
type LayoutEventData struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Event represents a decoded event from the client.
type Event struct {
	Seq     uint64
	Type    EventType
	HID     string
	Payload any // *PointerEventData or *LayoutEventData
}

// Event decoding errors.
var (
	ErrInvalidEventType = errors.New("protocol: invalid event type")
	ErrInvalidPayload   = errors.New("protocol: invalid event payload")
)

// EncodeEvent encodes an event to bytes.
func EncodeEvent(e *Event) []byte {
	enc := NewEncoder()
	EncodeEventTo(enc, e)
	return enc.Bytes()
}

// EncodeEventTo encodes an event using the provided encoder. A missing
// payload is encoded as zeros.
func EncodeEventTo(enc *Encoder, e *Event) {
	enc.WriteUvarint(e.Seq)
	enc.WriteByte(byte(e.Type))
	enc.WriteString(e.HID)

	switch e.Type {
	case EventPointerDown, EventDragStart, EventDrag, EventDragEnd:
		data, _ := e.Payload.(*PointerEventData)
		if data == nil {
			data = &PointerEventData{}
		}
		enc.WriteSvarint(int64(data.ClientX))
		enc.WriteSvarint(int64(data.ClientY))

	case EventLayout:
		data, _ := e.Payload.(*LayoutEventData)
		if data == nil {
			data = &LayoutEventData{}
		}
		enc.WriteSvarint(int64(data.X))
		enc.WriteSvarint(int64(data.Y))
		enc.WriteSvarint(int64(data.Width))
		enc.WriteSvarint(int64(data.Height))
	}
}

// DecodeEvent decodes an event from bytes.
func DecodeEvent(data []byte) (*Event, error) {
	d := NewDecoder(data)
	return DecodeEventFrom(d)
}

// DecodeEventFrom decodes an event from a decoder.
func DecodeEventFrom(d *Decoder) (*Event, error) {
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}

	typeByte, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	eventType := EventType(typeByte)

	hid, err := d.ReadString()
	if err != nil {
		return nil, err
	}

	e := &Event{
		Seq:  seq,
		Type: eventType,
		HID:  hid,
	}

	switch eventType {
	case EventPointerDown, EventDragStart, EventDrag, EventDragEnd:
		x, err := d.ReadInt()
		if err != nil {
			return nil, err
		}
		y, err := d.ReadInt()
		if err != nil {
			return nil, err
		}
		e.Payload = &PointerEventData{ClientX: x, ClientY: y}

	case EventLayout:
		var vals [4]int
		for i := range vals {
			if vals[i], err = d.ReadInt(); err != nil {
				return nil, err
			}
		}
		if vals[2] < 0 || vals[3] < 0 {
			return nil, ErrInvalidPayload
		}
		e.Payload = &LayoutEventData{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}

	default:
		return nil, ErrInvalidEventType
	}

	return e, nil
}

// NewPointerEvent creates a pointer or drag event.
func NewPointerEvent(t EventType, hid string, x, y int) *Event {
	return &Event{Type: t, HID: hid, Payload: &PointerEventData{ClientX: x, ClientY: y}}
}

// NewLayoutEvent creates a layout report.
func NewLayoutEvent(hid string, x, y, width, height int) *Event {
	return &Event{Type: EventLayout, HID: hid, Payload: &LayoutEventData{X: x, Y: y, Width: width, Height: height}}
}
