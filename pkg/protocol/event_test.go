package protocol

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vango-dev/dragkit/pkg/vdom"
)

func TestEventEncodeDecode(t *testing.T) {
	tests := []struct {
		name  string
		event *Event
	}{
		{"pointer down", NewPointerEvent(EventPointerDown, "h3", 12, 40)},
		{"drag start", NewPointerEvent(EventDragStart, "h3", 12, 40)},
		{"drag negative", NewPointerEvent(EventDrag, "h3", -20, 5)},
		{"drag end", NewPointerEvent(EventDragEnd, "h3", 0, 0)},
		{"layout", NewLayoutEvent("h1", 0, 0, 1000, 600)},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.event.Seq = uint64(i + 1)
			got, err := DecodeEvent(EncodeEvent(tt.event))
			if err != nil {
				t.Fatalf("DecodeEvent() error = %v", err)
			}
			if diff := cmp.Diff(tt.event, got); diff != "" {
				t.Errorf("event mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEventMissingPayloadEncodesZeros(t *testing.T) {
	got, err := DecodeEvent(EncodeEvent(&Event{Type: EventDrag, HID: "h1"}))
	if err != nil {
		t.Fatalf("DecodeEvent() error = %v", err)
	}
	if diff := cmp.Diff(&PointerEventData{}, got.Payload); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeEventErrors(t *testing.T) {
	unknown := NewEncoder()
	unknown.WriteUvarint(1)
	unknown.WriteByte(0x01) // click, not part of the drag protocol
	unknown.WriteString("h1")

	negative := NewEncoder()
	EncodeEventTo(negative, NewLayoutEvent("h1", 0, 0, -5, 10))

	truncated := EncodeEvent(NewPointerEvent(EventDrag, "h1", 300, 300))
	truncated = truncated[:len(truncated)-1]

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"unknown type", unknown.Bytes(), ErrInvalidEventType},
		{"negative size", negative.Bytes(), ErrInvalidPayload},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeEvent(tt.data); !errors.Is(err, tt.want) {
				t.Errorf("DecodeEvent() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := DecodeEvent(truncated); err == nil {
		t.Error("DecodeEvent() on truncated input should fail")
	}
}

func TestEventTypeNames(t *testing.T) {
	tests := []struct {
		et      EventType
		name    string
		domName string
	}{
		{EventPointerDown, "PointerDown", vdom.EventPointerDown},
		{EventDragStart, "DragStart", vdom.EventDragStart},
		{EventDrag, "Drag", vdom.EventDrag},
		{EventDragEnd, "DragEnd", vdom.EventDragEnd},
		{EventLayout, "Layout", ""},
		{EventType(0x99), "Unknown", ""},
	}
	for _, tt := range tests {
		if got := tt.et.String(); got != tt.name {
			t.Errorf("EventType(%#x).String() = %q, want %q", uint8(tt.et), got, tt.name)
		}
		if got := tt.et.DOMName(); got != tt.domName {
			t.Errorf("EventType(%#x).DOMName() = %q, want %q", uint8(tt.et), got, tt.domName)
		}
	}
}
