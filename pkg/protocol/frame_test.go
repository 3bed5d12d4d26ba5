package protocol

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestFrameEncodeDecode(t *testing.T) {
	tests := []struct {
		name  string
		frame *Frame
	}{
		{"empty event", NewFrame(FrameEvent, []byte{})},
		{"commands", NewFrame(FrameCommands, []byte{0x01, 0x02, 0x03})},
		{"error with flag", &Frame{Type: FrameError, Flags: FlagFinal, Payload: []byte("oops")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.frame.Encode()
			if len(data) != FrameHeaderSize+len(tt.frame.Payload) {
				t.Errorf("encoded length = %d", len(data))
			}

			got, err := DecodeFrame(data)
			if err != nil {
				t.Fatalf("DecodeFrame() error = %v", err)
			}
			if got.Type != tt.frame.Type || got.Flags != tt.frame.Flags || !bytes.Equal(got.Payload, tt.frame.Payload) {
				t.Errorf("DecodeFrame() = %+v, want %+v", got, tt.frame)
			}
		})
	}
}

func TestDecodeFrameErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short header", []byte{0x01, 0x00}, io.ErrUnexpectedEOF},
		{"short payload", []byte{0x01, 0x00, 0x00, 0x05, 0x01}, io.ErrUnexpectedEOF},
		{"unknown type", []byte{0x00, 0x00, 0x00, 0x00}, ErrInvalidFrameType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeFrame(tt.data); !errors.Is(err, tt.want) {
				t.Errorf("DecodeFrame() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReadWriteFrame(t *testing.T) {
	var buf bytes.Buffer
	frames := []*Frame{
		NewFrame(FrameEvent, EncodeEvent(NewPointerEvent(EventDragStart, "h3", 1, 2))),
		NewFrame(FrameCommands, EncodeCommands(&CommandsFrame{Seq: 1})),
	}
	for _, f := range frames {
		if err := WriteFrame(&buf, f); err != nil {
			t.Fatalf("WriteFrame() error = %v", err)
		}
	}

	for i, want := range frames {
		got, err := ReadFrame(&buf)
		if err != nil {
			t.Fatalf("ReadFrame() #%d error = %v", i, err)
		}
		if got.Type != want.Type || !bytes.Equal(got.Payload, want.Payload) {
			t.Errorf("frame %d = %+v, want %+v", i, got, want)
		}
	}

	if _, err := ReadFrame(&buf); err != io.EOF {
		t.Errorf("ReadFrame() on empty reader = %v, want io.EOF", err)
	}
}

func TestWriteFrameTooLarge(t *testing.T) {
	f := NewFrame(FrameCommands, make([]byte, MaxPayloadSize+1))
	if err := WriteFrame(io.Discard, f); !errors.Is(err, ErrFrameTooLarge) {
		t.Errorf("WriteFrame() error = %v, want ErrFrameTooLarge", err)
	}
}

func TestFrameTypeString(t *testing.T) {
	tests := []struct {
		ft   FrameType
		want string
	}{
		{FrameEvent, "Event"},
		{FrameCommands, "Commands"},
		{FrameError, "Error"},
		{FrameType(0x42), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.ft.String(); got != tt.want {
			t.Errorf("FrameType(%d).String() = %q, want %q", tt.ft, got, tt.want)
		}
	}
}

func TestFrameFlagsHas(t *testing.T) {
	if !FlagFinal.Has(FlagFinal) {
		t.Error("FlagFinal.Has(FlagFinal) = false")
	}
	if FrameFlags(0).Has(FlagFinal) {
		t.Error("zero flags should have nothing")
	}
}
