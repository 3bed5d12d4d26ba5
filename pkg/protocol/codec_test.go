package protocol

import (
	"errors"
	"io"
	"testing"
)

func TestEncoderDecoder(t *testing.T) {
	e := NewEncoder()

	e.WriteByte(0x42)
	e.WriteUvarint(12345)
	e.WriteSvarint(-9876)
	e.WriteString("hello world")
	e.WriteBool(true)
	e.WriteBool(false)
	e.WriteUint16(0x1234)

	d := NewDecoder(e.Bytes())

	b, err := d.ReadByte()
	if err != nil || b != 0x42 {
		t.Errorf("ReadByte() = %x, %v; want 0x42, nil", b, err)
	}

	uv, err := d.ReadUvarint()
	if err != nil || uv != 12345 {
		t.Errorf("ReadUvarint() = %d, %v; want 12345, nil", uv, err)
	}

	sv, err := d.ReadSvarint()
	if err != nil || sv != -9876 {
		t.Errorf("ReadSvarint() = %d, %v; want -9876, nil", sv, err)
	}

	s, err := d.ReadString()
	if err != nil || s != "hello world" {
		t.Errorf("ReadString() = %q, %v; want \"hello world\", nil", s, err)
	}

	bt, err := d.ReadBool()
	if err != nil || !bt {
		t.Errorf("ReadBool() = %v, %v; want true, nil", bt, err)
	}
	bf, err := d.ReadBool()
	if err != nil || bf {
		t.Errorf("ReadBool() = %v, %v; want false, nil", bf, err)
	}

	u16, err := d.ReadUint16()
	if err != nil || u16 != 0x1234 {
		t.Errorf("ReadUint16() = %x, %v; want 0x1234, nil", u16, err)
	}

	if !d.EOF() || d.Remaining() != 0 {
		t.Errorf("decoder should be exhausted, %d bytes remaining", d.Remaining())
	}
}

func TestSvarintValues(t *testing.T) {
	tests := []int64{0, 1, -1, 63, -64, 500, -500, 1 << 40, -(1 << 40)}

	for _, v := range tests {
		e := NewEncoder()
		e.WriteSvarint(v)
		got, err := NewDecoder(e.Bytes()).ReadSvarint()
		if err != nil || got != v {
			t.Errorf("svarint %d decoded as %d, %v", v, got, err)
		}
	}
}

func TestEncoderReset(t *testing.T) {
	e := NewEncoder()
	e.WriteString("abc")
	e.Reset()
	if e.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", e.Len())
	}
}

func TestDecoderErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		read func(*Decoder) error
		want error
	}{
		{"empty byte", nil, func(d *Decoder) error { _, err := d.ReadByte(); return err }, io.ErrUnexpectedEOF},
		{"truncated varint", []byte{0x80}, func(d *Decoder) error { _, err := d.ReadUvarint(); return err }, io.ErrUnexpectedEOF},
		{
			"varint overflow",
			[]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01},
			func(d *Decoder) error { _, err := d.ReadUvarint(); return err },
			ErrVarintOverflow,
		},
		{"string past end", []byte{0x05, 'a'}, func(d *Decoder) error { _, err := d.ReadString(); return err }, io.ErrUnexpectedEOF},
		{"short uint16", []byte{0x01}, func(d *Decoder) error { _, err := d.ReadUint16(); return err }, io.ErrUnexpectedEOF},
		{
			"collection too large",
			func() []byte { e := NewEncoder(); e.WriteUvarint(MaxCollectionCount + 1); return e.Bytes() }(),
			func(d *Decoder) error { _, err := d.ReadCollectionCount(); return err },
			ErrCollectionTooLarge,
		},
		{"collection past end", []byte{0x05, 0x00}, func(d *Decoder) error { _, err := d.ReadCollectionCount(); return err }, io.ErrUnexpectedEOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.read(NewDecoder(tt.data)); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReadStringAllocationLimit(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(DefaultMaxAllocation + 1)
	e.WriteBytes(make([]byte, DefaultMaxAllocation+1))

	if _, err := NewDecoder(e.Bytes()).ReadString(); !errors.Is(err, ErrAllocationTooLarge) {
		t.Errorf("ReadString() error = %v, want ErrAllocationTooLarge", err)
	}
}
