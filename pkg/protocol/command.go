package protocol

import "math"

// CommandOp identifies a server command.
type CommandOp uint8

// Command operation codes.
const (
	CmdMountClone     CommandOp = 0x01 // Append a node under ParentID
	CmdRemoveNode     CommandOp = 0x02 // Remove HID from the document
	CmdSetStyle       CommandOp = 0x03 // Set inline style Key to Value ("" removes)
	CmdSetDragImage   CommandOp = 0x04 // Use HID as drag image at cursor offset X,Y
	CmdSetData        CommandOp = 0x05 // Put Value into the transfer buffer under format Key
	CmdScrollBy       CommandOp = 0x06 // Scroll HID by X,Y pixels
	CmdPreventDefault CommandOp = 0x07 // Cancel the native action of the current event
)

// String returns the string representation of the command op.
func (op CommandOp) String() string {
	switch op {
	case CmdMountClone:
		return "MountClone"
	case CmdRemoveNode:
		return "RemoveNode"
	case CmdSetStyle:
		return "SetStyle"
	case CmdSetDragImage:
		return "SetDragImage"
	case CmdSetData:
		return "SetData"
	case CmdScrollBy:
		return "ScrollBy"
	case CmdPreventDefault:
		return "PreventDefault"
	default:
		return "Unknown"
	}
}

// Command is a single platform operation the client applies.
type Command struct {
	Op       CommandOp
	HID      string     // Target element's hydration ID
	Key      string     // Style property or data format
	Value    string     // Style value or data
	ParentID string     // Parent HID for MountClone
	Node     *VNodeWire // For MountClone
	X        int        // SetDragImage offset, ScrollBy delta
	Y        int        // SetDragImage offset, ScrollBy delta
}

// CommandsFrame is a batch of commands produced by one client event.
type CommandsFrame struct {
	Seq      uint64
	Commands []Command
}

// EncodeCommands encodes a commands frame to bytes.
func EncodeCommands(cf *CommandsFrame) []byte {
	e := NewEncoder()
	EncodeCommandsTo(e, cf)
	return e.Bytes()
}

// EncodeCommandsTo encodes a commands frame using the provided encoder.
func EncodeCommandsTo(e *Encoder, cf *CommandsFrame) {
	e.WriteUvarint(cf.Seq)
	e.WriteUvarint(uint64(len(cf.Commands)))
	for i := range cf.Commands {
		encodeCommand(e, &cf.Commands[i])
	}
}

func encodeCommand(e *Encoder, c *Command) {
	e.WriteByte(byte(c.Op))
	e.WriteString(c.HID)

	switch c.Op {
	case CmdMountClone:
		e.WriteString(c.ParentID)
		EncodeVNodeWire(e, c.Node)

	case CmdRemoveNode, CmdPreventDefault:
		// No additional data

	case CmdSetStyle, CmdSetData:
		e.WriteString(c.Key)
		e.WriteString(c.Value)

	case CmdSetDragImage, CmdScrollBy:
		e.WriteSvarint(int64(c.X))
		e.WriteSvarint(int64(c.Y))
	}
}

// DecodeCommands decodes a commands frame from bytes.
func DecodeCommands(data []byte) (*CommandsFrame, error) {
	return DecodeCommandsFrom(NewDecoder(data))
}

// DecodeCommandsFrom decodes a commands frame from a decoder.
func DecodeCommandsFrom(d *Decoder) (*CommandsFrame, error) {
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}

	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}

	commands := make([]Command, count)
	for i := range commands {
		if err := decodeCommand(d, &commands[i]); err != nil {
			return nil, err
		}
	}

	return &CommandsFrame{
		Seq:      seq,
		Commands: commands,
	}, nil
}

func decodeCommand(d *Decoder, c *Command) error {
	opByte, err := d.ReadByte()
	if err != nil {
		return err
	}
	c.Op = CommandOp(opByte)

	if c.HID, err = d.ReadString(); err != nil {
		return err
	}

	switch c.Op {
	case CmdMountClone:
		if c.ParentID, err = d.ReadString(); err != nil {
			return err
		}
		if c.Node, err = DecodeVNodeWire(d); err != nil {
			return err
		}

	case CmdRemoveNode, CmdPreventDefault:

	case CmdSetStyle, CmdSetData:
		if c.Key, err = d.ReadString(); err != nil {
			return err
		}
		if c.Value, err = d.ReadString(); err != nil {
			return err
		}

	case CmdSetDragImage, CmdScrollBy:
		if c.X, err = d.ReadInt(); err != nil {
			return err
		}
		if c.Y, err = d.ReadInt(); err != nil {
			return err
		}

	default:
		return ErrInvalidPayload
	}
	return nil
}

// NewMountCloneCommand creates a MountClone command.
func NewMountCloneCommand(parentID string, node *VNodeWire) Command {
	hid := ""
	if node != nil {
		hid = node.HID
	}
	return Command{Op: CmdMountClone, HID: hid, ParentID: parentID, Node: node}
}

// NewRemoveNodeCommand creates a RemoveNode command.
func NewRemoveNodeCommand(hid string) Command {
	return Command{Op: CmdRemoveNode, HID: hid}
}

// NewSetStyleCommand creates a SetStyle command.
func NewSetStyleCommand(hid, property, value string) Command {
	return Command{Op: CmdSetStyle, HID: hid, Key: property, Value: value}
}

// NewSetDragImageCommand creates a SetDragImage command.
func NewSetDragImageCommand(hid string, x, y float64) Command {
	return Command{Op: CmdSetDragImage, HID: hid, X: round(x), Y: round(y)}
}

// NewSetDataCommand creates a SetData command.
func NewSetDataCommand(format, data string) Command {
	return Command{Op: CmdSetData, Key: format, Value: data}
}

// NewScrollByCommand creates a ScrollBy command.
func NewScrollByCommand(hid string, dx, dy float64) Command {
	return Command{Op: CmdScrollBy, HID: hid, X: round(dx), Y: round(dy)}
}

// NewPreventDefaultCommand creates a PreventDefault command for the event
// that targeted hid.
func NewPreventDefaultCommand(hid string) Command {
	return Command{Op: CmdPreventDefault, HID: hid}
}

func round(v float64) int {
	return int(math.Round(v))
}
