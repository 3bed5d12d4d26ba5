package protocol

import (
	"sort"

	"github.com/vango-dev/dragkit/pkg/vdom"
)

// VNodeWire is the wire format for VNodes.
// It contains only serializable data (no event handlers or layout).
type VNodeWire struct {
	Kind     vdom.VKind        // Node type
	Tag      string            // Element tag name
	HID      string            // Hydration ID
	Attrs    map[string]string // String attributes only (no handlers)
	Children []*VNodeWire      // Child nodes
	Text     string            // For Text nodes
}

// VNodeToWire converts a vdom.VNode to wire format.
// Event handlers and internal props are stripped.
func VNodeToWire(node *vdom.VNode) *VNodeWire {
	if node == nil {
		return nil
	}

	w := &VNodeWire{
		Kind: node.Kind,
		Tag:  node.Tag,
		HID:  node.HID,
		Text: node.Text,
	}

	if node.Props != nil {
		if attrs := vdom.EffectiveAttrs(node); len(attrs) > 0 {
			w.Attrs = attrs
		}
	}

	if len(node.Children) > 0 {
		w.Children = make([]*VNodeWire, 0, len(node.Children))
		for _, child := range node.Children {
			if child != nil {
				w.Children = append(w.Children, VNodeToWire(child))
			}
		}
	}

	return w
}

// EncodeVNodeWire encodes a VNodeWire using the provided encoder.
// Attributes are written in key order so equal trees encode identically.
func EncodeVNodeWire(e *Encoder, node *VNodeWire) {
	if node == nil {
		e.WriteByte(0xFF) // Null marker
		return
	}

	e.WriteByte(byte(node.Kind))

	switch node.Kind {
	case vdom.KindElement:
		e.WriteString(node.Tag)
		e.WriteString(node.HID)

		keys := make([]string, 0, len(node.Attrs))
		for k := range node.Attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		e.WriteUvarint(uint64(len(keys)))
		for _, k := range keys {
			e.WriteString(k)
			e.WriteString(node.Attrs[k])
		}

		e.WriteUvarint(uint64(len(node.Children)))
		for _, child := range node.Children {
			EncodeVNodeWire(e, child)
		}

	case vdom.KindText:
		e.WriteString(node.Text)
	}
}

// DecodeVNodeWire decodes a VNodeWire from the decoder.
// Trees deeper than MaxVNodeDepth are rejected.
func DecodeVNodeWire(d *Decoder) (*VNodeWire, error) {
	return decodeVNodeWireWithDepth(d, 0)
}

func decodeVNodeWireWithDepth(d *Decoder, depth int) (*VNodeWire, error) {
	if err := checkDepth(depth, MaxVNodeDepth); err != nil {
		return nil, err
	}

	kindByte, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	if kindByte == 0xFF {
		return nil, nil
	}

	node := &VNodeWire{
		Kind: vdom.VKind(kindByte),
	}

	switch node.Kind {
	case vdom.KindElement:
		if node.Tag, err = d.ReadString(); err != nil {
			return nil, err
		}
		if node.HID, err = d.ReadString(); err != nil {
			return nil, err
		}

		attrCount, err := d.ReadCollectionCount()
		if err != nil {
			return nil, err
		}
		if attrCount > 0 {
			node.Attrs = make(map[string]string, attrCount)
			for i := 0; i < attrCount; i++ {
				key, err := d.ReadString()
				if err != nil {
					return nil, err
				}
				value, err := d.ReadString()
				if err != nil {
					return nil, err
				}
				node.Attrs[key] = value
			}
		}

		childCount, err := d.ReadCollectionCount()
		if err != nil {
			return nil, err
		}
		if childCount > 0 {
			node.Children = make([]*VNodeWire, childCount)
			for i := 0; i < childCount; i++ {
				child, err := decodeVNodeWireWithDepth(d, depth+1)
				if err != nil {
					return nil, err
				}
				node.Children[i] = child
			}
		}

	case vdom.KindText:
		if node.Text, err = d.ReadString(); err != nil {
			return nil, err
		}

	default:
		return nil, ErrInvalidPayload
	}

	return node, nil
}

// ToVNode converts a VNodeWire back to a vdom.VNode with parent links set.
// Event handlers cannot be restored from wire format.
func (w *VNodeWire) ToVNode() *vdom.VNode {
	if w == nil {
		return nil
	}

	node := &vdom.VNode{
		Kind: w.Kind,
		Tag:  w.Tag,
		HID:  w.HID,
		Text: w.Text,
	}

	if len(w.Attrs) > 0 {
		node.Props = make(vdom.Props, len(w.Attrs))
		for k, v := range w.Attrs {
			node.Props[k] = v
		}
	}

	for _, child := range w.Children {
		if c := child.ToVNode(); c != nil {
			vdom.AppendChild(node, c)
		}
	}

	return node
}

// NewTextWire creates a text VNodeWire.
func NewTextWire(text string) *VNodeWire {
	return &VNodeWire{
		Kind: vdom.KindText,
		Text: text,
	}
}

// NewElementWire creates an element VNodeWire.
func NewElementWire(tag string, attrs map[string]string, children ...*VNodeWire) *VNodeWire {
	return &VNodeWire{
		Kind:     vdom.KindElement,
		Tag:      tag,
		Attrs:    attrs,
		Children: children,
	}
}
