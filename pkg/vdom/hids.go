package vdom

import (
	"strconv"
	"sync/atomic"
)

// HIDGenerator hands out hydration IDs of the form h1, h2, ... A client
// addresses mounted nodes by these IDs, so a generator is shared by every
// mount into one document.
type HIDGenerator struct {
	n atomic.Uint32
}

// NewHIDGenerator returns a generator starting at h1.
func NewHIDGenerator() *HIDGenerator {
	return &HIDGenerator{}
}

// Next returns a fresh ID.
func (g *HIDGenerator) Next() string {
	return "h" + strconv.FormatUint(uint64(g.n.Add(1)), 10)
}

// AssignHIDs gives every element under node without an ID a fresh one.
// Elements that already carry an ID keep it.
func AssignHIDs(node *VNode, gen *HIDGenerator) {
	if node == nil {
		return
	}
	if node.Kind == KindElement && node.HID == "" {
		node.HID = gen.Next()
	}
	for _, c := range node.Children {
		AssignHIDs(c, gen)
	}
}

// FindByHID searches the subtree under node, node included, in document
// order.
func FindByHID(node *VNode, hid string) *VNode {
	if node == nil {
		return nil
	}
	if node.HID == hid {
		return node
	}
	for _, c := range node.Children {
		if n := FindByHID(c, hid); n != nil {
			return n
		}
	}
	return nil
}
