package vdom

// MutationObserver is notified when the document tree changes through the
// Document API. Direct edits to nodes are not observed.
type MutationObserver interface {
	NodeMounted(parent, node *VNode)
	NodeRemoved(parent, node *VNode)
}

// Document is a mounted tree rooted at a body element.
type Document struct {
	Body *VNode

	hids     *HIDGenerator
	observer MutationObserver
}

// NewDocument wraps body and assigns HIDs to every element in it.
// A nil body is replaced by an empty <body>.
func NewDocument(body *VNode) *Document {
	if body == nil {
		body = Body()
	}
	d := &Document{Body: body, hids: NewHIDGenerator()}
	AssignHIDs(body, d.hids)
	return d
}

// SetObserver installs the mutation observer. Pass nil to remove it.
func (d *Document) SetObserver(o MutationObserver) {
	d.observer = o
}

// Append mounts node as the last child of parent and assigns HIDs to the
// new subtree.
func (d *Document) Append(parent, node *VNode) {
	if parent == nil || node == nil {
		return
	}
	AppendChild(parent, node)
	AssignHIDs(node, d.hids)
	if d.observer != nil {
		d.observer.NodeMounted(parent, node)
	}
}

// Remove unmounts node. It reports false when node was not attached.
func (d *Document) Remove(node *VNode) bool {
	if node == nil || node.Parent == nil {
		return false
	}
	parent := node.Parent
	if !RemoveChild(parent, node) {
		return false
	}
	if d.observer != nil {
		d.observer.NodeRemoved(parent, node)
	}
	return true
}

// Contains reports whether node is attached to this document.
func (d *Document) Contains(node *VNode) bool {
	return node != nil && Contains(d.Body, node)
}

// GetElementByID returns the first element with the given id attribute.
func (d *Document) GetElementByID(id string) *VNode {
	if id == "" {
		return nil
	}
	var found *VNode
	Walk(d.Body, func(n *VNode) bool {
		if found != nil {
			return false
		}
		if n.Kind == KindElement && n.ElementID() == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindByHID returns the mounted node with the given hydration ID.
func (d *Document) FindByHID(hid string) *VNode {
	if hid == "" {
		return nil
	}
	return FindByHID(d.Body, hid)
}
