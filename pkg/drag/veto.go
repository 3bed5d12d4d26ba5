package drag

import "github.com/vango-dev/dragkit/pkg/vdom"

// VetoQuery reports whether any node on the path from handle up to and
// including root declares that it must not start a drag.
type VetoQuery func(handle, root *vdom.VNode) bool

// MarkerVeto is the default VetoQuery. It looks for NoDragAttr. When root is
// not an ancestor of handle the walk continues to the top of the tree.
func MarkerVeto(handle, root *vdom.VNode) bool {
	for n := handle; n != nil; n = n.Parent {
		if n.HasAttr(NoDragAttr) {
			return true
		}
		if n == root {
			return false
		}
	}
	return false
}
