package drag

import "github.com/vango-dev/dragkit/pkg/vdom"

// ResolveSelection returns the elements that take part in a multi drag of
// el. The query is scoped to el's grandparent, which covers list and grid
// layouts where items share a container one level up. It returns nil when
// selector is empty or invalid, el has no grandparent, or nothing matches.
func ResolveSelection(el *vdom.VNode, selector string) []*vdom.VNode {
	if el == nil || selector == "" || el.Parent == nil || el.Parent.Parent == nil {
		return nil
	}
	matches := vdom.QueryAll(el.Parent.Parent, selector)
	if len(matches) == 0 {
		return nil
	}
	return matches
}
