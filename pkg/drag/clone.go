package drag

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/vango-dev/dragkit/pkg/vdom"
)

// RandSource provides the cosmetic rotation of clones. *rand.Rand from
// math/rand and math/rand/v2 both satisfy it.
type RandSource interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// CloneFactory builds the offscreen drag images.
type CloneFactory struct {
	visual      VisualPort
	rand        RandSource
	maxRotation float64
}

// NewCloneFactory creates a factory. Nil collaborators fall back to
// StyleVisual and the global random source.
func NewCloneFactory(visual VisualPort, r RandSource, maxRotation float64) *CloneFactory {
	if visual == nil {
		visual = StyleVisual{}
	}
	if r == nil {
		r = globalRand{}
	}
	return &CloneFactory{visual: visual, rand: r, maxRotation: maxRotation}
}

// CloneSingle copies node for use as a drag image. Descendants carrying
// ExcludeAttr are stripped from the copy.
func (f *CloneFactory) CloneSingle(node *vdom.VNode, extendClass string) *vdom.VNode {
	c := f.pinnedCopy(node, extendClass)

	var excluded []*vdom.VNode
	for _, child := range c.Children {
		vdom.Walk(child, func(n *vdom.VNode) bool {
			if n.Kind == vdom.KindElement && n.HasAttr(ExcludeAttr) {
				excluded = append(excluded, n)
				return false
			}
			return true
		})
	}
	for _, n := range excluded {
		vdom.Detach(n)
	}

	return f.wrap(c)
}

// CloneMultiple copies every node into a vertical stack.
func (f *CloneFactory) CloneMultiple(nodes []*vdom.VNode, extendClass string) *vdom.VNode {
	stack := vdom.Div()
	stack.SetStyle("display", "flex")
	stack.SetStyle("flex-direction", "column")
	stack.SetStyle("gap", fmt.Sprintf("%dpx", StackGap))

	for _, n := range nodes {
		vdom.AppendChild(stack, f.pinnedCopy(n, extendClass))
	}
	return f.wrap(stack)
}

// pinnedCopy deep copies node and fixes its measured size so the copy does
// not reflow when rendered offscreen and rotated.
func (f *CloneFactory) pinnedCopy(node *vdom.VNode, extendClass string) *vdom.VNode {
	c := vdom.Clone(node)
	if !node.Layout.IsZero() {
		c.SetStyle("width", px(node.Layout.Width))
		c.SetStyle("height", px(node.Layout.Height))
	}
	c.RemoveClass(SelectedClass)
	if extendClass != "" {
		c.AddClass(extendClass)
	}
	return c
}

func (f *CloneFactory) wrap(content *vdom.VNode) *vdom.VNode {
	container := vdom.Div(content)
	f.visual.PositionOffscreen(container, f.rotation())
	return container
}

// rotation returns an angle in [0, maxRotation).
func (f *CloneFactory) rotation() float64 {
	return f.rand.Float64() * f.maxRotation
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
