package drag

import (
	"io"
	"log/slog"
	"time"

	"github.com/vango-dev/dragkit/pkg/vdom"
)

type fixedRand float64

func (r fixedRand) Float64() float64 { return float64(r) }

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type recordingTarget struct {
	registered   []Payload
	unregistered int
}

func (r *recordingTarget) Register(p Payload) { r.registered = append(r.registered, p) }
func (r *recordingTarget) Unregister()        { r.unregistered++ }

type imageCall struct {
	node *vdom.VNode
	x, y float64
}

type fakeTransfer struct {
	images []imageCall
	data   map[string]string
}

func (f *fakeTransfer) SetDragImage(n *vdom.VNode, x, y float64) {
	f.images = append(f.images, imageCall{n, x, y})
}

func (f *fakeTransfer) SetData(format, data string) {
	if f.data == nil {
		f.data = make(map[string]string)
	}
	f.data[format] = data
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// board builds:
//
//	body
//	  div#board (viewport, 1000px wide)
//	    ul#lane
//	      li#c1.card  (span, button[data-no-drag] > span, div[data-remove-from-draggable])
//	      li#c2.card.selected-draggable
//	      li#c3.card.selected-draggable
//	      li#c4.card.selected-draggable
type board struct {
	doc    *vdom.Document
	view   *vdom.VNode
	lane   *vdom.VNode
	cards  []*vdom.VNode
	title  *vdom.VNode
	button *vdom.VNode
	inner  *vdom.VNode
}

func newBoard() *board {
	b := &board{}
	b.title = vdom.Span(vdom.Text("Card one"))
	b.inner = vdom.Span(vdom.Text("x"))
	b.button = vdom.Button(vdom.Flag(NoDragAttr), b.inner)

	c1 := vdom.Li(vdom.ID("c1"), vdom.Class("card"), vdom.Box(10, 10, 200, 50),
		b.title,
		b.button,
		vdom.Div(vdom.Flag(ExcludeAttr), vdom.Text("badge")),
	)
	c2 := vdom.Li(vdom.ID("c2"), vdom.Class("card", SelectedClass), vdom.Box(10, 70, 200, 40))
	c3 := vdom.Li(vdom.ID("c3"), vdom.Class("card", SelectedClass), vdom.Box(10, 120, 200, 40))
	c4 := vdom.Li(vdom.ID("c4"), vdom.Class("card", SelectedClass), vdom.Box(10, 170, 200, 40))
	b.cards = []*vdom.VNode{c1, c2, c3, c4}

	b.lane = vdom.Ul(vdom.ID("lane"), c1, c2, c3, c4)
	b.view = vdom.Div(vdom.ID("board"), vdom.Box(0, 0, 1000, 600), b.lane)
	b.doc = vdom.NewDocument(vdom.Body(b.view))
	return b
}

func (b *board) controller(reg Registry, opts ...Option) *Controller {
	base := []Option{
		WithRegistry(reg),
		WithRand(fixedRand(0.5)),
		WithLogger(discardLogger()),
	}
	return New(b.doc, append(base, opts...)...)
}

// gesture dispatches pointerdown + dragstart on target and returns the
// dragstart event.
func gesture(target *vdom.VNode, dt vdom.DataTransfer) *vdom.Event {
	vdom.Dispatch(&vdom.Event{Type: vdom.EventPointerDown, Target: target})
	ev := &vdom.Event{Type: vdom.EventDragStart, Target: target, DataTransfer: dt}
	vdom.Dispatch(ev)
	return ev
}

func dragTo(target *vdom.VNode, x float64) {
	vdom.Dispatch(&vdom.Event{Type: vdom.EventDrag, Target: target, ClientX: x})
}

func dragEnd(target *vdom.VNode) *vdom.Event {
	ev := &vdom.Event{Type: vdom.EventDragEnd, Target: target}
	vdom.Dispatch(ev)
	return ev
}

func countInBody(doc *vdom.Document, pred func(*vdom.VNode) bool) int {
	n := 0
	vdom.Walk(doc.Body, func(v *vdom.VNode) bool {
		if pred(v) {
			n++
		}
		return true
	})
	return n
}
