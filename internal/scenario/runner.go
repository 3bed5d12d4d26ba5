package scenario

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/vango-dev/dragkit/internal/errors"
	"github.com/vango-dev/dragkit/pkg/drag"
	"github.com/vango-dev/dragkit/pkg/vdom"
)

// Report is the outcome of a scenario run.
type Report struct {
	Name     string
	Steps    int
	Failures []*errors.Error
}

// OK reports whether every expectation held.
func (r *Report) OK() bool { return len(r.Failures) == 0 }

// Runner replays scenarios against an in-memory document. Every platform
// call made by the drag core is written to the output as one line.
type Runner struct {
	out      io.Writer
	logger   *slog.Logger
	dragOpts []drag.Option
}

// NewRunner creates a Runner writing its trace to out. opts are applied to
// every controller after the runner's own collaborators.
func NewRunner(out io.Writer, logger *slog.Logger, opts ...drag.Option) *Runner {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{out: out, logger: logger, dragOpts: opts}
}

// run is the state of one scenario execution.
type run struct {
	sc      *Scenario
	out     io.Writer
	doc     *vdom.Document
	clock   time.Time
	handles []*drag.Handle
	counts  map[string]*targetCount
	mounted map[*vdom.VNode]bool
	last    *vdom.Event
	report  *Report
}

type targetCount struct {
	registered   int
	unregistered int
}

// Run executes sc and returns the report. Unresolvable targets and failed
// expectations are collected as failures; the run continues after them.
func (r *Runner) Run(sc *Scenario) *Report {
	st := &run{
		sc:      sc,
		out:     r.out,
		doc:     vdom.NewDocument(sc.Document.Build()),
		clock:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		counts:  make(map[string]*targetCount),
		mounted: make(map[*vdom.VNode]bool),
		report:  &Report{Name: sc.Name, Steps: len(sc.Steps)},
	}
	st.doc.SetObserver(st)

	reg := drag.NewMapRegistry()
	for _, name := range sc.Targets {
		reg.Add(name, st.target(name))
	}

	opts := []drag.Option{
		drag.WithRegistry(reg),
		drag.WithScroller(st),
		drag.WithClock(func() time.Time { return st.clock }),
		drag.WithLogger(r.logger),
	}
	c := drag.New(st.doc, append(opts, r.dragOpts...)...)

	for _, d := range sc.Draggables {
		el := st.query(d.Element)
		if el == nil {
			st.fail(d.Line, d.Column, "draggable element %q not found", d.Element)
		}
		st.handles = append(st.handles, c.Attach(el, d.Config()))
	}

	for i, step := range sc.Steps {
		fmt.Fprintf(r.out, "step %d: %s %s\n", i+1, step.Event, step.Target)
		st.apply(step)
		if step.Expect != nil {
			st.check(step)
		}
	}

	r.logger.Debug("scenario finished", "name", sc.Name, "steps", len(sc.Steps), "failures", len(st.report.Failures))
	return st.report
}

func (s *run) apply(step Step) {
	switch step.Event {
	case EventWait:
		s.clock = s.clock.Add(step.Wait)

	case EventUpdate:
		cfg := drag.Config{}
		if step.Config != nil {
			cfg = step.Config.Config()
		}
		s.handles[step.Draggable].Update(cfg)

	case EventDestroy:
		s.handles[step.Draggable].Destroy()

	default:
		el := s.query(step.Target)
		if el == nil {
			s.fail(step.Line, step.Column, "no element matches %q", step.Target)
			return
		}
		if step.Event == EventGesture {
			s.dispatch(vdom.EventPointerDown, el, step)
			s.dispatch(vdom.EventDragStart, el, step)
			return
		}
		s.dispatch(step.Event, el, step)
	}
}

func (s *run) dispatch(name string, el *vdom.VNode, step Step) {
	ev := &vdom.Event{
		Type:    name,
		Target:  el,
		ClientX: step.X,
		ClientY: step.Y,
	}
	if name == vdom.EventDragStart {
		ev.DataTransfer = transfer{s.out}
	}
	vdom.Dispatch(ev)
	if ev.DefaultPrevented() {
		fmt.Fprintf(s.out, "  prevent default on %s\n", describe(el))
	}
	s.last = ev
}

func (s *run) check(step Step) {
	e := step.Expect

	if e.Dragging != nil {
		if got := s.handles[step.Draggable].Dragging(); got != *e.Dragging {
			s.fail(step.Line, step.Column, "dragging = %v, want %v", got, *e.Dragging)
		}
	}
	if e.Clones != nil && len(s.mounted) != *e.Clones {
		s.fail(step.Line, step.Column, "clones = %d, want %d", len(s.mounted), *e.Clones)
	}
	for _, name := range s.sc.Targets {
		c := s.counts[name]
		if e.Registered != nil && c.registered != *e.Registered {
			s.fail(step.Line, step.Column, "target %s registered %d times, want %d", name, c.registered, *e.Registered)
		}
		if e.Unregistered != nil && c.unregistered != *e.Unregistered {
			s.fail(step.Line, step.Column, "target %s unregistered %d times, want %d", name, c.unregistered, *e.Unregistered)
		}
	}
	if e.Prevented != nil {
		got := s.last != nil && s.last.DefaultPrevented()
		if got != *e.Prevented {
			s.fail(step.Line, step.Column, "prevented = %v, want %v", got, *e.Prevented)
		}
	}
	for _, id := range sortedKeys(e.ScrollLeft) {
		want := e.ScrollLeft[id]
		el := s.doc.GetElementByID(id)
		if el == nil {
			s.fail(step.Line, step.Column, "no element with id %q", id)
			continue
		}
		if el.ScrollLeft != want {
			s.fail(step.Line, step.Column, "#%s scrollLeft = %v, want %v", id, el.ScrollLeft, want)
		}
	}
	for _, sel := range sortedKeys(e.Opacity) {
		want := e.Opacity[sel]
		el := s.query(sel)
		if el == nil {
			s.fail(step.Line, step.Column, "no element matches %q", sel)
			continue
		}
		if got := el.StyleValue("opacity"); got != want {
			s.fail(step.Line, step.Column, "%s opacity = %q, want %q", sel, got, want)
		}
	}
}

func (s *run) fail(line, col int, format string, args ...any) {
	err := s.sc.locate(errors.New(errors.CodeScenarioStep), line, col).
		WithDetail(fmt.Sprintf(format, args...))
	s.report.Failures = append(s.report.Failures, err)
	fmt.Fprintf(s.out, "  FAIL %s\n", err.Detail)
}

func (s *run) query(sel string) *vdom.VNode {
	if m := vdom.QueryAll(s.doc.Body, sel); len(m) > 0 {
		return m[0]
	}
	return nil
}

func (s *run) target(name string) drag.DropTarget {
	c := &targetCount{}
	s.counts[name] = c
	return drag.FuncTarget{
		OnRegister: func(p drag.Payload) {
			c.registered++
			v, ok := drag.Value(p)
			if !ok {
				v = "<pending>"
			}
			fmt.Fprintf(s.out, "  register %s payload=%v\n", name, v)
		},
		OnUnregister: func() {
			c.unregistered++
			fmt.Fprintf(s.out, "  unregister %s\n", name)
		},
	}
}

// NodeMounted implements vdom.MutationObserver.
func (s *run) NodeMounted(parent, node *vdom.VNode) {
	s.mounted[node] = true
	fmt.Fprintf(s.out, "  mount %s under %s\n", describe(node), describe(parent))
}

// NodeRemoved implements vdom.MutationObserver.
func (s *run) NodeRemoved(parent, node *vdom.VNode) {
	delete(s.mounted, node)
	fmt.Fprintf(s.out, "  remove %s\n", describe(node))
}

// ScrollBy implements drag.Scroller.
func (s *run) ScrollBy(viewport *vdom.VNode, dx, dy float64) {
	drag.OffsetScroller{}.ScrollBy(viewport, dx, dy)
	fmt.Fprintf(s.out, "  scroll %s by %v (scrollLeft=%v)\n", describe(viewport), dx, viewport.ScrollLeft)
}

type transfer struct {
	out io.Writer
}

func (t transfer) SetDragImage(n *vdom.VNode, x, y float64) {
	fmt.Fprintf(t.out, "  drag image %s at (%v,%v)\n", describe(n), x, y)
}

func (t transfer) SetData(format, data string) {
	fmt.Fprintf(t.out, "  data %s=%s\n", format, data)
}

// describe renders a node as tag#id.class (hid).
func describe(n *vdom.VNode) string {
	if n == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString(n.Tag)
	if id := n.ElementID(); id != "" {
		b.WriteString("#" + id)
	}
	for _, c := range n.Classes() {
		b.WriteString("." + c)
	}
	if n.HID != "" {
		b.WriteString(" (" + n.HID + ")")
	}
	return b.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
