package scenario

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/dragkit/internal/errors"
	"github.com/vango-dev/dragkit/pkg/drag"
	"github.com/vango-dev/dragkit/pkg/vdom"
)

// Step events.
const (
	EventPointerDown = "pointerdown"
	EventDragStart   = "dragstart"
	EventDrag        = "drag"
	EventDragEnd     = "dragend"
	EventGesture     = "gesture" // pointerdown followed by dragstart
	EventWait        = "wait"
	EventUpdate      = "update"
	EventDestroy     = "destroy"
)

// Scenario is a document, the draggables attached to it, the drop targets
// and a list of steps with expectations.
type Scenario struct {
	Name       string          `yaml:"name"`
	Document   NodeSpec        `yaml:"document"`
	Targets    []string        `yaml:"targets"`
	Draggables []DraggableSpec `yaml:"draggables"`
	Steps      []Step          `yaml:"steps"`

	path string
}

// Path returns the file the scenario was loaded from.
func (s *Scenario) Path() string { return s.path }

// NodeSpec describes one element of the document.
type NodeSpec struct {
	Tag      string            `yaml:"tag"`
	ID       string            `yaml:"id"`
	Class    string            `yaml:"class"`
	Attrs    map[string]string `yaml:"attrs"`
	Text     string            `yaml:"text"`
	Box      []float64         `yaml:"box"` // x, y, width, height
	Children []NodeSpec        `yaml:"children"`
}

// Build creates the vdom tree described by n.
func (n NodeSpec) Build() *vdom.VNode {
	tag := n.Tag
	if tag == "" {
		tag = "div"
	}
	args := make([]any, 0, 4+len(n.Attrs)+len(n.Children))
	if n.ID != "" {
		args = append(args, vdom.ID(n.ID))
	}
	if n.Class != "" {
		args = append(args, vdom.Class(n.Class))
	}
	for k, v := range n.Attrs {
		args = append(args, vdom.Attr{Key: k, Value: v})
	}
	if len(n.Box) == 4 {
		args = append(args, vdom.Box(n.Box[0], n.Box[1], n.Box[2], n.Box[3]))
	}
	if n.Text != "" {
		args = append(args, vdom.Text(n.Text))
	}
	for _, c := range n.Children {
		args = append(args, c.Build())
	}
	return vdom.El(tag, args...)
}

func (n NodeSpec) validate() error {
	if len(n.Box) != 0 && len(n.Box) != 4 {
		return fmt.Errorf("box of <%s> needs 4 values, got %d", n.Tag, len(n.Box))
	}
	for _, c := range n.Children {
		if err := c.validate(); err != nil {
			return err
		}
	}
	return nil
}

// DraggableSpec attaches drag behavior to the element matched by Element.
type DraggableSpec struct {
	Element     string `yaml:"element"`
	Selector    string `yaml:"selector"`
	Viewport    string `yaml:"viewport"`
	Payload     string `yaml:"payload"`
	ExtendClass string `yaml:"extendClass"`
	Disabled    bool   `yaml:"disabled"`

	Line   int `yaml:"-"`
	Column int `yaml:"-"`
}

// UnmarshalYAML records the position of the draggable in the file.
func (d *DraggableSpec) UnmarshalYAML(n *yaml.Node) error {
	type plain DraggableSpec
	if err := n.Decode((*plain)(d)); err != nil {
		return err
	}
	d.Line, d.Column = n.Line, n.Column
	return nil
}

// Config converts the spec to a drag configuration.
func (d DraggableSpec) Config() drag.Config {
	cfg := drag.Config{
		Selector:        d.Selector,
		Disabled:        d.Disabled,
		ViewportID:      d.Viewport,
		ExtendWithClass: d.ExtendClass,
	}
	if d.Payload != "" {
		cfg.Payload = drag.Immediate{Value: d.Payload}
	}
	return cfg
}

// Step is one scripted action followed by optional expectations.
type Step struct {
	Event     string         `yaml:"event"`
	Target    string         `yaml:"target"`
	X         float64        `yaml:"x"`
	Y         float64        `yaml:"y"`
	Wait      time.Duration  `yaml:"wait"`
	Draggable int            `yaml:"draggable"`
	Config    *DraggableSpec `yaml:"config"`
	Expect    *Expect        `yaml:"expect"`

	Line   int `yaml:"-"`
	Column int `yaml:"-"`
}

// UnmarshalYAML records the position of the step in the file.
func (s *Step) UnmarshalYAML(n *yaml.Node) error {
	type plain Step
	if err := n.Decode((*plain)(s)); err != nil {
		return err
	}
	s.Line, s.Column = n.Line, n.Column
	return nil
}

// Expect lists observable state checked after a step. Nil fields are not
// checked.
type Expect struct {
	// Dragging is whether the step's draggable has an active session.
	Dragging *bool `yaml:"dragging"`

	// Clones is the number of mounted nodes added by drags.
	Clones *int `yaml:"clones"`

	// Registered and Unregistered are per-target call counts since start.
	Registered   *int `yaml:"registered"`
	Unregistered *int `yaml:"unregistered"`

	// Prevented is whether the last dispatched event had its default
	// prevented.
	Prevented *bool `yaml:"prevented"`

	// ScrollLeft maps element ids to horizontal scroll offsets.
	ScrollLeft map[string]float64 `yaml:"scrollLeft"`

	// Opacity maps selectors to the inline opacity of the first match.
	Opacity map[string]string `yaml:"opacity"`
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.CodeScenarioRead).Wrap(err)
	}
	return Parse(data, path)
}

// Parse parses scenario YAML. path is used in error locations and may be
// empty.
func Parse(data []byte, path string) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, errors.New(errors.CodeScenarioParse).Wrap(err)
	}
	sc.path = path

	if sc.Document.Tag == "" {
		sc.Document.Tag = "body"
	}
	if err := sc.Document.validate(); err != nil {
		return nil, errors.New(errors.CodeScenarioParse).WithDetail(err.Error())
	}

	for i, d := range sc.Draggables {
		if d.Element == "" {
			return nil, sc.locate(errors.New(errors.CodeScenarioParse), d.Line, d.Column).
				WithDetail(fmt.Sprintf("draggable %d has no element selector", i))
		}
	}

	for i, st := range sc.Steps {
		switch st.Event {
		case EventPointerDown, EventDragStart, EventDrag, EventDragEnd, EventGesture:
			if st.Target == "" {
				return nil, sc.locate(errors.New(errors.CodeScenarioParse), st.Line, st.Column).
					WithDetail(fmt.Sprintf("step %d (%s) needs a target", i+1, st.Event))
			}
		case EventWait:
		case EventUpdate, EventDestroy:
			if st.Draggable < 0 || st.Draggable >= len(sc.Draggables) {
				return nil, sc.locate(errors.New(errors.CodeScenarioParse), st.Line, st.Column).
					WithDetail(fmt.Sprintf("step %d refers to draggable %d, have %d", i+1, st.Draggable, len(sc.Draggables)))
			}
		default:
			return nil, sc.locate(errors.New(errors.CodeScenarioParse), st.Line, st.Column).
				WithDetail(fmt.Sprintf("step %d has unknown event %q", i+1, st.Event)).
				WithSuggestion("Use pointerdown, dragstart, drag, dragend, gesture, wait, update or destroy")
		}
	}

	return &sc, nil
}

func (s *Scenario) locate(e *errors.Error, line, col int) *errors.Error {
	if s.path == "" {
		e.Location = &errors.Location{File: "<input>", Line: line, Column: col}
		return e
	}
	return e.WithLocation(s.path, line, col)
}
