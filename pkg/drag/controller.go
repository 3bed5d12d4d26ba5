package drag

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vango-dev/dragkit/pkg/vdom"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "dragkit"

// TransferFormat and TransferData are placed on the transfer buffer at drag
// start. Some platforms refuse to start a drag with an empty buffer.
const (
	TransferFormat = "text/plain"
	TransferData   = "dragkit"
)

// Controller owns the collaborators shared by every draggable element of a
// document. It is not safe for concurrent use; all events of a document must
// be dispatched from one goroutine.
type Controller struct {
	doc          *vdom.Document
	registry     *RegistryClient
	clones       *CloneFactory
	visual       VisualPort
	scroller     Scroller
	veto         VetoQuery
	rand         RandSource
	now          func() time.Time
	interval     time.Duration
	triggerRange float64
	maxRotation  float64
	logger       *slog.Logger
	metrics      *Metrics
	tracer       trace.Tracer
}

// Option configures a Controller.
type Option func(*Controller)

// WithRegistry sets the drop target registry.
func WithRegistry(r Registry) Option {
	return func(c *Controller) { c.registry = NewRegistryClient(r) }
}

// WithVisual sets the visual state port.
func WithVisual(v VisualPort) Option {
	return func(c *Controller) { c.visual = v }
}

// WithScroller sets the viewport scroller.
func WithScroller(s Scroller) Option {
	return func(c *Controller) { c.scroller = s }
}

// WithRand sets the random source for clone rotation.
func WithRand(r RandSource) Option {
	return func(c *Controller) { c.rand = r }
}

// WithClock sets the clock used by the autoscroll throttle.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithAutoscroll sets the autoscroll throttle interval and trigger range.
func WithAutoscroll(interval time.Duration, triggerRange float64) Option {
	return func(c *Controller) {
		c.interval = interval
		c.triggerRange = triggerRange
	}
}

// WithMaxRotation sets the upper bound of the clone rotation in degrees.
func WithMaxRotation(deg float64) Option {
	return func(c *Controller) { c.maxRotation = deg }
}

// WithVeto replaces the veto capability query.
func WithVeto(q VetoQuery) Option {
	return func(c *Controller) { c.veto = q }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(m *Metrics) Option {
	return func(c *Controller) { c.metrics = m }
}

// WithTracer sets the tracer used for drag session spans.
func WithTracer(t trace.Tracer) Option {
	return func(c *Controller) { c.tracer = t }
}

// New creates a Controller for doc. Clones are mounted into doc.Body and
// viewports are looked up in doc. A nil doc gets an empty body.
func New(doc *vdom.Document, opts ...Option) *Controller {
	if doc == nil {
		doc = vdom.NewDocument(nil)
	}
	c := &Controller{
		doc:          doc,
		registry:     NewRegistryClient(nil),
		visual:       StyleVisual{},
		scroller:     OffsetScroller{},
		veto:         MarkerVeto,
		now:          time.Now,
		interval:     DefaultScrollInterval,
		triggerRange: DefaultTriggerRange,
		maxRotation:  DefaultMaxRotation,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.tracer == nil {
		c.tracer = otel.Tracer(tracerName)
	}
	c.clones = NewCloneFactory(c.visual, c.rand, c.maxRotation)
	return c
}

// Document returns the controller's document.
func (c *Controller) Document() *vdom.Document {
	return c.doc
}

// session is the state between drag start and drag end.
type session struct {
	id     string
	handle *vdom.VNode
	clone  *vdom.VNode
	dimmed []*vdom.VNode
	scroll *Autoscroller
	span   trace.Span
}

// Handle is the attachment of drag behavior to one element.
type Handle struct {
	c   *Controller
	el  *vdom.VNode
	cfg Config

	installed bool
	destroyed bool

	// prevDraggable restores the element's own draggable attribute.
	prevDraggable any
	hadDraggable  bool

	pointerTarget *vdom.VNode
	session       *session
}

// Attach installs drag behavior on el. A disabled config installs nothing;
// the returned Handle can still be updated or destroyed.
func (c *Controller) Attach(el *vdom.VNode, cfg Config) *Handle {
	h := &Handle{c: c, el: el}
	h.install(cfg)
	return h
}

// Update replaces the configuration. Current listeners are removed before
// the new configuration is installed. An active session is kept so that the
// coming drag end still cleans it up, unless the new configuration disables
// the handle, in which case the session ends now.
func (h *Handle) Update(cfg Config) {
	if h.destroyed {
		return
	}
	h.uninstall()
	if cfg.Disabled && h.session != nil {
		h.endSession()
	}
	h.install(cfg)
}

// Destroy removes all listeners and ends an active session. It is safe to
// call more than once.
func (h *Handle) Destroy() {
	if h.destroyed {
		return
	}
	h.uninstall()
	if h.session != nil {
		h.endSession()
	}
	h.destroyed = true
}

// Config returns the active configuration.
func (h *Handle) Config() Config { return h.cfg }

// Installed reports whether listeners are currently attached.
func (h *Handle) Installed() bool { return h.installed }

// Dragging reports whether a drag session is active.
func (h *Handle) Dragging() bool { return h.session != nil }

// Clone returns the mounted clone of the active session, if any.
func (h *Handle) Clone() *vdom.VNode {
	if h.session == nil {
		return nil
	}
	return h.session.clone
}

func (h *Handle) install(cfg Config) {
	h.cfg = cfg
	if h.el == nil {
		return
	}
	if cfg.Disabled {
		h.c.logger.Debug("drag disabled", "element", h.el.HID)
		return
	}

	h.prevDraggable, h.hadDraggable = h.el.Props["draggable"]
	h.el.SetAttr("draggable", "true")
	h.el.SetAttr("on"+vdom.EventPointerDown, h.onPointerDown)
	h.el.SetAttr("on"+vdom.EventDragStart, h.onDragStart)
	h.el.SetAttr("on"+vdom.EventDrag, h.onDrag)
	h.el.SetAttr("on"+vdom.EventDragEnd, h.onDragEnd)
	h.installed = true
}

func (h *Handle) uninstall() {
	if !h.installed {
		return
	}
	h.el.RemoveAttr("on" + vdom.EventPointerDown)
	h.el.RemoveAttr("on" + vdom.EventDragStart)
	h.el.RemoveAttr("on" + vdom.EventDrag)
	h.el.RemoveAttr("on" + vdom.EventDragEnd)
	if h.hadDraggable {
		h.el.SetAttr("draggable", h.prevDraggable)
	} else {
		h.el.RemoveAttr("draggable")
	}
	h.pointerTarget = nil
	h.installed = false
}

func (h *Handle) onPointerDown(e *vdom.Event) {
	h.pointerTarget = e.Target
}

func (h *Handle) onDragStart(e *vdom.Event) {
	c := h.c

	if h.session != nil {
		c.logger.Warn("drag start during active session", "session", h.session.id)
		h.endSession()
	}

	handle := h.pointerTarget
	if handle == nil {
		handle = e.Target
	}
	if c.veto(handle, h.el) {
		e.StopPropagation()
		e.PreventDefault()
		c.metrics.sessionVetoed()
		_, span := c.tracer.Start(context.Background(), "drag.session",
			trace.WithAttributes(attribute.Bool("drag.vetoed", true)))
		span.End()
		c.logger.Debug("drag vetoed", "element", h.el.HID, "handle", handle.HID)
		return
	}

	cfg := h.cfg
	s := &session{id: uuid.NewString(), handle: handle}

	var selected []*vdom.VNode
	if cfg.Selector != "" {
		selected = ResolveSelection(h.el, cfg.Selector)
	}
	if len(selected) > 0 {
		s.clone = c.clones.CloneMultiple(selected, cfg.ExtendWithClass)
		for _, n := range selected {
			c.visual.Dim(n)
		}
		s.dimmed = selected
	} else {
		s.clone = c.clones.CloneSingle(h.el, cfg.ExtendWithClass)
	}

	c.doc.Append(c.doc.Body, s.clone)

	targets := c.registry.BroadcastStart(cfg.Payload)
	c.metrics.notified("register", targets)

	if e.DataTransfer != nil {
		e.DataTransfer.SetData(TransferFormat, TransferData)
		e.DataTransfer.SetDragImage(s.clone, ClonePadding, ClonePadding)
	}

	if cfg.ViewportID != "" {
		s.scroll = NewAutoscroller(c.doc.GetElementByID(cfg.ViewportID), c.scroller, c.interval, c.triggerRange, c.now)
	}

	_, s.span = c.tracer.Start(context.Background(), "drag.session", trace.WithAttributes(
		attribute.String("drag.session_id", s.id),
		attribute.Bool("drag.multi", len(selected) > 0),
		attribute.Int("drag.selection_size", len(selected)),
		attribute.Int("drag.targets", targets),
		attribute.Bool("drag.vetoed", false),
	))

	h.session = s
	c.metrics.sessionStarted()
	c.logger.Debug("drag started",
		"session", s.id,
		"element", h.el.HID,
		"selected", len(selected),
		"targets", targets,
		"autoscroll", s.scroll != nil)

	e.StopPropagation()
}

func (h *Handle) onDrag(e *vdom.Event) {
	s := h.session
	if s == nil {
		return
	}
	if dx := s.scroll.Update(e.ClientX); dx != 0 {
		h.c.metrics.autoscrolled(dx)
		h.c.logger.Debug("autoscroll", "session", s.id, "dx", dx)
	}
}

func (h *Handle) onDragEnd(e *vdom.Event) {
	h.endSession()
	e.StopPropagation()
}

// endSession restores the document and notifies drop targets. It runs even
// when no session was started.
func (h *Handle) endSession() {
	c := h.c
	s := h.session
	h.session = nil
	h.pointerTarget = nil

	if s != nil {
		if s.clone != nil {
			c.doc.Remove(s.clone)
		}
		for _, n := range s.dimmed {
			c.visual.Restore(n)
		}
		c.metrics.sessionEnded()
	}

	targets := c.registry.BroadcastEnd()
	c.metrics.notified("unregister", targets)

	if s != nil {
		s.span.End()
		c.logger.Debug("drag ended", "session", s.id, "targets", targets)
	} else {
		c.logger.Debug("drag ended without session", "targets", targets)
	}
}
