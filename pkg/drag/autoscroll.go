package drag

import (
	"time"

	"github.com/vango-dev/dragkit/pkg/vdom"
	"golang.org/x/time/rate"
)

// Scroller scrolls a viewport element.
type Scroller interface {
	ScrollBy(viewport *vdom.VNode, dx, dy float64)
}

// OffsetScroller implements Scroller by moving the viewport's ScrollLeft.
// Offsets never go below zero.
type OffsetScroller struct{}

// ScrollBy implements Scroller. Vertical deltas are ignored.
func (OffsetScroller) ScrollBy(viewport *vdom.VNode, dx, _ float64) {
	viewport.ScrollLeft += dx
	if viewport.ScrollLeft < 0 {
		viewport.ScrollLeft = 0
	}
}

// Autoscroller scrolls a viewport horizontally when the pointer comes close
// to one of its edges. Evaluations are throttled: a motion signal arriving
// sooner than the interval after the last evaluation is dropped.
//
// A nil *Autoscroller is valid and never scrolls.
type Autoscroller struct {
	viewport     *vdom.VNode
	scroller     Scroller
	limiter      *rate.Limiter
	triggerRange float64
	now          func() time.Time
}

// NewAutoscroller binds an autoscroller to viewport. It returns nil when
// viewport is nil.
func NewAutoscroller(viewport *vdom.VNode, scroller Scroller, interval time.Duration, triggerRange float64, now func() time.Time) *Autoscroller {
	if viewport == nil {
		return nil
	}
	if scroller == nil {
		scroller = OffsetScroller{}
	}
	if now == nil {
		now = time.Now
	}
	return &Autoscroller{
		viewport:     viewport,
		scroller:     scroller,
		limiter:      rate.NewLimiter(rate.Every(interval), 1),
		triggerRange: triggerRange,
		now:          now,
	}
}

// Update evaluates a pointer at clientX and returns the horizontal scroll
// applied, which is zero when nothing happened.
func (a *Autoscroller) Update(clientX float64) float64 {
	if a == nil {
		return 0
	}
	// Every evaluation spends the token, including ones that end up not
	// scrolling because the pointer is mid-viewport or the viewport has no
	// width yet.
	if !a.limiter.AllowN(a.now(), 1) {
		return 0
	}

	box := a.viewport.Layout
	speed := box.Width / 2
	if speed <= 0 {
		return 0
	}

	offset := clientX - box.X
	var dx float64
	switch {
	case offset < a.triggerRange:
		dx = -speed
	case offset > box.Width-a.triggerRange:
		dx = speed
	default:
		return 0
	}

	a.scroller.ScrollBy(a.viewport, dx, 0)
	return dx
}
