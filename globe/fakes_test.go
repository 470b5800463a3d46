package globe

import (
	"github.com/lucasb-eyer/go-colorful"
)

type drawCall struct {
	op    string
	alpha float64
	args  []float64
}

// recordingSurface counts and records every draw call.
type recordingSurface struct {
	alpha    float64
	calls    []drawCall
	presents int
	invalid  bool

	onPresent func()
}

func (r *recordingSurface) record(op string, args ...float64) {
	r.calls = append(r.calls, drawCall{op: op, alpha: r.alpha, args: args})
}

func (r *recordingSurface) Clear(colorful.Color) { r.record("clear") }
func (r *recordingSurface) SetGlobalAlpha(a float64) { r.alpha = a }
func (r *recordingSurface) Present() {
	r.presents++
	if r.onPresent != nil {
		r.onPresent()
	}
}
func (r *recordingSurface) Valid() bool { return !r.invalid }
func (r *recordingSurface) FillRect(x, y, w, h float64, _ colorful.Color) {
	r.record("rect", x, y, w, h)
}
func (r *recordingSurface) FillCircle(cx, cy, rad float64, _ colorful.Color) {
	r.record("circle", cx, cy, rad)
}
func (r *recordingSurface) StrokeLine(x0, y0, x1, y1, width float64, _ colorful.Color) {
	r.record("line", x0, y0, x1, y1, width)
}

func (r *recordingSurface) count(op string) int {
	n := 0
	for _, c := range r.calls {
		if c.op == op {
			n++
		}
	}
	return n
}

// fakeHost drives frames and resizes by hand.
type fakeHost struct {
	FrameQueue
	resize        ResizeHub
	width, height int
}

func newFakeHost(w, h int) *fakeHost {
	return &fakeHost{width: w, height: h}
}

func (h *fakeHost) ViewportSize() (int, int) { return h.width, h.height }

func (h *fakeHost) SubscribeResize(fn func(int, int)) Subscription {
	return h.resize.Subscribe(fn)
}

func (h *fakeHost) resizeTo(w, hh int) {
	h.width, h.height = w, hh
	h.resize.Notify(w, hh)
}

func (h *fakeHost) tick(n int) {
	for i := 0; i < n; i++ {
		h.Fire()
	}
}
