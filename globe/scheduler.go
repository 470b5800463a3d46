package globe

// Subscription is a handle to a registered callback. Dispose releases it;
// calling Dispose more than once is harmless.
type Subscription interface {
	Dispose()
}

// SubscriptionFunc adapts a plain function to Subscription.
type SubscriptionFunc func()

func (f SubscriptionFunc) Dispose() {
	if f != nil {
		f()
	}
}

// Scheduler requests a single callback at the next frame boundary.
type Scheduler interface {
	RequestFrame(fn func()) Subscription
}

// Host is everything the render loop consumes from its environment besides
// the surface itself.
type Host interface {
	Scheduler
	ViewportSize() (width, height int)
	SubscribeResize(fn func(width, height int)) Subscription
}

// FrameQueue is a Scheduler whose callbacks run when the owner calls Fire.
// Hosts call Fire from their tick source; tests call it to simulate ticks.
// It holds at most one pending callback. FrameQueue is not safe for concurrent
// use: the host must call RequestFrame, Fire and Dispose from one goroutine.
type FrameQueue struct {
	pending *queuedFrame
	fired   uint64
}

type queuedFrame struct {
	fn        func()
	cancelled bool
}

func (q *queuedFrame) Dispose() { q.cancelled = true }

// RequestFrame replaces any pending callback with fn.
func (q *FrameQueue) RequestFrame(fn func()) Subscription {
	if q.pending != nil {
		q.pending.cancelled = true
	}
	f := &queuedFrame{fn: fn}
	q.pending = f
	return f
}

// Fire runs the pending callback, if any, and reports whether one ran.
// The slot is cleared before the callback runs so it may request the next frame.
func (q *FrameQueue) Fire() bool {
	f := q.pending
	q.pending = nil
	if f == nil || f.cancelled || f.fn == nil {
		return false
	}
	q.fired++
	f.fn()
	return true
}

// Pending reports whether a live callback is waiting.
func (q *FrameQueue) Pending() bool {
	return q.pending != nil && !q.pending.cancelled
}

// Fired returns how many callbacks have run.
func (q *FrameQueue) Fired() uint64 { return q.fired }

// ResizeHub fans resize notifications out to subscribers. Like FrameQueue it
// expects to be driven from a single goroutine.
type ResizeHub struct {
	next uint64
	subs map[uint64]func(width, height int)
}

// Subscribe registers fn and returns a subscription that removes it.
func (h *ResizeHub) Subscribe(fn func(width, height int)) Subscription {
	if h.subs == nil {
		h.subs = make(map[uint64]func(int, int))
	}
	id := h.next
	h.next++
	h.subs[id] = fn
	return SubscriptionFunc(func() { delete(h.subs, id) })
}

// Notify calls every live subscriber.
func (h *ResizeHub) Notify(width, height int) {
	for _, fn := range h.subs {
		fn(width, height)
	}
}

// Len returns the number of live subscribers.
func (h *ResizeHub) Len() int { return len(h.subs) }
