// =======================
// globe/benchmarks.go
// =======================

package globe

import (
	"fmt"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog"
)

// BenchmarkInfo holds frame timing for one configuration.
type BenchmarkInfo struct {
	Points      int           `json:"points" yaml:"points"`
	Edges       int           `json:"edges" yaml:"edges"`
	Frames      int           `json:"frames" yaml:"frames"`
	AttachTime  time.Duration `json:"attach_time" yaml:"attach_time"`
	ComputeTime time.Duration `json:"compute_time" yaml:"compute_time"`
	PerFrame    time.Duration `json:"per_frame" yaml:"per_frame"`
	MaxFPS      float64       `json:"max_fps" yaml:"max_fps"`
	DrawCalls   int           `json:"draw_calls" yaml:"draw_calls"`
}

// BenchmarkFrames renders frames headless, without a tick source throttling
// it, and reports how long the kernel itself takes per frame.
func BenchmarkFrames(cfg Config, frames int) (BenchmarkInfo, error) {
	if frames <= 0 {
		return BenchmarkInfo{}, fmt.Errorf("frames must be > 0, got %d", frames)
	}

	host := &headlessHost{width: 1280, height: 800}
	loop, err := NewRenderLoop(cfg, host, zerolog.Nop())
	if err != nil {
		return BenchmarkInfo{}, err
	}

	surface := &countingSurface{}
	start := time.Now()
	loop.Attach(surface)
	attach := time.Since(start)
	loop.Start()
	defer loop.Stop()

	start = time.Now()
	for i := 0; i < frames; i++ {
		host.frames.Fire()
	}
	elapsed := time.Since(start)

	info := BenchmarkInfo{
		Points:      len(loop.Cloud()),
		Edges:       len(loop.Edges()),
		Frames:      frames,
		AttachTime:  attach,
		ComputeTime: elapsed,
		PerFrame:    elapsed / time.Duration(frames),
		DrawCalls:   surface.calls,
	}
	if elapsed > 0 {
		info.MaxFPS = float64(frames) / elapsed.Seconds()
	}
	return info, nil
}

type headlessHost struct {
	frames        FrameQueue
	width, height int
}

func (h *headlessHost) RequestFrame(fn func()) Subscription { return h.frames.RequestFrame(fn) }
func (h *headlessHost) ViewportSize() (int, int) { return h.width, h.height }
func (h *headlessHost) SubscribeResize(func(int, int)) Subscription {
	return SubscriptionFunc(nil)
}

// countingSurface discards drawing and counts calls.
type countingSurface struct{ calls int }

func (c *countingSurface) Clear(colorful.Color) { c.calls++ }
func (c *countingSurface) SetGlobalAlpha(float64) {}
func (c *countingSurface) FillRect(_, _, _, _ float64, _ colorful.Color) { c.calls++ }
func (c *countingSurface) FillCircle(_, _, _ float64, _ colorful.Color) { c.calls++ }
func (c *countingSurface) StrokeLine(_, _, _, _, _ float64, _ colorful.Color) { c.calls++ }
