package term

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hologlobe/v2/globe"
)

func newSimScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(cols, rows)
	t.Cleanup(s.Fini)
	return s
}

var (
	black = colorful.Color{}
	white = colorful.Color{R: 1, G: 1, B: 1}
	red   = colorful.Color{R: 1}
)

func TestSurfaceSize(t *testing.T) {
	s := NewSurface(newSimScreen(t, 40, 12))
	w, h := s.Size()
	assert.Equal(t, 40*CellWidth, w)
	assert.Equal(t, 12*CellHeight, h)
	assert.True(t, s.Valid())

	assert.False(t, NewSurface(nil).Valid())
}

func TestSurfaceAlphaBlend(t *testing.T) {
	s := NewSurface(newSimScreen(t, 4, 2))
	s.SetGlobalAlpha(1)
	s.Clear(black)
	s.SetGlobalAlpha(0.5)
	s.FillRect(0, 0, CellWidth, CellHeight, white)

	r, g, b := s.At(0, 0).RGB255()
	assert.Equal(t, []uint8{128, 128, 128}, []uint8{r, g, b})
	assert.Equal(t, s.At(0, 0), s.At(0, 1), "both halves of the cell")
	assert.Equal(t, black, s.At(1, 0))
}

func TestSurfaceClampsAlpha(t *testing.T) {
	s := NewSurface(newSimScreen(t, 2, 1))
	s.SetGlobalAlpha(3)
	s.Clear(red)
	assert.Equal(t, red, s.At(1, 1))
}

func TestSurfaceClipsOffscreen(t *testing.T) {
	s := NewSurface(newSimScreen(t, 4, 2))
	s.SetGlobalAlpha(1)
	assert.NotPanics(t, func() {
		s.FillRect(-100, -100, 50, 50, white)
		s.FillCircle(1e4, 1e4, 3, white)
		s.StrokeLine(-40, -40, 400, 400, 1, white)
	})
	assert.Equal(t, black, s.At(-1, 0))
}

// finishes fails the test when fn runs longer than d.
func finishes(t *testing.T, d time.Duration, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
	case <-time.After(d):
		t.Fatalf("still running after %s", d)
	}
}

func TestSurfaceHugeShapesAreClipped(t *testing.T) {
	s := NewSurface(newSimScreen(t, 80, 24))
	s.SetGlobalAlpha(1)
	s.Clear(black)
	finishes(t, 2*time.Second, func() {
		s.FillRect(10, 10, 1e7, 1e7, white)
		s.FillCircle(0, 0, 1e7, red)
		s.StrokeLine(0, 0, 1e12, 1, 1, white)
		s.StrokeLine(-1e15, 100, 1e15, 100, 1, white)
		s.FillRect(-1e300, -1e300, 1e300, 1e300, white)
	})
	assert.Equal(t, red, s.At(0, 47))
	assert.Equal(t, red, s.At(79, 47))
	// The nearly flat line from the origin stays on the top sub-row.
	assert.Equal(t, white, s.At(0, 0))
	assert.Equal(t, white, s.At(79, 0))
	// The horizontal line at y=100 crosses the whole buffer on sub-row 12.
	assert.Equal(t, white, s.At(0, 12))
	assert.Equal(t, white, s.At(79, 12))
}

func TestSurfaceIgnoresNonFiniteShapes(t *testing.T) {
	s := NewSurface(newSimScreen(t, 80, 24))
	s.SetGlobalAlpha(1)
	s.Clear(black)
	nan, inf := math.NaN(), math.Inf(1)
	finishes(t, 2*time.Second, func() {
		s.FillRect(nan, 0, 10, 10, white)
		s.FillRect(0, 0, nan, 10, white)
		s.FillRect(0, 0, inf, 10, white)
		s.FillCircle(8, 8, nan, white)
		s.FillCircle(inf, 8, 3, white)
		s.StrokeLine(0, 0, nan, 5, 1, white)
		s.StrokeLine(0, 0, inf, 5, 1, white)
	})
	for y := 0; y < 48; y++ {
		for x := 0; x < 80; x++ {
			require.Equal(t, black, s.At(x, y))
		}
	}
}

func TestClipSegment(t *testing.T) {
	x0, y0, x1, y1, ok := clipSegment(-10, 5, 30, 5, 20, 10)
	require.True(t, ok)
	assert.Equal(t, []float64{0, 5, 20, 5}, []float64{x0, y0, x1, y1})

	_, _, _, _, ok = clipSegment(-10, -5, 30, -5, 20, 10)
	assert.False(t, ok, "parallel outside")

	_, _, _, _, ok = clipSegment(25, 0, 40, 10, 20, 10)
	assert.False(t, ok, "entirely right of the box")

	x0, y0, x1, y1, ok = clipSegment(2, 3, 4, 5, 20, 10)
	require.True(t, ok)
	assert.Equal(t, []float64{2, 3, 4, 5}, []float64{x0, y0, x1, y1})
}

func TestSurfaceTinyShapesCoverOneSubpixel(t *testing.T) {
	s := NewSurface(newSimScreen(t, 8, 4))
	s.SetGlobalAlpha(1)
	s.FillCircle(20, 20, 0.8, white)
	assert.Equal(t, white, s.At(2, 2))
	assert.Equal(t, black, s.At(3, 2))

	s.FillRect(41, 9, 2, 2, red)
	assert.Equal(t, red, s.At(5, 1))
}

func TestStrokeLineEndpoints(t *testing.T) {
	s := NewSurface(newSimScreen(t, 10, 5))
	s.SetGlobalAlpha(1)
	s.StrokeLine(4, 4, 76, 36, 0.5, white)
	assert.Equal(t, white, s.At(0, 0))
	assert.Equal(t, white, s.At(9, 4))

	s.StrokeLine(4, 60, 76, 60, 0, red)
	assert.Equal(t, black, s.At(3, 7), "zero width draws nothing")
}

func TestPresentHalfBlocks(t *testing.T) {
	screen := newSimScreen(t, 3, 1)
	s := NewSurface(screen)
	s.SetGlobalAlpha(1)
	s.Clear(black)
	s.FillRect(0, 0, CellWidth, subSize, red)
	s.Present()

	mainc, _, style, _ := screen.GetContent(0, 0)
	fg, bg, _ := style.Decompose()
	assert.Equal(t, '▀', mainc)
	assert.Equal(t, tcell.NewRGBColor(255, 0, 0), fg)
	assert.Equal(t, tcell.NewRGBColor(0, 0, 0), bg)
}

func TestPresentShadedStyle(t *testing.T) {
	screen := newSimScreen(t, 2, 1)
	s := NewSurface(screen)
	s.SetStyle(0)
	s.SetGlobalAlpha(1)
	s.Clear(black)
	s.FillRect(0, 0, CellWidth, CellHeight, white)
	s.Present()

	lit, _, _, _ := screen.GetContent(0, 0)
	dark, _, _, _ := screen.GetContent(1, 0)
	assert.Equal(t, '█', lit)
	assert.Equal(t, ' ', dark)
}

func TestDepthChar(t *testing.T) {
	assert.Equal(t, '@', depthChar(1, 2))
	assert.Equal(t, ' ', depthChar(0, 2))
	assert.Equal(t, ' ', depthChar(-4, 2))
	assert.Equal(t, '█', depthChar(7, StyleCount))
}

func TestNextStyleCycles(t *testing.T) {
	style := -1
	seen := map[int]bool{}
	for i := 0; i <= StyleCount; i++ {
		seen[style] = true
		style = nextStyle(style)
	}
	assert.Equal(t, -1, style)
	assert.Len(t, seen, StyleCount+1)
}

func TestHostDrivesLoop(t *testing.T) {
	screen := newSimScreen(t, 100, 40)
	h := NewHost(screen)
	loop, err := globe.NewRenderLoop(globe.DefaultConfig(), h, zerolog.Nop())
	require.NoError(t, err)

	loop.Attach(h.Surface())
	require.Equal(t, globe.Attached, loop.State())
	w, hh := loop.Viewport()
	assert.Equal(t, 800, w)
	assert.Equal(t, 640, hh)

	loop.Start()
	for i := 0; i < 10; i++ {
		h.frames.Fire()
	}
	assert.InDelta(t, 10*0.002, loop.Theta(), 1e-12)

	screen.SetSize(60, 20)
	h.surface.Resize(screen.Size())
	h.resize.Notify(h.ViewportSize())
	w, hh = loop.Viewport()
	assert.Equal(t, 480, w)
	assert.Equal(t, 320, hh)

	loop.Stop()
	assert.Zero(t, h.resize.Len())
	assert.False(t, h.frames.Pending())
}

func TestRunQuitsOnKey(t *testing.T) {
	screen := newSimScreen(t, 80, 24)
	done := make(chan error, 1)
	go func() {
		done <- Run(context.Background(), screen, globe.DefaultConfig(), zerolog.Nop(), Options{HUD: true, Style: -1})
	}()

	time.Sleep(100 * time.Millisecond)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after q")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	screen := newSimScreen(t, 80, 24)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, screen, globe.DefaultConfig(), zerolog.Nop(), Options{Style: 1})
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunRejectsBadConfig(t *testing.T) {
	screen := newSimScreen(t, 80, 24)
	cfg := globe.DefaultConfig()
	cfg.FPS = 0
	err := Run(context.Background(), screen, cfg, zerolog.Nop(), Options{})
	assert.ErrorIs(t, err, globe.ErrInvalidConfig)
}

func TestHostSurvivesNearFocalPlane(t *testing.T) {
	screen := newSimScreen(t, 80, 24)
	h := NewHost(screen)
	cfg := globe.DefaultConfig()
	cfg.Radius = 1000
	loop, err := globe.NewRenderLoop(cfg, h, zerolog.Nop())
	require.NoError(t, err)
	loop.Attach(h.Surface())
	loop.Start()
	defer loop.Stop()

	finishes(t, 5*time.Second, func() {
		for i := 0; i < 60; i++ {
			h.frames.Fire()
		}
	})
	assert.InDelta(t, 60*0.002, loop.Theta(), 1e-12)
}

func TestRunRejectsTickRateAboveLimit(t *testing.T) {
	screen := newSimScreen(t, 80, 24)
	cfg := globe.DefaultConfig()
	cfg.FPS = 2_000_000_000
	var err error
	assert.NotPanics(t, func() {
		err = Run(context.Background(), screen, cfg, zerolog.Nop(), Options{})
	})
	assert.ErrorIs(t, err, globe.ErrInvalidConfig)
}
