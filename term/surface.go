package term

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Each terminal cell covers CellWidth x CellHeight surface units and is split
// into an upper and a lower sub-pixel drawn with a half block.
const (
	CellWidth  = 8
	CellHeight = 16
	subSize    = CellHeight / 2
)

// Surface rasterises globe drawing calls into a sub-pixel colour buffer and
// flushes it to a tcell screen on Present. Alpha compositing happens in the
// buffer, so translucent strokes blend with whatever was painted before.
type Surface struct {
	screen tcell.Screen
	cols   int
	rows   int
	pix    []colorful.Color // cols x rows*2, row-major
	alpha  float64
	bg     colorful.Color // last Clear colour
	style  int

	// overlay runs after the buffer is written and before Show.
	overlay func(s tcell.Screen)
}

// NewSurface sizes a surface to the current screen.
func NewSurface(screen tcell.Screen) *Surface {
	s := &Surface{screen: screen, alpha: 1, style: -1}
	if screen != nil {
		s.Resize(screen.Size())
	}
	return s
}

// Valid reports whether the surface has a screen to draw on.
func (s *Surface) Valid() bool { return s.screen != nil }

// Resize reallocates the buffer for a cols x rows terminal.
func (s *Surface) Resize(cols, rows int) {
	s.cols, s.rows = max(cols, 0), max(rows, 0)
	s.pix = make([]colorful.Color, s.cols*s.rows*2)
}

// Size returns the drawable area in surface units.
func (s *Surface) Size() (width, height int) {
	return s.cols * CellWidth, s.rows * CellHeight
}

// SetStyle picks a glyph ramp for shaded output; a negative style selects
// half-block rendering.
func (s *Surface) SetStyle(style int) { s.style = style }

// Style returns the active glyph style.
func (s *Surface) Style() int { return s.style }

// SetOverlay registers a function that draws on top of each presented frame.
func (s *Surface) SetOverlay(fn func(tcell.Screen)) { s.overlay = fn }

// At returns the colour of sub-pixel (x, y).
func (s *Surface) At(x, y int) colorful.Color {
	if x < 0 || y < 0 || x >= s.cols || y >= s.rows*2 {
		return colorful.Color{}
	}
	return s.pix[y*s.cols+x]
}

func (s *Surface) SetGlobalAlpha(alpha float64) {
	s.alpha = math.Max(0, math.Min(1, alpha))
}

func (s *Surface) Clear(c colorful.Color) {
	s.bg = c
	for i := range s.pix {
		s.pix[i] = s.pix[i].BlendRgb(c, s.alpha)
	}
}

func (s *Surface) FillRect(x, y, w, h float64, c colorful.Color) {
	if w <= 0 || h <= 0 || !finite(x, y, w, h) {
		return
	}
	fx, fy := math.Floor(x/subSize), math.Floor(y/subSize)
	x0, x1, okx := clip(fx, math.Max(fx, math.Ceil((x+w)/subSize)-1), s.cols)
	y0, y1, oky := clip(fy, math.Max(fy, math.Ceil((y+h)/subSize)-1), s.rows*2)
	if !okx || !oky {
		return
	}
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			s.blend(px, py, c)
		}
	}
}

func (s *Surface) FillCircle(cx, cy, r float64, c colorful.Color) {
	if r <= 0 || !finite(cx, cy, r) {
		return
	}
	mx, my := math.Floor(cx/subSize), math.Floor(cy/subSize)
	span := math.Ceil(r / subSize)
	x0, x1, okx := clip(mx-span, mx+span, s.cols)
	y0, y1, oky := clip(my-span, my+span, s.rows*2)
	if !okx || !oky {
		return
	}
	reach := r + subSize/2
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			dx := (float64(px)+0.5)*subSize - cx
			dy := (float64(py)+0.5)*subSize - cy
			centre := float64(px) == mx && float64(py) == my
			if centre || dx*dx+dy*dy <= reach*reach {
				s.blend(px, py, c)
			}
		}
	}
}

// StrokeLine draws a one sub-pixel wide Bresenham line; width below one
// sub-pixel cannot be represented on a terminal. The segment is clipped to
// the buffer first so off-screen lengths cost nothing.
func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c colorful.Color) {
	if width <= 0 || !finite(x0, y0, x1, y1) {
		return
	}
	fx0, fy0, fx1, fy1, ok := clipSegment(x0/subSize, y0/subSize, x1/subSize, y1/subSize,
		float64(s.cols), float64(s.rows*2))
	if !ok {
		return
	}
	ax, ay := clampSub(fx0, s.cols), clampSub(fy0, s.rows*2)
	bx, by := clampSub(fx1, s.cols), clampSub(fy1, s.rows*2)

	dx, dy := abs(bx-ax), -abs(by-ay)
	sx, sy := 1, 1
	if ax > bx {
		sx = -1
	}
	if ay > by {
		sy = -1
	}
	e := dx + dy
	for {
		s.blend(ax, ay, c)
		if ax == bx && ay == by {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			ax += sx
		}
		if e2 <= dx {
			e += dx
			ay += sy
		}
	}
}

// Present writes the buffer to the screen and shows it.
func (s *Surface) Present() {
	if s.screen == nil {
		return
	}
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			top := s.pix[(2*row)*s.cols+col]
			bottom := s.pix[(2*row+1)*s.cols+col]
			if s.style < 0 {
				st := tcell.StyleDefault.Foreground(toTcell(top)).Background(toTcell(bottom))
				s.screen.SetContent(col, row, '▀', nil, st)
				continue
			}
			s.setShaded(col, row, top, bottom)
		}
	}
	if s.overlay != nil {
		s.overlay(s.screen)
	}
	s.screen.Show()
}

func (s *Surface) setShaded(col, row int, top, bottom colorful.Color) {
	bg := s.bg
	c := top.BlendRgb(bottom, 0.5)
	_, _, l := c.Hsl()
	_, _, lbg := bg.Hsl()
	ch := depthChar(math.Max(0, l-lbg)*4, s.style)
	st := tcell.StyleDefault.Foreground(toTcell(c)).Background(toTcell(bg))
	s.screen.SetContent(col, row, ch, nil, st)
}

func (s *Surface) blend(x, y int, c colorful.Color) {
	if x < 0 || y < 0 || x >= s.cols || y >= s.rows*2 {
		return
	}
	i := y*s.cols + x
	s.pix[i] = s.pix[i].BlendRgb(c, s.alpha)
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// clip limits the sub-pixel range [lo, hi] to [0, n). Bounds stay in float64
// until clipped so huge shapes never overflow int.
func clip(lo, hi float64, n int) (int, int, bool) {
	if n <= 0 || hi < 0 || lo >= float64(n) || hi < lo {
		return 0, 0, false
	}
	return int(math.Max(lo, 0)), int(math.Min(hi, float64(n-1))), true
}

func clampSub(v float64, n int) int {
	return int(math.Min(math.Max(math.Floor(v), 0), float64(n-1)))
}

// clipSegment clips a segment to [0,w]x[0,h] (Liang-Barsky).
func clipSegment(x0, y0, x1, y1, w, h float64) (float64, float64, float64, float64, bool) {
	if w <= 0 || h <= 0 {
		return 0, 0, 0, 0, false
	}
	dx, dy := x1-x0, y1-y0
	if !finite(dx, dy) {
		return 0, 0, 0, 0, false
	}
	t0, t1 := 0.0, 1.0
	for _, e := range [4][2]float64{{-dx, x0}, {dx, w - x0}, {-dy, y0}, {dy, h - y0}} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, r)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
