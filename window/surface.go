//go:build cgo

package window

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
)

// Surface draws onto an offscreen ebiten image with the vector package.
type Surface struct {
	img   *ebiten.Image
	alpha float64
}

func newSurface(width, height int) *Surface {
	s := &Surface{alpha: 1}
	s.resize(width, height)
	return s
}

// Valid reports whether a backing image exists.
func (s *Surface) Valid() bool { return s.img != nil }

func (s *Surface) resize(width, height int) {
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
	if width > 0 && height > 0 {
		s.img = ebiten.NewImage(width, height)
	}
}

func (s *Surface) SetGlobalAlpha(alpha float64) {
	s.alpha = min(max(alpha, 0), 1)
}

func (s *Surface) Clear(c colorful.Color) {
	if s.img == nil {
		return
	}
	b := s.img.Bounds()
	vector.DrawFilledRect(s.img, 0, 0, float32(b.Dx()), float32(b.Dy()), s.rgba(c), false)
}

func (s *Surface) FillRect(x, y, w, h float64, c colorful.Color) {
	if s.img == nil {
		return
	}
	vector.DrawFilledRect(s.img, float32(x), float32(y), float32(w), float32(h), s.rgba(c), false)
}

func (s *Surface) FillCircle(cx, cy, r float64, c colorful.Color) {
	if s.img == nil || r <= 0 {
		return
	}
	vector.DrawFilledCircle(s.img, float32(cx), float32(cy), float32(r), s.rgba(c), true)
}

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c colorful.Color) {
	if s.img == nil || width <= 0 {
		return
	}
	vector.StrokeLine(s.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), s.rgba(c), true)
}

// rgba applies the global alpha as a non-premultiplied colour.
func (s *Surface) rgba(c colorful.Color) color.Color {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(s.alpha*255 + 0.5)}
}
