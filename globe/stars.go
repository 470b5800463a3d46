package globe

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// StarField is the decorative square-particle layer behind the globe. A star's
// position and size are functions of its index and theta only.
type StarField struct {
	Count  int
	Scale  float64
	Alpha  float64
	SpeedX float64
	SpeedY float64
	Color  colorful.Color
}

// Star returns the top-left corner and side length of star i.
func (f StarField) Star(i int, theta, width, height float64) (x, y, size float64) {
	fi := float64(i)
	x = math.Sin(theta*f.SpeedX+fi)*width/2 + width/2
	y = math.Cos(theta*f.SpeedY+2*fi)*height/2 + height/2
	size = (math.Sin(theta+fi) + 2) * f.Scale
	return x, y, size
}

// Draw paints every star at the field's fixed alpha.
func (f StarField) Draw(s Surface, theta float64, width, height int) {
	if f.Count <= 0 || width <= 0 || height <= 0 {
		return
	}
	w, h := float64(width), float64(height)
	s.SetGlobalAlpha(f.Alpha)
	for i := 0; i < f.Count; i++ {
		x, y, size := f.Star(i, theta, w, h)
		s.FillRect(x, y, size, size, f.Color)
	}
}
