package globe

import (
	"reflect"

	"github.com/lucasb-eyer/go-colorful"
)

// Surface is the 2D drawing target the globe renders onto. Coordinates are in
// surface units with the origin at the top-left corner. Every fill and stroke
// is composited with the alpha last passed to SetGlobalAlpha.
type Surface interface {
	Clear(c colorful.Color)
	SetGlobalAlpha(alpha float64)
	FillRect(x, y, w, h float64, c colorful.Color)
	FillCircle(cx, cy, r float64, c colorful.Color)
	StrokeLine(x0, y0, x1, y1, width float64, c colorful.Color)
}

// FramePresenter is implemented by surfaces that buffer a frame and need an
// explicit flush once it is complete.
type FramePresenter interface {
	Present()
}

// validator is implemented by surfaces that can become unusable, e.g. a
// terminal surface whose screen failed to initialise.
type validator interface {
	Valid() bool
}

// usable reports whether s can be drawn to. Nil interfaces and typed nil
// pointers are both rejected.
func usable(s Surface) bool {
	if s == nil {
		return false
	}
	if v := reflect.ValueOf(s); v.Kind() == reflect.Pointer && v.IsNil() {
		return false
	}
	if v, ok := s.(validator); ok {
		return v.Valid()
	}
	return true
}
