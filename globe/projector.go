package globe

// Projected is a point mapped to screen space for the current frame.
// X and Y are relative to the globe centre.
type Projected struct {
	X, Y    float64
	Scale   float64
	Opacity float64
	// Behind is set when the point sits at or behind the projection centre.
	Behind bool
}

// Visible reports whether the point should be drawn at all.
func (p Projected) Visible() bool {
	return !p.Behind && p.Opacity > 0
}

// Project maps an already rotated point through a pinhole camera at focal
// distance focal. Opacity fades linearly from the far pole (0) to the near
// pole (1) of a sphere of the given radius.
func Project(p Point3D, focal, radius float64) Projected {
	denom := focal + p.Z
	if denom <= 0 {
		return Projected{Behind: true}
	}
	scale := focal / denom

	return Projected{
		X:       p.X * scale,
		Y:       p.Y * scale,
		Scale:   scale,
		Opacity: depthOpacity(p.Z, radius),
	}
}

func depthOpacity(z, radius float64) float64 {
	if radius <= 0 {
		return 0
	}
	return clamp01((z + radius) / (2 * radius))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ProjectCloud projects every rotated point into dst and returns it.
func ProjectCloud(dst []Projected, rotated PointCloud, focal, radius float64) []Projected {
	if cap(dst) < len(rotated) {
		dst = make([]Projected, len(rotated))
	}
	dst = dst[:len(rotated)]
	for i, p := range rotated {
		dst[i] = Project(p, focal, radius)
	}
	return dst
}
