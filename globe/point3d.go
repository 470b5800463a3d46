// =======================
// globe/point3d.go
// =======================

package globe

import "math"

// Point3D holds a 3D coordinate.
type Point3D struct{ X, Y, Z float64 }

// PointCloud is the fixed set of sphere points sampled at attach time.
type PointCloud []Point3D

// RotateY rotates around the vertical axis. The receiver is a value, so the
// stored original is never touched.
func (p Point3D) RotateY(theta float64) Point3D {
	cos, sin := math.Cos(theta), math.Sin(theta)
	return Point3D{
		X: p.X*cos - p.Z*sin,
		Y: p.Y,
		Z: p.X*sin + p.Z*cos,
	}
}

// Distance returns the Euclidean distance between p and q.
func (p Point3D) Distance(q Point3D) float64 {
	dx, dy, dz := p.X-q.X, p.Y-q.Y, p.Z-q.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// RotateCloud writes every point of src rotated by theta into dst and returns
// it, growing dst when it is too short. sin/cos are computed once per call.
func RotateCloud(dst, src PointCloud, theta float64) PointCloud {
	if cap(dst) < len(src) {
		dst = make(PointCloud, len(src))
	}
	dst = dst[:len(src)]

	cos, sin := math.Cos(theta), math.Sin(theta)
	for i, p := range src {
		dst[i] = Point3D{
			X: p.X*cos - p.Z*sin,
			Y: p.Y,
			Z: p.X*sin + p.Z*cos,
		}
	}
	return dst
}

// SamplePoints places n points on a sphere of radius r using a spherical
// Fibonacci lattice. Output depends only on n and r.
func SamplePoints(n int, r float64) PointCloud {
	if n <= 0 {
		return PointCloud{}
	}

	cloud := make(PointCloud, n)
	spiral := math.Sqrt(float64(n) * math.Pi)
	for i := 0; i < n; i++ {
		phi := math.Acos(-1 + 2*float64(i)/float64(n))
		theta := spiral * phi
		cloud[i] = Point3D{
			X: r * math.Cos(theta) * math.Sin(phi),
			Y: r * math.Sin(theta) * math.Sin(phi),
			Z: r * math.Cos(phi),
		}
	}
	return cloud
}
