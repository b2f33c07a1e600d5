// Distances, angles and planes for sets of atom coordinates.

package geom

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Xyz is a point or direction. Coordinates from structure files have
// no more than three decimal places, so float32 is enough.
type Xyz struct{ X, Y, Z float32 }

type Error string

func (e Error) Error() string { return string(e) }

// Dist returns the distance between two points.
func Dist(a, b Xyz) float64 {
	xd := float64(a.X - b.X)
	yd := float64(a.Y - b.Y)
	zd := float64(a.Z - b.Z)
	return math.Sqrt(xd*xd + yd*yd + zd*zd)
}

// xyz dotprod returns the dot / scalar product of two vectors
func sclrProd(u, v Xyz) float32 { return (u.X*v.X + u.Y*v.Y + u.Z*v.Z) }

// xyzLen returns the vector length
func xyzLen(v Xyz) float64 {
	return math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z))
}

// VecAngle takes two direction vectors and returns the angle between
// them in degrees.
func VecAngle(u, v Xyz) (float64, error) {
	lu := xyzLen(u)
	lv := xyzLen(v)
	if lu == 0 || lv == 0 {
		return math.NaN(), Error("angle of zero length vector")
	}
	cosalpha := float64(sclrProd(u, v)) / (lu * lv)
	if cosalpha > 1 && cosalpha < 1.01 { // numerical noise
		return 0.0, nil
	}
	if cosalpha < -1 && cosalpha > -1.01 {
		return 180.0, nil
	}
	if cosalpha < -1 || cosalpha > 1 {
		return math.NaN(), Error("broken angle")
	}
	return math.Acos(cosalpha) * 180 / math.Pi, nil
}

// Centroid returns the mean of a set of points.
func Centroid(pts []Xyz) Xyz {
	var x, y, z float64
	for _, p := range pts {
		x += float64(p.X)
		y += float64(p.Y)
		z += float64(p.Z)
	}
	n := float64(len(pts))
	return Xyz{float32(x / n), float32(y / n), float32(z / n)}
}

// PlaneNormal returns a unit vector normal to the best-fit plane
// through a set of points. We centre the points, then the normal is
// the right singular vector with the smallest singular value, which
// is the direction of least variance.
// The sign of the vector is whatever the decomposition gives us. If
// you only ever feed the result to VecAngle, that does not matter.
func PlaneNormal(pts []Xyz) (Xyz, error) {
	if len(pts) < 3 {
		return Xyz{}, Error("plane needs at least three points")
	}
	cen := Centroid(pts)
	a := mat.NewDense(len(pts), 3, nil)
	for i, p := range pts {
		a.Set(i, 0, float64(p.X-cen.X))
		a.Set(i, 1, float64(p.Y-cen.Y))
		a.Set(i, 2, float64(p.Z-cen.Z))
	}
	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThinV); !ok {
		return Xyz{}, Error("svd did not converge")
	}
	var v mat.Dense
	svd.VTo(&v)
	n := Xyz{float32(v.At(0, 2)), float32(v.At(1, 2)), float32(v.At(2, 2))}
	return n, nil
}
