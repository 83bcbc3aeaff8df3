package twisty

import "math"

// Vec3 is a world-space vector indexed by Axis.
type Vec3 [3]float64

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2]
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length, or v itself if it is zero.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Mat3 is an exact integer rotation matrix. Cubie orientations are always
// products of quarter turns, so they never accumulate rounding error.
type Mat3 [3][3]int

// Identity returns the identity rotation.
func Identity() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Mul returns m·o.
func (m Mat3) Mul(o Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				r[i][j] += m[i][k] * o[k][j]
			}
		}
	}
	return r
}

// Apply returns m·v.
func (m Mat3) Apply(v [3]int) [3]int {
	var r [3]int
	for i := 0; i < 3; i++ {
		r[i] = m[i][0]*v[0] + m[i][1]*v[1] + m[i][2]*v[2]
	}
	return r
}

// Transpose returns the inverse rotation.
func (m Mat3) Transpose() Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[j][i]
		}
	}
	return r
}

// Float converts m to a float matrix.
func (m Mat3) Float() [3][3]float64 {
	var r [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = float64(m[i][j])
		}
	}
	return r
}

var quarterTurns = [3]Mat3{
	AxisX: {{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
	AxisY: {{0, 0, 1}, {0, 1, 0}, {-1, 0, 0}},
	AxisZ: {{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
}

// quarterTurn returns the rotation by k counter-clockwise quarter turns
// about axis. k may be negative.
func quarterTurn(axis Axis, k int) Mat3 {
	k = ((k % 4) + 4) % 4
	r := Identity()
	for i := 0; i < k; i++ {
		r = quarterTurns[axis].Mul(r)
	}
	return r
}

// axisRotation returns the float rotation by angle radians about axis.
func axisRotation(axis Axis, angle float64) [3][3]float64 {
	c, s := math.Cos(angle), math.Sin(angle)
	switch axis {
	case AxisX:
		return [3][3]float64{{1, 0, 0}, {0, c, -s}, {0, s, c}}
	case AxisY:
		return [3][3]float64{{c, 0, s}, {0, 1, 0}, {-s, 0, c}}
	default:
		return [3][3]float64{{c, -s, 0}, {s, c, 0}, {0, 0, 1}}
	}
}

func mulFloat(a, b [3][3]float64) [3][3]float64 {
	var r [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				r[i][j] += a[i][k] * b[k][j]
			}
		}
	}
	return r
}

func applyFloat(m [3][3]float64, v Vec3) Vec3 {
	var r Vec3
	for i := 0; i < 3; i++ {
		r[i] = m[i][0]*v[0] + m[i][1]*v[1] + m[i][2]*v[2]
	}
	return r
}

// eulerXYZ decomposes a rotation matrix into intrinsic X, Y, Z angles.
func eulerXYZ(m [3][3]float64) Vec3 {
	y := math.Asin(max(-1, min(1, m[0][2])))
	if math.Abs(m[0][2]) < 0.9999999 {
		return Vec3{math.Atan2(-m[1][2], m[2][2]), y, math.Atan2(-m[0][1], m[0][0])}
	}
	return Vec3{math.Atan2(m[2][1], m[1][1]), y, 0}
}

// sameAngle reports whether a and b agree modulo 2π within tol.
func sameAngle(a, b, tol float64) bool {
	d := math.Mod(a-b, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	return d < tol || 2*math.Pi-d < tol
}
