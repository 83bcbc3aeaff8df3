package twisty

import (
	"math"

	"github.com/charmbracelet/log"
)

// Camera projects screen points into the world for gesture picking.
type Camera interface {
	// Position returns the eye position in world space.
	Position() Vec3
	// Unproject maps normalised device coordinates in [-1, 1] to a world
	// point on the line of sight through them.
	Unproject(x, y float64) Vec3
}

// PerspectiveCamera is a pinhole camera. FOV is the vertical field of view
// in radians and Aspect is width over height.
type PerspectiveCamera struct {
	Eye    Vec3
	Target Vec3
	Up     Vec3
	FOV    float64
	Aspect float64
}

func (c PerspectiveCamera) Position() Vec3 {
	return c.Eye
}

func (c PerspectiveCamera) Unproject(x, y float64) Vec3 {
	forward := c.Target.Sub(c.Eye).Normalize()
	right := forward.Cross(c.Up).Normalize()
	up := right.Cross(forward)
	h := math.Tan(c.FOV / 2)
	return c.Eye.Add(forward).Add(right.Scale(x * h * c.Aspect)).Add(up.Scale(y * h))
}

// Pick is where a gesture touched the puzzle: the axis of the face plane it
// hit and the world-space point on that plane.
type Pick struct {
	Axis  Axis
	Point Vec3
}

// Modifiers alter how a drag maps to a move.
type Modifiers struct {
	Reverse bool // turn the other way
	Widen   bool // take the adjacent layer too
}

const (
	pickTolerance = 1e-6
	torqueEpsilon = 1e-9
)

// Gestures turns pointer drags into moves.
type Gestures struct {
	vocab        *Vocabulary
	layout       Layout
	camera       Camera
	rotationLock bool
	lockLimit    float64
	logger       *log.Logger
}

// NewGestures returns a resolver for the puzzle described by v and layout
// seen through camera. With rotation lock on, a drag may start up to
// lockLimit outside the puzzle; zero or less means half the puzzle's width.
func NewGestures(v *Vocabulary, layout Layout, camera Camera, rotationLock bool, lockLimit float64) *Gestures {
	return &Gestures{
		vocab:        v,
		layout:       layout,
		camera:       camera,
		rotationLock: rotationLock,
		lockLimit:    lockLimit,
		logger:       v.logger,
	}
}

// SetCamera replaces the camera.
func (g *Gestures) SetCamera(c Camera) {
	g.camera = c
}

// SetRotationLock sets whether drags off the puzzle snap to the nearest
// face.
func (g *Gestures) SetRotationLock(enabled bool) {
	g.rotationLock = enabled
}

// ray returns the eye and the direction through screen point (x, y).
func (g *Gestures) ray(x, y float64) (Vec3, Vec3) {
	eye := g.camera.Position()
	return eye, g.camera.Unproject(x, y).Sub(eye)
}

// intersect hits the face plane on axis nearest the eye.
func (g *Gestures) intersect(eye, dir Vec3, axis Axis) (Vec3, float64, bool) {
	h := g.layout.HalfExtent()
	if dir[axis] == 0 || eye[axis] == 0 {
		return Vec3{}, 0, false
	}
	plane := math.Copysign(h, eye[axis])
	t := (plane - eye[axis]) / dir[axis]
	if t <= 0 {
		return Vec3{}, 0, false
	}
	p := eye.Add(dir.Scale(t))
	p[axis] = plane
	return p, t, true
}

// ResolveBegin picks the face under a screen point. It returns false when
// the point misses the puzzle, unless rotation lock is on and a face is near
// enough to snap to.
func (g *Gestures) ResolveBegin(x, y float64) (Pick, bool) {
	if g.camera == nil {
		return Pick{}, false
	}
	eye, dir := g.ray(x, y)
	h := g.layout.HalfExtent()

	var best, fallback Pick
	bestT, fallbackDist := math.Inf(1), math.Inf(1)
	for a := AxisX; a <= AxisZ; a++ {
		p, t, ok := g.intersect(eye, dir, a)
		if !ok {
			continue
		}
		var out float64
		for b := AxisX; b <= AxisZ; b++ {
			if b != a {
				out += max(0, math.Abs(p[b])-h)
			}
		}
		if out <= pickTolerance {
			if t < bestT {
				best, bestT = Pick{Axis: a, Point: p}, t
			}
		} else if out < fallbackDist {
			fallback, fallbackDist = Pick{Axis: a, Point: p}, out
		}
	}

	if !math.IsInf(bestT, 1) {
		return best, true
	}
	if g.rotationLock && fallbackDist < g.fallbackLimit() {
		return fallback, true
	}
	return Pick{}, false
}

// fallbackLimit is how far outside the puzzle a locked drag may start.
func (g *Gestures) fallbackLimit() float64 {
	if g.lockLimit > 0 {
		return g.lockLimit
	}
	return g.layout.HalfExtent()
}

// ResolveEnd intersects a screen point with the plane picked at the start
// of the drag. The point may lie outside the puzzle.
func (g *Gestures) ResolveEnd(x, y float64, axis Axis) (Pick, bool) {
	if g.camera == nil {
		return Pick{}, false
	}
	eye, dir := g.ray(x, y)
	p, _, ok := g.intersect(eye, dir, axis)
	if !ok {
		return Pick{}, false
	}
	return Pick{Axis: axis, Point: p}, true
}

// Resolve converts a drag from begin to end into a move.
//
// The turn axis is the dominant component of the torque the drag would put
// on the puzzle, and its sign gives the direction. The layers are those the
// drag started and ended in. A short drag near the middle of the puzzle
// turns the whole cube. A click that does not move has no direction and
// resolves to nothing, so a whole-cube turn needs at least a small drag.
func (g *Gestures) Resolve(begin, end Pick, mods Modifiers) (Move, Descriptor, bool) {
	force := end.Point.Sub(begin.Point)
	torque := begin.Point.Cross(force)
	if torque.Len() < torqueEpsilon {
		return "", Descriptor{}, false
	}

	axis := AxisX
	for a := AxisY; a <= AxisZ; a++ {
		if math.Abs(torque[a]) > math.Abs(torque[axis]) {
			axis = a
		}
	}
	sign := 1
	if torque[axis] < 0 {
		sign = -1
	}
	if mods.Reverse {
		sign = -sign
	}

	n := g.layout.Order
	lo := g.layout.CoordinateToIndex(begin.Point[axis])
	hi := g.layout.CoordinateToIndex(end.Point[axis])
	if lo > hi {
		lo, hi = hi, lo
	}

	offset := g.layout.Offset()
	if force.Len() < offset/2 && math.Abs(begin.Point[axis]) < offset/2 {
		lo, hi = 0, n-1
	} else if mods.Widen {
		lo, hi = widen(lo, hi, n)
	}

	d := Descriptor{AxisSign: sign, Axis: axis, Low: lo, High: hi, Turns: 1}
	m, ok := g.vocab.MoveFor(d)
	if !ok {
		g.logger.Warn("no move for gesture", "axis", axis, "low", lo, "high", hi)
		return "", Descriptor{}, false
	}
	return m, d, true
}

// widen grows a layer span by one layer. A span on the boundary takes the
// next layer in; an inner span reaches out to its nearer face, or to both
// when it is centred, which on a 3x3 turns the middle layer click into a
// whole-cube rotation.
func widen(lo, hi, order int) (int, int) {
	switch {
	case lo == 0 && hi == order-1:
	case lo == 0:
		hi = min(hi+1, order-1)
	case hi == order-1:
		lo = max(lo-1, 0)
	case lo < order-1-hi:
		lo = 0
	case lo > order-1-hi:
		hi = order - 1
	default:
		lo, hi = 0, order-1
	}
	return lo, hi
}
