package twisty

import (
	"math"
	"testing"
)

func frontCamera() PerspectiveCamera {
	return PerspectiveCamera{
		Eye:    Vec3{0, 0, 10},
		Up:     Vec3{0, 1, 0},
		FOV:    math.Pi / 2,
		Aspect: 1,
	}
}

func newTestGestures(t *testing.T, order int, lock bool) *Gestures {
	t.Helper()
	v, err := VocabularyFor(order, nil)
	if err != nil {
		t.Fatal(err)
	}
	return NewGestures(v, DefaultLayout(order), frontCamera(), lock, 0)
}

func TestPerspectiveCameraUnproject(t *testing.T) {
	c := frontCamera()
	if p := c.Unproject(0, 0); p.Sub(Vec3{0, 0, 9}).Len() > 1e-9 {
		t.Errorf("centre unprojects to %v", p)
	}
	if p := c.Unproject(1, -1); p.Sub(Vec3{1, -1, 9}).Len() > 1e-9 {
		t.Errorf("corner unprojects to %v", p)
	}
}

func TestResolveBegin(t *testing.T) {
	g := newTestGestures(t, 3, false)
	h := g.layout.HalfExtent()

	p, ok := g.ResolveBegin(0.1, 0)
	if !ok {
		t.Fatal("expected a hit on the front face")
	}
	if p.Axis != AxisZ || math.Abs(p.Point[2]-h) > 1e-9 {
		t.Errorf("pick = %+v, want the z = %v plane", p, h)
	}
	if math.Abs(p.Point[0]-0.1*(10-h)) > 1e-9 {
		t.Errorf("pick x = %v", p.Point[0])
	}

	if _, ok := g.ResolveBegin(0.25, 0); ok {
		t.Error("a point off the puzzle should not resolve")
	}
}

func TestResolveBeginRotationLock(t *testing.T) {
	g := newTestGestures(t, 3, true)
	p, ok := g.ResolveBegin(0.25, 0)
	if !ok || p.Axis != AxisZ {
		t.Errorf("locked drag near the puzzle = %+v, %v, want the front face", p, ok)
	}
	if _, ok := g.ResolveBegin(0.9, 0); ok {
		t.Error("a point far off the puzzle should not resolve even when locked")
	}
}

func TestResolveBeginFallbackLimit(t *testing.T) {
	v, err := VocabularyFor(3, nil)
	if err != nil {
		t.Fatal(err)
	}

	wide := NewGestures(v, DefaultLayout(3), frontCamera(), true, 10)
	if p, ok := wide.ResolveBegin(0.9, 0); !ok || p.Axis != AxisZ {
		t.Errorf("limit 10: pick = %+v, %v, want the front face", p, ok)
	}

	narrow := NewGestures(v, DefaultLayout(3), frontCamera(), true, 0.1)
	if _, ok := narrow.ResolveBegin(0.25, 0); ok {
		t.Error("limit 0.1: a drag well off the puzzle should not snap")
	}
}

func TestResolveEnd(t *testing.T) {
	g := newTestGestures(t, 3, false)
	p, ok := g.ResolveEnd(0.9, 0.5, AxisZ)
	if !ok || p.Axis != AxisZ {
		t.Fatalf("ResolveEnd = %+v, %v", p, ok)
	}
	h := g.layout.HalfExtent()
	want := Vec3{0.9 * (10 - h), 0.5 * (10 - h), h}
	if p.Point.Sub(want).Len() > 1e-9 {
		t.Errorf("end point = %v, want %v", p.Point, want)
	}
}

func TestGestureResolve(t *testing.T) {
	g := newTestGestures(t, 3, false)
	h := g.layout.HalfExtent()
	top := g.layout.IndexToCoordinate(2)
	front := func(x, y float64) Pick { return Pick{Axis: AxisZ, Point: Vec3{x, y, h}} }

	tests := []struct {
		name       string
		begin, end Pick
		mods       Modifiers
		want       Move
	}{
		{"top row to the right", front(-1, top), front(1, top), Modifiers{}, "U'"},
		{"top row to the left", front(1, top), front(-1, top), Modifiers{}, "U"},
		{"reversed", front(-1, top), front(1, top), Modifiers{Reverse: true}, "U"},
		{"two rows", front(-1, top), front(1, 0.3), Modifiers{}, "u'"},
		{"widened", front(-1, top), front(1, top), Modifiers{Widen: true}, "u'"},
		{"middle row", front(-1, 0), front(1, 0), Modifiers{}, "E"},
		{"middle row widened", front(-1, 0), front(1, 0), Modifiers{Widen: true}, "Y'"},
		{"click near the middle", front(0.1, 0.2), front(0.15, 0.2), Modifiers{}, "Y'"},
		{"right column up", front(1.05, -1), front(1.05, 1), Modifiers{}, "R"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, ok := g.Resolve(tt.begin, tt.end, tt.mods)
			if !ok {
				t.Fatal("no move resolved")
			}
			if m != tt.want {
				t.Errorf("got %q, want %q", m, tt.want)
			}
		})
	}
}

func TestResolveDegenerate(t *testing.T) {
	g := newTestGestures(t, 3, false)
	h := g.layout.HalfExtent()
	for _, p := range []Pick{
		{Axis: AxisZ, Point: Vec3{0.3, 0.3, h}},
		{Axis: AxisZ, Point: Vec3{0.1, 0.2, h}},
	} {
		if _, _, ok := g.Resolve(p, p, Modifiers{}); ok {
			t.Errorf("a zero-length drag at %v should not move", p.Point)
		}
	}

	begin := Pick{Axis: AxisZ, Point: Vec3{0.1, 0.2, h}}
	end := Pick{Axis: AxisZ, Point: Vec3{0.1001, 0.2, h}}
	_, d, ok := g.Resolve(begin, end, Modifiers{})
	if !ok || !d.IsWholeCube(3) {
		t.Errorf("a tiny drag near the middle = %+v, %v, want a whole-cube turn", d, ok)
	}
}

func TestResolveLayerBands(t *testing.T) {
	const order = 5
	g := newTestGestures(t, order, false)
	h := g.layout.HalfExtent()
	front := func(x, y float64) Pick { return Pick{Axis: AxisZ, Point: Vec3{x, y, h}} }

	for j := 0; j < order; j++ {
		c := g.layout.IndexToCoordinate(j)
		_, d, ok := g.Resolve(front(-1, c), front(1, c+0.2), Modifiers{})
		if !ok {
			t.Fatalf("layer %d: no move", j)
		}
		if d.Axis != AxisY || d.Low != j || d.High != j {
			t.Errorf("drag within layer %d gave %+v", j, d)
		}
	}

	for j := 0; j < order-1; j++ {
		c := g.layout.IndexToCoordinate(j)
		next := g.layout.IndexToCoordinate(j + 1)
		_, d, ok := g.Resolve(front(-1, c), front(1, next), Modifiers{})
		if !ok {
			t.Fatalf("layers %d-%d: no move", j, j+1)
		}
		if d.Axis != AxisY || d.Low != j || d.High != j+1 {
			t.Errorf("drag across layers %d and %d gave %+v", j, j+1, d)
		}
	}
}

func TestWiden(t *testing.T) {
	tests := []struct {
		lo, hi, order  int
		wantLo, wantHi int
	}{
		{0, 0, 3, 0, 1},
		{2, 2, 3, 1, 2},
		{1, 1, 3, 0, 2},
		{1, 1, 5, 0, 1},
		{3, 3, 5, 3, 4},
		{2, 2, 5, 0, 4},
		{1, 2, 4, 0, 3},
		{0, 2, 3, 0, 2},
	}
	for _, tt := range tests {
		lo, hi := widen(tt.lo, tt.hi, tt.order)
		if lo != tt.wantLo || hi != tt.wantHi {
			t.Errorf("widen(%d, %d, %d) = %d, %d, want %d, %d", tt.lo, tt.hi, tt.order, lo, hi, tt.wantLo, tt.wantHi)
		}
	}
}

func TestResolveBeginWithoutCamera(t *testing.T) {
	v, _ := VocabularyFor(3, nil)
	g := NewGestures(v, DefaultLayout(3), nil, true, 0)
	if _, ok := g.ResolveBegin(0, 0); ok {
		t.Error("no camera should mean no pick")
	}
}
