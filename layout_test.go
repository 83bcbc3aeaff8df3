package twisty

import (
	"math"
	"testing"
)

func TestCoordinateRoundTrip(t *testing.T) {
	for order := MinOrder; order <= MaxOrder; order++ {
		for _, l := range []Layout{DefaultLayout(order), {Order: order, PieceSize: 2, Gap: 0.3}} {
			for i := 0; i < order; i++ {
				if got := l.CoordinateToIndex(l.IndexToCoordinate(i)); got != i {
					t.Errorf("order %d: coordinateToIndex(indexToCoordinate(%d)) = %d", order, i, got)
				}
			}
		}
	}
}

func TestCoordinateToIndexClamps(t *testing.T) {
	l := DefaultLayout(3)
	if got := l.CoordinateToIndex(-100); got != 0 {
		t.Errorf("far negative coordinate gave layer %d", got)
	}
	if got := l.CoordinateToIndex(100); got != 2 {
		t.Errorf("far positive coordinate gave layer %d", got)
	}
	if got := l.CoordinateToIndex(l.HalfExtent()); got != 2 {
		t.Errorf("outer face coordinate gave layer %d", got)
	}
}

func TestLayoutIsCentred(t *testing.T) {
	l := DefaultLayout(4)
	if math.Abs(l.IndexToCoordinate(0)+l.IndexToCoordinate(3)) > 1e-12 {
		t.Error("outer layers should be symmetric about the origin")
	}
	if math.Abs(l.Span()-(l.IndexToCoordinate(3)-l.IndexToCoordinate(0))) > 1e-12 {
		t.Error("Span should equal the distance between outer layer centres")
	}
	want := l.IndexToCoordinate(3) + l.PieceSize/2
	if math.Abs(l.HalfExtent()-want) > 1e-12 {
		t.Errorf("HalfExtent = %v, want %v", l.HalfExtent(), want)
	}
}
