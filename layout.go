package twisty

import "math"

// Layout places the layers of an order-n puzzle in world space. Layers are
// centred on the origin and spaced PieceSize+Gap apart.
type Layout struct {
	Order     int
	PieceSize float64
	Gap       float64
}

// DefaultLayout returns unit pieces with a small gap.
func DefaultLayout(order int) Layout {
	return Layout{Order: order, PieceSize: 1, Gap: 0.05}
}

// Offset returns the distance between neighbouring layer centres.
func (l Layout) Offset() float64 {
	return l.PieceSize + l.Gap
}

// IndexToCoordinate returns the centre coordinate of layer i.
func (l Layout) IndexToCoordinate(i int) float64 {
	return (float64(i) - float64(l.Order-1)/2) * l.Offset()
}

// CoordinateToIndex returns the layer whose band contains c, clamped to
// [0, order-1].
func (l Layout) CoordinateToIndex(c float64) int {
	i := int(math.Round(c/l.Offset() + float64(l.Order-1)/2))
	return max(0, min(l.Order-1, i))
}

// HalfExtent returns the distance from the centre to an outer face plane.
func (l Layout) HalfExtent() float64 {
	return float64(l.Order-1)/2*l.Offset() + l.PieceSize/2
}

// Span returns the distance between the centres of opposite outer layers.
func (l Layout) Span() float64 {
	return float64(l.Order-1) * l.Offset()
}

// world converts a doubled lattice coordinate to world space.
func (l Layout) world(u int) float64 {
	return float64(u) * l.Offset() / 2
}
