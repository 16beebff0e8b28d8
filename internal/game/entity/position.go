package entity

import "math"

// Position is a point on the 2D play field.
type Position struct {
	X float64
	Y float64
}

// DistanceTo returns the Euclidean distance between p and other.
//
// Postcondition: Returns >= 0; DistanceTo is symmetric.
func (p Position) DistanceTo(other Position) float64 {
	return math.Hypot(other.X-p.X, other.Y-p.Y)
}
