// Package path flattens glyph outlines into closed polygonal contours.
package path

import (
	"math"

	"github.com/gogpu/monument/text"
)

// Point is a 2D point.
type Point struct {
	X, Y float64
}

// Tolerance is the default maximum distance between a curve and its
// flattened approximation.
const Tolerance = 0.25

// maxDepth bounds curve subdivision. 2^16 segments per curve is far beyond
// any useful tolerance and stops runaway recursion on NaN input.
const maxDepth = 16

// Contour is a closed polygon. The closing edge from the last point back
// to the first is implicit.
type Contour []Point

// Contours flattens outline segments into contours. Each MoveTo starts a
// new contour; curves are subdivided until they deviate from their chords
// by less than tolerance. Contours with fewer than three points are dropped.
func Contours(segments []text.OutlineSegment, tolerance float64) []Contour {
	var (
		contours []Contour
		current  Contour
		pen      Point
	)

	flush := func() {
		if len(current) > 1 && current[len(current)-1] == current[0] {
			current = current[:len(current)-1]
		}
		if len(current) >= 3 {
			contours = append(contours, current)
		}
		current = nil
	}

	for _, seg := range segments {
		switch seg.Op {
		case text.OutlineOpMoveTo:
			flush()
			pen = toPoint(seg.Points[0])
			current = append(current, pen)

		case text.OutlineOpLineTo:
			pen = toPoint(seg.Points[0])
			current = append(current, pen)

		case text.OutlineOpQuadTo:
			end := toPoint(seg.Points[1])
			flattenQuadraticRec(pen, toPoint(seg.Points[0]), end, tolerance, 0, &current)
			pen = end

		case text.OutlineOpCubicTo:
			end := toPoint(seg.Points[2])
			flattenCubicRec(pen, toPoint(seg.Points[0]), toPoint(seg.Points[1]), end, tolerance, 0, &current)
			pen = end
		}
	}
	flush()

	return contours
}

func toPoint(p text.OutlinePoint) Point {
	return Point{X: float64(p.X), Y: float64(p.Y)}
}

// Lerp interpolates from p to q; t=0 gives p and t=1 gives q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Mul scales p by s.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the z component of the cross product of p and q.
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the distance of p from the origin.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns the distance between p and q.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

func flattenQuadraticRec(p0, p1, p2 Point, tolerance float64, depth int, points *Contour) {
	if depth >= maxDepth || !(distanceToLine(p1, p0, p2) >= tolerance) {
		*points = append(*points, p2)
		return
	}

	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := q0.Lerp(q1, 0.5)

	flattenQuadraticRec(p0, q0, q2, tolerance, depth+1, points)
	flattenQuadraticRec(q2, q1, p2, tolerance, depth+1, points)
}

func flattenCubicRec(p0, p1, p2, p3 Point, tolerance float64, depth int, points *Contour) {
	dist := math.Max(distanceToLine(p1, p0, p3), distanceToLine(p2, p0, p3))
	if depth >= maxDepth || !(dist >= tolerance) {
		*points = append(*points, p3)
		return
	}

	// de Casteljau at t = 0.5
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	s := r0.Lerp(r1, 0.5)

	flattenCubicRec(p0, q0, r0, s, tolerance, depth+1, points)
	flattenCubicRec(s, r1, q2, p3, tolerance, depth+1, points)
}

// distanceToLine returns the distance from p to the segment (a, b).
func distanceToLine(p, a, b Point) float64 {
	ab := b.Sub(a)
	abLen := ab.Length()
	if abLen < 1e-10 {
		return p.Distance(a)
	}

	t := p.Sub(a).Dot(ab) / (abLen * abLen)
	switch {
	case t < 0:
		return p.Distance(a)
	case t > 1:
		return p.Distance(b)
	}
	return p.Distance(a.Add(ab.Mul(t)))
}
