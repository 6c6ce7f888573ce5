package geometry

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// ShapeList is the scene aggregate: an unordered collection of shapes tested by linear scan.
// It is built once and only read while rendering, so it is safe for concurrent use.
type ShapeList struct {
	shapes []Shape
}

// NewShapeList creates a list holding the given shapes
func NewShapeList(shapes ...Shape) *ShapeList {
	return &ShapeList{shapes: append([]Shape(nil), shapes...)}
}

// Add appends shapes to the list
func (l *ShapeList) Add(shapes ...Shape) {
	l.shapes = append(l.shapes, shapes...)
}

// Len returns the number of shapes in the list
func (l *ShapeList) Len() int {
	return len(l.shapes)
}

// Shapes returns the shapes in insertion order
func (l *ShapeList) Shapes() []Shape {
	return l.shapes
}

// Hit returns the closest intersection across all shapes.
// Each shape is tested against the interval shrunk to the nearest hit so far;
// on equal distances the earlier shape wins.
func (l *ShapeList) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax

	for _, shape := range l.shapes {
		hit, isHit := shape.Hit(ray, tMin, closestSoFar)
		// Bounds are inclusive, so a later shape at exactly closestSoFar must not replace the hit
		if isHit && (closestHit == nil || hit.T < closestSoFar) {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
