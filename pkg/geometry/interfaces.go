package geometry

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// Shape interface for objects that can be hit by rays
type Shape interface {
	// Hit returns the intersection with t in [tMin, tMax], or false if there is none
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
}
