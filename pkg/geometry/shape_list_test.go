package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

func TestShapeList_Empty(t *testing.T) {
	list := NewShapeList()
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	if _, isHit := list.Hit(ray, 0.001, math.Inf(1)); isHit {
		t.Error("Expected empty list to miss")
	}
	if list.Len() != 0 {
		t.Errorf("Expected 0 shapes, got %d", list.Len())
	}
}

func TestShapeList_ClosestHit(t *testing.T) {
	near := NewSphere(core.NewVec3(0, 0, -2), 0.5, material.NewLambertian(core.NewVec3(1, 0, 0)))
	far := NewSphere(core.NewVec3(0, 0, -5), 0.5, material.NewLambertian(core.NewVec3(0, 1, 0)))
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	// Order of insertion must not matter for distinct distances
	for _, list := range []*ShapeList{NewShapeList(near, far), NewShapeList(far, near)} {
		hit, isHit := list.Hit(ray, 0.001, math.Inf(1))
		if !isHit {
			t.Fatal("Expected hit")
		}
		if math.Abs(hit.T-1.5) > 1e-9 {
			t.Errorf("Expected nearest hit at t=1.5, got %f", hit.T)
		}
		if hit.Material != near.Material {
			t.Error("Expected material of the nearest sphere")
		}
	}
}

func TestShapeList_RespectsInterval(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -2), 0.5, testMaterial)
	list := NewShapeList(sphere)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	if _, isHit := list.Hit(ray, 0.001, 1.0); isHit {
		t.Error("Expected miss when tMax is before the sphere")
	}
}

func TestShapeList_TieGoesToFirstShape(t *testing.T) {
	first := material.NewLambertian(core.NewVec3(1, 0, 0))
	second := material.NewLambertian(core.NewVec3(0, 0, 1))
	a := NewSphere(core.NewVec3(0, 0, -2), 0.5, first)
	b := NewSphere(core.NewVec3(0, 0, -2), 0.5, second)

	list := NewShapeList(a)
	list.Add(b)

	hit, isHit := list.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit")
	}
	if hit.Material != first {
		t.Error("Expected first shape in scan order to win a tie")
	}
	if list.Len() != 2 || len(list.Shapes()) != 2 {
		t.Errorf("Expected 2 shapes, got %d", list.Len())
	}
}
