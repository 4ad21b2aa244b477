// Package sdfseed builds session seeds from signed distance functions by
// tessellating them with sdfx's marching cubes renderer.
package sdfseed

import (
	"errors"
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/soypat/sculpt"
	srender "github.com/soypat/sculpt/render"
	"gonum.org/v1/gonum/spatial/r3"
)

// weldFraction is the vertex weld tolerance as a fraction of the cell size.
const weldFraction = 1e-3

// FromSDF tessellates s with cells marching cubes cells along its longest
// bounding box side and welds the result into a seed.
func FromSDF(s sdf.SDF3, cells int) (sculpt.Seed, error) {
	if cells < 2 {
		return sculpt.Seed{}, fmt.Errorf("need at least 2 cells, got %d", cells)
	}
	model := Triangles(s, cells)
	if len(model) == 0 {
		return sculpt.Seed{}, errors.New("sdf tessellated to no triangles")
	}
	bb := s.BoundingBox()
	longest := math.Max(math.Max(bb.Max.X-bb.Min.X, bb.Max.Y-bb.Min.Y), bb.Max.Z-bb.Min.Z)
	return sculpt.FromTriangles(model, weldFraction*longest/float64(cells))
}

// Triangles tessellates s with cells marching cubes cells along its longest
// bounding box side.
func Triangles(s sdf.SDF3, cells int) []srender.Triangle3 {
	tris := render.ToTriangles(s, render.NewMarchingCubesUniform(cells))
	model := make([]srender.Triangle3, 0, len(tris))
	for _, tri := range tris {
		model = append(model, srender.Triangle3{vec(tri[0]), vec(tri[1]), vec(tri[2])})
	}
	return model
}

// Sphere returns a seed approximating a sphere of the given radius centered
// at the origin.
func Sphere(radius float64, cells int) (sculpt.Seed, error) {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return sculpt.Seed{}, err
	}
	return FromSDF(s, cells)
}

// Box returns a seed approximating a box of the given size centered at the
// origin with its edges rounded by round.
func Box(size r3.Vec, round float64, cells int) (sculpt.Seed, error) {
	s, err := sdf.Box3D(v3.Vec{X: size.X, Y: size.Y, Z: size.Z}, round)
	if err != nil {
		return sculpt.Seed{}, err
	}
	return FromSDF(s, cells)
}

func vec(v v3.Vec) r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}
