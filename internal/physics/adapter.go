package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lasercut/planetoids/internal/planetoid"
)

// Adapter exposes a Space through the planetoid manager's physics boundary.
type Adapter struct {
	*Space
}

func (a Adapter) NewBody(tag uint32) planetoid.Body {
	return a.Space.NewBody(tag)
}

func (a Adapter) FindBodiesAlongRay(origin, dir mgl64.Vec2, maxDist float64, mask uint) []planetoid.Body {
	hits := a.Space.FindBodiesAlongRay(origin, dir, maxDist, mask)
	out := make([]planetoid.Body, len(hits))
	for i, b := range hits {
		out[i] = b
	}
	return out
}
