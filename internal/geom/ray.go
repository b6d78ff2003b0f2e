package geom

import "github.com/go-gl/mathgl/mgl64"

// Ray is a directed laser segment from Start to End.
type Ray struct {
	Start mgl64.Vec2
	End   mgl64.Vec2
}

// RayFrom builds a ray of the given length along dir.
func RayFrom(origin, dir mgl64.Vec2, length float64) Ray {
	if dir.Len() == 0 {
		return Ray{Start: origin, End: origin}
	}
	return Ray{Start: origin, End: origin.Add(dir.Normalize().Mul(length))}
}

func (r Ray) Length() float64 { return r.End.Sub(r.Start).Len() }

// Direction is the unit vector from Start to End, zero for a point ray.
func (r Ray) Direction() mgl64.Vec2 {
	d := r.End.Sub(r.Start)
	if d.Len() == 0 {
		return mgl64.Vec2{}
	}
	return d.Normalize()
}

// Reversed swaps the endpoints.
func (r Ray) Reversed() Ray { return Ray{Start: r.End, End: r.Start} }

// ToLocal maps both endpoints into the frame at (origin, angle).
func (r Ray) ToLocal(origin mgl64.Vec2, angle float64) Ray {
	return Ray{Start: ToLocal(r.Start, origin, angle), End: ToLocal(r.End, origin, angle)}
}

// Side reports which side of the ray pt lies on: positive on the left,
// negative on the right, zero on the line.
func (r Ray) Side(pt mgl64.Vec2) float64 {
	return Cross(r.End.Sub(r.Start), pt.Sub(r.Start))
}
