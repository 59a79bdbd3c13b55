package walkmesh

import "github.com/go-gl/mathgl/mgl32"

// WalkPoint is a location on a walkmesh: a triangle and the barycentric weights of a point inside it.
// When a WalkPoint rests on an edge of its triangle, that edge is (Indices[0], Indices[1]) and Weights[2]
// is exactly zero.
type WalkPoint struct {
	Indices [3]uint32
	Weights mgl32.Vec3
}

// OnEdge returns true if the walk point lies on the (Indices[0], Indices[1]) edge of its triangle.
func (wp WalkPoint) OnEdge() bool {
	return wp.Weights[2] == 0
}

// Provider is the set of walkmesh queries consumed by movement code.
type Provider interface {
	// NearestWalkPoint returns the walk point closest to the given world position.
	NearestWalkPoint(world mgl32.Vec3) WalkPoint
	// WalkInTriangle advances start by step without leaving its triangle. The returned time is the fraction of
	// step that was consumed: 1 if the step ended inside the triangle, less than 1 if an edge was reached, in
	// which case the returned walk point lies on that edge.
	WalkInTriangle(start WalkPoint, step mgl32.Vec3) (end WalkPoint, time float32)
	// CrossEdge attempts to move a walk point resting on an edge over to the neighbouring triangle. If there is
	// no neighbour, ok is false and start is returned. The rotation takes the old triangle's plane to the new one.
	CrossEdge(start WalkPoint) (end WalkPoint, rotation mgl32.Quat, ok bool)
	// WorldPoint returns the world position of a walk point.
	WorldPoint(wp WalkPoint) mgl32.Vec3
	// SmoothNormal returns the interpolated vertex normal at a walk point.
	SmoothNormal(wp WalkPoint) mgl32.Vec3
	// Vertex returns the position of the vertex with the given index.
	Vertex(index uint32) mgl32.Vec3
}
