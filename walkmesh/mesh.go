package walkmesh

import (
	"github.com/cargorun/playmode/assert"
	"github.com/cargorun/playmode/oerror"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// edge is a directed edge between two vertex indices.
type edge [2]uint32

// Mesh is an in-memory triangle walkmesh. Triangles are wound counter-clockwise when viewed from the side
// their face normal points to.
type Mesh struct {
	vertices  []mgl32.Vec3
	normals   []mgl32.Vec3
	triangles [][3]uint32

	// next maps a directed edge (a, b) of a triangle (a, b, c) to c.
	next map[edge]uint32
}

// New creates a walkmesh from vertex positions, per-vertex normals and triangles. Every directed edge may
// belong to at most one triangle.
func New(vertices, normals []mgl32.Vec3, triangles [][3]uint32) (*Mesh, error) {
	if len(normals) != len(vertices) {
		return nil, oerror.New("walkmesh: %d normals given for %d vertices", len(normals), len(vertices))
	}
	if len(triangles) == 0 {
		return nil, oerror.New("walkmesh: no triangles")
	}

	m := &Mesh{
		vertices:  vertices,
		normals:   normals,
		triangles: triangles,
		next:      make(map[edge]uint32, len(triangles)*3),
	}
	for i, tri := range triangles {
		for _, idx := range tri {
			if int(idx) >= len(vertices) {
				return nil, oerror.New("walkmesh: triangle %d references vertex %d of %d", i, idx, len(vertices))
			}
		}
		if tri[0] == tri[1] || tri[1] == tri[2] || tri[2] == tri[0] {
			return nil, oerror.New("walkmesh: triangle %d repeats a vertex: %v", i, tri)
		}
		for k := range 3 {
			e := edge{tri[k], tri[(k+1)%3]}
			if _, dup := m.next[e]; dup {
				return nil, oerror.New("walkmesh: directed edge %v of triangle %d is shared with another triangle", e, i)
			}
			m.next[e] = tri[(k+2)%3]
		}
	}
	return m, nil
}

// Vertices returns the vertex positions of the mesh. The slice must not be modified.
func (m *Mesh) Vertices() []mgl32.Vec3 {
	return m.vertices
}

// Triangles returns the triangles of the mesh. The slice must not be modified.
func (m *Mesh) Triangles() [][3]uint32 {
	return m.triangles
}

// Vertex ...
func (m *Mesh) Vertex(index uint32) mgl32.Vec3 {
	return m.vertices[index]
}

// NearestWalkPoint returns the walk point on the mesh closest to the world position passed.
func (m *Mesh) NearestWalkPoint(world mgl32.Vec3) WalkPoint {
	var (
		closest  WalkPoint
		bestDist = float32(math32.MaxFloat32)
	)
	for _, tri := range m.triangles {
		a, b, c := m.vertices[tri[0]], m.vertices[tri[1]], m.vertices[tri[2]]
		pt, weights := closestPointOnTriangle(world, a, b, c)
		if dist := pt.Sub(world).LenSqr(); dist < bestDist {
			bestDist = dist
			closest = WalkPoint{Indices: tri, Weights: weights}
		}
	}
	return closest
}

// WalkInTriangle ...
func (m *Mesh) WalkInTriangle(start WalkPoint, step mgl32.Vec3) (WalkPoint, float32) {
	a, b, c := m.corners(start.Indices)
	target := barycentricWeights(a, b, c, m.WorldPoint(start).Add(step))
	vel := target.Sub(start.Weights)

	// Find the earliest time any weight reaches zero.
	time, hit := float32(1), -1
	for i := range 3 {
		if vel[i] >= 0 {
			continue
		}
		if t := -start.Weights[i] / vel[i]; t < time {
			time, hit = math32.Max(t, 0), i
		}
	}

	if hit < 0 {
		end := start
		end.Weights = sanitizeWeights(start.Weights.Add(vel))
		return end, 1
	}

	weights := start.Weights.Add(vel.Mul(time))
	weights[hit] = 0
	return rotateToEdge(start.Indices, weights, hit), time
}

// CrossEdge ...
func (m *Mesh) CrossEdge(start WalkPoint) (WalkPoint, mgl32.Quat, bool) {
	assert.IsTrue(start.OnEdge(), "walkmesh: cannot cross edge from %v, walk point is not on an edge", start.Weights)

	x, y := start.Indices[0], start.Indices[1]
	v, ok := m.next[edge{y, x}]
	if !ok {
		return start, mgl32.QuatIdent(), false
	}

	end := WalkPoint{
		Indices: [3]uint32{y, x, v},
		Weights: mgl32.Vec3{start.Weights[1], start.Weights[0], 0},
	}
	rotation := mgl32.QuatBetweenVectors(m.faceNormal(start.Indices), m.faceNormal(end.Indices))
	return end, rotation, true
}

// WorldPoint ...
func (m *Mesh) WorldPoint(wp WalkPoint) mgl32.Vec3 {
	a, b, c := m.corners(wp.Indices)
	return a.Mul(wp.Weights[0]).Add(b.Mul(wp.Weights[1])).Add(c.Mul(wp.Weights[2]))
}

// SmoothNormal ...
func (m *Mesh) SmoothNormal(wp WalkPoint) mgl32.Vec3 {
	na, nb, nc := m.normals[wp.Indices[0]], m.normals[wp.Indices[1]], m.normals[wp.Indices[2]]
	return na.Mul(wp.Weights[0]).Add(nb.Mul(wp.Weights[1])).Add(nc.Mul(wp.Weights[2])).Normalize()
}

// FaceNormal returns the unit normal of the triangle a walk point is in.
func (m *Mesh) FaceNormal(wp WalkPoint) mgl32.Vec3 {
	return m.faceNormal(wp.Indices)
}

func (m *Mesh) faceNormal(indices [3]uint32) mgl32.Vec3 {
	a, b, c := m.corners(indices)
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}

func (m *Mesh) corners(indices [3]uint32) (a, b, c mgl32.Vec3) {
	return m.vertices[indices[0]], m.vertices[indices[1]], m.vertices[indices[2]]
}

// rotateToEdge cyclically rotates a triangle so that the zero weight at index hit becomes the last one,
// keeping the winding of the triangle.
func rotateToEdge(indices [3]uint32, weights mgl32.Vec3, hit int) WalkPoint {
	var wp WalkPoint
	switch hit {
	case 0:
		wp = WalkPoint{Indices: [3]uint32{indices[1], indices[2], indices[0]}, Weights: mgl32.Vec3{weights[1], weights[2], 0}}
	case 1:
		wp = WalkPoint{Indices: [3]uint32{indices[2], indices[0], indices[1]}, Weights: mgl32.Vec3{weights[2], weights[0], 0}}
	default:
		wp = WalkPoint{Indices: indices, Weights: mgl32.Vec3{weights[0], weights[1], 0}}
	}
	wp.Weights = sanitizeWeights(wp.Weights)
	return wp
}

// sanitizeWeights clamps barycentric weights to be non-negative and rescales them to sum to one.
func sanitizeWeights(w mgl32.Vec3) mgl32.Vec3 {
	w[0], w[1], w[2] = math32.Max(w[0], 0), math32.Max(w[1], 0), math32.Max(w[2], 0)
	sum := w[0] + w[1] + w[2]
	if sum <= 0 {
		return mgl32.Vec3{1, 0, 0}
	}
	return w.Mul(1 / sum)
}
