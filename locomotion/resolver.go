package locomotion

import (
	"github.com/cargorun/playmode/walkmesh"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

const (
	DefaultMaxIterations = 10
	DefaultRestitution   = float32(1.25)
	DefaultWallBias      = float32(0.01)
)

// Options define how the resolver treats walls and how much work it may do per step.
type Options struct {
	// MaxIterations bounds the number of walk/cross/slide iterations of a single Resolve call. Any displacement
	// left once the budget is used up is dropped.
	MaxIterations int
	// Restitution scales the reflection of the outward part of a displacement that runs into a wall.
	Restitution float32
	// WallBias is the fraction of the inward part of a displacement added when sliding along a wall, so that
	// the walk point does not stick to the edge.
	WallBias float32

	// Log receives a note whenever the iteration budget is exhausted.
	Log logrus.FieldLogger
	// Debugf receives per-iteration traces for callers that need deep diagnostics.
	Debugf func(format string, args ...any)
}

// DefaultOptions returns the options used for player walking.
func DefaultOptions() Options {
	return Options{
		MaxIterations: DefaultMaxIterations,
		Restitution:   DefaultRestitution,
		WallBias:      DefaultWallBias,
	}
}

// Resolver moves walk points over a walkmesh, keeping them on its surface.
type Resolver struct {
	Mesh    walkmesh.Provider
	Options Options
}

// New returns a resolver for the given walkmesh.
func New(mesh walkmesh.Provider, opts Options) *Resolver {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}
	return &Resolver{Mesh: mesh, Options: opts}
}

// Resolve applies the world space displacement remain to the walk point at. The displacement is consumed
// triangle by triangle: it is rotated to follow the surface when crossing into a neighbouring triangle and
// bounced or slid along boundary edges that have no neighbour.
func (r *Resolver) Resolve(at walkmesh.WalkPoint, remain mgl32.Vec3) Result {
	result := Result{At: at}
	maxIterations := r.Options.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	for result.Iterations < maxIterations {
		result.Iterations++
		if remain == (mgl32.Vec3{}) {
			break
		}

		end, time := r.Mesh.WalkInTriangle(result.At, remain)
		result.At = end
		if time == 1 {
			remain = mgl32.Vec3{}
			break
		}

		remain = remain.Mul(1 - time)
		if next, rotation, ok := r.Mesh.CrossEdge(result.At); ok {
			result.At = next
			remain = rotation.Rotate(remain)
			result.Crossings++
			r.debugf("iteration %d: crossed into triangle %v, remaining=%v", result.Iterations, next.Indices, remain)
			continue
		}

		remain = r.slide(result.At, remain, &result)
		r.debugf("iteration %d: hit wall of triangle %v, remaining=%v", result.Iterations, result.At.Indices, remain)
	}

	result.Remaining = remain
	if remain != (mgl32.Vec3{}) {
		result.Outcome = OutcomeBudgetExhausted
		if r.Options.Log != nil {
			r.Options.Log.WithFields(logrus.Fields{
				"iterations": result.Iterations,
				"remaining":  remain,
			}).Info("walk used its full iteration budget, dropping remaining displacement")
		}
	}
	return result
}

// slide deflects remain off the boundary edge (At.Indices[0], At.Indices[1]) of the walk point's triangle.
func (r *Resolver) slide(at walkmesh.WalkPoint, remain mgl32.Vec3, result *Result) mgl32.Vec3 {
	a := r.Mesh.Vertex(at.Indices[0])
	b := r.Mesh.Vertex(at.Indices[1])
	c := r.Mesh.Vertex(at.Indices[2])

	along := b.Sub(a).Normalize()
	normal := b.Sub(a).Cross(c.Sub(a)).Normalize()
	in := normal.Cross(along)

	d := remain.Dot(in)
	if d < 0 {
		result.Bounces++
		return remain.Add(in.Mul(-r.Options.Restitution * d))
	}
	return remain.Add(in.Mul(r.Options.WallBias * d))
}

// Align rotates an actor so that its local up axis (+z) matches the smoothed surface normal at the walk point,
// using the smallest rotation between the two.
func (r *Resolver) Align(rotation mgl32.Quat, at walkmesh.WalkPoint) mgl32.Quat {
	up := rotation.Rotate(mgl32.Vec3{0, 0, 1})
	adjust := mgl32.QuatBetweenVectors(up, r.Mesh.SmoothNormal(at))
	return adjust.Mul(rotation).Normalize()
}

// Walk resolves a displacement for an actor and returns the result along with the actor's new world position
// and surface-aligned rotation.
func (r *Resolver) Walk(at walkmesh.WalkPoint, step mgl32.Vec3, rotation mgl32.Quat) Result {
	result := r.Resolve(at, step)
	result.Position = r.Mesh.WorldPoint(result.At)
	result.Rotation = r.Align(rotation, result.At)
	return result
}

func (r *Resolver) debugf(format string, args ...any) {
	if r.Options.Debugf != nil {
		r.Options.Debugf(format, args...)
	}
}
