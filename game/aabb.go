package game

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// ActorBox returns the axis-aligned bounding box centred on pos with the given half-extents.
func ActorBox(pos, half mgl32.Vec3) cube.BBox {
	return cube.Box(
		pos[0]-half[0], pos[1]-half[1], pos[2]-half[2],
		pos[0]+half[0], pos[1]+half[1], pos[2]+half[2],
	)
}

// Overlaps checks if two bounding boxes overlap on every axis. Unlike cube.BBox.IntersectsWith, boxes that
// only touch are counted as overlapping.
func Overlaps(a, b cube.BBox) bool {
	aMin, aMax := a.Min(), a.Max()
	bMin, bMax := b.Min(), b.Max()
	for i := range 3 {
		if math32.Max(aMin[i], bMin[i]) > math32.Min(aMax[i], bMax[i]) {
			return false
		}
	}
	return true
}

// ActorsOverlap checks if two actors at p1 and p2 with half-extents e1 and e2 collide, that is, if
// |p1[i]-p2[i]| <= e1[i]+e2[i] for every axis i.
func ActorsOverlap(p1, e1, p2, e2 mgl32.Vec3) bool {
	return Overlaps(ActorBox(p1, e1), ActorBox(p2, e2))
}

// UniformExtent returns half-extents of the same size on every axis.
func UniformExtent(e float32) mgl32.Vec3 {
	return mgl32.Vec3{e, e, e}
}

// AABBVectorDistance calculates the distance between an AABB and a vector.
func AABBVectorDistance(a cube.BBox, v mgl32.Vec3) float32 {
	x := math32.Max(a.Min().X()-v.X(), math32.Max(0, v.X()-a.Max().X()))
	y := math32.Max(a.Min().Y()-v.Y(), math32.Max(0, v.Y()-a.Max().Y()))
	z := math32.Max(a.Min().Z()-v.Z(), math32.Max(0, v.Z()-a.Max().Z()))
	return math32.Sqrt(x*x + y*y + z*z)
}
