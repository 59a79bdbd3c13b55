package walkmesh

import (
	"github.com/go-gl/mathgl/mgl32"
)

// barycentricWeights projects pt onto the plane of the triangle (a, b, c) and returns the barycentric weights
// of the projected point. Weights may be negative if the point lies outside the triangle.
func barycentricWeights(a, b, c, pt mgl32.Vec3) mgl32.Vec3 {
	n := b.Sub(a).Cross(c.Sub(a))
	nn := n.Dot(n)
	if nn == 0 {
		return mgl32.Vec3{1, 0, 0}
	}

	wa := c.Sub(b).Cross(pt.Sub(b)).Dot(n) / nn
	wb := a.Sub(c).Cross(pt.Sub(c)).Dot(n) / nn
	return mgl32.Vec3{wa, wb, 1 - wa - wb}
}

// closestPointOnTriangle returns the point of triangle (a, b, c) closest to p, along with its barycentric
// weights. See Ericson, Real-Time Collision Detection, 5.1.5.
func closestPointOnTriangle(p, a, b, c mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	ab, ac, ap := b.Sub(a), c.Sub(a), p.Sub(a)
	d1, d2 := ab.Dot(ap), ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a, mgl32.Vec3{1, 0, 0}
	}

	bp := p.Sub(b)
	d3, d4 := ab.Dot(bp), ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b, mgl32.Vec3{0, 1, 0}
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return a.Add(ab.Mul(v)), mgl32.Vec3{1 - v, v, 0}
	}

	cp := p.Sub(c)
	d5, d6 := ab.Dot(cp), ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c, mgl32.Vec3{0, 0, 1}
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return a.Add(ac.Mul(w)), mgl32.Vec3{1 - w, 0, w}
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Add(c.Sub(b).Mul(w)), mgl32.Vec3{0, 1 - w, w}
	}

	denom := 1 / (va + vb + vc)
	v, w := vb*denom, vc*denom
	return a.Add(ab.Mul(v)).Add(ac.Mul(w)), mgl32.Vec3{1 - v - w, v, w}
}

// Grid builds a z-up heightfield walkmesh centred on the origin, spanning width along x and depth along y,
// split into cols by rows cells of two triangles each. height may be nil for a flat grid. Vertex normals are
// the area-weighted average of the surrounding face normals.
func Grid(width, depth float32, cols, rows int, height func(x, y float32) float32) (*Mesh, error) {
	if cols <= 0 || rows <= 0 {
		return New(nil, nil, nil)
	}

	stride := cols + 1
	vertices := make([]mgl32.Vec3, 0, stride*(rows+1))
	for j := 0; j <= rows; j++ {
		for i := 0; i <= cols; i++ {
			x := -width/2 + width*float32(i)/float32(cols)
			y := -depth/2 + depth*float32(j)/float32(rows)
			var z float32
			if height != nil {
				z = height(x, y)
			}
			vertices = append(vertices, mgl32.Vec3{x, y, z})
		}
	}

	triangles := make([][3]uint32, 0, cols*rows*2)
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			v00 := uint32(j*stride + i)
			v10, v01 := v00+1, v00+uint32(stride)
			v11 := v01 + 1
			triangles = append(triangles, [3]uint32{v00, v10, v11}, [3]uint32{v00, v11, v01})
		}
	}

	normals := make([]mgl32.Vec3, len(vertices))
	for _, tri := range triangles {
		a, b, c := vertices[tri[0]], vertices[tri[1]], vertices[tri[2]]
		n := b.Sub(a).Cross(c.Sub(a))
		for _, idx := range tri {
			normals[idx] = normals[idx].Add(n)
		}
	}
	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	return New(vertices, normals, triangles)
}
