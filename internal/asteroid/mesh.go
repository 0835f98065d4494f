package asteroid

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ComputeNormals returns area-weighted vertex normals: each triangle adds
// its unnormalized edge cross product to its three vertices, and the sums
// are normalized. Triangles referencing missing vertices are skipped.
func ComputeNormals(vertices []mgl64.Vec3, triangles []uint32) []mgl64.Vec3 {
	normals := make([]mgl64.Vec3, len(vertices))
	n := uint32(len(vertices))

	for i := 0; i+2 < len(triangles); i += 3 {
		i0, i1, i2 := triangles[i], triangles[i+1], triangles[i+2]
		if i0 >= n || i1 >= n || i2 >= n {
			continue
		}
		v0 := vertices[i0]
		face := vertices[i1].Sub(v0).Cross(vertices[i2].Sub(v0))

		normals[i0] = normals[i0].Add(face)
		normals[i1] = normals[i1].Add(face)
		normals[i2] = normals[i2].Add(face)
	}

	normalizeAll(normals)
	return normals
}

// BuildHull wraps the final vertex set for convex collision. Every vertex
// of a re-normalized asteroid lies on its bounding sphere, so the set is
// already convex-hull points; only bounds are derived here.
func BuildHull(vertices []mgl64.Vec3) ConvexHull {
	hull := ConvexHull{Points: append([]mgl64.Vec3(nil), vertices...)}
	if len(vertices) == 0 {
		return hull
	}

	hull.Min = vertices[0]
	hull.Max = vertices[0]
	for _, v := range vertices {
		for a := 0; a < 3; a++ {
			hull.Min[a] = math.Min(hull.Min[a], v[a])
			hull.Max[a] = math.Max(hull.Max[a], v[a])
		}
		hull.Radius = math.Max(hull.Radius, v.Len())
	}
	return hull
}

// meshData assembles the upload payload with zero-filled extras.
func meshData(vertices []mgl64.Vec3, triangles []uint32, normals []mgl64.Vec3) MeshData {
	return MeshData{
		Positions: vertices,
		Normals:   normals,
		Triangles: triangles,
		UVs:       make([]mgl64.Vec2, len(vertices)),
		Tangents:  make([]mgl64.Vec3, len(vertices)),
		Colors:    make([][4]uint8, len(vertices)),
	}
}
