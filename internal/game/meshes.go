package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/spaaace/internal/asteroid"
)

// Ship proportions in world units. The hull is centred on the body
// origin with the nose along +X.
var shipHalfExtents = mgl64.Vec3{60, 20, 12}

const (
	bellSegments = 16
	bellLength   = 30
	bellRadius   = 14
)

// shipHullMesh is a stretched icosphere.
func shipHullMesh() asteroid.MeshData {
	vertices, triangles := asteroid.BuildIcosphere(1)
	for i, v := range vertices {
		vertices[i] = mgl64.Vec3{
			v[0] * shipHalfExtents[0],
			v[1] * shipHalfExtents[1],
			v[2] * shipHalfExtents[2],
		}
	}
	return asteroid.MeshData{
		Positions: vertices,
		Normals:   asteroid.ComputeNormals(vertices, triangles),
		Triangles: triangles,
	}
}

// exhaustBellMesh is a capped cone with its apex at the origin opening
// towards -X.
func exhaustBellMesh(segments int) asteroid.MeshData {
	vertices := make([]mgl64.Vec3, 0, segments+2)
	vertices = append(vertices, mgl64.Vec3{}, mgl64.Vec3{-bellLength, 0, 0})
	for i := range segments {
		a := 2 * math.Pi * float64(i) / float64(segments)
		vertices = append(vertices, mgl64.Vec3{-bellLength, bellRadius * math.Cos(a), bellRadius * math.Sin(a)})
	}

	const apex, center = 0, 1
	triangles := make([]uint32, 0, segments*6)
	for i := range segments {
		cur := uint32(2 + i)
		next := uint32(2 + (i+1)%segments)
		triangles = append(triangles,
			apex, cur, next,
			center, next, cur,
		)
	}

	return asteroid.MeshData{
		Positions: vertices,
		Normals:   asteroid.ComputeNormals(vertices, triangles),
		Triangles: triangles,
	}
}

// exhaustMatrix places the bell at the ship's tail, rolled and scaled.
func exhaustMatrix(ship mgl64.Mat4, scale, rollDeg float64) mgl64.Mat4 {
	return ship.
		Mul4(mgl64.Translate3D(-shipHalfExtents[0], 0, 0)).
		Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(rollDeg))).
		Mul4(mgl64.Scale3D(scale, scale, scale))
}
