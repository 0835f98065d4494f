package asteroid

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// icosahedronFaces is the canonical face list for the vertex order emitted
// by BuildIcosphere. Winding is counter-clockwise seen from outside.
var icosahedronFaces = [60]uint32{
	0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
	1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
	3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
	4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
}

// BuildIcosphere returns a unit sphere made by subdividing a regular
// icosahedron level times. Level 0 is the icosahedron itself. The caller
// bounds level; memory grows as 4^level.
func BuildIcosphere(level int) ([]mgl64.Vec3, []uint32) {
	t := (1 + math.Sqrt(5)) / 2

	vertices := make([]mgl64.Vec3, 0, icosphereVertexCount(level))
	vertices = append(vertices,
		mgl64.Vec3{-1, t, 0},
		mgl64.Vec3{1, t, 0},
		mgl64.Vec3{-1, -t, 0},
		mgl64.Vec3{1, -t, 0},
		mgl64.Vec3{0, -1, t},
		mgl64.Vec3{0, 1, t},
		mgl64.Vec3{0, -1, -t},
		mgl64.Vec3{0, 1, -t},
		mgl64.Vec3{t, 0, -1},
		mgl64.Vec3{t, 0, 1},
		mgl64.Vec3{-t, 0, -1},
		mgl64.Vec3{-t, 0, 1},
	)
	triangles := append([]uint32(nil), icosahedronFaces[:]...)

	normalizeAll(vertices)

	for range level {
		vertices, triangles = subdivide(vertices, triangles)
	}

	// Midpoints are normalized on creation; this only corrects drift.
	normalizeAll(vertices)

	return vertices, triangles
}

// icosphereVertexCount is 10*4^level + 2.
func icosphereVertexCount(level int) int {
	if level < 0 {
		level = 0
	}
	return 10*(1<<(2*level)) + 2
}

// subdivide splits every triangle into four. Existing vertices keep their
// indices; one vertex is appended per unique edge.
func subdivide(vertices []mgl64.Vec3, triangles []uint32) ([]mgl64.Vec3, []uint32) {
	cache := newMidpointCache(len(triangles) / 2)
	out := make([]uint32, 0, len(triangles)*4)

	for i := 0; i+2 < len(triangles); i += 3 {
		v1, v2, v3 := triangles[i], triangles[i+1], triangles[i+2]

		var a, b, c uint32
		vertices, a = cache.midpoint(vertices, v1, v2)
		vertices, b = cache.midpoint(vertices, v2, v3)
		vertices, c = cache.midpoint(vertices, v3, v1)

		out = append(out,
			v1, a, c,
			v2, b, a,
			v3, c, b,
			a, b, c,
		)
	}

	return vertices, out
}

// midpointCache welds edge midpoints within one subdivision pass.
type midpointCache struct {
	index map[uint64]uint32
}

func newMidpointCache(edges int) *midpointCache {
	return &midpointCache{index: make(map[uint64]uint32, edges)}
}

// edgeKey is order independent: (i, j) and (j, i) map to the same key.
func edgeKey(i, j uint32) uint64 {
	if i > j {
		i, j = j, i
	}
	return uint64(i)<<32 | uint64(j)
}

// midpoint returns the index of the unit-length midpoint of edge (i, j),
// appending it to vertices on the first visit.
func (c *midpointCache) midpoint(vertices []mgl64.Vec3, i, j uint32) ([]mgl64.Vec3, uint32) {
	key := edgeKey(i, j)
	if idx, ok := c.index[key]; ok {
		return vertices, idx
	}

	mid := normalize(vertices[i].Add(vertices[j]).Mul(0.5))
	idx := uint32(len(vertices))
	vertices = append(vertices, mid)
	c.index[key] = idx
	return vertices, idx
}

// normalize is mgl64's Normalize without the NaN on a zero vector.
func normalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}

func normalizeAll(vertices []mgl64.Vec3) {
	for i := range vertices {
		vertices[i] = normalize(vertices[i])
	}
}
