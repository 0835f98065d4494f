package asteroid

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestComputeNormalsAreaWeighted(t *testing.T) {
	// Two triangles sharing vertex 0: a large one facing +Z and a small
	// one facing +X. The shared normal leans toward the larger face.
	vertices := []mgl64.Vec3{
		{0, 0, 0},
		{10, 0, 0}, {0, 10, 0},
		{0, 1, 0}, {0, 0, 1},
	}
	triangles := []uint32{0, 1, 2, 0, 3, 4}

	normals := ComputeNormals(vertices, triangles)

	n := normals[0]
	if math.Abs(n.Len()-1) > 1e-12 {
		t.Fatalf("normal not unit: %v", n)
	}
	if n.Z() <= n.X() {
		t.Errorf("normal %v should favor the larger +Z face", n)
	}
	if !normals[1].ApproxEqualThreshold(mgl64.Vec3{0, 0, 1}, 1e-12) {
		t.Errorf("normal[1] = %v, want +Z", normals[1])
	}
	if !normals[3].ApproxEqualThreshold(mgl64.Vec3{1, 0, 0}, 1e-12) {
		t.Errorf("normal[3] = %v, want +X", normals[3])
	}
}

func TestComputeNormalsSkipsBadIndices(t *testing.T) {
	vertices := []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	normals := ComputeNormals(vertices, []uint32{0, 1, 2, 0, 1, 9})

	if !normals[2].ApproxEqualThreshold(mgl64.Vec3{0, 0, 1}, 1e-12) {
		t.Errorf("normal[2] = %v, want +Z", normals[2])
	}
}

func TestComputeNormalsUnreferencedVertex(t *testing.T) {
	normals := ComputeNormals([]mgl64.Vec3{{1, 2, 3}}, nil)
	if normals[0] != (mgl64.Vec3{}) {
		t.Errorf("unreferenced vertex normal = %v, want zero", normals[0])
	}
}

func TestBuildHull(t *testing.T) {
	vertices := []mgl64.Vec3{{1, -2, 3}, {-4, 5, 0}, {0, 0, -6}}
	hull := BuildHull(vertices)

	if hull.Min != (mgl64.Vec3{-4, -2, -6}) {
		t.Errorf("Min = %v", hull.Min)
	}
	if hull.Max != (mgl64.Vec3{1, 5, 3}) {
		t.Errorf("Max = %v", hull.Max)
	}
	if math.Abs(hull.Radius-math.Sqrt(41)) > 1e-12 {
		t.Errorf("Radius = %v, want sqrt(41)", hull.Radius)
	}

	vertices[0] = mgl64.Vec3{100, 100, 100}
	if hull.Points[0] == vertices[0] {
		t.Error("hull aliases the vertex slice")
	}

	if empty := BuildHull(nil); len(empty.Points) != 0 || empty.Radius != 0 {
		t.Errorf("empty hull = %+v", empty)
	}
}
