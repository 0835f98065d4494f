package renderer

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/spaaace/internal/asteroid"
)

func triangle() asteroid.MeshData {
	return asteroid.MeshData{
		Positions: []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Normals:   []mgl64.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		Triangles: []uint32{0, 1, 2},
	}
}

func TestInterleave(t *testing.T) {
	vertices, indices, err := Interleave(triangle())
	if err != nil {
		t.Fatal(err)
	}
	if len(vertices) != 3*floatsPerVertex {
		t.Fatalf("got %d floats, want %d", len(vertices), 3*floatsPerVertex)
	}
	want := []float32{1, 0, 0, 0, 0, 1}
	for i, w := range want {
		if vertices[floatsPerVertex+i] != w {
			t.Errorf("vertex 1 float %d = %v, want %v", i, vertices[floatsPerVertex+i], w)
		}
	}
	if len(indices) != 3 || indices[2] != 2 {
		t.Errorf("indices = %v", indices)
	}
}

func TestInterleaveRejects(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*asteroid.MeshData)
	}{
		{"no vertices", func(m *asteroid.MeshData) { m.Positions = nil; m.Normals = nil }},
		{"normal count", func(m *asteroid.MeshData) { m.Normals = m.Normals[:2] }},
		{"no triangles", func(m *asteroid.MeshData) { m.Triangles = nil }},
		{"partial triangle", func(m *asteroid.MeshData) { m.Triangles = []uint32{0, 1} }},
		{"index out of range", func(m *asteroid.MeshData) { m.Triangles = []uint32{0, 1, 3} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := triangle()
			tt.modify(&m)
			if _, _, err := Interleave(m); !errors.Is(err, ErrInvalidMesh) {
				t.Errorf("Interleave = %v, want ErrInvalidMesh", err)
			}
		})
	}
}

func TestMeshUploaderStaging(t *testing.T) {
	u := NewMeshUploader(zap.NewNop())
	if u.Pending() {
		t.Fatal("new uploader has a pending mesh")
	}

	bad := triangle()
	bad.Triangles = []uint32{0, 1, 9}
	if err := u.UploadMesh(bad, false); !errors.Is(err, ErrInvalidMesh) {
		t.Fatalf("UploadMesh = %v, want ErrInvalidMesh", err)
	}
	if u.Pending() || u.Uploads() != 0 {
		t.Fatal("invalid mesh was staged")
	}

	if err := u.UploadMesh(triangle(), true); err != nil {
		t.Fatal(err)
	}
	if !u.Pending() || u.Uploads() != 1 {
		t.Error("valid mesh not staged")
	}
	if s := u.take(); s == nil || !s.collision || len(s.indices) != 3 {
		t.Errorf("staged = %+v", s)
	}
	if u.Pending() {
		t.Error("take left the mesh staged")
	}

	if _, ok := u.Hull(); ok {
		t.Error("hull reported before submit")
	}
	hull := asteroid.ConvexHull{Radius: 4}
	u.SubmitConvexHull(hull)
	if got, ok := u.Hull(); !ok || got.Radius != 4 {
		t.Errorf("Hull = %+v, %v", got, ok)
	}
}

func TestMeshUploaderConcurrentField(t *testing.T) {
	cfg := asteroid.DefaultConfig()
	cfg.Subdivisions = 1
	cfg.GlobalSeed = 3

	u := NewMeshUploader(zap.NewNop())
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g := asteroid.NewGenerator(cfg, asteroid.WithMeshSink(u), asteroid.WithLogger(zap.NewNop()))
			if _, err := g.Generate(); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
	if u.Uploads() != 4 || !u.Pending() {
		t.Errorf("uploads=%d pending=%v", u.Uploads(), u.Pending())
	}
}

func TestMatrixConversion(t *testing.T) {
	q := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})
	m := ModelMatrix(mgl64.Vec3{10, 0, 0}, q, mgl64.Vec3{2, 2, 2})

	p := m.Mul4x1(mgl64.Vec4{1, 0, 0, 1})
	want := mgl64.Vec4{10, 2, 0, 1}
	for i := range want {
		if math.Abs(p[i]-want[i]) > 1e-9 {
			t.Errorf("transformed point = %v, want %v", p, want)
			break
		}
	}

	m32 := Mat4To32(m)
	for i := range m {
		if math.Abs(float64(m32[i])-m[i]) > 1e-6 {
			t.Errorf("element %d = %v, want %v", i, m32[i], m[i])
		}
	}
	if v := Vec3To32(mgl64.Vec3{1.5, -2, 3}); v[0] != 1.5 || v[1] != -2 || v[2] != 3 {
		t.Errorf("Vec3To32 = %v", v)
	}
}

func TestConfigProjection(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		aspect float64
	}{
		{"wide", 1280, 720, 1280.0 / 720.0},
		{"zero height", 800, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig(tt.w, tt.h)
			if got := c.Aspect(); got != tt.aspect {
				t.Errorf("Aspect = %v, want %v", got, tt.aspect)
			}
			p := c.Projection()
			if math.IsNaN(p[0]) || p[0] <= 0 {
				t.Errorf("projection[0] = %v", p[0])
			}
		})
	}
}
