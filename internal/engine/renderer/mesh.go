package renderer

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/spaaace/internal/asteroid"
)

// floatsPerVertex is position (3) + normal (3).
const floatsPerVertex = 6

// ErrInvalidMesh is returned for mesh data that cannot be drawn.
var ErrInvalidMesh = errors.New("invalid mesh")

// Interleave packs mesh data into the vertex layout the mesh shader reads.
func Interleave(mesh asteroid.MeshData) ([]float32, []uint32, error) {
	n := len(mesh.Positions)
	switch {
	case n == 0:
		return nil, nil, fmt.Errorf("%w: no vertices", ErrInvalidMesh)
	case len(mesh.Normals) != n:
		return nil, nil, fmt.Errorf("%w: %d normals for %d vertices", ErrInvalidMesh, len(mesh.Normals), n)
	case len(mesh.Triangles) == 0 || len(mesh.Triangles)%3 != 0:
		return nil, nil, fmt.Errorf("%w: %d indices is not a triangle list", ErrInvalidMesh, len(mesh.Triangles))
	}
	for _, idx := range mesh.Triangles {
		if int(idx) >= n {
			return nil, nil, fmt.Errorf("%w: index %d out of range", ErrInvalidMesh, idx)
		}
	}

	vertices := make([]float32, 0, n*floatsPerVertex)
	for i, p := range mesh.Positions {
		nm := mesh.Normals[i]
		vertices = append(vertices,
			float32(p[0]), float32(p[1]), float32(p[2]),
			float32(nm[0]), float32(nm[1]), float32(nm[2]),
		)
	}
	indices := append([]uint32(nil), mesh.Triangles...)
	return vertices, indices, nil
}

// Mesh is an indexed triangle mesh on the GPU.
type Mesh struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

// NewMesh uploads interleaved vertices. Requires a current GL context.
func NewMesh(vertices []float32, indices []uint32) *Mesh {
	m := &Mesh{indexCount: int32(len(indices))}
	stride := int32(floatsPerVertex * 4)

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return m
}

// NewMeshFromData interleaves and uploads mesh data.
func NewMeshFromData(data asteroid.MeshData) (*Mesh, error) {
	vertices, indices, err := Interleave(data)
	if err != nil {
		return nil, err
	}
	return NewMesh(vertices, indices), nil
}

// IndexCount returns the number of indices drawn.
func (m *Mesh) IndexCount() int32 {
	return m.indexCount
}

func (m *Mesh) draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// Delete frees the GPU buffers.
func (m *Mesh) Delete() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
	*m = Mesh{}
}
