package renderer

import (
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/spaaace/internal/asteroid"
	"github.com/Faultbox/spaaace/internal/logger"
)

// MeshUploader is an asteroid.MeshSink for the GL renderer. Generators may
// run on worker goroutines, so uploads are validated and staged under a
// lock; Flush creates the GPU mesh and must run on the GL thread.
type MeshUploader struct {
	mu      sync.Mutex
	staged  *stagedMesh
	hull    asteroid.ConvexHull
	hasHull bool
	uploads int

	mesh *Mesh // GL thread only
	log  *zap.Logger
}

type stagedMesh struct {
	vertices  []float32
	indices   []uint32
	collision bool
}

// NewMeshUploader creates an empty uploader. A nil logger uses the
// "renderer" component logger.
func NewMeshUploader(log *zap.Logger) *MeshUploader {
	if log == nil {
		log = logger.Named("renderer")
	}
	return &MeshUploader{log: log}
}

// UploadMesh implements asteroid.MeshSink. A newer upload replaces one that
// has not been flushed yet.
func (u *MeshUploader) UploadMesh(mesh asteroid.MeshData, createCollision bool) error {
	vertices, indices, err := Interleave(mesh)
	if err != nil {
		return err
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	u.staged = &stagedMesh{vertices: vertices, indices: indices, collision: createCollision}
	u.uploads++
	return nil
}

// SubmitConvexHull implements asteroid.MeshSink.
func (u *MeshUploader) SubmitConvexHull(hull asteroid.ConvexHull) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.hull = hull
	u.hasHull = true
	return nil
}

// Pending reports whether an upload is waiting for Flush.
func (u *MeshUploader) Pending() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.staged != nil
}

// Uploads returns the number of accepted uploads.
func (u *MeshUploader) Uploads() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.uploads
}

// Hull returns the last submitted hull.
func (u *MeshUploader) Hull() (asteroid.ConvexHull, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.hull, u.hasHull
}

func (u *MeshUploader) take() *stagedMesh {
	u.mu.Lock()
	defer u.mu.Unlock()
	s := u.staged
	u.staged = nil
	return s
}

// Flush moves a staged upload to the GPU, replacing the previous mesh.
func (u *MeshUploader) Flush() {
	s := u.take()
	if s == nil {
		return
	}
	if u.mesh != nil {
		u.mesh.Delete()
	}
	u.mesh = NewMesh(s.vertices, s.indices)
	u.log.Debug("mesh uploaded",
		zap.Int("vertices", len(s.vertices)/floatsPerVertex),
		zap.Int("triangles", len(s.indices)/3),
		zap.Bool("collision", s.collision),
	)
}

// Mesh returns the GPU mesh, or nil before the first Flush.
func (u *MeshUploader) Mesh() *Mesh {
	return u.mesh
}

// Delete frees the GPU mesh.
func (u *MeshUploader) Delete() {
	if u.mesh != nil {
		u.mesh.Delete()
		u.mesh = nil
	}
}
