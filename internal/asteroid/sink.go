package asteroid

// MemorySink keeps the last uploaded mesh and hull in memory. It backs
// headless generation: the CLI, asteroid fields and tests.
type MemorySink struct {
	Mesh            MeshData
	Hull            ConvexHull
	CreateCollision bool
	Uploads         int
	HullSubmits     int

	// Err, when set, is returned from both methods.
	Err error
}

// UploadMesh implements MeshSink.
func (s *MemorySink) UploadMesh(mesh MeshData, createCollision bool) error {
	if s.Err != nil {
		return s.Err
	}
	s.Mesh = mesh
	s.CreateCollision = createCollision
	s.Uploads++
	return nil
}

// SubmitConvexHull implements MeshSink.
func (s *MemorySink) SubmitConvexHull(hull ConvexHull) error {
	if s.Err != nil {
		return s.Err
	}
	s.Hull = hull
	s.HullSubmits++
	return nil
}
