package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// OBJ format errors.
var (
	ErrInvalidOBJMesh = errors.New("invalid OBJ mesh")
	ErrMalformedOBJ   = errors.New("malformed OBJ data")
)

// OBJMesh is an indexed triangle mesh with per-vertex normals.
type OBJMesh struct {
	Name      string
	Comments  []string
	Positions []mgl64.Vec3
	Normals   []mgl64.Vec3 // optional; when set, one per position
	Triangles []uint32
}

// Validate checks index bounds and normal count.
func (m *OBJMesh) Validate() error {
	if len(m.Triangles)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a triangle list", ErrInvalidOBJMesh, len(m.Triangles))
	}
	if len(m.Normals) != 0 && len(m.Normals) != len(m.Positions) {
		return fmt.Errorf("%w: %d normals for %d vertices", ErrInvalidOBJMesh, len(m.Normals), len(m.Positions))
	}
	for _, idx := range m.Triangles {
		if int(idx) >= len(m.Positions) {
			return fmt.Errorf("%w: index %d out of range", ErrInvalidOBJMesh, idx)
		}
	}
	return nil
}

// WriteOBJ writes m as Wavefront OBJ. Face indices are 1-based and share
// the position and normal index.
func WriteOBJ(w io.Writer, m *OBJMesh) error {
	if err := m.Validate(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	for _, c := range m.Comments {
		fmt.Fprintf(bw, "# %s\n", c)
	}
	if m.Name != "" {
		fmt.Fprintf(bw, "o %s\n", m.Name)
	}
	for _, p := range m.Positions {
		fmt.Fprintf(bw, "v %s %s %s\n", formatFloat(p[0]), formatFloat(p[1]), formatFloat(p[2]))
	}
	for _, n := range m.Normals {
		fmt.Fprintf(bw, "vn %s %s %s\n", formatFloat(n[0]), formatFloat(n[1]), formatFloat(n[2]))
	}

	hasNormals := len(m.Normals) > 0
	for i := 0; i < len(m.Triangles); i += 3 {
		a, b, c := m.Triangles[i]+1, m.Triangles[i+1]+1, m.Triangles[i+2]+1
		if hasNormals {
			fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
		} else {
			fmt.Fprintf(bw, "f %d %d %d\n", a, b, c)
		}
	}
	return bw.Flush()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// ReadOBJ parses the subset WriteOBJ produces: v, vn, o and triangular f
// records. Texture coordinates in faces are ignored and face normals must
// share the position index.
func ReadOBJ(r io.Reader) (*OBJMesh, error) {
	m := &OBJMesh{}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if c, ok := strings.CutPrefix(text, "#"); ok {
			m.Comments = append(m.Comments, strings.TrimSpace(c))
			continue
		}

		fields := strings.Fields(text)
		var err error
		switch fields[0] {
		case "o":
			m.Name = strings.Join(fields[1:], " ")
		case "v":
			var v mgl64.Vec3
			v, err = parseVec3(fields[1:])
			m.Positions = append(m.Positions, v)
		case "vn":
			var v mgl64.Vec3
			v, err = parseVec3(fields[1:])
			m.Normals = append(m.Normals, v)
		case "f":
			err = m.parseFace(fields[1:])
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedOBJ, line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func parseVec3(fields []string) (mgl64.Vec3, error) {
	var v mgl64.Vec3
	if len(fields) < 3 {
		return v, fmt.Errorf("want 3 components, got %d", len(fields))
	}
	for i := range 3 {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return v, err
		}
		v[i] = f
	}
	return v, nil
}

func (m *OBJMesh) parseFace(fields []string) error {
	if len(fields) != 3 {
		return fmt.Errorf("only triangles are supported, got %d vertices", len(fields))
	}
	for _, f := range fields {
		parts := strings.Split(f, "/")
		idx, err := strconv.ParseUint(parts[0], 10, 32)
		if err != nil || idx == 0 {
			return fmt.Errorf("bad vertex index %q", parts[0])
		}
		if len(parts) == 3 && parts[2] != "" && parts[2] != parts[0] {
			return fmt.Errorf("normal index %s differs from vertex index %s", parts[2], parts[0])
		}
		m.Triangles = append(m.Triangles, uint32(idx-1))
	}
	return nil
}
