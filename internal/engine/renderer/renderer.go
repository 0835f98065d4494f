// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/spaaace/internal/engine/lighting"
	"github.com/Faultbox/spaaace/internal/engine/shader"
	"github.com/Faultbox/spaaace/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	FOV    float64 // vertical, degrees
	Near   float64
	Far    float64
}

// DefaultConfig returns projection settings sized for asteroid distances.
func DefaultConfig(width, height int) Config {
	return Config{
		Width:  width,
		Height: height,
		FOV:    60,
		Near:   5,
		Far:    1e6,
	}
}

// Aspect returns width over height, or 1 for a degenerate viewport.
func (c Config) Aspect() float64 {
	if c.Width <= 0 || c.Height <= 0 {
		return 1
	}
	return float64(c.Width) / float64(c.Height)
}

// Projection returns the perspective matrix.
func (c Config) Projection() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect(), c.Near, c.Far)
}

// Fixed sun placement, degrees.
const (
	sunAzimuth   = 215
	sunElevation = 58
)

// Renderer draws lit meshes.
type Renderer struct {
	config  Config
	program *shader.Program

	// Combined in float64 so large world coordinates keep precision until
	// the final per-draw matrix.
	viewProj mgl64.Mat4
	sunDir   mgl32.Vec3
	log      *zap.Logger
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		viewProj: mgl64.Ident4(),
		sunDir:   Vec3To32(lighting.SunDirection(sunAzimuth, sunElevation).Mul(-1)),
		log:      logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.ClearColor(0.01, 0.01, 0.03, 1.0)

	var err error
	r.program, err = shader.NewProgram(meshVertexShader, meshFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.log.Debug("shader program created", zap.Uint32("program", r.program.ID))

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.program != nil {
		r.program.Delete()
	}
}

// Config returns the current configuration.
func (r *Renderer) Config() Config {
	return r.config
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// SetView sets the camera for subsequent draws.
func (r *Renderer) SetView(view mgl64.Mat4) {
	r.viewProj = r.config.Projection().Mul4(view)
}

// ViewProj returns the matrix set by the last SetView.
func (r *Renderer) ViewProj() mgl64.Mat4 {
	return r.viewProj
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	r.program.Use()
	r.program.SetVec3("uSunDir", r.sunDir)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.UseProgram(0)
}

// DrawMesh draws m with the given model transform and flat color. A nil
// mesh is skipped.
func (r *Renderer) DrawMesh(m *Mesh, model mgl64.Mat4, color mgl32.Vec3) {
	if m == nil || m.indexCount == 0 {
		return
	}
	r.program.SetMat4("uMVP", Mat4To32(r.viewProj.Mul4(model)))
	r.program.SetMat4("uModel", Mat4To32(model))
	r.program.SetVec3("uColor", color)
	m.draw()
}

const meshVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uMVP;
uniform mat4 uModel;

out vec3 vNormal;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
	vNormal = mat3(transpose(inverse(uModel))) * aNormal;
}
`

const meshFragmentShader = `
#version 410 core

in vec3 vNormal;

uniform vec3 uSunDir;
uniform vec3 uColor;

out vec4 FragColor;

void main() {
	float diffuse = 0.0;
	if (dot(vNormal, vNormal) > 1e-8) {
		diffuse = max(dot(normalize(vNormal), -uSunDir), 0.0);
	}
	FragColor = vec4(uColor * (0.15 + 0.85 * diffuse), 1.0);
}
`
