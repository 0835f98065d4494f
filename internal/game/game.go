// Package game implements the main game loop and state management.
package game

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/spaaace/internal/asteroid"
	"github.com/Faultbox/spaaace/internal/config"
	"github.com/Faultbox/spaaace/internal/engine/audio"
	"github.com/Faultbox/spaaace/internal/engine/input"
	"github.com/Faultbox/spaaace/internal/engine/renderer"
	"github.com/Faultbox/spaaace/internal/engine/window"
	"github.com/Faultbox/spaaace/internal/game/scene"
	"github.com/Faultbox/spaaace/internal/game/states"
	"github.com/Faultbox/spaaace/internal/logger"
)

// maxFrameTime caps dt after stalls such as window drags.
const maxFrameTime = 0.1

var (
	asteroidColor = mgl32.Vec3{0.55, 0.52, 0.48}
	selectedColor = mgl32.Vec3{0.85, 0.7, 0.35}
	shipColor     = mgl32.Vec3{0.7, 0.75, 0.85}
	exhaustColor  = mgl32.Vec3{1.0, 0.55, 0.2}
)

// Game is the main game instance.
type Game struct {
	config   config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	audio    *audio.Manager
	thruster *audio.Thruster // nil when sound is off
	log      *zap.Logger

	scene     *scene.Scene
	ship      *scene.ShipActor
	asteroids []*scene.AsteroidActor
	uploaders []*renderer.MeshUploader
	shipMesh  *renderer.Mesh
	bellMesh  *renderer.Mesh

	states  *states.Manager
	flight  *FlightState
	inspect *InspectState
}

// New creates a new game instance.
func New(cfg config.Config) (*Game, error) {
	log := logger.Named("game")
	log.Info("initializing game",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	g := &Game{
		config: cfg,
		log:    log,
		states: states.NewManager(),
	}

	// Create window (this also creates OpenGL context)
	var err error
	g.window, err = window.New(cfg.Window)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := g.window.GetSize()
	g.renderer, err = renderer.New(renderer.DefaultConfig(width, height))
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.input = input.New()

	if cfg.Audio.Enabled {
		g.initAudio()
	}

	if err := g.populate(context.Background()); err != nil {
		g.Close()
		return nil, err
	}

	g.flight = &FlightState{game: g}
	g.inspect = newInspectState(g)
	g.states.Change(g.flight)

	log.Info("game initialized successfully")
	return g, nil
}

// populate spawns the asteroid field and the ship and uploads their
// meshes.
func (g *Game) populate(ctx context.Context) error {
	g.scene = scene.New(nil, g.log.Named("scene"))

	bus := asteroid.NewStatsBus()
	bus.Subscribe(func(s asteroid.Stats) {
		g.log.Debug("field member ready",
			zap.Float64("radius", s.Radius),
			zap.Float64("mass", s.Mass),
			zap.Ints("layer_seeds", s.LayerSeeds),
		)
	})

	// Every uploader exists before workers start, so the slice is only read
	// concurrently.
	g.uploaders = make([]*renderer.MeshUploader, g.config.Field.Count)
	for i := range g.uploaders {
		g.uploaders[i] = renderer.NewMeshUploader(g.log.Named("mesh").With(zap.Int("member", i)))
	}

	start := time.Now()
	actors, err := scene.SpawnField(ctx, asteroid.Field{
		Config: g.config.Field,
		Base:   g.config.Asteroid,
		Bus:    bus,
		Log:    g.log.Named("field"),
	}, func(i int) asteroid.MeshSink { return g.uploaders[i] }, g.log.Named("field"))
	if err != nil {
		return err
	}
	g.asteroids = actors
	for i, a := range actors {
		g.uploaders[i].Flush()
		if err := g.scene.Add(a); err != nil {
			return err
		}
	}
	g.log.Info("asteroid field generated",
		zap.Int("count", len(actors)),
		zap.Duration("elapsed", time.Since(start)),
	)

	g.ship = scene.NewShipActor(g.config.Ship, g.config.Camera, g.log.Named("flight"))
	g.ship.Body.Position = mgl64.Vec3{-g.config.Field.Spread*0.5 - 3000, 0, 0}
	if err := g.scene.Add(g.ship); err != nil {
		return err
	}

	if g.shipMesh, err = renderer.NewMeshFromData(shipHullMesh()); err != nil {
		return fmt.Errorf("ship mesh: %w", err)
	}
	if g.bellMesh, err = renderer.NewMeshFromData(exhaustBellMesh(bellSegments)); err != nil {
		return fmt.Errorf("exhaust mesh: %w", err)
	}

	return g.scene.Init()
}

// initAudio starts the engine sound. A missing audio device is not fatal.
func (g *Game) initAudio() {
	m := audio.New(g.log.Named("audio"))
	if err := m.Init(); err != nil {
		g.log.Warn("audio disabled", zap.Error(err))
		return
	}
	m.SetMasterVolume(g.config.Audio.Volume)

	thruster := audio.NewThruster(m.SampleRate(), uint64(time.Now().UnixNano()))
	if err := m.Play(thruster); err != nil {
		g.log.Warn("audio disabled", zap.Error(err))
		m.Close()
		return
	}
	g.audio = m
	g.thruster = thruster
}

// setThrottle drives the engine sound.
func (g *Game) setThrottle(thrust, boost float64) {
	if g.thruster != nil {
		g.thruster.SetThrottle(thrust, boost)
	}
}

// Run starts the main game loop.
func (g *Game) Run() error {
	g.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	g.log.Info("starting game loop")

	for g.running {
		now := time.Now()
		dt := min(now.Sub(lastTime).Seconds(), maxFrameTime)
		lastTime = now

		// 1. Process input
		if g.input.Update() {
			g.running = false
			break
		}

		for _, event := range g.input.Events() {
			switch event.Type {
			case input.EventWindowResize:
				g.renderer.Resize(event.Width, event.Height)
			case input.EventKeyDown:
				if event.Key == keyQuit {
					g.running = false
				}
			}
			if err := g.states.HandleInput(event); err != nil {
				return fmt.Errorf("input error: %w", err)
			}
		}

		// 2. Update game state
		if err := g.states.Update(dt); err != nil {
			return fmt.Errorf("update error: %w", err)
		}

		// 3. Render
		if err := g.states.Render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		if g.input.IsKeyPressed(keyScreenshot) {
			if _, err := g.renderer.Screenshot(filepath.Join(config.ConfigDir(), "screenshots")); err != nil {
				g.log.Warn("screenshot failed", zap.Error(err))
			}
		}

		// 4. Present (swap buffers)
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.log.Debug("fps", zap.Int("count", frameCount), zap.Float64("dt_ms", dt*1000))
			if g.config.Window.ShowStats {
				g.window.SetTitle(g.statsTitle(frameCount))
			}
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (g *Game) statsTitle(fps int) string {
	return fmt.Sprintf("%s | %d fps | %.0f u/s | %s",
		g.config.Window.Title, fps, g.ship.Body.Velocity.Len(), g.ship.Rig.Mode())
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.log.Info("closing game")

	for _, u := range g.uploaders {
		u.Delete()
	}
	if g.shipMesh != nil {
		g.shipMesh.Delete()
	}
	if g.bellMesh != nil {
		g.bellMesh.Delete()
	}
	if g.input != nil {
		g.input.Close()
	}
	if g.audio != nil {
		g.audio.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}

// drawWorld draws the field and the ship from view. selected is
// highlighted; -1 highlights nothing.
func (g *Game) drawWorld(view mgl64.Mat4, selected int) {
	g.renderer.SetView(view)
	g.renderer.Begin()

	one := mgl64.Vec3{1, 1, 1}
	for i, a := range g.asteroids {
		color := asteroidColor
		if i == selected {
			color = selectedColor
		}
		model := renderer.ModelMatrix(a.Body.Position, a.Body.Orientation, one)
		g.renderer.DrawMesh(g.uploaders[i].Mesh(), model, color)
	}

	ship := renderer.ModelMatrix(g.ship.Body.Position, g.ship.Body.Orientation, one)
	g.renderer.DrawMesh(g.shipMesh, ship, shipColor)
	scale, roll := g.ship.ExhaustTransform()
	g.renderer.DrawMesh(g.bellMesh, exhaustMatrix(ship, scale, roll), exhaustColor)

	g.renderer.End()
}
