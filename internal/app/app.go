// Package app implements the flyover main loop: input, flight state,
// frame rendering and presentation.
package app

import (
	"fmt"
	gomath "math"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/TimelessP/timeless-as0-sub000/internal/config"
	"github.com/TimelessP/timeless-as0-sub000/internal/engine/camera"
	"github.com/TimelessP/timeless-as0-sub000/internal/engine/input"
	"github.com/TimelessP/timeless-as0-sub000/internal/engine/lighting"
	"github.com/TimelessP/timeless-as0-sub000/internal/engine/render"
	"github.com/TimelessP/timeless-as0-sub000/internal/engine/terrain"
	"github.com/TimelessP/timeless-as0-sub000/internal/engine/window"
	"github.com/TimelessP/timeless-as0-sub000/internal/logger"
	"github.com/TimelessP/timeless-as0-sub000/pkg/formats"
	"github.com/TimelessP/timeless-as0-sub000/pkg/geo"
)

// App is the flyover application instance.
type App struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *render.Renderer
	fb       *render.Framebuffer
	input    *input.Input

	flight Flight
}

// Flight is the simple kinematic flight state driven by the keyboard.
type Flight struct {
	Pose  camera.Pose
	Speed float64 // ground speed, m/s
}

// New creates the application: elevation data, renderer, window.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing flyover",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("raster", cfg.Terrain.RasterPath),
	)

	grid, err := formats.ParseElevFile(cfg.Terrain.RasterPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load elevation raster: %w", err)
	}
	sampler := terrain.NewRasterSampler(grid)

	builder, err := terrain.NewBuilder(sampler, terrain.BuilderOptions{
		PlanetRadius:          cfg.Terrain.PlanetRadius,
		AltitudeShift:         cfg.Terrain.AltitudeShift,
		Tiers:                 terrain.DefaultTiers(),
		TileCacheSize:         cfg.Terrain.TileCacheSize,
		CacheInvalidateMeters: cfg.Terrain.CacheInvalidateKm * 1000,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create mesh builder: %w", err)
	}

	a := &App{
		cfg: cfg,
		flight: Flight{
			Pose: camera.Pose{
				Lat:      46.5,
				Lon:      8.0,
				Altitude: 3000,
				Heading:  0,
				Pitch:    0,
			},
			Speed: 80,
		},
	}

	a.window, err = window.New(window.Config{
		Title:      "Airship Terrain Flyover",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	sky := cfg.Renderer.SkyColor
	a.renderer = render.New(render.Config{
		Width:          cfg.Graphics.Width,
		Height:         cfg.Graphics.Height,
		FOV:            cfg.Renderer.FOVDegrees * gomath.Pi / 180,
		Near:           cfg.Renderer.NearPlane,
		Far:            cfg.Renderer.FarPlane,
		Ambient:        cfg.Renderer.Ambient,
		HazeDistance:   cfg.Renderer.HazeDistance,
		HazeMax:        cfg.Renderer.HazeMax,
		SkyColor:       lighting.Color{R: float64(sky.R) / 255, G: float64(sky.G) / 255, B: float64(sky.B) / 255},
		SortBucketSize: cfg.Renderer.SortBucketSize,
	}, builder)

	a.fb = render.NewFramebuffer(cfg.Graphics.Width, cfg.Graphics.Height)
	a.input = input.New()

	logger.Info("flyover initialized",
		zap.Int("raster_width", int(grid.Width)),
		zap.Int("raster_height", int(grid.Height)),
	)
	return a, nil
}

// Close releases the window and SDL resources.
func (a *App) Close() {
	if a.window != nil {
		a.window.Close()
	}
}

// Run starts the main loop.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting flyover loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now
		if dt > 0.25 {
			dt = 0.25
		}

		if a.input.Update() {
			a.running = false
			break
		}
		if a.input.IsKeyPressed(sdl.SCANCODE_ESCAPE) {
			a.running = false
			break
		}

		a.steer(dt)
		a.advance(dt)

		stats := a.renderer.PaintFrame(a.fb, render.RenderContext{
			Pose:         a.flight.Pose,
			PlanetRadius: a.cfg.Terrain.PlanetRadius,
			Time:         now.UTC(),
		})
		if err := a.window.Present(a.fb); err != nil {
			return fmt.Errorf("present error: %w", err)
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.window.SetTitle(fmt.Sprintf(
				"Airship Terrain Flyover | %d fps | %.4f°, %.4f° @ %.0f m | %d tris",
				frameCount, a.flight.Pose.Lat, a.flight.Pose.Lon,
				a.flight.Pose.Altitude, stats.Drawn,
			))
			logger.Debug("frame stats",
				zap.Int("fps", frameCount),
				zap.Int("drawn", stats.Drawn),
				zap.Int("culled", stats.CulledFrustum),
				zap.Int("near_dropped", stats.DroppedNearPlane),
				zap.Int("offscreen_dropped", stats.DroppedOffscreen),
				zap.Int("degenerate", stats.Build.DroppedDegenerate),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	logger.Info("flyover loop ended")
	return nil
}

// steer applies held keys to the flight state.
func (a *App) steer(dt float64) {
	p := &a.flight.Pose

	if a.input.IsKeyHeld(sdl.SCANCODE_LEFT) || a.input.IsKeyHeld(sdl.SCANCODE_A) {
		p.Heading -= 30 * dt
	}
	if a.input.IsKeyHeld(sdl.SCANCODE_RIGHT) || a.input.IsKeyHeld(sdl.SCANCODE_D) {
		p.Heading += 30 * dt
	}
	if a.input.IsKeyHeld(sdl.SCANCODE_UP) || a.input.IsKeyHeld(sdl.SCANCODE_W) {
		p.Pitch += 20 * dt
	}
	if a.input.IsKeyHeld(sdl.SCANCODE_DOWN) || a.input.IsKeyHeld(sdl.SCANCODE_S) {
		p.Pitch -= 20 * dt
	}
	if a.input.IsKeyHeld(sdl.SCANCODE_EQUALS) {
		a.flight.Speed += 40 * dt
	}
	if a.input.IsKeyHeld(sdl.SCANCODE_MINUS) {
		a.flight.Speed -= 40 * dt
	}
	if a.input.IsKeyHeld(sdl.SCANCODE_PAGEUP) {
		p.Altitude += 200 * dt
	}
	if a.input.IsKeyHeld(sdl.SCANCODE_PAGEDOWN) {
		p.Altitude -= 200 * dt
	}

	for p.Heading < 0 {
		p.Heading += 360
	}
	for p.Heading >= 360 {
		p.Heading -= 360
	}
	p.Pitch = gomath.Max(-85, gomath.Min(85, p.Pitch))
	a.flight.Speed = gomath.Max(0, gomath.Min(2000, a.flight.Speed))
	p.Altitude = gomath.Max(10, gomath.Min(40000, p.Altitude))
}

// advance moves the aircraft along its heading and pitch.
func (a *App) advance(dt float64) {
	p := &a.flight.Pose
	dist := a.flight.Speed * dt
	if dist == 0 {
		return
	}

	pitchRad := p.Pitch * gomath.Pi / 180
	ground := dist * gomath.Cos(pitchRad)
	p.Altitude += dist * gomath.Sin(pitchRad)
	p.Altitude = gomath.Max(10, p.Altitude)

	headingRad := p.Heading * gomath.Pi / 180
	perDeg := geo.MetersPerDegree(a.cfg.Terrain.PlanetRadius)
	dLat := ground * gomath.Cos(headingRad) / perDeg
	cosLat := gomath.Cos(p.Lat * gomath.Pi / 180)
	if cosLat < 0.01 {
		cosLat = 0.01
	}
	dLon := ground * gomath.Sin(headingRad) / (perDeg * cosLat)

	p.Lat = geo.ClampLat(p.Lat + dLat)
	p.Lon = geo.NormalizeLon(p.Lon + dLon)
}
