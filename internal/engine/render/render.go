package render

import (
	"image/color"
	"time"

	"go.uber.org/zap"

	"github.com/TimelessP/timeless-as0-sub000/internal/engine/camera"
	"github.com/TimelessP/timeless-as0-sub000/internal/engine/lighting"
	"github.com/TimelessP/timeless-as0-sub000/internal/engine/terrain"
	"github.com/TimelessP/timeless-as0-sub000/internal/logger"
	"github.com/TimelessP/timeless-as0-sub000/pkg/math"
)

// Config holds the renderer settings for the lifetime of a Renderer.
type Config struct {
	Width  int
	Height int

	FOV  float64 // vertical field of view, radians
	Near float64
	Far  float64

	Ambient      float64
	HazeDistance float64
	HazeMax      float64
	SkyColor     lighting.Color

	SortBucketSize float64
}

// FrameStats counts per-frame diagnostics. All drops are silent recoveries;
// the counters exist for tests and regression tracking, not for display.
type FrameStats struct {
	Build            terrain.BuildStats
	CulledFrustum    int
	DroppedNearPlane int
	DroppedOffscreen int
	Drawn            int
}

// RenderContext is the per-frame input handed in by the host: where the
// camera is and what time it is. The renderer holds no global state; two
// renderers with the same inputs produce the same output.
type RenderContext struct {
	Pose         camera.Pose
	PlanetRadius float64
	Time         time.Time
}

// Renderer runs the frame pipeline: mesh build, cull, project, shade,
// composite. It is single-threaded; each stage's output feeds the next and
// the paint order depends on a complete stable sort.
type Renderer struct {
	cfg        config
	builder    *terrain.Builder
	cam        *camera.Camera
	compositor Compositor
	sky        color.RGBA
}

// config is Config with derived values filled in.
type config struct {
	Config
	aspect float64
}

// New creates a renderer over the given mesh builder.
func New(cfg Config, builder *terrain.Builder) *Renderer {
	r := &Renderer{
		cfg:        config{Config: cfg, aspect: float64(cfg.Width) / float64(cfg.Height)},
		builder:    builder,
		cam:        camera.New(cfg.FOV, cfg.Near, cfg.Far),
		compositor: NewCompositor(cfg.SortBucketSize),
	}
	skyR, skyG, skyB := cfg.SkyColor.RGBA8()
	r.sky = color.RGBA{R: skyR, G: skyG, B: skyB, A: 255}

	logger.Debug("renderer ready",
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Float64("fov_rad", cfg.FOV),
	)
	return r
}

// Camera exposes the renderer's camera for inspection.
func (r *Renderer) Camera() *camera.Camera {
	return r.cam
}

// SkyColor returns the clear color used behind the terrain.
func (r *Renderer) SkyColor() color.RGBA {
	return r.sky
}

// RenderFrame runs the pipeline for one camera state and returns the
// back-to-front ordered screen triangles. All geometry is frame-scoped.
func (r *Renderer) RenderFrame(ctx RenderContext) ([]ScreenTriangle, FrameStats) {
	var stats FrameStats

	r.cam.SetPose(ctx.Pose, ctx.PlanetRadius)
	pose := r.cam.Pose()

	tris, buildStats := r.builder.Build(terrain.ViewPoint{
		Lat:      pose.Lat,
		Lon:      pose.Lon,
		Altitude: pose.Altitude,
		Position: r.cam.Position,
	})
	stats.Build = buildStats

	shader := lighting.NewShader(ctx.Time, r.cfg.Ambient, r.cfg.HazeDistance, r.cfg.HazeMax, r.cfg.SkyColor)
	frustum := NewFrustum(r.cfg.FOV, r.cfg.aspect, r.cfg.Near, r.cfg.Far)
	projector := NewProjector(r.cam.FocalLength(r.cfg.Height), r.cfg.Width, r.cfg.Height, r.cfg.Near)

	out := make([]ScreenTriangle, 0, len(tris))
	for i := range tris {
		tri := &tris[i]
		camVerts := [3]math.Vec3{
			r.cam.ToCameraSpace(tri.V[0].Pos),
			r.cam.ToCameraSpace(tri.V[1].Pos),
			r.cam.ToCameraSpace(tri.V[2].Pos),
		}

		if !frustum.KeepsTriangle(camVerts) {
			stats.CulledFrustum++
			continue
		}

		screen, res := projector.ProjectTriangle(camVerts)
		switch res {
		case ProjectNearPlane:
			stats.DroppedNearPlane++
			continue
		case ProjectOffscreen:
			stats.DroppedOffscreen++
			continue
		}

		c := shader.Shade(tri)
		cr, cg, cb := c.RGBA8()
		out = append(out, ScreenTriangle{
			P:     screen,
			Color: color.RGBA{R: cr, G: cg, B: cb, A: 255},
			Dist:  tri.Dist,
		})
	}

	out = r.compositor.Sort(out)
	stats.Drawn = len(out)
	return out, stats
}

// PaintFrame renders one frame directly into the framebuffer: sky clear
// followed by a back-to-front paint.
func (r *Renderer) PaintFrame(fb *Framebuffer, ctx RenderContext) FrameStats {
	tris, stats := r.RenderFrame(ctx)
	fb.Clear(r.sky)
	for _, t := range tris {
		fb.FillTriangle(t.P[0], t.P[1], t.P[2], t.Color)
	}
	return stats
}
