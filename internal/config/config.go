// Package config handles renderer configuration loading and management.
package config

import "github.com/TimelessP/timeless-as0-sub000/pkg/geo"

// Config holds all settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Renderer RendererConfig `yaml:"renderer"`
	Terrain  TerrainConfig  `yaml:"terrain"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// RendererConfig holds projection and shading settings.
type RendererConfig struct {
	FOVDegrees     float64 `yaml:"fov_degrees"`
	NearPlane      float64 `yaml:"near_plane"`
	FarPlane       float64 `yaml:"far_plane"`
	HazeDistance   float64 `yaml:"haze_distance"`    // e-folding distance in meters
	HazeMax        float64 `yaml:"haze_max"`         // haze factor cap
	Ambient        float64 `yaml:"ambient"`          // ambient light floor
	SkyColor       RGB     `yaml:"sky_color"`        // haze blend target
	SortBucketSize float64 `yaml:"sort_bucket_size"` // compositor bucket width in meters
}

// RGB is an 8-bit color usable directly in yaml.
type RGB struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

// TerrainConfig holds elevation data and LOD settings.
type TerrainConfig struct {
	RasterPath        string  `yaml:"raster_path"`
	PlanetRadius      float64 `yaml:"planet_radius"`
	AltitudeShift     float64 `yaml:"altitude_shift"`      // tier threshold shift per meter of altitude
	TileCacheSize     int     `yaml:"tile_cache_size"`     // LRU entries, 0 disables caching
	CacheInvalidateKm float64 `yaml:"cache_invalidate_km"` // flush cache when camera moves this far
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Renderer: RendererConfig{
			FOVDegrees:     70,
			NearPlane:      1.0,
			FarPlane:       500000,
			HazeDistance:   50000,
			HazeMax:        0.8,
			Ambient:        0.3,
			SkyColor:       RGB{R: 140, G: 170, B: 215},
			SortBucketSize: 1000,
		},
		Terrain: TerrainConfig{
			RasterPath:        "world.elev.zst",
			PlanetRadius:      geo.EarthRadiusMeters,
			AltitudeShift:     1.0,
			TileCacheSize:     8192,
			CacheInvalidateKm: 5,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
