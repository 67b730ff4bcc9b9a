// Package config handles demo configuration loading and management.
package config

// Config holds all demo settings.
type Config struct {
	Tracking  TrackingConfig  `yaml:"tracking"`
	Assets    AssetsConfig    `yaml:"assets"`
	Animation AnimationConfig `yaml:"animation"`
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Audio     AudioConfig     `yaml:"audio"`
	Sim       SimConfig       `yaml:"sim"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// TrackingConfig describes the physical marker to look for.
type TrackingConfig struct {
	MarkerImage  string  `yaml:"marker_image"`   // reference image asset name
	MarkerWidthM float32 `yaml:"marker_width_m"` // physical width in meters
}

// AssetsConfig holds asset locations and names.
type AssetsConfig struct {
	Dirs           []string `yaml:"dirs"`            // search directories, later wins
	FramePattern   string   `yaml:"frame_pattern"`   // Sprintf pattern for numbered frames
	FrameCount     int      `yaml:"frame_count"`     // frames in the material sequence
	CheckerTexture string   `yaml:"checker_texture"` // cube texture
	PlaneModel     string   `yaml:"plane_model"`     // plane mesh
	Chime          string   `yaml:"chime"`           // detection sound
}

// AnimationConfig holds animation timing settings.
type AnimationConfig struct {
	MaterialRateHz  float64 `yaml:"material_rate_hz"`  // material advances per second
	RotationStepRad float32 `yaml:"rotation_step_rad"` // cube spin per render tick
}

// GraphicsConfig holds viewer display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// AudioConfig holds detection chime settings.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// SimConfig holds the scripted headless session settings.
type SimConfig struct {
	Frames      int     `yaml:"frames"`       // frames to run before exiting
	FrameRate   float64 `yaml:"frame_rate"`   // simulated display refresh in Hz
	DetectFrame int     `yaml:"detect_frame"` // frame at which the marker is "seen"
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Tracking: TrackingConfig{
			MarkerImage:  "marker.png",
			MarkerWidthM: 0.15,
		},
		Assets: AssetsConfig{
			Dirs:           []string{"assets"},
			FramePattern:   "frames/frame%02d.png",
			FrameCount:     11,
			CheckerTexture: "checker.tga",
			PlaneModel:     "plane.obj",
			Chime:          "chime.wav",
		},
		Animation: AnimationConfig{
			MaterialRateHz:  15,
			RotationStepRad: 0.02,
		},
		Graphics: GraphicsConfig{
			Width:      960,
			Height:     540,
			Fullscreen: false,
			VSync:      true,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.8,
		},
		Sim: SimConfig{
			Frames:      600,
			FrameRate:   60,
			DetectFrame: 90,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
