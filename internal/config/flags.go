package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagViewer     = flag.Bool("viewer", false, "Render the scene in an SDL window instead of running headless")
	flagAssets     = flag.String("assets", "", "Extra asset directory (highest priority)")
	flagFrames     = flag.Int("frames", 0, "Headless session length in frames")
	flagFullscreen = flag.Bool("fullscreen", false, "Run the viewer fullscreen")
	flagSaveConfig = flag.Bool("save-config", false, "Write the effective config to the user config dir and continue")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// Viewer reports whether -viewer was set.
func Viewer() bool {
	return *flagViewer
}

// SaveRequested reports whether -save-config was set.
func SaveRequested() bool {
	return *flagSaveConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagAssets != "" {
		cfg.Assets.Dirs = append(cfg.Assets.Dirs, *flagAssets)
	}
	if *flagFrames > 0 {
		cfg.Sim.Frames = *flagFrames
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
}
