// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Scene    SceneConfig    `yaml:"scene"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// SceneConfig holds scene registry settings.
type SceneConfig struct {
	Name      string `yaml:"name"`
	MaxModels int    `yaml:"max_models"` // Soft cap, logged when exceeded
}

// ViewerConfig holds demo scene settings.
type ViewerConfig struct {
	ModelCount     int     `yaml:"model_count"`
	SpinSpeed      float32 `yaml:"spin_speed"` // Radians per second
	CameraDistance float32 `yaml:"camera_distance"`
	ShowFPS        bool    `yaml:"show_fps"`
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
			FPSLimit:   0,
		},
		Scene: SceneConfig{
			Name:      "main",
			MaxModels: 4096,
		},
		Viewer: ViewerConfig{
			ModelCount:     9,
			SpinSpeed:      0.8,
			CameraDistance: 12,
			ShowFPS:        false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
