// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window" toml:"window"`
	Render  RenderConfig  `yaml:"render" toml:"render"`
	Camera  CameraConfig  `yaml:"camera" toml:"camera"`
	Shaders ShaderConfig  `yaml:"shaders" toml:"shaders"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title" toml:"title"`
	Width      int    `yaml:"width" toml:"width"`
	Height     int    `yaml:"height" toml:"height"`
	Fullscreen bool   `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool   `yaml:"vsync" toml:"vsync"`
}

// RenderConfig holds draw pass settings.
type RenderConfig struct {
	ClearColor        [4]float32 `yaml:"clear_color" toml:"clear_color"`
	DrawBoundingBoxes bool       `yaml:"draw_bounding_boxes" toml:"draw_bounding_boxes"`
	// LogStats logs the draw statistics once per second.
	LogStats bool `yaml:"log_stats" toml:"log_stats"`
}

// CameraConfig is the initial viewer camera. Angles are in degrees.
type CameraConfig struct {
	FovY   float32    `yaml:"fov_y" toml:"fov_y"`
	Near   float32    `yaml:"near" toml:"near"`
	Far    float32    `yaml:"far" toml:"far"`
	Eye    [3]float32 `yaml:"eye" toml:"eye"`
	Target [3]float32 `yaml:"target" toml:"target"`
	Up     [3]float32 `yaml:"up" toml:"up"`
}

// ShaderConfig locates user shaders.
type ShaderConfig struct {
	Dir       string `yaml:"dir" toml:"dir"`
	HotReload bool   `yaml:"hot_reload" toml:"hot_reload"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "sceneview",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Render: RenderConfig{
			ClearColor: [4]float32{0.1, 0.1, 0.12, 1},
		},
		Camera: CameraConfig{
			FovY:   60,
			Near:   0.1,
			Far:    1000,
			Eye:    [3]float32{5, 5, -10},
			Target: [3]float32{0, 0, 0},
			Up:     [3]float32{0, 1, 0},
		},
		Shaders: ShaderConfig{
			Dir: "shaders",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
