package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Render.DrawBoundingBoxes {
		t.Error("expected bounding boxes to be off by default")
	}

	if cfg.Camera.FovY != 60 {
		t.Errorf("expected fov 60, got %f", cfg.Camera.FovY)
	}
	if cfg.Camera.Eye != [3]float32{5, 5, -10} {
		t.Errorf("unexpected default eye %v", cfg.Camera.Eye)
	}
	if cfg.Camera.Near >= cfg.Camera.Far {
		t.Errorf("near %f must be below far %f", cfg.Camera.Near, cfg.Camera.Far)
	}

	if cfg.Shaders.HotReload {
		t.Error("expected hot reload to be off by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "config.yaml",
			content: `
window:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

render:
  clear_color: [0, 0, 0, 1]
  draw_bounding_boxes: true

camera:
  fov_y: 45
  eye: [0, 2, 8]

shaders:
  dir: "assets/glsl"
  hot_reload: true

logging:
  level: "debug"
  log_file: "viewer.log"
`,
		},
		{
			name: "toml",
			file: "config.toml",
			content: `
[window]
width = 1920
height = 1080
fullscreen = true
vsync = false

[render]
clear_color = [0.0, 0.0, 0.0, 1.0]
draw_bounding_boxes = true

[camera]
fov_y = 45.0
eye = [0.0, 2.0, 8.0]

[shaders]
dir = "assets/glsl"
hot_reload = true

[logging]
level = "debug"
log_file = "viewer.log"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			cfg := Default()
			if err := loadFromFile(cfg, configPath); err != nil {
				t.Fatalf("failed to load config: %v", err)
			}

			if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
				t.Errorf("expected 1920x1080, got %dx%d", cfg.Window.Width, cfg.Window.Height)
			}
			if !cfg.Window.Fullscreen {
				t.Error("expected fullscreen to be true")
			}
			if cfg.Window.VSync {
				t.Error("expected vsync to be false")
			}
			if cfg.Window.Title != "sceneview" {
				t.Errorf("title should keep its default, got %q", cfg.Window.Title)
			}

			if cfg.Render.ClearColor != [4]float32{0, 0, 0, 1} {
				t.Errorf("unexpected clear color %v", cfg.Render.ClearColor)
			}
			if !cfg.Render.DrawBoundingBoxes {
				t.Error("expected bounding boxes to be enabled")
			}

			if cfg.Camera.FovY != 45 {
				t.Errorf("expected fov 45, got %f", cfg.Camera.FovY)
			}
			if cfg.Camera.Eye != [3]float32{0, 2, 8} {
				t.Errorf("unexpected eye %v", cfg.Camera.Eye)
			}
			if cfg.Camera.Far != 1000 {
				t.Errorf("far should keep its default, got %f", cfg.Camera.Far)
			}

			if cfg.Shaders.Dir != "assets/glsl" || !cfg.Shaders.HotReload {
				t.Errorf("unexpected shaders section %+v", cfg.Shaders)
			}

			if cfg.Logging.Level != "debug" {
				t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
			}
			if cfg.Logging.LogFile != "viewer.log" {
				t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
			}
		})
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := []struct {
		file    string
		content string
	}{
		{"invalid.yaml", "window:\n  width: not a number\n  invalid syntax here\n"},
		{"invalid.toml", "[window\nwidth = \"wide\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			if err := loadFromFile(Default(), configPath); err == nil {
				t.Error("expected error loading invalid config, got nil")
			}
		})
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("failed to chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWd) })

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile("config.toml", []byte("[window]\nwidth = 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); filepath.Base(path) != "config.toml" {
		t.Errorf("expected to find config.toml, got %q", path)
	}

	// YAML wins when both exist.
	if err := os.WriteFile("config.yaml", []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); filepath.Base(path) != "config.yaml" {
		t.Errorf("expected to find config.yaml, got %q", path)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Render.LogStats {
					t.Error("expected stats logging with debug flag")
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Window.Width)
				}
				if cfg.Window.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "bboxes flag",
			setup: func() { *flagBoxes = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Render.DrawBoundingBoxes {
					t.Error("expected bounding boxes with bboxes flag")
				}
			},
			teardown: func() { *flagBoxes = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width from flag, height from file.
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Window.Width = 800
	cfg.Camera.Eye = [3]float32{1, 2, 3}
	cfg.Shaders.HotReload = true
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	got := Default()
	if err := loadFromFile(got, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if *got != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}
