// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is returned by Validate for unusable settings.
var ErrInvalid = errors.New("invalid config")

// Config holds all viewer settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Camera   CameraConfig   `yaml:"camera"`
	Controls ControlsConfig `yaml:"controls"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// CameraConfig holds the initial camera parameters.
type CameraConfig struct {
	FOVDegrees float32 `yaml:"fov_degrees"`
	ZNear      float32 `yaml:"z_near"`
	ZFar       float32 `yaml:"z_far"`
	Distance   float32 `yaml:"distance"`
}

// ControlsConfig holds input settings.
type ControlsConfig struct {
	RotateButton        string `yaml:"rotate_button"` // left, middle or right
	ResetAbortedGesture bool   `yaml:"reset_aborted_gesture"`
	ShowWireframe       bool   `yaml:"show_wireframe"`
	ScreenshotDir       string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "orbitview",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Camera: CameraConfig{
			FOVDegrees: 45,
			ZNear:      0.1,
			ZFar:       100,
			Distance:   3,
		},
		Controls: ControlsConfig{
			RotateButton:        "middle",
			ResetAbortedGesture: true,
			ShowWireframe:       true,
			ScreenshotDir:       "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks the settings the camera and window cannot recover from.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Camera.FOVDegrees <= 0 || c.Camera.FOVDegrees >= 180 {
		return fmt.Errorf("%w: fov_degrees %v", ErrInvalid, c.Camera.FOVDegrees)
	}
	if c.Camera.ZNear <= 0 || c.Camera.ZFar <= c.Camera.ZNear {
		return fmt.Errorf("%w: clip planes %v..%v", ErrInvalid, c.Camera.ZNear, c.Camera.ZFar)
	}
	if c.Camera.Distance <= 0 {
		return fmt.Errorf("%w: distance %v", ErrInvalid, c.Camera.Distance)
	}
	switch c.Controls.RotateButton {
	case "left", "middle", "right":
	default:
		return fmt.Errorf("%w: rotate_button %q", ErrInvalid, c.Controls.RotateButton)
	}
	return nil
}
