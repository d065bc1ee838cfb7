// Package config loads the optional sheet.yaml file that the demo and
// render commands read their presentation settings from.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/bottomsheet/pkg/animation"
	"github.com/go-drift/bottomsheet/pkg/errors"
	"github.com/go-drift/bottomsheet/pkg/graphics"
	"github.com/go-drift/bottomsheet/pkg/sheet"
)

// Config represents the optional sheet.yaml configuration.
type Config struct {
	Demo  DemoConfig  `yaml:"demo"`
	Sheet SheetConfig `yaml:"sheet"`
}

// DemoConfig contains host window settings.
type DemoConfig struct {
	Title  string  `yaml:"title,omitempty"`
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
}

// SheetConfig contains sheet behavior settings.
type SheetConfig struct {
	Height          float64      `yaml:"height,omitempty"`
	Animation       string       `yaml:"animation,omitempty"`
	DurationMS      int          `yaml:"duration_ms,omitempty"`
	Spring          SpringConfig `yaml:"spring,omitempty"`
	BackdropColor   string       `yaml:"backdrop_color,omitempty"`
	DismissVelocity float64      `yaml:"dismiss_velocity,omitempty"`
}

// SpringConfig describes a spring transition. Zero fields fall back to
// the stock iOS-feel spring.
type SpringConfig struct {
	Mass      float64 `yaml:"mass,omitempty"`
	Stiffness float64 `yaml:"stiffness,omitempty"`
	Damping   float64 `yaml:"damping,omitempty"`
}

// Resolved contains resolved configuration values with defaults applied.
type Resolved struct {
	Root            string
	ModulePath      string
	Title           string
	ScreenSize      graphics.Size
	SheetHeight     float64
	Transition      animation.TransitionSpec
	BackdropColor   graphics.Color
	DismissVelocity float64
}

// Defaults used when sheet.yaml is absent or leaves fields unset.
const (
	DefaultWidth       = 400.0
	DefaultHeight      = 800.0
	DefaultSheetHeight = 320.0
)

// LoadOptional reads sheet.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, "sheet.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read sheet.yaml: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse sheet.yaml: %w", err)
	}

	return &cfg, nil
}

// Resolve loads sheet.yaml (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := readModulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, "sheet.yaml")

	title := strings.TrimSpace(cfg.Demo.Title)
	if title == "" {
		title = defaultTitle(modulePath, dir)
	}

	width := cfg.Demo.Width
	if width <= 0 {
		width = DefaultWidth
	}
	height := cfg.Demo.Height
	if height <= 0 {
		height = DefaultHeight
	}

	sheetHeight := cfg.Sheet.Height
	if sheetHeight <= 0 {
		sheetHeight = DefaultSheetHeight
	}

	spec, err := resolveTransition(path, cfg.Sheet)
	if err != nil {
		return nil, err
	}

	backdrop := sheet.DefaultBackdropColor
	if raw := strings.TrimSpace(cfg.Sheet.BackdropColor); raw != "" {
		backdrop, err = graphics.ParseColor(raw)
		if err != nil {
			return nil, fmt.Errorf("sheet.backdrop_color: %w", err)
		}
	}

	if cfg.Sheet.DismissVelocity < 0 {
		return nil, &errors.ParseError{Path: path, Setting: "sheet.dismiss_velocity", Got: cfg.Sheet.DismissVelocity}
	}

	return &Resolved{
		Root:            dir,
		ModulePath:      modulePath,
		Title:           title,
		ScreenSize:      graphics.Size{Width: width, Height: height},
		SheetHeight:     sheetHeight,
		Transition:      spec,
		BackdropColor:   backdrop,
		DismissVelocity: cfg.Sheet.DismissVelocity,
	}, nil
}

// SheetOptions converts the resolved settings into sheet constructor options.
func (r *Resolved) SheetOptions() []sheet.Option {
	opts := []sheet.Option{sheet.WithBackdropColor(r.BackdropColor)}
	switch r.Transition.Kind {
	case animation.TransitionSpring:
		opts = append(opts, sheet.WithSpring(r.Transition.Spring))
	default:
		opts = append(opts, sheet.WithTiming(r.Transition.Duration, r.Transition.Curve))
	}
	if r.DismissVelocity > 0 {
		opts = append(opts, sheet.WithDismissVelocity(r.DismissVelocity))
	}
	return opts
}

// FindProjectRoot walks up from the current directory to find go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func resolveTransition(path string, cfg SheetConfig) (animation.TransitionSpec, error) {
	duration := time.Duration(cfg.DurationMS) * time.Millisecond
	if cfg.DurationMS < 0 {
		return animation.TransitionSpec{}, &errors.ParseError{Path: path, Setting: "sheet.duration_ms", Got: cfg.DurationMS}
	}
	if duration == 0 {
		duration = animation.DefaultDuration
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Animation)) {
	case "", "timing":
		return animation.TransitionSpec{
			Kind:     animation.TransitionTimed,
			Duration: duration,
			Curve:    animation.QuadraticCurve,
		}, nil
	case "spring":
		desc := animation.IOSSpring()
		if cfg.Spring.Mass > 0 {
			desc.Mass = cfg.Spring.Mass
		}
		if cfg.Spring.Stiffness > 0 {
			desc.Stiffness = cfg.Spring.Stiffness
		}
		if cfg.Spring.Damping > 0 {
			desc.Damping = cfg.Spring.Damping
		}
		return animation.TransitionSpec{
			Kind:   animation.TransitionSpring,
			Spring: desc,
		}, nil
	default:
		return animation.TransitionSpec{}, &errors.ParseError{Path: path, Setting: "sheet.animation", Got: cfg.Animation}
	}
}

func readModulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultTitle(modulePath, dir string) string {
	base := filepath.Base(dir)
	modName, _, ok := module.SplitPathVersion(modulePath)
	if ok {
		parts := strings.Split(modName, "/")
		if len(parts) > 0 {
			base = parts[len(parts)-1]
		}
	}
	if base == "" {
		return "bottomsheet"
	}
	return base
}
