package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Config holds the application configuration
type Config struct {
	Paths    *Paths
	Viewport ViewportSettings
	UI       UISettings
}

// ViewportSettings configure the scroll controller and content rendering.
type ViewportSettings struct {
	BarOptions     map[string]string // inline style applied to both thumbs
	WheelStep      float64           // rows/columns per wheel tick
	PollInterval   time.Duration     // resize watcher interval
	DragAnchor     string            // "grab" or "center"
	MinParentSize  float64           // parent smaller than this uses FallbackSize
	FallbackSize   float64
	Highlight      bool
	HighlightStyle string // chroma style name
	TabWidth       int
}

// DefaultViewportSettings returns settings tuned for terminal cells.
func DefaultViewportSettings() ViewportSettings {
	return ViewportSettings{
		BarOptions:     map[string]string{},
		WheelStep:      3,
		PollInterval:   500 * time.Millisecond,
		DragAnchor:     "grab",
		MinParentSize:  3,
		FallbackSize:   12,
		Highlight:      true,
		HighlightStyle: "monokai",
		TabWidth:       8,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() (*Config, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}
	return &Config{
		Paths:    paths,
		Viewport: DefaultViewportSettings(),
		UI:       defaultUISettings(),
	}, nil
}

// Load loads config overrides from ~/.scrollster/config.json if present.
func Load() (*Config, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return nil, err
	}
	return cfg, cfg.reload()
}

// LoadFrom loads config overrides from path, keeping the default home for logs.
func LoadFrom(path string) (*Config, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return nil, err
	}
	cfg.Paths.ConfigPath = path
	return cfg, cfg.reload()
}

func (c *Config) reload() error {
	data, err := os.ReadFile(c.Paths.ConfigPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	viewport, err := parseViewportSettings(data, c.Viewport)
	if err != nil {
		return fmt.Errorf("parse %s: %w", c.Paths.ConfigPath, err)
	}
	c.Viewport = viewport
	c.UI = loadUISettings(c.Paths.ConfigPath)
	return nil
}

func parseViewportSettings(data []byte, base ViewportSettings) (ViewportSettings, error) {
	var raw struct {
		BarOptions     json.RawMessage `json:"bar_options"`
		WheelStep      *float64        `json:"wheel_step"`
		PollIntervalMs *int            `json:"poll_interval_ms"`
		DragAnchor     *string         `json:"drag_anchor"`
		MinParentSize  *float64        `json:"min_parent_size"`
		FallbackSize   *float64        `json:"fallback_size"`
		Highlight      *bool           `json:"highlight"`
		HighlightStyle *string         `json:"highlight_style"`
		TabWidth       *int            `json:"tab_width"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return base, err
	}

	settings := base
	if opts, ok := parseBarOptions(raw.BarOptions); ok {
		settings.BarOptions = opts
	}
	if raw.WheelStep != nil && *raw.WheelStep > 0 {
		settings.WheelStep = *raw.WheelStep
	}
	if raw.PollIntervalMs != nil && *raw.PollIntervalMs > 0 {
		settings.PollInterval = time.Duration(*raw.PollIntervalMs) * time.Millisecond
	}
	if raw.DragAnchor != nil {
		settings.DragAnchor = *raw.DragAnchor
	}
	if raw.MinParentSize != nil {
		settings.MinParentSize = *raw.MinParentSize
	}
	if raw.FallbackSize != nil {
		settings.FallbackSize = *raw.FallbackSize
	}
	if raw.Highlight != nil {
		settings.Highlight = *raw.Highlight
	}
	if raw.HighlightStyle != nil {
		settings.HighlightStyle = *raw.HighlightStyle
	}
	if raw.TabWidth != nil && *raw.TabWidth > 0 {
		settings.TabWidth = *raw.TabWidth
	}
	return settings, nil
}

// parseBarOptions accepts any JSON object and stringifies its values.
// Anything that is not an object is ignored.
func parseBarOptions(data json.RawMessage) (map[string]string, bool) {
	if len(data) == 0 {
		return nil, false
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil || obj == nil {
		return nil, false
	}
	opts := make(map[string]string, len(obj))
	for k, v := range obj {
		switch val := v.(type) {
		case string:
			opts[k] = val
		case nil:
			opts[k] = ""
		default:
			opts[k] = fmt.Sprint(val)
		}
	}
	return opts, true
}
