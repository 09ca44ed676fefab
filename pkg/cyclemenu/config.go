package cyclemenu

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/veandco/go-sdl2/sdl"
	"gopkg.in/yaml.v3"

	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/constants"
	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/internal"
	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/reveal"
)

// Config is the declarative form of a widget, loaded from TOML or YAML.
type Config struct {
	Corner     string `toml:"corner" yaml:"corner" validate:"required,oneof=top-left top-right bottom-left bottom-right"`
	ScrollMode string `toml:"scroll_mode" yaml:"scroll_mode" validate:"omitempty,oneof=bounded infinite"`

	RadiusMode      string `toml:"radius_mode" yaml:"radius_mode" validate:"omitempty,oneof=auto fixed"`
	AutoMinRadius   int    `toml:"auto_min_radius" yaml:"auto_min_radius" validate:"gte=0"`
	AutoMaxRadius   int    `toml:"auto_max_radius" yaml:"auto_max_radius" validate:"gte=0"`
	FixedRadius     int    `toml:"fixed_radius" yaml:"fixed_radius" validate:"gte=0"`
	CollapsedRadius int    `toml:"collapsed_radius" yaml:"collapsed_radius" validate:"gte=0"`

	ScaleFactor  float64 `toml:"scale_factor" yaml:"scale_factor" validate:"omitempty,gte=1"`
	RadiusShrink float64 `toml:"radius_shrink" yaml:"radius_shrink" validate:"omitempty,gt=0,lte=1"`
	ShadowSize   *int    `toml:"shadow_size" yaml:"shadow_size" validate:"omitempty,gte=0"`
	TouchSlop    float64 `toml:"touch_slop" yaml:"touch_slop" validate:"gte=0"`

	RollDuration   time.Duration `toml:"roll_duration" yaml:"roll_duration" validate:"gte=0"`
	RevealDuration time.Duration `toml:"reveal_duration" yaml:"reveal_duration" validate:"gte=0"`
	CloseStagger   time.Duration `toml:"close_stagger" yaml:"close_stagger" validate:"gte=0"`

	Position    *int     `toml:"position" yaml:"position"`
	AngleOffset *float64 `toml:"angle_offset" yaml:"angle_offset"`

	Theme ThemeConfig  `toml:"theme" yaml:"theme"`
	Items []ItemConfig `toml:"items" yaml:"items" validate:"dive"`
}

// ThemeConfig overrides theme colors. Colors are "#RRGGBB" or "#RRGGBBAA".
type ThemeConfig struct {
	Background  string `toml:"background" yaml:"background" validate:"omitempty,hexcolor"`
	Circle      string `toml:"circle" yaml:"circle" validate:"omitempty,hexcolor"`
	Shadow      string `toml:"shadow" yaml:"shadow" validate:"omitempty,hexcolor"`
	Ripple      string `toml:"ripple" yaml:"ripple" validate:"omitempty,hexcolor"`
	Item        string `toml:"item" yaml:"item" validate:"omitempty,hexcolor"`
	Icon        string `toml:"icon" yaml:"icon" validate:"omitempty,hexcolor"`
	Corner      string `toml:"corner" yaml:"corner" validate:"omitempty,hexcolor"`
	CornerImage string `toml:"corner_image" yaml:"corner_image"`
}

// ItemConfig is one menu entry.
type ItemConfig struct {
	ID    int    `toml:"id" yaml:"id"`
	Icon  string `toml:"icon" yaml:"icon" validate:"required"`
	Title string `toml:"title" yaml:"title"`
}

// DefaultConfig returns a bounded, auto sized menu in the top right corner.
func DefaultConfig() Config {
	return Config{
		Corner:          constants.CornerTopRight.String(),
		ScrollMode:      constants.ScrollBounded.String(),
		RadiusMode:      constants.RadiusAuto.String(),
		CollapsedRadius: constants.DefaultCollapsedRadius,
		ScaleFactor:     constants.DefaultScaleFactor,
		RadiusShrink:    constants.DefaultRadiusShrink,
		TouchSlop:       constants.DefaultTouchSlop,
		RollDuration:    constants.DefaultRollDuration,
		RevealDuration:  constants.DefaultRevealDuration,
		CloseStagger:    constants.DefaultCloseStagger,
	}
}

// LoadConfig reads a config file. The format follows the extension: .toml,
// .yaml or .yml. Fields missing from the file keep their DefaultConfig value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("cyclemenu: load config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("cyclemenu: load config: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("cyclemenu: load config: %w", err)
		}
	default:
		return Config{}, invalidArgument("path", fmt.Sprintf("unsupported config format %q", filepath.Ext(path)))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the config against its field rules.
func (c Config) Validate() error {
	if err := internal.ValidateStruct(c); err != nil {
		fields := internal.InvalidFields(err)
		if len(fields) == 0 {
			return fmt.Errorf("cyclemenu: validate config: %w", err)
		}
		return invalidArgument(strings.Join(fields, ", "), err.Error())
	}
	return nil
}

// MenuItems converts the configured entries. Entries without an id are
// numbered by their position.
func (c Config) MenuItems() []MenuItem {
	items := make([]MenuItem, len(c.Items))
	for i, it := range c.Items {
		id := it.ID
		if id == 0 {
			id = i + 1
		}
		items[i] = MenuItem{ID: id, Icon: it.Icon, Title: it.Title}
	}
	return items
}

// ThemeOver returns base with the configured colors applied.
func (c Config) ThemeOver(base Theme) (Theme, error) {
	set := func(dst *sdl.Color, raw string) error {
		if raw == "" {
			return nil
		}
		col, err := internal.ParseHexColor(raw)
		if err != nil {
			return err
		}
		*dst = col
		return nil
	}

	for _, f := range []struct {
		dst *sdl.Color
		raw string
	}{
		{&base.BackgroundColor, c.Theme.Background},
		{&base.CircleColor, c.Theme.Circle},
		{&base.ShadowColor, c.Theme.Shadow},
		{&base.RippleColor, c.Theme.Ripple},
		{&base.ItemColor, c.Theme.Item},
		{&base.IconColor, c.Theme.Icon},
		{&base.CornerColor, c.Theme.Corner},
	} {
		if err := set(f.dst, f.raw); err != nil {
			return base, invalidArgument("theme", err.Error())
		}
	}
	if c.Theme.CornerImage != "" {
		base.CornerImagePath = c.Theme.CornerImage
	}
	return base, nil
}

// Apply configures w. Radius settings are applied before the collapsed
// radius so the latter is checked against them.
func (c Config) Apply(w *Widget) error {
	if err := c.Validate(); err != nil {
		return err
	}

	corner, err := constants.ParseCorner(c.Corner)
	if err != nil {
		return invalidArgument("corner", err.Error())
	}
	scroll, err := constants.ParseScrollMode(c.ScrollMode)
	if err != nil {
		return invalidArgument("scroll_mode", err.Error())
	}
	radius, err := constants.ParseRadiusMode(c.RadiusMode)
	if err != nil {
		return invalidArgument("radius_mode", err.Error())
	}

	if err := w.SetCorner(corner); err != nil {
		return err
	}
	w.SetScrollMode(scroll)
	w.SetRadiusMode(radius)
	w.SetAutoMinRadius(c.AutoMinRadius)
	w.SetAutoMaxRadius(c.AutoMaxRadius)
	w.SetFixedRadius(c.FixedRadius)
	if c.CollapsedRadius > 0 {
		w.SetCollapsedRadius(c.CollapsedRadius)
	}
	if c.ScaleFactor > 0 {
		w.SetScaleFactor(c.ScaleFactor)
	}
	if c.RadiusShrink > 0 {
		w.SetRadiusShrink(c.RadiusShrink)
	}
	if c.ShadowSize != nil {
		w.SetShadowSize(*c.ShadowSize)
	}
	if c.TouchSlop > 0 {
		w.SetTouchSlop(c.TouchSlop)
	}

	timing := reveal.DefaultTiming()
	if c.RollDuration > 0 {
		timing.Roll = c.RollDuration
	}
	if c.CloseStagger > 0 {
		timing.CloseStagger = c.CloseStagger
	}
	w.SetTiming(timing)
	w.SetRevealDuration(c.RevealDuration)

	if c.Position != nil {
		w.SetCurrentPosition(*c.Position)
	}
	if c.AngleOffset != nil {
		w.SetAngleOffset(*c.AngleOffset)
	}
	return nil
}

// NewWidgetFromConfig creates a widget holding the configured items.
func NewWidgetFromConfig(c Config, factory VisualFactory) (*Widget, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	corner, err := constants.ParseCorner(c.Corner)
	if err != nil {
		return nil, invalidArgument("corner", err.Error())
	}

	w, err := NewWidget(corner, NewItemCollection(c.MenuItems()...), factory)
	if err != nil {
		return nil, err
	}
	if err := c.Apply(w); err != nil {
		return nil, err
	}
	return w, nil
}
