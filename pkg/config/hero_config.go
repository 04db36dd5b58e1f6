package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/decker502/hero/internal/palette"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid hero config")

// Effect types (粒子类型)
const (
	TypeGalaxy = "galaxy"
	TypeBrush  = "brush"
)

// Defaults for every recognised option.
const (
	DefaultGap                      = 4
	DefaultEase                     = 0.1
	DefaultFriction                 = 0.9
	DefaultMouseForce               = 60.0
	DefaultInteractionRadius        = 150.0
	DefaultFusionRadius             = 50.0
	DefaultMaxParticleSize          = 50.0
	DefaultHotColor                 = "#ffffff"
	DefaultSpiralSpeed              = 0.1
	DefaultSuctionEase              = 0.997
	DefaultSuctionGradient          = 0.01
	DefaultBaseTrackStrength        = 0.05
	DefaultPullGradient             = 0.15
	DefaultGlowScale                = 2.5
	DefaultGlowOpacity              = 0.4
	DefaultFlashColor               = "#ffffff"
	DefaultFlashSizeMultiplier      = 4.0
	DefaultFlashIntensityMultiplier = 1.0
	DefaultCharSet                  = "01"
	DefaultColor                    = "#00ff41"
	DefaultCellSize                 = 60.0
	DefaultGradientCacheSize        = 500
	DefaultLoadTimeout              = 10 * time.Second
)

// DefaultColors is the creative palette used when none is configured.
var DefaultColors = []string{"#ffffff"}

// HeroOverrides holds caller-supplied options for one side.
//
// Every field is optional; nil means "not set". Most numeric options treat
// an explicit zero as "not set" too, matching how the page configuration
// has always been read. SpiralSpeed, SuctionGradient, BaseTrackStrength and
// PullGradient are the exceptions: zero is a legal value for them.
type HeroOverrides struct {
	// Sampling (图像采样)
	Gap   *int    `yaml:"gap,omitempty"`
	Image *string `yaml:"image,omitempty"`
	Type  *string `yaml:"type,omitempty"`

	// Base physics (基础物理)
	Ease       *float64 `yaml:"ease,omitempty"`
	Friction   *float64 `yaml:"friction,omitempty"`
	MouseForce *float64 `yaml:"mouseForce,omitempty"`

	// Galaxy interaction (星系交互)
	InteractionRadius *float64 `yaml:"interactionRadius,omitempty"`
	FusionRadius      *float64 `yaml:"fusionRadius,omitempty"`
	MaxParticleSize   *float64 `yaml:"maxParticleSize,omitempty"`
	HotColor          *string  `yaml:"hotColor,omitempty"`
	SpiralSpeed       *float64 `yaml:"spiralSpeed,omitempty"`
	SuctionEase       *float64 `yaml:"suctionEase,omitempty"`
	SuctionGradient   *float64 `yaml:"suctionGradient,omitempty"`
	BaseTrackStrength *float64 `yaml:"baseTrackStrength,omitempty"`
	PullGradient      *float64 `yaml:"pullGradient,omitempty"`
	ReturnEase        *float64 `yaml:"returnEase,omitempty"`

	// Glow and flash rendering (发光与闪光)
	GlowScale                *float64 `yaml:"glowScale,omitempty"`
	GlowOpacity              *float64 `yaml:"glowOpacity,omitempty"`
	FlashColor               *string  `yaml:"flashColor,omitempty"`
	FlashSizeMultiplier      *float64 `yaml:"flashSizeMultiplier,omitempty"`
	FlashIntensityMultiplier *float64 `yaml:"flashIntensityMultiplier,omitempty"`

	// Appearance (外观)
	CharSet *string  `yaml:"charSet,omitempty"`
	Color   *string  `yaml:"color,omitempty"`
	Colors  []string `yaml:"colors,omitempty"`

	// Engine tuning (引擎参数)
	CellSize          *float64       `yaml:"cellSize,omitempty"`
	GradientCacheSize *int           `yaml:"gradientCacheSize,omitempty"`
	LoadTimeout       *time.Duration `yaml:"loadTimeout,omitempty"`
}

// HeroFile is the on-disk layout: one section per persona side.
type HeroFile struct {
	Developer HeroOverrides `yaml:"developer"`
	Creative  HeroOverrides `yaml:"creative"`
}

// Section returns the overrides for the named side ("developer" or "creative").
func (f *HeroFile) Section(side string) (HeroOverrides, error) {
	switch side {
	case "developer":
		return f.Developer, nil
	case "creative":
		return f.Creative, nil
	}
	return HeroOverrides{}, fmt.Errorf("%w: unknown side %q", ErrInvalidConfig, side)
}

// HeroSettings is a fully resolved, immutable set of options.
type HeroSettings struct {
	Gap   int
	Image string
	Type  string

	Ease       float64
	Friction   float64
	MouseForce float64

	InteractionRadius float64
	FusionRadius      float64
	MaxParticleSize   float64
	HotColor          palette.RGB
	SpiralSpeed       float64
	SuctionEase       float64
	SuctionGradient   float64
	BaseTrackStrength float64
	PullGradient      float64
	// ReturnEase is 0 when unset; particles then fall back to their own ease.
	ReturnEase float64

	GlowScale                float64
	GlowOpacity              float64
	FlashColor               palette.RGB
	FlashSizeMultiplier      float64
	FlashIntensityMultiplier float64

	CharSet []rune
	Color   palette.RGB
	Colors  []palette.RGB

	CellSize          float64
	GradientCacheSize int
	LoadTimeout       time.Duration
}

// IsGalaxy reports whether the galaxy variant (fusion, payloads) is enabled.
func (s HeroSettings) IsGalaxy() bool {
	return s.Type == TypeGalaxy
}

// LoadHeroFile reads a hero configuration file from disk.
func LoadHeroFile(path string) (*HeroFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read hero config file %s: %w", path, err)
	}
	return ParseHeroFile(data, path)
}

// ParseHeroFile decodes YAML hero configuration. source is only used in
// error messages.
func ParseHeroFile(data []byte, source string) (*HeroFile, error) {
	var file HeroFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse hero config YAML from %s: %w", source, err)
	}
	if err := validateOverrides(&file.Developer); err != nil {
		return nil, fmt.Errorf("developer section of %s: %w", source, err)
	}
	if err := validateOverrides(&file.Creative); err != nil {
		return nil, fmt.Errorf("creative section of %s: %w", source, err)
	}
	return &file, nil
}

// validateOverrides rejects values that would break the simulation.
// Absent values are always fine.
func validateOverrides(o *HeroOverrides) error {
	if o.Gap != nil && *o.Gap < 0 {
		return fmt.Errorf("%w: gap must not be negative, got %d", ErrInvalidConfig, *o.Gap)
	}
	if o.Friction != nil && (*o.Friction < 0 || *o.Friction >= 1) {
		return fmt.Errorf("%w: friction must be in (0,1), got %v", ErrInvalidConfig, *o.Friction)
	}
	if o.Type != nil {
		switch *o.Type {
		case "", TypeGalaxy, TypeBrush:
		default:
			return fmt.Errorf("%w: unknown type %q", ErrInvalidConfig, *o.Type)
		}
	}
	if o.CellSize != nil && *o.CellSize < 0 {
		return fmt.Errorf("%w: cellSize must not be negative", ErrInvalidConfig)
	}
	if o.GradientCacheSize != nil && *o.GradientCacheSize < 0 {
		return fmt.Errorf("%w: gradientCacheSize must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Merge layers over on top of base and returns the result. Neither input is
// modified and the result shares no memory with them.
func Merge(base, over HeroOverrides) HeroOverrides {
	var out HeroOverrides
	layer(&out, base)
	layer(&out, over)
	return out
}

// layer copies every option set in src into dst.
func layer(dst *HeroOverrides, src HeroOverrides) {
	pickInt(&dst.Gap, src.Gap)
	pickString(&dst.Image, src.Image)
	pickString(&dst.Type, src.Type)
	pickFloat(&dst.Ease, src.Ease)
	pickFloat(&dst.Friction, src.Friction)
	pickFloat(&dst.MouseForce, src.MouseForce)
	pickFloat(&dst.InteractionRadius, src.InteractionRadius)
	pickFloat(&dst.FusionRadius, src.FusionRadius)
	pickFloat(&dst.MaxParticleSize, src.MaxParticleSize)
	pickString(&dst.HotColor, src.HotColor)
	pickFloat(&dst.SpiralSpeed, src.SpiralSpeed)
	pickFloat(&dst.SuctionEase, src.SuctionEase)
	pickFloat(&dst.SuctionGradient, src.SuctionGradient)
	pickFloat(&dst.BaseTrackStrength, src.BaseTrackStrength)
	pickFloat(&dst.PullGradient, src.PullGradient)
	pickFloat(&dst.ReturnEase, src.ReturnEase)
	pickFloat(&dst.GlowScale, src.GlowScale)
	pickFloat(&dst.GlowOpacity, src.GlowOpacity)
	pickString(&dst.FlashColor, src.FlashColor)
	pickFloat(&dst.FlashSizeMultiplier, src.FlashSizeMultiplier)
	pickFloat(&dst.FlashIntensityMultiplier, src.FlashIntensityMultiplier)
	pickString(&dst.CharSet, src.CharSet)
	pickString(&dst.Color, src.Color)
	if len(src.Colors) > 0 {
		dst.Colors = append([]string(nil), src.Colors...)
	}
	pickFloat(&dst.CellSize, src.CellSize)
	pickInt(&dst.GradientCacheSize, src.GradientCacheSize)
	if src.LoadTimeout != nil {
		v := *src.LoadTimeout
		dst.LoadTimeout = &v
	}
}

func pickFloat(dst **float64, v *float64) {
	if v != nil {
		c := *v
		*dst = &c
	}
}

func pickInt(dst **int, v *int) {
	if v != nil {
		c := *v
		*dst = &c
	}
}

func pickString(dst **string, v *string) {
	if v != nil {
		c := *v
		*dst = &c
	}
}

// Resolve applies defaults to every absent option.
func Resolve(o HeroOverrides) HeroSettings {
	s := HeroSettings{
		Gap:   DefaultGap,
		Type:  stringOr(o.Type, ""),
		Image: stringOr(o.Image, ""),

		Ease:       truthyOr(o.Ease, DefaultEase),
		Friction:   truthyOr(o.Friction, DefaultFriction),
		MouseForce: truthyOr(o.MouseForce, DefaultMouseForce),

		InteractionRadius: truthyOr(o.InteractionRadius, DefaultInteractionRadius),
		FusionRadius:      truthyOr(o.FusionRadius, DefaultFusionRadius),
		MaxParticleSize:   truthyOr(o.MaxParticleSize, DefaultMaxParticleSize),
		HotColor:          palette.HexToRGB(nonEmptyOr(o.HotColor, DefaultHotColor)),
		SpiralSpeed:       definedOr(o.SpiralSpeed, DefaultSpiralSpeed),
		SuctionEase:       truthyOr(o.SuctionEase, DefaultSuctionEase),
		SuctionGradient:   definedOr(o.SuctionGradient, DefaultSuctionGradient),
		BaseTrackStrength: definedOr(o.BaseTrackStrength, DefaultBaseTrackStrength),
		PullGradient:      definedOr(o.PullGradient, DefaultPullGradient),
		ReturnEase:        truthyOr(o.ReturnEase, 0),

		GlowScale:                truthyOr(o.GlowScale, DefaultGlowScale),
		GlowOpacity:              truthyOr(o.GlowOpacity, DefaultGlowOpacity),
		FlashColor:               palette.HexToRGB(nonEmptyOr(o.FlashColor, DefaultFlashColor)),
		FlashSizeMultiplier:      truthyOr(o.FlashSizeMultiplier, DefaultFlashSizeMultiplier),
		FlashIntensityMultiplier: truthyOr(o.FlashIntensityMultiplier, DefaultFlashIntensityMultiplier),

		CharSet: []rune(nonEmptyOr(o.CharSet, DefaultCharSet)),
		Color:   palette.HexToRGB(nonEmptyOr(o.Color, DefaultColor)),

		CellSize:          truthyOr(o.CellSize, DefaultCellSize),
		GradientCacheSize: DefaultGradientCacheSize,
		LoadTimeout:       DefaultLoadTimeout,
	}

	if o.Gap != nil && *o.Gap > 0 {
		s.Gap = *o.Gap
	}
	if o.GradientCacheSize != nil && *o.GradientCacheSize > 0 {
		s.GradientCacheSize = *o.GradientCacheSize
	}
	if o.LoadTimeout != nil && *o.LoadTimeout > 0 {
		s.LoadTimeout = *o.LoadTimeout
	}

	colors := o.Colors
	if len(colors) == 0 {
		colors = DefaultColors
	}
	s.Colors = make([]palette.RGB, len(colors))
	for i, c := range colors {
		s.Colors[i] = palette.HexToRGB(c)
	}

	return s
}

// truthyOr returns the value unless it is absent or zero.
func truthyOr(v *float64, def float64) float64 {
	if v == nil || *v == 0 {
		return def
	}
	return *v
}

// definedOr returns the value unless it is absent; zero is kept.
func definedOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func nonEmptyOr(v *string, def string) string {
	if v == nil || *v == "" {
		return def
	}
	return *v
}

func stringOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}

// ResolveSide layers the side's section of over (may be nil) on top of the
// same section of base and resolves the result.
func ResolveSide(base, over *HeroFile, side string) (HeroSettings, error) {
	var merged HeroOverrides
	for _, f := range []*HeroFile{base, over} {
		if f == nil {
			continue
		}
		section, err := f.Section(side)
		if err != nil {
			return HeroSettings{}, err
		}
		merged = Merge(merged, section)
	}
	return Resolve(merged), nil
}
