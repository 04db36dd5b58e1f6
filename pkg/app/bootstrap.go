package app

import (
	"fmt"

	"github.com/decker502/hero/pkg/config"
)

// HeroConfigPath is the embedded configuration holding both sides.
const HeroConfigPath = "data/hero.yaml"

// LoadSettings resolves both sides from the embedded configuration, an
// optional user file and an optional creative type override.
//
// Parameters:
//   - base: content of the embedded data/hero.yaml
//   - overridePath: user YAML file layered on top, "" for none
//   - creativeType: "galaxy" or "brush" to force the creative variant, "" to keep the file's
//
// Returns the developer and creative settings.
func LoadSettings(base []byte, overridePath, creativeType string) (dev, creative config.HeroSettings, err error) {
	baseFile, err := config.ParseHeroFile(base, HeroConfigPath)
	if err != nil {
		return dev, creative, err
	}

	var overFile *config.HeroFile
	if overridePath != "" {
		overFile, err = config.LoadHeroFile(overridePath)
		if err != nil {
			return dev, creative, err
		}
	}

	dev, err = config.ResolveSide(baseFile, overFile, "developer")
	if err != nil {
		return dev, creative, err
	}
	creative, err = config.ResolveSide(baseFile, overFile, "creative")
	if err != nil {
		return dev, creative, err
	}

	switch creativeType {
	case "":
	case config.TypeGalaxy, config.TypeBrush:
		creative.Type = creativeType
	default:
		return dev, creative, fmt.Errorf("%w: unknown type %q", config.ErrInvalidConfig, creativeType)
	}
	return dev, creative, nil
}
