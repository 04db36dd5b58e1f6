package app

import "math"

// Split presets cycled with Tab: both halves, developer only, creative only.
var splitPresets = []float64{0.5, 1, 0}

// SplitX converts a split fraction into the pixel column where the
// creative half begins.
func SplitX(width int, split float64) int {
	x := int(math.Round(float64(width) * split))
	if x < 0 {
		return 0
	}
	if x > width {
		return width
	}
	return x
}

// NextPreset returns the preset following split. A split between presets
// jumps to the first one.
func NextPreset(split float64) float64 {
	for i, p := range splitPresets {
		if math.Abs(split-p) < 1e-9 {
			return splitPresets[(i+1)%len(splitPresets)]
		}
	}
	return splitPresets[0]
}

// visibleHalves reports which halves cover at least one column.
func visibleHalves(width int, split float64) (developer, creative bool) {
	x := SplitX(width, split)
	return x > 0, x < width
}
