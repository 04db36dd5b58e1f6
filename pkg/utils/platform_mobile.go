//go:build mobile

package utils

// IsMobile reports true in ebitenmobile builds, where the split presets
// are cycled by touch instead of Tab.
func IsMobile() bool {
	return true
}
