//go:build !mobile

// Package mobile holds the ebitenmobile entry point of the hero viewer.
// Without the mobile tag only this placeholder is compiled, so
// `go build ./...` keeps working on desktop.
package mobile

// Dummy keeps the package non-empty in desktop builds.
func Dummy() {}
