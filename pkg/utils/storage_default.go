//go:build !android

package utils

// EnsureStorageDir prepares the directory the viewer preferences are saved in.
// On desktop and iOS gdata creates its own directory, so there is nothing to do.
func EnsureStorageDir() error {
	return nil
}

// GetStoragePath returns the preference directory when it has to be managed
// by hand, "" otherwise.
func GetStoragePath() string {
	return ""
}
