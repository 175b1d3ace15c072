// Package audio validates uploaded recording files before a session is
// created.
package audio

import (
	"path/filepath"
	"strings"
)

// supportedExtensions lists the accepted recording formats.
var supportedExtensions = map[string]bool{
	".mp3": true,
	".wav": true,
	".m4a": true,
}

// IsSupportedFormat reports whether the filename has a supported audio
// extension. The check is case-insensitive; a missing extension fails.
func IsSupportedFormat(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return supportedExtensions[ext]
}

// FormatErrorMessage returns the user-facing message for an unsupported
// format.
func FormatErrorMessage() string {
	return "unsupported audio format, please upload an mp3, wav or m4a file"
}
