package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// Limits accepted for print settings.
const (
	MaxPrintWidth = 1000
	MaxTabWidth   = 16
)

// ValidateFilename validates a filename used to pick a language, e.g. from a
// request parameter. It must be a plain base name.
func ValidateFilename(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "filename cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "filename too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "filename contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidInput, "filename cannot contain path separators")
	}

	if name == "." || name == ".." {
		return New(ErrCodeInvalidInput, "filename %q is not a file", name)
	}

	return nil
}

// ValidatePath validates a path given on the command line or in a config
// file. Unlike [ValidateFilename] it allows directories and absolute paths.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateGlob checks that pattern is a well-formed glob.
func ValidateGlob(pattern string) error {
	if pattern == "" {
		return New(ErrCodeInvalidConfig, "glob pattern cannot be empty")
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return Wrap(ErrCodeInvalidConfig, err, "invalid glob pattern %q", pattern)
	}
	return nil
}

// ValidatePrintWidth checks a print width. Zero means "use the default".
func ValidatePrintWidth(width int) error {
	if width < 0 || width > MaxPrintWidth {
		return New(ErrCodeInvalidConfig, "print width must be between 1 and %d, got %d", MaxPrintWidth, width)
	}
	return nil
}

// ValidateTabWidth checks a tab width. Zero means "use the default".
func ValidateTabWidth(width int) error {
	if width < 0 || width > MaxTabWidth {
		return New(ErrCodeInvalidConfig, "tab width must be between 1 and %d, got %d", MaxTabWidth, width)
	}
	return nil
}
