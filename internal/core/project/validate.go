package project

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultColor is the primary colour used when none is given.
const DefaultColor = "137B8B"

var (
	namePattern     = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	bundleIDPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9]*(\.[a-zA-Z][a-zA-Z0-9]*){2,}$`)
	colorPattern    = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)
)

// ValidateName checks a project name after trimming surrounding space.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if !namePattern.MatchString(name) {
		return &ValidationError{Field: "name", Message: "must match [a-zA-Z0-9_-]+", Value: name, Wrapped: ErrInvalidName}
	}
	return nil
}

// checkDirName accepts any name that is exactly one path element, so that
// existing projects with names ValidateName would refuse stay reachable
// while nothing resolves outside the Game directory.
func checkDirName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty project name", ErrProjectNotFound)
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return &ValidationError{Field: "name", Message: "must be a directory directly under the game directory", Value: name, Wrapped: ErrInvalidName}
	}
	return nil
}

// ValidateBundleID checks a reverse-domain bundle id with at least three segments.
func ValidateBundleID(id string) error {
	id = strings.TrimSpace(id)
	if !bundleIDPattern.MatchString(id) {
		return &ValidationError{Field: "bundle_id", Message: "must look like com.company.app", Value: id, Wrapped: ErrInvalidBundleID}
	}
	return nil
}

// NormalizeColor validates a hex colour with an optional leading # and
// returns it without the #. An empty input yields DefaultColor.
func NormalizeColor(color string) (string, error) {
	color = strings.TrimSpace(color)
	if color == "" {
		return DefaultColor, nil
	}
	clean := strings.TrimPrefix(color, "#")
	if !colorPattern.MatchString(clean) {
		return "", &ValidationError{Field: "color", Message: "must be six hex digits", Value: color, Wrapped: ErrInvalidColor}
	}
	return clean, nil
}

// HexToRGB converts a six-digit hex colour to the rgb(r, g, b) form used by
// script configuration files.
func HexToRGB(color string) (string, error) {
	clean, err := NormalizeColor(color)
	if err != nil {
		return "", err
	}
	v, err := strconv.ParseUint(clean, 16, 32)
	if err != nil {
		return "", &ValidationError{Field: "color", Message: "not a hex number", Value: color, Wrapped: ErrInvalidColor}
	}
	return fmt.Sprintf("rgb(%d, %d, %d)", v>>16&0xFF, v>>8&0xFF, v&0xFF), nil
}
