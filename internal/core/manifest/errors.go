// Package manifest edits the front-end manifest as an ordered list of text
// lines. Sections are located by line patterns rather than a YAML grammar, so
// everything outside an edited section is preserved byte for byte.
package manifest

import "errors"

// Sentinel errors for manifest operations.
var (
	// ErrManifestNotFound indicates the manifest file does not exist.
	ErrManifestNotFound = errors.New("manifest: file not found")

	// ErrSectionNotFound indicates no line matched a section anchor.
	ErrSectionNotFound = errors.New("manifest: section not found")

	// ErrFilesystem indicates a read or write of the manifest failed.
	ErrFilesystem = errors.New("manifest: filesystem error")

	// ErrBackupNotFound indicates Restore found no backup to restore.
	ErrBackupNotFound = errors.New("manifest: backup not found")

	// ErrInvalidManifest indicates the manifest failed the sanity check.
	ErrInvalidManifest = errors.New("manifest: invalid manifest")
)
