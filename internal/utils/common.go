package utils

import "path/filepath"

// Common utilities used across the loader-api

// GetFileExtension extracts the extension of a client-supplied filename,
// dot included ("report.pdf" -> ".pdf"). Only the base name is considered,
// so the result can never contain a path separator. The display name itself
// is stored as-is; only path derivation goes through this helper.
func GetFileExtension(filename string) string {
	return filepath.Ext(filepath.Base(filename))
}
