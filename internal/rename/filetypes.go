package rename

import (
	"path/filepath"
	"slices"
	"strings"
)

// allowedExtensions are the file types the pipeline understands: still
// images for the embedded-metadata source plus the ISO-BMFF containers the
// movie-header source can read.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".gif":  true,
	".heic": true,
	".heif": true,
	".mp4":  true,
	".m4v":  true,
	".mov":  true,
}

// AllowedFile reports whether path's extension is in the supported set.
// Matching is case-insensitive.
func AllowedFile(path string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(path))]
}

// AllowedExtensions returns the supported extensions without the leading
// dot, sorted, for help and error text.
func AllowedExtensions() []string {
	exts := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		exts = append(exts, strings.TrimPrefix(ext, "."))
	}
	slices.Sort(exts)
	return exts
}
