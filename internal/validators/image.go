package validators

import (
	"path/filepath"
	"strings"
)

var allowedImageTypes = map[string]bool{
	"jpeg": true,
	"jpg":  true,
	"png":  true,
	"gif":  true,
	"webp": true,
}

// IsAllowedImage requires both the file extension and the declared content
// type to name one of the accepted image formats.
func IsAllowedImage(filename, contentType string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if !allowedImageTypes[ext] {
		return false
	}

	mediaType, sub, ok := strings.Cut(strings.ToLower(contentType), "/")
	if !ok || mediaType != "image" {
		return false
	}
	sub, _, _ = strings.Cut(sub, ";")
	return allowedImageTypes[strings.TrimSpace(sub)]
}
