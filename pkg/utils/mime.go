package utils

import (
	"path"
	"strings"
)

// extensionToMimeType maps the image extensions seen in moment exports to
// their MIME types.
var extensionToMimeType = map[string]string{
	".bmp":  "image/bmp",
	".gif":  "image/gif",
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".svg":  "image/svg+xml",
	".webp": "image/webp",
}

// GetMimeTypeFromReference guesses an image MIME type from the extension of a
// remote reference or local-asset handle. Export feeds routinely serve images
// from extension-less URLs, so unknown extensions default to "image/jpeg".
func GetMimeTypeFromReference(ref string) string {
	ext := strings.ToLower(path.Ext(strings.Split(ref, "?")[0]))
	if mime, ok := extensionToMimeType[ext]; ok {
		return mime
	}

	return "image/jpeg"
}
