package utils

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// allowedImageExtensions lists the upload types product images may use.
var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// IsAllowedImageExtension reports whether the filename has an accepted image
// extension (case-insensitive).
func IsAllowedImageExtension(filename string) bool {
	return allowedImageExtensions[strings.ToLower(filepath.Ext(filename))]
}

// GenerateUploadFilename builds a collision-free stored name for an upload:
// a uuid prefix plus the sanitized original base name.
func GenerateUploadFilename(originalName string) string {
	base := filepath.Base(originalName)
	base = strings.ReplaceAll(base, " ", "_")
	return fmt.Sprintf("%s_%s", uuid.NewString(), base)
}
