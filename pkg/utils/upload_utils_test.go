package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAllowedImageExtension(t *testing.T) {
	assert.True(t, IsAllowedImageExtension("photo.png"))
	assert.True(t, IsAllowedImageExtension("PHOTO.JPG"))
	assert.True(t, IsAllowedImageExtension("anim.webp"))
	assert.False(t, IsAllowedImageExtension("script.exe"))
	assert.False(t, IsAllowedImageExtension("archive.zip"))
	assert.False(t, IsAllowedImageExtension("noextension"))
}

func TestGenerateUploadFilename(t *testing.T) {
	name := GenerateUploadFilename("my product photo.png")
	assert.True(t, strings.HasSuffix(name, "_my_product_photo.png"))
	assert.NotContains(t, name, " ")

	// Path components in the client-supplied name are stripped.
	name = GenerateUploadFilename("../../etc/passwd.png")
	assert.True(t, strings.HasSuffix(name, "_passwd.png"))
	assert.NotContains(t, name, "/")

	// Two uploads of the same file never collide.
	assert.NotEqual(t, GenerateUploadFilename("a.png"), GenerateUploadFilename("a.png"))
}
