package utils

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uploadFile builds a FileHeader the way an HTTP multipart upload would.
func uploadFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("profileImage", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(&body, writer.Boundary()).ReadForm(10 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	require.Len(t, form.File["profileImage"], 1)
	return form.File["profileImage"][0]
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestValidateImage(t *testing.T) {
	tests := []struct {
		name string
		file *multipart.FileHeader
		want error
	}{
		{"png", &multipart.FileHeader{Filename: "a.png", Size: 10}, nil},
		{"upper jpeg", &multipart.FileHeader{Filename: "A.JPEG", Size: 10}, nil},
		{"gif", &multipart.FileHeader{Filename: "a.gif", Size: MaxImageSize}, nil},
		{"pdf", &multipart.FileHeader{Filename: "a.pdf", Size: 10}, ErrUnsupportedImage},
		{"no extension", &multipart.FileHeader{Filename: "image", Size: 10}, ErrUnsupportedImage},
		{"too large", &multipart.FileHeader{Filename: "a.png", Size: MaxImageSize + 1}, ErrImageTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImage(tt.file)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestSaveProfileImageResizes(t *testing.T) {
	store := NewImageStore(t.TempDir())

	url, err := store.SaveProfileImage(uploadFile(t, "avatar.PNG", pngBytes(t, 1024, 256)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, PublicUploadPath+"/profile/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	path := filepath.Join(store.Root, "profile", filepath.Base(url))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 512, cfg.Width)
	assert.Equal(t, 128, cfg.Height)

	require.NoError(t, store.DeleteProfileImage(url))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, store.DeleteProfileImage(url), "deleting twice is fine")
	assert.NoError(t, store.DeleteProfileImage(""))
}

func TestSaveProfileImageRejectsNonImages(t *testing.T) {
	store := NewImageStore(t.TempDir())

	_, err := store.SaveProfileImage(uploadFile(t, "fake.png", []byte("definitely not a png")))
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	_, err = store.SaveProfileImage(uploadFile(t, "notes.txt", []byte("hello")))
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestAbsoluteURL(t *testing.T) {
	assert.Equal(t, "http://localhost:3000/uploads/profile/a.png", AbsoluteURL("http://localhost:3000/", "/uploads/profile/a.png"))
	assert.Equal(t, "https://api.example.com/uploads/a.png", AbsoluteURL("https://api.example.com", "uploads/a.png"))
	assert.Equal(t, "https://cdn.example.com/a.png", AbsoluteURL("http://localhost:3000", "https://cdn.example.com/a.png"))
	assert.Equal(t, "", AbsoluteURL("http://localhost:3000", ""))
}

func TestEmailHelpers(t *testing.T) {
	assert.Equal(t, "user@example.com", SanitizeEmail("  User@Example.COM "))
	assert.True(t, IsValidEmail("user@example.com"))
	assert.False(t, IsValidEmail("user@"))
	assert.False(t, IsValidEmail(""))
}
