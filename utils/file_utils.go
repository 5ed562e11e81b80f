package utils

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	// Public URL prefix for uploaded files
	PublicUploadPath = "/uploads"
	// Sub-directory holding profile images
	profileDir = "profile"
	// Maximum profile image size (5MB)
	MaxImageSize = 5 * 1024 * 1024
	// Profile images are scaled down to fit this box
	maxImageDimension = 512
)

var (
	ErrUnsupportedImage = errors.New("only image files (jpg, jpeg, png, gif) are allowed")
	ErrImageTooLarge    = errors.New("image must be 5MB or smaller")

	allowedImageExts = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".gif":  true,
	}
)

// ValidateImage checks extension and size of an uploaded profile image.
func ValidateImage(file *multipart.FileHeader) error {
	if !allowedImageExts[strings.ToLower(filepath.Ext(file.Filename))] {
		return ErrUnsupportedImage
	}
	if file.Size > MaxImageSize {
		return ErrImageTooLarge
	}
	return nil
}

// ImageStore writes profile images below Root and serves them under PublicUploadPath.
type ImageStore struct {
	Root string
}

func NewImageStore(root string) *ImageStore {
	return &ImageStore{Root: root}
}

// InitializeStorage creates the directories uploads are written to.
func (s *ImageStore) InitializeStorage() error {
	dir := filepath.Join(s.Root, profileDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// SaveProfileImage decodes the upload, scales it down to fit 512x512 and
// stores it under a random name. It returns the relative public URL.
func (s *ImageStore) SaveProfileImage(file *multipart.FileHeader) (string, error) {
	if err := ValidateImage(file); err != nil {
		return "", err
	}
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return "", ErrUnsupportedImage
	}
	img = imaging.Fit(img, maxImageDimension, maxImageDimension, imaging.Lanczos)

	if err := s.InitializeStorage(); err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	filename := uuid.NewString() + ext
	if err := imaging.Save(img, filepath.Join(s.Root, profileDir, filename)); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return fmt.Sprintf("%s/%s/%s", PublicUploadPath, profileDir, filename), nil
}

// DeleteProfileImage removes the file behind a URL returned by SaveProfileImage.
// A missing file is not an error.
func (s *ImageStore) DeleteProfileImage(url string) error {
	if url == "" {
		return nil
	}
	name := filepath.Base(url)
	if name == "." || name == "/" {
		return nil
	}
	err := os.Remove(filepath.Join(s.Root, profileDir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// AbsoluteURL joins baseURL and a relative upload path. Absolute URLs are
// returned unchanged.
func AbsoluteURL(baseURL, path string) string {
	if path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(baseURL, "/") + path
}
