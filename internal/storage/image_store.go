// Package storage writes uploaded recipe images to the media filesystem.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // register decoders for image.Decode
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

//go:generate mockgen -source=image_store.go -destination=mocks/mock_image_store.go -package=mocks

const (
	recipeImageDir = "uploads/recipe"
	maxImageSide   = 10000
	maxImagePixels = 24_000_000

	// Upper bound on the in-memory size of a decoded image
	maxDecodedBytes = 96 << 20
)

// ErrInvalidImage is returned when the upload is not a decodable raster image.
var ErrInvalidImage = errors.New("upload a valid image: the file is either not an image or a corrupted image")

var allowedTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
}

// ImageStore persists recipe images and maps stored paths to public URLs.
type ImageStore interface {
	SaveRecipeImage(data []byte) (string, error)
	Remove(relPath string) error
	URL(relPath string) string
}

type imageStore struct {
	fs      afero.Fs
	baseURL string
}

// NewImageStore stores files on fs (rooted at the media directory) and
// serves them under baseURL
func NewImageStore(fs afero.Fs, baseURL string) ImageStore {
	return &imageStore{
		fs:      fs,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// NewMediaFs returns a filesystem rooted at dir, creating dir if needed
func NewMediaFs(dir string) (afero.Fs, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media root: %w", err)
	}
	return afero.NewBasePathFs(afero.NewOsFs(), dir), nil
}

// SaveRecipeImage validates data and writes it under a fresh unique name,
// returning the path relative to the media root
func (s *imageStore) SaveRecipeImage(data []byte) (string, error) {
	ext, err := validateImage(data)
	if err != nil {
		return "", err
	}

	if err := s.fs.MkdirAll(recipeImageDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create image directory: %w", err)
	}

	relPath := path.Join(recipeImageDir, uuid.NewString()+ext)
	if err := afero.WriteFile(s.fs, relPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	return relPath, nil
}

// Remove deletes a stored file; a missing file is not an error
func (s *imageStore) Remove(relPath string) error {
	err := s.fs.Remove(relPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", relPath, err)
	}
	return nil
}

func (s *imageStore) URL(relPath string) string {
	return s.baseURL + "/" + relPath
}

// validateImage returns the file extension for data if it is a supported image
func validateImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrInvalidImage
	}

	mtype := mimetype.Detect(data)
	if _, ok := allowedTypes[mtype.String()]; !ok {
		return "", fmt.Errorf("%w: detected %s", ErrInvalidImage, mtype.String())
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > maxImageSide || cfg.Height > maxImageSide {
		return "", fmt.Errorf("%w: unsupported dimensions %dx%d", ErrInvalidImage, cfg.Width, cfg.Height)
	}
	pixels := int64(cfg.Width) * int64(cfg.Height)
	if pixels > maxImagePixels || pixels*bytesPerPixel(cfg.ColorModel) > maxDecodedBytes {
		return "", fmt.Errorf("%w: image too large %dx%d", ErrInvalidImage, cfg.Width, cfg.Height)
	}

	if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	return mtype.Extension(), nil
}

// bytesPerPixel estimates the decoded footprint of one pixel in model
func bytesPerPixel(model color.Model) int64 {
	if _, ok := model.(color.Palette); ok {
		return 1
	}
	switch model {
	case color.GrayModel:
		return 1
	case color.Gray16Model:
		return 2
	case color.RGBA64Model, color.NRGBA64Model:
		return 8
	}
	return 4
}
