package services

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"hotel-booking/domain"
)

const maxImageBytes = 8 << 20

var (
	subdirPattern  = regexp.MustCompile(`^[a-z0-9_-]{1,32}$`)
	imageExtension = map[string]string{
		"image/jpeg": ".jpg",
		"image/png":  ".png",
		"image/gif":  ".gif",
		"image/webp": ".webp",
	}
)

type ImageService struct {
	dir string
}

func NewImageService(dir string) *ImageService {
	if dir == "" {
		dir = "uploads"
	}
	return &ImageService{dir: dir}
}

func (s *ImageService) Dir() string { return s.dir }

// SaveBase64 stores a base64 image (optionally a data URL) under
// dir/subdir and returns its path relative to dir, e.g. "hotels/<uuid>.jpg".
func (s *ImageService) SaveBase64(b64, subdir string) (string, error) {
	subdir = strings.ToLower(strings.TrimSpace(subdir))
	if subdir == "" {
		subdir = "images"
	}
	if !subdirPattern.MatchString(subdir) {
		return "", domain.ValidationError{Field: "folder", Msg: "may only contain letters, digits, - and _"}
	}
	if idx := strings.Index(b64, "base64,"); idx >= 0 {
		b64 = b64[idx+len("base64,"):]
	}
	b64 = strings.TrimSpace(b64)
	if b64 == "" {
		return "", domain.ValidationError{Field: "image", Msg: "is required"}
	}
	if base64.StdEncoding.DecodedLen(len(b64)) > maxImageBytes {
		return "", domain.ValidationError{Field: "image", Msg: "is too large"}
	}

	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", domain.ValidationError{Field: "image", Msg: "is not valid base64", Err: err}
	}
	ext, ok := imageExtension[http.DetectContentType(data)]
	if !ok {
		return "", domain.ValidationError{Field: "image", Msg: "unsupported image type"}
	}

	dir := filepath.Join(s.dir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir uploads dir: %w", err)
	}
	filename := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return filepath.ToSlash(filepath.Join(subdir, filename)), nil
}
