package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

var (
	ErrNotImage       = errors.New("only image files can be uploaded")
	ErrUploadTooLarge = errors.New("upload exceeds the size limit")
	ErrInvalidPath    = errors.New("invalid upload path")
)

// FileStore persists uploaded bytes and returns their public URL.
type FileStore interface {
	Upload(ctx context.Context, path string, data []byte) (string, error)
}

// LocalFileStore writes uploads below a directory served statically at urlPath.
type LocalFileStore struct {
	dir     string
	urlPath string
}

// NewLocalFileStore returns a FileStore rooted at dir.
func NewLocalFileStore(dir, urlPath string) *LocalFileStore {
	return &LocalFileStore{dir: dir, urlPath: "/" + strings.Trim(urlPath, "/")}
}

// Upload writes data to dir/name.
func (s *LocalFileStore) Upload(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	clean := path.Clean("/" + name)[1:]
	if clean == "" || clean != strings.TrimPrefix(name, "/") {
		return "", ErrInvalidPath
	}

	target := filepath.Join(s.dir, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", err
	}
	return path.Join(s.urlPath, clean), nil
}

// UploadedImage describes a stored image.
type UploadedImage struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
}

// UploadService validates images before handing them to a FileStore.
type UploadService struct {
	files    FileStore
	maxBytes int64
	now      func() time.Time
}

// NewUploadService creates an UploadService limited to maxBytes per file.
func NewUploadService(files FileStore, maxBytes int64) *UploadService {
	return &UploadService{files: files, maxBytes: maxBytes, now: time.Now}
}

// UploadImage checks that r holds a decodable image and stores it under pages/.
// The stored extension follows the decoded format, never filename.
func (s *UploadService) UploadImage(ctx context.Context, filename, contentType string, r io.Reader) (*UploadedImage, error) {
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/") {
		return nil, ErrNotImage
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, ErrUploadTooLarge
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, ErrNotImage
	}

	name := fmt.Sprintf("pages/%s-%s%s", s.now().Format("20060102"), uuid.NewString(), imageExt(format))

	url, err := s.files.Upload(ctx, name, data)
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	return &UploadedImage{URL: url, Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}

func imageExt(format string) string {
	if format == "jpeg" {
		return ".jpg"
	}
	return "." + format
}
