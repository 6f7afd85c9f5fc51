package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"net/url"
	"path"
	"strings"
	"time"

	"boutique/internal/models"
	"boutique/pkg/imageopt"

	"github.com/gabriel-vasile/mimetype"
)

// MaxUploadSize caps the raw size of an uploaded image before optimization
const MaxUploadSize = 5 * 1024 * 1024

var (
	ErrInvalidFileType = errors.New("file is not an image")
	ErrFileTooLarge    = errors.New("image exceeds the 5 MiB upload limit")
	ErrDecode          = imageopt.ErrDecode
	ErrEncode          = imageopt.ErrEncode
	ErrUpload          = errors.New("image upload failed")
	ErrDelete          = errors.New("image delete failed")
	ErrInvalidCategory = errors.New("unknown image category")
)

// UploadFile is an image selected by an admin. Size may be zero when unknown.
type UploadFile struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// ImageService stores catalog images. Each Upload writes exactly one object and
// deletes at most one; nothing is retried.
type ImageService interface {
	Upload(ctx context.Context, file *UploadFile, category models.AssetCategory, existingURL string) (string, error)
	Delete(ctx context.Context, path string) error
	// Retire deletes the asset behind url, logging instead of returning failures
	Retire(ctx context.Context, category models.AssetCategory, url string)
}

type imageService struct {
	store     ObjectStore
	optimizer imageopt.Optimizer
	now       func() time.Time
	intn      func(n int) int
}

func NewImageService(store ObjectStore, optimizer imageopt.Optimizer) ImageService {
	return &imageService{
		store:     store,
		optimizer: optimizer,
		now:       time.Now,
		intn:      rand.IntN,
	}
}

func (s *imageService) Upload(ctx context.Context, file *UploadFile, category models.AssetCategory, existingURL string) (string, error) {
	if !category.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}

	data, err := readImage(file)
	if err != nil {
		return "", err
	}

	box := category.BoundingBox()
	optimized, err := s.optimizer.Optimize(bytes.NewReader(data), box.MaxWidth, box.MaxHeight)
	if err != nil {
		return "", err
	}

	key := s.newKey(category)

	if existingURL != "" {
		if oldKey := KeyFromURL(category, existingURL); oldKey != "" {
			if err := s.store.Remove(ctx, oldKey); err != nil {
				log.Printf("WARN: Failed to delete replaced image %s: %v", oldKey, err)
			}
		}
	}

	if err := s.store.Put(ctx, key, bytes.NewReader(optimized.Data), optimized.Size(), imageopt.ContentType); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}

	return s.store.PublicURL(key), nil
}

func (s *imageService) Delete(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	if err := s.store.Remove(ctx, path); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDelete, path, err)
	}
	return nil
}

func (s *imageService) Retire(ctx context.Context, category models.AssetCategory, url string) {
	key := KeyFromURL(category, url)
	if key == "" {
		return
	}
	if err := s.Delete(ctx, key); err != nil {
		log.Printf("WARN: %v", err)
	}
}

// newKey builds {category}s/{category}_{unixMillis}_{random6}.webp
func (s *imageService) newKey(category models.AssetCategory) string {
	return fmt.Sprintf("%s/%s_%d_%s.webp", category.Folder(), category, s.now().UnixMilli(), s.randomSuffix(6))
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

func (s *imageService) randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = base36[s.intn(len(base36))]
	}
	return string(b)
}

// readImage enforces the media type and size limits before any I/O with the store
func readImage(file *UploadFile) ([]byte, error) {
	if file == nil || file.Reader == nil {
		return nil, fmt.Errorf("%w: no file provided", ErrInvalidFileType)
	}

	declared := normalizeMediaType(file.ContentType)
	if declared != "" && !strings.HasPrefix(declared, "image/") {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFileType, declared)
	}
	if file.Size > MaxUploadSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrFileTooLarge, file.Size)
	}

	data, err := io.ReadAll(io.LimitReader(file.Reader, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) > MaxUploadSize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrFileTooLarge, MaxUploadSize)
	}

	if declared == "" {
		detected := mimetype.Detect(data).String()
		if !strings.HasPrefix(detected, "image/") {
			return nil, fmt.Errorf("%w: %s", ErrInvalidFileType, detected)
		}
	}

	return data, nil
}

// normalizeMediaType drops parameters; a generic binary type counts as undeclared
func normalizeMediaType(contentType string) string {
	mt := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	if mt == "application/octet-stream" {
		return ""
	}
	return mt
}

// KeyFromURL maps a public asset URL back to its object key, {category}s/{last path segment}
func KeyFromURL(category models.AssetCategory, rawURL string) string {
	name := lastSegment(rawURL)
	if name == "" {
		return ""
	}
	return category.Folder() + "/" + name
}

// ObjectKeyFromURL recovers the full object key from a URL produced by store.PublicURL
func ObjectKeyFromURL(store ObjectStore, rawURL string) string {
	prefix := store.PublicURL("")
	if !strings.HasPrefix(rawURL, prefix) {
		return ""
	}
	key, err := url.PathUnescape(strings.TrimPrefix(rawURL, prefix))
	if err != nil {
		return ""
	}
	return key
}

func lastSegment(rawURL string) string {
	p := strings.TrimSpace(rawURL)
	if u, err := url.Parse(p); err == nil {
		p = u.Path
	}
	if p == "" || strings.HasSuffix(p, "/") {
		return ""
	}
	name := path.Base(p)
	if name == "." || name == "/" {
		return ""
	}
	return name
}
