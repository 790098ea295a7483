// Package storage is the object-storage collaborator: uploaded audio files go
// in by key, get served back by URL, and are deleted by key when their track
// goes away. The platform only depends on the narrow Storage interface.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"music-platform/internal/apperrors"
)

type UploadOptions struct {
	Bucket           string
	Folder           string
	AllowedMimeTypes []string
	MaxFileSize      int64
}

type UploadResult struct {
	URL string
	Key string
}

type Storage interface {
	UploadFile(file *multipart.FileHeader, opts UploadOptions) (*UploadResult, error)
	DeleteFile(bucket, key string) error
}

// DiskStorage keeps objects under root/<bucket>/<folder>/<uuid><ext> and maps
// them to publicURL/<bucket>/<folder>/<name>.
type DiskStorage struct {
	Root      string
	PublicURL string
}

func NewDiskStorage(root, publicURL string) *DiskStorage {
	return &DiskStorage{Root: root, PublicURL: strings.TrimRight(publicURL, "/")}
}

func (s *DiskStorage) UploadFile(file *multipart.FileHeader, opts UploadOptions) (*UploadResult, error) {
	if file == nil {
		return nil, apperrors.Validation("no file supplied")
	}
	if opts.MaxFileSize > 0 && file.Size > opts.MaxFileSize {
		return nil, apperrors.Validation("file too large, maximum size is %dMB", opts.MaxFileSize/(1024*1024))
	}

	contentType := file.Header.Get("Content-Type")
	if len(opts.AllowedMimeTypes) > 0 && !mimeAllowed(contentType, opts.AllowedMimeTypes) {
		return nil, apperrors.Validation("unsupported file type %q", contentType)
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	key := filepath.Join(opts.Folder, name)
	dir := filepath.Join(s.Root, opts.Bucket, opts.Folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.Root, opts.Bucket, key))
	if err != nil {
		return nil, fmt.Errorf("create object: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return nil, fmt.Errorf("write object: %w", err)
	}

	log.Debug("stored object", "bucket", opts.Bucket, "key", key, "size", file.Size)
	return &UploadResult{
		URL: fmt.Sprintf("%s/%s/%s", s.PublicURL, opts.Bucket, filepath.ToSlash(key)),
		Key: key,
	}, nil
}

func (s *DiskStorage) DeleteFile(bucket, key string) error {
	// Callers pass back the public URL; strip it down to the object key.
	key = strings.TrimPrefix(key, s.PublicURL+"/"+bucket+"/")
	path := filepath.Join(s.Root, bucket, filepath.FromSlash(key))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

func mimeAllowed(contentType string, allowed []string) bool {
	for _, m := range allowed {
		if strings.EqualFold(contentType, m) {
			return true
		}
	}
	return false
}

// Default is the process-wide storage collaborator, set once at startup.
var Default Storage

func Init(root, publicURL string) {
	Default = NewDiskStorage(root, publicURL)
}
