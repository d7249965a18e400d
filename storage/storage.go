// Package storage keeps uploaded document images outside the database. Records
// only carry the returned path string.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"employee-records-api/config"
)

// Store saves an uploaded file and returns the path recorded on the record.
type Store interface {
	Save(ctx context.Context, folder, filename string, r io.Reader, size int64) (string, error)
	// Delete removes a file previously returned by Save. Missing files are not an error.
	Delete(ctx context.Context, path string) error
}

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// AllowedExtension reports whether a file name has an accepted extension.
func AllowedExtension(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// objectName builds <folder>/<uuid><ext> so uploads never collide.
func objectName(folder, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join(sanitizeFolder(folder), uuid.NewString()+ext)
}

func sanitizeFolder(folder string) string {
	folder = strings.ReplaceAll(folder, "\\", "/")
	parts := strings.Split(folder, "/")
	clean := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || p == "." || p == ".." {
			continue
		}
		clean = append(clean, p)
	}
	return strings.Join(clean, "/")
}

// NewStoreFromSettings creates a Store implementation based on the upload backend.
func NewStoreFromSettings(ctx context.Context, s config.UploadSettings) (Store, error) {
	switch s.Backend {
	case "", "local":
		return NewLocalStore(s.Path)
	case "s3":
		if s.S3Bucket == "" {
			return nil, fmt.Errorf("s3 upload backend requires s3_bucket to be set")
		}
		return NewS3Store(ctx, s.S3Bucket, s.S3Region, s.S3Prefix)
	default:
		return nil, fmt.Errorf("unknown upload backend: %s", s.Backend)
	}
}
