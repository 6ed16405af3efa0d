// Package upload stores images submitted with an article and builds the
// filename-to-URL lookup consumed by the content normalizer.
package upload

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/tintuc/newsapi/internal/content"
	"github.com/tintuc/newsapi/internal/errs"
)

// Store persists one uploaded file and returns its public URL.
type Store interface {
	Save(ctx context.Context, originalName, contentType string, body io.Reader) (string, error)
}

// SaveAll uploads every file header and returns a lookup from original
// client-side filename to stored URL. Only image files are accepted.
func SaveAll(ctx context.Context, store Store, files []*multipart.FileHeader) (content.UploadLookup, error) {
	lookup := make(content.UploadLookup, len(files))
	for _, fh := range files {
		url, err := SaveOne(ctx, store, fh)
		if err != nil {
			return nil, err
		}
		lookup[fh.Filename] = url
	}
	return lookup, nil
}

// SaveOne uploads a single file header.
func SaveOne(ctx context.Context, store Store, fh *multipart.FileHeader) (string, error) {
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", errs.Validationf("chỉ được upload file ảnh (jpg, png, gif, webp)")
	}

	file, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file %q: %w", fh.Filename, err)
	}
	defer file.Close()

	url, err := store.Save(ctx, fh.Filename, contentType, file)
	if err != nil {
		return "", fmt.Errorf("failed to store uploaded file %q: %w", fh.Filename, err)
	}
	return url, nil
}

// objectKey builds a collision-free storage key that keeps the original
// extension for content-type sniffing by CDNs.
func objectKey(originalName string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
}
