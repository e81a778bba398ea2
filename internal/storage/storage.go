// Package storage persists uploaded files (category/product images, payment
// proofs) under a local uploads root and hands out stable relative
// references like "/products/ball-<uuid>.png".
package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ikhfad/sporton-backend/internal/logging"
)

const MaxFileSize = 5 << 20

const (
	KindCategories   = "categories"
	KindProducts     = "products"
	KindTransactions = "transactions"
)

var ErrInvalidFile = fmt.Errorf("invalid file")

var standardTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

var extendedTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

type Store struct {
	Root string
}

func New(root string) (*Store, error) {
	for _, kind := range []string{KindCategories, KindProducts, KindTransactions} {
		if err := os.MkdirAll(filepath.Join(root, kind), 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir: %w", err)
		}
	}
	return &Store{Root: root}, nil
}

// Save writes the uploaded file under <root>/<kind>/ and returns the
// relative reference stored on the owning record. SVG is only accepted for
// product images, matching what the storefront can render.
func (s *Store) Save(ctx context.Context, kind string, fh *multipart.FileHeader) (string, error) {
	if fh.Size > MaxFileSize {
		return "", fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidFile, MaxFileSize)
	}

	allowed := standardTypes
	if kind == KindProducts {
		allowed = extendedTypes
	}
	contentType := fh.Header.Get("Content-Type")
	if !allowed[contentType] {
		return "", fmt.Errorf("%w: unsupported content type %q", ErrInvalidFile, contentType)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uniqueName(fh.Filename)
	dst, err := os.Create(filepath.Join(s.Root, kind, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("write file: %w", err)
	}

	return "/" + kind + "/" + name, nil
}

// Remove deletes a previously stored file. A missing file is not an error:
// cleanup paths may run twice and crash recovery is manual.
func (s *Store) Remove(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	l := logging.FromContext(ctx)

	rel := filepath.Clean(strings.TrimPrefix(ref, "/"))
	if rel == "." || strings.HasPrefix(rel, "..") {
		l.Warn("asset_remove_skipped", "ref", ref, "reason", "reference escapes upload root")
		return
	}

	err := os.Remove(filepath.Join(s.Root, rel))
	switch {
	case err == nil:
	case os.IsNotExist(err):
		l.Info("asset_already_removed", "ref", ref)
	default:
		l.Error("asset_remove_failed", "ref", ref, "error", err)
	}
}

func uniqueName(original string) string {
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(filepath.Base(original), ext)
	base = strings.ToLower(strings.Join(strings.Fields(base), "-"))
	if base == "" {
		base = "file"
	}
	return base + "-" + uuid.NewString() + ext
}
