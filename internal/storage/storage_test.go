package storage

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filename))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(10 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	files := form.File["image"]
	require.Len(t, files, 1)
	return files[0]
}

func TestSaveAndRemove(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	fh := fileHeader(t, "My Football Pic.png", "image/png", []byte("png-bytes"))

	ref, err := store.Save(ctx, KindProducts, fh)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ref, "/products/my-football-pic-"), "got %q", ref)
	assert.True(t, strings.HasSuffix(ref, ".png"), "got %q", ref)

	onDisk := filepath.Join(store.Root, filepath.FromSlash(strings.TrimPrefix(ref, "/")))
	data, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)

	store.Remove(ctx, ref)
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err))
}

func TestSave_RejectsUnsupportedType(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	fh := fileHeader(t, "notes.txt", "text/plain", []byte("hi"))

	_, err = store.Save(context.Background(), KindCategories, fh)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFile)
}

func TestSave_SVGOnlyForProducts(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	svg := fileHeader(t, "logo.svg", "image/svg+xml", []byte("<svg/>"))
	_, err = store.Save(ctx, KindCategories, svg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFile)

	svg = fileHeader(t, "logo.svg", "image/svg+xml", []byte("<svg/>"))
	ref, err := store.Save(ctx, KindProducts, svg)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(ref, ".svg"))
}

func TestSave_RejectsOversizedFile(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	fh := fileHeader(t, "huge.png", "image/png", bytes.Repeat([]byte("a"), MaxFileSize+1))

	_, err = store.Save(context.Background(), KindProducts, fh)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFile)
}

func TestRemove_MissingFileIsNoop(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	// must not panic or leave anything behind
	store.Remove(context.Background(), "/products/never-existed.png")
	store.Remove(context.Background(), "")
}

func TestRemove_RefusesPathEscape(t *testing.T) {
	root := t.TempDir()
	store, err := New(root)
	require.NoError(t, err)

	outside := filepath.Join(filepath.Dir(root), "victim.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep me"), 0o644))

	store.Remove(context.Background(), "/../victim.txt")

	data, err := os.ReadFile(outside)
	require.NoError(t, err)
	assert.Equal(t, []byte("keep me"), data)
}
