package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ternarybob/arbor"

	"github.com/saunagids/saunagids/internal/common"
)

func newTestStore(t *testing.T) (*PhotoStore, string) {
	t.Helper()

	tmpDir := t.TempDir()
	store, err := NewPhotoStore(&common.PhotosConfig{
		Dir:           tmpDir,
		PublicBaseURL: "https://example.com/photos/",
	}, arbor.NewLogger())
	if err != nil {
		t.Fatal(err)
	}
	return store.(*PhotoStore), tmpDir
}

func TestPhotoSaveAndPublicURL(t *testing.T) {
	store, tmpDir := newTestStore(t)
	ctx := context.Background()

	url, err := store.Save(ctx, "thermen-bussloo-voorst/thermen-bussloo-voorst-1.jpg", "image/jpeg", []byte("jpegdata"))
	if err != nil {
		t.Fatalf("Failed to save photo: %v", err)
	}
	if url != "https://example.com/photos/thermen-bussloo-voorst/thermen-bussloo-voorst-1.jpg" {
		t.Errorf("Unexpected public URL: %s", url)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, "thermen-bussloo-voorst", "thermen-bussloo-voorst-1.jpg"))
	if err != nil {
		t.Fatalf("Failed to read stored photo: %v", err)
	}
	if string(data) != "jpegdata" {
		t.Errorf("Stored photo content mismatch")
	}
}

func TestPhotoSaveOverwrites(t *testing.T) {
	store, tmpDir := newTestStore(t)
	ctx := context.Background()

	path := "spa-zuiver-amsterdam/spa-zuiver-amsterdam-1.jpg"
	if _, err := store.Save(ctx, path, "image/jpeg", []byte("first")); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Save(ctx, path, "image/jpeg", []byte("second")); err != nil {
		t.Fatalf("Overwrite should succeed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, filepath.FromSlash(path)))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Errorf("Expected overwritten content, got %q", string(data))
	}
}

func TestPhotoSaveRejectsEscapingPath(t *testing.T) {
	store, _ := newTestStore(t)

	if _, err := store.Save(context.Background(), "../../etc/passwd", "image/jpeg", []byte("x")); err == nil {
		t.Error("Expected error for path escaping the bucket root")
	}
}
