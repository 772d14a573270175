package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStorePutBlobIfAbsentIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	ctx := context.Background()
	data := []byte("photo-bytes")

	stored, err := store.PutBlobIfAbsent(ctx, "aabbcc.jpg", data)
	if err != nil {
		t.Fatalf("first put: %v", err)
	}
	if !stored {
		t.Error("first put should store the blob")
	}

	stored, err = store.PutBlobIfAbsent(ctx, "aabbcc.jpg", data)
	if err != nil {
		t.Fatalf("second put: %v", err)
	}
	if stored {
		t.Error("second put with same content address must be a no-op")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected a single stored blob, found %d", len(entries))
	}
	got, err := os.ReadFile(filepath.Join(dir, "aabbcc.jpg"))
	if err != nil {
		t.Fatalf("read blob: %v", err)
	}
	if string(got) != string(data) {
		t.Error("stored bytes differ from input")
	}
}

func TestFileStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "photos", "nested")
	if _, err := NewFileStore(dir); err != nil {
		t.Fatalf("NewFileStore should create missing dirs: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("directory not created: %v", err)
	}
}
