package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestFileStoreRoundTrip(t *testing.T) {
	fs := NewFileStore(t.TempDir())

	if err := fs.Write("cart", sample{Name: "widget", Count: 3}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var got sample
	if err := fs.Read("cart", &got); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if got.Name != "widget" || got.Count != 3 {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestFileStoreMissingRecord(t *testing.T) {
	fs := NewFileStore(t.TempDir())

	var got sample
	if err := fs.Read("auth", &got); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFileStoreDelete(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileStore(dir)

	if err := fs.Write("auth", sample{Name: "a"}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := fs.Delete("auth"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := fs.Delete("auth"); err != nil {
		t.Fatalf("deleting a missing record should not error: %v", err)
	}

	var got sample
	if err := fs.Read("auth", &got); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestFileStoreCorruptRecord(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileStore(dir)

	if err := os.WriteFile(filepath.Join(dir, "cart.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	var got sample
	err := fs.Read("cart", &got)
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileStore(dir)

	for i := 0; i < 5; i++ {
		if err := fs.Write("cart", sample{Count: i}); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "cart.json" {
		t.Fatalf("unexpected directory contents: %v", entries)
	}
}
