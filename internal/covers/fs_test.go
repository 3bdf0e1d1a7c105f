package covers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testFS(t *testing.T) *FS {
	t.Helper()
	f, err := NewFS(t.TempDir())
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return f
}

func TestWriteAndPath(t *testing.T) {
	f := testFS(t)

	if err := f.Write("hero.png", []byte("fake-png")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	abs, err := f.Path("hero.png")
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "fake-png" {
		t.Errorf("content = %q", data)
	}
}

func TestWriteRejectsTraversal(t *testing.T) {
	f := testFS(t)
	for _, name := range []string{"../escape.png", "a/b.png", "..", ""} {
		if err := f.Write(name, []byte("x")); err == nil {
			t.Errorf("name %q should be rejected", name)
		}
	}
}

func TestWriteRejectsUnsupportedExtension(t *testing.T) {
	f := testFS(t)
	err := f.Write("evil.sh", []byte("#!/bin/sh"))
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("err = %v", err)
	}
}

func TestWriteLeavesNoTempFileOnSuccess(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Write("a.jpg", []byte("x")); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".raido-tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestDelete(t *testing.T) {
	f := testFS(t)
	if err := f.Write("gone.webp", []byte("x")); err != nil {
		t.Fatal(err)
	}
	if err := f.Delete("gone.webp"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := f.Path("gone.webp"); err == nil {
		t.Error("deleted file should not resolve")
	}
}

func TestNewFSCreatesRoot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	if _, err := NewFS(dir); err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("root not created: %v", err)
	}
}
