package osfs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCopyTree(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	files := map[string]string{
		"metrograph.ics":        "BEGIN:VCALENDAR",
		"nested/afa.ics":        "BEGIN:VCALENDAR",
		"nested/deep/index.txt": "x",
	}
	for path, content := range files {
		full := filepath.Join(src, path)
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	count, err := New().CopyTree(src, dst)
	if err != nil {
		t.Fatalf("CopyTree failed: %v", err)
	}
	if count != len(files) {
		t.Errorf("count = %d, expected %d", count, len(files))
	}

	for path, content := range files {
		data, err := os.ReadFile(filepath.Join(dst, path))
		if err != nil {
			t.Errorf("copied file %s missing: %v", path, err)
			continue
		}
		if string(data) != content {
			t.Errorf("%s content = %q, expected %q", path, data, content)
		}
	}
}

func TestCopyTreeEmptySource(t *testing.T) {
	count, err := New().CopyTree(t.TempDir(), t.TempDir())
	if err != nil {
		t.Fatalf("CopyTree on empty dir failed: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, expected 0", count)
	}
}

func TestCopyTreeMissingSource(t *testing.T) {
	if _, err := New().CopyTree(filepath.Join(t.TempDir(), "nope"), t.TempDir()); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestMkdirTempAndRemoveAll(t *testing.T) {
	fs := New()

	dir, err := fs.MkdirTemp(t.TempDir(), "slatepub-test-*")
	if err != nil {
		t.Fatalf("MkdirTemp failed: %v", err)
	}
	if err := fs.WriteFile(filepath.Join(dir, "f.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := fs.RemoveAll(dir); err != nil {
		t.Fatalf("RemoveAll failed: %v", err)
	}
	if _, err := fs.Stat(dir); !os.IsNotExist(err) {
		t.Error("dir still exists after RemoveAll")
	}
}
