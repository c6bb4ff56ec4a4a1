package cascade

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestResolveDir(t *testing.T) {
	tmpDir := t.TempDir()

	tmpFile := filepath.Join(tmpDir, "not_a_dir.xml")
	if err := os.WriteFile(tmpFile, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		override string
		want     string
		wantErr  error
	}{
		{name: "Override exists", override: tmpDir, want: tmpDir},
		{name: "Override missing", override: filepath.Join(tmpDir, "missing"), wantErr: ErrModelNotFound},
		{name: "Override is a file", override: tmpFile, wantErr: ErrModelNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDir(tt.override)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ResolveDir() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveDir() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveDir() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestResolveDirSearchList(t *testing.T) {
	old := SearchDirs
	defer func() { SearchDirs = old }()

	second := t.TempDir()
	SearchDirs = []string{filepath.Join(second, "nope"), second}

	got, err := ResolveDir("")
	if err != nil {
		t.Fatalf("ResolveDir() unexpected error: %v", err)
	}
	if got != second {
		t.Errorf("ResolveDir() = %s, want first existing entry %s", got, second)
	}

	SearchDirs = []string{filepath.Join(second, "nope")}
	if _, err := ResolveDir(""); !errors.Is(err, ErrModelNotFound) {
		t.Errorf("expected ErrModelNotFound with no existing dirs, got %v", err)
	}
}

func TestLoadMissingModels(t *testing.T) {
	_, err := Load(t.TempDir())
	if !errors.Is(err, ErrModelNotFound) {
		t.Fatalf("Load() on empty dir error = %v, want ErrModelNotFound", err)
	}
}

func TestLoadInvalidModels(t *testing.T) {
	dir := t.TempDir()
	// Well-formed storage file without a cascade node
	stub := []byte("<?xml version=\"1.0\"?>\n<opencv_storage>\n</opencv_storage>\n")
	for _, name := range []string{FaceModel, EyeModel} {
		if err := os.WriteFile(filepath.Join(dir, name), stub, 0644); err != nil {
			t.Fatal(err)
		}
	}

	_, err := Load(dir)
	if !errors.Is(err, ErrInvalidModel) {
		t.Fatalf("Load() error = %v, want ErrInvalidModel", err)
	}
}

func TestLoadBundledModels(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping OpenCV model test in short mode")
	}
	dir, err := ResolveDir(os.Getenv("OPENCV_HAARCASCADES"))
	if err != nil {
		t.Skipf("OpenCV haarcascades not installed: %v", err)
	}

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load(%s) failed: %v", dir, err)
	}
	if m.Face == nil || m.Eyes == nil {
		t.Fatal("expected both classifiers to be set")
	}

	m.Close()
	if m.Face != nil || m.Eyes != nil {
		t.Error("Close should clear both classifiers")
	}
	// Second Close is a no-op
	m.Close()
}
