package capture

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/andresmejia3/facedetect/internal/types"
)

func TestOpenMissingFile(t *testing.T) {
	src := types.Source{Path: filepath.Join(t.TempDir(), "missing.mp4")}

	v, err := Open(src)
	if err == nil {
		v.Close()
		t.Fatal("expected an error opening a missing file")
	}
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("Open() error = %v, want ErrSourceUnavailable", err)
	}
}
