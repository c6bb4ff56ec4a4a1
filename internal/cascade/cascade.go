package cascade

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// Model file names as shipped in OpenCV's haarcascades data directory.
const (
	FaceModel = "haarcascade_frontalface_default.xml"
	EyeModel  = "haarcascade_eye.xml"
)

var (
	// ErrModelNotFound is returned when a cascade file or the model directory is missing.
	ErrModelNotFound = errors.New("cascade model not found")
	// ErrInvalidModel is returned when OpenCV refuses to parse a cascade file.
	ErrInvalidModel = errors.New("cascade model has an invalid format")
)

// SearchDirs lists the standard install locations of OpenCV's bundled cascades.
var SearchDirs = []string{
	"/usr/share/opencv4/haarcascades",
	"/usr/local/share/opencv4/haarcascades",
	"/usr/share/opencv/haarcascades",
	"/usr/local/share/opencv/haarcascades",
	"/opt/homebrew/share/opencv4/haarcascades",
}

// Models holds the two classifiers used by the detector. They are loaded once
// and only read afterwards.
type Models struct {
	Dir  string
	Face *gocv.CascadeClassifier
	Eyes *gocv.CascadeClassifier
}

// ResolveDir picks the model directory. An explicit override always wins;
// otherwise the first existing entry of SearchDirs is used.
func ResolveDir(override string) (string, error) {
	if override != "" {
		if !isDir(override) {
			return "", errors.Wrapf(ErrModelNotFound, "cascade directory %s", override)
		}
		return override, nil
	}
	for _, dir := range SearchDirs {
		if isDir(dir) {
			return dir, nil
		}
	}
	return "", errors.Wrap(ErrModelNotFound, "no haarcascades directory in the default locations")
}

// Load reads the frontal-face and eye cascades from dir.
func Load(dir string) (*Models, error) {
	face, err := load(filepath.Join(dir, FaceModel))
	if err != nil {
		return nil, err
	}
	eyes, err := load(filepath.Join(dir, EyeModel))
	if err != nil {
		face.Close()
		return nil, err
	}
	return &Models{Dir: dir, Face: face, Eyes: eyes}, nil
}

func load(path string) (*gocv.CascadeClassifier, error) {
	// Load returns a bare bool, so tell "missing" apart from "corrupt" up front.
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(ErrModelNotFound, "%s: %v", path, err)
	}
	c := gocv.NewCascadeClassifier()
	if !c.Load(path) {
		c.Close()
		return nil, errors.Wrapf(ErrInvalidModel, "%s", path)
	}
	return &c, nil
}

// Close releases both classifiers.
func (m *Models) Close() {
	if m.Face != nil {
		m.Face.Close()
		m.Face = nil
	}
	if m.Eyes != nil {
		m.Eyes.Close()
		m.Eyes = nil
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
