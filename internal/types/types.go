package types

import (
	"fmt"
	"strconv"
)

// Source describes where frames come from: a camera index or a video file path.
type Source struct {
	Camera int    // Camera index, valid when Path is empty
	Path   string // Video file path
}

// IsCamera reports whether the source is a capture device rather than a file.
func (s Source) IsCamera() bool {
	return s.Path == ""
}

func (s Source) String() string {
	if s.IsCamera() {
		return fmt.Sprintf("camera %d", s.Camera)
	}
	return s.Path
}

// ParseSource converts the --input descriptor. A string made only of ASCII digits
// is a camera index; anything else is treated as a file path.
func ParseSource(input string) (Source, error) {
	if input == "" {
		return Source{}, fmt.Errorf("input descriptor is empty")
	}
	if !isDigits(input) {
		return Source{Path: input}, nil
	}
	idx, err := strconv.Atoi(input)
	if err != nil {
		// Digits only but overflows int
		return Source{}, fmt.Errorf("camera index %q out of range: %w", input, err)
	}
	return Source{Camera: idx}, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
