package capture

import (
	"github.com/andresmejia3/facedetect/internal/types"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// ErrSourceUnavailable is returned when the camera or video file cannot be opened.
var ErrSourceUnavailable = errors.New("capture source unavailable")

// VideoSource is an open gocv capture handle for a camera or a video file.
type VideoSource struct {
	vc  *gocv.VideoCapture
	src types.Source
}

// Open opens the capture described by src.
func Open(src types.Source) (*VideoSource, error) {
	var device interface{} = src.Path
	if src.IsCamera() {
		device = src.Camera
	}

	vc, err := gocv.OpenVideoCapture(device)
	if err != nil {
		if vc != nil {
			vc.Close()
		}
		return nil, errors.Wrapf(ErrSourceUnavailable, "%s: %v", src, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, errors.Wrapf(ErrSourceUnavailable, "%s", src)
	}
	return &VideoSource{vc: vc, src: src}, nil
}

// Read grabs the next frame into m. It returns false at end of stream.
func (v *VideoSource) Read(m *gocv.Mat) bool {
	return v.vc.Read(m)
}

// FrameCount returns the number of frames in a video file, or -1 when unknown
// (cameras and containers without the metadata).
func (v *VideoSource) FrameCount() int64 {
	if v.src.IsCamera() {
		return -1
	}
	n := int64(v.vc.Get(gocv.VideoCaptureFrameCount))
	if n <= 0 {
		return -1
	}
	return n
}

func (v *VideoSource) String() string {
	return v.src.String()
}

// Close releases the capture handle.
func (v *VideoSource) Close() error {
	if err := v.vc.Close(); err != nil {
		return errors.Wrapf(err, "releasing %s", v.src)
	}
	return nil
}
