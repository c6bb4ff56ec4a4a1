package detector

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Detection tuning. Fixed, not exposed as flags.
const (
	ScaleFactor  = 1.3
	MinNeighbors = 5
	MinEyes      = 2

	Label       = "Face Detected"
	LabelOffset = 10
	LabelScale  = 0.9
	LabelFont   = gocv.FontHersheySimplex
	StrokeWidth = 2
)

// Green is the annotation colour for confirmed faces.
var Green = color.RGBA{G: 255}

// Cascade is the subset of gocv.CascadeClassifier the detector calls.
type Cascade interface {
	DetectMultiScale(img gocv.Mat) []image.Rectangle
	DetectMultiScaleWithParams(img gocv.Mat, scale float64, minNeighbors, flags int, minSize, maxSize image.Point) []image.Rectangle
}

// Face is one face candidate reported by the face cascade.
type Face struct {
	Rect      image.Rectangle // Frame coordinates
	Eyes      int             // Eye detections inside Rect
	Annotated bool
}

// Result summarises what Process found in one frame.
type Result struct {
	Faces []Face
}

// Annotated returns the number of faces that were drawn on the frame.
func (r Result) Annotated() int {
	n := 0
	for _, f := range r.Faces {
		if f.Annotated {
			n++
		}
	}
	return n
}

// Detector confirms faces by looking for eyes inside each face candidate.
// It keeps no state between frames.
type Detector struct {
	face Cascade
	eyes Cascade
}

func New(face, eyes Cascade) *Detector {
	return &Detector{face: face, eyes: eyes}
}

// Process runs face and eye detection on frame and draws a box and label, in
// place, around every face with at least MinEyes eyes. Faces are visited in
// the order the cascade reports them.
func (d *Detector) Process(frame *gocv.Mat) Result {
	var res Result
	if frame.Empty() {
		return res
	}

	gray := gocv.NewMat()
	defer gray.Close()
	toGray(*frame, &gray)

	faces := d.face.DetectMultiScaleWithParams(gray, ScaleFactor, MinNeighbors, 0, image.Point{}, image.Point{})
	if len(faces) == 0 {
		return res
	}

	bounds := image.Rect(0, 0, gray.Cols(), gray.Rows())
	res.Faces = make([]Face, 0, len(faces))
	for _, r := range faces {
		f := Face{Rect: r}

		// Region panics outside the Mat, so never hand it an unclipped rect
		roi := r.Intersect(bounds)
		if !roi.Empty() {
			sub := gray.Region(roi)
			f.Eyes = len(d.eyes.DetectMultiScale(sub))
			sub.Close()
		}

		if f.Eyes >= MinEyes {
			annotate(frame, r)
			f.Annotated = true
		}
		res.Faces = append(res.Faces, f)
	}
	return res
}

func annotate(frame *gocv.Mat, r image.Rectangle) {
	gocv.PutText(frame, Label, image.Pt(r.Min.X, r.Min.Y-LabelOffset), LabelFont, LabelScale, Green, StrokeWidth)
	gocv.Rectangle(frame, r, Green, StrokeWidth)
}

func toGray(src gocv.Mat, dst *gocv.Mat) {
	switch src.Channels() {
	case 1:
		src.CopyTo(dst)
	case 4:
		gocv.CvtColor(src, dst, gocv.ColorBGRAToGray)
	default:
		gocv.CvtColor(src, dst, gocv.ColorBGRToGray)
	}
}
