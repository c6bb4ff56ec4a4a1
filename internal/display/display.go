package display

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// DefaultTitle is the title of the detection window.
const DefaultTitle = "Face Detection"

// QuitKey ends the session when pressed while the window has focus.
const QuitKey = 'q'

// pollDelay is how long WaitKey blocks per frame, in milliseconds.
const pollDelay = 1

// keyWaiter is the part of gocv.Window used for key polling.
type keyWaiter interface {
	WaitKey(delay int) int
}

// Window renders frames to an on-screen OpenCV window.
type Window struct {
	win *gocv.Window
}

// NewWindow opens a window with the given title.
func NewWindow(title string) *Window {
	return &Window{win: gocv.NewWindow(title)}
}

// Show draws frame in the window.
func (w *Window) Show(frame gocv.Mat) {
	w.win.IMShow(frame)
}

// QuitRequested pumps the window event loop for one millisecond and reports
// whether the quit key was pressed. Closing the window does not count.
func (w *Window) QuitRequested() bool {
	return pollQuit(w.win)
}

// Close destroys the window.
func (w *Window) Close() error {
	if err := w.win.Close(); err != nil {
		return errors.Wrap(err, "closing display window")
	}
	return nil
}

func pollQuit(k keyWaiter) bool {
	key := k.WaitKey(pollDelay)
	if key < 0 {
		return false
	}
	return key&0xFF == QuitKey
}
