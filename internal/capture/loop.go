package capture

import (
	"context"
	"log/slog"
	"time"

	"github.com/andresmejia3/facedetect/internal/detector"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// ErrLoopClosed is returned by Run on a loop that already ran.
var ErrLoopClosed = errors.New("capture loop already closed")

// State is the lifecycle phase of a Loop.
type State int

const (
	Opening State = iota
	Streaming
	Closed
)

func (s State) String() string {
	switch s {
	case Opening:
		return "opening"
	case Streaming:
		return "streaming"
	case Closed:
		return "closed"
	}
	return "unknown"
}

// Reason records why a Loop stopped.
type Reason int

const (
	EndOfStream Reason = iota
	UserQuit
	Cancelled
)

func (r Reason) String() string {
	switch r {
	case EndOfStream:
		return "end of stream"
	case UserQuit:
		return "quit key"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// Source yields frames. Read returns false when no frame is available.
type Source interface {
	Read(m *gocv.Mat) bool
	Close() error
}

// Sink renders frames and reports whether the user asked to stop.
type Sink interface {
	Show(frame gocv.Mat)
	QuitRequested() bool
	Close() error
}

// Processor annotates a frame in place.
type Processor interface {
	Process(frame *gocv.Mat) detector.Result
}

// Progress is advanced once per frame (satisfied by *progressbar.ProgressBar).
type Progress interface {
	Add(num int) error
	Finish() error
}

// Stats summarises a finished session.
type Stats struct {
	Frames          int // Frames read
	FramesWithFaces int // Frames with at least one annotated face
	Faces           int // Annotated faces across all frames
	Reason          Reason
	Elapsed         time.Duration
}

// Loop pulls frames from Source, runs them through Detector and hands them to
// Sink, one at a time. It owns Source and Sink from the moment Run is called
// and releases both exactly once, whichever way Run exits.
type Loop struct {
	Source   Source
	Sink     Sink
	Detector Processor
	Progress Progress     // optional
	Logger   *slog.Logger // optional

	state    State
	released bool
}

// State reports the current lifecycle phase.
func (l *Loop) State() State {
	return l.state
}

// Run streams until end of stream, the quit key, or ctx cancellation.
// A failed read ends the session normally; it is never retried.
func (l *Loop) Run(ctx context.Context) (stats Stats, err error) {
	if l.released {
		return stats, ErrLoopClosed
	}
	start := time.Now()
	defer func() {
		stats.Elapsed = time.Since(start)
		if cerr := l.release(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	frame := gocv.NewMat()
	defer frame.Close()

	l.setState(Streaming)
	for {
		if ctx.Err() != nil {
			stats.Reason = Cancelled
			break
		}
		if ok := l.Source.Read(&frame); !ok || frame.Empty() {
			stats.Reason = EndOfStream
			break
		}
		stats.Frames++

		res := l.Detector.Process(&frame)
		if n := res.Annotated(); n > 0 {
			stats.FramesWithFaces++
			stats.Faces += n
			l.logger().Debug("faces annotated", "frame", stats.Frames, "count", n)
		}
		if l.Progress != nil {
			_ = l.Progress.Add(1)
		}

		l.Sink.Show(frame)
		if l.Sink.QuitRequested() {
			stats.Reason = UserQuit
			break
		}
	}

	l.logger().Info("capture stopped", "reason", stats.Reason, "frames", stats.Frames)
	return stats, nil
}

// release closes the source and sink once and moves the loop to Closed.
func (l *Loop) release() error {
	if l.released {
		return nil
	}
	l.released = true
	defer l.setState(Closed)

	if l.Progress != nil {
		_ = l.Progress.Finish()
	}

	var first error
	if err := l.Source.Close(); err != nil {
		l.logger().Warn("source close failed", "err", err)
		first = err
	}
	if err := l.Sink.Close(); err != nil {
		l.logger().Warn("sink close failed", "err", err)
		if first == nil {
			first = err
		}
	}
	return first
}

func (l *Loop) setState(s State) {
	if l.state == s {
		return
	}
	l.logger().Debug("capture state", "from", l.state, "to", s)
	l.state = s
}

func (l *Loop) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}
