package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/andresmejia3/facedetect/internal/capture"
	"github.com/andresmejia3/facedetect/internal/cascade"
	"github.com/andresmejia3/facedetect/internal/detector"
	"github.com/andresmejia3/facedetect/internal/display"
	"github.com/andresmejia3/facedetect/internal/types"
	"github.com/andresmejia3/facedetect/internal/utils"
	"github.com/schollz/progressbar/v3"
)

var detectOpts Options

func init() {
	rootCmd.Flags().StringVarP(&detectOpts.InputPath, "input", "i", "", "Camera index (e.g. 0) or path to a video file")

	rootCmd.MarkFlagRequired("input")
}

// runDetect orchestrates a detection session: model loading, capture, the frame loop and the summary.
func runDetect(ctx context.Context, opts Options) error {
	src, err := validateDetectFlags(&opts)
	if err != nil {
		return err
	}

	// 1. Models must be in place before we touch the camera
	dir, err := cascade.ResolveDir(cascadeDir)
	if err != nil {
		utils.ShowError("Failed to locate Haar cascades (set --cascade-dir or OPENCV_HAARCASCADES)", err)
		return err
	}
	models, err := cascade.Load(dir)
	if err != nil {
		utils.ShowError("Failed to load Haar cascades", err)
		return err
	}
	defer models.Close()
	logger.Debug("cascades loaded", "dir", dir)

	// 2. Open the capture
	video, err := capture.Open(src)
	if err != nil {
		utils.ShowError("Failed to open input", err)
		return err
	}
	fmt.Fprintf(os.Stderr, "📹 Reading from %s. Press 'q' in the window to stop.\n", src)

	// 3. Progress: a bar for files, a spinner for cameras
	bar := progressbar.NewOptions64(video.FrameCount(),
		progressbar.OptionSetDescription("🔍 Detecting"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
	)

	// 4. Stream. The loop owns the capture and the window from here on.
	loop := &capture.Loop{
		Source:   video,
		Sink:     display.NewWindow(display.DefaultTitle),
		Detector: detector.New(models.Face, models.Eyes),
		Progress: bar,
		Logger:   logger,
	}
	stats, err := loop.Run(ctx)
	if err != nil {
		utils.ShowError("Failed to release capture resources", err)
		return err
	}

	fmt.Fprintf(os.Stderr, "\n🏁 Session Complete (%s). Processed %d frames in %s, %d with a confirmed face (%d faces total).\n",
		stats.Reason, stats.Frames, utils.FmtTime(stats.Elapsed.Seconds()), stats.FramesWithFaces, stats.Faces)
	return nil
}

// validateDetectFlags turns the --input descriptor into a Source and checks file inputs
// before any model or device is opened.
func validateDetectFlags(opts *Options) (types.Source, error) {
	src, err := types.ParseSource(opts.InputPath)
	if err != nil {
		utils.ShowError("Invalid input", err)
		return src, err
	}
	if src.IsCamera() {
		return src, nil
	}

	info, err := os.Stat(src.Path)
	if err != nil {
		if os.IsNotExist(err) {
			utils.ShowError("Input file does not exist", err)
			return src, err
		}
		utils.ShowError("Unable to access input file", err)
		return src, err
	}
	if info.IsDir() {
		err := fmt.Errorf("%s is a directory", src.Path)
		utils.ShowError("Input path is a directory, expected a video file", err)
		return src, err
	}
	return src, nil
}
