package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/andresmejia3/facedetect/internal/utils"
	"github.com/spf13/cobra"
)

// Options holds the configuration for a detection session
type Options struct {
	InputPath string
}

var (
	// logger is the diagnostics logger shared by subcommands
	logger *slog.Logger
	// cascadeDir is the haarcascades directory; empty means search the default install paths
	cascadeDir string
)

// Version is the application version.
const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:     "facedetect",
	Short:   "Live face & eye detection on a camera or video file",
	Version: Version, // This enables the --version flag
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := utils.ParseLevel(os.Getenv("FACEDETECT_LOG_LEVEL"))
		if err != nil {
			return err
		}
		logger = utils.NewLogger(os.Stderr, level)
		slog.SetDefault(logger)

		// If no flag was provided, fall back to the environment.
		// An empty value lets the cascade loader search the standard OpenCV locations.
		if cascadeDir == "" {
			cascadeDir = os.Getenv("OPENCV_HAARCASCADES")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return runDetect(cmd.Context(), detectOpts)
	},
}

func Execute() {
	// Create a context that listens for Ctrl+C (SIGINT) or Kill (SIGTERM)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// This tells Cobra not to print the version in the help text, which is cleaner.
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cascadeDir, "cascade-dir", "", "Directory holding the OpenCV Haar cascade XML files (default: $OPENCV_HAARCASCADES or the OpenCV install path)")
}
