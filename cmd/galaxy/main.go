// Galaxy morphology classifier
// Prints "spiral" or "ellipse" for a single centred galaxy image.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"galaxy-classifier/internal/classifier"
	"galaxy-classifier/internal/config"
	imageio "galaxy-classifier/internal/io"
)

const appVersion = "1.0.0"

// Exit statuses
const (
	exitOK       = 0
	exitUsage    = 1
	exitLoad     = 2
	exitClassify = 3
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// run executes one classification. Only the label (or the usage message)
// is written to stdout; diagnostics go to stderr.
func run(args []string, stdout, stderr io.Writer) int {
	program := "galaxy"
	if len(args) > 0 {
		program = filepath.Base(args[0])
		args = args[1:]
	}

	// Flags must precede the image; a path starting with "-" goes after "--".
	flags := flag.NewFlagSet(program, flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	debugMode := flags.Bool("debug", false, "Enable debug mode with verbose logging")
	configPath := flags.String("config", "", "YAML file overriding the classification thresholds")

	if err := flags.Parse(args); err != nil || flags.NArg() != 1 {
		fmt.Fprintf(stdout, "Usage: %s <image>\n", program)
		return exitUsage
	}
	imagePath := flags.Arg(0)

	logger := initLogger(*debugMode, stderr)
	logger.WithFields(logrus.Fields{
		"version":    appVersion,
		"debug_mode": *debugMode,
		"image":      imagePath,
	}).Debug("Starting galaxy classifier")

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			logger.WithError(err).Error("Configuration rejected")
			return exitClassify
		}
		logger.WithField("config", *configPath).Debug("Configuration loaded")
	}

	slogger := newSlogLogger(*debugMode, stderr)

	img, err := imageio.NewImageLoader(slogger).LoadImage(imagePath)
	if err != nil {
		var loadErr *imageio.LoadError
		if errors.As(err, &loadErr) {
			logger.WithField("path", loadErr.Path).WithError(loadErr.Err).Error("Failed to load image")
		} else {
			logger.WithError(err).Error("Failed to load image")
		}
		return exitLoad
	}
	defer img.Close()

	c, err := classifier.New(cfg, slogger)
	if err != nil {
		logger.WithError(err).Error("Configuration rejected")
		return exitClassify
	}

	result, err := c.Classify(img)
	if err != nil {
		logger.WithError(err).Error("Classification failed")
		return exitClassify
	}

	logger.WithFields(logrus.Fields{
		"label":      result.Label,
		"red_count":  result.RedCount,
		"blue_count": result.BlueCount,
		"region":     result.Region.String(),
	}).Debug("Classified image")

	fmt.Fprintln(stdout, result.Label)
	return exitOK
}

// initLogger initializes the logger with appropriate level
func initLogger(debugMode bool, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.WarnLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}

// newSlogLogger builds the structured logger handed to the internal packages.
func newSlogLogger(debugMode bool, out io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if debugMode {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
}
