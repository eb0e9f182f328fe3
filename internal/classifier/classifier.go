// Spiral/ellipse decision from red and blue pixel counts
package classifier

import (
	"fmt"
	"log/slog"

	"gocv.io/x/gocv"
	"golang.org/x/sync/errgroup"

	"galaxy-classifier/internal/algorithms"
	"galaxy-classifier/internal/config"
	"galaxy-classifier/internal/core"
)

// Label is the morphological class of a galaxy.
type Label string

const (
	Spiral  Label = "spiral"
	Ellipse Label = "ellipse"
)

func (l Label) String() string {
	return string(l)
}

// Decide returns Spiral only when blue pixels strictly outnumber red ones.
// Ties, including 0/0, are Ellipse.
func Decide(redCount, blueCount int) Label {
	if blueCount > redCount {
		return Spiral
	}
	return Ellipse
}

// Result is the outcome of one classification.
type Result struct {
	Label     Label
	RedCount  int
	BlueCount int
	Region    core.Region
	Stages    []core.StageTiming
}

// Classifier applies a fixed configuration to loaded images.
type Classifier struct {
	cfg    config.Config
	logger *slog.Logger
}

func New(cfg config.Config, logger *slog.Logger) (*Classifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Classifier{
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Config returns the configuration in use.
func (c *Classifier) Config() config.Config {
	return c.cfg
}

// Classify masks img by the red and blue ranges, counts bright pixels in
// the central region of each masked image and decides the label.
func (c *Classifier) Classify(img *core.Image) (*Result, error) {
	tracker := core.NewStageTracker(c.logger)

	var redMasked, blueMasked gocv.Mat
	err := tracker.Track("mask", func() error {
		var err error
		redMasked, err = algorithms.MaskedImage(img, c.cfg.RedRange)
		if err != nil {
			return fmt.Errorf("red mask: %w", err)
		}
		blueMasked, err = algorithms.MaskedImage(img, c.cfg.BlueRange)
		if err != nil {
			redMasked.Close()
			return fmt.Errorf("blue mask: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	defer redMasked.Close()
	defer blueMasked.Close()

	var region core.Region
	err = tracker.Track("region", func() error {
		var err error
		region, err = core.CenterRegion(img.Width(), img.Height(), c.cfg.Split)
		return err
	})
	if err != nil {
		return nil, err
	}

	var redCount, blueCount int
	err = tracker.Track("count", func() error {
		var g errgroup.Group
		g.Go(func() error {
			n, err := algorithms.CountPixels(redMasked, c.cfg.RedChannel, c.cfg.MinBrightness, region)
			if err != nil {
				return fmt.Errorf("red count: %w", err)
			}
			redCount = n
			return nil
		})
		g.Go(func() error {
			n, err := algorithms.CountPixels(blueMasked, c.cfg.BlueChannel, c.cfg.MinBrightness, region)
			if err != nil {
				return fmt.Errorf("blue count: %w", err)
			}
			blueCount = n
			return nil
		})
		return g.Wait()
	})
	if err != nil {
		return nil, err
	}

	label := Decide(redCount, blueCount)

	c.logger.Debug("Classification complete",
		"label", label,
		"red_count", redCount,
		"blue_count", blueCount,
		"region", region.String(),
		"region_area", region.Area())
	tracker.LogSummary()

	return &Result{
		Label:     label,
		RedCount:  redCount,
		BlueCount: blueCount,
		Region:    region,
		Stages:    tracker.Stages(),
	}, nil
}
