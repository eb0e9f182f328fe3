// HSV colour-range masking
package algorithms

import (
	"fmt"

	"gocv.io/x/gocv"

	"galaxy-classifier/internal/core"
)

// OpenCV 8-bit HSV scale.
const (
	MaxHue        = 179
	MaxSaturation = 255
	MaxValue      = 255
)

// HSV is a hue/saturation/value triple on the OpenCV 8-bit scale
// (H 0-179, S 0-255, V 0-255). In YAML it is written as [h, s, v].
type HSV [3]int

func (c HSV) H() int { return c[0] }
func (c HSV) S() int { return c[1] }
func (c HSV) V() int { return c[2] }

func (c HSV) scalar() gocv.Scalar {
	return gocv.NewScalar(float64(c[0]), float64(c[1]), float64(c[2]), 0)
}

// ColorRange is a closed box in HSV space. Hue wraparound is not supported:
// a range such as 170..10 must be split by the caller.
type ColorRange struct {
	Low  HSV `yaml:"low"`
	High HSV `yaml:"high"`
}

// Contains reports whether the triple lies inside the box on every component.
func (r ColorRange) Contains(h, s, v int) bool {
	return h >= r.Low[0] && h <= r.High[0] &&
		s >= r.Low[1] && s <= r.High[1] &&
		v >= r.Low[2] && v <= r.High[2]
}

// Validate checks the scale of both bounds and that Low <= High componentwise.
func (r ColorRange) Validate() error {
	limits := HSV{MaxHue, MaxSaturation, MaxValue}
	names := [3]string{"hue", "saturation", "value"}

	for i := range limits {
		if r.Low[i] < 0 || r.Low[i] > limits[i] {
			return fmt.Errorf("low %s %d outside [0,%d]", names[i], r.Low[i], limits[i])
		}
		if r.High[i] < 0 || r.High[i] > limits[i] {
			return fmt.Errorf("high %s %d outside [0,%d]", names[i], r.High[i], limits[i])
		}
		if r.Low[i] > r.High[i] {
			return fmt.Errorf("low %s %d exceeds high %s %d", names[i], r.Low[i], names[i], r.High[i])
		}
	}

	return nil
}

// MaskedImage returns a new BGR image of the same size as img in which every
// pixel whose HSV triple falls outside rng is zeroed on all channels and
// every other pixel is copied unchanged from the original. img is not
// modified. The caller owns the returned Mat.
func MaskedImage(img *core.Image, rng ColorRange) (gocv.Mat, error) {
	bgr := img.BGR()
	hsv := img.HSV()

	if bgr.Empty() || hsv.Empty() {
		return gocv.NewMat(), fmt.Errorf("%w: image is empty or closed", core.ErrInvalidImage)
	}
	if bgr.Rows() != hsv.Rows() || bgr.Cols() != hsv.Cols() {
		return gocv.NewMat(), fmt.Errorf("%w: BGR %dx%d and HSV %dx%d differ",
			core.ErrInvalidImage, bgr.Cols(), bgr.Rows(), hsv.Cols(), hsv.Rows())
	}

	// inRange is inclusive on both bounds
	mask := gocv.NewMat()
	defer mask.Close()
	gocv.InRangeWithScalar(hsv, rng.Low.scalar(), rng.High.scalar(), &mask)

	output := gocv.Zeros(bgr.Rows(), bgr.Cols(), bgr.Type())
	bgr.CopyToWithMask(&output, mask)

	return output, nil
}
