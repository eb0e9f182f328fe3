// Thresholded pixel counting over a region of interest
package algorithms

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"

	"galaxy-classifier/internal/core"
)

var (
	// ErrInvalidChannel is returned for a channel index the image does not have.
	ErrInvalidChannel = errors.New("channel index out of range")

	// ErrInvalidRegion is returned for a region that is malformed or leaves the image.
	ErrInvalidRegion = errors.New("region outside image")
)

// CountPixels counts the pixels inside region whose sample on the given
// channel is strictly greater than minimum.
//
// Both end coordinates of region are counted, so the region spans
// XEnd-XStart+1 columns and YEnd-YStart+1 rows. mat must be 8-bit.
func CountPixels(mat gocv.Mat, channel, minimum int, region core.Region) (int, error) {
	if mat.Empty() {
		return 0, fmt.Errorf("%w: image is empty", core.ErrInvalidImage)
	}
	if mat.Type()&7 != gocv.MatTypeCV8U {
		return 0, fmt.Errorf("%w: expected 8-bit samples, got type %v", core.ErrInvalidImage, mat.Type())
	}
	if channel < 0 || channel >= mat.Channels() {
		return 0, fmt.Errorf("%w: %d (image has %d channels)", ErrInvalidChannel, channel, mat.Channels())
	}
	if !region.Within(mat.Cols(), mat.Rows()) {
		return 0, fmt.Errorf("%w: %s in %dx%d image", ErrInvalidRegion, region, mat.Cols(), mat.Rows())
	}

	roi := mat.Region(region.Rectangle())
	defer roi.Close()

	planes := gocv.Split(roi)
	defer func() {
		for _, p := range planes {
			p.Close()
		}
	}()

	// Binary threshold keeps samples strictly above the threshold
	binary := gocv.NewMat()
	defer binary.Close()
	gocv.Threshold(planes[channel], &binary, float32(minimum), 255, gocv.ThresholdBinary)

	return gocv.CountNonZero(binary), nil
}
