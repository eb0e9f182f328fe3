// Central region of interest computation
package core

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// ErrInvalidSplit is returned when the split factor is not a positive integer.
var ErrInvalidSplit = errors.New("split must be a positive integer")

// Region is a rectangle whose end coordinates are inclusive: the pixel at
// (XEnd, YEnd) belongs to the region.
type Region struct {
	XStart int
	YStart int
	XEnd   int
	YEnd   int
}

// CenterRegion divides each axis of a width x height image into split equal
// tiles and returns the centre tile, rounded outward to whole pixels.
//
// An even split is bumped to the next odd number so a single centre tile
// exists. Tile sizes are fractional; the start edge is floored and the end
// edge ceiled. End coordinates are clamped to the last column and row so the
// region always lies inside the image.
func CenterRegion(width, height, split int) (Region, error) {
	if split < 1 {
		return Region{}, fmt.Errorf("%w: got %d", ErrInvalidSplit, split)
	}
	if width < 1 || height < 1 {
		return Region{}, fmt.Errorf("%w: invalid dimensions: %dx%d", ErrInvalidImage, width, height)
	}

	if split%2 == 0 {
		split++
	}

	tileWidth := float64(width) / float64(split)
	tileHeight := float64(height) / float64(split)
	startTile := float64(split / 2)
	endTile := math.Ceil(float64(split) / 2)

	region := Region{
		XStart: int(math.Floor(tileWidth * startTile)),
		YStart: int(math.Floor(tileHeight * startTile)),
		XEnd:   int(math.Ceil(tileWidth * endTile)),
		YEnd:   int(math.Ceil(tileHeight * endTile)),
	}

	region.XEnd = min(region.XEnd, width-1)
	region.YEnd = min(region.YEnd, height-1)

	return region, nil
}

// Within reports whether the region is well formed and lies inside a
// width x height image.
func (r Region) Within(width, height int) bool {
	if r.XStart < 0 || r.YStart < 0 {
		return false
	}
	if r.XStart > r.XEnd || r.YStart > r.YEnd {
		return false
	}
	return r.XEnd < width && r.YEnd < height
}

// Rectangle converts the region to the half-open image.Rectangle covering
// the same pixels.
func (r Region) Rectangle() image.Rectangle {
	return image.Rect(r.XStart, r.YStart, r.XEnd+1, r.YEnd+1)
}

// Area returns the number of pixels in the region.
func (r Region) Area() int {
	return (r.XEnd - r.XStart + 1) * (r.YEnd - r.YStart + 1)
}

func (r Region) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.XStart, r.YStart, r.XEnd, r.YEnd)
}
