// Decoded galaxy image paired with its HSV representation
package core

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"
)

// ErrInvalidImage is returned for images the classifier cannot work with.
var ErrInvalidImage = errors.New("invalid image")

// Channel indices of the decoded BGR image.
const (
	ChannelBlue  = 0
	ChannelGreen = 1
	ChannelRed   = 2
)

// Image holds a decoded 8-bit BGR image and its HSV conversion.
//
// HSV uses the OpenCV 8-bit scale: H in [0,180) (degrees halved),
// S and V in [0,255]. Both Mats are owned by the Image and must not be
// modified or closed by callers; release them with Close.
type Image struct {
	bgr      gocv.Mat
	hsv      gocv.Mat
	metadata ImageMetadata
}

// ImageMetadata contains image information
type ImageMetadata struct {
	Width    int
	Height   int
	Channels int
	Type     gocv.MatType
	Format   string
	Path     string
}

// NewImage validates a BGR Mat, clones it and eagerly computes the HSV
// representation. The caller keeps ownership of bgr.
func NewImage(bgr gocv.Mat, path string) (*Image, error) {
	if err := ValidateImage(bgr); err != nil {
		return nil, err
	}

	if bgr.Type() != gocv.MatTypeCV8UC3 {
		return nil, fmt.Errorf("%w: expected 8-bit 3-channel BGR, got %d channels of type %v",
			ErrInvalidImage, bgr.Channels(), bgr.Type())
	}

	hsv := gocv.NewMat()
	gocv.CvtColor(bgr, &hsv, gocv.ColorBGRToHSV)
	if hsv.Empty() {
		hsv.Close()
		return nil, fmt.Errorf("%w: HSV conversion produced an empty image", ErrInvalidImage)
	}

	return &Image{
		bgr: bgr.Clone(),
		hsv: hsv,
		metadata: ImageMetadata{
			Width:    bgr.Cols(),
			Height:   bgr.Rows(),
			Channels: bgr.Channels(),
			Type:     bgr.Type(),
			Format:   getFormatFromPath(path),
			Path:     path,
		},
	}, nil
}

// BGR returns the original pixels.
func (img *Image) BGR() gocv.Mat {
	return img.bgr
}

// HSV returns the HSV representation.
func (img *Image) HSV() gocv.Mat {
	return img.hsv
}

func (img *Image) Width() int {
	return img.metadata.Width
}

func (img *Image) Height() int {
	return img.metadata.Height
}

// Metadata returns image metadata
func (img *Image) Metadata() ImageMetadata {
	return img.metadata
}

// Close releases both Mats.
func (img *Image) Close() {
	if !img.bgr.Empty() {
		img.bgr.Close()
	}
	if !img.hsv.Empty() {
		img.hsv.Close()
	}
	img.bgr = gocv.NewMat()
	img.hsv = gocv.NewMat()
}

// getFormatFromPath extracts image format from file path
func getFormatFromPath(filepath string) string {
	if filepath == "" {
		return "unknown"
	}

	for i := len(filepath) - 1; i >= 0; i-- {
		if filepath[i] == '.' {
			return filepath[i+1:]
		}
		if filepath[i] == '/' || filepath[i] == '\\' {
			break
		}
	}
	return "unknown"
}

// ValidateImage validates an OpenCV Mat for basic requirements
func ValidateImage(mat gocv.Mat) error {
	if mat.Empty() {
		return fmt.Errorf("%w: image is empty", ErrInvalidImage)
	}

	if mat.Cols() <= 0 || mat.Rows() <= 0 {
		return fmt.Errorf("%w: invalid dimensions: %dx%d", ErrInvalidImage, mat.Cols(), mat.Rows())
	}

	channels := mat.Channels()
	if channels < 1 || channels > 4 {
		return fmt.Errorf("%w: unsupported channel count: %d", ErrInvalidImage, channels)
	}

	// Check for reasonable size limits (prevent memory issues)
	const maxDimension = 16384
	if mat.Cols() > maxDimension || mat.Rows() > maxDimension {
		return fmt.Errorf("%w: image too large: %dx%d (max: %d)", ErrInvalidImage, mat.Cols(), mat.Rows(), maxDimension)
	}

	return nil
}
