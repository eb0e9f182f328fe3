// Image loading for classification
package io

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"strings"

	"gocv.io/x/gocv"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"galaxy-classifier/internal/core"
)

var (
	ErrNotAFile    = errors.New("not a regular file")
	ErrUndecodable = errors.New("file does not decode as an image")
)

// LoadError reports a path that could not be turned into an image.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("cannot load image %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ImageLoader handles image file operations
type ImageLoader struct {
	logger *slog.Logger
}

func NewImageLoader(logger *slog.Logger) *ImageLoader {
	return &ImageLoader{
		logger: logger,
	}
}

// LoadImage decodes filepath as a BGR image and computes its HSV
// representation. Every failure is returned as a *LoadError.
//
// The format is detected from the file contents, not the extension. OpenCV
// is tried first; files it cannot read are decoded with the Go image
// decoders (JPEG, PNG, GIF, BMP, TIFF, WebP) before giving up.
func (il *ImageLoader) LoadImage(filepath string) (*core.Image, error) {
	il.logger.Debug("Loading image", "filepath", filepath)

	if !il.isSupportedImageFormat(filepath) {
		il.logger.Debug("Unrecognised extension, relying on content detection",
			"filepath", filepath,
			"extension", getFileExtension(filepath))
	}

	info, err := os.Stat(filepath)
	if err != nil {
		return nil, &LoadError{Path: filepath, Err: err}
	}
	if !info.Mode().IsRegular() {
		return nil, &LoadError{Path: filepath, Err: ErrNotAFile}
	}

	mat := gocv.IMRead(filepath, gocv.IMReadColor)
	if mat.Empty() {
		mat.Close()
		il.logger.Debug("OpenCV could not decode image, trying Go decoders", "filepath", filepath)

		mat, err = decodeFallback(filepath)
		if err != nil {
			return nil, &LoadError{Path: filepath, Err: err}
		}
	}
	defer mat.Close()

	img, err := core.NewImage(mat, filepath)
	if err != nil {
		return nil, &LoadError{Path: filepath, Err: err}
	}

	il.logger.Info("Image loaded successfully",
		"filepath", filepath,
		"width", img.Width(),
		"height", img.Height(),
		"channels", img.Metadata().Channels)

	return img, nil
}

// decodeFallback decodes with the standard library and x/image decoders.
// ImageToMatRGB stores the samples in BGR order.
func decodeFallback(filepath string) (gocv.Mat, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer f.Close()

	decoded, format, err := image.Decode(f)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("%w: %v", ErrUndecodable, err)
	}

	mat, err := gocv.ImageToMatRGB(decoded)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("converting %s image: %w", format, err)
	}
	return mat, nil
}

func (il *ImageLoader) isSupportedImageFormat(filepath string) bool {
	ext := strings.ToLower(getFileExtension(filepath))
	for _, format := range supportedExtensions {
		if ext == format {
			return true
		}
	}
	return false
}

var supportedExtensions = []string{".jpg", ".jpeg", ".png", ".tiff", ".tif", ".bmp", ".webp", ".gif"}

func getFileExtension(filepath string) string {
	for i := len(filepath) - 1; i >= 0; i-- {
		if filepath[i] == '.' {
			return filepath[i:]
		}
		if filepath[i] == '/' || filepath[i] == '\\' {
			break
		}
	}
	return ""
}

// GetSupportedFormats lists the extensions known to decode. Other
// extensions are still attempted.
func (il *ImageLoader) GetSupportedFormats() []string {
	result := make([]string, len(supportedExtensions))
	copy(result, supportedExtensions)
	return result
}
