package algorithms

import (
	"math/rand"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"galaxy-classifier/internal/core"
)

// bgrFromHSV returns 8-bit B, G, R for hue in degrees and s, v in [0,1].
func bgrFromHSV(hue, s, v float64) [3]uint8 {
	r, g, b := colorful.Hsv(hue, s, v).RGB255()
	return [3]uint8{b, g, r}
}

func setPixel(m *gocv.Mat, x, y int, bgr [3]uint8) {
	for c := 0; c < 3; c++ {
		m.SetUCharAt(y, x*3+c, bgr[c])
	}
}

func getPixel(m gocv.Mat, x, y int) [3]uint8 {
	return [3]uint8{m.GetUCharAt(y, x*3), m.GetUCharAt(y, x*3+1), m.GetUCharAt(y, x*3+2)}
}

func randomMat(width, height int, seed int64) gocv.Mat {
	rng := rand.New(rand.NewSource(seed))
	m := gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3)
	for y := 0; y < height; y++ {
		for x := 0; x < width*3; x++ {
			m.SetUCharAt(y, x, uint8(rng.Intn(256)))
		}
	}
	return m
}

func newTestImage(t *testing.T, bgr gocv.Mat) *core.Image {
	t.Helper()
	img, err := core.NewImage(bgr, "")
	require.NoError(t, err)
	t.Cleanup(img.Close)
	return img
}

// naiveCount walks the inclusive region pixel by pixel.
func naiveCount(m gocv.Mat, channel, minimum int, r core.Region) int {
	count := 0
	for y := r.YStart; y <= r.YEnd; y++ {
		for x := r.XStart; x <= r.XEnd; x++ {
			if int(m.GetUCharAt(y, x*m.Channels()+channel)) > minimum {
				count++
			}
		}
	}
	return count
}
