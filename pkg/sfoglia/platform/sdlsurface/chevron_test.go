package sdlsurface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRasterizeChevron(t *testing.T) {
	img, err := rasterizeChevron(48)
	require.NoError(t, err)
	require.Equal(t, 48, img.Bounds().Dx())
	require.Equal(t, 48, img.Bounds().Dy())

	// The glyph must actually cover some pixels.
	covered := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 0 {
			covered++
		}
	}
	assert.Greater(t, covered, 0, "chevron rasterized to a blank image")
}

func TestRasterizeChevronRejectsBadSize(t *testing.T) {
	_, err := rasterizeChevron(0)
	assert.Error(t, err)
}

func TestSlideFrameOffsets(t *testing.T) {
	const w = 640

	entering := SlideFrame(0, 0, nil, w)
	assert.EqualValues(t, w, entering.OffsetX, "not-yet-entered route sits fully off-screen")

	settled := SlideFrame(1, 0, nil, w)
	assert.EqualValues(t, 0, settled.OffsetX)

	covered := SlideFrame(1, 1, nil, w)
	assert.EqualValues(t, -w/3, covered.OffsetX, "covered route drifts a third left")
}
