package sdlsurface

import (
	"fmt"
	"image"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Back-affordance chevron, drawn top-left when the stack can pop or the
// current route's local history asks for one.
const chevronSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
  <path fill="#FFFFFF" d="M15.41 7.41 14 6l-6 6 6 6 1.41-1.41L10.83 12z"/>
</svg>`

// rasterizeChevron renders the embedded chevron SVG into an RGBA image of
// the given square size.
func rasterizeChevron(size int) (*image.RGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("sdlsurface: invalid chevron size %d", size)
	}

	icon, err := oksvg.ReadIconStream(strings.NewReader(chevronSVG))
	if err != nil {
		return nil, fmt.Errorf("sdlsurface: parse chevron svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1.0)
	return img, nil
}
