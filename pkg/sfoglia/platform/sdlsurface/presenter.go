// Package sdlsurface presents a navigation overlay through an SDL renderer.
// It composites route surfaces bottom-to-top, fills modal barriers with
// their scrim color scaled by the route's transition progress, skips
// painting below a settled opaque route, and draws a rasterized chevron as
// the back affordance.
//
// Page builders used with this presenter return Frame values (or bare
// *sdl.Texture for full-screen content).
package sdlsurface

import (
	"fmt"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/BrandonKowalski/sfoglia/pkg/sfoglia"
	"github.com/BrandonKowalski/sfoglia/pkg/sfoglia/internal"
)

// Frame is the content a page build callback returns for this presenter:
// a texture plus the placement its transition wrapper computed.
type Frame struct {
	Texture *sdl.Texture
	OffsetX int32
	OffsetY int32
	// Opacity in [0,1]; 1 when omitted via NewFrame.
	Opacity float64
}

// NewFrame wraps a texture at the origin with full opacity.
func NewFrame(texture *sdl.Texture) Frame {
	return Frame{Texture: texture, Opacity: 1}
}

// SlideFrame places a texture with the iOS-style push transition: the route
// slides in from the right as its primary animation runs, and drifts a
// third of the screen left as a route above covers it.
func SlideFrame(primary, secondary float64, texture *sdl.Texture, screenW int32) Frame {
	offset := int32((1-primary)*float64(screenW)) - int32(secondary*float64(screenW)/3)
	return Frame{Texture: texture, OffsetX: offset, Opacity: 1}
}

// opaqueRoute is met by route variants that can fully obscure lower
// surfaces once settled.
type opaqueRoute interface {
	Opaque() bool
	PrimaryValue() float64
}

// Presenter composites an overlay's surfaces onto an SDL renderer.
type Presenter struct {
	renderer *sdl.Renderer
	overlay  *sfoglia.Overlay
	width    int32
	height   int32

	cache       *textureCache
	chevron     *sdl.Texture
	chevronSize int32
}

// New creates a presenter for the given renderer and overlay. The chevron
// texture is rasterized once up front.
func New(renderer *sdl.Renderer, overlay *sfoglia.Overlay, width, height int32) (*Presenter, error) {
	p := &Presenter{
		renderer:    renderer,
		overlay:     overlay,
		width:       width,
		height:      height,
		cache:       newTextureCache(defaultMaxCacheSize, nil),
		chevronSize: height / 16,
	}
	if p.chevronSize < 24 {
		p.chevronSize = 24
	}

	img, err := rasterizeChevron(int(p.chevronSize))
	if err != nil {
		return nil, err
	}
	tex, err := textureFromRGBA(renderer, img.Pix, p.chevronSize, p.chevronSize, int32(img.Stride))
	if err != nil {
		return nil, err
	}
	p.chevron = tex
	return p, nil
}

func textureFromRGBA(renderer *sdl.Renderer, pix []byte, w, h, pitch int32) (*sdl.Texture, error) {
	surface, err := sdl.CreateRGBSurfaceWithFormatFrom(
		unsafe.Pointer(&pix[0]), w, h, 32, pitch, sdl.PIXELFORMAT_ABGR8888)
	if err != nil {
		return nil, sfoglia.NewPlatformError("create_surface", err)
	}
	defer surface.Free()

	tex, err := renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return nil, sfoglia.NewPlatformError("create_texture", err)
	}
	if err := tex.SetBlendMode(sdl.BLENDMODE_BLEND); err != nil {
		return nil, sfoglia.NewPlatformError("set_blend_mode", err)
	}
	return tex, nil
}

// Cache returns route textures by key, creating them through build on a
// miss. Evicted textures are destroyed.
func (p *Presenter) Cache(key string, build func() (*sdl.Texture, error)) (*sdl.Texture, error) {
	if tex := p.cache.get(key); tex != nil {
		return tex, nil
	}
	tex, err := build()
	if err != nil {
		return nil, err
	}
	p.cache.set(key, tex)
	return tex, nil
}

// DropCached destroys one cached texture, for routes invalidating their
// content.
func (p *Presenter) DropCached(key string) {
	p.cache.drop(key)
}

// Present composites the navigator's overlay for one frame. The caller owns
// renderer.Clear and renderer.Present around it.
func (p *Presenter) Present(nav *sfoglia.Navigator) error {
	ctx := nav.BuildContext()
	entries := p.overlay.Entries()

	// Surfaces below a settled opaque route are not painted. Those that
	// maintain state are still built so they keep their internal state
	// current; the rest are skipped entirely and rebuild lazily when
	// revealed.
	first := 0
	for i := len(entries) - 1; i > 0; i-- {
		if o, ok := entries[i].Owner.(opaqueRoute); ok && o.Opaque() && o.PrimaryValue() >= 1 {
			first = i
			for first > 0 && entries[first-1].Owner == entries[i].Owner {
				first--
			}
			break
		}
	}

	for i, entry := range entries {
		if entry.Build == nil {
			continue
		}
		if i < first {
			if entry.MaintainState() {
				entry.Build(ctx)
			}
			continue
		}
		if err := p.paint(ctx, entry); err != nil {
			return err
		}
	}

	if nav.ImpliesBackAffordance() {
		return p.paintChevron()
	}
	return nil
}

func (p *Presenter) paint(ctx sfoglia.BuildContext, entry *sfoglia.OverlayEntry) error {
	switch content := entry.Build(ctx).(type) {
	case nil:
		return nil
	case sfoglia.Barrier:
		return p.paintBarrier(content)
	case Frame:
		return p.paintFrame(content)
	case *sdl.Texture:
		return p.paintFrame(NewFrame(content))
	default:
		internal.Logger().Warn("unsupported overlay content", "type", fmt.Sprintf("%T", content))
		return nil
	}
}

func (p *Presenter) paintBarrier(b sfoglia.Barrier) error {
	alpha := float64(b.Color.A) * clamp01(b.Opacity)
	if alpha <= 0 {
		return nil
	}
	if err := p.renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND); err != nil {
		return err
	}
	if err := p.renderer.SetDrawColor(b.Color.R, b.Color.G, b.Color.B, uint8(alpha)); err != nil {
		return err
	}
	return p.renderer.FillRect(&sdl.Rect{X: 0, Y: 0, W: p.width, H: p.height})
}

func (p *Presenter) paintFrame(f Frame) error {
	if f.Texture == nil {
		return nil
	}
	if err := f.Texture.SetBlendMode(sdl.BLENDMODE_BLEND); err != nil {
		return err
	}
	if err := f.Texture.SetAlphaMod(uint8(255 * clamp01(f.Opacity))); err != nil {
		return err
	}
	dst := sdl.Rect{X: f.OffsetX, Y: f.OffsetY, W: p.width, H: p.height}
	return p.renderer.Copy(f.Texture, nil, &dst)
}

func (p *Presenter) paintChevron() error {
	pad := p.chevronSize / 2
	dst := sdl.Rect{X: pad, Y: pad, W: p.chevronSize, H: p.chevronSize}
	return p.renderer.Copy(p.chevron, nil, &dst)
}

// Destroy releases the chevron and every cached texture.
func (p *Presenter) Destroy() {
	if p.chevron != nil {
		p.chevron.Destroy()
		p.chevron = nil
	}
	p.cache.clear()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
