// Package render draws a world.World with ebiten. It never changes the
// world; everything it needs is read from the world's exported state.
package render

import (
	"bytes"
	"image"
	"image/color"
	"log"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/blockjumper/assets"
	"github.com/milk9111/blockjumper/common"
	"github.com/milk9111/blockjumper/prefabs"
	"github.com/milk9111/blockjumper/world"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/gofont/goregular"
)

// Renderer composes a frame the same way every tick: background and clouds
// on one layer, the level on another whose silhouette is cast onto the
// first, then effects, the transition wipe and the HUD.
type Renderer struct {
	pack *assets.Pack
	hud  *prefabs.HUDSpec
	// Debug draws collision boxes and entity state.
	Debug bool

	background *ebiten.Image
	display    *ebiten.Image
	wipe       *ebiten.Image
	hole       *ebiten.Image
	white      *ebiten.Image
	face       text.Face
	cache      map[image.Image]*ebiten.Image

	textColor       color.Color
	shadowColor     color.Color
	silhouetteColor color.Color
}

func New(pack *assets.Pack, hud *prefabs.HUDSpec) *Renderer {
	if hud == nil {
		hud = &prefabs.HUDSpec{FontSize: 12}
	}
	r := &Renderer{
		pack:            pack,
		hud:             hud,
		background:      ebiten.NewImage(common.BaseWidth, common.BaseHeight),
		display:         ebiten.NewImage(common.BaseWidth, common.BaseHeight),
		wipe:            ebiten.NewImage(common.BaseWidth, common.BaseHeight),
		hole:            ebiten.NewImage(common.BaseWidth, common.BaseHeight),
		white:           newWhite(),
		cache:           make(map[image.Image]*ebiten.Image),
		textColor:       hud.TextColor.Or(color.White),
		shadowColor:     hud.ShadowColor.Or(color.NRGBA{A: 180}),
		silhouetteColor: hud.SilhouetteColor.Or(color.NRGBA{A: 180}),
	}

	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Printf("render: load font: %v", err)
	} else {
		size := hud.FontSize
		if size <= 0 {
			size = 12
		}
		r.face = &text.GoTextFace{Source: src, Size: size}
	}
	return r
}

// SetHUD swaps the HUD styling, e.g. after hud.yaml is reloaded.
func (r *Renderer) SetHUD(hud *prefabs.HUDSpec) {
	if hud == nil {
		return
	}
	r.hud = hud
	r.textColor = hud.TextColor.Or(color.White)
	r.shadowColor = hud.ShadowColor.Or(color.NRGBA{A: 180})
	r.silhouetteColor = hud.SilhouetteColor.Or(color.NRGBA{A: 180})
	if gf, ok := r.face.(*text.GoTextFace); ok && hud.FontSize > 0 {
		gf.Size = hud.FontSize
	}
}

// image returns the GPU copy of img, uploading it on first use.
func (r *Renderer) image(img image.Image) *ebiten.Image {
	if img == nil {
		return nil
	}
	if e, ok := img.(*ebiten.Image); ok {
		return e
	}
	if e, ok := r.cache[img]; ok {
		return e
	}
	e := ebiten.NewImageFromImage(img)
	r.cache[img] = e
	return e
}

// Draw renders w onto screen.
func (r *Renderer) Draw(screen *ebiten.Image, w *world.World) {
	if w == nil {
		screen.Fill(colornames.Black)
		return
	}
	scroll := cp.Vector{X: float64(int(w.Scroll.X)), Y: float64(int(w.Scroll.Y))}

	r.background.Clear()
	r.drawImage(r.background, r.image(r.pack.Background), 0, 0, false)
	r.drawClouds(r.background, w, scroll)

	r.display.Clear()
	r.drawMap(r.display, w, scroll)
	r.drawMarkers(r.display, w, scroll)
	r.drawEnemies(r.display, w, scroll)
	r.drawPlayer(r.display, w, scroll)
	r.drawProjectiles(r.display, w, scroll)
	r.drawEmbers(r.display, w, scroll)

	r.drawSilhouette(r.background, r.display)

	r.drawParticles(r.display, w, scroll)
	if r.Debug {
		r.drawDebug(r.display, w, scroll)
	}
	r.drawTransition(r.display, w.Transition)

	r.background.DrawImage(r.display, nil)
	r.drawHUD(r.background, w)

	screen.Clear()
	op := &ebiten.DrawImageOptions{}
	shake := shakeOffset(w.Screenshake)
	op.GeoM.Translate(shake.X, shake.Y)
	screen.DrawImage(r.background, op)
}

// shakeOffset returns a random offset within the current screenshake.
func shakeOffset(amount int) cp.Vector {
	if amount <= 0 {
		return cp.Vector{}
	}
	s := float64(amount)
	return cp.Vector{X: rand.Float64()*s - s/2, Y: rand.Float64()*s - s/2}
}

// drawImage draws img with its top-left at (x, y), mirrored horizontally
// when flip is set.
func (r *Renderer) drawImage(dst, img *ebiten.Image, x, y float64, flip bool) {
	if img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	if flip {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(float64(img.Bounds().Dx()), 0)
	}
	op.GeoM.Translate(x, y)
	dst.DrawImage(img, op)
}
