package render

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/blockjumper/physics"
	"github.com/milk9111/blockjumper/tilemap"
	"github.com/milk9111/blockjumper/world"
)

// Sprites are drawn up and left of their collision box so the box sits
// inside the artwork.
var animOffset = cp.Vector{X: -3, Y: -3}

const gunOffset = 4

func (r *Renderer) drawClouds(dst *ebiten.Image, w *world.World, scroll cp.Vector) {
	sw := float64(dst.Bounds().Dx())
	sh := float64(dst.Bounds().Dy())
	for _, c := range w.Clouds {
		if len(r.pack.Clouds) == 0 {
			return
		}
		img := r.image(r.pack.Clouds[c.Variant%len(r.pack.Clouds)])
		iw := float64(img.Bounds().Dx())
		ih := float64(img.Bounds().Dy())
		x := c.Pos.X - scroll.X*c.Depth
		y := c.Pos.Y - scroll.Y*c.Depth
		r.drawImage(dst, img, wrap(x, sw+iw)-iw, wrap(y, sh+ih)-ih, false)
	}
}

// wrap is a floored modulo, so negative positions wrap the same way
// positive ones do.
func wrap(v, m float64) float64 {
	v = math.Mod(v, m)
	if v < 0 {
		v += m
	}
	return v
}

func (r *Renderer) drawMap(dst *ebiten.Image, w *world.World, scroll cp.Vector) {
	for _, t := range w.Map.OffGrid() {
		r.drawImage(dst, r.image(r.pack.TileImage(t)), t.Pos.X()-scroll.X, t.Pos.Y()-scroll.Y, false)
	}

	size := w.Map.TileSize()
	fs := float64(size)
	startX := int(math.Floor(scroll.X / fs))
	startY := int(math.Floor(scroll.Y / fs))
	endX := int(math.Floor((scroll.X+float64(dst.Bounds().Dx()))/fs)) + 1
	endY := int(math.Floor((scroll.Y+float64(dst.Bounds().Dy()))/fs)) + 1
	for x := startX; x < endX; x++ {
		for y := startY; y < endY; y++ {
			t, ok := w.Map.Get(tilemap.Coord{X: x, Y: y})
			if !ok {
				continue
			}
			r.drawImage(dst, r.image(r.pack.TileImage(t)), float64(x*size)-scroll.X, float64(y*size)-scroll.Y, false)
		}
	}
}

func (r *Renderer) drawMarkers(dst *ebiten.Image, w *world.World, scroll cp.Vector) {
	for _, d := range w.Doors {
		r.drawImage(dst, r.image(r.pack.TileImage(d)), d.Pos.X()-scroll.X, d.Pos.Y()-scroll.Y, false)
	}
	bob := w.CoinBob()
	for _, c := range w.Coins {
		r.drawImage(dst, r.image(r.pack.TileImage(c)), c.Pos.X()-scroll.X, c.Pos.Y()+bob-scroll.Y, false)
	}
}

func (r *Renderer) drawBody(dst *ebiten.Image, b *physics.Body, scroll cp.Vector) {
	img := r.image(b.Animator.Anim.Image())
	pos := b.Pos.Sub(scroll).Add(animOffset)
	r.drawImage(dst, img, pos.X, pos.Y, b.Flip)
}

func (r *Renderer) drawEnemies(dst *ebiten.Image, w *world.World, scroll cp.Vector) {
	gun := r.image(r.pack.Gun)
	for _, e := range w.Enemies {
		r.drawBody(dst, &e.Body, scroll)
		if gun == nil {
			continue
		}
		center := e.Rect().Center().Sub(scroll)
		x := center.X + gunOffset
		if e.Flip {
			x = center.X - gunOffset - float64(gun.Bounds().Dx())
		}
		r.drawImage(dst, gun, x, center.Y, e.Flip)
	}
}

func (r *Renderer) drawPlayer(dst *ebiten.Image, w *world.World, scroll cp.Vector) {
	if w.Dead != 0 || !w.Player.Visible() {
		return
	}
	r.drawBody(dst, &w.Player.Body, scroll)
}

func (r *Renderer) drawProjectiles(dst *ebiten.Image, w *world.World, scroll cp.Vector) {
	img := r.image(r.pack.Projectile)
	if img == nil {
		return
	}
	half := cp.Vector{X: float64(img.Bounds().Dx()) / 2, Y: float64(img.Bounds().Dy()) / 2}
	for _, p := range w.Projectiles {
		pos := p.Pos.Sub(half).Sub(scroll)
		r.drawImage(dst, img, pos.X, pos.Y, false)
	}
}

func (r *Renderer) drawParticles(dst *ebiten.Image, w *world.World, scroll cp.Vector) {
	for _, p := range w.Particles {
		img := r.image(p.Anim.Image())
		if img == nil {
			continue
		}
		half := cp.Vector{X: float64(img.Bounds().Dx()) / 2, Y: float64(img.Bounds().Dy()) / 2}
		pos := p.Pos.Sub(half).Sub(scroll)
		r.drawImage(dst, img, pos.X, pos.Y, false)
	}
}
