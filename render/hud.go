package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/blockjumper/common"
	"github.com/milk9111/blockjumper/world"
)

const (
	hudMargin     = 10
	hudLineHeight = 12
	heartGap      = 2
)

func (r *Renderer) drawHUD(dst *ebiten.Image, w *world.World) {
	r.drawShadowedText(dst, fmt.Sprintf("Score: %d", w.Score), hudMargin, hudMargin)
	r.drawShadowedText(dst, fmt.Sprintf("High Score: %d", w.HighScore), hudMargin, hudMargin+hudLineHeight)

	heart := r.image(r.pack.Heart)
	if heart == nil {
		return
	}
	y := float64(hudMargin + hudLineHeight*2)
	for i := 0; i < w.Lives; i++ {
		x := float64(hudMargin + i*(heart.Bounds().Dx()+heartGap))

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(x+1, y+1)
		op.ColorScale.Scale(0, 0, 0, 150.0/255)
		dst.DrawImage(heart, op)

		r.drawImage(dst, heart, x, y, false)
	}
}

func (r *Renderer) drawShadowedText(dst *ebiten.Image, s string, x, y float64) {
	if r.face == nil {
		ebitenutil.DebugPrintAt(dst, s, int(x), int(y))
		return
	}
	r.drawText(dst, s, x+1, y+1, r.shadowColor)
	r.drawText(dst, s, x, y, r.textColor)
}

func (r *Renderer) drawText(dst *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, r.face, op)
}

var (
	debugPlayerColor     = color.RGBA{G: 255, A: 200}
	debugEnemyColor      = color.RGBA{R: 255, A: 200}
	debugProjectileColor = color.RGBA{R: 255, G: 255, A: 200}
	debugSolidColor      = color.RGBA{B: 255, A: 48}
)

func (r *Renderer) drawDebug(dst *ebiten.Image, w *world.World, scroll cp.Vector) {
	strokeRect := func(rect common.Rect, c color.Color) {
		vector.StrokeRect(dst, float32(rect.X-scroll.X), float32(rect.Y-scroll.Y), float32(rect.Width), float32(rect.Height), 1, c, false)
	}

	p := w.Player
	for _, solid := range w.Map.PhysicsRectsNear(p.Rect().Center()) {
		vector.FillRect(dst, float32(solid.X-scroll.X), float32(solid.Y-scroll.Y), float32(solid.Width), float32(solid.Height), debugSolidColor, false)
	}
	strokeRect(p.Rect(), debugPlayerColor)
	for _, e := range w.Enemies {
		strokeRect(e.Rect(), debugEnemyColor)
	}
	for _, pr := range w.Projectiles {
		vector.FillRect(dst, float32(pr.Pos.X-scroll.X-1), float32(pr.Pos.Y-scroll.Y-1), 2, 2, debugProjectileColor, false)
	}

	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("State: %s, air: %d, jumps: %d, dash: %d", p.State(), p.AirTime, p.Jumps, p.Dashing), 0, common.BaseHeight-32)
	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("Level: %d, enemies: %d, particles: %d, TPS: %0.1f", w.Level, len(w.Enemies), len(w.Particles), ebiten.ActualTPS()), 0, common.BaseHeight-16)
}
