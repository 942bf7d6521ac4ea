package render

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/colorm"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/blockjumper/world"
)

// newWhite returns a single white pixel cut from the middle of a larger
// image, so sampling at its edges does not bleed.
func newWhite() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

var silhouetteOffsets = []cp.Vector{{X: -1}, {X: 1}, {Y: -1}, {Y: 1}}

// drawEmbers draws each ember as a diamond stretched along its heading.
// The diamond shrinks with the ember's speed.
func (r *Renderer) drawEmbers(dst *ebiten.Image, w *world.World, scroll cp.Vector) {
	if len(w.Embers) == 0 {
		return
	}
	vertices := make([]ebiten.Vertex, 0, len(w.Embers)*4)
	indices := make([]uint16, 0, len(w.Embers)*6)
	for _, e := range w.Embers {
		pos := e.Pos.Sub(scroll)
		base := uint16(len(vertices))
		for i, reach := range [4]float64{3, 0.5, 3, 0.5} {
			p := pos.Add(cp.ForAngle(e.Angle + float64(i)*math.Pi/2).Mult(e.Speed * reach))
			vertices = append(vertices, ebiten.Vertex{
				DstX: float32(p.X), DstY: float32(p.Y),
				SrcX: 1, SrcY: 1,
				ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
			})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
		// ebiten caps a single batch at 65535 vertices.
		if len(vertices) >= math.MaxUint16-4 {
			dst.DrawTriangles(vertices, indices, r.white, nil)
			vertices, indices = vertices[:0], indices[:0]
		}
	}
	dst.DrawTriangles(vertices, indices, r.white, nil)
}

// drawSilhouette casts src as a flat shadow onto dst, one pixel out in each
// direction.
func (r *Renderer) drawSilhouette(dst, src *ebiten.Image) {
	cr, cg, cb, ca := r.silhouetteColor.RGBA()
	var cm colorm.ColorM
	if ca > 0 {
		cm.Scale(0, 0, 0, float64(ca)/0xffff)
		cm.Translate(float64(cr)/float64(ca), float64(cg)/float64(ca), float64(cb)/float64(ca), 0)
	} else {
		cm.Scale(0, 0, 0, 0)
	}
	for _, off := range silhouetteOffsets {
		op := &colorm.DrawImageOptions{}
		op.GeoM.Translate(off.X, off.Y)
		colorm.DrawImage(dst, src, cm, op)
	}
}

// drawTransition blacks out everything outside a circle centered on the
// screen. The circle grows as transition approaches zero.
func (r *Renderer) drawTransition(dst *ebiten.Image, transition int) {
	if transition == 0 {
		return
	}
	radius := float32(world.TransitionTicks-abs(transition)) * 8
	if radius < 0 {
		radius = 0
	}
	w := dst.Bounds().Dx()
	h := dst.Bounds().Dy()

	r.wipe.Fill(color.Black)
	r.hole.Clear()
	vector.DrawFilledCircle(r.hole, float32(w/2), float32(h/2), radius, color.White, false)
	r.wipe.DrawImage(r.hole, &ebiten.DrawImageOptions{Blend: ebiten.BlendDestinationOut})
	dst.DrawImage(r.wipe, nil)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
