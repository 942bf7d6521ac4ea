package assets

import (
	"image"
	"image/color"
	"log"

	"github.com/milk9111/blockjumper/common"
	"github.com/milk9111/blockjumper/component"
	"github.com/milk9111/blockjumper/prefabs"
	"github.com/milk9111/blockjumper/tilemap"
	"golang.org/x/image/colornames"
)

// Pack is every image the renderer draws.
type Pack struct {
	Library    *component.Library
	Tiles      map[string][]image.Image
	Background image.Image
	Clouds     []image.Image
	Gun        image.Image
	Projectile image.Image
	Heart      image.Image
}

// TileImage returns the image for a tile, or nil if there is none.
func (p *Pack) TileImage(t tilemap.Tile) image.Image {
	if p == nil {
		return nil
	}
	imgs := p.Tiles[t.Type]
	if t.Variant < 0 || t.Variant >= len(imgs) {
		return nil
	}
	return imgs[t.Variant]
}

type tileSet struct {
	typ      string
	variants int
	w, h     int
	color    color.Color
	edged    bool
}

var tileSets = []tileSet{
	{typ: tilemap.TypeGrass, variants: 9, w: 16, h: 16, color: colornames.Forestgreen, edged: true},
	{typ: tilemap.TypeStone, variants: 9, w: 16, h: 16, color: colornames.Slategray, edged: true},
	{typ: tilemap.TypeDecor, variants: 4, w: 12, h: 8, color: colornames.Darkolivegreen},
	{typ: tilemap.TypeLargeDecor, variants: 3, w: 32, h: 32, color: colornames.Darkgreen},
	{typ: tilemap.TypeDoors, variants: 2, w: 16, h: 20, color: colornames.Saddlebrown},
	{typ: tilemap.TypeCoin, variants: 1, w: 8, h: 8, color: colornames.Gold},
	{typ: tilemap.TypeSpawners, variants: 2, w: 8, h: 15, color: colornames.Orchid},
}

// Load reads everything from the store, substituting placeholders for
// anything missing.
func (s Store) Load(anims *prefabs.AnimationsSpec, hud *prefabs.HUDSpec) *Pack {
	p := &Pack{
		Library: s.BuildLibrary(anims),
		Tiles:   make(map[string][]image.Image),
	}
	for _, ts := range tileSets {
		p.Tiles[ts.typ] = s.tiles(ts)
	}

	heart := 16
	heartColor := color.Color(colornames.Crimson)
	if hud != nil {
		heart = max(1, hud.HeartSize)
		heartColor = hud.HeartColor.Or(heartColor)
	}
	bg := color.Color(colornames.Skyblue)
	if hud != nil {
		bg = hud.BackgroundColor.Or(bg)
	}
	p.Background = s.imageOr("images/background.webp", func() image.Image {
		return Solid(common.BaseWidth, common.BaseHeight, bg)
	})
	p.Gun = s.imageOr("images/gun.png", func() image.Image { return Placeholder(7, 4, colornames.Dimgray) })
	p.Projectile = s.imageOr("images/projectile.png", func() image.Image { return Placeholder(5, 2, colornames.Orangered) })
	p.Heart = s.imageOr("images/tiles/heart/0.png", func() image.Image { return Placeholder(heart, heart, heartColor) })

	clouds, err := s.LoadFrames("images/clouds")
	if err != nil {
		clouds = []image.Image{
			Placeholder(48, 16, colornames.Whitesmoke),
			Placeholder(64, 20, colornames.Gainsboro),
		}
	}
	p.Clouds = clouds
	return p
}

func (s Store) imageOr(rel string, fallback func() image.Image) image.Image {
	img, err := s.LoadImage(rel)
	if err != nil {
		return fallback()
	}
	return img
}

func (s Store) tiles(ts tileSet) []image.Image {
	if frames, err := s.LoadFrames("images/tiles/" + ts.typ); err == nil {
		return frames
	}
	out := make([]image.Image, ts.variants)
	for v := range out {
		img := Placeholder(ts.w, ts.h, shade(ts.color, 1-0.08*float64(v%3)))
		if ts.edged {
			highlightOpenSides(img, v, shade(ts.color, 1.4))
		}
		out[v] = img
	}
	return out
}

// openSides lists, per autotile variant, which sides have no neighbor:
// top, right, bottom, left.
var openSides = [9][4]bool{
	{true, false, false, true},
	{true, false, false, false},
	{true, true, false, false},
	{false, true, false, false},
	{false, true, true, false},
	{false, false, true, false},
	{false, false, true, true},
	{false, false, false, true},
	{},
}

func highlightOpenSides(img *image.RGBA, variant int, c color.Color) {
	if variant < 0 || variant >= len(openSides) {
		return
	}
	b := img.Bounds()
	sides := openSides[variant]
	for x := b.Min.X; x < b.Max.X; x++ {
		for d := 0; d < 2; d++ {
			if sides[0] {
				img.Set(x, b.Min.Y+d, c)
			}
			if sides[2] {
				img.Set(x, b.Max.Y-1-d, c)
			}
		}
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for d := 0; d < 2; d++ {
			if sides[1] {
				img.Set(b.Max.X-1-d, y, c)
			}
			if sides[3] {
				img.Set(b.Min.X+d, y, c)
			}
		}
	}
}

// BuildLibrary loads every clip in spec. A clip is read from its sheet
// when one is named, else from its frame directory, else generated.
func (s Store) BuildLibrary(spec *prefabs.AnimationsSpec) *component.Library {
	lib := component.NewLibrary()
	if spec == nil {
		return lib
	}
	for key, cs := range spec.Clips {
		frames := s.clipFrames(key, cs)
		lib.Register(key, component.NewClip(frames, cs.Duration, cs.Loop))
	}
	return lib
}

func (s Store) clipFrames(key string, cs prefabs.ClipSpec) []image.Image {
	if cs.Sheet != "" {
		sheet, err := s.LoadImage(cs.Sheet)
		if err == nil {
			if frames := SliceSheet(sheet, cs.FrameSize[0], cs.FrameSize[1], cs.FrameCount); len(frames) > 0 {
				return frames
			}
		}
		log.Printf("assets: %s: sheet %s unusable, falling back", key, cs.Sheet)
	}
	if cs.Dir != "" {
		if frames, err := s.LoadFrames(cs.Dir); err == nil {
			return frames
		}
	}

	ph := cs.Placeholder
	n := max(1, ph.Frames)
	w, h := ph.Size[0], ph.Size[1]
	if w <= 0 || h <= 0 {
		w, h = 8, 8
	}
	base := ph.Color.Or(colornames.Magenta)
	frames := make([]image.Image, n)
	for i := range frames {
		// alternate brightness so frame changes are visible
		frames[i] = Placeholder(w, h, shade(base, 1-0.15*float64(i%2)))
	}
	return frames
}
