package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/blockjumper/levels"
	"github.com/milk9111/blockjumper/tilemap"
)

type glyph struct {
	r     rune
	style tcell.Style
}

var (
	defaultGlyph = glyph{'?', tcell.StyleDefault.Foreground(tcell.ColorFuchsia)}
	glyphs       = map[string]glyph{
		tilemap.TypeGrass:      {'"', tcell.StyleDefault.Foreground(tcell.ColorGreen)},
		tilemap.TypeStone:      {'#', tcell.StyleDefault.Foreground(tcell.ColorGray)},
		tilemap.TypeDecor:      {'*', tcell.StyleDefault.Foreground(tcell.ColorOlive)},
		tilemap.TypeLargeDecor: {'T', tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)},
		tilemap.TypeCoin:       {'o', tcell.StyleDefault.Foreground(tcell.ColorYellow)},
	}
	statusStyle = tcell.StyleDefault.Reverse(true)
)

// glyphFor picks the character for a tile. Doors and spawners differ by
// variant: entry/exit doors and player/enemy spawns.
func glyphFor(t tilemap.Tile) glyph {
	switch t.Type {
	case tilemap.TypeDoors:
		if t.Variant == 1 {
			return glyph{'>', tcell.StyleDefault.Foreground(tcell.ColorAqua)}
		}
		return glyph{'<', tcell.StyleDefault.Foreground(tcell.ColorAqua)}
	case tilemap.TypeSpawners:
		if t.Variant == 1 {
			return glyph{'E', tcell.StyleDefault.Foreground(tcell.ColorRed)}
		}
		return glyph{'P', tcell.StyleDefault.Foreground(tcell.ColorWhite)}
	}
	if g, ok := glyphs[t.Type]; ok {
		return g
	}
	return defaultGlyph
}

// Viewer shows one level at a time, one terminal cell per grid cell.
// Off-grid tiles are drawn in the cell that contains their position.
type Viewer struct {
	source   levels.Source
	level    int
	count    int
	autotile bool
	m        *tilemap.Map
	err      error
	// Top-left grid cell shown.
	originX, originY int
}

func NewViewer(source levels.Source, level int, autotile bool) *Viewer {
	v := &Viewer{source: source, autotile: autotile, count: source.Count()}
	v.load(level)
	return v
}

func (v *Viewer) load(level int) {
	if v.count > 0 {
		level = ((level % v.count) + v.count) % v.count
	}
	v.level = level
	v.m, v.err = v.source.Load(level)
	if v.err != nil {
		return
	}
	if v.autotile {
		v.m.Autotile()
	}
	v.originX, v.originY = v.bounds()
}

// bounds returns the top-left occupied cell.
func (v *Viewer) bounds() (int, int) {
	minX, minY := math.MaxInt, math.MaxInt
	for _, c := range v.cells() {
		minX = min(minX, c.X)
		minY = min(minY, c.Y)
	}
	if minX == math.MaxInt {
		return 0, 0
	}
	return minX, minY
}

type cell struct {
	tilemap.Coord
	tile tilemap.Tile
}

// cells lists every tile with the grid cell it is drawn in, off-grid tiles
// first so grid tiles draw over them.
func (v *Viewer) cells() []cell {
	if v.m == nil {
		return nil
	}
	var out []cell
	for _, t := range v.m.OffGrid() {
		out = append(out, cell{Coord: v.m.CellAt(t.Pos.Vector()), tile: t})
	}
	for _, t := range v.m.Grid() {
		out = append(out, cell{Coord: t.Pos.Coord(), tile: t})
	}
	return out
}

func (v *Viewer) Draw(screen tcell.Screen) {
	screen.Clear()
	w, h := screen.Size()

	if v.err == nil {
		for _, c := range v.cells() {
			x, y := c.X-v.originX, c.Y-v.originY
			if x < 0 || y < 0 || x >= w || y >= h-1 {
				continue
			}
			g := glyphFor(c.tile)
			screen.SetContent(x, y, g.r, nil, g.style)
		}
	}

	status := v.status()
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(status) {
			r = rune(status[x])
		}
		screen.SetContent(x, h-1, r, nil, statusStyle)
	}
	screen.Show()
}

func (v *Viewer) status() string {
	if v.err != nil {
		return fmt.Sprintf(" level %d: %v | n/p level  q quit", v.level, v.err)
	}
	auto := "off"
	if v.autotile {
		auto = "on"
	}
	return fmt.Sprintf(" level %d/%d  tiles %d  origin %d,%d  autotile %s | arrows/hjkl scroll  n/p level  a autotile  q quit",
		v.level, v.count, v.m.Len(), v.originX, v.originY, auto)
}

// HandleKey applies a key press and reports whether the viewer should exit.
func (v *Viewer) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		v.originX--
	case tcell.KeyRight:
		v.originX++
	case tcell.KeyUp:
		v.originY--
	case tcell.KeyDown:
		v.originY++
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'h':
			v.originX--
		case 'l':
			v.originX++
		case 'k':
			v.originY--
		case 'j':
			v.originY++
		case 'n':
			v.load(v.level + 1)
		case 'p':
			v.load(v.level - 1)
		case 'a':
			v.autotile = !v.autotile
			v.load(v.level)
		}
	}
	return false
}
