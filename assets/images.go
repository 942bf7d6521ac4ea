// Package assets loads images from the data directory and fills every gap
// with generated placeholders, so the game runs without any art on disk.
package assets

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	_ "golang.org/x/image/webp"
)

// Store reads images relative to Dir.
type Store struct {
	Dir string
}

func (s Store) path(rel string) string {
	return filepath.Join(s.Dir, filepath.FromSlash(rel))
}

// LoadImage decodes a PNG or WebP image.
func (s Store) LoadImage(rel string) (image.Image, error) {
	f, err := os.Open(s.path(rel))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", rel, err)
	}
	return img, nil
}

// LoadFrames loads the numbered images (0.png, 1.png, ...) in dir in
// numeric order. Files without a numeric name are ignored.
func (s Store) LoadFrames(dir string) ([]image.Image, error) {
	entries, err := os.ReadDir(s.path(dir))
	if err != nil {
		return nil, err
	}
	type numbered struct {
		n    int
		name string
	}
	var files []numbered
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		n, err := strconv.Atoi(strings.TrimSuffix(e.Name(), ext))
		if err != nil {
			continue
		}
		files = append(files, numbered{n: n, name: e.Name()})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].n < files[j].n })

	frames := make([]image.Image, 0, len(files))
	for _, f := range files {
		img, err := s.LoadImage(dir + "/" + f.name)
		if err != nil {
			return nil, err
		}
		frames = append(frames, img)
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("assets: no frames in %s", dir)
	}
	return frames, nil
}

// SliceSheet cuts count frames of fw x fh from sheet, left to right then
// top to bottom. count <= 0 takes every whole cell.
func SliceSheet(sheet image.Image, fw, fh, count int) []image.Image {
	if sheet == nil || fw <= 0 || fh <= 0 {
		return nil
	}
	b := sheet.Bounds()
	cols := b.Dx() / fw
	rows := b.Dy() / fh
	if cols == 0 || rows == 0 {
		return nil
	}
	if count <= 0 || count > cols*rows {
		count = cols * rows
	}

	sub, ok := sheet.(interface {
		SubImage(r image.Rectangle) image.Image
	})
	frames := make([]image.Image, count)
	for i := 0; i < count; i++ {
		sx := b.Min.X + (i%cols)*fw
		sy := b.Min.Y + (i/cols)*fh
		r := image.Rect(sx, sy, sx+fw, sy+fh)
		if ok {
			frames[i] = sub.SubImage(r)
			continue
		}
		dst := image.NewRGBA(image.Rect(0, 0, fw, fh))
		draw.Draw(dst, dst.Bounds(), sheet, r.Min, draw.Src)
		frames[i] = dst
	}
	return frames
}

// Solid returns a w x h image filled with c.
func Solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, max(1, w), max(1, h)))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// Placeholder returns a flat w x h image of c with a one pixel darker
// border.
func Placeholder(w, h int, c color.Color) *image.RGBA {
	img := Solid(w, h, c)
	w, h = img.Bounds().Dx(), img.Bounds().Dy()
	edge := shade(c, 0.6)
	for x := 0; x < w; x++ {
		img.Set(x, 0, edge)
		img.Set(x, h-1, edge)
	}
	for y := 0; y < h; y++ {
		img.Set(0, y, edge)
		img.Set(w-1, y, edge)
	}
	return img
}

// shade scales the color channels by f, keeping alpha.
func shade(c color.Color, f float64) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	scale := func(v uint8) uint8 {
		return uint8(min(255, float64(v)*f))
	}
	return color.NRGBA{R: scale(n.R), G: scale(n.G), B: scale(n.B), A: n.A}
}
