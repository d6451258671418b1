// Package thumbnail rasterises map drawings to PNG previews.
package thumbnail

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"sync"

	"floormap/internal/geom"
	"floormap/internal/space"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

var ErrNothingToRender = errors.New("thumbnail: drawing has no size and no elements")

const (
	strokeWidth = 2.0
	spaceAlpha  = 96
	labelSize   = 12.0
)

var loadFont = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(gomono.TTF)
})

// Render draws d and its spaces scaled to the given pixel width.
func Render(d geom.Drawing, spaces []space.Space, width int) (image.Image, error) {
	dc, err := render(d, spaces, width)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// WritePNG renders and encodes the thumbnail to w.
func WritePNG(w io.Writer, d geom.Drawing, spaces []space.Space, width int) error {
	dc, err := render(d, spaces, width)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

// SavePNG renders the thumbnail to a file.
func SavePNG(path string, d geom.Drawing, spaces []space.Space, width int) error {
	dc, err := render(d, spaces, width)
	if err != nil {
		return err
	}
	return dc.SavePNG(path)
}

// boardSize is the drawing's own size, or the extent of its elements when
// it carries none.
func boardSize(d geom.Drawing) (float64, float64, bool) {
	if d.Width > 0 && d.Height > 0 {
		return d.Width, d.Height, true
	}
	bb, ok := geom.DrawingBBox(d.MapElements)
	if !ok || bb.MaxX <= 0 || bb.MaxY <= 0 {
		return 0, 0, false
	}
	return bb.MaxX, bb.MaxY, true
}

func render(d geom.Drawing, spaces []space.Space, width int) (*gg.Context, error) {
	if width <= 0 {
		return nil, fmt.Errorf("thumbnail: invalid width %d", width)
	}
	bw, bh, ok := boardSize(d)
	if !ok {
		return nil, ErrNothingToRender
	}
	scale := float64(width) / bw
	height := max(1, int(math.Round(bh*scale)))

	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()
	dc.Scale(scale, scale)

	for _, sp := range spaces {
		drawSpaceArea(dc, sp)
	}
	dc.SetLineWidth(strokeWidth)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	for _, e := range d.MapElements {
		drawElement(dc, e)
	}

	if len(spaces) > 0 {
		f, err := loadFont()
		if err != nil {
			return nil, fmt.Errorf("failed to parse font: %w", err)
		}
		// labels are laid out in pixels so text stays legible at any scale
		dc.Identity()
		dc.SetFontFace(truetype.NewFace(f, &truetype.Options{
			Size:    labelSize,
			DPI:     72,
			Hinting: font.HintingFull,
		}))
		for _, sp := range spaces {
			drawSpaceLabel(dc, sp, scale)
		}
	}
	return dc, nil
}

func setHex(dc *gg.Context, hex string, alpha int) {
	c, err := geom.ParseHexColor(hex)
	if err != nil {
		c, _ = geom.ParseHexColor(geom.DefaultStroke)
	}
	dc.SetRGBA255(int(c.R), int(c.G), int(c.B), alpha)
}

func drawElement(dc *gg.Context, e geom.MapElement) {
	if !e.Valid() {
		return
	}
	setHex(dc, e.Stroke, 255)
	switch e.Type {
	case geom.Rect:
		dc.DrawRectangle(e.X, e.Y, e.Width, e.Height)
	case geom.Polyline:
		for i, p := range e.Points {
			if i == 0 {
				dc.MoveTo(p.X, p.Y)
				continue
			}
			dc.LineTo(p.X, p.Y)
		}
	}
	dc.Stroke()
}

func drawSpaceArea(dc *gg.Context, sp space.Space) {
	a := sp.Area
	setHex(dc, sp.Color, spaceAlpha)
	dc.DrawRectangle(a.X, a.Y, a.Width, a.Height)
	dc.Fill()
}

func drawSpaceLabel(dc *gg.Context, sp space.Space, scale float64) {
	if sp.Name == "" {
		return
	}
	a := sp.Area
	cx := (a.X + a.Width/2) * scale
	cy := (a.Y + a.Height/2) * scale
	dc.SetColor(color.Black)
	dc.DrawStringAnchored(sp.Name, cx, cy, 0.5, 0.5)
}
