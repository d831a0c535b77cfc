// Package renderer draws orthographic x/y snapshots of point sets so a run
// can be inspected visually next to its printed report.
package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"gonum.org/v1/gonum/mat"

	"github.com/Precipitator80/CS4102-Practical-1/engine/core"
)

type EncoderType uint8

const (
	WebP EncoderType = iota
	PNG
)

// Encoder writes a finished image in one file format.
type Encoder interface {
	Encode(w io.Writer, img image.Image) error
}

type webpEncoder struct{}

func (webpEncoder) Encode(w io.Writer, img image.Image) error {
	return nativewebp.Encode(w, img, nil)
}

type pngEncoder struct{}

func (pngEncoder) Encode(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

func NewEncoder(t EncoderType) Encoder {
	if t == PNG {
		return pngEncoder{}
	}
	return webpEncoder{}
}

// EncoderFor picks the encoder from the file extension.
func EncoderFor(path string) (Encoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".webp":
		return NewEncoder(WebP), nil
	case ".png":
		return NewEncoder(PNG), nil
	}
	return nil, fmt.Errorf("%w: plot %q must end in .webp or .png", core.ErrUnknownFormat, path)
}

// Series is one labelled set of points drawn in a single colour.
type Series struct {
	Name   string
	Points mat.Matrix
	Colour color.NRGBA
}

type Plot struct {
	Width      int
	Height     int
	Margin     int
	Background color.NRGBA
	Series     []Series
}

func NewPlot(width, height int) *Plot {
	return &Plot{
		Width:      width,
		Height:     height,
		Margin:     32,
		Background: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// Add queues a 3xN or 4xN point matrix. Only x and y are drawn.
func (p *Plot) Add(name string, points mat.Matrix, c color.NRGBA) {
	p.Series = append(p.Series, Series{Name: name, Points: points, Colour: c})
}

type bounds struct {
	minX, minY, maxX, maxY float64
}

func (p *Plot) bounds() (bounds, error) {
	b := bounds{}
	first := true
	for _, s := range p.Series {
		r, c := s.Points.Dims()
		if r < 2 {
			return b, fmt.Errorf("%w: series %q has %d rows", core.ErrShape, s.Name, r)
		}
		for j := 0; j < c; j++ {
			x, y := s.Points.At(0, j), s.Points.At(1, j)
			if first {
				b = bounds{x, y, x, y}
				first = false
				continue
			}
			b.minX, b.maxX = min(b.minX, x), max(b.maxX, x)
			b.minY, b.maxY = min(b.minY, y), max(b.maxY, y)
		}
	}
	if first {
		return b, fmt.Errorf("%w: nothing to plot", core.ErrShape)
	}
	return b, nil
}

// Render rasterises every series with a shared, aspect-preserving scale.
func (p *Plot) Render() (*image.NRGBA, error) {
	b, err := p.bounds()
	if err != nil {
		return nil, err
	}
	img := image.NewNRGBA(image.Rect(0, 0, p.Width, p.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(p.Background), image.Point{}, draw.Src)

	spanX, spanY := b.maxX-b.minX, b.maxY-b.minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}
	usableW := float64(p.Width - 2*p.Margin)
	usableH := float64(p.Height - 2*p.Margin)
	scale := min(usableW/spanX, usableH/spanY)

	project := func(x, y float64) (int, int) {
		px := float64(p.Margin) + (x-b.minX)*scale
		py := float64(p.Height-p.Margin) - (y-b.minY)*scale
		return int(px + 0.5), int(py + 0.5)
	}

	for i, s := range p.Series {
		label := &font.Drawer{Dst: img, Src: image.NewUniform(s.Colour), Face: basicfont.Face7x13}
		_, c := s.Points.Dims()
		for j := 0; j < c; j++ {
			px, py := project(s.Points.At(0, j), s.Points.At(1, j))
			dot(img, px, py, s.Colour)
			label.Dot = fixed.P(px+4, py-4)
			label.DrawString(strconv.Itoa(j))
		}
		label.Dot = fixed.P(8, 16+14*i)
		label.DrawString(s.Name)
	}
	return img, nil
}

func dot(img *image.NRGBA, x, y int, c color.NRGBA) {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			if image.Pt(x+dx, y+dy).In(img.Rect) {
				img.SetNRGBA(x+dx, y+dy, c)
			}
		}
	}
}

// Save renders the plot and encodes it according to the extension of path.
func (p *Plot) Save(path string) error {
	enc, err := EncoderFor(path)
	if err != nil {
		return err
	}
	img, err := p.Render()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := enc.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
