// Package preview renders UV layouts to images.
//
// Faces are filled and outlined in texture space with (0,0) at the bottom left
// of the image, the usual orientation of a UV editor. Overlapping charts show
// up as outlines crossing filled areas.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/unwrap"
)

var (
	// ErrSize is returned for non-positive image sizes.
	ErrSize = errors.New("preview: invalid size")

	// ErrLayer is returned when the UV layer does not exist.
	ErrLayer = errors.New("preview: uv layer out of range")
)

// Source is a mesh with per-corner UVs. *unwrap.PolyMesh implements it.
type Source interface {
	NumFaces() int
	Face(i int) []int
	NumUVLayers() int
	FaceUV(layer, face, corner int) unwrap.UV
}

// Option configures Render.
type Option func(*options)

type options struct {
	background color.Color
	fill       color.Color
	edge       color.Color
	edgeWidth  float32
	label      string
}

func defaultOptions() options {
	return options{
		background: color.White,
		fill:       color.NRGBA{R: 0xcc, G: 0xdd, B: 0xff, A: 0xff},
		edge:       color.Black,
		edgeWidth:  1,
	}
}

// WithColors sets the background, face fill and edge colors. A nil color
// keeps the default; a transparent fill disables filling.
func WithColors(background, fill, edge color.Color) Option {
	return func(o *options) {
		if background != nil {
			o.background = background
		}
		if fill != nil {
			o.fill = fill
		}
		if edge != nil {
			o.edge = edge
		}
	}
}

// WithEdgeWidth sets the outline width in pixels. Zero disables outlines.
func WithEdgeWidth(w float32) Option {
	return func(o *options) {
		if w >= 0 {
			o.edgeWidth = w
		}
	}
}

// WithLabel draws text in the top left corner.
func WithLabel(s string) Option {
	return func(o *options) {
		o.label = s
	}
}

// Render draws the given UV layer of m into a size x size image. The unit
// square of texture space covers the whole image.
func Render(m Source, layer, size int, opts ...Option) (*image.RGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrSize, size)
	}
	if layer < 0 || layer >= m.NumUVLayers() {
		return nil, fmt.Errorf("%w: %d of %d", ErrLayer, layer, m.NumUVLayers())
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(o.background), image.Point{}, draw.Src)

	s := float32(size)
	toPixel := func(uv unwrap.UV) (float32, float32, bool) {
		x, y := float32(uv.U)*s, (1-float32(uv.V))*s
		ok := !math.IsNaN(float64(x)) && !math.IsNaN(float64(y)) &&
			!math.IsInf(float64(x), 0) && !math.IsInf(float64(y), 0)
		return x, y, ok
	}

	z := vector.NewRasterizer(size, size)
	z.DrawOp = draw.Over

	if _, _, _, a := o.fill.RGBA(); a != 0 {
		for f := 0; f < m.NumFaces(); f++ {
			n := len(m.Face(f))
			if n < 3 {
				continue
			}
			pts := make([][2]float32, 0, n)
			for k := 0; k < n; k++ {
				x, y, ok := toPixel(m.FaceUV(layer, f, k))
				if !ok {
					break
				}
				pts = append(pts, [2]float32{x, y})
			}
			if len(pts) != n {
				continue
			}
			z.MoveTo(pts[0][0], pts[0][1])
			for _, p := range pts[1:] {
				z.LineTo(p[0], p[1])
			}
			z.ClosePath()
		}
		z.Draw(img, img.Bounds(), image.NewUniform(o.fill), image.Point{})
	}

	if o.edgeWidth > 0 {
		z.Reset(size, size)
		z.DrawOp = draw.Over
		half := o.edgeWidth / 2
		for f := 0; f < m.NumFaces(); f++ {
			n := len(m.Face(f))
			for k := 0; k < n && n >= 2; k++ {
				x0, y0, ok0 := toPixel(m.FaceUV(layer, f, k))
				x1, y1, ok1 := toPixel(m.FaceUV(layer, f, (k+1)%n))
				if ok0 && ok1 {
					segment(z, x0, y0, x1, y1, half)
				}
			}
		}
		z.Draw(img, img.Bounds(), image.NewUniform(o.edge), image.Point{})
	}

	if o.label != "" {
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(o.edge),
			Face: basicfont.Face7x13,
			Dot:  fixed.Point26_6{X: fixed.I(4), Y: fixed.I(13)},
		}
		d.DrawString(o.label)
	}
	return img, nil
}

// segment adds a line of the given half width as a closed quad. Every quad is
// wound the same way so overlapping edges do not cancel out.
func segment(z *vector.Rasterizer, x0, y0, x1, y1, half float32) {
	dx, dy := x1-x0, y1-y0
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		return
	}
	nx, ny := -dy/l*half, dx/l*half
	z.MoveTo(x0+nx, y0+ny)
	z.LineTo(x1+nx, y1+ny)
	z.LineTo(x1-nx, y1-ny)
	z.LineTo(x0-nx, y0-ny)
	z.ClosePath()
}

// SavePNG writes img to a PNG file.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, img)
}
