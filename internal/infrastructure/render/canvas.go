package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"inspection-viewer/internal/domain/entity"
	"inspection-viewer/internal/domain/port"
)

// Форматы, в которые Canvas кодирует результат.
const (
	FormatJPEG = imaging.JPEG
	FormatPNG  = imaging.PNG
)

// Canvas рисует рамки на копии исходного снимка натурального размера.
type Canvas struct {
	Stroke      color.RGBA
	LineWidth   int
	LabelOffset int // на сколько пикселей подпись выше верхнего левого угла
	Face        font.Face
	Format      imaging.Format
	Quality     int
}

// NewCanvas создаёт рендерер: зелёная рамка 2 px, подпись на 5 px выше, JPEG.
func NewCanvas() *Canvas {
	return &Canvas{
		Stroke:      color.RGBA{G: 255, A: 255},
		LineWidth:   2,
		LabelOffset: 5,
		Face:        basicfont.Face7x13,
		Format:      FormatJPEG,
		Quality:     90,
	}
}

// Render декодирует снимок, рисует рамки и подписи и кодирует результат.
func (c *Canvas) Render(imageData []byte, annotations []entity.Annotation) ([]byte, error) {
	if len(imageData) == 0 {
		return nil, errors.New("empty image")
	}

	src, err := imaging.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	dst := c.Draw(src, annotations)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, dst, c.Format, imaging.JPEGQuality(c.Quality)); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	return buf.Bytes(), nil
}

// Draw копирует src на RGBA-поверхность того же размера и рисует на ней рамки.
func (c *Canvas) Draw(src image.Image, annotations []entity.Annotation) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)

	stroke := image.NewUniform(c.Stroke)
	for _, a := range annotations {
		r := a.Rect()
		c.strokeRect(dst, r, stroke)
		if a.Label != "" && c.Face != nil {
			d := font.Drawer{
				Dst:  dst,
				Src:  stroke,
				Face: c.Face,
				Dot:  fixed.P(r.Min.X, r.Min.Y-c.LabelOffset),
			}
			d.DrawString(a.Label)
		}
	}

	return dst
}

// strokeRect рисует незалитый прямоугольник; линия центрирована на контуре,
// как у strokeRect в canvas.
func (c *Canvas) strokeRect(dst draw.Image, r image.Rectangle, stroke image.Image) {
	w := c.LineWidth
	if w <= 0 {
		w = 1
	}
	lo, hi := w/2, w-w/2

	edges := []image.Rectangle{
		image.Rect(r.Min.X-lo, r.Min.Y-lo, r.Max.X+hi, r.Min.Y+hi), // верх
		image.Rect(r.Min.X-lo, r.Max.Y-lo, r.Max.X+hi, r.Max.Y+hi), // низ
		image.Rect(r.Min.X-lo, r.Min.Y-lo, r.Min.X+hi, r.Max.Y+hi), // лево
		image.Rect(r.Max.X-lo, r.Min.Y-lo, r.Max.X+hi, r.Max.Y+hi), // право
	}
	for _, e := range edges {
		draw.Draw(dst, e, stroke, image.Point{}, draw.Src)
	}
}

var _ port.AnnotationRenderer = (*Canvas)(nil)
