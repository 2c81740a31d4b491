//go:build gocv
// +build gocv

package render

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"

	"gocv.io/x/gocv"

	"inspection-viewer/internal/domain/entity"
	"inspection-viewer/internal/domain/port"
)

// GoCV рисует рамки средствами OpenCV.
type GoCV struct {
	Stroke      color.RGBA
	LineWidth   int
	LabelOffset int
	FontScale   float64
	Quality     int
}

// NewGoCV создаёт OpenCV-рендерер с теми же параметрами, что и Canvas.
func NewGoCV() *GoCV {
	return &GoCV{
		Stroke:      color.RGBA{G: 255, A: 255},
		LineWidth:   2,
		LabelOffset: 5,
		FontScale:   0.5,
		Quality:     90,
	}
}

// Render рисует прямоугольники вокруг дефектов и возвращает новую картинку.
func (g *GoCV) Render(imageData []byte, annotations []entity.Annotation) ([]byte, error) {
	mat, err := decodeToMat(imageData)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	for _, a := range annotations {
		rect := a.Rect()
		gocv.Rectangle(&mat, rect, g.Stroke, g.LineWidth)
		if a.Label != "" {
			org := image.Pt(rect.Min.X, rect.Min.Y-g.LabelOffset)
			gocv.PutText(&mat, a.Label, org, gocv.FontHersheySimplex, g.FontScale, g.Stroke, 1)
		}
	}

	img, err := mat.ToImage()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: g.Quality}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// decodeToMat превращает байты изображения в gocv.Mat.
func decodeToMat(imageData []byte) (gocv.Mat, error) {
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err == nil && !mat.Empty() {
		return mat, nil
	}
	if !mat.Empty() {
		mat.Close()
	}
	return gocv.NewMat(), errors.New("failed to decode image")
}

// Available сообщает, собран ли OpenCV-рендерер.
const Available = true

var _ port.AnnotationRenderer = (*GoCV)(nil)
