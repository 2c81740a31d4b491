//go:build !gocv
// +build !gocv

package render

import (
	"errors"

	"inspection-viewer/internal/domain/entity"
)

// GoCV заглушка OpenCV-рендерера для сборки без тега gocv
type GoCV struct{}

// NewGoCV создаёт рендерер-заглушку (без OpenCV).
func NewGoCV() *GoCV {
	return &GoCV{}
}

// Render возвращает ошибку, если сборка без тега gocv.
func (g *GoCV) Render(imageData []byte, annotations []entity.Annotation) ([]byte, error) {
	_ = imageData
	_ = annotations
	return nil, errors.New("gocv build tag is not enabled")
}

// Available сообщает, собран ли OpenCV-рендерер.
const Available = false
