package port

import "inspection-viewer/internal/domain/entity"

// AnnotationRenderer рисует рамки дефектов поверх исходного снимка
type AnnotationRenderer interface {
	// Render возвращает закодированный снимок с нарисованными рамками и подписями
	Render(imageData []byte, annotations []entity.Annotation) ([]byte, error)
}
