package entity

import "image"

// Annotation — рамка дефекта в пиксельных координатах исходного снимка.
type Annotation struct {
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Label string  `json:"label"`
}

// Rect возвращает рамку как целочисленный прямоугольник (Min <= Max).
func (a Annotation) Rect() image.Rectangle {
	return image.Rect(int(a.X1), int(a.Y1), int(a.X2), int(a.Y2))
}

// DefectRecord — один найденный дефект, привязанный к одному снимку.
type DefectRecord struct {
	ImageName         string       `json:"image_name"`
	ResultImageName   string       `json:"result_image_name,omitempty"`
	ImagePath         string       `json:"image_path,omitempty"`
	DefectType        string       `json:"defect_type"`
	Location          string       `json:"location"`
	Time              string       `json:"time"`
	Annotations       []Annotation `json:"annotations,omitempty"`
	OriginalImagePath string       `json:"original_image_path,omitempty"`
	ProjectShortName  string       `json:"project_short_name,omitempty"`
	InspectionName    string       `json:"inspection_name,omitempty"`
}

// HasAnnotations сообщает, можно ли нарисовать рамки на клиенте.
func (r DefectRecord) HasAnnotations() bool {
	return len(r.Annotations) > 0
}
