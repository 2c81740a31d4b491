package entity

// InspectionSummary — агрегированные счётчики, которые считает сервер.
// Клиент показывает их как есть и не пересчитывает.
type InspectionSummary struct {
	TotalImages  int `json:"total_images"`
	DefectImages int `json:"defect_images"`
	TotalDefects int `json:"total_defects"`
}

// InspectionResults хранит ответ сервера с результатами обхода.
type InspectionResults struct {
	Records          []DefectRecord
	Summary          InspectionSummary
	InspectionName   string
	ProjectShortName string
}

// ProjectInfo представляет карточку объекта строительства
type ProjectInfo struct {
	FullName    string `json:"project_full_name"`
	BuilderName string `json:"builder_name"`
	TotalArea   int    `json:"total_area"`
	Duration    int    `json:"duration"`
	AdvanceRate int    `json:"advance_rate"` // процент готовности
}

// InspectionItem строка списка обходов проекта
type InspectionItem struct {
	ID           int64  `json:"id"`
	Name         string `json:"inspection_name"`
	Time         string `json:"inspection_time"`
	TotalImages  int    `json:"total_images"`
	HasDetection bool   `json:"has_detection"`
}

// ProjectOverview хранит ответ /api/project/{id}.
type ProjectOverview struct {
	Info        ProjectInfo      `json:"project_info"`
	Inspections []InspectionItem `json:"inspections"`
}

// DetectionStatus — состояние значка обхода в списке.
type DetectionStatus string

const (
	DetectionPending DetectionStatus = "pending" // детекция не запускалась
	DetectionRunning DetectionStatus = "running" // идёт детекция
	DetectionDone    DetectionStatus = "done"    // результаты есть
	DetectionFailed  DetectionStatus = "failed"  // последняя попытка упала
)

// StatusOf возвращает начальный значок для строки списка.
func StatusOf(item InspectionItem) DetectionStatus {
	if item.HasDetection {
		return DetectionDone
	}
	return DetectionPending
}
