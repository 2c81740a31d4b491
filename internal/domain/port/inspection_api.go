package port

import (
	"context"

	"inspection-viewer/internal/domain/entity"
)

// InspectionAPI интерфейс REST-бэкенда с результатами обходов
type InspectionAPI interface {
	// Project возвращает карточку проекта и список его обходов
	Project(ctx context.Context, projectID int64) (*entity.ProjectOverview, error)

	// Results возвращает записи дефектов и счётчики обхода
	Results(ctx context.Context, inspectionID int64) (*entity.InspectionResults, error)

	// StartDetection запускает детекцию на сервере и ждёт её окончания
	StartDetection(ctx context.Context, inspectionID int64) error

	// Image скачивает снимок по имени; cacheBust добавляется в запрос как ?t=
	Image(ctx context.Context, name, cacheBust string) ([]byte, error)
}
