package port

import "inspection-viewer/internal/domain/entity"

// View — слой представления, в который сессия отдаёт кадры.
// Методы вызываются из одной горутины владельца сессии.
type View interface {
	ShowProject(info entity.ProjectInfo, inspections []entity.InspectionItem)
	ShowDetectionStatus(inspectionID int64, status entity.DetectionStatus, triggerEnabled bool)
	ShowRecords(rows []entity.RecordRow)
	ShowSummary(summary entity.InspectionSummary)
	ShowPlaceholder(p entity.Placeholder)
	ShowImage(index, total int, img entity.DisplayImage)
	ShowDetail(panel entity.DetailPanel)
	MarkActive(index int) // -1 снимает выделение
	ShowError(message string)
	Notify(message string) // блокирующее уведомление
}

// ListGeometry реализуют представления, у которых список прокручивается.
type ListGeometry interface {
	// ListScroll возвращает текущую прокрутку и верх контейнера в его системе координат
	ListScroll() (scrollTop, containerTop int)
	// RowTop возвращает верх строки index, false если строка не отрисована
	RowTop(index int) (int, bool)
	ScrollList(offset int)
}
