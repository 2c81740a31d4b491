package app

import (
	"inspection-viewer/internal/domain/entity"
	"inspection-viewer/internal/domain/port"
	"inspection-viewer/internal/i18n"
)

const dash = "-"

// DetailPanelSync держит панель деталей и выделение в списке в такт
// с каруселью.
type DetailPanelSync struct {
	view port.View
	t    *i18n.Printer
}

// NewDetailPanelSync создаёт синхронизатор панели деталей.
func NewDetailPanelSync(view port.View, t *i18n.Printer) *DetailPanelSync {
	if t == nil {
		t = i18n.New("")
	}
	return &DetailPanelSync{view: view, t: t}
}

// Show показывает запись rec с индексом index. rec == nil скрывает панель
// и растягивает снимок на всю ширину.
func (d *DetailPanelSync) Show(rec *entity.DefectRecord, index int) {
	if rec == nil {
		d.view.ShowDetail(entity.DetailPanel{Visible: false, Layout: entity.LayoutFullWidth})
		d.view.MarkActive(-1)
		return
	}

	d.view.ShowDetail(d.Panel(*rec))
	d.view.MarkActive(index)

	geo, ok := d.view.(port.ListGeometry)
	if !ok {
		return
	}
	rowTop, ok := geo.RowTop(index)
	if !ok {
		return
	}
	scrollTop, containerTop := geo.ListScroll()
	geo.ScrollList(ScrollTarget(scrollTop, containerTop, rowTop))
}

// Panel собирает четыре поля панели деталей.
func (d *DetailPanelSync) Panel(rec entity.DefectRecord) entity.DetailPanel {
	return entity.DetailPanel{
		Visible: true,
		Layout:  entity.LayoutSplit,
		Fields: []entity.DetailField{
			{Key: d.t.T(i18n.FieldTime), Value: orDash(rec.Time)},
			{Key: d.t.T(i18n.FieldDefectType), Value: orDash(rec.DefectType)},
			{Key: d.t.T(i18n.FieldImage), Value: orDash(rec.ImageName)},
			{Key: d.t.T(i18n.FieldLocation), Value: orDash(rec.Location)},
		},
	}
}

// Rows собирает строки списка записей.
func (d *DetailPanelSync) Rows(records []entity.DefectRecord) []entity.RecordRow {
	rows := make([]entity.RecordRow, len(records))
	for i, r := range records {
		rows[i] = entity.RecordRow{
			Index:      i,
			ImageName:  orDash(r.ImageName),
			DefectType: orDash(r.DefectType),
			Location:   orDash(r.Location),
			Time:       orDash(r.Time),
		}
	}
	return rows
}

// ScrollTarget считает прокрутку, при которой строка оказывается вверху
// контейнера. Все значения в координатах контейнера.
func ScrollTarget(scrollTop, containerTop, rowTop int) int {
	return scrollTop + (rowTop - containerTop)
}

func orDash(s string) string {
	if s == "" {
		return dash
	}
	return s
}
