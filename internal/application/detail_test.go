package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"inspection-viewer/internal/domain/entity"
	"inspection-viewer/internal/i18n"
)

func TestDetailPanelSync_EmptyHidesPanel(t *testing.T) {
	view := newRecordingView()
	view.active = 3
	d := NewDetailPanelSync(view, i18n.New("en"))

	d.Show(nil, -1)

	require.False(t, view.detail.Visible)
	require.Equal(t, entity.LayoutFullWidth, view.detail.Layout)
	require.Equal(t, -1, view.active)
}

func TestDetailPanelSync_RecordFieldsWithDashes(t *testing.T) {
	view := newRecordingView()
	d := NewDetailPanelSync(view, i18n.New("en"))

	d.Show(&entity.DefectRecord{ImageName: "a.jpg", DefectType: "crack"}, 2)

	require.True(t, view.detail.Visible)
	require.Equal(t, entity.LayoutSplit, view.detail.Layout)
	require.Equal(t, []entity.DetailField{
		{Key: "Capture time", Value: "-"},
		{Key: "Defect type", Value: "crack"},
		{Key: "Image", Value: "a.jpg"},
		{Key: "Location", Value: "-"},
	}, view.detail.Fields)
	require.Equal(t, 2, view.active)
}

func TestDetailPanelSync_LocalizedKeys(t *testing.T) {
	view := newRecordingView()
	d := NewDetailPanelSync(view, i18n.New("zh"))

	d.Show(&entity.DefectRecord{Time: "2024-05-01 10:00:00"}, 0)

	require.Equal(t, "检测时间", view.detail.Fields[0].Key)
	require.Equal(t, "2024-05-01 10:00:00", view.detail.Fields[0].Value)
}

func TestDetailPanelSync_ScrollsActiveRowIntoView(t *testing.T) {
	rv := newRecordingView()
	rv.scrollTop = 40
	rv.containerTop = 100
	rv.rowTops = map[int]int{0: 60, 1: 110, 2: 160, 3: 210}
	view := geometryView{rv}
	d := NewDetailPanelSync(view, nil)

	d.Show(&entity.DefectRecord{ImageName: "c.jpg"}, 2)

	require.Equal(t, []int{100}, rv.scrolledTo)
	require.Equal(t, 2, rv.active)
}

func TestDetailPanelSync_NoScrollForMissingRow(t *testing.T) {
	rv := newRecordingView()
	rv.rowTops = map[int]int{}
	d := NewDetailPanelSync(geometryView{rv}, nil)

	d.Show(&entity.DefectRecord{ImageName: "c.jpg"}, 5)

	require.Empty(t, rv.scrolledTo)
}

func TestScrollTarget(t *testing.T) {
	require.Equal(t, 100, ScrollTarget(40, 100, 160))
	require.Equal(t, 0, ScrollTarget(40, 100, 60))
	require.Equal(t, 40, ScrollTarget(40, 100, 100))
}

func TestDetailPanelSync_Rows(t *testing.T) {
	d := NewDetailPanelSync(newRecordingView(), nil)

	rows := d.Rows([]entity.DefectRecord{
		{ImageName: "a.jpg", DefectType: "crack", Location: "30.1, 120.2", Time: "2024-05-01 10:00:00"},
		{},
	})

	require.Equal(t, []entity.RecordRow{
		{Index: 0, ImageName: "a.jpg", DefectType: "crack", Location: "30.1, 120.2", Time: "2024-05-01 10:00:00"},
		{Index: 1, ImageName: "-", DefectType: "-", Location: "-", Time: "-"},
	}, rows)
}
