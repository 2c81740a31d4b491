package app

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"sync"
	"time"

	"inspection-viewer/internal/domain/entity"
)

// fakeTicker не тикает сам: тесты вызывают Tick у карусели напрямую.
type fakeTicker struct {
	ch      chan time.Time
	stopped bool
	owner   *fakeClock
}

func (t *fakeTicker) C() <-chan time.Time { return t.ch }

func (t *fakeTicker) Stop() {
	if !t.stopped {
		t.stopped = true
		t.owner.live--
	}
}

type fakeClock struct {
	live    int
	created int
	last    *fakeTicker
	periods []time.Duration
}

func (c *fakeClock) NewTicker(d time.Duration) Ticker {
	c.live++
	c.created++
	c.periods = append(c.periods, d)
	c.last = &fakeTicker{ch: make(chan time.Time, 1), owner: c}
	return c.last
}

func records(names ...string) []entity.DefectRecord {
	out := make([]entity.DefectRecord, len(names))
	for i, n := range names {
		out[i] = entity.DefectRecord{ImageName: n, ResultImageName: "result_" + n, DefectType: "crack"}
	}
	return out
}

// fakeAPI отвечает из памяти.
type fakeAPI struct {
	mu          sync.Mutex
	project     *entity.ProjectOverview
	projectErr  error
	results     map[int64]*entity.InspectionResults
	resultsErr  error
	detectErr   error
	detectCalls []int64
	images      map[string][]byte
	imageCalls  []string
	cacheBusts  []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		results: make(map[int64]*entity.InspectionResults),
		images:  make(map[string][]byte),
	}
}

func (f *fakeAPI) Project(ctx context.Context, projectID int64) (*entity.ProjectOverview, error) {
	if f.projectErr != nil {
		return nil, f.projectErr
	}
	return f.project, nil
}

func (f *fakeAPI) Results(ctx context.Context, inspectionID int64) (*entity.InspectionResults, error) {
	if f.resultsErr != nil {
		return nil, f.resultsErr
	}
	res, ok := f.results[inspectionID]
	if !ok {
		return nil, &entity.APIError{Message: "inspection not found"}
	}
	return res, nil
}

func (f *fakeAPI) StartDetection(ctx context.Context, inspectionID int64) error {
	f.detectCalls = append(f.detectCalls, inspectionID)
	return f.detectErr
}

func (f *fakeAPI) Image(ctx context.Context, name, cacheBust string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.imageCalls = append(f.imageCalls, name)
	f.cacheBusts = append(f.cacheBusts, cacheBust)
	data, ok := f.images[name]
	if !ok {
		return nil, &entity.TransportError{Status: 404, Text: "not found"}
	}
	return data, nil
}

// recordingView запоминает всё, что сессия отдала в представление.
type recordingView struct {
	project      *entity.ProjectInfo
	inspections  []entity.InspectionItem
	statuses     map[int64]entity.DetectionStatus
	triggerOn    bool
	rows         []entity.RecordRow
	summary      entity.InspectionSummary
	placeholder  entity.Placeholder
	placeholders []entity.Placeholder
	image        entity.DisplayImage
	imageIndex   int
	imageTotal   int
	shown        []int
	detail       entity.DetailPanel
	active       int
	errors       []string
	notices      []string

	scrollTop    int
	containerTop int
	rowTops      map[int]int
	scrolledTo   []int
}

func newRecordingView() *recordingView {
	return &recordingView{statuses: make(map[int64]entity.DetectionStatus), active: -1}
}

func (v *recordingView) ShowProject(info entity.ProjectInfo, inspections []entity.InspectionItem) {
	v.project = &info
	v.inspections = inspections
}

func (v *recordingView) ShowDetectionStatus(id int64, status entity.DetectionStatus, triggerEnabled bool) {
	v.statuses[id] = status
	v.triggerOn = triggerEnabled
}

func (v *recordingView) ShowRecords(rows []entity.RecordRow)          { v.rows = rows }
func (v *recordingView) ShowSummary(summary entity.InspectionSummary) { v.summary = summary }

func (v *recordingView) ShowPlaceholder(p entity.Placeholder) {
	v.placeholder = p
	v.placeholders = append(v.placeholders, p)
}

func (v *recordingView) ShowImage(index, total int, img entity.DisplayImage) {
	v.placeholder = entity.PlaceholderNone
	v.image = img
	v.imageIndex = index
	v.imageTotal = total
	v.shown = append(v.shown, index)
}

func (v *recordingView) ShowDetail(panel entity.DetailPanel) { v.detail = panel }
func (v *recordingView) MarkActive(index int)                { v.active = index }
func (v *recordingView) ShowError(message string)            { v.errors = append(v.errors, message) }
func (v *recordingView) Notify(message string)               { v.notices = append(v.notices, message) }

// geometryView добавляет прокручиваемый список.
type geometryView struct {
	*recordingView
}

func (v geometryView) ListScroll() (int, int) { return v.scrollTop, v.containerTop }

func (v geometryView) RowTop(index int) (int, bool) {
	top, ok := v.rowTops[index]
	return top, ok
}

func (v geometryView) ScrollList(offset int) {
	v.scrollTop = offset
	v.scrolledTo = append(v.scrolledTo, offset)
}

// stubRenderer возвращает фиксированные байты или ошибку.
type stubRenderer struct {
	out   []byte
	err   error
	calls int
	got   []entity.Annotation
}

func (r *stubRenderer) Render(imageData []byte, annotations []entity.Annotation) ([]byte, error) {
	r.calls++
	r.got = annotations
	if r.err != nil {
		return nil, r.err
	}
	return r.out, nil
}

func pngBytes(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 90, G: 90, B: 90, A: 255}), image.Point{}, draw.Src)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
