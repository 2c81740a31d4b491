package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"

	"inspection-viewer/internal/domain/entity"
	"inspection-viewer/internal/domain/port"
	"inspection-viewer/internal/i18n"
)

// SessionConfig собирает зависимости сессии просмотра.
type SessionConfig struct {
	API       port.InspectionAPI
	Renderer  port.AnnotationRenderer
	View      port.View
	Printer   *i18n.Printer
	Interval  time.Duration
	NewTicker TickerFunc
	Log       logrus.FieldLogger
}

// InspectionSession — единственный владелец состояния просмотра:
// выбранного проекта и обхода, записей и карусели.
// Все методы вызываются из одной горутины (см. Dispatcher).
type InspectionSession struct {
	api      port.InspectionAPI
	view     port.View
	t        *i18n.Printer
	log      logrus.FieldLogger
	store    *RecordStore
	carousel *CarouselController
	images   *ImageResolver
	detail   *DetailPanelSync

	projectID    int64
	inspectionID int64
	inspections  map[int64]entity.InspectionItem
	statuses     map[int64]entity.DetectionStatus

	pending *ShowEvent
}

// NewInspectionSession создаёт пустую сессию.
func NewInspectionSession(cfg SessionConfig) *InspectionSession {
	if cfg.Log == nil {
		cfg.Log = logrus.StandardLogger()
	}
	if cfg.Printer == nil {
		cfg.Printer = i18n.New("")
	}

	s := &InspectionSession{
		api:         cfg.API,
		view:        cfg.View,
		t:           cfg.Printer,
		log:         cfg.Log,
		store:       NewRecordStore(),
		images:      NewImageResolver(cfg.API, cfg.Renderer, cfg.Log),
		detail:      NewDetailPanelSync(cfg.View, cfg.Printer),
		inspections: make(map[int64]entity.InspectionItem),
		statuses:    make(map[int64]entity.DetectionStatus),
	}
	s.carousel = NewCarouselController(cfg.Interval, cfg.NewTicker, func(ev ShowEvent) {
		s.pending = &ev
	})
	return s
}

// Handle применяет команду от слоя представления.
func (s *InspectionSession) Handle(ctx context.Context, cmd entity.Command) error {
	switch c := cmd.(type) {
	case entity.SelectProject:
		return s.SelectProject(ctx, c.ProjectID)
	case entity.SelectInspection:
		return s.SelectInspection(ctx, c.InspectionID)
	case entity.Seek:
		return s.Seek(ctx, c.Index)
	case entity.TriggerDetection:
		return s.RunDetection(ctx, c.InspectionID)
	case entity.Stop:
		s.Reset()
		return nil
	case entity.Pause:
		s.carousel.Pause()
		return nil
	case entity.Resume:
		s.carousel.Resume()
		return nil
	default:
		return fmt.Errorf("unknown command %T", cmd)
	}
}

// SelectProject загружает карточку проекта и список его обходов.
func (s *InspectionSession) SelectProject(ctx context.Context, projectID int64) error {
	log := s.log.WithField("project_id", projectID)

	overview, err := s.api.Project(ctx, projectID)
	if err != nil {
		log.WithError(err).Error("load project failed")
		s.view.ShowError(s.t.T(i18n.LoadFailed, err.Error()))
		return fmt.Errorf("load project %d: %w", projectID, err)
	}

	s.projectID = projectID
	s.inspectionID = 0
	s.inspections = make(map[int64]entity.InspectionItem, len(overview.Inspections))
	s.statuses = make(map[int64]entity.DetectionStatus, len(overview.Inspections))
	for _, item := range overview.Inspections {
		s.inspections[item.ID] = item
		s.statuses[item.ID] = entity.StatusOf(item)
	}

	s.view.ShowProject(overview.Info, overview.Inspections)
	s.Reset()
	log.WithField("inspections", len(overview.Inspections)).Info("project loaded")
	return nil
}

// SelectInspection выбирает обход. Если детекция уже была, загружает
// результаты, иначе очищает показ.
func (s *InspectionSession) SelectInspection(ctx context.Context, inspectionID int64) error {
	s.inspectionID = inspectionID
	status := s.status(inspectionID)
	s.view.ShowDetectionStatus(inspectionID, status, true)

	if status != entity.DetectionDone {
		s.Reset()
		return nil
	}
	return s.LoadResults(ctx, inspectionID)
}

// RunDetection запускает детекцию на сервере и после успеха загружает результаты.
// inspectionID == 0 означает выбранный обход.
func (s *InspectionSession) RunDetection(ctx context.Context, inspectionID int64) error {
	if inspectionID == 0 {
		inspectionID = s.inspectionID
	}
	if inspectionID == 0 {
		s.view.Notify(s.t.T(i18n.NoInspection))
		return entity.ErrNoInspection
	}

	log := s.log.WithField("inspection_id", inspectionID)
	s.setStatus(inspectionID, entity.DetectionRunning, false)

	if err := s.api.StartDetection(ctx, inspectionID); err != nil {
		log.WithError(err).Error("detection failed")
		s.setStatus(inspectionID, entity.DetectionFailed, true)

		var apiErr *entity.APIError
		if errors.As(err, &apiErr) {
			s.view.Notify(s.t.T(i18n.DetectFailed, apiErr.Error()))
		} else {
			s.view.Notify(s.t.T(i18n.DetectError, err.Error()))
		}
		return fmt.Errorf("start detection %d: %w", inspectionID, err)
	}

	s.setStatus(inspectionID, entity.DetectionDone, true)
	if item, ok := s.inspections[inspectionID]; ok {
		item.HasDetection = true
		s.inspections[inspectionID] = item
	}
	s.view.Notify(s.t.T(i18n.DetectDone))
	log.Info("detection completed")

	return s.LoadResults(ctx, inspectionID)
}

// LoadResults загружает записи обхода и запускает по ним карусель.
// При любой ошибке показ описывает ошибку, а прежние записи и карусель
// остаются нетронутыми.
func (s *InspectionSession) LoadResults(ctx context.Context, inspectionID int64) error {
	log := s.log.WithFields(logrus.Fields{
		"inspection_id": inspectionID,
		"load_id":       newLoadID(),
	})

	s.view.ShowPlaceholder(entity.PlaceholderLoading)

	res, err := s.api.Results(ctx, inspectionID)
	if err != nil {
		log.WithError(err).Error("load results failed")
		s.view.ShowError(s.t.T(i18n.LoadFailed, err.Error()))
		return fmt.Errorf("load results %d: %w", inspectionID, err)
	}

	// Нормализация, счётчики и список применяются до запуска карусели.
	records := s.store.Load(res.Records)
	s.view.ShowSummary(res.Summary)
	s.view.ShowRecords(s.detail.Rows(records))
	s.carousel.Start(records)
	s.flush(ctx)

	log.WithField("records", len(records)).Info("results loaded")
	return nil
}

// Seek показывает запись i, не сбивая таймер. Промах мимо записей
// сообщается в представление, показ не меняется.
func (s *InspectionSession) Seek(ctx context.Context, i int) error {
	if err := s.carousel.Seek(i); err != nil {
		s.view.ShowError(s.t.T(i18n.SeekRange, i+1, s.carousel.Len()))
		return err
	}
	s.flush(ctx)
	return nil
}

// Tick продвигает карусель на одну запись.
func (s *InspectionSession) Tick(ctx context.Context) {
	s.carousel.Tick()
	s.flush(ctx)
}

// Ticks возвращает канал таймера карусели для select владельца.
func (s *InspectionSession) Ticks() <-chan time.Time {
	return s.carousel.Ticks()
}

// Reset останавливает карусель, отбрасывает записи и очищает показ.
func (s *InspectionSession) Reset() {
	s.carousel.Stop()
	s.store.Clear()
	s.pending = nil

	s.view.ShowRecords(nil)
	s.view.ShowSummary(entity.InspectionSummary{})
	s.view.ShowPlaceholder(entity.PlaceholderNotDetected)
	s.detail.Show(nil, -1)
}

// Close останавливает таймер карусели.
func (s *InspectionSession) Close() {
	s.carousel.Stop()
}

// CarouselState возвращает состояние карусели.
func (s *InspectionSession) CarouselState() entity.CarouselState {
	return s.carousel.State()
}

// CurrentIndex возвращает индекс показываемой записи.
func (s *InspectionSession) CurrentIndex() (int, bool) {
	return s.carousel.Index()
}

// Records возвращает загруженные записи.
func (s *InspectionSession) Records() []entity.DefectRecord {
	return s.store.All()
}

// InspectionID возвращает выбранный обход, 0 если не выбран.
func (s *InspectionSession) InspectionID() int64 {
	return s.inspectionID
}

// flush отрисовывает событие, которое карусель выпустила последним.
func (s *InspectionSession) flush(ctx context.Context) {
	ev := s.pending
	s.pending = nil
	if ev == nil {
		return
	}

	if ev.Empty() {
		s.view.ShowPlaceholder(entity.PlaceholderNoDefects)
		s.detail.Show(nil, -1)
		return
	}

	s.detail.Show(ev.Record, ev.Index)
	img := s.images.Resolve(ctx, *ev.Record)
	s.view.ShowImage(ev.Index, ev.Total, img)
}

func (s *InspectionSession) status(inspectionID int64) entity.DetectionStatus {
	if st, ok := s.statuses[inspectionID]; ok {
		return st
	}
	return entity.DetectionPending
}

func (s *InspectionSession) setStatus(inspectionID int64, status entity.DetectionStatus, triggerEnabled bool) {
	s.statuses[inspectionID] = status
	s.view.ShowDetectionStatus(inspectionID, status, triggerEnabled)
}

func newLoadID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return ""
	}
	return id.String()
}
