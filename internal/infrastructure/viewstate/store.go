// Package viewstate хранит последний кадр просмотра в памяти, чтобы его
// можно было отдавать по HTTP из другой горутины.
package viewstate

import (
	"sync"

	"inspection-viewer/internal/domain/entity"
	"inspection-viewer/internal/domain/port"
)

// InspectionRow описывает строку списка обходов с текущим значком.
type InspectionRow struct {
	entity.InspectionItem
	Status entity.DetectionStatus `json:"status"`
}

// Frame хранит снимок состояния представления.
type Frame struct {
	Version        uint64                   `json:"version"`
	Project        *entity.ProjectInfo      `json:"project,omitempty"`
	Inspections    []InspectionRow          `json:"inspections"`
	InspectionID   int64                    `json:"inspection_id,omitempty"`
	TriggerEnabled bool                     `json:"trigger_enabled"`
	Records        []entity.RecordRow       `json:"records"`
	Summary        entity.InspectionSummary `json:"summary"`
	Placeholder    entity.Placeholder       `json:"placeholder,omitempty"`
	Index          int                      `json:"index"`
	Total          int                      `json:"total"`
	Tier           entity.ImageTier         `json:"tier,omitempty"`
	Source         string                   `json:"source,omitempty"`
	Drawn          bool                     `json:"drawn"`
	Detail         entity.DetailPanel       `json:"detail"`
	Active         int                      `json:"active"`
	Error          string                   `json:"error,omitempty"`
	Notices        []string                 `json:"notices,omitempty"`
}

const maxNotices = 20

// Store реализует port.View, запоминая кадр.
type Store struct {
	mu    sync.RWMutex
	frame Frame
	image []byte
}

// NewStore создаёт пустой кадр.
func NewStore() *Store {
	return &Store{frame: Frame{
		Index:  -1,
		Active: -1,
		Detail: entity.DetailPanel{Layout: entity.LayoutFullWidth},
	}}
}

// Snapshot возвращает копию кадра.
func (s *Store) Snapshot() Frame {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f := s.frame
	f.Inspections = append([]InspectionRow(nil), f.Inspections...)
	f.Records = append([]entity.RecordRow(nil), f.Records...)
	f.Notices = append([]string(nil), f.Notices...)
	f.Detail.Fields = append([]entity.DetailField(nil), f.Detail.Fields...)
	if f.Project != nil {
		p := *f.Project
		f.Project = &p
	}
	return f
}

// Image возвращает байты текущего снимка, nil если показывается заглушка.
func (s *Store) Image() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.image
}

// update применяет fn под блокировкой; fn может менять и s.image.
func (s *Store) update(fn func(f *Frame)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.frame)
	s.frame.Version++
}

func (s *Store) ShowProject(info entity.ProjectInfo, inspections []entity.InspectionItem) {
	rows := make([]InspectionRow, len(inspections))
	for i, item := range inspections {
		rows[i] = InspectionRow{InspectionItem: item, Status: entity.StatusOf(item)}
	}
	s.update(func(f *Frame) {
		f.Project = &info
		f.Inspections = rows
		f.InspectionID = 0
		f.TriggerEnabled = false
		f.Error = ""
	})
}

func (s *Store) ShowDetectionStatus(inspectionID int64, status entity.DetectionStatus, triggerEnabled bool) {
	s.update(func(f *Frame) {
		f.InspectionID = inspectionID
		f.TriggerEnabled = triggerEnabled
		for i := range f.Inspections {
			if f.Inspections[i].ID == inspectionID {
				f.Inspections[i].Status = status
			}
		}
	})
}

func (s *Store) ShowRecords(rows []entity.RecordRow) {
	s.update(func(f *Frame) {
		f.Records = append([]entity.RecordRow(nil), rows...)
		f.Error = ""
	})
}

func (s *Store) ShowSummary(summary entity.InspectionSummary) {
	s.update(func(f *Frame) { f.Summary = summary })
}

func (s *Store) ShowPlaceholder(p entity.Placeholder) {
	s.update(func(f *Frame) {
		s.image = nil
		f.Placeholder = p
		f.Index = -1
		f.Total = 0
		f.Tier = ""
		f.Source = ""
		f.Drawn = false
	})
}

func (s *Store) ShowImage(index, total int, img entity.DisplayImage) {
	s.update(func(f *Frame) {
		s.image = img.Data
		f.Placeholder = entity.PlaceholderNone
		if img.Tier == entity.TierFailed {
			f.Placeholder = entity.PlaceholderLoadFailed
		}
		f.Index = index
		f.Total = total
		f.Tier = img.Tier
		f.Source = img.Source
		f.Drawn = img.Drawn
	})
}

func (s *Store) ShowDetail(panel entity.DetailPanel) {
	s.update(func(f *Frame) { f.Detail = panel })
}

func (s *Store) MarkActive(index int) {
	s.update(func(f *Frame) { f.Active = index })
}

func (s *Store) ShowError(message string) {
	s.update(func(f *Frame) { f.Error = message })
}

func (s *Store) Notify(message string) {
	s.update(func(f *Frame) {
		f.Notices = append(f.Notices, message)
		if len(f.Notices) > maxNotices {
			f.Notices = f.Notices[len(f.Notices)-maxNotices:]
		}
	})
}

var _ port.View = (*Store)(nil)
