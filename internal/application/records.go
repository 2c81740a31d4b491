package app

import "inspection-viewer/internal/domain/entity"

// RecordStore хранит упорядоченные записи дефектов текущего обхода.
// Записи заменяются только целиком.
type RecordStore struct {
	records []entity.DefectRecord
}

// NewRecordStore создаёт пустое хранилище записей.
func NewRecordStore() *RecordStore {
	return &RecordStore{}
}

// Load заменяет записи целиком. Порядок и количество сохраняются,
// пустой ImagePath заполняется из ImageName.
func (s *RecordStore) Load(raw []entity.DefectRecord) []entity.DefectRecord {
	records := make([]entity.DefectRecord, len(raw))
	for i, r := range raw {
		if r.ImagePath == "" {
			r.ImagePath = r.ImageName
		}
		if len(r.Annotations) > 0 {
			r.Annotations = append([]entity.Annotation(nil), r.Annotations...)
		}
		records[i] = r
	}
	s.records = records
	return s.All()
}

// Clear сбрасывает хранилище в пустое состояние.
func (s *RecordStore) Clear() {
	s.records = nil
}

// Len возвращает количество записей.
func (s *RecordStore) Len() int {
	return len(s.records)
}

// At возвращает запись по индексу.
func (s *RecordStore) At(i int) (entity.DefectRecord, bool) {
	if i < 0 || i >= len(s.records) {
		return entity.DefectRecord{}, false
	}
	return s.records[i], true
}

// All возвращает копию всех записей.
func (s *RecordStore) All() []entity.DefectRecord {
	return append([]entity.DefectRecord(nil), s.records...)
}
