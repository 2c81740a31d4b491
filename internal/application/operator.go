package app

import (
	"context"

	"inspection-viewer/internal/domain/entity"
	"inspection-viewer/internal/domain/port"
)

// OperatorService хранит, что выбрал оператор в чате.
type OperatorService struct {
	repo port.OperatorRepository
}

func NewOperatorService(repo port.OperatorRepository) *OperatorService {
	return &OperatorService{repo: repo}
}

func (s *OperatorService) Get(ctx context.Context, userID, chatID int64) (*entity.Operator, error) {
	return s.repo.Get(ctx, userID, chatID)
}

func (s *OperatorService) SetState(ctx context.Context, userID, chatID int64, state entity.OperatorState) (*entity.Operator, error) {
	return s.update(ctx, userID, chatID, func(o *entity.Operator) { o.SetState(state) })
}

func (s *OperatorService) SelectProject(ctx context.Context, userID, chatID, projectID int64) (*entity.Operator, error) {
	return s.update(ctx, userID, chatID, func(o *entity.Operator) { o.SelectProject(projectID) })
}

func (s *OperatorService) SelectInspection(ctx context.Context, userID, chatID, inspectionID int64) (*entity.Operator, error) {
	return s.update(ctx, userID, chatID, func(o *entity.Operator) { o.SelectInspection(inspectionID) })
}

func (s *OperatorService) Cancel(ctx context.Context, userID, chatID int64) (*entity.Operator, error) {
	return s.SetState(ctx, userID, chatID, entity.StateIdle)
}

func (s *OperatorService) update(ctx context.Context, userID, chatID int64, fn func(*entity.Operator)) (*entity.Operator, error) {
	op, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	fn(op)
	if err := s.repo.Save(ctx, op); err != nil {
		return nil, err
	}

	return op, nil
}
