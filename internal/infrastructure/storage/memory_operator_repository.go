package storage

import (
	"context"
	"sync"

	"inspection-viewer/internal/domain/entity"
	"inspection-viewer/internal/domain/port"
)

// MemoryOperatorRepository in-memory хранилище операторов
type MemoryOperatorRepository struct {
	mu        sync.RWMutex
	operators map[int64]*entity.Operator
}

// NewMemoryOperatorRepository создаёт новое in-memory хранилище
func NewMemoryOperatorRepository() *MemoryOperatorRepository {
	return &MemoryOperatorRepository{
		operators: make(map[int64]*entity.Operator),
	}
}

// Get возвращает копию оператора по ID, создаёт нового если не найден
func (r *MemoryOperatorRepository) Get(ctx context.Context, userID, chatID int64) (*entity.Operator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	op, exists := r.operators[userID]
	if !exists {
		op = entity.NewOperator(userID, chatID)
		r.operators[userID] = op
	}

	cp := *op
	return &cp, nil
}

// Save сохраняет состояние оператора
func (r *MemoryOperatorRepository) Save(ctx context.Context, operator *entity.Operator) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cp := *operator
	r.mu.Lock()
	r.operators[operator.ID] = &cp
	r.mu.Unlock()

	return nil
}

// Проверка реализации интерфейса
var _ port.OperatorRepository = (*MemoryOperatorRepository)(nil)
