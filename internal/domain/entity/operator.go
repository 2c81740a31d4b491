package entity

// OperatorState состояние оператора в диалоге
type OperatorState string

const (
	StateIdle      OperatorState = "idle"      // ничего не выбрано
	StateProject   OperatorState = "project"   // выбран проект
	StateReviewing OperatorState = "reviewing" // выбран обход, идёт просмотр
)

// Operator представляет оператора, который просматривает результаты
type Operator struct {
	ID           int64         // Telegram User ID
	ChatID       int64         // Telegram Chat ID
	State        OperatorState // Текущее состояние
	ProjectID    int64         // выбранный проект, 0 если нет
	InspectionID int64         // выбранный обход, 0 если нет
}

// NewOperator создаёт оператора с начальным состоянием
func NewOperator(userID, chatID int64) *Operator {
	return &Operator{
		ID:     userID,
		ChatID: chatID,
		State:  StateIdle,
	}
}

// SetState обновляет состояние оператора
func (o *Operator) SetState(state OperatorState) {
	o.State = state
}

// SelectProject запоминает проект и сбрасывает выбранный обход.
func (o *Operator) SelectProject(id int64) {
	o.ProjectID = id
	o.InspectionID = 0
	o.State = StateProject
}

// SelectInspection запоминает обход.
func (o *Operator) SelectInspection(id int64) {
	o.InspectionID = id
	o.State = StateReviewing
}

// Reviewing сообщает, есть ли у оператора обход, по которому можно листать записи.
func (o *Operator) Reviewing() bool {
	return o.State == StateReviewing && o.InspectionID != 0
}
