package entity

// Command представляет типизированную команду от слоя представления.
type Command interface {
	commandName() string
}

// SelectProject выбирает проект и загружает список обходов.
type SelectProject struct{ ProjectID int64 }

// SelectInspection выбирает обход и, если детекция уже была, загружает результаты.
type SelectInspection struct{ InspectionID int64 }

// Seek переключает карусель на запись с индексом Index.
type Seek struct{ Index int }

// TriggerDetection запускает детекцию на сервере.
type TriggerDetection struct{ InspectionID int64 }

// Stop останавливает карусель и очищает показ.
type Stop struct{}

// Pause замораживает автопрокрутку на текущей записи.
type Pause struct{}

// Resume возобновляет автопрокрутку.
type Resume struct{}

func (SelectProject) commandName() string    { return "select_project" }
func (SelectInspection) commandName() string { return "select_inspection" }
func (Seek) commandName() string             { return "seek" }
func (TriggerDetection) commandName() string { return "trigger_detection" }
func (Stop) commandName() string             { return "stop" }
func (Pause) commandName() string            { return "pause" }
func (Resume) commandName() string           { return "resume" }

// CommandName возвращает имя команды для логов.
func CommandName(c Command) string {
	if c == nil {
		return ""
	}
	return c.commandName()
}
