package entity

import (
	"errors"
	"fmt"
)

var (
	// seek за пределы загруженных записей
	ErrIndexOutOfRange = errors.New("record index out of range")
	// детекция запрошена без выбранного обхода
	ErrNoInspection = errors.New("no inspection selected")
	// у записи нет имени снимка
	ErrImageNotFound = errors.New("image name is empty")
)

// TransportError — ошибка на уровне HTTP: не-2xx ответ или сбой сети.
type TransportError struct {
	Status int    // 0 при сетевой ошибке
	Text   string // тело ответа или текст ошибки
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("request failed: %v", e.Err)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Text)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ShapeError — корректный JSON, но без обязательных полей.
type ShapeError struct {
	Reason string
}

func (e *ShapeError) Error() string {
	return "invalid response: " + e.Reason
}

// APIError — сервер ответил success:false.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return "api returned failure"
	}
	return e.Message
}
