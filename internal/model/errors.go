package model

import (
	"errors"
	"fmt"
)

// Kind класс ошибки, видимый пользователю
type Kind int

const (
	// KindServer любой другой не-2xx ответ
	KindServer Kind = iota
	// KindValidation ошибка валидации (клиентская или серверная)
	KindValidation
	// KindConnection сетевая ошибка или сбой транспорта
	KindConnection
	// KindNotFound сервер сообщил, что заметки с таким id нет
	KindNotFound
	// KindServiceUnavailable сервис суммаризации занят или недоступен
	KindServiceUnavailable
)

// String возвращает имя класса ошибки
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindConnection:
		return "ConnectionError"
	case KindNotFound:
		return "NotFound"
	case KindServiceUnavailable:
		return "ServiceUnavailable"
	default:
		return "ServerError"
	}
}

// Sentinel-ошибки для проверки через errors.Is
var (
	ErrValidation         = errors.New("validation error")
	ErrConnection         = errors.New("connection error")
	ErrNotFound           = errors.New("note not found")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrServer             = errors.New("server error")
)

// Error ошибка операции с классом, HTTP статусом и причиной
type Error struct {
	Kind    Kind   // Класс ошибки
	Op      string // Операция, например "create"
	Status  int    // HTTP статус, 0 если ответа не было
	Message string // Сообщение сервера или клиента
	Err     error  // Исходная ошибка
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Op == "" {
		return msg
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Op, msg, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

// Unwrap возвращает исходную ошибку
func (e *Error) Unwrap() error {
	return e.Err
}

// Is сопоставляет ошибку с sentinel-ошибкой по классу
func (e *Error) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrConnection:
		return e.Kind == KindConnection
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrServiceUnavailable:
		return e.Kind == KindServiceUnavailable
	case ErrServer:
		return e.Kind == KindServer
	}
	return false
}

// NewValidationError создает клиентскую ошибку валидации
func NewValidationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// KindOf возвращает класс ошибки; неизвестные ошибки считаются KindServer
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindServer
}
