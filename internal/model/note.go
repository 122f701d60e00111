package model

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTitleLength максимальная длина заголовка в символах
const MaxTitleLength = 100

// dateLayout формат отображения даты создания, например "Jan 5, 2024"
const dateLayout = "Jan 2, 2006"

// Note представляет заметку (доменная модель)
// Экземпляр никогда не изменяется на месте: при обновлении заменяется целиком
type Note struct {
	ID        string    // Непрозрачный идентификатор, назначается сервером
	Title     string    // Заголовок заметки
	Content   string    // Содержание заметки
	CreatedAt time.Time // Дата создания, выставляется сервером
}

// Validate проверяет валидность заметки
func (n *Note) Validate() error {
	return validateFields(n.Title, n.Content)
}

// IsEmpty проверяет, пуста ли заметка
func (n *Note) IsEmpty() bool {
	return n.ID == "" && n.Title == "" && n.Content == ""
}

// Matches сообщает, содержит ли заголовок или текст заметки подстроку query без учета регистра
func (n *Note) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(n.Title), q) ||
		strings.Contains(strings.ToLower(n.Content), q)
}

// Draft содержимое формы редактирования
type Draft struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Validate проверяет, что заголовок и текст не пустые после TrimSpace,
// а заголовок не длиннее MaxTitleLength символов
func (d Draft) Validate() error {
	return validateFields(d.Title, d.Content)
}

// IsEmpty проверяет, пуста ли форма
func (d Draft) IsEmpty() bool {
	return d.Title == "" && d.Content == ""
}

// ErrTitleTooLong заголовок длиннее MaxTitleLength символов
var ErrTitleTooLong = NewValidationError("title cannot be longer than 100 characters")

func validateFields(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return NewValidationError("title cannot be empty")
	}
	if strings.TrimSpace(content) == "" {
		return NewValidationError("content cannot be empty")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

// FormatDate форматирует дату создания для отображения в локальной временной зоне.
// Хранимое значение не изменяется.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(dateLayout)
}
