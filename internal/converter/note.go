package converter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"notes-client/internal/model"
)

// ID идентификатор заметки на проводе: сервер может прислать как строку, так и число
type ID string

// UnmarshalJSON принимает "abc", 42 и null
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("note id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("note id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// NoteDTO представление заметки в HTTP API
type NoteDTO struct {
	ID        ID         `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	CamelTime *time.Time `json:"createdAt,omitempty"` // Альтернативное имя поля у некоторых бэкендов
}

// NoteRequest тело запросов создания и обновления
type NoteRequest struct {
	Title   string `json:"title" validate:"required,max=100"`
	Content string `json:"content" validate:"required"`
}

// SummaryResponse ответ эндпоинта суммаризации
type SummaryResponse struct {
	Summary string `json:"summary"`
}

// ErrorResponse тело ошибки API
type ErrorResponse struct {
	Error  string `json:"error,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// DTOToModel конвертирует DTO в доменную модель
func DTOToModel(dto NoteDTO) model.Note {
	createdAt := dto.CreatedAt
	if createdAt.IsZero() && dto.CamelTime != nil {
		createdAt = *dto.CamelTime
	}
	return model.Note{
		ID:        string(dto.ID),
		Title:     dto.Title,
		Content:   dto.Content,
		CreatedAt: createdAt,
	}
}

// DTOsToModels конвертирует слайс DTO в слайс доменных моделей
func DTOsToModels(dtos []NoteDTO) []model.Note {
	notes := make([]model.Note, len(dtos))
	for i, dto := range dtos {
		notes[i] = DTOToModel(dto)
	}
	return notes
}

// ModelToDTO конвертирует доменную модель в DTO
func ModelToDTO(note model.Note) NoteDTO {
	return NoteDTO{
		ID:        ID(note.ID),
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
	}
}

// ModelsToDTOs конвертирует слайс доменных моделей в слайс DTO
func ModelsToDTOs(notes []model.Note) []NoteDTO {
	dtos := make([]NoteDTO, len(notes))
	for i, note := range notes {
		dtos[i] = ModelToDTO(note)
	}
	return dtos
}

// DraftToRequest конвертирует форму в тело запроса
func DraftToRequest(d model.Draft) NoteRequest {
	return NoteRequest{Title: d.Title, Content: d.Content}
}
