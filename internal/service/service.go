package service

import (
	"context"

	"notes-client/internal/model"
)

// NoteService бизнес-логика эталонного сервера заметок
type NoteService interface {
	// Create создает заметку; title и content обязательны
	Create(ctx context.Context, title, content string) (model.Note, error)

	// Get возвращает заметку по её ID
	Get(ctx context.Context, id string) (model.Note, error)

	// List возвращает все заметки, новые первыми
	List(ctx context.Context) ([]model.Note, error)

	// Update заменяет title и content заметки
	Update(ctx context.Context, id, title, content string) (model.Note, error)

	// Delete удаляет заметку по ID
	Delete(ctx context.Context, id string) error

	// Summarize возвращает резюме текста заметки
	Summarize(ctx context.Context, id string) (string, error)
}

// Summarizer генерирует резюме текста
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}
