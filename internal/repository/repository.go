package repository

import (
	"context"

	"notes-client/internal/model"
)

// NoteRepository хранилище заметок эталонного сервера
type NoteRepository interface {
	// Create сохраняет заметку, назначая ID и дату создания
	Create(ctx context.Context, note model.Note) (model.Note, error)

	// GetByID возвращает заметку по ID
	GetByID(ctx context.Context, id string) (model.Note, error)

	// List возвращает все заметки, новые первыми
	List(ctx context.Context) ([]model.Note, error)

	// Update заменяет заголовок и текст; ID и дата создания не меняются
	Update(ctx context.Context, note model.Note) (model.Note, error)

	// Delete удаляет заметку по ID
	Delete(ctx context.Context, id string) error
}
