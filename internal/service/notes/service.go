package notes

import (
	"context"
	"log/slog"
	"strings"

	"notes-client/internal/model"
	"notes-client/internal/repository"
	svc "notes-client/internal/service"
)

var _ svc.NoteService = (*service)(nil)

type service struct {
	noteRepository repository.NoteRepository
	summarizer     svc.Summarizer
	logger         *slog.Logger
}

// NewNoteService создает сервис заметок. Без summarizer Summarize
// возвращает ServiceUnavailable.
func NewNoteService(noteRepository repository.NoteRepository, summarizer svc.Summarizer, logger *slog.Logger) svc.NoteService {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		noteRepository: noteRepository,
		summarizer:     summarizer,
		logger:         logger,
	}
}

func normalize(title, content string) (model.Note, error) {
	note := model.Note{
		Title:   strings.TrimSpace(title),
		Content: strings.TrimSpace(content),
	}
	if err := note.Validate(); err != nil {
		return model.Note{}, err
	}
	return note, nil
}

func emptyID() error {
	return model.NewValidationError("id cannot be empty")
}

// Create создает новую заметку с указанными title и content
func (s *service) Create(ctx context.Context, title, content string) (model.Note, error) {
	note, err := normalize(title, content)
	if err != nil {
		return model.Note{}, err
	}

	created, err := s.noteRepository.Create(ctx, note)
	if err != nil {
		return model.Note{}, err
	}
	s.logger.Info("note created", "id", created.ID)

	return created, nil
}

// Get возвращает заметку по её ID
func (s *service) Get(ctx context.Context, id string) (model.Note, error) {
	if id == "" {
		return model.Note{}, emptyID()
	}
	return s.noteRepository.GetByID(ctx, id)
}

// List возвращает список всех заметок
func (s *service) List(ctx context.Context) ([]model.Note, error) {
	return s.noteRepository.List(ctx)
}

// Update заменяет заголовок и текст заметки
func (s *service) Update(ctx context.Context, id, title, content string) (model.Note, error) {
	if id == "" {
		return model.Note{}, emptyID()
	}

	note, err := normalize(title, content)
	if err != nil {
		return model.Note{}, err
	}
	note.ID = id

	updated, err := s.noteRepository.Update(ctx, note)
	if err != nil {
		return model.Note{}, err
	}
	s.logger.Info("note updated", "id", id)

	return updated, nil
}

// Delete удаляет заметку по ID
func (s *service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return emptyID()
	}

	if err := s.noteRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("note deleted", "id", id)

	return nil
}

// Summarize запрашивает резюме текста заметки у summarizer
func (s *service) Summarize(ctx context.Context, id string) (string, error) {
	note, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if s.summarizer == nil {
		return "", &model.Error{Kind: model.KindServiceUnavailable, Op: "summarize", Message: "summarizer is not configured"}
	}

	text, err := s.summarizer.Summarize(ctx, note.Content)
	if err != nil {
		s.logger.Error("summarize failed", "id", id, "error", err)
		return "", err
	}

	return strings.TrimSpace(text), nil
}
