package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"notes-client/internal/model"
	"notes-client/internal/repository"
)

var _ repository.NoteRepository = (*repo)(nil)

type repo struct {
	mu    sync.RWMutex
	notes map[string]model.Note
	now   func() time.Time
}

// Option настраивает репозиторий
type Option func(*repo)

// WithClock подменяет источник времени
func WithClock(now func() time.Time) Option {
	return func(r *repo) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRepository создает in-memory репозиторий на основе map
func NewRepository(opts ...Option) repository.NoteRepository {
	r := &repo{
		notes: make(map[string]model.Note),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func notFound(id string) error {
	return &model.Error{Kind: model.KindNotFound, Op: "repository", Message: "note " + id + " not found"}
}

// Create сохраняет заметку под новым UUID
func (r *repo) Create(ctx context.Context, note model.Note) (model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	note.ID = uuid.NewString()
	note.CreatedAt = r.now().UTC()
	r.notes[note.ID] = note

	return note, nil
}

// GetByID возвращает заметку по ID
func (r *repo) GetByID(ctx context.Context, id string) (model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	note, exists := r.notes[id]
	if !exists {
		return model.Note{}, notFound(id)
	}
	return note, nil
}

// List возвращает заметки по убыванию даты создания
func (r *repo) List(ctx context.Context) ([]model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	notes := make([]model.Note, 0, len(r.notes))
	for _, note := range r.notes {
		notes = append(notes, note)
	}
	slices.SortFunc(notes, func(a, b model.Note) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	return notes, nil
}

// Update заменяет заголовок и текст существующей заметки
func (r *repo) Update(ctx context.Context, note model.Note) (model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.notes[note.ID]
	if !exists {
		return model.Note{}, notFound(note.ID)
	}
	existing.Title = note.Title
	existing.Content = note.Content
	r.notes[note.ID] = existing

	return existing, nil
}

// Delete удаляет заметку по ID
func (r *repo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.notes[id]; !exists {
		return notFound(id)
	}
	delete(r.notes, id)

	return nil
}
