package controller

import (
	"notes-client/internal/model"
)

// State снимок состояния приложения
type State struct {
	Notes         []model.Note `json:"notes"`
	Draft         model.Draft  `json:"draft"`
	Editing       *model.Note  `json:"editing,omitempty"`
	PendingDelete *string      `json:"pending_delete,omitempty"`
	Loading       bool         `json:"loading"`
}

// Функции ниже чистые: они никогда не изменяют входной слайс и всегда строят новый,
// поэтому ранее выданные наружу слайсы остаются корректными.

// withLoaded заменяет коллекцию ответом сервера, отбрасывая повторы id
func withLoaded(loaded []model.Note) []model.Note {
	seen := make(map[string]struct{}, len(loaded))
	out := make([]model.Note, 0, len(loaded))
	for _, n := range loaded {
		if _, dup := seen[n.ID]; dup {
			continue
		}
		seen[n.ID] = struct{}{}
		out = append(out, n)
	}
	return out
}

// withCreated добавляет созданную заметку в начало
func withCreated(notes []model.Note, created model.Note) []model.Note {
	out := make([]model.Note, 0, len(notes)+1)
	out = append(out, created)
	for _, n := range notes {
		if n.ID != created.ID {
			out = append(out, n)
		}
	}
	return out
}

// withUpdated заменяет заметку с тем же id ответом сервера целиком
func withUpdated(notes []model.Note, updated model.Note) ([]model.Note, bool) {
	out := make([]model.Note, len(notes))
	found := false
	for i, n := range notes {
		if n.ID == updated.ID {
			out[i] = updated
			found = true
			continue
		}
		out[i] = n
	}
	return out, found
}

// withDeleted удаляет заметку с данным id
func withDeleted(notes []model.Note, id string) []model.Note {
	out := make([]model.Note, 0, len(notes))
	for _, n := range notes {
		if n.ID != id {
			out = append(out, n)
		}
	}
	return out
}

// find ищет заметку по id
func find(notes []model.Note, id string) (model.Note, bool) {
	for _, n := range notes {
		if n.ID == id {
			return n, true
		}
	}
	return model.Note{}, false
}

// filterNotes возвращает заметки, у которых заголовок или текст содержит query без учета регистра
func filterNotes(notes []model.Note, query string) []model.Note {
	out := make([]model.Note, 0, len(notes))
	for _, n := range notes {
		if n.Matches(query) {
			out = append(out, n)
		}
	}
	return out
}
