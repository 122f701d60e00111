package controller

import "notes-client/internal/model"

// EditSession текущая редактируемая заметка, если есть
type EditSession struct {
	note   model.Note
	active bool
}

// Begin начинает редактирование, безусловно заменяя предыдущую цель
func (s *EditSession) Begin(note model.Note) {
	s.note = note
	s.active = true
}

// Clear завершает редактирование
func (s *EditSession) Clear() {
	s.note = model.Note{}
	s.active = false
}

// Active возвращает цель редактирования
func (s *EditSession) Active() (model.Note, bool) {
	return s.note, s.active
}

// IsTarget сообщает, редактируется ли сейчас заметка с данным id
func (s *EditSession) IsTarget(id string) bool {
	return s.active && s.note.ID == id
}

// DeleteGate двухфазное подтверждение удаления с одним слотом.
// Повторный Arm до подтверждения молча заменяет цель.
type DeleteGate struct {
	id    string
	armed bool
}

// Arm взводит подтверждение для заметки id
func (g *DeleteGate) Arm(id string) {
	g.id = id
	g.armed = true
}

// Take снимает взвод и возвращает цель; одноразово
func (g *DeleteGate) Take() (string, bool) {
	id, ok := g.id, g.armed
	g.Disarm()
	return id, ok
}

// Disarm снимает взвод без удаления
func (g *DeleteGate) Disarm() {
	g.id = ""
	g.armed = false
}

// Pending возвращает ожидающую подтверждения цель
func (g *DeleteGate) Pending() (string, bool) {
	return g.id, g.armed
}

// requestOrder порядок запросов к одной цели (коллекции или заметке).
// issued номер последнего выданного запроса, applied последнего примененного ответа.
type requestOrder struct {
	issued  uint64
	applied uint64
}

// issue регистрирует новый запрос
func (o *requestOrder) issue(seq uint64) {
	o.issued = seq
}

// apply сообщает, нужно ли применить успешный ответ: он новее всех уже примененных
func (o *requestOrder) apply(seq uint64) bool {
	if seq <= o.applied {
		return false
	}
	o.applied = seq
	return true
}

// superseded сообщает, что после seq был выдан более новый запрос
func (o *requestOrder) superseded(seq uint64) bool {
	return seq != o.issued
}
