// Package controller содержит клиентскую машину состояний списка заметок.
//
// Controller единственный, кто изменяет коллекцию заметок. Локальная модель
// меняется только после подтверждения сервером (без оптимистичных обновлений),
// а любая ошибка превращается в одно уведомление и дальше не распространяется.
//
// Сетевые вызовы выполняются без удержания мьютекса, поэтому пока одна операция
// ждет ответа, другие действия пользователя обрабатываются. Ответы LoadAll и
// обновления заметки помечаются порядковым номером; успешный ответ применяется,
// только если он новее последнего примененного для той же цели, а ошибка
// запроса, который уже заменен более новым, не показывается.
package controller

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"notes-client/internal/controller/notify"
	"notes-client/internal/controller/summary"
	"notes-client/internal/model"
	"notes-client/internal/remote"
)

// Тексты уведомлений
const (
	MsgCreated         = "Note created!"
	MsgUpdated         = "Note updated!"
	MsgDeleted         = "Note deleted"
	MsgEmptyFields     = "Fields cannot be empty"
	MsgTitleTooLong    = "Title cannot be longer than 100 characters"
	MsgConnectionError = "Connection error"
	MsgSaveFailed      = "Save failed"
	MsgDeleteFailed    = "Delete failed"
)

// Controller владеет коллекцией заметок и оркестрирует EditSession,
// DeleteGate, очередь уведомлений, кэш резюме и удаленный клиент
type Controller struct {
	mu sync.Mutex

	api       remote.NotesAPI
	notifier  *notify.Queue
	summaries *summary.Cache
	logger    *slog.Logger

	notes    []model.Note
	draft    model.Draft
	edit     EditSession
	deletion DeleteGate
	inFlight int

	seq     uint64                   // Монотонный счетчик запросов
	loads   requestOrder             // Порядок LoadAll
	updates map[string]*requestOrder // Порядок обновлений по id заметки
}

// Option настраивает Controller
type Option func(*Controller)

// WithLogger задает логгер
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSummaryCache подменяет кэш резюме
func WithSummaryCache(cache *summary.Cache) Option {
	return func(c *Controller) {
		if cache != nil {
			c.summaries = cache
		}
	}
}

// New создает контроллер; nil notifier заменяется очередью с системным таймером
func New(api remote.NotesAPI, notifier *notify.Queue, opts ...Option) *Controller {
	if notifier == nil {
		notifier = notify.NewQueue(nil, notify.DefaultDuration)
	}
	c := &Controller{
		api:       api,
		notifier:  notifier,
		logger:    slog.Default(),
		updates:  make(map[string]*requestOrder),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.summaries == nil {
		c.summaries = summary.NewCache(api, c.logger)
	}
	return c
}

// Notifier возвращает очередь уведомлений
func (c *Controller) Notifier() *notify.Queue {
	return c.notifier
}

// LoadAll загружает всю коллекцию. Успех заменяет коллекцию целиком,
// ошибка оставляет ее нетронутой и показывает ConnectionError.
func (c *Controller) LoadAll(ctx context.Context) {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.loads.issue(seq)
	c.inFlight++
	c.mu.Unlock()

	notes, err := c.api.List(ctx)

	c.mu.Lock()
	c.inFlight--
	if err != nil {
		superseded := c.loads.superseded(seq)
		c.mu.Unlock()
		c.logger.Error("failed to load notes", "seq", seq, "error", err)
		if !superseded {
			c.notifier.Show(notify.KindConnectionError, MsgConnectionError)
		}
		return
	}
	if !c.loads.apply(seq) {
		c.mu.Unlock()
		c.logger.Debug("discarding stale list response", "seq", seq)
		return
	}
	c.notes = withLoaded(notes)
	c.reconcileEditLocked()
	c.mu.Unlock()

	c.logger.Info("notes loaded", "count", len(notes))
}

// Submit сохраняет форму: создает заметку, если редактирования нет, иначе обновляет цель.
// При любой ошибке коллекция, EditSession и введенный текст сохраняются.
func (c *Controller) Submit(ctx context.Context, draft model.Draft) {
	c.mu.Lock()
	c.draft = draft
	if err := draft.Validate(); err != nil {
		c.mu.Unlock()
		msg := MsgEmptyFields
		if errors.Is(err, model.ErrTitleTooLong) {
			msg = MsgTitleTooLong
		}
		c.notifier.Show(notify.KindValidationError, msg)
		return
	}
	target, editing := c.edit.Active()
	c.inFlight++
	var seq uint64
	if editing {
		c.seq++
		seq = c.seq
		c.updateOrder(target.ID).issue(seq)
	}
	c.mu.Unlock()

	if editing {
		c.submitUpdate(ctx, target.ID, seq, draft)
		return
	}
	c.submitCreate(ctx, draft)
}

func (c *Controller) submitCreate(ctx context.Context, draft model.Draft) {
	created, err := c.api.Create(ctx, draft.Title, draft.Content)

	c.mu.Lock()
	c.inFlight--
	if err != nil {
		c.mu.Unlock()
		c.logger.Error("failed to create note", "error", err)
		c.showFailure(err, MsgSaveFailed)
		return
	}
	c.notes = withCreated(c.notes, created)
	if _, editing := c.edit.Active(); !editing {
		c.draft = model.Draft{}
	}
	c.mu.Unlock()

	c.logger.Info("note created", "id", created.ID)
	c.notifier.Show(notify.KindSuccess, MsgCreated)
}

func (c *Controller) submitUpdate(ctx context.Context, id string, seq uint64, draft model.Draft) {
	updated, err := c.api.Update(ctx, id, draft.Title, draft.Content)

	c.mu.Lock()
	c.inFlight--
	order := c.updateOrder(id)
	superseded := order.superseded(seq)
	if err != nil {
		c.mu.Unlock()
		c.logger.Error("failed to update note", "id", id, "seq", seq, "error", err)
		if !superseded {
			c.showFailure(err, MsgSaveFailed)
		}
		return
	}
	if !order.apply(seq) {
		c.mu.Unlock()
		c.logger.Debug("discarding stale update response", "id", id, "seq", seq)
		return
	}
	c.notes, _ = withUpdated(c.notes, updated)
	// Ответ замененного запроса применяется молча: форму и уведомление определяет более новый запрос
	if superseded {
		c.mu.Unlock()
		c.logger.Info("note updated by superseded request", "id", updated.ID, "seq", seq)
		return
	}
	if c.edit.IsTarget(id) {
		c.edit.Clear()
		c.draft = model.Draft{}
	}
	c.mu.Unlock()

	c.logger.Info("note updated", "id", updated.ID)
	c.notifier.Show(notify.KindSuccess, MsgUpdated)
}

// BeginEdit начинает редактирование заметки и копирует ее поля в форму.
// Предыдущее редактирование заменяется без предупреждения. Заметка, которой нет
// в коллекции, игнорируется: цель редактирования всегда присутствует в коллекции,
// поэтому следующий Submit в этом случае создаст новую заметку.
func (c *Controller) BeginEdit(note model.Note) {
	c.mu.Lock()
	defer c.mu.Unlock()
	current, ok := find(c.notes, note.ID)
	if !ok {
		return
	}
	c.edit.Begin(current)
	c.draft = model.Draft{Title: current.Title, Content: current.Content}
}

// CancelEdit завершает редактирование и очищает форму, отбрасывая изменения
func (c *Controller) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.edit.Clear()
	c.draft = model.Draft{}
}

// SetDraft сохраняет текущий ввод формы
func (c *Controller) SetDraft(draft model.Draft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = draft
}

// RequestDelete взводит подтверждение удаления, не обращаясь к серверу
func (c *Controller) RequestDelete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletion.Arm(id)
}

// CancelDelete снимает подтверждение удаления
func (c *Controller) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletion.Disarm()
}

// ConfirmDelete удаляет заметку, ожидающую подтверждения. Без взведенного
// подтверждения ничего не делает. Подтверждение снимается при любом исходе.
func (c *Controller) ConfirmDelete(ctx context.Context) {
	c.mu.Lock()
	id, ok := c.deletion.Take()
	if !ok {
		c.mu.Unlock()
		return
	}
	c.inFlight++
	c.mu.Unlock()

	err := c.api.Delete(ctx, id)

	c.mu.Lock()
	c.inFlight--
	if err != nil {
		c.mu.Unlock()
		c.logger.Error("failed to delete note", "id", id, "error", err)
		c.showFailure(err, MsgDeleteFailed)
		return
	}
	c.notes = withDeleted(c.notes, id)
	if c.edit.IsTarget(id) {
		c.edit.Clear()
		c.draft = model.Draft{}
	}
	c.mu.Unlock()

	c.logger.Info("note deleted", "id", id)
	c.notifier.Show(notify.KindSuccess, MsgDeleted)
}

// Search возвращает заметки, содержащие query в заголовке или тексте без учета регистра.
// Пустой запрос возвращает всю коллекцию в исходном порядке.
func (c *Controller) Search(query string) []model.Note {
	c.mu.Lock()
	notes := c.notes
	c.mu.Unlock()
	return filterNotes(notes, query)
}

// RequestSummary запрашивает резюме заметки, если ее текст достаточно длинный.
// Повторные вызовы не обращаются к серверу.
func (c *Controller) RequestSummary(ctx context.Context, id string) summary.State {
	c.mu.Lock()
	note, ok := find(c.notes, id)
	c.mu.Unlock()
	if !ok || !summary.Eligible(note.Content) {
		return c.summaries.State(id)
	}
	return c.summaries.Request(ctx, id)
}

// Summary возвращает состояние резюме заметки
func (c *Controller) Summary(id string) summary.State {
	return c.summaries.State(id)
}

// Notes возвращает текущую коллекцию
func (c *Controller) Notes() []model.Note {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.notes)
}

// Draft возвращает текущий ввод формы
func (c *Controller) Draft() model.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Editing возвращает цель редактирования
func (c *Controller) Editing() (model.Note, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.edit.Active()
}

// IsEditing сообщает, является ли заметка текущей целью редактирования
func (c *Controller) IsEditing(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.edit.IsTarget(id)
}

// PendingDelete возвращает заметку, ожидающую подтверждения удаления
func (c *Controller) PendingDelete() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deletion.Pending()
}

// Loading сообщает, выполняется ли сетевая операция
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight > 0
}

// Snapshot возвращает копию состояния
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := State{
		Notes:   slices.Clone(c.notes),
		Draft:   c.draft,
		Loading: c.inFlight > 0,
	}
	if note, ok := c.edit.Active(); ok {
		st.Editing = &note
	}
	if id, ok := c.deletion.Pending(); ok {
		st.PendingDelete = &id
	}
	return st
}

// updateOrder возвращает порядок обновлений заметки; вызывается под мьютексом
func (c *Controller) updateOrder(id string) *requestOrder {
	o, ok := c.updates[id]
	if !ok {
		o = &requestOrder{}
		c.updates[id] = o
	}
	return o
}

// reconcileEditLocked поддерживает инвариант: цель редактирования есть в коллекции
func (c *Controller) reconcileEditLocked() {
	target, ok := c.edit.Active()
	if !ok {
		return
	}
	current, exists := find(c.notes, target.ID)
	if !exists {
		c.edit.Clear()
		c.draft = model.Draft{}
		return
	}
	c.edit.Begin(current)
}

// showFailure показывает уведомление об ошибке удаленного вызова
func (c *Controller) showFailure(err error, msg string) {
	switch {
	case errors.Is(err, model.ErrConnection):
		c.notifier.Show(notify.KindConnectionError, msg+": "+MsgConnectionError)
	case errors.Is(err, model.ErrValidation):
		c.notifier.Show(notify.KindValidationError, msg+": "+err.Error())
	case errors.Is(err, model.ErrNotFound):
		c.notifier.Show(notify.KindFailure, msg+": note no longer exists")
	default:
		c.notifier.Show(notify.KindFailure, msg)
	}
}
