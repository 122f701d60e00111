package summary

import (
	"context"
	"log/slog"
	"sync"
	"unicode/utf8"
)

// MinContentLength суммаризация имеет смысл только для текста длиннее этого порога
const MinContentLength = 20

// FailedMessage текст для пользователя при любой ошибке суммаризации
const FailedMessage = "AI is busy or offline."

// Status стадия запроса резюме
type Status int

const (
	NotRequested Status = iota
	Pending
	Ready
	Failed
)

// String возвращает имя стадии
func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "not_requested"
	}
}

// State состояние резюме одной заметки
type State struct {
	Status Status `json:"status"`
	Text   string `json:"text,omitempty"` // Резюме для Ready, сообщение об ошибке для Failed
}

// Summarizer удаленный источник резюме
type Summarizer interface {
	Summarize(ctx context.Context, id string) (string, error)
}

// Cache кэш резюме по id заметки: не более одного запроса на заметку за сессию.
// Ready и Failed окончательны, повторного запроса нет.
type Cache struct {
	mu      sync.Mutex
	remote  Summarizer
	entries map[string]State
	logger  *slog.Logger
}

// NewCache создает пустой кэш
func NewCache(remote Summarizer, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		remote:  remote,
		entries: make(map[string]State),
		logger:  logger,
	}
}

// Eligible сообщает, достаточно ли длинный текст для суммаризации
func Eligible(content string) bool {
	return utf8.RuneCountInString(content) > MinContentLength
}

// State возвращает состояние резюме заметки
func (c *Cache) State(id string) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[id]
}

// Request запрашивает резюме, если оно еще не запрашивалось.
// Блокируется на время сетевого вызова; вызов для заметки в любой другой стадии
// возвращает текущее состояние без обращения к сервису.
func (c *Cache) Request(ctx context.Context, id string) State {
	c.mu.Lock()
	if st := c.entries[id]; st.Status != NotRequested {
		c.mu.Unlock()
		return st
	}
	c.entries[id] = State{Status: Pending}
	c.mu.Unlock()

	text, err := c.remote.Summarize(ctx, id)

	var st State
	if err != nil {
		c.logger.Warn("summary request failed", "note_id", id, "error", err)
		st = State{Status: Failed, Text: FailedMessage}
	} else {
		st = State{Status: Ready, Text: text}
	}

	c.mu.Lock()
	c.entries[id] = st
	c.mu.Unlock()
	return st
}
