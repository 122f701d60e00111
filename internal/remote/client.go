package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"notes-client/internal/converter"
	"notes-client/internal/model"
)

// DefaultBaseURL адрес сервиса заметок по умолчанию
const DefaultBaseURL = "http://127.0.0.1:8000/api/notes/"

// NotesAPI контракт удаленного сервиса заметок
type NotesAPI interface {
	// List возвращает все заметки
	List(ctx context.Context) ([]model.Note, error)

	// Create создает заметку; id и createdAt назначает сервер
	Create(ctx context.Context, title, content string) (model.Note, error)

	// Update заменяет заголовок и текст заметки и возвращает ее новую версию
	Update(ctx context.Context, id, title, content string) (model.Note, error)

	// Delete удаляет заметку по ID
	Delete(ctx context.Context, id string) error

	// Summarize запрашивает AI-резюме заметки
	Summarize(ctx context.Context, id string) (string, error)
}

var _ NotesAPI = (*Client)(nil)

// Client HTTP+JSON реализация NotesAPI
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// Option настраивает Client
type Option func(*Client)

// WithHTTPClient подменяет HTTP клиент (таймауты, транспорт)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger задает логгер
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New создает клиент; пустой baseURL заменяется на DefaultBaseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	c := &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL возвращает адрес коллекции заметок
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List возвращает все заметки в порядке, заданном сервером
func (c *Client) List(ctx context.Context) ([]model.Note, error) {
	var resp []converter.NoteDTO
	if err := c.doJSON(ctx, "list", http.MethodGet, "", nil, &resp); err != nil {
		return nil, err
	}
	return converter.DTOsToModels(resp), nil
}

// Create создает заметку
func (c *Client) Create(ctx context.Context, title, content string) (model.Note, error) {
	var resp converter.NoteDTO
	body := converter.NoteRequest{Title: title, Content: content}
	if err := c.doJSON(ctx, "create", http.MethodPost, "", body, &resp); err != nil {
		return model.Note{}, err
	}
	return converter.DTOToModel(resp), nil
}

// Update обновляет заметку
func (c *Client) Update(ctx context.Context, id, title, content string) (model.Note, error) {
	if id == "" {
		return model.Note{}, &model.Error{Kind: model.KindValidation, Op: "update", Message: "id cannot be empty"}
	}
	var resp converter.NoteDTO
	body := converter.NoteRequest{Title: title, Content: content}
	if err := c.doJSON(ctx, "update", http.MethodPut, notePath(id), body, &resp); err != nil {
		return model.Note{}, err
	}
	return converter.DTOToModel(resp), nil
}

// Delete удаляет заметку
func (c *Client) Delete(ctx context.Context, id string) error {
	if id == "" {
		return &model.Error{Kind: model.KindValidation, Op: "delete", Message: "id cannot be empty"}
	}
	return c.doJSON(ctx, "delete", http.MethodDelete, notePath(id), nil, nil)
}

// Summarize запрашивает резюме заметки.
// Любой 5xx от эндпоинта суммаризации считается ServiceUnavailable.
func (c *Client) Summarize(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", &model.Error{Kind: model.KindValidation, Op: "summarize", Message: "id cannot be empty"}
	}
	var resp converter.SummaryResponse
	err := c.doJSON(ctx, "summarize", http.MethodPost, notePath(id)+"summarize/", nil, &resp)
	if err != nil {
		var apiErr *model.Error
		if errors.As(err, &apiErr) && apiErr.Kind == model.KindServer && summarizerBusy(apiErr.Status) {
			apiErr.Kind = model.KindServiceUnavailable
		}
		return "", err
	}
	return strings.TrimSpace(resp.Summary), nil
}

// summarizerBusy статусы, при которых сервис суммаризации считается недоступным
func summarizerBusy(status int) bool {
	return status >= 500 || status == http.StatusTooManyRequests
}

func notePath(id string) string {
	return url.PathEscape(id) + "/"
}

func (c *Client) doJSON(ctx context.Context, op, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return &model.Error{Kind: model.KindValidation, Op: op, Err: err}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &model.Error{Kind: model.KindConnection, Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("notes api request failed", "op", op, "method", method, "path", path, "error", err)
		return &model.Error{Kind: model.KindConnection, Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("notes api request", "op", op, "method", method, "path", path,
		"status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(op, resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &model.Error{Kind: model.KindServer, Op: op, Status: resp.StatusCode, Message: "invalid response body", Err: err}
	}
	return nil
}
