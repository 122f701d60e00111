package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-client/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := New(server.URL+"/api/notes", WithHTTPClient(&http.Client{Timeout: 2 * time.Second}))
	require.NoError(t, err)
	return c
}

func TestNew_DefaultsAndValidation(t *testing.T) {
	c, err := New("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.BaseURL())

	c, err = New("http://localhost:9000/api/notes")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/api/notes/", c.BaseURL())

	_, err = New("localhost/api")
	assert.Error(t, err)
}

func TestClient_List(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/notes/", r.URL.Path)
		_, _ = io.WriteString(w, `[{"id":2,"title":"B","content":"b","created_at":"2024-01-06T00:00:00Z"},
			{"id":1,"title":"A","content":"a","created_at":"2024-01-05T00:00:00Z"}]`)
	})

	notes, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "2", notes[0].ID)
	assert.Equal(t, "1", notes[1].ID)
}

func TestClient_CreateAndUpdate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/notes/":
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id": 10, "title": body["title"], "content": body["content"], "created_at": "2024-03-01T08:00:00Z",
			})
		case r.Method == http.MethodPut && r.URL.Path == "/api/notes/2/":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id": 2, "title": body["title"], "content": body["content"], "created_at": "2024-01-01T00:00:00Z",
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	created, err := c.Create(context.Background(), "Title", "Body")
	require.NoError(t, err)
	assert.Equal(t, "10", created.ID)
	assert.Equal(t, "Title", created.Title)
	assert.False(t, created.CreatedAt.IsZero())

	updated, err := c.Update(context.Background(), "2", "A2", "B2")
	require.NoError(t, err)
	assert.Equal(t, "2", updated.ID)
	assert.Equal(t, "A2", updated.Title)
	assert.Equal(t, "B2", updated.Content)
	assert.True(t, updated.CreatedAt.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestClient_Delete(t *testing.T) {
	var called bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/notes/5/", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.Delete(context.Background(), "5"))
	assert.True(t, called)
}

func TestClient_Summarize(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/notes/3/summarize/", r.URL.Path)
		_, _ = io.WriteString(w, `{"summary":"  ## The Gist\nShort.  "}`)
	})

	text, err := c.Summarize(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, "## The Gist\nShort.", text)
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		call     func(c *Client) error
		wantKind model.Kind
		wantErr  error
		wantMsg  string
	}{
		{
			name:   "update not found",
			status: http.StatusNotFound,
			body:   `{"detail":"No Note matches the given query."}`,
			call: func(c *Client) error {
				_, err := c.Update(context.Background(), "9", "t", "c")
				return err
			},
			wantKind: model.KindNotFound,
			wantErr:  model.ErrNotFound,
			wantMsg:  "No Note matches the given query.",
		},
		{
			name:   "create validation",
			status: http.StatusBadRequest,
			body:   `{"title":["This field may not be blank."]}`,
			call: func(c *Client) error {
				_, err := c.Create(context.Background(), "", "c")
				return err
			},
			wantKind: model.KindValidation,
			wantErr:  model.ErrValidation,
			wantMsg:  "may not be blank",
		},
		{
			name:   "summarize 500 is service unavailable",
			status: http.StatusInternalServerError,
			body:   `{"error":"model overloaded"}`,
			call: func(c *Client) error {
				_, err := c.Summarize(context.Background(), "1")
				return err
			},
			wantKind: model.KindServiceUnavailable,
			wantErr:  model.ErrServiceUnavailable,
			wantMsg:  "model overloaded",
		},
		{
			name:   "summarize 429 is service unavailable",
			status: http.StatusTooManyRequests,
			body:   `{"error":"rate limited"}`,
			call: func(c *Client) error {
				_, err := c.Summarize(context.Background(), "1")
				return err
			},
			wantKind: model.KindServiceUnavailable,
			wantErr:  model.ErrServiceUnavailable,
			wantMsg:  "rate limited",
		},
		{
			name:   "summarize 503 is service unavailable",
			status: http.StatusServiceUnavailable,
			call: func(c *Client) error {
				_, err := c.Summarize(context.Background(), "1")
				return err
			},
			wantKind: model.KindServiceUnavailable,
			wantErr:  model.ErrServiceUnavailable,
			wantMsg:  "Service Unavailable",
		},
		{
			name:   "list 503 is server error",
			status: http.StatusServiceUnavailable,
			call: func(c *Client) error {
				_, err := c.List(context.Background())
				return err
			},
			wantKind: model.KindServer,
			wantErr:  model.ErrServer,
			wantMsg:  "Service Unavailable",
		},
		{
			name:   "create 429 is server error",
			status: http.StatusTooManyRequests,
			call: func(c *Client) error {
				_, err := c.Create(context.Background(), "t", "c")
				return err
			},
			wantKind: model.KindServer,
			wantErr:  model.ErrServer,
			wantMsg:  "Too Many Requests",
		},
		{
			name:   "update 502 is server error",
			status: http.StatusBadGateway,
			call: func(c *Client) error {
				_, err := c.Update(context.Background(), "1", "t", "c")
				return err
			},
			wantKind: model.KindServer,
			wantErr:  model.ErrServer,
			wantMsg:  "Bad Gateway",
		},
		{
			name:   "delete 504 is server error",
			status: http.StatusGatewayTimeout,
			call: func(c *Client) error {
				err := c.Delete(context.Background(), "1")
				return err
			},
			wantKind: model.KindServer,
			wantErr:  model.ErrServer,
			wantMsg:  "Gateway Timeout",
		},
		{
			name:   "list 500 is server error",
			status: http.StatusInternalServerError,
			call: func(c *Client) error {
				_, err := c.List(context.Background())
				return err
			},
			wantKind: model.KindServer,
			wantErr:  model.ErrServer,
			wantMsg:  "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			err := tt.call(c)
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, model.KindOf(err))
			assert.True(t, errors.Is(err, tt.wantErr))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestClient_ConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	c, err := New(baseURL)
	require.NoError(t, err)

	_, err = c.List(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrConnection))
}

func TestClient_EmptyIDIsRejectedLocally(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
	})

	assert.ErrorIs(t, c.Delete(context.Background(), ""), model.ErrValidation)
	_, err := c.Summarize(context.Background(), "")
	assert.ErrorIs(t, err, model.ErrValidation)
}
