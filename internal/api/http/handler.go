// Package httpapi HTTP API эталонного сервера заметок.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"notes-client/internal/converter"
	"notes-client/internal/service"
)

// maxBodyBytes лимит тела запроса
const maxBodyBytes = 1 << 20

// NoteHandler обработчики эндпоинтов заметок
type NoteHandler struct {
	service  service.NoteService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewNoteHandler создает обработчик
func NewNoteHandler(svc service.NoteService, logger *slog.Logger) *NoteHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoteHandler{
		service:  svc,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

func (h *NoteHandler) fail(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "op", op, "error", err)
	}
	writeError(w, status, messageFor(err, status))
}

func (h *NoteHandler) decode(w http.ResponseWriter, r *http.Request) (converter.NoteRequest, bool) {
	var req converter.NoteRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return req, false
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return req, false
	}
	return req, true
}

// List GET /api/notes/
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	notes, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, "list", err)
		return
	}
	writeJSON(w, http.StatusOK, converter.ModelsToDTOs(notes))
}

// Create POST /api/notes/
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	note, err := h.service.Create(r.Context(), req.Title, req.Content)
	if err != nil {
		h.fail(w, "create", err)
		return
	}
	writeJSON(w, http.StatusCreated, converter.ModelToDTO(note))
}

// Get GET /api/notes/{id}/
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	note, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, "get", err)
		return
	}
	writeJSON(w, http.StatusOK, converter.ModelToDTO(note))
}

// Update PUT /api/notes/{id}/
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	note, err := h.service.Update(r.Context(), mux.Vars(r)["id"], req.Title, req.Content)
	if err != nil {
		h.fail(w, "update", err)
		return
	}
	writeJSON(w, http.StatusOK, converter.ModelToDTO(note))
}

// Delete DELETE /api/notes/{id}/
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.fail(w, "delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Summarize POST /api/notes/{id}/summarize/
func (h *NoteHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	text, err := h.service.Summarize(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, "summarize", err)
		return
	}
	writeJSON(w, http.StatusOK, converter.SummaryResponse{Summary: text})
}
