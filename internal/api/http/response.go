package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"notes-client/internal/converter"
	"notes-client/internal/model"
)

// writeJSON пишет тело ответа в JSON
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, converter.ErrorResponse{Error: msg})
}

// statusFor переводит класс доменной ошибки в HTTP статус
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// messageFor возвращает текст ошибки для клиента; внутренние ошибки не раскрываются
func messageFor(err error, status int) string {
	if status == http.StatusInternalServerError {
		return "internal server error"
	}
	var e *model.Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return err.Error()
}
