package remote

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"notes-client/internal/converter"
	"notes-client/internal/model"
)

// maxErrorBody ограничение на чтение тела ошибки
const maxErrorBody = 4 << 10

// kindForStatus сопоставляет HTTP статус классу ошибки.
// ServiceUnavailable относится только к суммаризации, его выставляет Summarize.
func kindForStatus(status int) model.Kind {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return model.KindValidation
	case http.StatusNotFound, http.StatusGone:
		return model.KindNotFound
	default:
		return model.KindServer
	}
}

func decodeAPIError(op string, resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	message := strings.TrimSpace(string(data))
	var payload converter.ErrorResponse
	if err := json.Unmarshal(data, &payload); err == nil {
		switch {
		case payload.Error != "":
			message = payload.Error
		case payload.Detail != "":
			message = payload.Detail
		}
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	return &model.Error{
		Kind:    kindForStatus(resp.StatusCode),
		Op:      op,
		Status:  resp.StatusCode,
		Message: message,
	}
}
