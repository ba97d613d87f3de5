package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	apperrors "github.com/Taichi-iskw/tagscribe/internal/errors"
	"github.com/Taichi-iskw/tagscribe/internal/logger"
)

// envelope is the success body: {"success": true, ...payload}
type envelope map[string]any

type errorBody struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any, log *logger.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("failed to encode response", "error", err)
	}
}

func writeSuccess(w http.ResponseWriter, status int, payload envelope, log *logger.Logger) {
	body := envelope{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	writeJSON(w, status, body, log)
}

// writeError maps an AppError to its status; anything else is a 500 with a generic message
func writeError(w http.ResponseWriter, r *http.Request, err error, log *logger.Logger) {
	appErr, ok := apperrors.As(err)
	if !ok {
		log.Error("unhandled error", "error", err, "request_id", middleware.GetReqID(r.Context()))
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Error: "internal server error",
			Code:  apperrors.CodeInternal,
		}, log)
		return
	}

	status := appErr.HTTPStatus()
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "error", err, "request_id", middleware.GetReqID(r.Context()))
	}
	writeJSON(w, status, errorBody{
		Error:   appErr.Message,
		Code:    appErr.Code,
		Details: appErr.Details,
	}, log)
}

// decodeJSON reads a JSON body into dst; an empty body decodes to the zero value
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperrors.Wrap(err, apperrors.CodeValidation, "invalid request body")
	}
	return nil
}
