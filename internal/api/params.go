package api

import (
	"net/http"
	"strconv"

	apperrors "github.com/Taichi-iskw/tagscribe/internal/errors"
)

func queryInt(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperrors.Newf(apperrors.CodeValidation, "query parameter %s must be an integer", name).
			WithDetails(map[string]any{"value": raw})
	}
	return &v, nil
}

func queryBool(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperrors.Newf(apperrors.CodeValidation, "query parameter %s must be a boolean", name).
			WithDetails(map[string]any{"value": raw})
	}
	return v, nil
}

func queryString(r *http.Request, name string) *string {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	return &raw
}

func intOr(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}
