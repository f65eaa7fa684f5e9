package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"nutrisnap/internal/ai"
	applog "nutrisnap/internal/log"
	"nutrisnap/internal/meal"
	"nutrisnap/internal/meals"
	"nutrisnap/internal/nutrition"
	"nutrisnap/models"
)

const maxJSONBody = 1 << 20

var (
	errInvalidDate        = errors.New("invalid date")
	errUploadTooLarge     = errors.New("upload too large")
	errSessionUnavailable = errors.New("sessions are not configured")
	errInvalidRequest     = errors.New("invalid request")
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// decodeJSON reads a single JSON object from the request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, target any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return fmt.Errorf("%w: %w", errInvalidRequest, err)
	}
	return nil
}

// respondError maps domain errors onto HTTP statuses. Unknown errors are
// logged and reported as internal errors.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		usage  *nutrition.UsageError
		domain *nutrition.DomainError
	)
	switch {
	case errors.Is(err, meal.ErrItemNotFound):
		writeJSONError(w, http.StatusNotFound, "draft item not found")
	case errors.Is(err, meals.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "meal not found")
	case errors.As(err, &usage):
		writeJSONError(w, http.StatusBadRequest, usage.Msg)
	case errors.As(err, &domain):
		writeJSONError(w, http.StatusUnprocessableEntity, domain.Msg)
	case errors.Is(err, errInvalidDate), errors.Is(err, meals.ErrInvalidDate):
		writeJSONError(w, http.StatusBadRequest, "dates must use the YYYY-MM-DD format and from must not be after to")
	case errors.Is(err, errInvalidRequest):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, errUploadTooLarge):
		writeJSONError(w, http.StatusRequestEntityTooLarge, "upload too large")
	case errors.Is(err, ai.ErrUnsupportedImage):
		writeJSONError(w, http.StatusUnsupportedMediaType, "upload a JPEG, PNG or WebP photo")
	case errors.Is(err, ai.ErrNoFoodIdentified):
		writeJSONError(w, http.StatusUnprocessableEntity, "no food items were identified; try a clearer photo")
	case errors.Is(err, errSessionUnavailable):
		writeJSONError(w, http.StatusServiceUnavailable, "sessions are not available")
	case errors.Is(err, context.DeadlineExceeded):
		applog.Error(r.Context(), "upstream timed out", "path", r.URL.Path, "error", err)
		writeJSONError(w, http.StatusGatewayTimeout, "upstream service timed out")
	default:
		applog.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "internal error")
	}
}

// parseDay reads a YYYY-MM-DD value. An empty value means today.
func parseDay(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		current := now().UTC()
		return time.Date(current.Year(), current.Month(), current.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	day, err := time.Parse(models.DateLayout, value)
	if err != nil {
		return time.Time{}, errInvalidDate
	}
	return day, nil
}

func requireDatabase(w http.ResponseWriter, r *http.Request) bool {
	if database == nil {
		applog.Debug(r.Context(), "request without database", "path", r.URL.Path)
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return false
	}
	return true
}

func splitPath(path, prefix string) []string {
	path = strings.Trim(strings.TrimPrefix(path, prefix), "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
