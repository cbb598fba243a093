package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vitatrack/vitatrack/internal/recognition"
	"github.com/vitatrack/vitatrack/internal/repository"
	"github.com/vitatrack/vitatrack/internal/service"
	"github.com/vitatrack/vitatrack/internal/validation"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondError maps the service and repository sentinels onto HTTP statuses.
// Anything unmapped is a 500 with the detail kept in the log, not the body.
func respondError(w http.ResponseWriter, err error) {
	var invalid *validation.Error

	switch {
	case errors.As(err, &invalid):
		respondMessage(w, http.StatusBadRequest, invalid.Message)

	case errors.Is(err, service.ErrWrongPassword),
		errors.Is(err, service.ErrInvalidToken):
		respondMessage(w, http.StatusUnauthorized, err.Error())

	case errors.Is(err, service.ErrForbidden):
		respondMessage(w, http.StatusForbidden, "you do not have access to this resource")

	case errors.Is(err, service.ErrUnknownUser),
		errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrMealNotFound),
		errors.Is(err, repository.ErrFoodNotFound),
		errors.Is(err, repository.ErrWorkoutNotFound),
		errors.Is(err, repository.ErrExerciseNotFound),
		errors.Is(err, repository.ErrMetricNotFound),
		errors.Is(err, repository.ErrAchievementNotFound),
		errors.Is(err, repository.ErrTemplateNotFound),
		errors.Is(err, repository.ErrUserStatNotFound):
		respondMessage(w, http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, repository.ErrDuplicateUser),
		errors.Is(err, repository.ErrMetricDateConflict),
		errors.Is(err, repository.ErrDuplicateAchievement):
		respondMessage(w, http.StatusConflict, err.Error())

	default:
		slog.Error("request failed", "error", err)
		respondMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

// respondRecognitionError is the error shape of the recognition endpoints,
// which answer {"error": ...} rather than {"message": ...}.
func respondRecognitionError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, recognition.ErrNoBarcode),
		errors.Is(err, recognition.ErrProductNotFound):
		status = http.StatusNotFound
	case errors.Is(err, recognition.ErrUnavailable):
		status = http.StatusBadGateway
	default:
		slog.Error("recognition request failed", "error", err)
		err = errors.New("internal server error")
	}

	respondJSON(w, status, map[string]string{"error": err.Error()})
}

// decodeJSON reads the request body into dst, rejecting bodies that are not
// valid JSON.
func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
