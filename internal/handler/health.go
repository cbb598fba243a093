package handler

import (
	"net/http"
	"strconv"

	"github.com/vitatrack/vitatrack/internal/ctxkeys"
	"github.com/vitatrack/vitatrack/internal/repository"
	"github.com/vitatrack/vitatrack/internal/service"
	"github.com/vitatrack/vitatrack/internal/validation"
)

type healthHandler struct {
	healthService *service.HealthService
}

func NewHealthHandler(healthService *service.HealthService) *healthHandler {
	return &healthHandler{healthService: healthService}
}

// List answers the user's health metrics, optionally filtered by
// ?start_date= and ?end_date=.
func (h *healthHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var filter repository.MetricFilter

	var err error
	filter.StartDate, filter.EndDate, err = dateRange(r)
	if err != nil {
		respondError(w, err)
		return
	}

	metrics, err := h.healthService.Metrics(user.ID, filter)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, metrics)
}

func (h *healthHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	metric, err := h.healthService.ByID(user.ID, r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, metric)
}

func (h *healthHandler) Latest(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	metric, err := h.healthService.Latest(user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, metric)
}

type metricCreateRequest struct {
	Date             string   `json:"date"`
	Weight           *float64 `json:"weight"`
	Steps            *int     `json:"steps"`
	CaloriesBurned   *float64 `json:"calories_burned"`
	WorkoutDuration  *int     `json:"workout_duration"`
	SleepDuration    *float64 `json:"sleep_duration"`
	RestingHeartRate *int     `json:"resting_heart_rate"`
}

func (h *healthHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req metricCreateRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Date == "" {
		respondMessage(w, http.StatusBadRequest, "date is required")
		return
	}

	req.Date, err = validation.ValidateDate(req.Date)
	if err != nil {
		respondError(w, err)
		return
	}

	metric, err := h.healthService.Create(user.ID, service.MetricCreateInput{
		Date:             req.Date,
		Weight:           req.Weight,
		Steps:            req.Steps,
		CaloriesBurned:   req.CaloriesBurned,
		WorkoutDuration:  req.WorkoutDuration,
		SleepDuration:    req.SleepDuration,
		RestingHeartRate: req.RestingHeartRate,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "health metric created successfully",
		"metric":  metric,
	})
}

type metricUpdateRequest struct {
	Date             *string  `json:"date"`
	Weight           *float64 `json:"weight"`
	Steps            *int     `json:"steps"`
	CaloriesBurned   *float64 `json:"calories_burned"`
	WorkoutDuration  *int     `json:"workout_duration"`
	SleepDuration    *float64 `json:"sleep_duration"`
	RestingHeartRate *int     `json:"resting_heart_rate"`
}

func (h *healthHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req metricUpdateRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Date != nil {
		normalized, err := validation.ValidateDate(*req.Date)
		if err != nil {
			respondError(w, err)
			return
		}
		req.Date = &normalized
	}

	metric, err := h.healthService.Update(user.ID, r.PathValue("id"), service.MetricUpdateInput{
		Date:             req.Date,
		Weight:           req.Weight,
		Steps:            req.Steps,
		CaloriesBurned:   req.CaloriesBurned,
		WorkoutDuration:  req.WorkoutDuration,
		SleepDuration:    req.SleepDuration,
		RestingHeartRate: req.RestingHeartRate,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "health metric updated successfully",
		"metric":  metric,
	})
}

func (h *healthHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.healthService.Delete(user.ID, r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "health metric deleted successfully")
}

// Stats summarizes the trailing window given by ?days= (default 7).
func (h *healthHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	days := 7
	if d := r.URL.Query().Get("days"); d != "" {
		parsed, err := strconv.Atoi(d)
		if err != nil || parsed <= 0 {
			respondMessage(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = parsed
	}

	stats, err := h.healthService.Stats(user.ID, days)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}
