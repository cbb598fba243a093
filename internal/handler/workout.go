package handler

import (
	"net/http"
	"strconv"

	"github.com/vitatrack/vitatrack/internal/ctxkeys"
	"github.com/vitatrack/vitatrack/internal/repository"
	"github.com/vitatrack/vitatrack/internal/service"
	"github.com/vitatrack/vitatrack/internal/validation"
)

type workoutHandler struct {
	workoutService *service.WorkoutService
}

func NewWorkoutHandler(workoutService *service.WorkoutService) *workoutHandler {
	return &workoutHandler{workoutService: workoutService}
}

// List answers the user's workouts, optionally filtered by ?start_date=,
// ?end_date= and ?completed=.
func (h *workoutHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var filter repository.WorkoutFilter

	var err error
	filter.StartDate, filter.EndDate, err = dateRange(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if c := r.URL.Query().Get("completed"); c != "" {
		completed, err := strconv.ParseBool(c)
		if err != nil {
			respondMessage(w, http.StatusBadRequest, "completed must be true or false")
			return
		}
		filter.Completed = &completed
	}

	workouts, err := h.workoutService.Workouts(user.ID, filter)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, workouts)
}

func (h *workoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	workout, err := h.workoutService.ByID(user.ID, r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, workout)
}

type exerciseRequest struct {
	Name      string  `json:"name"`
	Sets      *int    `json:"sets"`
	Reps      *int    `json:"reps"`
	Weight    *string `json:"weight"`
	Completed bool    `json:"completed"`
}

type workoutCreateRequest struct {
	Name           string            `json:"name"`
	Date           string            `json:"date"`
	Time           *string           `json:"time"`
	Duration       *int              `json:"duration"`
	CaloriesBurned *float64          `json:"calories_burned"`
	Completed      bool              `json:"completed"`
	Exercises      []exerciseRequest `json:"exercises"`
}

func (h *workoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req workoutCreateRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Date == "" {
		respondMessage(w, http.StatusBadRequest, "name and date are required")
		return
	}

	req.Date, err = validation.ValidateDate(req.Date)
	if err != nil {
		respondError(w, err)
		return
	}
	for _, e := range req.Exercises {
		if e.Name == "" {
			respondMessage(w, http.StatusBadRequest, "every exercise needs a name")
			return
		}
	}

	in := service.WorkoutCreateInput{
		Name:           req.Name,
		Date:           req.Date,
		Time:           req.Time,
		Duration:       req.Duration,
		CaloriesBurned: req.CaloriesBurned,
		Completed:      req.Completed,
	}
	for _, e := range req.Exercises {
		in.Exercises = append(in.Exercises, service.ExerciseInput{
			Name:      e.Name,
			Sets:      e.Sets,
			Reps:      e.Reps,
			Weight:    e.Weight,
			Completed: e.Completed,
		})
	}

	workout, err := h.workoutService.Create(user.ID, in)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "workout created successfully",
		"workout": workout,
	})
}

type workoutUpdateRequest struct {
	Name           *string  `json:"name"`
	Date           *string  `json:"date"`
	Time           *string  `json:"time"`
	Duration       *int     `json:"duration"`
	CaloriesBurned *float64 `json:"calories_burned"`
	Completed      *bool    `json:"completed"`
}

func (h *workoutHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req workoutUpdateRequest
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

	workout, err := h.workoutService.Update(user.ID, r.PathValue("id"), service.WorkoutUpdateInput{
		Name:           req.Name,
		Date:           req.Date,
		Time:           req.Time,
		Duration:       req.Duration,
		CaloriesBurned: req.CaloriesBurned,
		Completed:      req.Completed,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "workout updated successfully",
		"workout": workout,
	})
}

func (h *workoutHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.workoutService.Delete(user.ID, r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "workout deleted successfully")
}

func (h *workoutHandler) AddExercise(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req exerciseRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		respondMessage(w, http.StatusBadRequest, "name is required")
		return
	}

	exercise, err := h.workoutService.AddExercise(user.ID, r.PathValue("id"), service.ExerciseInput{
		Name:      req.Name,
		Sets:      req.Sets,
		Reps:      req.Reps,
		Weight:    req.Weight,
		Completed: req.Completed,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message":  "exercise added successfully",
		"exercise": exercise,
	})
}

type exerciseUpdateRequest struct {
	Name      *string `json:"name"`
	Sets      *int    `json:"sets"`
	Reps      *int    `json:"reps"`
	Weight    *string `json:"weight"`
	Completed *bool   `json:"completed"`
}

func (h *workoutHandler) UpdateExercise(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req exerciseUpdateRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	exercise, err := h.workoutService.UpdateExercise(user.ID, r.PathValue("id"), service.ExerciseUpdateInput{
		Name:      req.Name,
		Sets:      req.Sets,
		Reps:      req.Reps,
		Weight:    req.Weight,
		Completed: req.Completed,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":  "exercise updated successfully",
		"exercise": exercise,
	})
}

func (h *workoutHandler) DeleteExercise(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.workoutService.DeleteExercise(user.ID, r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "exercise deleted successfully")
}

// Stats answers the user's rolling workout counters.
func (h *workoutHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	stats, err := h.workoutService.UserStats(user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}
