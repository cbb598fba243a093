package handler

import (
	"net/http"

	"github.com/vitatrack/vitatrack/internal/ctxkeys"
	"github.com/vitatrack/vitatrack/internal/repository"
	"github.com/vitatrack/vitatrack/internal/service"
	"github.com/vitatrack/vitatrack/internal/validation"
)

type mealHandler struct {
	mealService *service.MealService
}

func NewMealHandler(mealService *service.MealService) *mealHandler {
	return &mealHandler{mealService: mealService}
}

// List answers the user's meals, optionally filtered by ?start_date=,
// ?end_date= and ?type=.
func (h *mealHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	filter := repository.MealFilter{Type: r.URL.Query().Get("type")}

	var err error
	filter.StartDate, filter.EndDate, err = dateRange(r)
	if err != nil {
		respondError(w, err)
		return
	}

	meals, err := h.mealService.Meals(user.ID, filter)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, meals)
}

func (h *mealHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	meal, err := h.mealService.ByID(user.ID, r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, meal)
}

type foodRequest struct {
	Name     string   `json:"name"`
	Amount   *string  `json:"amount"`
	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fat      *float64 `json:"fat"`
}

type mealCreateRequest struct {
	Date          string        `json:"date"`
	Type          string        `json:"type"`
	Time          *string       `json:"time"`
	TotalCalories float64       `json:"total_calories"`
	Completed     bool          `json:"completed"`
	Foods         []foodRequest `json:"foods"`
}

func (h *mealHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req mealCreateRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Date == "" || req.Type == "" {
		respondMessage(w, http.StatusBadRequest, "date and type are required")
		return
	}

	req.Date, err = validation.ValidateDate(req.Date)
	if err != nil {
		respondError(w, err)
		return
	}
	in := service.MealCreateInput{
		Date:          req.Date,
		Type:          req.Type,
		Time:          req.Time,
		TotalCalories: req.TotalCalories,
		Completed:     req.Completed,
	}
	for _, f := range req.Foods {
		// nameless entries are skipped rather than rejected
		if f.Name == "" {
			continue
		}
		in.Foods = append(in.Foods, service.FoodInput{
			Name:     f.Name,
			Amount:   f.Amount,
			Calories: f.Calories,
			Protein:  f.Protein,
			Carbs:    f.Carbs,
			Fat:      f.Fat,
		})
	}

	meal, err := h.mealService.Create(user.ID, in)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "meal created successfully",
		"meal":    meal,
	})
}

type mealUpdateRequest struct {
	Date          *string  `json:"date"`
	Type          *string  `json:"type"`
	Time          *string  `json:"time"`
	TotalCalories *float64 `json:"total_calories"`
	Completed     *bool    `json:"completed"`
}

func (h *mealHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req mealUpdateRequest
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

	meal, err := h.mealService.Update(user.ID, r.PathValue("id"), service.MealUpdateInput{
		Date:          req.Date,
		Type:          req.Type,
		Time:          req.Time,
		TotalCalories: req.TotalCalories,
		Completed:     req.Completed,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "meal updated successfully",
		"meal":    meal,
	})
}

func (h *mealHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.mealService.Delete(user.ID, r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "meal deleted successfully")
}

func (h *mealHandler) AddFood(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req foodRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		respondMessage(w, http.StatusBadRequest, "name is required")
		return
	}

	food, err := h.mealService.AddFood(user.ID, r.PathValue("id"), service.FoodInput{
		Name:     req.Name,
		Amount:   req.Amount,
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fat:      req.Fat,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "food added successfully",
		"food":    food,
	})
}

type foodUpdateRequest struct {
	Name     *string  `json:"name"`
	Amount   *string  `json:"amount"`
	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fat      *float64 `json:"fat"`
}

func (h *mealHandler) UpdateFood(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req foodUpdateRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	food, err := h.mealService.UpdateFood(user.ID, r.PathValue("id"), service.FoodUpdateInput{
		Name:     req.Name,
		Amount:   req.Amount,
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fat:      req.Fat,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "food updated successfully",
		"food":    food,
	})
}

func (h *mealHandler) DeleteFood(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.mealService.DeleteFood(user.ID, r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "food deleted successfully")
}

// dateRange validates the optional ?start_date= and ?end_date= query
// parameters shared by the listing endpoints.
func dateRange(r *http.Request) (start, end string, err error) {
	if s := r.URL.Query().Get("start_date"); s != "" {
		start, err = validation.ValidateDate(s)
		if err != nil {
			return "", "", err
		}
	}
	if e := r.URL.Query().Get("end_date"); e != "" {
		end, err = validation.ValidateDate(e)
		if err != nil {
			return "", "", err
		}
	}
	return start, end, nil
}
