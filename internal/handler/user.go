package handler

import (
	"net/http"

	"github.com/vitatrack/vitatrack/internal/ctxkeys"
	"github.com/vitatrack/vitatrack/internal/service"
	"github.com/vitatrack/vitatrack/internal/validation"
)

type userHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *userHandler {
	return &userHandler{userService: userService}
}

func (h *userHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.All()
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, users)
}

// Get serves a profile. Users can only read themselves.
func (h *userHandler) Get(w http.ResponseWriter, r *http.Request) {
	current := ctxkeys.User(r.Context())
	if current.ID != r.PathValue("id") {
		respondError(w, service.ErrForbidden)
		return
	}

	user, err := h.userService.ByID(r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

type userUpdateRequest struct {
	Name          *string  `json:"name"`
	Email         *string  `json:"email"`
	ProfileImage  *string  `json:"profile_image"`
	Height        *float64 `json:"height"`
	CurrentWeight *float64 `json:"current_weight"`
	InitialWeight *float64 `json:"initial_weight"`
	WeightGoal    *float64 `json:"weight_goal"`
	Gender        *string  `json:"gender"`
	Birthday      *string  `json:"birthday"`
}

// Update edits a profile. Users can only edit themselves.
func (h *userHandler) Update(w http.ResponseWriter, r *http.Request) {
	current := ctxkeys.User(r.Context())
	if current.ID != r.PathValue("id") {
		respondError(w, service.ErrForbidden)
		return
	}

	var req userUpdateRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Birthday != nil {
		normalized, err := validation.ValidateDate(*req.Birthday)
		if err != nil {
			respondError(w, err)
			return
		}
		req.Birthday = &normalized
	}

	user, err := h.userService.Update(current.ID, service.UserUpdateInput{
		Name:          req.Name,
		Email:         req.Email,
		ProfileImage:  req.ProfileImage,
		Height:        req.Height,
		CurrentWeight: req.CurrentWeight,
		InitialWeight: req.InitialWeight,
		WeightGoal:    req.WeightGoal,
		Gender:        req.Gender,
		Birthday:      req.Birthday,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "user updated successfully",
		"user":    user,
	})
}

func (h *userHandler) Delete(w http.ResponseWriter, r *http.Request) {
	current := ctxkeys.User(r.Context())
	if current.ID != r.PathValue("id") {
		respondError(w, service.ErrForbidden)
		return
	}

	err := h.userService.Delete(current.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "user deleted successfully")
}
