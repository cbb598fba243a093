package handler

import (
	"net/http"
	"strings"

	"github.com/vitatrack/vitatrack/internal/ctxkeys"
	"github.com/vitatrack/vitatrack/internal/service"
	"github.com/vitatrack/vitatrack/internal/validation"
)

type authHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *authHandler {
	return &authHandler{authService: authService}
}

type registerRequest struct {
	Username      string   `json:"username"`
	Password      string   `json:"password"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	ProfileImage  *string  `json:"profile_image"`
	Height        *float64 `json:"height"`
	CurrentWeight *float64 `json:"current_weight"`
	InitialWeight *float64 `json:"initial_weight"`
	WeightGoal    *float64 `json:"weight_goal"`
	Gender        *string  `json:"gender"`
	Birthday      *string  `json:"birthday"`
}

func (h *authHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" || req.Email == "" {
		respondMessage(w, http.StatusBadRequest, "username, password and email are required")
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

	user, err := h.authService.Register(service.RegisterInput{
		Username:      req.Username,
		Password:      req.Password,
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

	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "user registered successfully",
		"user":    user,
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		respondMessage(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, token, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "login successful",
		"token":   token,
		"user":    user,
	})
}

// Logout is an acknowledgment only. Tokens are stateless; clients discard
// theirs, and a password change invalidates everything issued before it.
func (h *authHandler) Logout(w http.ResponseWriter, r *http.Request) {
	respondMessage(w, http.StatusOK, "logged out")
}

func (h *authHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	respondJSON(w, http.StatusOK, user)
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (h *authHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	if user.ID != r.PathValue("id") {
		respondError(w, service.ErrForbidden)
		return
	}

	var req changePasswordRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		respondMessage(w, http.StatusBadRequest, "old_password and new_password are required")
		return
	}

	err = h.authService.ChangePassword(user.ID, req.OldPassword, req.NewPassword)
	if err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "password changed successfully")
}
