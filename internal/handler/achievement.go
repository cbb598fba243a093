package handler

import (
	"net/http"

	"github.com/vitatrack/vitatrack/internal/ctxkeys"
	"github.com/vitatrack/vitatrack/internal/service"
)

type achievementHandler struct {
	achievementService *service.AchievementService
}

func NewAchievementHandler(achievementService *service.AchievementService) *achievementHandler {
	return &achievementHandler{achievementService: achievementService}
}

func (h *achievementHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	achievements, err := h.achievementService.Achievements(user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, achievements)
}

// Completed lists only earned achievements, newest first.
func (h *achievementHandler) Completed(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	achievements, err := h.achievementService.Completed(user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, achievements)
}

func (h *achievementHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	achievement, err := h.achievementService.ByID(user.ID, r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, achievement)
}

type achievementCreateRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Color       *string `json:"color"`
	Completed   bool    `json:"completed"`
}

func (h *achievementHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req achievementCreateRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		respondMessage(w, http.StatusBadRequest, "title is required")
		return
	}

	achievement, err := h.achievementService.Create(user.ID, service.AchievementCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
		Completed:   req.Completed,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message":     "achievement created successfully",
		"achievement": achievement,
	})
}

type achievementUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Color       *string `json:"color"`
	Completed   *bool   `json:"completed"`
}

func (h *achievementHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req achievementUpdateRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	achievement, err := h.achievementService.Update(user.ID, r.PathValue("id"), service.AchievementUpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
		Completed:   req.Completed,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":     "achievement updated successfully",
		"achievement": achievement,
	})
}

func (h *achievementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.achievementService.Delete(user.ID, r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "achievement deleted successfully")
}
