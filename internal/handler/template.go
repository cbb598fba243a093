package handler

import (
	"net/http"

	"github.com/vitatrack/vitatrack/internal/ctxkeys"
	"github.com/vitatrack/vitatrack/internal/repository"
	"github.com/vitatrack/vitatrack/internal/service"
)

type templateHandler struct {
	templateService *service.TemplateService
}

func NewTemplateHandler(templateService *service.TemplateService) *templateHandler {
	return &templateHandler{templateService: templateService}
}

// List answers the template catalog, optionally filtered by ?difficulty= and
// ?target_area=.
func (h *templateHandler) List(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templateService.Templates(repository.TemplateFilter{
		Difficulty: r.URL.Query().Get("difficulty"),
		TargetArea: r.URL.Query().Get("target_area"),
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, templates)
}

func (h *templateHandler) Get(w http.ResponseWriter, r *http.Request) {
	template, err := h.templateService.ByID(r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, template)
}

type templateCreateRequest struct {
	Name              string  `json:"name"`
	Description       *string `json:"description"`
	Difficulty        *string `json:"difficulty"`
	EstimatedDuration *int    `json:"estimated_duration"`
	TargetArea        *string `json:"target_area"`
}

func (h *templateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req templateCreateRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		respondMessage(w, http.StatusBadRequest, "name is required")
		return
	}

	template, err := h.templateService.Create(service.TemplateCreateInput{
		Name:              req.Name,
		Description:       req.Description,
		Difficulty:        req.Difficulty,
		EstimatedDuration: req.EstimatedDuration,
		TargetArea:        req.TargetArea,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message":  "workout template created successfully",
		"template": template,
	})
}

type templateUpdateRequest struct {
	Name              *string `json:"name"`
	Description       *string `json:"description"`
	Difficulty        *string `json:"difficulty"`
	EstimatedDuration *int    `json:"estimated_duration"`
	TargetArea        *string `json:"target_area"`
}

func (h *templateHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req templateUpdateRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	template, err := h.templateService.Update(r.PathValue("id"), service.TemplateUpdateInput{
		Name:              req.Name,
		Description:       req.Description,
		Difficulty:        req.Difficulty,
		EstimatedDuration: req.EstimatedDuration,
		TargetArea:        req.TargetArea,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":  "workout template updated successfully",
		"template": template,
	})
}

func (h *templateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.templateService.Delete(r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "workout template deleted successfully")
}

// StartWorkout creates a fresh workout for the user from a template.
func (h *templateHandler) StartWorkout(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	workout, err := h.templateService.StartWorkout(user.ID, r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "workout created from template",
		"workout": workout,
	})
}
