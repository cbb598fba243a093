package handler

import (
	"encoding/base64"
	"net/http"

	"github.com/vitatrack/vitatrack/internal/service"
)

type recognitionHandler struct {
	recognitionService *service.RecognitionService
}

func NewRecognitionHandler(recognitionService *service.RecognitionService) *recognitionHandler {
	return &recognitionHandler{recognitionService: recognitionService}
}

type imageRequest struct {
	Image string `json:"image"` // base64-encoded photo
}

func (h *recognitionHandler) decodeImage(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	var req imageRequest
	err := decodeJSON(r, &req)
	if err != nil || req.Image == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "missing image data"})
		return nil, false
	}

	image, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "image is not valid base64"})
		return nil, false
	}

	return image, true
}

// EstimateDiet asks the vision model for a nutrition estimate of a food photo.
func (h *recognitionHandler) EstimateDiet(w http.ResponseWriter, r *http.Request) {
	image, ok := h.decodeImage(w, r)
	if !ok {
		return
	}

	estimate, err := h.recognitionService.EstimateDiet(r.Context(), image)
	if err != nil {
		respondRecognitionError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, estimate)
}

// BarcodeNutrition scans a photo for a barcode and scrapes the product
// database for its nutrition label.
func (h *recognitionHandler) BarcodeNutrition(w http.ResponseWriter, r *http.Request) {
	image, ok := h.decodeImage(w, r)
	if !ok {
		return
	}

	nutrition, err := h.recognitionService.BarcodeNutrition(r.Context(), image)
	if err != nil {
		respondRecognitionError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, nutrition)
}

// RecognizeFood tries the barcode path first and falls back to the vision
// model when the photo carries no barcode.
func (h *recognitionHandler) RecognizeFood(w http.ResponseWriter, r *http.Request) {
	image, ok := h.decodeImage(w, r)
	if !ok {
		return
	}

	result, err := h.recognitionService.RecognizeFood(r.Context(), image)
	if err != nil {
		respondRecognitionError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
