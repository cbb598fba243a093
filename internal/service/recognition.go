package service

import (
	"context"
	"errors"

	"github.com/vitatrack/vitatrack/internal/recognition"
)

// RecognitionResult is a food estimate tagged with how it was obtained:
// "barcode" for a product-database hit, "ai_model" for a vision estimate.
type RecognitionResult struct {
	recognition.FoodEstimate
	Barcode           string `json:"barcode,omitempty"`
	RecognitionMethod string `json:"recognition_method"`
}

type RecognitionService struct {
	vision   *recognition.VisionClient
	products *recognition.OpenFoodFactsClient
	foodPage *recognition.FoodPageClient
}

func NewRecognitionService(
	vision *recognition.VisionClient,
	products *recognition.OpenFoodFactsClient,
	foodPage *recognition.FoodPageClient,
) *RecognitionService {
	return &RecognitionService{vision: vision, products: products, foodPage: foodPage}
}

// EstimateDiet asks the vision model for a nutrition estimate of a food photo.
func (s *RecognitionService) EstimateDiet(ctx context.Context, image []byte) (*recognition.FoodEstimate, error) {
	return s.vision.Estimate(ctx, image)
}

// BarcodeNutrition decodes the barcode in a photo and scrapes the product
// database for its nutrition label.
func (s *RecognitionService) BarcodeNutrition(ctx context.Context, image []byte) (*recognition.BarcodeNutrition, error) {
	barcode, err := recognition.DecodeBarcode(image)
	if err != nil {
		return nil, err
	}

	return s.foodPage.Lookup(ctx, barcode)
}

// RecognizeFood tries the barcode path first and falls back to the vision
// model when the photo carries no barcode. A decoded barcode that is missing
// from the product database is an error, not a fallback; the caller should
// know the product exists but has no data.
func (s *RecognitionService) RecognizeFood(ctx context.Context, image []byte) (*RecognitionResult, error) {
	barcode, err := recognition.DecodeBarcode(image)
	if err == nil {
		estimate, err := s.products.Product(ctx, barcode)
		if err != nil {
			return nil, err
		}
		return &RecognitionResult{
			FoodEstimate:      *estimate,
			Barcode:           barcode,
			RecognitionMethod: "barcode",
		}, nil
	}
	if !errors.Is(err, recognition.ErrNoBarcode) {
		return nil, err
	}

	estimate, err := s.vision.Estimate(ctx, image)
	if err != nil {
		return nil, err
	}

	return &RecognitionResult{
		FoodEstimate:      *estimate,
		RecognitionMethod: "ai_model",
	}, nil
}
