// Package recognition wraps the external food-recognition backends: a vision
// model for photo estimates, barcode decoding, and two product databases for
// nutrition lookups. Every outbound call carries a timeout and a single retry.
package recognition

import "errors"

var (
	// ErrNoBarcode means the image holds no barcode a reader could decode.
	ErrNoBarcode = errors.New("no barcode found in image")
	// ErrProductNotFound means the product database has no entry for a barcode.
	ErrProductNotFound = errors.New("product not found")
	// ErrUnavailable means the upstream service failed after retrying.
	ErrUnavailable = errors.New("recognition service unavailable")
)

// FoodEstimate is the normalized answer every backend reduces to: a food name
// plus per-portion macros.
type FoodEstimate struct {
	FoodName     string   `json:"food_name"`
	Weight       *float64 `json:"weight"` // grams
	Calories     *float64 `json:"calories"`
	Protein      *float64 `json:"protein"`
	Fat          *float64 `json:"fat"`
	Carbohydrate *float64 `json:"carbohydrate"`
}
