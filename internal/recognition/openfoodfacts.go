package recognition

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

// OpenFoodFactsClient looks up packaged-product nutrition by barcode in the
// Open Food Facts database.
type OpenFoodFactsClient struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

func NewOpenFoodFactsClient(baseURL, userAgent string, timeout time.Duration) *OpenFoodFactsClient {
	return &OpenFoodFactsClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

type offResponse struct {
	Status  int `json:"status"`
	Product struct {
		ProductName string   `json:"product_name"`
		Quantity    string   `json:"quantity"`
		Nutriments  struct {
			EnergyKcal    *float64 `json:"energy-kcal_100g"`
			Proteins      *float64 `json:"proteins_100g"`
			Fat           *float64 `json:"fat_100g"`
			Carbohydrates *float64 `json:"carbohydrates_100g"`
		} `json:"nutriments"`
	} `json:"product"`
}

// Product returns the per-100g nutrition for a barcode, or ErrProductNotFound
// when the database has no entry.
func (c *OpenFoodFactsClient) Product(ctx context.Context, barcode string) (*FoodEstimate, error) {
	url := fmt.Sprintf("%s/api/v2/product/%s.json", c.baseURL, barcode)

	var off offResponse
	backoff := retry.WithMaxRetries(1, retry.NewConstant(time.Second))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.client.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			// v2 answers 404 with a status=0 body for unknown codes.
			off.Status = 0
			return nil
		}
		if resp.StatusCode != http.StatusOK {
			return retry.RetryableError(fmt.Errorf("openfoodfacts returned %d", resp.StatusCode))
		}

		return json.NewDecoder(resp.Body).Decode(&off)
	})
	if err != nil {
		slog.Error("openfoodfacts lookup failed", "barcode", barcode, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if off.Status == 0 || off.Product.ProductName == "" {
		return nil, ErrProductNotFound
	}

	estimate := &FoodEstimate{
		FoodName:     off.Product.ProductName,
		Calories:     off.Product.Nutriments.EnergyKcal,
		Protein:      off.Product.Nutriments.Proteins,
		Fat:          off.Product.Nutriments.Fat,
		Carbohydrate: off.Product.Nutriments.Carbohydrates,
	}
	if grams := parseQuantityGrams(off.Product.Quantity); grams > 0 {
		estimate.Weight = &grams
	}

	return estimate, nil
}

// parseQuantityGrams pulls the leading number out of quantity strings like
// "500 g" or "1.5kg". Anything unparseable yields 0.
func parseQuantityGrams(quantity string) float64 {
	quantity = strings.TrimSpace(quantity)
	if quantity == "" {
		return 0
	}

	i := 0
	for i < len(quantity) && (quantity[i] == '.' || (quantity[i] >= '0' && quantity[i] <= '9')) {
		i++
	}
	value, err := strconv.ParseFloat(quantity[:i], 64)
	if err != nil {
		return 0
	}

	unit := strings.ToLower(strings.TrimSpace(quantity[i:]))
	if strings.HasPrefix(unit, "kg") {
		return value * 1000
	}
	return value
}
