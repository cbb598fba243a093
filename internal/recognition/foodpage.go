package recognition

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sethvargo/go-retry"
)

// BarcodeNutrition is a scraped product page: the raw label table plus the
// calorie row when one could be picked out.
type BarcodeNutrition struct {
	Barcode       string            `json:"barcode"`
	ProductName   string            `json:"product_name"`
	Calories      *string           `json:"calories"`
	NutritionData map[string]string `json:"nutrition_data"`
	SourceURL     string            `json:"source_url"`
}

// Label rows that name the energy content, in the languages the product
// database serves.
var calorieMarkers = []string{"热量", "能量", "卡路里", "energy", "calorie"}

// FoodPageClient scrapes a food-product database site: a barcode search page
// followed by the first hit's detail page.
type FoodPageClient struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

func NewFoodPageClient(baseURL, userAgent string, timeout time.Duration) *FoodPageClient {
	return &FoodPageClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

// Lookup searches the product database for a barcode and scrapes the first
// matching product's nutrition label.
func (c *FoodPageClient) Lookup(ctx context.Context, barcode string) (*BarcodeNutrition, error) {
	searchURL := fmt.Sprintf("%s/s/?q=%s", c.baseURL, url.QueryEscape(barcode))

	searchDoc, err := c.fetch(ctx, searchURL)
	if err != nil {
		slog.Error("food page search failed", "barcode", barcode, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	href, ok := searchDoc.Find("h3.search-list-title a").First().Attr("href")
	if !ok {
		return nil, ErrProductNotFound
	}
	productURL := href
	if strings.HasPrefix(href, "/") {
		productURL = c.baseURL + href
	}

	productDoc, err := c.fetch(ctx, productURL)
	if err != nil {
		slog.Error("food page fetch failed", "url", productURL, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	result := &BarcodeNutrition{
		Barcode:       barcode,
		ProductName:   strings.TrimSpace(productDoc.Find("h1.detail-title").First().Text()),
		NutritionData: map[string]string{},
		SourceURL:     productURL,
	}

	productDoc.Find("table.table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td, th")
		if cells.Length() < 2 {
			return
		}
		key := strings.TrimSpace(cells.Eq(0).Text())
		value := strings.TrimSpace(cells.Eq(1).Text())
		if key != "" {
			result.NutritionData[key] = value
		}
	})

	for key, value := range result.NutritionData {
		if isCalorieRow(key) {
			v := value
			result.Calories = &v
			break
		}
	}

	return result, nil
}

func (c *FoodPageClient) fetch(ctx context.Context, rawURL string) (*goquery.Document, error) {
	var doc *goquery.Document
	backoff := retry.WithMaxRetries(1, retry.NewConstant(time.Second))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.client.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return retry.RetryableError(fmt.Errorf("food page returned %d", resp.StatusCode))
		}

		doc, err = goquery.NewDocumentFromReader(resp.Body)
		return err
	})
	if err != nil {
		return nil, err
	}

	return doc, nil
}

func isCalorieRow(key string) bool {
	lower := strings.ToLower(key)
	for _, marker := range calorieMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
