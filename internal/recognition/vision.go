package recognition

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

const visionPrompt = `Analyze the food in this photo and estimate its nutrition. ` +
	`Respond with strict JSON only, no commentary, in the shape: ` +
	`{"food_name": string, "weight": number (grams), "calories": number (kcal), ` +
	`"protein": number (g), "fat": number (g), "carbohydrate": number (g)}. ` +
	`If several foods are visible, sum them and name the dish.`

// Models often wrap their JSON in a markdown fence despite instructions.
var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// VisionClient estimates food nutrition from a photo via an OpenAI-style
// chat-completions endpoint.
type VisionClient struct {
	url    string
	key    string
	model  string
	client *http.Client
}

func NewVisionClient(url, key, model string, timeout time.Duration) *VisionClient {
	return &VisionClient{
		url:    url,
		key:    key,
		model:  model,
		client: &http.Client{Timeout: timeout},
	}
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []chatContent `json:"content"`
}

type chatContent struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *chatImageURL `json:"image_url,omitempty"`
}

type chatImageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Estimate sends the image to the vision model and parses the JSON estimate
// out of its reply. Transient upstream failures are retried once.
func (c *VisionClient) Estimate(ctx context.Context, image []byte) (*FoodEstimate, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{{
			Role: "user",
			Content: []chatContent{
				{Type: "text", Text: visionPrompt},
				{Type: "image_url", ImageURL: &chatImageURL{
					URL: "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(image),
				}},
			},
		}},
		MaxTokens: 512,
	})
	if err != nil {
		return nil, err
	}

	var estimate *FoodEstimate
	backoff := retry.WithMaxRetries(1, retry.NewConstant(time.Second))

	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		estimate, err = c.estimateOnce(ctx, body)
		if err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		slog.Error("vision estimate failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return estimate, nil
}

func (c *VisionClient) estimateOnce(ctx context.Context, body []byte) (*FoodEstimate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.key)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("vision api returned %d: %s", resp.StatusCode, payload)
	}

	var chat chatResponse
	err = json.NewDecoder(resp.Body).Decode(&chat)
	if err != nil {
		return nil, err
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("vision api returned no choices")
	}

	return parseEstimate(chat.Choices[0].Message.Content)
}

func parseEstimate(content string) (*FoodEstimate, error) {
	if m := fencedJSON.FindStringSubmatch(content); m != nil {
		content = m[1]
	}
	content = strings.TrimSpace(content)

	estimate := &FoodEstimate{}
	err := json.Unmarshal([]byte(content), estimate)
	if err != nil {
		return nil, fmt.Errorf("unparseable vision reply: %w", err)
	}
	if estimate.FoodName == "" {
		return nil, fmt.Errorf("vision reply missing food_name")
	}

	return estimate, nil
}
