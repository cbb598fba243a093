package recognition

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatReply(content string) []byte {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	return body
}

func TestVisionEstimateParsesFencedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 1)

		w.Write(chatReply("```json\n{\"food_name\": \"corn\", \"weight\": 150, \"calories\": 130}\n```"))
	}))
	defer server.Close()

	client := NewVisionClient(server.URL, "test-key", "test-model", 5*time.Second)

	estimate, err := client.Estimate(context.Background(), []byte("fake-image"))
	require.NoError(t, err)

	assert.Equal(t, "corn", estimate.FoodName)
	assert.Equal(t, 150.0, *estimate.Weight)
	assert.Equal(t, 130.0, *estimate.Calories)
}

func TestVisionEstimateAcceptsBareJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(chatReply(`{"food_name": "apple", "calories": 95}`))
	}))
	defer server.Close()

	client := NewVisionClient(server.URL, "k", "m", 5*time.Second)

	estimate, err := client.Estimate(context.Background(), []byte("fake-image"))
	require.NoError(t, err)
	assert.Equal(t, "apple", estimate.FoodName)
}

func TestVisionEstimateRetriesOnce(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write(chatReply(`{"food_name": "rice", "calories": 200}`))
	}))
	defer server.Close()

	client := NewVisionClient(server.URL, "k", "m", 5*time.Second)

	estimate, err := client.Estimate(context.Background(), []byte("fake-image"))
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "rice", estimate.FoodName)
}

func TestVisionEstimateGivesUpAfterRetry(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewVisionClient(server.URL, "k", "m", 5*time.Second)

	_, err := client.Estimate(context.Background(), []byte("fake-image"))
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 2, calls, "one retry, then give up")
}

func TestParseEstimateRejectsNonJSON(t *testing.T) {
	_, err := parseEstimate("I think that's a sandwich.")
	assert.Error(t, err)

	_, err = parseEstimate(`{"weight": 100}`)
	assert.Error(t, err, "a nameless estimate is useless")
}
