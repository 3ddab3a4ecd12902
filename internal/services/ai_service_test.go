// internal/services/ai_service_test.go
package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventra/inventra-backend/internal/config"
)

func newFakeAIServer(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": reply}},
			},
		})
	}))
}

func newTestAIService(baseURL string) *AIService {
	return NewAIService(config.AIConfig{
		APIKey:    "test-key",
		BaseURL:   baseURL,
		Model:     "test-model",
		MaxTokens: 100,
		Timeout:   5,
	})
}

func TestGenerateDescriptionStripsQuotes(t *testing.T) {
	server := newFakeAIServer(t, `"Compact ergonomic wireless mouse with long battery life."`)
	defer server.Close()

	s := newTestAIService(server.URL)
	out, err := s.GenerateDescription(context.Background(), "Wireless Mouse", "Electronics")
	require.NoError(t, err)
	assert.Equal(t, "Compact ergonomic wireless mouse with long battery life.", out)
}

func TestAIServiceDisabledWithoutKey(t *testing.T) {
	s := NewAIService(config.AIConfig{Timeout: 5})

	assert.False(t, s.Enabled())
	_, err := s.GenerateDescription(context.Background(), "Widget", "")
	assert.ErrorIs(t, err, ErrAIUnavailable)
}

func TestAIServiceProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "rate limited"},
		})
	}))
	defer server.Close()

	s := newTestAIService(server.URL)
	_, err := s.GenerateDescription(context.Background(), "Widget", "")
	assert.ErrorIs(t, err, ErrAIUnavailable)
}

func TestNaturalLanguageSearch(t *testing.T) {
	reply := "```json\n" + `{"search":"mouse","category":"electronics","minPrice":"10","stockStatus":"low","sortBy":"price","sortOrder":"desc"}` + "\n```"
	server := newFakeAIServer(t, reply)
	defer server.Close()

	s := newTestAIService(server.URL)
	filters, err := s.NaturalLanguageSearch(context.Background(), "cheap mice running low", []string{"Electronics", "Office"})
	require.NoError(t, err)

	assert.Equal(t, "mouse", filters.Search)
	// Category is matched case-insensitively and normalized to the known name.
	assert.Equal(t, "Electronics", filters.Category)
	require.NotNil(t, filters.MinPrice)
	assert.Equal(t, "10", *filters.MinPrice)
	assert.Equal(t, "low", filters.StockStatus)
	assert.Equal(t, "price", filters.SortBy)
	assert.Equal(t, "desc", filters.SortOrder)
}

func TestNaturalLanguageSearchDropsInventedValues(t *testing.T) {
	reply := `{"category":"Gadgets","minPrice":"lots","stockStatus":"plenty","sortBy":"password_hash","sortOrder":"random"}`
	server := newFakeAIServer(t, reply)
	defer server.Close()

	s := newTestAIService(server.URL)
	filters, err := s.NaturalLanguageSearch(context.Background(), "whatever", []string{"Electronics"})
	require.NoError(t, err)

	assert.Empty(t, filters.Category)
	assert.Nil(t, filters.MinPrice)
	assert.Empty(t, filters.StockStatus)
	assert.Empty(t, filters.SortBy)
	assert.Empty(t, filters.SortOrder)
}

func TestNaturalLanguageSearchUnparseable(t *testing.T) {
	server := newFakeAIServer(t, "I could not understand that query.")
	defer server.Close()

	s := newTestAIService(server.URL)
	_, err := s.NaturalLanguageSearch(context.Background(), "query", nil)
	assert.ErrorIs(t, err, ErrAIUnavailable)
}

func TestSuggestCategoryFallsBackToUncategorized(t *testing.T) {
	server := newFakeAIServer(t, "Completely Made Up Category")
	defer server.Close()

	s := newTestAIService(server.URL)
	out, err := s.SuggestCategory(context.Background(), "Widget", "", []string{"Electronics", "Office"})
	require.NoError(t, err)
	assert.Equal(t, "Uncategorized", out)
}

func TestSuggestCategoryNormalizesCase(t *testing.T) {
	server := newFakeAIServer(t, "electronics")
	defer server.Close()

	s := newTestAIService(server.URL)
	out, err := s.SuggestCategory(context.Background(), "Mouse", "", []string{"Electronics", "Office"})
	require.NoError(t, err)
	assert.Equal(t, "Electronics", out)
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, extractJSON(`Here you go: {"a":1} hope that helps`))
	assert.Equal(t, "no braces here", extractJSON("no braces here"))
}
