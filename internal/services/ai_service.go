// internal/services/ai_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/inventra/inventra-backend/internal/config"
	"github.com/inventra/inventra-backend/internal/models"
)

// AIService talks to an OpenAI-compatible chat completions endpoint. The
// provider, model and key come from configuration so any compatible service
// can back it.
type AIService struct {
	cfg    config.AIConfig
	client *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// SearchFilters is the structured form of a natural-language product query.
// Every field is optional; unrecognized values are dropped rather than
// passed through to the listing layer.
type SearchFilters struct {
	Search      string  `json:"search,omitempty"`
	Category    string  `json:"category,omitempty"`
	MinPrice    *string `json:"minPrice,omitempty"`
	MaxPrice    *string `json:"maxPrice,omitempty"`
	StockStatus string  `json:"stockStatus,omitempty"`
	SortBy      string  `json:"sortBy,omitempty"`
	SortOrder   string  `json:"sortOrder,omitempty"`
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

func (s *AIService) Enabled() bool {
	return s.cfg.APIKey != ""
}

// GenerateDescription writes a short marketing description for a product.
func (s *AIService) GenerateDescription(ctx context.Context, name, category string) (string, error) {
	prompt := fmt.Sprintf(
		"Write a concise product description for %q in the %q category. "+
			"Maximum 20 words. Respond with the description only, no quotes or preamble.",
		name, category)

	out, err := s.complete(ctx, "You are a product copywriter for an inventory system.", prompt)
	if err != nil {
		return "", err
	}
	return stripQuotes(out), nil
}

// NaturalLanguageSearch turns a free-text query into listing filters.
func (s *AIService) NaturalLanguageSearch(ctx context.Context, query string, categories []string) (*SearchFilters, error) {
	prompt := fmt.Sprintf(`Convert this inventory search into JSON.
Query: %q
Known categories: %s

Respond with ONLY a JSON object using these optional keys:
  "search": keyword text to match against name, SKU or description
  "category": one of the known categories, exactly as listed
  "minPrice": number as string
  "maxPrice": number as string
  "stockStatus": "in", "low" or "out"
  "sortBy": "id", "name", "price", "quantity" or "created_at"
  "sortOrder": "asc" or "desc"
Omit any key the query does not imply.`, query, strings.Join(categories, ", "))

	out, err := s.complete(ctx, "You translate search queries into JSON filters. Output JSON only.", prompt)
	if err != nil {
		return nil, err
	}

	filters := &SearchFilters{}
	if err := json.Unmarshal([]byte(extractJSON(out)), filters); err != nil {
		logrus.WithError(err).WithField("output", out).Warn("AI returned unparseable filter JSON")
		return nil, ErrAIUnavailable
	}

	sanitizeFilters(filters, categories)
	return filters, nil
}

// SuggestCategory picks the best existing category for a product, or returns
// the sentinel name when nothing fits.
func (s *AIService) SuggestCategory(ctx context.Context, name, description string, categories []string) (string, error) {
	prompt := fmt.Sprintf(
		"Product: %q\nDescription: %q\nCategories: %s\n\n"+
			"Reply with the single best matching category name from the list, exactly as written. "+
			"If none fit, reply %q.",
		name, description, strings.Join(categories, ", "), models.UncategorizedName)

	out, err := s.complete(ctx, "You classify products into categories. Reply with one category name only.", prompt)
	if err != nil {
		return "", err
	}

	suggestion := stripQuotes(out)
	for _, c := range categories {
		if strings.EqualFold(c, suggestion) {
			return c, nil
		}
	}
	return models.UncategorizedName, nil
}

// DashboardInsights summarizes current inventory numbers in plain language.
func (s *AIService) DashboardInsights(ctx context.Context, stats *DashboardStats, lowStock []models.Product) (string, error) {
	var names []string
	for _, p := range lowStock {
		names = append(names, fmt.Sprintf("%s (%d left)", p.Name, p.Quantity))
	}

	prompt := fmt.Sprintf(
		"Inventory snapshot: %d products across %d categories, total value %s, %d items low on stock.\n"+
			"Low stock items: %s\n\n"+
			"Write 2-3 short sentences of actionable insight for the store manager. Plain text only.",
		stats.TotalProducts, stats.TotalCategories, stats.InventoryValue.StringFixed(2),
		stats.LowStockCount, strings.Join(names, "; "))

	return s.complete(ctx, "You are an inventory analyst. Be brief and concrete.", prompt)
}

func (s *AIService) complete(ctx context.Context, system, user string) (string, error) {
	if !s.Enabled() {
		return "", ErrAIUnavailable
	}

	body, err := json.Marshal(chatRequest{
		Model: s.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := strings.TrimRight(s.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		logrus.WithError(err).Warn("AI request failed")
		return "", ErrAIUnavailable
	}
	defer resp.Body.Close()

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		logrus.WithError(err).Warn("AI response was not valid JSON")
		return "", ErrAIUnavailable
	}

	if resp.StatusCode != http.StatusOK {
		msg := resp.Status
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		logrus.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"error":  msg,
		}).Warn("AI provider returned an error")
		return "", ErrAIUnavailable
	}

	if len(parsed.Choices) == 0 {
		return "", ErrAIUnavailable
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// sanitizeFilters drops anything the model invented that the listing layer
// would not accept.
func sanitizeFilters(f *SearchFilters, categories []string) {
	if f.StockStatus != "" && !models.StockStatus(f.StockStatus).Valid() {
		f.StockStatus = ""
	}

	if f.Category != "" {
		matched := ""
		for _, c := range categories {
			if strings.EqualFold(c, f.Category) {
				matched = c
				break
			}
		}
		f.Category = matched
	}

	if f.MinPrice != nil {
		if _, err := decimal.NewFromString(*f.MinPrice); err != nil {
			f.MinPrice = nil
		}
	}
	if f.MaxPrice != nil {
		if _, err := decimal.NewFromString(*f.MaxPrice); err != nil {
			f.MaxPrice = nil
		}
	}

	switch f.SortBy {
	case "id", "name", "price", "quantity", "created_at":
	default:
		f.SortBy = ""
	}
	if f.SortOrder != "asc" && f.SortOrder != "desc" {
		f.SortOrder = ""
	}
}

func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}

// extractJSON pulls the first JSON object out of a model reply that may be
// wrapped in code fences or prose.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return s
	}
	return s[start : end+1]
}
