package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/pantrychef/backend/internal/model"
)

// Sentinel errors for upstream failure classes. Rate limiting and billing
// failures pass through to the caller with their original status; everything
// else collapses into ErrUpstream.
var (
	ErrRateLimited     = errors.New("upstream rate limit exceeded")
	ErrPaymentRequired = errors.New("upstream payment required")
	ErrUpstream        = errors.New("upstream request failed")
)

const systemPrompt = `You are a professional chef. Given a list of ingredients, write a single recipe that uses them. Provide your response in JSON format with the following structure:
{
    "name": "Recipe name",
    "cookingTime": 30,
    "difficulty": "Easy/Medium/Hard",
    "servings": 4,
    "macros": {
        "calories": 350,
        "protein": 15,
        "carbs": 45,
        "fats": 12
    },
    "ingredients": [
        "2 cups rice",
        "1 chicken breast"
    ],
    "instructions": [
        "Step 1: ...",
        "Step 2: ..."
    ]
}

Note: cookingTime is in minutes. cookingTime, servings and all macros fields must be integers, not strings.
The difficulty field MUST be one of Easy, Medium or Hard.`

// LLMService handles interactions with the DeepSeek API
type LLMService struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

// NewLLMService creates a new LLMService instance
func NewLLMService() (*LLMService, error) {
	apiKey := os.Getenv("DEEPSEEK_API_KEY")
	if apiKey == "" {
		apiKeyFile := os.Getenv("DEEPSEEK_API_KEY_FILE")
		if apiKeyFile == "" {
			return nil, fmt.Errorf("DEEPSEEK_API_KEY or DEEPSEEK_API_KEY_FILE must be set")
		}

		apiKeyBytes, err := os.ReadFile(apiKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read API key file: %w", err)
		}

		apiKey = strings.TrimSpace(string(apiKeyBytes))
		if apiKey == "" {
			return nil, fmt.Errorf("API key file is empty")
		}
	}

	apiURL := os.Getenv("DEEPSEEK_API_URL")
	if apiURL == "" {
		apiURL = "https://api.deepseek.com/v1/chat/completions"
	}

	modelName := os.Getenv("DEEPSEEK_MODEL")
	if modelName == "" {
		modelName = "deepseek-chat"
	}

	return &LLMService{
		apiKey: apiKey,
		apiURL: apiURL,
		model:  modelName,
		client: http.DefaultClient,
	}, nil
}

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a request to the DeepSeek API
type Request struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
	Temperature    float64           `json:"temperature"`
}

// GenerateRecipe asks the upstream gateway for a recipe built from the given
// ingredients. The call is synchronous and stateless: no retries, no caching.
func (s *LLMService) GenerateRecipe(ctx context.Context, ingredients []string) (*model.Recipe, error) {
	log.Printf("[LLMService] generating recipe for ingredients: %s", strings.Join(ingredients, ", "))

	messages := []Message{
		{
			Role:    "system",
			Content: systemPrompt,
		},
		{
			Role:    "user",
			Content: "Create a recipe using the following ingredients: " + strings.Join(ingredients, ", "),
		},
	}

	reqBody := Request{
		Model:    s.model,
		Messages: messages,
		ResponseFormat: map[string]string{
			"type": "json_object",
		},
		Temperature: 0.9, // Higher temperature for more creativity
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			body = []byte("(unreadable body)")
		}
		log.Printf("[LLMService] API request failed with status %d: %s", resp.StatusCode, string(body))

		switch resp.StatusCode {
		case http.StatusTooManyRequests:
			return nil, ErrRateLimited
		case http.StatusPaymentRequired:
			return nil, ErrPaymentRequired
		default:
			return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
		}
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("no response from API")
	}

	// The message content is itself a JSON-encoded recipe
	var recipe model.Recipe
	if err := json.Unmarshal([]byte(result.Choices[0].Message.Content), &recipe); err != nil {
		return nil, fmt.Errorf("failed to parse recipe: %w", err)
	}

	return &recipe, nil
}
