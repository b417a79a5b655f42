package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

// GeminiClassifier calls the Gemini generateContent API.
type GeminiClassifier struct {
	client *resty.Client
	model  string
}

// NewGeminiClassifier creates a classifier for the given model. baseURL may
// be empty to use the public endpoint; tests point it at a local server.
func NewGeminiClassifier(apiKey, model, baseURL string) *GeminiClassifier {
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}

	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-goog-api-key", apiKey).
		SetTimeout(2 * time.Minute)

	return &GeminiClassifier{client: c, model: model}
}

// generateRequest / generateResponse structs for JSON binding

type generateRequest struct {
	SystemInstruction *geminiContent   `json:"systemInstruction,omitempty"`
	Contents          []geminiContent  `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string `json:"responseMimeType"`
}

type generateResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Classify sends the brain dump plus the current timestamp to Gemini and
// parses the JSON payload out of the first candidate.
func (g *GeminiClassifier) Classify(ctx context.Context, text string, now time.Time) (*Response, error) {
	userText := fmt.Sprintf("User input: %q\nCurrent date/time: %s",
		text, now.Format("Monday, January 2, 2006 3:04 PM (MST)"))

	reqBody := generateRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: systemPrompt}}},
		Contents:          []geminiContent{{Role: "user", Parts: []geminiPart{{Text: userText}}}},
		GenerationConfig:  generationConfig{ResponseMIMEType: "application/json"},
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(&reqBody).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", g.model))
	if err != nil {
		return nil, fmt.Errorf("gemini request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("gemini status %d: %s", resp.StatusCode(), resp.String())
	}

	var gr generateResponse
	if err := json.Unmarshal(resp.Body(), &gr); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no content")
	}

	return ParseResponse([]byte(gr.Candidates[0].Content.Parts[0].Text))
}
