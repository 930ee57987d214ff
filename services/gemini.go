package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel   = "gemini-1.5-flash"
	geminiTimeout        = 30 * time.Second
)

// ParsedReminder is what the assistant extracts from free-form text.
type ParsedReminder struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	When     string `json:"when"`
	Category string `json:"category"`
	Tags     string `json:"tags"`
	Priority string `json:"priority"`
}

// GeminiClient calls the Gemini generateContent REST endpoint.
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewGeminiClient() *GeminiClient {
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = defaultGeminiModel
	}
	baseURL := os.Getenv("GEMINI_BASE_URL")
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	return &GeminiClient{
		apiKey:  os.Getenv("GEMINI_API_KEY"),
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: geminiTimeout},
	}
}

// Enabled reports whether an API key was configured. Without one the caller
// should use the rule agent instead.
func (c *GeminiClient) Enabled() bool {
	return c.apiKey != ""
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

const parsePromptTemplate = `Extract a reminder from the text below.
Respond with a single JSON object and nothing else, using these keys:
"title" (short imperative phrase), "body" (extra detail, may be empty),
"when" (RFC3339 timestamp; the current time is %s),
"category" (one of Work, Health, Personal, Education, General),
"tags" (comma separated keywords) and
"priority" (High, Medium or Low).

Text: %s`

// ParseReminder asks Gemini to turn free-form text into a structured reminder.
func (c *GeminiClient) ParseReminder(ctx context.Context, text string, now time.Time) (*ParsedReminder, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("gemini api key not configured")
	}

	prompt := fmt.Sprintf(parsePromptTemplate, now.UTC().Format(time.RFC3339), text)
	payload := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error preparing gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("error creating gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling gemini: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading gemini response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return nil, fmt.Errorf("error decoding gemini response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	raw := stripCodeFences(parsed.Candidates[0].Content.Parts[0].Text)
	var result ParsedReminder
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("gemini returned unparseable JSON: %w", err)
	}
	if result.Title == "" {
		return nil, fmt.Errorf("gemini response missing title")
	}
	if result.When != "" {
		if _, err := time.Parse(time.RFC3339, result.When); err != nil {
			return nil, fmt.Errorf("gemini returned invalid timestamp %q", result.When)
		}
	}

	return &result, nil
}

// stripCodeFences removes a ```json ... ``` wrapper the model sometimes adds.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}

// FallbackParse builds a reminder from text without the LLM: the whole text
// becomes the title, scheduled an hour out, categorized by the rule agent.
func FallbackParse(text string, now time.Time) *ParsedReminder {
	title := strings.TrimSpace(text)
	if len(title) > 255 {
		title = title[:255]
	}
	return &ParsedReminder{
		Title:    title,
		When:     now.Add(time.Hour).UTC().Format(time.RFC3339),
		Category: SuggestCategory(title, ""),
		Priority: ClassifyPriority(title, ""),
	}
}
