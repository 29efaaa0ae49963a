package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jonathan/resume-processor/internal/normalize"
)

// Client is the set of LLM-backed operations the service performs. Each
// returns a decoded JSON record ready for storage and rendering.
type Client interface {
	// ExtractResume turns raw resume text into a structured resume record.
	ExtractResume(ctx context.Context, text string) (map[string]any, error)
	// AnalyzeJob extracts requirements and keywords from a job posting.
	AnalyzeJob(ctx context.Context, title, description string) (map[string]any, error)
	// TailorResume rewrites a resume record against a job analysis.
	TailorResume(ctx context.Context, resume, job map[string]any) (map[string]any, error)
	// Close releases any resources held by the client.
	Close() error
}

// GeminiClient implements Client for Google Gemini.
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewClient creates a Gemini-backed client.
func NewClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = DefaultConfig()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, config: config}, nil
}

// ExtractResume turns raw resume text into a structured resume record. If the
// model output cannot be parsed even after one repair attempt, a minimal
// record carrying the original text as the summary is returned instead of an
// error: downstream rendering tolerates any record.
func (c *GeminiClient) ExtractResume(ctx context.Context, text string) (map[string]any, error) {
	record, err := c.generateRecord(ctx, extractResumePrompt(text), TierLite)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return minimalRecord(text), nil
	}
	return record, nil
}

// AnalyzeJob extracts requirements and keywords from a job posting.
func (c *GeminiClient) AnalyzeJob(ctx context.Context, title, description string) (map[string]any, error) {
	record, err := c.generateRecord(ctx, analyzeJobPrompt(title, description), TierStandard)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("job analysis returned unparseable output")
	}
	return record, nil
}

// TailorResume rewrites a resume record against a job analysis. On
// unparseable output the original resume is returned unchanged rather than
// failing the request.
func (c *GeminiClient) TailorResume(ctx context.Context, resume, job map[string]any) (map[string]any, error) {
	resumeJSON, err := json.Marshal(resume)
	if err != nil {
		return nil, fmt.Errorf("failed to encode resume: %w", err)
	}
	jobJSON, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("failed to encode job analysis: %w", err)
	}

	record, err := c.generateRecord(ctx, tailorResumePrompt(string(resumeJSON), string(jobJSON)), TierAdvanced)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return resume, nil
	}
	return record, nil
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// generateRecord runs one JSON-mode generation and decodes the result. An
// unparseable response gets a single repair pass; if that also fails the
// return is (nil, nil) so callers can apply their own fallback.
func (c *GeminiClient) generateRecord(ctx context.Context, prompt string, tier ModelTier) (map[string]any, error) {
	text, err := c.generateJSON(ctx, prompt, tier)
	if err != nil {
		return nil, err
	}

	if record, ok := decodeRecord(text); ok {
		return record, nil
	}

	repaired, err := c.generateJSON(ctx, repairPrompt(text), tier)
	if err != nil {
		return nil, err
	}
	if record, ok := decodeRecord(repaired); ok {
		return record, nil
	}
	return nil, nil
}

// generateJSON runs a JSON-mode generation with the tier's model.
func (c *GeminiClient) generateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(0.1) // low temperature for consistent output
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}

func decodeRecord(text string) (map[string]any, bool) {
	var record map[string]any
	if err := json.Unmarshal([]byte(CleanJSONBlock(text)), &record); err != nil {
		return nil, false
	}
	return record, true
}

// minimalRecord is the extraction fallback: the text survives as the summary
// so the render still carries the candidate's content.
func minimalRecord(text string) map[string]any {
	return map[string]any{
		"name":    "",
		"summary": normalize.Truncate(text, 500),
	}
}
