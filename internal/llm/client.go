package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

const (
	geminiModel     = "gemini-3-flash-preview"
	geminiLiteModel = "gemini-2.5-flash-lite"
)

// Gemini pricing (per million tokens)
const (
	geminiInputPricePerMillion      = 0.50
	geminiOutputPricePerMillion     = 3.00
	geminiLiteInputPricePerMillion  = 0.075
	geminiLiteOutputPricePerMillion = 0.30
)

// Usage holds token counts and cost for a single generation call.
type Usage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
	CostUSD      float64
}

// generateFunc is the raw model invocation. Injectable so tests can run flows
// and the agent against canned responses without a network.
type generateFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// Client is the single synchronous integration point with the Gemini API.
// All flows and the catalog agent go through it.
type Client struct {
	genai    *genai.Client
	generate generateFunc
}

// NewClient creates a Gemini-backed completion client.
// It uses the GEMINI_API_KEY environment variable for authentication.
func NewClient(ctx context.Context) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: os.Getenv("GEMINI_API_KEY"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	c := &Client{genai: client}
	c.generate = func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return client.Models.GenerateContent(ctx, model, contents, config)
	}
	return c, nil
}

// completionRequest describes one structured generation call.
type completionRequest struct {
	flow   string // for logging
	model  string
	parts  []*genai.Part
	schema *genai.Schema // when set, response is constrained to JSON matching it
}

// complete executes a single generation call and returns the raw text output.
// Transport failures map to ProviderUnavailable; an answered call with no
// parseable output maps to CompletionError.
func (c *Client) complete(ctx context.Context, req completionRequest) (string, Usage, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts(req.parts, genai.RoleUser),
	}

	var config *genai.GenerateContentConfig
	if req.schema != nil {
		config = &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   req.schema,
		}
	}

	result, err := c.generate(ctx, req.model, contents, config)
	if err != nil {
		return "", Usage{}, &ProviderUnavailable{Err: err}
	}

	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", Usage{}, &CompletionError{Reason: "empty response from model"}
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", Usage{}, &CompletionError{Reason: "model produced no text output"}
	}

	usage := usageFrom(result, req.model)
	log.Info().
		Str("flow", req.flow).
		Str("model", req.model).
		Int64("inputTokens", usage.InputTokens).
		Int64("outputTokens", usage.OutputTokens).
		Float64("costUSD", usage.CostUSD).
		Msg("llm call")

	return text, usage, nil
}

// completeJSON runs complete and decodes the structured output into out.
// Output that fails to decode against the expected shape is a CompletionError.
func (c *Client) completeJSON(ctx context.Context, req completionRequest, out any) (Usage, error) {
	text, usage, err := c.complete(ctx, req)
	if err != nil {
		return usage, err
	}

	jsonStr := text
	if req.schema == nil {
		// Without a response schema the model may wrap JSON in markdown.
		jsonStr, err = extractJSONObject(text)
		if err != nil {
			return usage, &CompletionError{Reason: "no JSON object in response", Err: err}
		}
	}

	if err := json.Unmarshal([]byte(jsonStr), out); err != nil {
		return usage, &CompletionError{Reason: fmt.Sprintf("response failed schema validation (response: %s)", jsonStr), Err: err}
	}
	return usage, nil
}

func usageFrom(result *genai.GenerateContentResponse, model string) Usage {
	usage := Usage{}
	if result.UsageMetadata == nil {
		return usage
	}
	usage.InputTokens = int64(result.UsageMetadata.PromptTokenCount)
	usage.OutputTokens = int64(result.UsageMetadata.CandidatesTokenCount)
	usage.TotalTokens = int64(result.UsageMetadata.TotalTokenCount)

	inputPrice, outputPrice := geminiInputPricePerMillion, geminiOutputPricePerMillion
	if model == geminiLiteModel {
		inputPrice, outputPrice = geminiLiteInputPricePerMillion, geminiLiteOutputPricePerMillion
	}
	usage.CostUSD = calculateGeminiCost(usage.InputTokens, usage.OutputTokens, inputPrice, outputPrice)
	return usage
}

func calculateGeminiCost(inputTokens, outputTokens int64, inputPrice, outputPrice float64) float64 {
	inputCost := float64(inputTokens) / 1_000_000 * inputPrice
	outputCost := float64(outputTokens) / 1_000_000 * outputPrice
	return inputCost + outputCost
}

// extractJSONObject extracts a JSON object from text that may contain markdown
// code blocks or other formatting. Returns the extracted JSON string or an error.
func extractJSONObject(text string) (string, error) {
	text = strings.TrimSpace(text)
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response: %s", text)
	}
	return text[start : end+1], nil
}
