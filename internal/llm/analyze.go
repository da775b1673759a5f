package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const analyzeImagePrompt = `You are an expert e-commerce merchandising assistant.
Analyze the provided product image.
Based SOLELY on the visual information in the image, suggest:
1. A suitable product category (e.g., "Electronics", "Apparel - Mens", "Home Goods - Kitchen").
2. 3 to 5 relevant and specific tags (e.g., "wireless earbuds", "noise cancelling", "bluetooth 5.0" or "summer dress", "floral print", "cotton").
3. A short, engaging, and descriptive initial product description (1-2 sentences) highlighting key visual features.

Respond with ONLY the JSON object matching the output schema.`

// AnalyzeImageInput is the input for the image analysis flow.
type AnalyzeImageInput struct {
	// ImageDataURI is a product image as a data URI with a MIME type and
	// base64 encoding: "data:<mimetype>;base64,<encoded_data>".
	ImageDataURI string
}

// Validate rejects malformed input before any provider call.
func (in AnalyzeImageInput) Validate() error {
	if _, _, err := decodeImageDataURI(in.ImageDataURI); err != nil {
		return &ValidationError{Field: "imageDataUri", Reason: err.Error()}
	}
	return nil
}

// AnalyzeImageResult is the structured output of the image analysis flow.
type AnalyzeImageResult struct {
	Category           string   `json:"category"`
	Tags               []string `json:"tags"`
	InitialDescription string   `json:"initialDescription"`
}

var analyzeImageSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"category": {
			Type:        genai.TypeString,
			Description: "A suggested product category based on the image.",
		},
		"tags": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "A list of 3-5 relevant tags for the product based on the image.",
		},
		"initialDescription": {
			Type:        genai.TypeString,
			Description: "A short, compelling initial product description based on the image content.",
		},
	},
	Required:         []string{"category", "tags", "initialDescription"},
	PropertyOrdering: []string{"category", "tags", "initialDescription"},
}

// AnalyzeProductImage analyzes a product image and suggests a category, tags
// and an initial description. A malformed or unsupported image surfaces as a
// provider-level failure; there are no retries.
func (c *Client) AnalyzeProductImage(ctx context.Context, in AnalyzeImageInput) (*AnalyzeImageResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	mimeType, data, _ := decodeImageDataURI(in.ImageDataURI)
	parts := []*genai.Part{
		genai.NewPartFromText(analyzeImagePrompt),
		{InlineData: &genai.Blob{Data: data, MIMEType: mimeType}},
	}

	var result AnalyzeImageResult
	_, err := c.completeJSON(ctx, completionRequest{
		flow:   "analyzeProductImage",
		model:  geminiModel,
		parts:  parts,
		schema: analyzeImageSchema,
	}, &result)
	if err != nil {
		return nil, &GenerationFailed{Flow: "analyzeProductImage", Err: err}
	}

	if len(result.Tags) < 3 || len(result.Tags) > 5 {
		return nil, &GenerationFailed{
			Flow: "analyzeProductImage",
			Err:  &CompletionError{Reason: fmt.Sprintf("expected 3-5 tags, got %d", len(result.Tags))},
		}
	}

	return &result, nil
}

// decodeImageDataURI splits a "data:<mime>;base64,<data>" URI into its MIME
// type and decoded bytes.
func decodeImageDataURI(uri string) (mimeType string, data []byte, err error) {
	if !strings.HasPrefix(uri, "data:") {
		return "", nil, fmt.Errorf("not a data URI")
	}
	rest := strings.TrimPrefix(uri, "data:")
	meta, encoded, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data URI: missing comma separator")
	}
	mimeType, encoding, ok := strings.Cut(meta, ";")
	if !ok || encoding != "base64" {
		return "", nil, fmt.Errorf("data URI must be base64 encoded")
	}
	if mimeType == "" {
		return "", nil, fmt.Errorf("data URI is missing a MIME type")
	}
	data, err = base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", nil, fmt.Errorf("invalid base64 payload: %w", err)
	}
	return mimeType, data, nil
}
