package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const describePromptFmt = `You are an expert copywriter specializing in writing engaging and SEO-friendly product descriptions.

Generate a compelling product description for the following product.
Use the provided key features and desired tone.
%s
Product Name: %s
Key Features: %s
Tone: %s

Respond with ONLY the JSON object matching the output schema.`

// DescriptionInput is the input for the description generation flow.
// targetKeywords and existingDescription are optional; tone and keyword
// incorporation are advisory hints to the model, not enforced post-hoc.
type DescriptionInput struct {
	ProductName         string
	KeyFeatures         string
	Tone                string
	TargetKeywords      []string
	ExistingDescription string
}

// Validate rejects malformed input before any provider call.
func (in DescriptionInput) Validate() error {
	if strings.TrimSpace(in.ProductName) == "" {
		return &ValidationError{Field: "productName", Reason: "must not be empty"}
	}
	if strings.TrimSpace(in.KeyFeatures) == "" {
		return &ValidationError{Field: "keyFeatures", Reason: "must not be empty"}
	}
	if strings.TrimSpace(in.Tone) == "" {
		return &ValidationError{Field: "tone", Reason: "must not be empty"}
	}
	return nil
}

// DescriptionResult is the structured output of the description flow.
type DescriptionResult struct {
	Description string `json:"description"`
}

var describeSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"description": {
			Type:        genai.TypeString,
			Description: "The generated product description.",
		},
	},
	Required: []string{"description"},
}

// GenerateDescription generates a product description from a name, key
// features and a desired tone, optionally expanding an existing description
// and weaving in SEO keywords.
func (c *Client) GenerateDescription(ctx context.Context, in DescriptionInput) (*DescriptionResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var extras strings.Builder
	if in.ExistingDescription != "" {
		fmt.Fprintf(&extras, "Expand upon this existing information: %s\n", in.ExistingDescription)
	}
	if len(in.TargetKeywords) > 0 {
		fmt.Fprintf(&extras, "Naturally incorporate the following keywords for SEO: %s.\n", strings.Join(in.TargetKeywords, ", "))
	}

	prompt := fmt.Sprintf(describePromptFmt, extras.String(), in.ProductName, in.KeyFeatures, in.Tone)

	var result DescriptionResult
	_, err := c.completeJSON(ctx, completionRequest{
		flow:   "generateProductDescription",
		model:  geminiLiteModel,
		parts:  []*genai.Part{genai.NewPartFromText(prompt)},
		schema: describeSchema,
	}, &result)
	if err != nil {
		return nil, &GenerationFailed{Flow: "generateProductDescription", Err: err}
	}

	if strings.TrimSpace(result.Description) == "" {
		return nil, &GenerationFailed{
			Flow: "generateProductDescription",
			Err:  &CompletionError{Reason: "model returned an empty description"},
		}
	}

	return &result, nil
}
