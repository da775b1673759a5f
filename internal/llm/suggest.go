package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const suggestPromptFmt = `You are an AI assistant helping ecommerce store administrators manage their stores effectively.

Based on the current store status and recent activity, suggest relevant next steps for the administrator.
Provide a list of suggested steps with clear reasons for each suggestion.

Store Status: %s
Recent Activity: %s

Consider suggesting actions related to:
- Addressing low inventory
- Processing pending orders
- Improving customer engagement
- Optimizing product pricing
- Reviewing marketing campaign performance
- Checking low inventory alerts
- Reviewing customer feedback
- Improving product discoverability

Respond with ONLY the JSON object matching the output schema.`

// NextStepsInput is the input for the next-steps suggestion flow. Both
// fields are free-text summaries composed by the caller.
type NextStepsInput struct {
	StoreStatus    string
	RecentActivity string
}

// Validate rejects malformed input before any provider call.
func (in NextStepsInput) Validate() error {
	if strings.TrimSpace(in.StoreStatus) == "" {
		return &ValidationError{Field: "storeStatus", Reason: "must not be empty"}
	}
	if strings.TrimSpace(in.RecentActivity) == "" {
		return &ValidationError{Field: "recentActivity", Reason: "must not be empty"}
	}
	return nil
}

// SuggestedStep is one recommended admin action with its rationale.
type SuggestedStep struct {
	Step   string `json:"step"`
	Reason string `json:"reason"`
}

// NextStepsResult is the structured output of the next-steps flow. The
// caller is responsible for truncating the list for display.
type NextStepsResult struct {
	SuggestedSteps []SuggestedStep `json:"suggestedSteps"`
}

var suggestSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"suggestedSteps": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"step":   {Type: genai.TypeString, Description: "A suggested action for the administrator."},
					"reason": {Type: genai.TypeString, Description: "The reason why this step is suggested."},
				},
				Required: []string{"step", "reason"},
			},
			Description: "A list of suggested next steps for the administrator.",
		},
	},
	Required: []string{"suggestedSteps"},
}

// SuggestNextSteps suggests admin actions based on free-text summaries of
// the store's status and recent activity.
func (c *Client) SuggestNextSteps(ctx context.Context, in NextStepsInput) (*NextStepsResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(suggestPromptFmt, in.StoreStatus, in.RecentActivity)

	var result NextStepsResult
	_, err := c.completeJSON(ctx, completionRequest{
		flow:   "suggestNextSteps",
		model:  geminiLiteModel,
		parts:  []*genai.Part{genai.NewPartFromText(prompt)},
		schema: suggestSchema,
	}, &result)
	if err != nil {
		return nil, &GenerationFailed{Flow: "suggestNextSteps", Err: err}
	}

	return &result, nil
}
