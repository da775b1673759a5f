package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

const testImageDataURI = "data:image/png;base64,aGVsbG8="

func TestDecodeImageDataURI(t *testing.T) {
	mimeType, data, err := decodeImageDataURI(testImageDataURI)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)
	assert.Equal(t, []byte("hello"), data)

	_, _, err = decodeImageDataURI("https://example.com/image.png")
	assert.Error(t, err)

	_, _, err = decodeImageDataURI("data:image/png,rawdata")
	assert.Error(t, err)

	_, _, err = decodeImageDataURI("data:image/png;base64,not-base64!!")
	assert.Error(t, err)
}

func TestAnalyzeImageInput_Validate(t *testing.T) {
	assert.NoError(t, AnalyzeImageInput{ImageDataURI: testImageDataURI}.Validate())

	err := AnalyzeImageInput{ImageDataURI: "bogus"}.Validate()
	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "imageDataUri", valErr.Field)
}

func TestAnalyzeProductImage(t *testing.T) {
	var gotModel string
	var gotParts []*genai.Part
	c := newFakeClient(func(_ context.Context, model string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		gotModel = model
		gotParts = contents[0].Parts
		return textResponse(`{"category":"Electronics","tags":["wireless","mouse","usb"],"initialDescription":"A sleek mouse."}`), nil
	})

	result, err := c.AnalyzeProductImage(context.Background(), AnalyzeImageInput{ImageDataURI: testImageDataURI})

	require.NoError(t, err)
	assert.Equal(t, "Electronics", result.Category)
	assert.Equal(t, []string{"wireless", "mouse", "usb"}, result.Tags)
	assert.Equal(t, geminiModel, gotModel)

	// Prompt text plus inline image bytes.
	require.Len(t, gotParts, 2)
	require.NotNil(t, gotParts[1].InlineData)
	assert.Equal(t, "image/png", gotParts[1].InlineData.MIMEType)
	assert.Equal(t, []byte("hello"), gotParts[1].InlineData.Data)
}

func TestAnalyzeProductImage_TagCountOutOfRange(t *testing.T) {
	c := newFakeClient(func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return textResponse(`{"category":"Electronics","tags":["one","two"],"initialDescription":"Short."}`), nil
	})

	_, err := c.AnalyzeProductImage(context.Background(), AnalyzeImageInput{ImageDataURI: testImageDataURI})

	var genErr *GenerationFailed
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, "analyzeProductImage", genErr.Flow)
	assert.Contains(t, err.Error(), "expected 3-5 tags")
}

func TestAnalyzeProductImage_InvalidInputSkipsProvider(t *testing.T) {
	called := false
	c := newFakeClient(func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		called = true
		return nil, nil
	})

	_, err := c.AnalyzeProductImage(context.Background(), AnalyzeImageInput{ImageDataURI: "bogus"})

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.False(t, called)
}

func TestDescriptionInput_Validate(t *testing.T) {
	valid := DescriptionInput{ProductName: "Widget", KeyFeatures: "durable", Tone: "witty"}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name  string
		in    DescriptionInput
		field string
	}{
		{"missing name", DescriptionInput{KeyFeatures: "x", Tone: "y"}, "productName"},
		{"missing features", DescriptionInput{ProductName: "x", Tone: "y"}, "keyFeatures"},
		{"missing tone", DescriptionInput{ProductName: "x", KeyFeatures: "y"}, "tone"},
		{"whitespace only", DescriptionInput{ProductName: "  ", KeyFeatures: "y", Tone: "z"}, "productName"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			var valErr *ValidationError
			require.True(t, errors.As(err, &valErr))
			assert.Equal(t, tt.field, valErr.Field)
		})
	}
}

func TestGenerateDescription(t *testing.T) {
	var gotModel, gotPrompt string
	c := newFakeClient(func(_ context.Context, model string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		gotModel = model
		gotPrompt = contents[0].Parts[0].Text
		return textResponse(`{"description":"The ultimate widget."}`), nil
	})

	result, err := c.GenerateDescription(context.Background(), DescriptionInput{
		ProductName:         "Widget",
		KeyFeatures:         "durable, compact",
		Tone:                "engaging",
		TargetKeywords:      []string{"widget", "tools"},
		ExistingDescription: "A simple widget.",
	})

	require.NoError(t, err)
	assert.Equal(t, "The ultimate widget.", result.Description)
	assert.Equal(t, geminiLiteModel, gotModel)
	assert.Contains(t, gotPrompt, "Product Name: Widget")
	assert.Contains(t, gotPrompt, "Expand upon this existing information: A simple widget.")
	assert.Contains(t, gotPrompt, "keywords for SEO: widget, tools.")
}

func TestGenerateDescription_EmptyResult(t *testing.T) {
	c := newFakeClient(func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return textResponse(`{"description":"   "}`), nil
	})

	_, err := c.GenerateDescription(context.Background(), DescriptionInput{
		ProductName: "Widget", KeyFeatures: "durable", Tone: "witty",
	})

	var genErr *GenerationFailed
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, "generateProductDescription", genErr.Flow)
}

func TestNextStepsInput_Validate(t *testing.T) {
	assert.NoError(t, NextStepsInput{StoreStatus: "ok", RecentActivity: "sales"}.Validate())

	var valErr *ValidationError
	err := NextStepsInput{RecentActivity: "sales"}.Validate()
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "storeStatus", valErr.Field)

	err = NextStepsInput{StoreStatus: "ok"}.Validate()
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "recentActivity", valErr.Field)
}

func TestSuggestNextSteps(t *testing.T) {
	c := newFakeClient(func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return textResponse(`{"suggestedSteps":[{"step":"Restock low inventory","reason":"3 products are low."},{"step":"Process pending orders","reason":"2 orders waiting."}]}`), nil
	})

	result, err := c.SuggestNextSteps(context.Background(), NextStepsInput{
		StoreStatus:    "Sales: $12450.50, Orders: 18",
		RecentActivity: "Browsing the admin dashboard.",
	})

	require.NoError(t, err)
	require.Len(t, result.SuggestedSteps, 2)
	assert.Equal(t, "Restock low inventory", result.SuggestedSteps[0].Step)
	assert.Equal(t, "2 orders waiting.", result.SuggestedSteps[1].Reason)
}
