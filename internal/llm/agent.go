package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/storepilot/storepilot/internal/shopify"
)

const agentSystemPrompt = `You are an AI assistant helping manage a Shopify e-commerce store.
Use the available tools to answer the user's questions about products.
When presenting product information:
- For lists of products, provide a concise summary (name, status, inventory). If an image URL is available, mention it.
- For single product details, include name, description (summarize HTML if long), price, status, inventory, vendor, and image URL if available.
- If a tool call results in an error or no data, inform the user clearly and politely.
- Do not make up information. Only rely on the tool outputs.
- If the query is ambiguous or a tool requires an ID that isn't provided, ask the user for clarification.`

const (
	toolListProducts   = "listShopifyProducts"
	toolGetProductByID = "getShopifyProductById"
)

// maxToolTurns bounds the function-calling loop so a model that keeps
// requesting tools cannot spin forever.
const maxToolTurns = 6

const (
	agentMsgNoResponse    = "I'm sorry, I wasn't able to generate a response for your Shopify query. Please try rephrasing."
	agentMsgProviderError = "I encountered an issue trying to process your Shopify query: %s. Please ensure your Shopify connection is configured correctly and try again."
	agentMsgToolError     = "Sorry, I encountered an error while trying to process your Shopify request: %s. Please check your connection settings or try again."
)

// QueryResult is the agent's in-band response envelope. Query never returns
// a Go error; all failure is reported through IsError and ErrorMessage.
type QueryResult struct {
	Response     string `json:"response"`
	IsError      bool   `json:"isError,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// Agent answers free-text catalog queries by letting the model decide which
// catalog tools to invoke. The model's tool-selection logic is opaque: only
// the final text output is a contract.
type Agent struct {
	client  *Client
	catalog shopify.CatalogService
}

// NewAgent creates a catalog query agent over the given tool surface.
func NewAgent(client *Client, catalog shopify.CatalogService) *Agent {
	return &Agent{client: client, catalog: catalog}
}

var agentTools = []*genai.Tool{
	{
		FunctionDeclarations: []*genai.FunctionDeclaration{
			{
				Name:        toolListProducts,
				Description: "Fetches a list of products from the Shopify store. Allows specifying how many products to retrieve (defaults to 5, max 20).",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"count": {
							Type:        genai.TypeInteger,
							Description: "Number of products to list (e.g., 5, 10). Maximum 20.",
						},
					},
				},
			},
			{
				Name:        toolGetProductByID,
				Description: `Fetches detailed information about a specific product from the Shopify store using its ID (numeric part or full GID). Example ID: "1234567890" or "gid://shopify/Product/1234567890".`,
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"productId": {
							Type:        genai.TypeString,
							Description: "The ID of the product to fetch. This can be the numeric ID or the full GID.",
						},
					},
					Required: []string{"productId"},
				},
			},
		},
	},
}

// Query runs one conversational turn against the catalog. The model may
// invoke zero or more tools before producing its final answer.
func (a *Agent) Query(ctx context.Context, query string) QueryResult {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(query)}, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(agentSystemPrompt)}, genai.RoleUser),
		Tools:             agentTools,
	}

	for turn := 0; turn < maxToolTurns; turn++ {
		result, err := a.client.generate(ctx, geminiModel, contents, config)
		if err != nil {
			log.Error().Err(err).Str("query", query).Msg("catalog agent llm call failed")
			return errorResult(fmt.Sprintf(agentMsgProviderError, err.Error()), err)
		}
		if len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
			return errorResult(agentMsgNoResponse, fmt.Errorf("model produced no candidates"))
		}

		calls := result.FunctionCalls()
		if len(calls) == 0 {
			text := strings.TrimSpace(result.Text())
			if text == "" {
				// The model executed tools without a closing message, or
				// produced nothing at all. Soft failure, not a panic.
				return errorResult(agentMsgNoResponse, fmt.Errorf("model did not produce a response string"))
			}
			logAgentUsage(result, query, turn)
			return QueryResult{Response: text}
		}

		contents = append(contents, result.Candidates[0].Content)

		responseParts := make([]*genai.Part, 0, len(calls))
		for _, call := range calls {
			out, err := a.invokeTool(ctx, call)
			if err != nil {
				log.Error().Err(err).Str("tool", call.Name).Msg("catalog tool failed")
				return errorResult(fmt.Sprintf(agentMsgToolError, err.Error()), err)
			}
			responseParts = append(responseParts, genai.NewPartFromFunctionResponse(call.Name, out))
		}
		contents = append(contents, genai.NewContentFromParts(responseParts, genai.RoleUser))
	}

	return errorResult(agentMsgNoResponse, fmt.Errorf("tool-calling loop exceeded %d turns", maxToolTurns))
}

// invokeTool dispatches one model-requested tool call to the catalog adapter.
func (a *Agent) invokeTool(ctx context.Context, call *genai.FunctionCall) (map[string]any, error) {
	switch call.Name {
	case toolListProducts:
		count := intArg(call.Args, "count")
		log.Info().Int("count", count).Msg("agent invoking listShopifyProducts")
		products, err := a.catalog.ListProducts(ctx, count)
		if err != nil {
			return nil, err
		}
		return toResponseMap(map[string]any{"products": products})
	case toolGetProductByID:
		productID, _ := call.Args["productId"].(string)
		log.Info().Str("productId", productID).Msg("agent invoking getShopifyProductById")
		product, err := a.catalog.GetProductByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return map[string]any{"product": nil, "found": false}, nil
		}
		return toResponseMap(map[string]any{"product": product, "found": true})
	default:
		return nil, fmt.Errorf("model requested unknown tool %q", call.Name)
	}
}

// toResponseMap round-trips structured tool output through JSON so the
// function response carries plain maps and slices.
func toResponseMap(v map[string]any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tool output: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode tool output: %w", err)
	}
	return out, nil
}

// intArg reads a numeric argument from a function call. The SDK decodes
// JSON numbers as float64.
func intArg(args map[string]any, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case json.Number:
		n, _ := v.Int64()
		return int(n)
	default:
		return 0
	}
}

func errorResult(userMessage string, err error) QueryResult {
	return QueryResult{
		Response:     userMessage,
		IsError:      true,
		ErrorMessage: err.Error(),
	}
}

func logAgentUsage(result *genai.GenerateContentResponse, query string, toolTurns int) {
	usage := usageFrom(result, geminiModel)
	log.Info().
		Str("flow", "shopifyAgent").
		Str("model", geminiModel).
		Str("query", query).
		Int("toolTurns", toolTurns).
		Int64("inputTokens", usage.InputTokens).
		Int64("outputTokens", usage.OutputTokens).
		Float64("costUSD", usage.CostUSD).
		Msg("llm call")
}
