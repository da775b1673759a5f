package chat

import "time"

// Sender identifies which side of the conversation produced a message.
type Sender string

const (
	SenderUser  Sender = "user"
	SenderAgent Sender = "agent"
)

// Kind tags a message with the response shape the presentation layer should
// render. Closed set; unknown kinds are a bug.
type Kind string

const (
	KindWelcome             Kind = "welcome"
	KindProductList         Kind = "product_list"
	KindAddProductForm      Kind = "add_product_form"
	KindOrdersList          Kind = "orders_list"
	KindAnalyticsDashboard  Kind = "analytics_dashboard"
	KindHelp                Kind = "help"
	KindDescriptionResult   Kind = "description_result"
	KindError               Kind = "error"
	KindImageAnalysisResult Kind = "image_analysis_result"
	KindUserImageUpload     Kind = "user_image_upload"
	KindConfirmProductName  Kind = "confirm_product_name"
	KindRequestFeatures     Kind = "request_features"
	KindProductAdded        Kind = "product_added_confirmation"
	KindAgentResponse       Kind = "agent_response"
	KindProductCard         Kind = "product_card"
)

// Action is a suggested follow-up the user can invoke from a message.
type Action struct {
	Text     string `json:"text"`
	ActionID string `json:"actionId"`
	Variant  string `json:"variant,omitempty"`
}

// Message is one entry in a session's conversation log. Messages are
// append-only: insertion order is chronological order and a message is never
// edited after it has been appended.
type Message struct {
	ID        int       `json:"id"`
	Text      string    `json:"text,omitempty"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
	Kind      Kind      `json:"kind,omitempty"`
	Payload   any       `json:"payload,omitempty"`
	Actions   []Action  `json:"suggestedActions,omitempty"`
}

// Action ids handled directly by the interpreter. Any other id is translated
// to canned input text and re-enters the turn function.
const (
	ActionAddProductFromContext = "add_product_from_context"
	ActionRequestFeatures       = "request_features_for_description_context"
	ActionAIDescriptionPrompt   = "ai_product_description_prompt"
	ActionTriggerImageUpload    = "trigger_image_upload_for_product"
	ActionAskShopifyListOrders  = "ask_shopify_list_orders"
)
