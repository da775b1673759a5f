package chat

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/storepilot/storepilot/internal/llm"
	"github.com/storepilot/storepilot/internal/store"
)

const shopifyPrefix = "shopify:"

// manualDescriptionPattern matches 'name; features; tone' input. Three
// segments are required; two semicolon-free parts fall through to intent
// matching.
var manualDescriptionPattern = regexp.MustCompile(`([\w\s\-_'"]+)\s*;\s*([\w\s\-_,'"()]+)\s*;\s*([\w\s]+)`)

// Generator covers the single-shot generation flows the interpreter calls.
type Generator interface {
	AnalyzeProductImage(ctx context.Context, in llm.AnalyzeImageInput) (*llm.AnalyzeImageResult, error)
	GenerateDescription(ctx context.Context, in llm.DescriptionInput) (*llm.DescriptionResult, error)
}

// CatalogAgent answers free-form storefront questions with live catalog
// tools.
type CatalogAgent interface {
	Query(ctx context.Context, query string) llm.QueryResult
}

// Interpreter turns user input into agent messages and store mutations. It
// implements TurnHandler; one instance is shared across all sessions.
type Interpreter struct {
	gen   Generator
	agent CatalogAgent
	store *store.Store
}

func NewInterpreter(gen Generator, agent CatalogAgent, st *store.Store) *Interpreter {
	return &Interpreter{gen: gen, agent: agent, store: st}
}

func (i *Interpreter) HandleTurn(ctx context.Context, s *Session, in TurnInput) TurnResult {
	if in.ActionID != "" {
		return i.handleAction(ctx, s, in.ActionID)
	}

	text := strings.TrimSpace(in.Text)
	if text == "" && in.ImageDataURL == "" {
		return TurnResult{}
	}

	s.appendUserMessage(text, in.ImageDataURL)

	if in.ImageDataURL != "" {
		i.analyzeImage(ctx, s, in.ImageDataURL)
		return TurnResult{}
	}

	i.processCommand(ctx, s, text)
	return TurnResult{}
}

// processCommand routes free-text input. Order matters: conversation state
// checks run before keyword intents so an answer like "add product photos"
// is captured as a product name rather than opening the add form.
func (i *Interpreter) processCommand(ctx context.Context, s *Session, input string) {
	command := strings.ToLower(strings.TrimSpace(input))
	lastKind := s.lastAgentKind()

	if strings.HasPrefix(command, shopifyPrefix) {
		query := strings.TrimSpace(command[len(shopifyPrefix):])
		if query == "" {
			s.appendAgentMessage(KindHelp, shopifyPrefixHelpText, nil)
			return
		}
		i.runAgentQuery(ctx, s, query)
		return
	}

	if lastKind == KindImageAnalysisResult && s.draft != nil && s.draft.ImageDataURL != "" {
		s.draft.ProductName = input
		s.appendAgentMessage(
			KindConfirmProductName,
			formatText(confirmNameTextFmt,
				input,
				orNA(s.draft.Category),
				strings.Join(s.draft.Tags, ", "),
				orNA(s.draft.InitialDescription)),
			nil,
			confirmNameActions(input)...,
		)
		return
	}

	if s.awaitingFeatures && s.draft != nil && s.draft.ProductName != "" {
		s.awaitingFeatures = false
		i.generateFullDescription(ctx, s, input)
		return
	}

	if containsAny(command, "dashboard", "overview", "stats") {
		s.appendAgentMessage(KindAnalyticsDashboard, analyticsIntroText, i.store.Analytics(), analyticsActions()...)
		return
	}

	if strings.Contains(command, "product") && containsAny(command, "list", "show", "all") {
		s.appendAgentMessage(KindProductList, productListIntroText, i.store.Products(), productListActions()...)
		return
	}

	if (containsAny(command, "add", "create") && strings.Contains(command, "product")) || command == "manual_product_form" {
		s.appendAgentMessage(KindAddProductForm, formatText(addProductFormText), nil, addProductFormActions()...)
		return
	}

	if i.tryManualDescription(ctx, s, input, lastKind) {
		return
	}

	if containsAny(command, "order", "sale") {
		s.appendAgentMessage(KindOrdersList, ordersIntroText, i.store.Orders(), ordersActions()...)
		return
	}

	if containsAny(command, "urgent", "task") {
		s.appendAgentMessage("", i.urgentTasksText(), nil, urgentActions()...)
		return
	}

	s.appendAgentMessage(KindHelp, formatText(helpText), nil, helpActions()...)
}

// tryManualDescription handles 'name; features; tone' input. It reports true
// when it consumed the turn, whether or not generation succeeded.
func (i *Interpreter) tryManualDescription(ctx context.Context, s *Session, input string, lastKind Kind) bool {
	if lastKind != KindAddProductForm && lastKind != KindRequestFeatures {
		return false
	}
	m := manualDescriptionPattern.FindStringSubmatch(input)
	if m == nil {
		return false
	}
	productName := strings.TrimSpace(m[1])
	keyFeatures := strings.TrimSpace(m[2])
	tone := strings.TrimSpace(m[3])

	result, err := i.gen.GenerateDescription(ctx, llm.DescriptionInput{
		ProductName: productName,
		KeyFeatures: keyFeatures,
		Tone:        tone,
	})
	if err != nil {
		log.Error().Err(err).Str("productName", productName).Msg("manual description generation failed")
		s.appendAgentMessage(KindError, descriptionFailedText, nil)
		return true
	}

	if s.draft == nil {
		s.draft = &ProductDraft{}
	}
	s.draft.ProductName = productName
	s.draft.FullDescription = result.Description

	s.appendAgentMessage(
		KindDescriptionResult,
		fmt.Sprintf(manualDescriptionResultTextFmt, productName, result.Description),
		map[string]string{"productName": productName, "description": result.Description},
		manualDescriptionResultActions(productName)...,
	)
	return true
}

// generateFullDescription answers the request_features follow-up. The raw
// input doubles as the feature list and, split on commas, as target
// keywords.
func (i *Interpreter) generateFullDescription(ctx context.Context, s *Session, input string) {
	var keywords []string
	for _, kw := range strings.Split(input, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}

	result, err := i.gen.GenerateDescription(ctx, llm.DescriptionInput{
		ProductName:         s.draft.ProductName,
		KeyFeatures:         input,
		Tone:                "engaging",
		TargetKeywords:      keywords,
		ExistingDescription: s.draft.InitialDescription,
	})
	if err != nil {
		log.Error().Err(err).Str("productName", s.draft.ProductName).Msg("description generation failed")
		s.appendAgentMessage(KindError, descriptionFailedText, nil)
		return
	}

	s.draft.FullDescription = result.Description
	s.appendAgentMessage(
		KindDescriptionResult,
		fmt.Sprintf(descriptionResultTextFmt, s.draft.ProductName, result.Description),
		map[string]any{"productName": s.draft.ProductName, "description": result.Description, "context": s.draft},
		descriptionResultActions(s.draft.ProductName)...,
	)
}

func (i *Interpreter) analyzeImage(ctx context.Context, s *Session, imageDataURL string) {
	result, err := i.gen.AnalyzeProductImage(ctx, llm.AnalyzeImageInput{ImageDataURI: imageDataURL})
	if err != nil {
		log.Error().Err(err).Msg("image analysis failed")
		s.appendAgentMessage(KindError, imageAnalysisFailedText, nil)
		return
	}

	// A fresh analysis replaces any draft in progress.
	s.draft = &ProductDraft{
		ImageDataURL:       imageDataURL,
		Category:           result.Category,
		Tags:               result.Tags,
		InitialDescription: result.InitialDescription,
	}
	s.awaitingFeatures = false

	s.appendAgentMessage(
		KindImageAnalysisResult,
		formatText(imageAnalysisTextFmt, result.Category, strings.Join(result.Tags, ", "), result.InitialDescription),
		map[string]any{
			"category":           result.Category,
			"tags":               result.Tags,
			"initialDescription": result.InitialDescription,
			"originalImage":      imageDataURL,
		},
	)
}

func (i *Interpreter) runAgentQuery(ctx context.Context, s *Session, query string) {
	result := i.agent.Query(ctx, query)

	payload := map[string]any{"isError": result.IsError}
	if result.IsError {
		payload["errorMessage"] = result.ErrorMessage
	}
	s.appendAgentMessage(KindAgentResponse, result.Response, payload)
}

func (i *Interpreter) handleAction(ctx context.Context, s *Session, actionID string) TurnResult {
	switch actionID {
	case ActionAddProductFromContext:
		return i.commitDraft(s)

	case ActionRequestFeatures:
		name := "this product"
		if s.draft != nil && s.draft.ProductName != "" {
			name = s.draft.ProductName
		}
		s.awaitingFeatures = true
		s.appendAgentMessage(KindRequestFeatures, fmt.Sprintf(requestFeaturesTextFmt, name), nil)
		return TurnResult{}

	case ActionAIDescriptionPrompt:
		s.appendAgentMessage(KindAddProductForm, aiDescriptionPromptText, nil)
		return TurnResult{}

	case ActionAskShopifyListOrders:
		return TurnResult{Notice: noticeOrderToolsText}

	case ActionTriggerImageUpload:
		return TurnResult{Notice: noticeUploadImageText}
	}

	text, notice := actionText(actionID)
	s.appendUserMessage(text, "")
	i.processCommand(ctx, s, text)
	return TurnResult{Notice: notice}
}

// actionText translates an action id into the canned input text that drives
// the follow-up turn. Unknown ids pass through verbatim so sentinel commands
// like manual_product_form keep working.
func actionText(actionID string) (text, notice string) {
	switch actionID {
	case "dashboard":
		return "Show dashboard", ""
	case "products":
		return "List products", ""
	case "orders":
		return "Show orders", ""
	case "ask_shopify_list_products":
		return "shopify: list products", ""
	case "ask_shopify_list_3_products":
		return "shopify: list 3 products", ""
	}

	if rest, ok := strings.CutPrefix(actionID, "edit_product_"); ok {
		return fmt.Sprintf("Show product %s details", rest), fmt.Sprintf(noticeEditProductMockFmt, rest)
	}

	for _, prefix := range []string{"show_", "view_", "add_", "filter_", "process_"} {
		if strings.HasPrefix(actionID, prefix) {
			return strings.ReplaceAll(actionID, "_", " "), ""
		}
	}
	return actionID, ""
}

// commitDraft adds the drafted product to the catalog with default price,
// inventory and status. Without a name nothing changes and no message is
// appended.
func (i *Interpreter) commitDraft(s *Session) TurnResult {
	if s.draft == nil || strings.TrimSpace(s.draft.ProductName) == "" {
		return TurnResult{Notice: noticeMissingNameText}
	}
	draft := s.draft

	image := draft.ImageDataURL
	if image == "" {
		image = "https://placehold.co/100x100.png?text=📦"
	}
	category := draft.Category
	if category == "" {
		category = "Uncategorized"
	}

	product := i.store.AddProduct(store.NewProduct{
		Name:        draft.ProductName,
		Price:       19.99,
		Inventory:   10,
		Status:      store.StatusActive,
		Image:       image,
		Category:    category,
		Description: draft.ComposedDescription(),
	})

	s.appendAgentMessage(
		KindProductAdded,
		fmt.Sprintf(productAddedTextFmt, product.Name),
		product,
		productAddedActions(product.Name, product.ID)...,
	)

	s.draft = nil
	s.awaitingFeatures = false
	return TurnResult{Notice: fmt.Sprintf(noticeProductAddedFmt, product.Name)}
}

func (i *Interpreter) urgentTasksText() string {
	lowStock := i.store.LowStockProducts()
	pending := i.store.PendingOrders()
	if len(lowStock) == 0 && len(pending) == 0 {
		return noUrgentTasksText
	}

	text := urgentIntroText
	if len(lowStock) > 0 {
		text += fmt.Sprintf("\n- %d product(s) are low on stock (e.g., %s).", len(lowStock), lowStock[0].Name)
	}
	if len(pending) > 0 {
		text += fmt.Sprintf("\n- You have %d order(s) to process (e.g., Order %s).", len(pending), pending[0].ID)
	}
	return text
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
