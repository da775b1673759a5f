package chat

import (
	"fmt"
	"strings"

	"github.com/lithammer/dedent"
)

const (
	welcomeText = `
		Welcome to your AI-Commerce Command Center! I'm here to help you manage
		your store efficiently. How can I assist you today? You can also upload
		a product image for analysis or ask about your Shopify store (e.g.,
		'shopify: list my products').`

	helpText = `
		I'm not sure how to help with that. You can ask me to:

		• Show dashboard/overview/stats
		• List/show products (mock data)
		• Add/create product (you can upload an image too!)
		• Show orders/sales (mock data)
		• Check urgent tasks (mock data)
		• Query Shopify: 'shopify: [your question]'

		How can I assist you?`

	addProductFormText = `
		Let's add a new product. Please provide the product name, key features
		(comma separated), and desired tone for the description (e.g.,
		'SuperWidget;eco-friendly,long-lasting;professional'). You can also
		upload an image first for AI assistance.`

	shopifyPrefixHelpText   = "Please provide a query after 'shopify:'. For example, 'shopify: list my products'."
	analyticsIntroText      = "Here's your current performance overview:"
	productListIntroText    = "Here's your (mock) product catalog:"
	ordersIntroText         = "Here are your recent (mock) orders:"
	urgentIntroText         = "Here are some items needing attention (from mock data):\n"
	noUrgentTasksText       = "Things look good! No immediate urgent tasks found in mock data."
	imageAnalysisFailedText = "Sorry, I couldn't analyze the image. Please try again."
	descriptionFailedText   = "Sorry, I couldn't generate the description. Please try again or add manually."
	aiDescriptionPromptText = "Okay, let's use AI. Provide product name, key features (comma-separated), and tone. Format: 'ProductName; feature1, feature2; tone'"

	confirmNameTextFmt = `
		OK, product name set to "%s". Based on the image, I found:
		Category: %s
		Tags: %s
		Initial Description: "%s"

		What's next?`

	imageAnalysisTextFmt = `
		I've analyzed the image! Here's what I found:
		Category: %s
		Tags: %s
		Initial description idea: "%s"

		What is the product name for this item?`

	descriptionResultTextFmt       = "Generated full description for \"%s\":\n\n%s\n\nReady to add it to the store?"
	manualDescriptionResultTextFmt = "Generated description for \"%s\":\n\n%s\n\nWhat's next? You can add this product to the store (it will use default price/SKU)."
	requestFeaturesTextFmt         = "Sure! To generate a full description for \"%s\", please provide some key features or keywords (comma-separated). You can also mention the tone if you have a preference."
	productAddedTextFmt            = "Great! \"%s\" has been added to your store with basic details. You can view it in the Products section or ask me to edit it."

	// Notices surface as toasts in the client, outside the message log.
	noticeMissingNameText     = "Cannot add product without a name."
	noticeProductAddedFmt     = "%s is now in your catalog."
	noticeOrderToolsText      = "Order tools are not yet implemented."
	noticeUploadImageText     = "Attach a product image and send it for analysis."
	noticeEditProductMockFmt  = "Navigating to edit %s (mock action)"
)

func formatText(text string, a ...any) string {
	return fmt.Sprintf(strings.TrimSpace(dedent.Dedent(text)), a...)
}

func welcomeActions() []Action {
	return []Action{
		{Text: "Show me my dashboard", ActionID: "show_dashboard"},
		{Text: "List my products", ActionID: "show_products"},
		{Text: "Any urgent tasks?", ActionID: "show_urgent_tasks"},
		{Text: "Ask Shopify: List 3 products", ActionID: "ask_shopify_list_3_products"},
	}
}

func helpActions() []Action {
	return []Action{
		{Text: "Show Dashboard", ActionID: "show_dashboard"},
		{Text: "List Mock Products", ActionID: "show_products"},
		{Text: "Ask Shopify: List products", ActionID: "ask_shopify_list_products"},
	}
}

func analyticsActions() []Action {
	return []Action{
		{Text: "View Detailed Report", ActionID: "view_detailed_report", Variant: "outline"},
		{Text: "Refresh Data", ActionID: "refresh_analytics_data", Variant: "outline"},
	}
}

func productListActions() []Action {
	return []Action{
		{Text: "Add New Product (Manual)", ActionID: "add_product_interactive", Variant: "outline"},
		{Text: "Upload Image to Add", ActionID: ActionTriggerImageUpload, Variant: "default"},
		{Text: "Ask Shopify: List products", ActionID: "ask_shopify_list_products", Variant: "secondary"},
	}
}

func addProductFormActions() []Action {
	return []Action{
		{Text: "Use AI for Description", ActionID: ActionAIDescriptionPrompt, Variant: "default"},
		{Text: "Upload Image First", ActionID: ActionTriggerImageUpload, Variant: "outline"},
	}
}

func ordersActions() []Action {
	return []Action{
		{Text: "Filter Orders", ActionID: "filter_orders", Variant: "outline"},
		{Text: "Process Pending", ActionID: "process_pending_orders", Variant: "default"},
		{Text: "Ask Shopify: List orders", ActionID: ActionAskShopifyListOrders, Variant: "secondary"},
	}
}

func urgentActions() []Action {
	return []Action{
		{Text: "View Low Stock", ActionID: "view_low_stock", Variant: "outline"},
		{Text: "View Pending Orders", ActionID: "view_pending_orders", Variant: "outline"},
	}
}

func confirmNameActions(name string) []Action {
	return []Action{
		{Text: fmt.Sprintf("Add %q to Store", name), ActionID: ActionAddProductFromContext, Variant: "default"},
		{Text: "Generate Full Description", ActionID: ActionRequestFeatures},
	}
}

func descriptionResultActions(name string) []Action {
	return []Action{
		{Text: fmt.Sprintf("Add %q to Store", name), ActionID: ActionAddProductFromContext, Variant: "default"},
		{Text: "Regenerate (new features?)", ActionID: ActionRequestFeatures},
	}
}

func manualDescriptionResultActions(name string) []Action {
	return []Action{
		{Text: fmt.Sprintf("Add %q to Store", name), ActionID: ActionAddProductFromContext},
	}
}

func productAddedActions(name string, id int) []Action {
	return []Action{
		{Text: "View Products", ActionID: "show_products"},
		{Text: "Edit " + name, ActionID: fmt.Sprintf("edit_product_%d", id)},
	}
}
