package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/storepilot/storepilot/config"
	"github.com/storepilot/storepilot/internal/llm"
	"github.com/storepilot/storepilot/internal/shopify"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <query>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nExample: %s \"list 3 products\"\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment variables:\n")
		fmt.Fprintf(os.Stderr, "  GEMINI_API_KEY              - Required\n")
		fmt.Fprintf(os.Stderr, "  SHOPIFY_SHOP_DOMAIN         - Required\n")
		fmt.Fprintf(os.Stderr, "  SHOPIFY_ADMIN_ACCESS_TOKEN  - Required\n")
		os.Exit(1)
	}

	config.LoadEnvFile()

	query := strings.Join(os.Args[1:], " ")

	ctx := context.Background()
	client, err := llm.NewClient(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create client: %v\n", err)
		os.Exit(1)
	}

	shopClient := shopify.NewClient(shopify.ClientOpts{
		Domain:      os.Getenv("SHOPIFY_SHOP_DOMAIN"),
		AccessToken: os.Getenv("SHOPIFY_ADMIN_ACCESS_TOKEN"),
	})
	agent := llm.NewAgent(client, shopify.NewTools(shopClient))

	result := agent.Query(ctx, query)
	if result.IsError {
		fmt.Fprintf(os.Stderr, "Error: %s\n", result.ErrorMessage)
	}
	fmt.Println(result.Response)
}
