package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/storepilot/storepilot/config"
	"github.com/storepilot/storepilot/internal/llm"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <image-path>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment variables:\n")
		fmt.Fprintf(os.Stderr, "  GEMINI_API_KEY - Required\n")
		os.Exit(1)
	}

	config.LoadEnvFile()

	imagePath := os.Args[1]
	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read image: %v\n", err)
		os.Exit(1)
	}

	dataURI := fmt.Sprintf("data:%s;base64,%s",
		getMimeType(imagePath), base64.StdEncoding.EncodeToString(imageData))

	ctx := context.Background()
	client, err := llm.NewClient(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create client: %v\n", err)
		os.Exit(1)
	}

	result, err := client.AnalyzeProductImage(ctx, llm.AnalyzeImageInput{ImageDataURI: dataURI})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error analyzing image: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Category:    %s\n", result.Category)
	fmt.Printf("Tags:        %s\n", strings.Join(result.Tags, ", "))
	fmt.Printf("Description: %s\n", result.InitialDescription)
}

func getMimeType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
