package chat

import "strings"

// ProductDraft accumulates product attributes across the image analysis
// conversation. A session holds at most one draft; analyzing a new image
// replaces the previous draft without warning.
type ProductDraft struct {
	ImageDataURL       string   `json:"imageDataUrl,omitempty"`
	Category           string   `json:"category,omitempty"`
	Tags               []string `json:"tags,omitempty"`
	InitialDescription string   `json:"initialDescription,omitempty"`
	ProductName        string   `json:"productName,omitempty"`
	FullDescription    string   `json:"fullDescription,omitempty"`
}

// ComposedDescription builds the description stored on a committed product.
// The full description wins over the initial one from image analysis.
func (d *ProductDraft) ComposedDescription() string {
	var b strings.Builder
	if len(d.Tags) > 0 {
		b.WriteString("Tags: ")
		b.WriteString(strings.Join(d.Tags, ", "))
		b.WriteString("\n\n")
	}
	switch {
	case d.FullDescription != "":
		b.WriteString(d.FullDescription)
	case d.InitialDescription != "":
		b.WriteString(d.InitialDescription)
	default:
		b.WriteString("No description yet.")
	}
	return b.String()
}
