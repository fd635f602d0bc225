package describe

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel is the model asked when none is configured.
const DefaultModel = "gemini-2.5-flash"

// GeminiGenerator asks a Gemini model for a JSON reply shaped by the info
// schema.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a client for the Gemini API.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("describe: create client: %w", err)
	}

	return &GeminiGenerator{client: client, model: model}, nil
}

func stringField(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: desc}
}

// responseSchema mirrors info-schema.json for the model side.
func responseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"description": stringField("A concise, high-level description of the data structure."),
			"theory": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"timeComplexity":    stringField("A markdown table of time complexities (Best, Average, Worst)."),
					"spaceComplexity":   stringField("The space complexity of the data structure."),
					"useCases":          stringField("A markdown bulleted list of common use cases."),
					"realWorldExamples": stringField("A markdown bulleted list of real-world examples."),
				},
			},
		},
	}
}

// Generate sends prompt and returns the model's JSON text.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema(),
	})
	if err != nil {
		return "", fmt.Errorf("describe: generate content: %w", err)
	}

	return resp.Text(), nil
}
