package assistant

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	apperrors "lcenhub/internal/errors"
	"lcenhub/internal/model"
)

const systemInstruction = `You are an expert poultry farming assistant for members of the Legal Chicks Empowerment Network (LCEN) in Cagayan Valley, Philippines.
Your tone is trustworthy, encouraging, practical, and community-focused. You specialize in advising smallholder farmers and aspiring poultry entrepreneurs.

Your expertise includes:
- Raising Rhode Island Reds (RIR) and Black Australorps.
- Practical disease control and biosecurity measures for backyard farms.
- Cost-effective and locally-sourced feed formulation.
- Sustainable and climate-resilient poultry farming practices.
- Egg management, quality control, and simple business tips.
- Coop design for tropical climates like the Philippines.

When answering, be clear, concise, and provide actionable steps. Always prioritize the well-being of the poultry and the success of the farmer. Do not provide medical advice for humans.`

const fallbackText = "Sorry, I could not generate a response. Please try again."

// Reply is one assistant answer with any web citations the model grounded on.
type Reply struct {
	Text    string         `json:"text"`
	Sources []model.Source `json:"sources"`
}

// Client is the outbound boundary to the generative AI API. One call per
// user chat turn; the caller stores whatever comes back.
type Client interface {
	Ask(ctx context.Context, prompt string) (*Reply, error)
}

type geminiClient struct {
	client *genai.Client
	model  string
}

// NewGemini builds the Gemini-backed assistant client. An empty API key
// yields a client whose Ask fails fast with a configuration error instead of
// attempting the call, so the rest of the service keeps working.
func NewGemini(ctx context.Context, apiKey, modelName string) (Client, error) {
	if apiKey == "" {
		return disabledClient{}, nil
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &geminiClient{client: client, model: modelName}, nil
}

func (g *geminiClient) Ask(ctx context.Context, prompt string) (*Reply, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.7),
		TopP:              genai.Ptr[float32](0.95),
		TopK:              genai.Ptr[float32](64),
		Tools:             []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstream, err)
	}

	reply := &Reply{Text: resp.Text()}
	if reply.Text == "" {
		reply.Text = fallbackText
	}

	if len(resp.Candidates) > 0 && resp.Candidates[0].GroundingMetadata != nil {
		for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
			if chunk.Web != nil && chunk.Web.URI != "" && chunk.Web.Title != "" {
				reply.Sources = append(reply.Sources, model.Source{
					URI:   chunk.Web.URI,
					Title: chunk.Web.Title,
				})
			}
		}
	}

	return reply, nil
}

// disabledClient stands in when no API key is configured.
type disabledClient struct{}

func (disabledClient) Ask(ctx context.Context, prompt string) (*Reply, error) {
	return nil, apperrors.ErrAssistantNotConfigured
}
