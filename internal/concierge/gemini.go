package concierge

import (
	"context"
	"encoding/base64"
	"fmt"
	"iter"
	"strings"

	"bakery-storefront/internal/models"
	"bakery-storefront/internal/util"

	"google.golang.org/genai"
)

const (
	DefaultTextModel  = "gemini-3-flash-preview"
	DefaultImageModel = "gemini-2.5-flash-image"
)

// Gemini implements Adapter on the Google Gen AI SDK.
type Gemini struct {
	client            *genai.Client
	textModel         string
	imageModel        string
	systemInstruction string
}

// NewGemini creates a Gemini adapter. The menu is quoted in the chat's
// system instruction.
func NewGemini(ctx context.Context, apiKey, textModel, imageModel string, menu []models.CatalogItem) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	if textModel == "" {
		textModel = DefaultTextModel
	}
	if imageModel == "" {
		imageModel = DefaultImageModel
	}

	return &Gemini{
		client:            client,
		textModel:         textModel,
		imageModel:        imageModel,
		systemInstruction: SystemInstruction(menu),
	}, nil
}

// SystemInstruction describes the assistant persona and shop facts.
func SystemInstruction(menu []models.CatalogItem) string {
	var b strings.Builder
	b.WriteString(`You are QisAI, the charming and helpful AI assistant for Qisti Bakery in Kuala Lumpur.

YOUR ROLE:
- Assist customers with questions about our premium wedding/event cakes and daily pastry menu.
- Reflect our brand voice: elegant, professional, warm and inviting.
- Keep answers concise (under 60 words) unless a detailed explanation is requested.

KEY INFORMATION:
- Location: 123 Jalan Ampang, 50450 Kuala Lumpur.
- Contact/WhatsApp: +60 13-992 7122.
- Custom Cakes: We specialize in bespoke wedding, engagement and corporate event cakes.

DAILY MENU (Quick Reference):
`)
	for _, item := range menu {
		fmt.Fprintf(&b, "- %s (%s)\n", item.Name, item.Price)
	}
	b.WriteString(`
ACTIONS:
- If they want to order specific items, guide them to click the "Order" button on the menu items or WhatsApp us.
- If they want a custom cake design, suggest the "Design Studio" section on our website or the booking form.
- If asked about prices for custom cakes, explain that it depends on design complexity, but generally starts from RM 500.
`)
	return b.String()
}

func (g *Gemini) StartChat(ctx context.Context) (ChatSession, error) {
	chat, err := g.client.Chats.Create(ctx, g.textModel, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(g.systemInstruction, genai.RoleUser),
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}
	return &geminiChat{chat: chat}, nil
}

type geminiChat struct {
	chat *genai.Chat
}

func (c *geminiChat) SendMessage(ctx context.Context, text string) iter.Seq2[string, error] {
	return Once(func(yield func(string, error) bool) {
		for resp, err := range c.chat.SendMessageStream(ctx, genai.Part{Text: text}) {
			if err != nil {
				yield("", fmt.Errorf("chat stream failed: %w", err))
				return
			}
			if !yield(resp.Text(), nil) {
				return
			}
		}
	})
}

var designDetailsSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"description": {
			Type:        genai.TypeString,
			Description: "A mouth-watering marketing description of the cake, focusing on its role as an event centerpiece.",
		},
		"estimatedPrice": {
			Type:        genai.TypeString,
			Description: "An estimated quote for this custom event cake in Malaysian Ringgit (e.g. 'RM 1,200 - RM 1,500').",
		},
		"flavorProfile": {
			Type:        genai.TypeString,
			Description: "A sophisticated description of the flavor notes.",
		},
		"visualDetails": {
			Type:        genai.TypeString,
			Description: "A summary of the visual aesthetics and structural design.",
		},
	},
	Required: []string{"description", "estimatedPrice", "flavorProfile", "visualDetails"},
}

func detailsPrompt(prompt string) string {
	return fmt.Sprintf("Generate a detailed quote and description for a custom wedding or event cake request: %q.\n"+
		"The tone should be professional, celebratory, and upscale, suitable for a Malaysian audience.", prompt)
}

func imagePrompt(prompt string) string {
	return fmt.Sprintf("Create a professional, high-resolution food photography image of a bespoke wedding or event cake.\n"+
		"The cake is described as: %q.\n"+
		"If the description is vague, assume a high-end, elegant multi-tier cake suitable for a luxury wedding or gala in Malaysia.\n"+
		"The lighting should be warm, romantic, and appetizing. Photorealistic style, 4k quality, white background or elegant event setting.", prompt)
}

func (g *Gemini) GenerateDesignDetails(ctx context.Context, prompt string) (DesignDetails, error) {
	ctx, span := util.StartSpan(ctx, "Gemini.GenerateDesignDetails")
	defer span.End()

	resp, err := g.client.Models.GenerateContent(ctx, g.textModel, genai.Text(detailsPrompt(prompt)), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   designDetailsSchema,
	})
	if err != nil {
		return DesignDetails{}, fmt.Errorf("failed to generate design details: %w", err)
	}

	return DecodeDesignDetails(resp.Text())
}

func (g *Gemini) GenerateDesignImage(ctx context.Context, prompt string) (*string, error) {
	ctx, span := util.StartSpan(ctx, "Gemini.GenerateDesignImage")
	defer span.End()

	resp, err := g.client.Models.GenerateContent(ctx, g.imageModel, genai.Text(imagePrompt(prompt)), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate design image: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, nil
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
			continue
		}
		mime := part.InlineData.MIMEType
		if mime == "" {
			mime = "image/png"
		}
		url := fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(part.InlineData.Data))
		return &url, nil
	}
	return nil, nil
}
