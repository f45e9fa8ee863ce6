package providers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	geminiTextModel  = "gemini-2.5-flash"
	geminiImageModel = "imagen-4.0-generate-001"
)

// GeminiClient generates prompts and preview images through the Gemini API.
type GeminiClient struct {
	client *genai.Client
}

func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("missing Gemini API key")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	return &GeminiClient{client: client}, nil
}

func (c *GeminiClient) Generate(ctx context.Context, req GenerateRequest) ([]string, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction(req), genai.RoleUser),
		Temperature:       genai.Ptr(req.Temperature),
		TopP:              genai.Ptr(req.TopP),
	}
	if req.Count > 1 {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = &genai.Schema{
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		}
	}

	resp, err := c.client.Models.GenerateContent(ctx, geminiTextModel,
		[]*genai.Content{genai.NewContentFromText(userContent(req), genai.RoleUser)}, cfg)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, errors.New("gemini returned no text")
	}

	if req.Count > 1 {
		var artifacts []string
		if err := json.Unmarshal([]byte(text), &artifacts); err != nil {
			return nil, fmt.Errorf("gemini returned an invalid sequence payload: %w", err)
		}
		return artifacts, nil
	}
	return []string{text}, nil
}

// DescribeImage analyzes an uploaded image into a generator-ready prompt.
func (c *GeminiClient) DescribeImage(ctx context.Context, image []byte, mimeType, language string) (string, error) {
	content := genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromBytes(image, mimeType),
		genai.NewPartFromText(imageDescriptionInstruction(language)),
	}, genai.RoleUser)

	resp, err := c.client.Models.GenerateContent(ctx, geminiTextModel, []*genai.Content{content}, nil)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("gemini returned no description")
	}
	return text, nil
}

func (c *GeminiClient) GenerateImage(ctx context.Context, prompt, aspectRatio string) (string, error) {
	resp, err := c.client.Models.GenerateImages(ctx, geminiImageModel, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		OutputMIMEType: "image/png",
		AspectRatio:    aspectRatio,
	})
	if err != nil {
		return "", err
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return "", errors.New("gemini returned no image")
	}

	encoded := base64.StdEncoding.EncodeToString(resp.GeneratedImages[0].Image.ImageBytes)
	return "data:image/png;base64," + encoded, nil
}
