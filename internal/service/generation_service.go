package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mahamadoubmaiga/Koraprompt/internal/domain"
	"github.com/mahamadoubmaiga/Koraprompt/internal/providers"
)

const maxSequenceCount = 4

// generationFailureArtifact is returned in place of artifacts when the
// provider fails: the caller always gets something renderable and retryable,
// never an exception from the generation boundary.
const generationFailureArtifact = "An error occurred while generating the prompt. Please check your API key and try again."

type GenerateInput struct {
	Idea           string
	Kind           domain.PromptKind
	GeneratorID    string
	Category       string
	Language       string
	NegativePrompt string
	Temperature    float32
	TopP           float32
	AspectRatio    string
	Count          int
}

// GenerationService fronts the generation providers. It never persists
// anything; a result only becomes a project when the caller explicitly
// saves it.
type GenerationService struct {
	registry *providers.Registry
	provider string
	logger   *slog.Logger
}

func NewGenerationService(registry *providers.Registry, provider string, logger *slog.Logger) *GenerationService {
	return &GenerationService{registry: registry, provider: provider, logger: logger}
}

func (s *GenerationService) Generate(ctx context.Context, input GenerateInput) ([]string, error) {
	if strings.TrimSpace(input.Idea) == "" {
		return nil, validationf("an idea is required")
	}
	if !input.Kind.Valid() {
		return nil, validationf("unknown kind %q", input.Kind)
	}
	if input.Count < 1 {
		input.Count = 1
	}
	if input.Count > maxSequenceCount {
		input.Count = maxSequenceCount
	}

	client, ok := s.registry.Client(s.provider)
	if !ok {
		return nil, fmt.Errorf("%w: no client registered for provider %q", ErrUpstream, s.provider)
	}

	req := providers.GenerateRequest{
		Idea:           input.Idea,
		Kind:           input.Kind,
		GeneratorID:    input.GeneratorID,
		Category:       input.Category,
		Language:       input.Language,
		NegativePrompt: input.NegativePrompt,
		Temperature:    input.Temperature,
		TopP:           input.TopP,
		AspectRatio:    input.AspectRatio,
		Count:          input.Count,
	}
	if req.Kind != domain.KindImage {
		req.AspectRatio = ""
	}

	artifacts, err := client.Generate(ctx, req)
	if err != nil || len(artifacts) == 0 {
		s.logger.Error("generation failed", slog.String("provider", s.provider), slog.Any("error", err))
		return []string{generationFailureArtifact}, nil
	}
	if len(artifacts) > input.Count {
		artifacts = artifacts[:input.Count]
	}
	return artifacts, nil
}

// DescribeImage turns an uploaded image into a generator-ready prompt. The
// image arrives as a data URL or bare base64 payload; a data URL's media type
// wins over the mimeType argument.
func (s *GenerationService) DescribeImage(ctx context.Context, image, mimeType, language string) (string, error) {
	payload := strings.TrimSpace(image)
	if payload == "" {
		return "", validationf("an image is required")
	}
	if strings.HasPrefix(payload, "data:") {
		meta, rest, ok := strings.Cut(strings.TrimPrefix(payload, "data:"), ",")
		if !ok {
			return "", validationf("malformed image data URL")
		}
		mimeType = strings.TrimSuffix(meta, ";base64")
		payload = rest
	}
	if mimeType == "" {
		mimeType = "image/png"
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", validationf("image payload is not valid base64")
	}

	client, ok := s.registry.VisionClient(s.provider)
	if !ok {
		return "", fmt.Errorf("%w: provider %q cannot analyze images", ErrUpstream, s.provider)
	}

	prompt, err := client.DescribeImage(ctx, decoded, mimeType, language)
	if err != nil {
		s.logger.Error("image analysis failed", slog.String("provider", s.provider), slog.Any("error", err))
		return "", fmt.Errorf("%w: %s", ErrUpstream, err)
	}
	return prompt, nil
}

func (s *GenerationService) GenerateImage(ctx context.Context, prompt, aspectRatio string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", validationf("a prompt is required")
	}
	if aspectRatio == "" {
		aspectRatio = "1:1"
	}

	client, ok := s.registry.ImageClient(s.provider)
	if !ok {
		return "", fmt.Errorf("%w: provider %q cannot generate images", ErrUpstream, s.provider)
	}

	image, err := client.GenerateImage(ctx, prompt, aspectRatio)
	if err != nil {
		s.logger.Error("image generation failed", slog.String("provider", s.provider), slog.Any("error", err))
		return "", fmt.Errorf("%w: %s", ErrUpstream, err)
	}
	return image, nil
}
