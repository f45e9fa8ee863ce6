package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/mahamadoubmaiga/Koraprompt/internal/domain"
)

// GenerateRequest carries one generation round. AspectRatio is only
// meaningful for image prompts; Count above one asks for a sequence of
// prompts that build on each other.
type GenerateRequest struct {
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

type Client interface {
	Generate(ctx context.Context, req GenerateRequest) ([]string, error)
}

// ImageClient renders a finished prompt into a preview image, returned as a
// data URL.
type ImageClient interface {
	GenerateImage(ctx context.Context, prompt, aspectRatio string) (string, error)
}

// VisionClient turns an uploaded image into a detailed generator-ready prompt.
type VisionClient interface {
	DescribeImage(ctx context.Context, image []byte, mimeType, language string) (string, error)
}

type Registry struct {
	clients map[string]Client
	images  map[string]ImageClient
	visions map[string]VisionClient
}

func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[string]Client),
		images:  make(map[string]ImageClient),
		visions: make(map[string]VisionClient),
	}
}

func (r *Registry) Register(provider string, client Client) {
	name := strings.ToLower(provider)
	r.clients[name] = client
	if image, ok := client.(ImageClient); ok {
		r.images[name] = image
	}
	if vision, ok := client.(VisionClient); ok {
		r.visions[name] = vision
	}
}

func (r *Registry) Client(provider string) (Client, bool) {
	client, ok := r.clients[strings.ToLower(provider)]
	return client, ok
}

func (r *Registry) ImageClient(provider string) (ImageClient, bool) {
	client, ok := r.images[strings.ToLower(provider)]
	return client, ok
}

func (r *Registry) VisionClient(provider string) (VisionClient, bool) {
	client, ok := r.visions[strings.ToLower(provider)]
	return client, ok
}

func mediaTypeDescription(kind domain.PromptKind) string {
	switch kind {
	case domain.KindVideo:
		return "AI video generators"
	case domain.KindImage:
		return "AI image generators"
	case domain.KindAudio:
		return "AI music and audio generators"
	default:
		return "AI generators"
	}
}

func promptGuidelines(kind domain.PromptKind) string {
	switch kind {
	case domain.KindVideo:
		return "Include details about cinematography, camera movements, lighting, atmosphere, pacing, and visual style. Consider shot composition, transitions, and mood."
	case domain.KindImage:
		return "Include details about composition, lighting, color palette, artistic style, camera angle, and visual atmosphere. Consider texture, mood, and artistic references."
	case domain.KindAudio:
		return "Include details about genre, tempo (BPM), mood, instruments, vocals (if any), production style, song structure, and overall vibe. Consider dynamics, energy level, and musical references."
	default:
		return ""
	}
}

// systemInstruction composes the expert-role instruction for a request.
// Sequence requests additionally demand a strict JSON array of strings.
func systemInstruction(req GenerateRequest) string {
	language := "The final prompt(s) must be in English."
	if req.Language == "fr" {
		language = "The final prompt(s) must be in French."
	}

	if req.Count > 1 {
		sequenceLabel := "scenes/prompts"
		if req.Kind == domain.KindAudio {
			sequenceLabel = "tracks/sections"
		}
		return fmt.Sprintf(`You are a world-class creative director and prompt engineering expert for %s.
Your task is to take a user's idea and break it down into %d coherent %s.
Each prompt should be detailed, rich, and optimized for the specified AI generator, building upon the previous one to create a logical sequence.
%s
You must ONLY output a JSON array of strings, where each string is a complete, ready-to-use prompt. Do not include any other text or markdown.
%s`, mediaTypeDescription(req.Kind), req.Count, sequenceLabel, promptGuidelines(req.Kind), language)
	}

	return fmt.Sprintf(`You are a world-class prompt engineering expert for %s.
Your task is to take a user's simple idea and transform it into a highly detailed, rich, and optimized prompt tailored for a specific AI generator.
%s
The prompt should be descriptive, evocative, and include specific technical details relevant to the generator and media type.
You must ONLY output the final prompt text. Do not include any introductory phrases, explanations, or markdown formatting. Just the raw, ready-to-use prompt.
%s`, mediaTypeDescription(req.Kind), promptGuidelines(req.Kind), language)
}

func userContent(req GenerateRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "AI Generator: %s\nCategory/Genre: %s\nMedia Type: %s\n", req.GeneratorID, req.Category, req.Kind)

	if req.Count > 1 {
		fmt.Fprintf(&b, "Creative Idea: %q\nBreak this down into %d prompts.", req.Idea, req.Count)
	} else {
		fmt.Fprintf(&b, "User Idea: %q", req.Idea)
	}

	if req.NegativePrompt != "" {
		fmt.Fprintf(&b, "\nNegative Prompt (things to avoid in all prompts): %q", req.NegativePrompt)
	}
	if req.AspectRatio != "" && req.Kind == domain.KindImage {
		fmt.Fprintf(&b, "\nAspect Ratio: %s. If the generator supports it (e.g., MidJourney), include the aspect ratio parameter (like '--ar %s') in the prompt(s).", req.AspectRatio, req.AspectRatio)
	}

	return b.String()
}

// imageDescriptionInstruction is the analysis prompt sent alongside an
// uploaded image.
func imageDescriptionInstruction(language string) string {
	languageInstruction := "Describe the image in English."
	if language == "fr" {
		languageInstruction = "Describe the image in French."
	}
	return "Analyze this image in detail. Describe the subject, setting, style, composition, colors, and lighting to create a detailed and evocative text prompt for an AI image generator. " + languageInstruction
}

// EchoClient is a deterministic client for tests and keyless local runs.
type EchoClient struct{}

func (EchoClient) Generate(ctx context.Context, req GenerateRequest) ([]string, error) {
	count := req.Count
	if count < 1 {
		count = 1
	}
	artifacts := make([]string, count)
	for i := range artifacts {
		artifacts[i] = fmt.Sprintf("[%s/%s %d/%d] %s", req.GeneratorID, req.Kind, i+1, count, req.Idea)
	}
	return artifacts, nil
}

func (EchoClient) GenerateImage(ctx context.Context, prompt, aspectRatio string) (string, error) {
	return fmt.Sprintf("data:image/png;base64,echo-%s-%s", aspectRatio, prompt), nil
}

func (EchoClient) DescribeImage(ctx context.Context, image []byte, mimeType, language string) (string, error) {
	return fmt.Sprintf("[%s/%s] a detailed prompt describing an image of %d bytes", mimeType, language, len(image)), nil
}
