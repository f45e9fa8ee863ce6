package providers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahamadoubmaiga/Koraprompt/internal/domain"
)

type textOnlyClient struct{}

func (textOnlyClient) Generate(ctx context.Context, req GenerateRequest) ([]string, error) {
	return []string{"text"}, nil
}

func TestRegistryLookupIsCaseInsensitive(t *testing.T) {
	registry := NewRegistry()
	registry.Register("Gemini", EchoClient{})

	_, ok := registry.Client("gemini")
	assert.True(t, ok)
	_, ok = registry.Client("GEMINI")
	assert.True(t, ok)
	_, ok = registry.Client("openai")
	assert.False(t, ok)
}

func TestRegistryDetectsImageCapability(t *testing.T) {
	registry := NewRegistry()
	registry.Register("echo", EchoClient{})
	registry.Register("text", textOnlyClient{})

	_, ok := registry.ImageClient("echo")
	assert.True(t, ok)
	_, ok = registry.ImageClient("text")
	assert.False(t, ok)
}

func TestRegistryDetectsVisionCapability(t *testing.T) {
	registry := NewRegistry()
	registry.Register("echo", EchoClient{})
	registry.Register("text", textOnlyClient{})

	_, ok := registry.VisionClient("echo")
	assert.True(t, ok)
	_, ok = registry.VisionClient("text")
	assert.False(t, ok)
}

func TestImageDescriptionInstructionLanguage(t *testing.T) {
	english := imageDescriptionInstruction("en")
	assert.Contains(t, english, "Analyze this image in detail")
	assert.Contains(t, english, "Describe the image in English.")

	french := imageDescriptionInstruction("fr")
	assert.Contains(t, french, "Describe the image in French.")
}

func TestEchoClientSequence(t *testing.T) {
	artifacts, err := EchoClient{}.Generate(context.Background(), GenerateRequest{
		Idea:        "a hiker at sunrise",
		Kind:        domain.KindVideo,
		GeneratorID: "veo",
		Count:       3,
	})
	require.NoError(t, err)
	require.Len(t, artifacts, 3)
	assert.Contains(t, artifacts[0], "a hiker at sunrise")
	assert.Contains(t, artifacts[2], "3/3")
}

func TestSystemInstructionForSingleAndSequence(t *testing.T) {
	single := systemInstruction(GenerateRequest{Kind: domain.KindVideo, Count: 1})
	assert.Contains(t, single, "AI video generators")
	assert.Contains(t, single, "ONLY output the final prompt text")
	assert.NotContains(t, single, "JSON array")

	sequence := systemInstruction(GenerateRequest{Kind: domain.KindVideo, Count: 3})
	assert.Contains(t, sequence, "3 coherent scenes/prompts")
	assert.Contains(t, sequence, "JSON array of strings")

	audio := systemInstruction(GenerateRequest{Kind: domain.KindAudio, Count: 2})
	assert.Contains(t, audio, "tracks/sections")

	french := systemInstruction(GenerateRequest{Kind: domain.KindImage, Count: 1, Language: "fr"})
	assert.Contains(t, french, "must be in French")
}

func TestUserContentComposition(t *testing.T) {
	content := userContent(GenerateRequest{
		Idea:           "an elderly woman in soft light",
		Kind:           domain.KindImage,
		GeneratorID:    "midjourney",
		Category:       "portrait",
		NegativePrompt: "blurry",
		AspectRatio:    "4:3",
		Count:          1,
	})
	assert.Contains(t, content, "AI Generator: midjourney")
	assert.Contains(t, content, `Negative Prompt (things to avoid in all prompts): "blurry"`)
	assert.Contains(t, content, "--ar 4:3")

	// Aspect ratio guidance only applies to image prompts.
	video := userContent(GenerateRequest{
		Idea:        "a chase scene",
		Kind:        domain.KindVideo,
		GeneratorID: "veo",
		AspectRatio: "16:9",
		Count:       2,
	})
	assert.NotContains(t, video, "Aspect Ratio")
	assert.Contains(t, video, "Break this down into 2 prompts.")
}
