package domain

// Generator names a third-party AI system prompts are tailored for. The
// catalog is static; generators are not executed by this service.
type Generator struct {
	ID   string     `json:"id"`
	Name string     `json:"name"`
	Kind PromptKind `json:"kind"`
}

// Template is a remixable seed prompt shown in the template library.
type Template struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Prompt      string     `json:"prompt"`
	Kind        PromptKind `json:"kind"`
	Category    string     `json:"category"`
	GeneratorID string     `json:"generator_id"`
}

var Generators = []Generator{
	{ID: "veo", Name: "Veo", Kind: KindVideo},
	{ID: "runway", Name: "Runway", Kind: KindVideo},
	{ID: "pika", Name: "Pika", Kind: KindVideo},
	{ID: "sora", Name: "Sora", Kind: KindVideo},
	{ID: "midjourney", Name: "MidJourney", Kind: KindImage},
	{ID: "stable-diffusion", Name: "Stable Diffusion", Kind: KindImage},
	{ID: "dalle", Name: "DALL·E 3", Kind: KindImage},
	{ID: "ideogram", Name: "Ideogram", Kind: KindImage},
	{ID: "suno", Name: "Suno", Kind: KindAudio},
	{ID: "udio", Name: "Udio", Kind: KindAudio},
}

var Categories = map[PromptKind][]string{
	KindVideo: {"cinematic", "tiktok", "surreal", "action", "storytelling", "music_video"},
	KindImage: {"portrait", "landscape", "logo", "surreal", "realistic", "fashion"},
	KindAudio: {"pop", "cinematic_score", "electronic", "lofi", "rock", "ambient"},
}

var Templates = []Template{
	{
		ID:          "v1",
		Name:        "Cinematic Drone Shot",
		Prompt:      "Epic 4K cinematic drone footage of a lone hiker on a snowy mountain peak at sunrise, dramatic lighting, lens flare, sweeping orchestral score, ultra-realistic.",
		Kind:        KindVideo,
		Category:    "cinematic",
		GeneratorID: "veo",
	},
	{
		ID:          "v2",
		Name:        "Viral TikTok Dance",
		Prompt:      "High-energy, fast-paced dance video, vibrant neon background, catchy pop song, quick cuts, energetic transitions, trending on TikTok.",
		Kind:        KindVideo,
		Category:    "tiktok",
		GeneratorID: "pika",
	},
	{
		ID:          "v3",
		Name:        "Explosive Action Scene",
		Prompt:      "A chaotic car chase scene in a cyberpunk city at night, rain-slicked streets, neon reflections, explosions, intense motion blur, high-octane action, sound of screeching tires and heavy synthwave music.",
		Kind:        KindVideo,
		Category:    "action",
		GeneratorID: "runway",
	},
	{
		ID:          "i1",
		Name:        "Photorealistic Portrait",
		Prompt:      "Ultra-realistic portrait of an elderly woman with deep wrinkles, soft natural light, shallow depth of field, 85mm lens, detailed skin texture, award-winning photography. --ar 4:3",
		Kind:        KindImage,
		Category:    "portrait",
		GeneratorID: "midjourney",
	},
	{
		ID:          "i2",
		Name:        "Surreal Landscape",
		Prompt:      "A breathtaking surreal landscape with floating islands, giant glowing mushrooms, and a river of stars, fantasy art style, vibrant colors, highly detailed, by Studio Ghibli.",
		Kind:        KindImage,
		Category:    "surreal",
		GeneratorID: "dalle",
	},
	{
		ID:          "i3",
		Name:        "Minimalist Logo Design",
		Prompt:      `Clean, minimalist logo design for a coffee shop named "Aura", a simple line art of a coffee cup with a subtle halo effect, on a white background, vector graphic.`,
		Kind:        KindImage,
		Category:    "logo",
		GeneratorID: "ideogram",
	},
}
