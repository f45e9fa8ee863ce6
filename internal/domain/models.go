package domain

import "time"

type PromptKind string

const (
	KindVideo PromptKind = "video"
	KindImage PromptKind = "image"
	KindAudio PromptKind = "audio"
)

func (k PromptKind) Valid() bool {
	switch k {
	case KindVideo, KindImage, KindAudio:
		return true
	}
	return false
}

type User struct {
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Session struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Token     string    `db:"token"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
	LastUsed  time.Time `db:"last_used_at"`
}

type Folder struct {
	ID        string    `db:"id" json:"id"`
	OwnerID   string    `db:"owner_id" json:"owner_id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PresetSettings is the fixed set of generator form fields a preset captures.
type PresetSettings struct {
	GeneratorID     string `json:"generator_id"`
	Category        string `json:"category"`
	NegativePrompt  string `json:"negative_prompt"`
	CreativityLevel string `json:"creativity_level"`
	AspectRatio     string `json:"aspect_ratio"`
}

// Preset contents are immutable once created; there is no update operation.
type Preset struct {
	ID        string         `json:"id"`
	OwnerID   string         `json:"owner_id"`
	Name      string         `json:"name"`
	Settings  PresetSettings `json:"settings"`
	CreatedAt time.Time      `json:"created_at"`
}

// PromptVersion is an immutable snapshot of a project's artifacts. It only
// exists embedded in a project's version history.
type PromptVersion struct {
	Artifacts []string  `json:"artifacts"`
	CreatedAt time.Time `json:"created_at"`
}

// Project is a saved generation result. Versions is ordered newest first and
// its head always matches the current Artifacts. OwnerID is nil for anonymous
// legacy records, FolderID is nil for unfiled projects.
type Project struct {
	ID           string          `json:"id"`
	Kind         PromptKind      `json:"kind"`
	Artifacts    []string        `json:"artifacts"`
	Versions     []PromptVersion `json:"versions"`
	GeneratorID  string          `json:"generator_id"`
	SourceIdea   string          `json:"source_idea"`
	DisplayName  string          `json:"display_name"`
	PreviewImage *string         `json:"preview_image,omitempty"`
	OwnerID      *string         `json:"owner_id"`
	FolderID     *string         `json:"folder_id"`
	IsPublished  bool            `json:"is_published"`
	LikeCount    int             `json:"like_count"`
	LikedBy      []string        `json:"liked_by"`
	CreatedAt    time.Time       `json:"created_at"`
}

// LikedByUser reports whether userID currently has the project liked.
func (p Project) LikedByUser(userID string) bool {
	for _, id := range p.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}
