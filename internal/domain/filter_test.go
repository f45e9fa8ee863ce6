package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func filterFixtures() []Project {
	return []Project{
		{ID: "p1", Kind: KindVideo, GeneratorID: "veo", DisplayName: "Mountain Hike", SourceIdea: "a hiker at sunrise"},
		{ID: "p2", Kind: KindImage, GeneratorID: "midjourney", DisplayName: "Portrait", SourceIdea: "an elderly woman", FolderID: strPtr("f1")},
		{ID: "p3", Kind: KindVideo, GeneratorID: "runway", DisplayName: "Chase Scene", SourceIdea: "cyberpunk car chase", FolderID: strPtr("f2")},
		{ID: "p4", Kind: KindAudio, GeneratorID: "suno", DisplayName: "Lofi Beat", SourceIdea: "rainy day hiking playlist"},
	}
}

func ids(projects []Project) []string {
	out := make([]string, len(projects))
	for i, p := range projects {
		out[i] = p.ID
	}
	return out
}

func TestFilterProjectsQueryMatchesNameOrIdea(t *testing.T) {
	got := FilterProjects(filterFixtures(), ProjectFilter{Query: "HIK"})
	assert.Equal(t, []string{"p1", "p4"}, ids(got))
}

func TestFilterProjectsFacets(t *testing.T) {
	projects := filterFixtures()

	assert.Equal(t, []string{"p1", "p3"}, ids(FilterProjects(projects, ProjectFilter{Kind: "video"})))
	assert.Equal(t, []string{"p2"}, ids(FilterProjects(projects, ProjectFilter{Generator: "midjourney"})))
	assert.Equal(t, []string{"p1", "p2", "p3", "p4"}, ids(FilterProjects(projects, ProjectFilter{Kind: FilterAll, Generator: FilterAll, Folder: FilterAll})))
}

func TestFilterProjectsFolderFacet(t *testing.T) {
	projects := filterFixtures()

	assert.Equal(t, []string{"p2"}, ids(FilterProjects(projects, ProjectFilter{Folder: "f1"})))
	assert.Equal(t, []string{"p1", "p4"}, ids(FilterProjects(projects, ProjectFilter{Folder: FilterUnfiled})))
}

func TestFilterProjectsUnknownGeneratorYieldsEmpty(t *testing.T) {
	got := FilterProjects(filterFixtures(), ProjectFilter{Generator: "nonexistent"})
	assert.Empty(t, got)
}

func TestFilterProjectsIsPure(t *testing.T) {
	projects := filterFixtures()
	filter := ProjectFilter{Query: "a", Kind: "video"}

	first := FilterProjects(projects, filter)
	second := FilterProjects(projects, filter)
	assert.Equal(t, first, second)

	// Input order and contents are untouched.
	require.Equal(t, []string{"p1", "p2", "p3", "p4"}, ids(projects))
}
