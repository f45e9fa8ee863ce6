package domain

import "strings"

const (
	// FilterAll matches every value of a facet.
	FilterAll = "all"
	// FilterUnfiled restricts the folder facet to projects without a folder.
	FilterUnfiled = "unfiled"
)

type ProjectFilter struct {
	Query     string
	Kind      string
	Generator string
	Folder    string
}

// FilterProjects narrows projects to those matching the filter. It is a pure
// function: the input slice is never mutated and relative order is preserved.
func FilterProjects(projects []Project, f ProjectFilter) []Project {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	result := make([]Project, 0, len(projects))
	for _, p := range projects {
		if query != "" &&
			!strings.Contains(strings.ToLower(p.DisplayName), query) &&
			!strings.Contains(strings.ToLower(p.SourceIdea), query) {
			continue
		}
		if !facetMatches(f.Kind, string(p.Kind)) {
			continue
		}
		if !facetMatches(f.Generator, p.GeneratorID) {
			continue
		}
		if !folderMatches(f.Folder, p.FolderID) {
			continue
		}
		result = append(result, p)
	}
	return result
}

func facetMatches(filter, value string) bool {
	return filter == "" || filter == FilterAll || filter == value
}

func folderMatches(filter string, folderID *string) bool {
	switch filter {
	case "", FilterAll:
		return true
	case FilterUnfiled:
		return folderID == nil
	default:
		return folderID != nil && *folderID == filter
	}
}
