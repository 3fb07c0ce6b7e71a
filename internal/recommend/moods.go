package recommend

import "strings"

// MoodTable maps mood labels to candidate genre lists. It is read-only
// after construction and injected into the service so tests can swap it.
type MoodTable struct {
	moods  []string
	genres map[string][]string
}

// defaultGenres is returned for moods not in the table; generation never
// fails on an unrecognized mood string.
var defaultGenres = []string{"Drama", "Comedy"}

func NewMoodTable(entries map[string][]string, order []string) *MoodTable {
	genres := make(map[string][]string, len(entries))
	for mood, gs := range entries {
		genres[strings.ToLower(mood)] = gs
	}
	return &MoodTable{moods: order, genres: genres}
}

func DefaultMoodTable() *MoodTable {
	return NewMoodTable(map[string][]string{
		"happy":     {"Comedy", "Family", "Music", "Animation"},
		"sad":       {"Drama", "Romance"},
		"excited":   {"Action", "Adventure", "Thriller", "Science Fiction"},
		"relaxed":   {"Drama", "Documentary", "Romance"},
		"romantic":  {"Romance", "Drama", "Comedy"},
		"thrilled":  {"Thriller", "Horror", "Action", "Mystery"},
		"nostalgic": {"Drama", "History", "Family"},
		"anxious":   {"Thriller", "Horror", "Mystery"},
	}, []string{
		"happy", "sad", "excited", "relaxed",
		"romantic", "thrilled", "nostalgic", "anxious",
	})
}

// ResolveGenres looks up a mood case-insensitively, falling back to the
// default pair for unknown moods.
func (t *MoodTable) ResolveGenres(mood string) []string {
	if gs, ok := t.genres[strings.ToLower(strings.TrimSpace(mood))]; ok {
		return gs
	}
	return defaultGenres
}

// Moods returns the known labels in their fixed order.
func (t *MoodTable) Moods() []string {
	out := make([]string, len(t.moods))
	copy(out, t.moods)
	return out
}
