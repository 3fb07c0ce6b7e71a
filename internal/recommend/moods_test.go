package recommend

import (
	"reflect"
	"testing"
)

func TestMoodTableResolveGenres(t *testing.T) {
	table := DefaultMoodTable()

	t.Run("known mood", func(t *testing.T) {
		got := table.ResolveGenres("happy")
		want := []string{"Comedy", "Family", "Music", "Animation"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ResolveGenres(happy) = %v, want %v", got, want)
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		if !reflect.DeepEqual(table.ResolveGenres("HaPPy"), table.ResolveGenres("happy")) {
			t.Error("mood lookup should be case-insensitive")
		}
		if !reflect.DeepEqual(table.ResolveGenres("  excited  "), table.ResolveGenres("excited")) {
			t.Error("mood lookup should trim whitespace")
		}
	})

	t.Run("unknown mood falls back", func(t *testing.T) {
		got := table.ResolveGenres("melancholic-but-hopeful")
		want := []string{"Drama", "Comedy"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("unknown mood = %v, want default %v", got, want)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		a := table.ResolveGenres("thrilled")
		b := table.ResolveGenres("thrilled")
		if !reflect.DeepEqual(a, b) {
			t.Error("same mood should resolve identically")
		}
	})
}

func TestMoodTableMoods(t *testing.T) {
	table := DefaultMoodTable()

	want := []string{
		"happy", "sad", "excited", "relaxed",
		"romantic", "thrilled", "nostalgic", "anxious",
	}
	if got := table.Moods(); !reflect.DeepEqual(got, want) {
		t.Errorf("Moods() = %v, want %v", got, want)
	}

	// Callers must not be able to mutate the table through the result.
	table.Moods()[0] = "hacked"
	if table.Moods()[0] != "happy" {
		t.Error("Moods() should return a copy")
	}
}

func TestCustomMoodTable(t *testing.T) {
	table := NewMoodTable(map[string][]string{
		"Focused": {"Documentary", "History"},
	}, []string{"focused"})

	if got := table.ResolveGenres("focused"); !reflect.DeepEqual(got, []string{"Documentary", "History"}) {
		t.Errorf("injected table not used: %v", got)
	}
	if got := table.ResolveGenres("happy"); !reflect.DeepEqual(got, []string{"Drama", "Comedy"}) {
		t.Errorf("moods absent from an injected table should fall back, got %v", got)
	}
}
