package recommend

import (
	"testing"

	"github.com/rabhirag60-coder/cine-ai/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func movie(title string, genres ...string) models.MovieDoc {
	return models.MovieDoc{ID: primitive.NewObjectID(), Title: title, Genres: genres}
}

func titles(ms []models.MovieDoc) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Title
	}
	return out
}

func TestRankByLikedGenres(t *testing.T) {
	liked := map[string]struct{}{"Horror": {}, "Mystery": {}}

	t.Run("higher overlap ranks first", func(t *testing.T) {
		in := []models.MovieDoc{
			movie("comedy", "Comedy"),
			movie("horror", "Horror"),
			movie("horror-mystery", "Horror", "Mystery"),
		}
		got := titles(RankByLikedGenres(in, liked))
		want := []string{"horror-mystery", "horror", "comedy"}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("rank = %v, want %v", got, want)
			}
		}
	})

	t.Run("equal overlap keeps incoming order", func(t *testing.T) {
		in := []models.MovieDoc{
			movie("first-horror", "Horror"),
			movie("second-horror", "Horror", "Comedy"),
			movie("third-horror", "Horror", "Drama"),
		}
		got := titles(RankByLikedGenres(in, liked))
		want := []string{"first-horror", "second-horror", "third-horror"}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("stable order broken: %v, want %v", got, want)
			}
		}
	})

	t.Run("never adds or removes candidates", func(t *testing.T) {
		in := []models.MovieDoc{movie("a", "Comedy"), movie("b", "Horror")}
		got := RankByLikedGenres(in, liked)
		if len(got) != len(in) {
			t.Fatalf("length changed: %d -> %d", len(in), len(got))
		}
	})

	t.Run("empty liked set is a no-op", func(t *testing.T) {
		in := []models.MovieDoc{movie("a", "Comedy"), movie("b", "Horror")}
		got := titles(RankByLikedGenres(in, nil))
		if got[0] != "a" || got[1] != "b" {
			t.Errorf("order changed without liked genres: %v", got)
		}
	})

	t.Run("does not mutate input", func(t *testing.T) {
		in := []models.MovieDoc{movie("comedy", "Comedy"), movie("horror", "Horror")}
		RankByLikedGenres(in, liked)
		if in[0].Title != "comedy" {
			t.Error("input slice was reordered")
		}
	})
}
