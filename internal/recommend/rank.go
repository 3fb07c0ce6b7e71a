package recommend

import (
	"sort"

	"github.com/rabhirag60-coder/cine-ai/internal/models"
)

// RankByLikedGenres reorders candidates by how many of their genres
// appear in likedGenres, descending. The sort is stable: candidates
// with equal overlap keep the order they arrived in (the catalog's
// popularity ordering). It never adds or removes entries.
func RankByLikedGenres(candidates []models.MovieDoc, likedGenres map[string]struct{}) []models.MovieDoc {
	if len(likedGenres) == 0 {
		return candidates
	}

	out := make([]models.MovieDoc, len(candidates))
	copy(out, candidates)

	overlap := func(m *models.MovieDoc) int {
		n := 0
		for _, g := range m.Genres {
			if _, ok := likedGenres[g]; ok {
				n++
			}
		}
		return n
	}

	sort.SliceStable(out, func(i, j int) bool {
		return overlap(&out[i]) > overlap(&out[j])
	})
	return out
}
