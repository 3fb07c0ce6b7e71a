package tmdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestTransform(t *testing.T) {
	t.Run("list result shape", func(t *testing.T) {
		m := &Movie{
			ID:               603,
			Title:            "The Matrix",
			Overview:         "A hacker learns the truth.",
			ReleaseDate:      "1999-03-31",
			Popularity:       84.5,
			PosterPath:       "/matrix.jpg",
			GenreIDs:         []int{28, 878},
			OriginalLanguage: "en",
		}
		doc := Transform(m)

		if doc.Title != "The Matrix" {
			t.Errorf("title = %q", doc.Title)
		}
		if !reflect.DeepEqual(doc.Genres, []string{"Action", "Science Fiction"}) {
			t.Errorf("genres = %v", doc.Genres)
		}
		if doc.ReleaseYear != 1999 {
			t.Errorf("year = %d", doc.ReleaseYear)
		}
		if doc.PosterURL != "https://image.tmdb.org/t/p/w500/matrix.jpg" {
			t.Errorf("poster = %q", doc.PosterURL)
		}
		if doc.TMDBID == nil || *doc.TMDBID != 603 {
			t.Error("tmdb id not carried over")
		}
	})

	t.Run("detail shape uses named genres", func(t *testing.T) {
		m := &Movie{
			ID:     42,
			Title:  "Some Film",
			Genres: []Genre{{ID: 18, Name: "Drama"}},
		}
		doc := Transform(m)
		if !reflect.DeepEqual(doc.Genres, []string{"Drama"}) {
			t.Errorf("genres = %v", doc.Genres)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		doc := Transform(&Movie{ID: 1, Name: "TV Thing"})
		if doc.Title != "TV Thing" {
			t.Errorf("title should fall back to name, got %q", doc.Title)
		}
		if doc.Language != "en" {
			t.Errorf("language default = %q", doc.Language)
		}
		if doc.ReleaseYear != 0 {
			t.Errorf("year without release date = %d", doc.ReleaseYear)
		}
		if doc.PosterURL != "" {
			t.Errorf("poster without path = %q", doc.PosterURL)
		}
	})

	t.Run("unknown genre id", func(t *testing.T) {
		if GenreName(999999) != "Unknown" {
			t.Error("unknown ids should map to Unknown")
		}
	})
}

func TestClientSearchMovies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("api_key") != "test-key" || q.Get("query") != "matrix" || q.Get("page") != "2" {
			t.Errorf("query = %v", q)
		}
		_ = json.NewEncoder(w).Encode(PageResponse{
			Page:       2,
			Results:    []Movie{{ID: 603, Title: "The Matrix"}},
			TotalPages: 5,
		})
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL)
	resp, err := c.SearchMovies(context.Background(), "matrix", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 1 || resp.Results[0].ID != 603 {
		t.Errorf("results = %+v", resp.Results)
	}
	if resp.TotalPages != 5 {
		t.Errorf("total pages = %d", resp.TotalPages)
	}
}

func TestClientDiscoverByGenre(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/discover/movie" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("with_genres") != "27" || q.Get("sort_by") != "popularity.desc" {
			t.Errorf("query = %v", q)
		}
		_ = json.NewEncoder(w).Encode(PageResponse{
			Page:    1,
			Results: []Movie{{ID: 694, Title: "The Shining"}},
		})
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL)
	resp, err := c.DiscoverByGenre(context.Background(), 27, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 1 || resp.Results[0].ID != 694 {
		t.Errorf("results = %+v", resp.Results)
	}
}

func TestClientUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient("bad-key", srv.URL)
	if _, err := c.MovieDetails(context.Background(), 603); err == nil {
		t.Fatal("expected an error for a non-200 response")
	}
}
