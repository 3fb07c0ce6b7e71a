// Package tmdb is a thin client for The Movie Database API, used by
// admins to import titles into the catalog.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rabhirag60-coder/cine-ai/internal/models"
)

type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// ---- response types ----

type Movie struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Name             string  `json:"name"`
	Overview         string  `json:"overview"`
	ReleaseDate      string  `json:"release_date"`
	Popularity       float64 `json:"popularity"`
	PosterPath       string  `json:"poster_path"`
	GenreIDs         []int   `json:"genre_ids"`
	Genres           []Genre `json:"genres"`
	OriginalLanguage string  `json:"original_language"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type PageResponse struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// ---- API calls ----

func (c *Client) SearchMovies(ctx context.Context, query string, page int) (*PageResponse, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("page", strconv.Itoa(page))
	var out PageResponse
	if err := c.get(ctx, "/search/movie", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PopularMovies(ctx context.Context, page int) (*PageResponse, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	var out PageResponse
	if err := c.get(ctx, "/movie/popular", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DiscoverByGenre lists movies for one TMDB genre id, most popular first.
func (c *Client) DiscoverByGenre(ctx context.Context, genreID, page int) (*PageResponse, error) {
	q := url.Values{}
	q.Set("with_genres", strconv.Itoa(genreID))
	q.Set("sort_by", "popularity.desc")
	q.Set("page", strconv.Itoa(page))
	var out PageResponse
	if err := c.get(ctx, "/discover/movie", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MovieDetails(ctx context.Context, tmdbID int64) (*Movie, error) {
	var out Movie
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", tmdbID), url.Values{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, dest any) error {
	q.Set("api_key", c.apiKey)
	u := c.baseURL + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb: %s returned %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}

// ---- transform ----

// genreNames maps TMDB genre ids to the labels used in the catalog.
var genreNames = map[int]string{
	28: "Action", 12: "Adventure", 16: "Animation", 35: "Comedy",
	80: "Crime", 99: "Documentary", 18: "Drama", 10751: "Family",
	14: "Fantasy", 36: "History", 27: "Horror", 10402: "Music",
	9648: "Mystery", 10749: "Romance", 878: "Science Fiction",
	10770: "TV Movie", 53: "Thriller", 10752: "War", 37: "Western",
}

func GenreName(id int) string {
	if name, ok := genreNames[id]; ok {
		return name
	}
	return "Unknown"
}

const posterBase = "https://image.tmdb.org/t/p/w500"

// Transform converts a TMDB movie into the catalog schema. Works for
// both list results (genre_ids) and the detail shape (genres).
func Transform(m *Movie) *models.MovieDoc {
	title := m.Title
	if title == "" {
		title = m.Name
	}

	var genres []string
	for _, id := range m.GenreIDs {
		genres = append(genres, GenreName(id))
	}
	for _, g := range m.Genres {
		genres = append(genres, g.Name)
	}

	lang := m.OriginalLanguage
	if lang == "" {
		lang = "en"
	}

	year := 0
	if len(m.ReleaseDate) >= 4 {
		if y, err := strconv.Atoi(m.ReleaseDate[:4]); err == nil {
			year = y
		}
	}

	var poster string
	if m.PosterPath != "" {
		poster = posterBase + m.PosterPath
	}

	id := m.ID
	return &models.MovieDoc{
		Title:           title,
		Genres:          genres,
		Language:        lang,
		ReleaseYear:     year,
		PosterURL:       poster,
		Description:     m.Overview,
		PopularityScore: m.Popularity,
		TMDBID:          &id,
	}
}
