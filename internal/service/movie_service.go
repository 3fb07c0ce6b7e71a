package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rabhirag60-coder/cine-ai/internal/apperr"
	"github.com/rabhirag60-coder/cine-ai/internal/cache"
	"github.com/rabhirag60-coder/cine-ai/internal/models"
	"github.com/rabhirag60-coder/cine-ai/internal/repository"
	"github.com/rabhirag60-coder/cine-ai/internal/tmdb"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	movieCacheTTL       = 600 // seconds
	tmdbPopularCacheTTL = 600
)

type MovieService struct {
	movies *repository.MovieRepository
	tmdb   *tmdb.Client
}

func NewMovieService(movies *repository.MovieRepository, tmdbClient *tmdb.Client) *MovieService {
	return &MovieService{movies: movies, tmdb: tmdbClient}
}

func movieCacheKey(id primitive.ObjectID) string { return "movie:" + id.Hex() }

func (s *MovieService) GetMovie(ctx context.Context, id primitive.ObjectID) (*models.MovieDoc, error) {
	var cached models.MovieDoc
	if ok, err := cache.GetJSON(ctx, movieCacheKey(id), &cached); err == nil && ok {
		return &cached, nil
	}

	m, err := s.movies.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("loading movie", err)
	}
	if m == nil {
		return nil, apperr.NotFound("movie not found")
	}

	_ = cache.SetJSON(ctx, movieCacheKey(id), m, movieCacheTTL)
	return m, nil
}

func (s *MovieService) List(ctx context.Context, q, genre, language string, limit, offset int64) ([]models.MovieDoc, error) {
	out, err := s.movies.Search(ctx, q, genre, language, limit, offset)
	if err != nil {
		return nil, apperr.Internal("listing movies", err)
	}
	return out, nil
}

// Create adds a movie either manually or, when TMDBID is set, by
// importing it from TMDB. An upstream failure aborts with no write.
func (s *MovieService) Create(ctx context.Context, req *models.MovieCreateRequest) (*models.MovieDoc, error) {
	if req.TMDBID != nil {
		return s.createFromTMDB(ctx, *req.TMDBID)
	}

	if req.Title == "" {
		return nil, apperr.Validation("title is required")
	}
	if len(req.Genres) == 0 {
		return nil, apperr.Validation("at least one genre is required")
	}
	if req.Language == "" {
		return nil, apperr.Validation("language is required")
	}
	if req.ReleaseYear == 0 {
		return nil, apperr.Validation("releaseYear is required")
	}

	now := time.Now().UTC()
	m := &models.MovieDoc{
		Title:           req.Title,
		Genres:          req.Genres,
		Language:        req.Language,
		ReleaseYear:     req.ReleaseYear,
		PosterURL:       req.PosterURL,
		Description:     req.Description,
		PopularityScore: req.PopularityScore,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.movies.Insert(ctx, m); err != nil {
		return nil, apperr.Internal("creating movie", err)
	}
	return m, nil
}

func (s *MovieService) createFromTMDB(ctx context.Context, tmdbID int64) (*models.MovieDoc, error) {
	existing, err := s.movies.FindByTMDBID(ctx, tmdbID)
	if err != nil {
		return nil, apperr.Internal("checking for existing movie", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("movie already exists in database")
	}

	detail, err := s.tmdb.MovieDetails(ctx, tmdbID)
	if err != nil {
		return nil, apperr.Upstream("fetching movie from TMDB", err)
	}

	m := tmdb.Transform(detail)
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	if err := s.movies.Insert(ctx, m); err != nil {
		return nil, apperr.Internal("creating movie", err)
	}
	return m, nil
}

func (s *MovieService) Update(ctx context.Context, id primitive.ObjectID, req *models.MovieUpdateRequest) (*models.MovieDoc, error) {
	set := bson.M{}
	if req.Title != nil {
		if *req.Title == "" {
			return nil, apperr.Validation("title cannot be empty")
		}
		set["title"] = *req.Title
	}
	if req.Genres != nil {
		if len(*req.Genres) == 0 {
			return nil, apperr.Validation("genre list cannot be empty")
		}
		set["genre"] = *req.Genres
	}
	if req.Language != nil {
		set["language"] = *req.Language
	}
	if req.ReleaseYear != nil {
		set["releaseYear"] = *req.ReleaseYear
	}
	if req.PosterURL != nil {
		set["posterURL"] = *req.PosterURL
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.PopularityScore != nil {
		set["popularityScore"] = *req.PopularityScore
	}
	if len(set) == 0 {
		return nil, apperr.Validation("no fields to update")
	}
	set["updatedAt"] = time.Now().UTC()

	if err := s.movies.UpdateByID(ctx, id, set); err != nil {
		if isNoDocuments(err) {
			return nil, apperr.NotFound("movie not found")
		}
		return nil, apperr.Internal("updating movie", err)
	}

	_ = cache.Del(ctx, movieCacheKey(id))
	return s.GetMovie(ctx, id)
}

func (s *MovieService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.movies.DeleteByID(ctx, id); err != nil {
		if isNoDocuments(err) {
			return apperr.NotFound("movie not found")
		}
		return apperr.Internal("deleting movie", err)
	}
	_ = cache.Del(ctx, movieCacheKey(id))
	return nil
}

// ---- TMDB browsing (results are transformed but not persisted) ----

func (s *MovieService) SearchTMDB(ctx context.Context, query string, page int) ([]models.MovieDoc, int, error) {
	if query == "" {
		return nil, 0, apperr.Validation("please provide a search query")
	}
	resp, err := s.tmdb.SearchMovies(ctx, query, page)
	if err != nil {
		return nil, 0, apperr.Upstream("searching TMDB", err)
	}
	return transformAll(resp.Results), resp.TotalPages, nil
}

func (s *MovieService) DiscoverTMDB(ctx context.Context, genreID, page int) ([]models.MovieDoc, int, error) {
	if genreID <= 0 {
		return nil, 0, apperr.Validation("please provide a genre id")
	}
	resp, err := s.tmdb.DiscoverByGenre(ctx, genreID, page)
	if err != nil {
		return nil, 0, apperr.Upstream("discovering movies on TMDB", err)
	}
	return transformAll(resp.Results), resp.TotalPages, nil
}

func (s *MovieService) PopularTMDB(ctx context.Context, page int) ([]models.MovieDoc, int, error) {
	key := fmt.Sprintf("tmdb:popular:%d", page)

	var cached struct {
		Movies     []models.MovieDoc `json:"movies"`
		TotalPages int               `json:"totalPages"`
	}
	if ok, err := cache.GetJSON(ctx, key, &cached); err == nil && ok {
		return cached.Movies, cached.TotalPages, nil
	}

	resp, err := s.tmdb.PopularMovies(ctx, page)
	if err != nil {
		return nil, 0, apperr.Upstream("fetching popular movies from TMDB", err)
	}

	cached.Movies = transformAll(resp.Results)
	cached.TotalPages = resp.TotalPages
	_ = cache.SetJSON(ctx, key, cached, tmdbPopularCacheTTL)
	return cached.Movies, cached.TotalPages, nil
}

func transformAll(movies []tmdb.Movie) []models.MovieDoc {
	out := make([]models.MovieDoc, 0, len(movies))
	for i := range movies {
		out = append(out, *tmdb.Transform(&movies[i]))
	}
	return out
}
