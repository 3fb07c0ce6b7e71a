package service

import (
	"context"
	"sort"
	"time"

	"github.com/rabhirag60-coder/cine-ai/internal/apperr"
	"github.com/rabhirag60-coder/cine-ai/internal/models"
	"github.com/rabhirag60-coder/cine-ai/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AdminService struct {
	users  *repository.UserRepository
	movies *repository.MovieRepository
	recs   *repository.RecommendationRepository
}

func NewAdminService(users *repository.UserRepository, movies *repository.MovieRepository, recs *repository.RecommendationRepository) *AdminService {
	return &AdminService{users: users, movies: movies, recs: recs}
}

type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

type WatchedMovie struct {
	Movie      models.MovieDoc `json:"movie"`
	WatchCount int             `json:"watchCount"`
}

type Stats struct {
	TotalUsers           int64          `json:"totalUsers"`
	TotalAdmins          int64          `json:"totalAdmins"`
	RecentUsers          int64          `json:"recentUsers"`
	TotalMovies          int64          `json:"totalMovies"`
	TotalRecommendations int64          `json:"totalRecommendations"`
	TopGenres            []GenreCount   `json:"topGenres"`
	TopWatchedMovies     []WatchedMovie `json:"topWatchedMovies"`
}

// GetStats builds the dashboard: catalog/user/recommendation counts,
// the five most common genres, and the five most-watchlisted movies.
func (s *AdminService) GetStats(ctx context.Context) (*Stats, error) {
	totalUsers, err := s.users.Count(ctx, nil)
	if err != nil {
		return nil, apperr.Internal("counting users", err)
	}
	totalAdmins, err := s.users.Count(ctx, bson.M{"role": models.RoleAdmin})
	if err != nil {
		return nil, apperr.Internal("counting admins", err)
	}
	weekAgo := time.Now().UTC().AddDate(0, 0, -7)
	recentUsers, err := s.users.Count(ctx, bson.M{"createdAt": bson.M{"$gte": weekAgo}})
	if err != nil {
		return nil, apperr.Internal("counting recent users", err)
	}
	totalMovies, err := s.movies.Count(ctx)
	if err != nil {
		return nil, apperr.Internal("counting movies", err)
	}
	totalRecs, err := s.recs.Count(ctx)
	if err != nil {
		return nil, apperr.Internal("counting recommendations", err)
	}

	movies, err := s.movies.Search(ctx, "", "", "", 0, 0)
	if err != nil {
		return nil, apperr.Internal("loading movies", err)
	}
	genreCounts := map[string]int{}
	for _, m := range movies {
		for _, g := range m.Genres {
			genreCounts[g]++
		}
	}
	topGenres := topN(genreCounts, 5)

	allUsers, err := s.users.All(ctx)
	if err != nil {
		return nil, apperr.Internal("loading users", err)
	}
	watchCounts := map[primitive.ObjectID]int{}
	for _, u := range allUsers {
		for _, id := range u.WatchHistory {
			watchCounts[id]++
		}
	}
	topWatched := s.topWatched(ctx, watchCounts, 5)

	return &Stats{
		TotalUsers:           totalUsers,
		TotalAdmins:          totalAdmins,
		RecentUsers:          recentUsers,
		TotalMovies:          totalMovies,
		TotalRecommendations: totalRecs,
		TopGenres:            topGenres,
		TopWatchedMovies:     topWatched,
	}, nil
}

func topN(counts map[string]int, n int) []GenreCount {
	out := make([]GenreCount, 0, len(counts))
	for g, c := range counts {
		out = append(out, GenreCount{Genre: g, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Genre < out[j].Genre
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func (s *AdminService) topWatched(ctx context.Context, counts map[primitive.ObjectID]int, n int) []WatchedMovie {
	type pair struct {
		id    primitive.ObjectID
		count int
	}
	pairs := make([]pair, 0, len(counts))
	for id, c := range counts {
		pairs = append(pairs, pair{id, c})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].count > pairs[j].count })
	if len(pairs) > n {
		pairs = pairs[:n]
	}

	ids := make([]primitive.ObjectID, len(pairs))
	for i, p := range pairs {
		ids[i] = p.id
	}
	movies, err := s.movies.FindByIDs(ctx, ids)
	if err != nil {
		return nil
	}
	byID := make(map[primitive.ObjectID]models.MovieDoc, len(movies))
	for _, m := range movies {
		byID[m.ID] = m
	}

	out := make([]WatchedMovie, 0, len(pairs))
	for _, p := range pairs {
		if m, ok := byID[p.id]; ok {
			out = append(out, WatchedMovie{Movie: m, WatchCount: p.count})
		}
	}
	return out
}

func (s *AdminService) ListUsers(ctx context.Context, q string, limit, offset int64) ([]models.UserDoc, error) {
	out, err := s.users.Search(ctx, q, limit, offset)
	if err != nil {
		return nil, apperr.Internal("listing users", err)
	}
	return out, nil
}

func (s *AdminService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.UserDoc, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("loading user", err)
	}
	if u == nil {
		return nil, apperr.NotFound("user not found")
	}
	return u, nil
}

type AdminUserUpdate struct {
	Role               *string
	PreferredGenres    *[]string
	PreferredLanguages *[]string
}

func (s *AdminService) UpdateUser(ctx context.Context, id primitive.ObjectID, upd AdminUserUpdate) (*models.UserDoc, error) {
	set := bson.M{}
	if upd.Role != nil {
		if *upd.Role != models.RoleUser && *upd.Role != models.RoleAdmin {
			return nil, apperr.Validation("role must be user or admin")
		}
		set["role"] = *upd.Role
	}
	if upd.PreferredGenres != nil {
		set["preferredGenres"] = *upd.PreferredGenres
	}
	if upd.PreferredLanguages != nil {
		set["preferredLanguages"] = *upd.PreferredLanguages
	}
	if len(set) == 0 {
		return nil, apperr.Validation("no fields to update")
	}

	if err := s.users.UpdateByID(ctx, id, set); err != nil {
		if isNoDocuments(err) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal("updating user", err)
	}
	return s.GetUser(ctx, id)
}

// DeleteUser removes the user and their recommendation history.
func (s *AdminService) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	if err := s.users.DeleteByID(ctx, id); err != nil {
		if isNoDocuments(err) {
			return apperr.NotFound("user not found")
		}
		return apperr.Internal("deleting user", err)
	}
	if err := s.recs.DeleteByUser(ctx, id); err != nil {
		return apperr.Internal("deleting user history", err)
	}
	return nil
}

func (s *AdminService) ListMovies(ctx context.Context, limit, offset int64) ([]models.MovieDoc, error) {
	out, err := s.movies.Search(ctx, "", "", "", limit, offset)
	if err != nil {
		return nil, apperr.Internal("listing movies", err)
	}
	return out, nil
}
