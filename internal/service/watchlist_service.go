package service

import (
	"context"

	"github.com/rabhirag60-coder/cine-ai/internal/apperr"
	"github.com/rabhirag60-coder/cine-ai/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type watchlistUserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.UserDoc, error)
	AddToWatchHistory(ctx context.Context, userID, movieID primitive.ObjectID) (bool, error)
	RemoveFromWatchHistory(ctx context.Context, userID, movieID primitive.ObjectID) error
}

type WatchlistService struct {
	users  watchlistUserStore
	movies movieFinder
}

func NewWatchlistService(users watchlistUserStore, movies movieFinder) *WatchlistService {
	return &WatchlistService{users: users, movies: movies}
}

// Get returns the watchlist resolved to full movie records, in list order.
func (s *WatchlistService) Get(ctx context.Context, userID primitive.ObjectID) ([]models.MovieDoc, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("loading user", err)
	}
	if u == nil {
		return nil, apperr.NotFound("user not found")
	}

	movies, err := s.movies.FindByIDs(ctx, u.WatchHistory)
	if err != nil {
		return nil, apperr.Internal("loading watchlist movies", err)
	}

	byID := make(map[primitive.ObjectID]models.MovieDoc, len(movies))
	for _, m := range movies {
		byID[m.ID] = m
	}
	out := make([]models.MovieDoc, 0, len(u.WatchHistory))
	for _, id := range u.WatchHistory {
		if m, ok := byID[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

// Add appends a movie. Unknown movies are NotFound, duplicates Conflict;
// the duplicate check and the append are a single $addToSet.
func (s *WatchlistService) Add(ctx context.Context, userID, movieID primitive.ObjectID) error {
	movie, err := s.movies.FindByID(ctx, movieID)
	if err != nil {
		return apperr.Internal("loading movie", err)
	}
	if movie == nil {
		return apperr.NotFound("movie not found")
	}

	added, err := s.users.AddToWatchHistory(ctx, userID, movieID)
	if err != nil {
		if isNoDocuments(err) {
			return apperr.NotFound("user not found")
		}
		return apperr.Internal("updating watchlist", err)
	}
	if !added {
		return apperr.Conflict("movie already in watchlist")
	}
	return nil
}

// Remove is idempotent: pulling an absent id is not an error.
func (s *WatchlistService) Remove(ctx context.Context, userID, movieID primitive.ObjectID) error {
	if err := s.users.RemoveFromWatchHistory(ctx, userID, movieID); err != nil {
		if isNoDocuments(err) {
			return apperr.NotFound("user not found")
		}
		return apperr.Internal("updating watchlist", err)
	}
	return nil
}
