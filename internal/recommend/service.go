// Package recommend implements the mood-based recommendation engine
// and its history records.
package recommend

import (
	"context"
	"time"

	"github.com/rabhirag60-coder/cine-ai/internal/apperr"
	"github.com/rabhirag60-coder/cine-ai/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultLimit = 20
	MaxLimit     = 50

	// HistoryPageSize caps one history listing.
	HistoryPageSize = 50
)

// Store interfaces consumed by the engine. The Mongo repositories
// satisfy them; tests use in-memory fakes.

type userStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.UserDoc, error)
}

type movieStore interface {
	FindCandidates(ctx context.Context, genres, languages []string, limit int64) ([]models.MovieDoc, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.MovieDoc, error)
}

type historyStore interface {
	Insert(ctx context.Context, rec *models.RecommendationDoc) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.RecommendationDoc, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.RecommendationDoc, error)
}

type Service struct {
	users   userStore
	movies  movieStore
	history historyStore
	moods   *MoodTable
}

func NewService(users userStore, movies movieStore, history historyStore, moods *MoodTable) *Service {
	return &Service{users: users, movies: movies, history: history, moods: moods}
}

func (s *Service) MoodOptions() []string {
	return s.moods.Moods()
}

// Result is one generation outcome: the persisted record plus the
// resolved movies, in rank order.
type Result struct {
	Record *models.RecommendationDoc
	Movies []models.MovieDoc
}

// Generate produces up to limit movies for a user and mood, then
// persists the outcome as an immutable history record. A failed insert
// fails the whole call.
func (s *Service) Generate(ctx context.Context, userID primitive.ObjectID, mood string, limit int) (*Result, error) {
	if limit <= 0 {
		limit = DefaultLimit
	} else if limit > MaxLimit {
		limit = MaxLimit
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("loading user", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}

	// Preferred genres, when set, override the mood entirely.
	effectiveGenres := user.PreferredGenres
	if len(effectiveGenres) == 0 {
		effectiveGenres = s.moods.ResolveGenres(mood)
	}

	// Snapshot of the watch history at call time.
	excluded := make(map[primitive.ObjectID]struct{}, len(user.WatchHistory))
	for _, id := range user.WatchHistory {
		excluded[id] = struct{}{}
	}

	// Over-fetch to leave headroom for the exclusion filter.
	candidates, err := s.movies.FindCandidates(ctx, effectiveGenres, user.PreferredLanguages, int64(2*limit))
	if err != nil {
		return nil, apperr.Internal("querying candidates", err)
	}

	filtered := candidates[:0:0]
	for _, m := range candidates {
		if _, watched := excluded[m.ID]; !watched {
			filtered = append(filtered, m)
		}
	}

	liked, err := s.likedGenres(ctx, user)
	if err != nil {
		return nil, err
	}
	ranked := RankByLikedGenres(filtered, liked)

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	ids := make([]primitive.ObjectID, len(ranked))
	for i, m := range ranked {
		ids[i] = m.ID
	}

	// The record is a generation-time snapshot, so it is stamped here
	// rather than at the storage layer.
	rec := &models.RecommendationDoc{
		UserID:            userID,
		Mood:              mood,
		RecommendedMovies: ids,
		CreatedAt:         time.Now().UTC(),
	}
	if err := s.history.Insert(ctx, rec); err != nil {
		return nil, apperr.Internal("saving recommendation history", err)
	}

	return &Result{Record: rec, Movies: ranked}, nil
}

// likedGenres collects genres from movies the user rated 4 or higher.
// Used only to re-rank, never to filter.
func (s *Service) likedGenres(ctx context.Context, user *models.UserDoc) (map[string]struct{}, error) {
	var likedIDs []primitive.ObjectID
	for hex, rating := range user.Ratings {
		if rating < 4 {
			continue
		}
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			continue
		}
		likedIDs = append(likedIDs, id)
	}
	if len(likedIDs) == 0 {
		return nil, nil
	}

	likedMovies, err := s.movies.FindByIDs(ctx, likedIDs)
	if err != nil {
		return nil, apperr.Internal("loading rated movies", err)
	}

	liked := make(map[string]struct{})
	for _, m := range likedMovies {
		for _, g := range m.Genres {
			liked[g] = struct{}{}
		}
	}
	return liked, nil
}

// HistoryEntry is a history record with its movies resolved for display.
type HistoryEntry struct {
	Record *models.RecommendationDoc
	Movies []models.MovieDoc
}

// History lists a user's records newest-first, capped at HistoryPageSize.
func (s *Service) History(ctx context.Context, userID primitive.ObjectID) ([]HistoryEntry, error) {
	recs, err := s.history.FindByUser(ctx, userID, HistoryPageSize)
	if err != nil {
		return nil, apperr.Internal("loading history", err)
	}

	out := make([]HistoryEntry, 0, len(recs))
	for i := range recs {
		movies, err := s.resolveMovies(ctx, recs[i].RecommendedMovies)
		if err != nil {
			return nil, err
		}
		out = append(out, HistoryEntry{Record: &recs[i], Movies: movies})
	}
	return out, nil
}

// GetByID fetches one record, enforcing ownership. A non-owner request
// for an existing record is Forbidden, not NotFound.
func (s *Service) GetByID(ctx context.Context, userID, recID primitive.ObjectID) (*HistoryEntry, error) {
	rec, err := s.history.FindByID(ctx, recID)
	if err != nil {
		return nil, apperr.Internal("loading recommendation", err)
	}
	if rec == nil {
		return nil, apperr.NotFound("recommendation not found")
	}
	if rec.UserID != userID {
		return nil, apperr.Forbidden("not authorized to access this recommendation")
	}

	movies, err := s.resolveMovies(ctx, rec.RecommendedMovies)
	if err != nil {
		return nil, err
	}
	return &HistoryEntry{Record: rec, Movies: movies}, nil
}

// resolveMovies loads full movie records preserving the stored order.
// Ids whose movie has since been deleted are skipped.
func (s *Service) resolveMovies(ctx context.Context, ids []primitive.ObjectID) ([]models.MovieDoc, error) {
	movies, err := s.movies.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Internal("loading movies", err)
	}

	byID := make(map[primitive.ObjectID]models.MovieDoc, len(movies))
	for _, m := range movies {
		byID[m.ID] = m
	}

	out := make([]models.MovieDoc, 0, len(ids))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}
