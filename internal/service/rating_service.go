package service

import (
	"context"

	"github.com/rabhirag60-coder/cine-ai/internal/apperr"
	"github.com/rabhirag60-coder/cine-ai/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store interfaces for the per-user mutations. The Mongo repositories
// satisfy them; tests use in-memory fakes.

type ratingUserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.UserDoc, error)
	SetRating(ctx context.Context, userID, movieID primitive.ObjectID, rating int) error
}

type movieFinder interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.MovieDoc, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.MovieDoc, error)
}

type RatingService struct {
	users  ratingUserStore
	movies movieFinder
}

func NewRatingService(users ratingUserStore, movies movieFinder) *RatingService {
	return &RatingService{users: users, movies: movies}
}

// Rate upserts one rating. The write is a single $set on the map key,
// so concurrent ratings never lose updates.
func (s *RatingService) Rate(ctx context.Context, userID, movieID primitive.ObjectID, rating int) error {
	if rating < 1 || rating > 5 {
		return apperr.Validation("rating must be between 1 and 5")
	}

	movie, err := s.movies.FindByID(ctx, movieID)
	if err != nil {
		return apperr.Internal("loading movie", err)
	}
	if movie == nil {
		return apperr.NotFound("movie not found")
	}

	if err := s.users.SetRating(ctx, userID, movieID, rating); err != nil {
		if isNoDocuments(err) {
			return apperr.NotFound("user not found")
		}
		return apperr.Internal("saving rating", err)
	}
	return nil
}

// RatedMovie pairs a movie with the user's rating for it.
type RatedMovie struct {
	Movie  models.MovieDoc `json:"movie"`
	Rating int             `json:"rating"`
}

func (s *RatingService) GetUserRatings(ctx context.Context, userID primitive.ObjectID) ([]RatedMovie, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("loading user", err)
	}
	if u == nil {
		return nil, apperr.NotFound("user not found")
	}

	ids := make([]primitive.ObjectID, 0, len(u.Ratings))
	for hex := range u.Ratings {
		if id, err := primitive.ObjectIDFromHex(hex); err == nil {
			ids = append(ids, id)
		}
	}

	movies, err := s.movies.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Internal("loading rated movies", err)
	}

	out := make([]RatedMovie, 0, len(movies))
	for _, m := range movies {
		out = append(out, RatedMovie{Movie: m, Rating: u.Ratings[m.ID.Hex()]})
	}
	return out, nil
}

// GetMovieRating returns the user's rating for one movie, 0 when unrated.
func (s *RatingService) GetMovieRating(ctx context.Context, userID, movieID primitive.ObjectID) (int, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return 0, apperr.Internal("loading user", err)
	}
	if u == nil {
		return 0, apperr.NotFound("user not found")
	}
	return u.Ratings[movieID.Hex()], nil
}
