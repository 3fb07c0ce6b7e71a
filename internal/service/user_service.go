package service

import (
	"context"

	"github.com/rabhirag60-coder/cine-ai/internal/apperr"
	"github.com/rabhirag60-coder/cine-ai/internal/models"
	"github.com/rabhirag60-coder/cine-ai/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserService struct {
	users *repository.UserRepository
}

func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.UserDoc, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("loading profile", err)
	}
	if u == nil {
		return nil, apperr.NotFound("user not found")
	}
	return u, nil
}

type ProfileUpdate struct {
	PreferredGenres    *[]string
	PreferredLanguages *[]string
}

// UpdateProfile changes the user's recommendation preferences.
func (s *UserService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, upd ProfileUpdate) (*models.UserDoc, error) {
	set := bson.M{}
	if upd.PreferredGenres != nil {
		set["preferredGenres"] = *upd.PreferredGenres
	}
	if upd.PreferredLanguages != nil {
		set["preferredLanguages"] = *upd.PreferredLanguages
	}
	if len(set) == 0 {
		return nil, apperr.Validation("no fields to update")
	}

	if err := s.users.UpdateByID(ctx, userID, set); err != nil {
		if isNoDocuments(err) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal("updating profile", err)
	}
	return s.GetProfile(ctx, userID)
}
