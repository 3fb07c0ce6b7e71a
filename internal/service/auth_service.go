package service

import (
	"context"
	"time"

	"github.com/rabhirag60-coder/cine-ai/internal/apperr"
	"github.com/rabhirag60-coder/cine-ai/internal/models"
	"github.com/rabhirag60-coder/cine-ai/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users     *repository.UserRepository
	jwtSecret []byte
}

func NewAuthService(users *repository.UserRepository, secret string) *AuthService {
	return &AuthService{users: users, jwtSecret: []byte(secret)}
}

type RegisterUserData struct {
	Name               string
	Email              string
	Password           string
	PreferredGenres    []string
	PreferredLanguages []string
}

// Register creates a new user with the "user" role.
func (s *AuthService) Register(ctx context.Context, data RegisterUserData) (*models.UserDoc, string, error) {
	if data.Name == "" || data.Email == "" || data.Password == "" {
		return nil, "", apperr.Validation("please provide name, email and password")
	}
	if len(data.Password) < 6 {
		return nil, "", apperr.Validation("password must be at least 6 characters")
	}

	existing, err := s.users.FindByEmail(ctx, data.Email)
	if err != nil {
		return nil, "", apperr.Internal("looking up email", err)
	}
	if existing != nil {
		return nil, "", apperr.Conflict("user already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apperr.Internal("hashing password", err)
	}

	now := time.Now().UTC()
	u := &models.UserDoc{
		Name:               data.Name,
		Email:              data.Email,
		PasswordHash:       string(hash),
		PreferredGenres:    orEmpty(data.PreferredGenres),
		PreferredLanguages: orEmpty(data.PreferredLanguages),
		WatchHistory:       []primitive.ObjectID{},
		Ratings:            map[string]int{},
		Role:               models.RoleUser,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.users.Insert(ctx, u); err != nil {
		return nil, "", apperr.Internal("creating user", err)
	}

	token, err := s.signToken(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.UserDoc, string, error) {
	if email == "" || password == "" {
		return nil, "", apperr.Validation("please provide email and password")
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", apperr.Internal("looking up user", err)
	}
	if u == nil {
		return nil, "", apperr.Validation("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperr.Validation("invalid email or password")
	}

	token, err := s.signToken(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *AuthService) Me(ctx context.Context, userID primitive.ObjectID) (*models.UserDoc, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("loading user", err)
	}
	if u == nil {
		return nil, apperr.NotFound("user not found")
	}
	return u, nil
}

func (s *AuthService) signToken(u *models.UserDoc) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  u.ID.Hex(),
		"role": u.Role,
		"exp":  time.Now().Add(7 * 24 * time.Hour).Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", apperr.Internal("signing token", err)
	}
	return signed, nil
}

func orEmpty(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}
