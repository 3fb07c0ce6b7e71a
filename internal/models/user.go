package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserDoc struct {
	ID                 primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name               string               `json:"name" bson:"name"`
	Email              string               `json:"email" bson:"email"`
	PasswordHash       string               `json:"-" bson:"passwordHash"`
	PreferredGenres    []string             `json:"preferredGenres" bson:"preferredGenres"`
	PreferredLanguages []string             `json:"preferredLanguages" bson:"preferredLanguages"`
	WatchHistory       []primitive.ObjectID `json:"watchHistory" bson:"watchHistory"`
	// Keyed by the movie ObjectID hex (BSON map keys are strings).
	// Values are 1-5, last write wins.
	Ratings   map[string]int `json:"ratings" bson:"ratings"`
	Role      string         `json:"role" bson:"role"`
	CreatedAt time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt" bson:"updatedAt"`
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

func (u *UserDoc) IsAdmin() bool { return u.Role == RoleAdmin }
