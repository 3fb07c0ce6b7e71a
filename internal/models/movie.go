package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MovieDoc struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title           string             `json:"title" bson:"title"`
	Genres          []string           `json:"genre" bson:"genre"`
	Language        string             `json:"language" bson:"language"`
	ReleaseYear     int                `json:"releaseYear" bson:"releaseYear"`
	PosterURL       string             `json:"posterURL,omitempty" bson:"posterURL,omitempty"`
	Description     string             `json:"description,omitempty" bson:"description,omitempty"`
	PopularityScore float64            `json:"popularityScore" bson:"popularityScore"`
	// TMDB id, unique when present (sparse index).
	TMDBID    *int64    `json:"tmdbId,omitempty" bson:"tmdbId,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type MovieCreateRequest struct {
	Title           string   `json:"title"`
	Genres          []string `json:"genre"`
	Language        string   `json:"language"`
	ReleaseYear     int      `json:"releaseYear"`
	PosterURL       string   `json:"posterURL"`
	Description     string   `json:"description"`
	PopularityScore float64  `json:"popularityScore"`
	// When set, the movie is imported from TMDB and the rest of the
	// fields are ignored.
	TMDBID *int64 `json:"tmdbId"`
}

type MovieUpdateRequest struct {
	Title           *string   `json:"title"`
	Genres          *[]string `json:"genre"`
	Language        *string   `json:"language"`
	ReleaseYear     *int      `json:"releaseYear"`
	PosterURL       *string   `json:"posterURL"`
	Description     *string   `json:"description"`
	PopularityScore *float64  `json:"popularityScore"`
}
