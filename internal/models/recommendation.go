package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecommendationDoc is an immutable snapshot of one generation call.
// The movie list is fixed at creation time and never recomputed.
type RecommendationDoc struct {
	ID                primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	UserID            primitive.ObjectID   `json:"userId" bson:"userId"`
	Mood              string               `json:"mood" bson:"mood"`
	RecommendedMovies []primitive.ObjectID `json:"recommendedMovies" bson:"recommendedMovies"`
	CreatedAt         time.Time            `json:"createdAt" bson:"createdAt"`
}
