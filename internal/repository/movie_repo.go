package repository

import (
	"context"

	"github.com/rabhirag60-coder/cine-ai/internal/db"
	"github.com/rabhirag60-coder/cine-ai/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MovieRepository struct {
	col *mongo.Collection
}

func NewMovieRepository() *MovieRepository {
	return &MovieRepository{col: db.DB().Collection("movies")}
}

func (r *MovieRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.MovieDoc, error) {
	var m models.MovieDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &m, err
}

func (r *MovieRepository) FindByTMDBID(ctx context.Context, tmdbID int64) (*models.MovieDoc, error) {
	var m models.MovieDoc
	err := r.col.FindOne(ctx, bson.M{"tmdbId": tmdbID}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &m, err
}

func (r *MovieRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.MovieDoc, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	return decodeMovies(ctx, cur)
}

// FindCandidates is the recommendation candidate query: movies whose
// genre array intersects genres, optionally restricted to languages,
// sorted by popularity then release year (both descending).
func (r *MovieRepository) FindCandidates(ctx context.Context, genres, languages []string, limit int64) ([]models.MovieDoc, error) {
	filter := bson.M{"genre": bson.M{"$in": genres}}
	if len(languages) > 0 {
		filter["language"] = bson.M{"$in": languages}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "popularityScore", Value: -1}, {Key: "releaseYear", Value: -1}}).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	return decodeMovies(ctx, cur)
}

// Search lists movies with optional title/genre/language filters,
// sorted by popularity then newest.
func (r *MovieRepository) Search(ctx context.Context, q, genre, language string, limit, offset int64) ([]models.MovieDoc, error) {
	filter := bson.M{}
	if q != "" {
		filter["title"] = bson.M{"$regex": q, "$options": "i"}
	}
	if genre != "" {
		// genre is an array field, this matches membership
		filter["genre"] = genre
	}
	if language != "" {
		filter["language"] = language
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "popularityScore", Value: -1}, {Key: "createdAt", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	return decodeMovies(ctx, cur)
}

func (r *MovieRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *MovieRepository) Insert(ctx context.Context, m *models.MovieDoc) error {
	res, err := r.col.InsertOne(ctx, m)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		m.ID = oid
	}
	return nil
}

func (r *MovieRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MovieRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func decodeMovies(ctx context.Context, cur *mongo.Cursor) ([]models.MovieDoc, error) {
	var out []models.MovieDoc
	for cur.Next(ctx) {
		var m models.MovieDoc
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, cur.Err()
}
