package service

import (
	"context"
	"testing"

	"github.com/rabhirag60-coder/cine-ai/internal/apperr"
	"github.com/rabhirag60-coder/cine-ai/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ---- fakes shared by the rating and watchlist tests ----

type fakeUserStore struct {
	users map[primitive.ObjectID]*models.UserDoc
}

func newFakeUserStore(users ...*models.UserDoc) *fakeUserStore {
	m := map[primitive.ObjectID]*models.UserDoc{}
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeUserStore{users: m}
}

func (f *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.UserDoc, error) {
	return f.users[id], nil
}

func (f *fakeUserStore) SetRating(_ context.Context, userID, movieID primitive.ObjectID, rating int) error {
	u := f.users[userID]
	if u.Ratings == nil {
		u.Ratings = map[string]int{}
	}
	u.Ratings[movieID.Hex()] = rating
	return nil
}

func (f *fakeUserStore) AddToWatchHistory(_ context.Context, userID, movieID primitive.ObjectID) (bool, error) {
	u := f.users[userID]
	for _, id := range u.WatchHistory {
		if id == movieID {
			return false, nil
		}
	}
	u.WatchHistory = append(u.WatchHistory, movieID)
	return true, nil
}

func (f *fakeUserStore) RemoveFromWatchHistory(_ context.Context, userID, movieID primitive.ObjectID) error {
	u := f.users[userID]
	out := u.WatchHistory[:0]
	for _, id := range u.WatchHistory {
		if id != movieID {
			out = append(out, id)
		}
	}
	u.WatchHistory = out
	return nil
}

type fakeMovieStore struct {
	movies map[primitive.ObjectID]*models.MovieDoc
}

func newFakeMovieStore(movies ...*models.MovieDoc) *fakeMovieStore {
	m := map[primitive.ObjectID]*models.MovieDoc{}
	for _, mv := range movies {
		m[mv.ID] = mv
	}
	return &fakeMovieStore{movies: m}
}

func (f *fakeMovieStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.MovieDoc, error) {
	return f.movies[id], nil
}

func (f *fakeMovieStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.MovieDoc, error) {
	var out []models.MovieDoc
	for _, id := range ids {
		if m, ok := f.movies[id]; ok {
			out = append(out, *m)
		}
	}
	return out, nil
}

func testUser() *models.UserDoc {
	return &models.UserDoc{
		ID:      primitive.NewObjectID(),
		Name:    "Ada",
		Ratings: map[string]int{},
	}
}

func testMovie(title string) *models.MovieDoc {
	return &models.MovieDoc{ID: primitive.NewObjectID(), Title: title, Genres: []string{"Drama"}}
}

// ---- tests ----

func TestRate(t *testing.T) {
	t.Run("valid rating is stored", func(t *testing.T) {
		u, m := testUser(), testMovie("a")
		svc := NewRatingService(newFakeUserStore(u), newFakeMovieStore(m))

		if err := svc.Rate(context.Background(), u.ID, m.ID, 4); err != nil {
			t.Fatal(err)
		}
		if u.Ratings[m.ID.Hex()] != 4 {
			t.Errorf("rating = %d, want 4", u.Ratings[m.ID.Hex()])
		}
	})

	t.Run("upsert replaces the prior rating", func(t *testing.T) {
		u, m := testUser(), testMovie("a")
		svc := NewRatingService(newFakeUserStore(u), newFakeMovieStore(m))

		_ = svc.Rate(context.Background(), u.ID, m.ID, 2)
		_ = svc.Rate(context.Background(), u.ID, m.ID, 5)
		if u.Ratings[m.ID.Hex()] != 5 {
			t.Errorf("rating = %d, want last write 5", u.Ratings[m.ID.Hex()])
		}
		if len(u.Ratings) != 1 {
			t.Errorf("ratings count = %d, want 1", len(u.Ratings))
		}
	})

	t.Run("out of range is rejected without state change", func(t *testing.T) {
		u, m := testUser(), testMovie("a")
		svc := NewRatingService(newFakeUserStore(u), newFakeMovieStore(m))

		for _, bad := range []int{0, 6, -1} {
			err := svc.Rate(context.Background(), u.ID, m.ID, bad)
			if apperr.KindOf(err) != apperr.KindValidation {
				t.Errorf("Rate(%d) kind = %v, want validation", bad, apperr.KindOf(err))
			}
		}
		if len(u.Ratings) != 0 {
			t.Error("rejected ratings must not be stored")
		}
	})

	t.Run("unknown movie is not found", func(t *testing.T) {
		u := testUser()
		svc := NewRatingService(newFakeUserStore(u), newFakeMovieStore())

		err := svc.Rate(context.Background(), u.ID, primitive.NewObjectID(), 3)
		if apperr.KindOf(err) != apperr.KindNotFound {
			t.Errorf("kind = %v, want not_found", apperr.KindOf(err))
		}
	})
}

func TestGetUserRatings(t *testing.T) {
	u, m := testUser(), testMovie("rated")
	other := testMovie("unrated")
	u.Ratings = map[string]int{m.ID.Hex(): 5}
	svc := NewRatingService(newFakeUserStore(u), newFakeMovieStore(m, other))

	out, err := svc.GetUserRatings(context.Background(), u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].Movie.ID != m.ID || out[0].Rating != 5 {
		t.Errorf("ratings = %+v", out)
	}
}

func TestGetMovieRating(t *testing.T) {
	u, m := testUser(), testMovie("a")
	u.Ratings = map[string]int{m.ID.Hex(): 3}
	svc := NewRatingService(newFakeUserStore(u), newFakeMovieStore(m))

	if r, _ := svc.GetMovieRating(context.Background(), u.ID, m.ID); r != 3 {
		t.Errorf("rating = %d, want 3", r)
	}
	if r, _ := svc.GetMovieRating(context.Background(), u.ID, primitive.NewObjectID()); r != 0 {
		t.Errorf("unrated movie rating = %d, want 0", r)
	}
}
