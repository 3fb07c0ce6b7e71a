package service

import (
	"context"
	"testing"

	"github.com/rabhirag60-coder/cine-ai/internal/apperr"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestWatchlistAdd(t *testing.T) {
	t.Run("appends a known movie", func(t *testing.T) {
		u, m := testUser(), testMovie("a")
		svc := NewWatchlistService(newFakeUserStore(u), newFakeMovieStore(m))

		if err := svc.Add(context.Background(), u.ID, m.ID); err != nil {
			t.Fatal(err)
		}
		if len(u.WatchHistory) != 1 || u.WatchHistory[0] != m.ID {
			t.Errorf("watch history = %v", u.WatchHistory)
		}
	})

	t.Run("unknown movie leaves history unchanged", func(t *testing.T) {
		u := testUser()
		svc := NewWatchlistService(newFakeUserStore(u), newFakeMovieStore())

		err := svc.Add(context.Background(), u.ID, primitive.NewObjectID())
		if apperr.KindOf(err) != apperr.KindNotFound {
			t.Errorf("kind = %v, want not_found", apperr.KindOf(err))
		}
		if len(u.WatchHistory) != 0 {
			t.Error("watch history must not change on a failed add")
		}
	})

	t.Run("duplicate add conflicts", func(t *testing.T) {
		u, m := testUser(), testMovie("a")
		svc := NewWatchlistService(newFakeUserStore(u), newFakeMovieStore(m))

		_ = svc.Add(context.Background(), u.ID, m.ID)
		err := svc.Add(context.Background(), u.ID, m.ID)
		if apperr.KindOf(err) != apperr.KindConflict {
			t.Errorf("kind = %v, want conflict", apperr.KindOf(err))
		}
		if len(u.WatchHistory) != 1 {
			t.Errorf("watch history = %v, want a single entry", u.WatchHistory)
		}
	})
}

func TestWatchlistRemove(t *testing.T) {
	u, m := testUser(), testMovie("a")
	u.WatchHistory = []primitive.ObjectID{m.ID}
	svc := NewWatchlistService(newFakeUserStore(u), newFakeMovieStore(m))

	if err := svc.Remove(context.Background(), u.ID, m.ID); err != nil {
		t.Fatal(err)
	}
	if len(u.WatchHistory) != 0 {
		t.Errorf("watch history = %v, want empty", u.WatchHistory)
	}

	// removing again is idempotent
	if err := svc.Remove(context.Background(), u.ID, m.ID); err != nil {
		t.Errorf("second remove should be a no-op, got %v", err)
	}
}

func TestWatchlistGet(t *testing.T) {
	u := testUser()
	a, b := testMovie("a"), testMovie("b")
	u.WatchHistory = []primitive.ObjectID{b.ID, a.ID}
	svc := NewWatchlistService(newFakeUserStore(u), newFakeMovieStore(a, b))

	movies, err := svc.Get(context.Background(), u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(movies) != 2 || movies[0].ID != b.ID || movies[1].ID != a.ID {
		t.Errorf("watchlist order not preserved: %+v", movies)
	}
}
