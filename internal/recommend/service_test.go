package recommend

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rabhirag60-coder/cine-ai/internal/apperr"
	"github.com/rabhirag60-coder/cine-ai/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ---- in-memory fakes ----

type fakeUsers struct {
	users map[primitive.ObjectID]*models.UserDoc
}

func (f *fakeUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.UserDoc, error) {
	return f.users[id], nil
}

type fakeMovies struct {
	// catalog in popularity order; FindCandidates filters it the way
	// the Mongo query would.
	catalog []models.MovieDoc

	lastGenres    []string
	lastLanguages []string
	lastLimit     int64
}

func (f *fakeMovies) FindCandidates(_ context.Context, genres, languages []string, limit int64) ([]models.MovieDoc, error) {
	f.lastGenres = genres
	f.lastLanguages = languages
	f.lastLimit = limit

	genreSet := map[string]struct{}{}
	for _, g := range genres {
		genreSet[g] = struct{}{}
	}
	langSet := map[string]struct{}{}
	for _, l := range languages {
		langSet[l] = struct{}{}
	}

	var out []models.MovieDoc
	for _, m := range f.catalog {
		match := false
		for _, g := range m.Genres {
			if _, ok := genreSet[g]; ok {
				match = true
				break
			}
		}
		if !match {
			continue
		}
		if len(langSet) > 0 {
			if _, ok := langSet[m.Language]; !ok {
				continue
			}
		}
		out = append(out, m)
		if int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeMovies) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.MovieDoc, error) {
	want := map[primitive.ObjectID]struct{}{}
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var out []models.MovieDoc
	for _, m := range f.catalog {
		if _, ok := want[m.ID]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeHistory struct {
	records   []*models.RecommendationDoc
	insertErr error
	lastLimit int64
}

func (f *fakeHistory) Insert(_ context.Context, rec *models.RecommendationDoc) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	rec.ID = primitive.NewObjectID()
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeHistory) FindByID(_ context.Context, id primitive.ObjectID) (*models.RecommendationDoc, error) {
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeHistory) FindByUser(_ context.Context, userID primitive.ObjectID, limit int64) ([]models.RecommendationDoc, error) {
	f.lastLimit = limit
	var out []models.RecommendationDoc
	// newest first: records were appended oldest first
	for i := len(f.records) - 1; i >= 0; i-- {
		if f.records[i].UserID == userID {
			out = append(out, *f.records[i])
		}
		if int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

// ---- fixtures ----

func catalogMovie(title, language string, popularity float64, genres ...string) models.MovieDoc {
	return models.MovieDoc{
		ID:              primitive.NewObjectID(),
		Title:           title,
		Genres:          genres,
		Language:        language,
		PopularityScore: popularity,
	}
}

type fixture struct {
	svc     *Service
	users   *fakeUsers
	movies  *fakeMovies
	history *fakeHistory
	user    *models.UserDoc
}

func newFixture(catalog []models.MovieDoc) *fixture {
	user := &models.UserDoc{
		ID:      primitive.NewObjectID(),
		Name:    "Ada",
		Email:   "ada@example.com",
		Ratings: map[string]int{},
	}
	users := &fakeUsers{users: map[primitive.ObjectID]*models.UserDoc{user.ID: user}}
	movies := &fakeMovies{catalog: catalog}
	history := &fakeHistory{}
	return &fixture{
		svc:     NewService(users, movies, history, DefaultMoodTable()),
		users:   users,
		movies:  movies,
		history: history,
		user:    user,
	}
}

// ---- tests ----

func TestGenerateEffectiveGenres(t *testing.T) {
	catalog := []models.MovieDoc{
		catalogMovie("comedy", "en", 10, "Comedy"),
		catalogMovie("drama", "en", 9, "Drama"),
		catalogMovie("horror", "en", 8, "Horror"),
	}

	t.Run("empty preferences use the mood table", func(t *testing.T) {
		f := newFixture(catalog)
		if _, err := f.svc.Generate(context.Background(), f.user.ID, "happy", 10); err != nil {
			t.Fatal(err)
		}
		want := []string{"Comedy", "Family", "Music", "Animation"}
		if !reflect.DeepEqual(f.movies.lastGenres, want) {
			t.Errorf("queried genres = %v, want mood genres %v", f.movies.lastGenres, want)
		}
	})

	t.Run("unknown mood uses the default pair", func(t *testing.T) {
		f := newFixture(catalog)
		res, err := f.svc.Generate(context.Background(), f.user.ID, "bewildered", 10)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(f.movies.lastGenres, []string{"Drama", "Comedy"}) {
			t.Errorf("queried genres = %v, want the default pair", f.movies.lastGenres)
		}
		if len(res.Movies) == 0 {
			t.Error("default genres should still produce candidates")
		}
	})

	t.Run("preferences override the mood entirely", func(t *testing.T) {
		f := newFixture(catalog)
		f.user.PreferredGenres = []string{"Horror"}
		if _, err := f.svc.Generate(context.Background(), f.user.ID, "happy", 10); err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(f.movies.lastGenres, []string{"Horror"}) {
			t.Errorf("queried genres = %v, want the user's preferences", f.movies.lastGenres)
		}
	})

	t.Run("language preference narrows the query", func(t *testing.T) {
		f := newFixture(catalog)
		f.user.PreferredLanguages = []string{"fr"}
		res, err := f.svc.Generate(context.Background(), f.user.ID, "happy", 10)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(f.movies.lastLanguages, []string{"fr"}) {
			t.Errorf("queried languages = %v", f.movies.lastLanguages)
		}
		if len(res.Movies) != 0 {
			t.Errorf("no catalog movie is French, got %d results", len(res.Movies))
		}
	})
}

func TestGenerateMoodScenario(t *testing.T) {
	// mood=happy, no preferences: only Comedy/Family/Music/Animation
	// titles are candidates.
	catalog := []models.MovieDoc{
		catalogMovie("comedy", "en", 10, "Comedy"),
		catalogMovie("drama", "en", 9, "Drama"),
		catalogMovie("horror", "en", 8, "Horror"),
		catalogMovie("family", "en", 7, "Family"),
	}
	f := newFixture(catalog)

	res, err := f.svc.Generate(context.Background(), f.user.ID, "happy", 10)
	if err != nil {
		t.Fatal(err)
	}
	got := titles(res.Movies)
	if !reflect.DeepEqual(got, []string{"comedy", "family"}) {
		t.Errorf("candidates = %v, want only happy-mood genres", got)
	}
}

func TestGenerateExcludesWatchHistory(t *testing.T) {
	watched := catalogMovie("watched-comedy", "en", 100, "Comedy")
	fresh := catalogMovie("fresh-comedy", "en", 50, "Comedy")
	f := newFixture([]models.MovieDoc{watched, fresh})
	f.user.WatchHistory = []primitive.ObjectID{watched.ID}

	res, err := f.svc.Generate(context.Background(), f.user.ID, "happy", 10)
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range res.Movies {
		if m.ID == watched.ID {
			t.Fatal("watched movie leaked into the result")
		}
	}
	for _, id := range res.Record.RecommendedMovies {
		if id == watched.ID {
			t.Fatal("watched movie leaked into the history record")
		}
	}
	if len(res.Movies) != 1 || res.Movies[0].ID != fresh.ID {
		t.Errorf("expected only the fresh movie, got %v", titles(res.Movies))
	}
}

func TestGenerateLimit(t *testing.T) {
	var catalog []models.MovieDoc
	for i := 0; i < 30; i++ {
		catalog = append(catalog, catalogMovie("comedy", "en", float64(100-i), "Comedy"))
	}

	t.Run("over-fetches then truncates", func(t *testing.T) {
		f := newFixture(catalog)
		res, err := f.svc.Generate(context.Background(), f.user.ID, "happy", 5)
		if err != nil {
			t.Fatal(err)
		}
		if f.movies.lastLimit != 10 {
			t.Errorf("candidate fetch limit = %d, want 2x the requested limit", f.movies.lastLimit)
		}
		if len(res.Movies) != 5 {
			t.Errorf("got %d movies, want 5", len(res.Movies))
		}
		if len(res.Record.RecommendedMovies) != 5 {
			t.Errorf("record has %d ids, want 5", len(res.Record.RecommendedMovies))
		}
	})

	t.Run("fewer candidates than limit is not an error", func(t *testing.T) {
		f := newFixture(catalog[:3])
		res, err := f.svc.Generate(context.Background(), f.user.ID, "happy", 10)
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Movies) != 3 {
			t.Errorf("got %d movies, want the 3 available", len(res.Movies))
		}
	})

	t.Run("zero limit uses the default", func(t *testing.T) {
		f := newFixture(catalog)
		res, err := f.svc.Generate(context.Background(), f.user.ID, "happy", 0)
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Movies) != DefaultLimit {
			t.Errorf("got %d movies, want default %d", len(res.Movies), DefaultLimit)
		}
	})

	t.Run("limit is clamped", func(t *testing.T) {
		f := newFixture(catalog)
		if _, err := f.svc.Generate(context.Background(), f.user.ID, "happy", 500); err != nil {
			t.Fatal(err)
		}
		if f.movies.lastLimit != 2*MaxLimit {
			t.Errorf("fetch limit = %d, want clamped to %d", f.movies.lastLimit, 2*MaxLimit)
		}
	})
}

func TestGenerateLikedGenreBoost(t *testing.T) {
	ratedHorror := catalogMovie("rated-horror", "en", 1, "Horror")
	comedy := catalogMovie("comedy", "en", 50, "Comedy")
	horror := catalogMovie("horror", "en", 50, "Horror")

	f := newFixture([]models.MovieDoc{ratedHorror, comedy, horror})
	f.user.PreferredGenres = []string{"Comedy", "Horror"}
	f.user.WatchHistory = []primitive.ObjectID{ratedHorror.ID}
	f.user.Ratings = map[string]int{ratedHorror.ID.Hex(): 5}

	res, err := f.svc.Generate(context.Background(), f.user.ID, "happy", 10)
	if err != nil {
		t.Fatal(err)
	}
	got := titles(res.Movies)
	if len(got) != 2 || got[0] != "horror" {
		t.Errorf("rank = %v, want the horror movie boosted first", got)
	}
}

func TestGenerateLowRatingsDoNotBoost(t *testing.T) {
	ratedHorror := catalogMovie("rated-horror", "en", 1, "Horror")
	comedy := catalogMovie("comedy", "en", 60, "Comedy")
	horror := catalogMovie("horror", "en", 50, "Horror")

	f := newFixture([]models.MovieDoc{comedy, horror, ratedHorror})
	f.user.PreferredGenres = []string{"Comedy", "Horror"}
	f.user.Ratings = map[string]int{ratedHorror.ID.Hex(): 3}

	res, err := f.svc.Generate(context.Background(), f.user.ID, "happy", 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := titles(res.Movies); got[0] != "comedy" {
		t.Errorf("rank = %v, ratings below 4 must not boost", got)
	}
}

func TestGenerateHistoryRecord(t *testing.T) {
	catalog := []models.MovieDoc{
		catalogMovie("comedy", "en", 10, "Comedy"),
		catalogMovie("family", "en", 9, "Family"),
	}

	t.Run("record matches the returned movies in order", func(t *testing.T) {
		f := newFixture(catalog)
		res, err := f.svc.Generate(context.Background(), f.user.ID, "happy", 10)
		if err != nil {
			t.Fatal(err)
		}
		if len(f.history.records) != 1 {
			t.Fatalf("got %d records, want 1", len(f.history.records))
		}
		rec := f.history.records[0]
		if rec.UserID != f.user.ID || rec.Mood != "happy" {
			t.Errorf("record = %+v", rec)
		}
		if len(rec.RecommendedMovies) != len(res.Movies) {
			t.Fatal("record id count differs from returned movies")
		}
		for i, m := range res.Movies {
			if rec.RecommendedMovies[i] != m.ID {
				t.Errorf("record order diverges at %d", i)
			}
		}
		if rec.CreatedAt.IsZero() {
			t.Error("record should carry a creation timestamp")
		}
	})

	t.Run("two identical calls create two records", func(t *testing.T) {
		f := newFixture(catalog)
		a, err := f.svc.Generate(context.Background(), f.user.ID, "happy", 10)
		if err != nil {
			t.Fatal(err)
		}
		b, err := f.svc.Generate(context.Background(), f.user.ID, "happy", 10)
		if err != nil {
			t.Fatal(err)
		}
		if a.Record.ID == b.Record.ID {
			t.Error("each generation must create a distinct record")
		}
		if len(f.history.records) != 2 {
			t.Errorf("got %d records, want 2", len(f.history.records))
		}
	})

	t.Run("insert failure fails the call", func(t *testing.T) {
		f := newFixture(catalog)
		f.history.insertErr = errors.New("mongo down")
		_, err := f.svc.Generate(context.Background(), f.user.ID, "happy", 10)
		if err == nil {
			t.Fatal("expected an error when history cannot be persisted")
		}
		if apperr.KindOf(err) != apperr.KindInternal {
			t.Errorf("kind = %v, want internal", apperr.KindOf(err))
		}
	})
}

func TestGenerateUnknownUser(t *testing.T) {
	f := newFixture(nil)
	_, err := f.svc.Generate(context.Background(), primitive.NewObjectID(), "happy", 10)
	if err == nil {
		t.Fatal("expected error for unknown user")
	}
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("kind = %v, want not_found", apperr.KindOf(err))
	}
	if len(f.history.records) != 0 {
		t.Error("no record should be written for a failed call")
	}
}

func TestHistoryListing(t *testing.T) {
	m := catalogMovie("comedy", "en", 10, "Comedy")
	f := newFixture([]models.MovieDoc{m})

	for i := 0; i < 3; i++ {
		if _, err := f.svc.Generate(context.Background(), f.user.ID, "happy", 10); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := f.svc.History(context.Background(), f.user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if f.history.lastLimit != HistoryPageSize {
		t.Errorf("history query limit = %d, want %d", f.history.lastLimit, HistoryPageSize)
	}
	// newest first: the head of the listing is the last record written
	if entries[0].Record.ID != f.history.records[2].ID {
		t.Error("history should list newest first")
	}
	if len(entries[0].Movies) != 1 || entries[0].Movies[0].ID != m.ID {
		t.Error("history entries should resolve movies")
	}
}

func TestGetByIDOwnership(t *testing.T) {
	m := catalogMovie("comedy", "en", 10, "Comedy")
	f := newFixture([]models.MovieDoc{m})

	res, err := f.svc.Generate(context.Background(), f.user.ID, "happy", 10)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("owner reads the record", func(t *testing.T) {
		entry, err := f.svc.GetByID(context.Background(), f.user.ID, res.Record.ID)
		if err != nil {
			t.Fatal(err)
		}
		if entry.Record.ID != res.Record.ID {
			t.Error("wrong record returned")
		}
	})

	t.Run("non-owner gets forbidden", func(t *testing.T) {
		stranger := primitive.NewObjectID()
		_, err := f.svc.GetByID(context.Background(), stranger, res.Record.ID)
		if apperr.KindOf(err) != apperr.KindForbidden {
			t.Errorf("kind = %v, want forbidden", apperr.KindOf(err))
		}
	})

	t.Run("missing record is not found", func(t *testing.T) {
		_, err := f.svc.GetByID(context.Background(), f.user.ID, primitive.NewObjectID())
		if apperr.KindOf(err) != apperr.KindNotFound {
			t.Errorf("kind = %v, want not_found", apperr.KindOf(err))
		}
	})
}
