package main

import (
	"log"
	"net/http"

	_ "github.com/rabhirag60-coder/cine-ai/docs" // swagger docs

	"github.com/rabhirag60-coder/cine-ai/internal/cache"
	"github.com/rabhirag60-coder/cine-ai/internal/config"
	"github.com/rabhirag60-coder/cine-ai/internal/db"
	"github.com/rabhirag60-coder/cine-ai/internal/handler"
	"github.com/rabhirag60-coder/cine-ai/internal/recommend"
	"github.com/rabhirag60-coder/cine-ai/internal/repository"
	"github.com/rabhirag60-coder/cine-ai/internal/service"
	"github.com/rabhirag60-coder/cine-ai/internal/tmdb"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Cine-AI API
// @version 1.0
// @description Mood-based movie recommendation backend (Mongo, Redis, TMDB)
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	db.InitMongo(cfg)
	cache.InitRedis(cfg)

	// repos
	userRepo := repository.NewUserRepository()
	movieRepo := repository.NewMovieRepository()
	recRepo := repository.NewRecommendationRepository()

	tmdbClient := tmdb.NewClient(cfg.TMDBAPIKey, cfg.TMDBBaseURL)

	// services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	userSvc := service.NewUserService(userRepo)
	movieSvc := service.NewMovieService(movieRepo, tmdbClient)
	ratingSvc := service.NewRatingService(userRepo, movieRepo)
	watchlistSvc := service.NewWatchlistService(userRepo, movieRepo)
	recSvc := recommend.NewService(userRepo, movieRepo, recRepo, recommend.DefaultMoodTable())
	adminSvc := service.NewAdminService(userRepo, movieRepo, recRepo)

	// handlers
	authH := handler.NewAuthHandler(authSvc)
	userH := handler.NewUserHandler(userSvc)
	movieH := handler.NewMovieHandler(movieSvc)
	ratingH := handler.NewRatingHandler(ratingSvc)
	watchlistH := handler.NewWatchlistHandler(watchlistSvc)
	recH := handler.NewRecommendHandler(recSvc)
	adminH := handler.NewAdminHandler(adminSvc)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// =============
	// Public routes
	// =============
	r.Get("/health", handler.Health)

	r.Post("/api/auth/register", authH.Register)
	r.Post("/api/auth/login", authH.Login)

	r.Get("/api/movies", movieH.List)
	r.Get("/api/movies/search/tmdb", movieH.SearchTMDB)
	r.Get("/api/movies/popular/tmdb", movieH.PopularTMDB)
	r.Get("/api/movies/discover/tmdb", movieH.DiscoverTMDB)
	r.Get("/api/movies/{id}", movieH.Get)

	r.Get("/api/recommendations/moods", recH.MoodOptions)

	// ===========================
	// JWT-protected routes
	// ===========================
	authMw := handler.JWTAuth(cfg.JWTSecret)

	r.Group(func(r chi.Router) {
		r.Use(authMw)

		r.Get("/api/auth/me", authH.Me)

		r.Get("/api/users/profile", userH.GetProfile)
		r.Put("/api/users/profile", userH.UpdateProfile)

		r.Post("/api/movies/{id}/rate", ratingH.Rate)
		r.Get("/api/movies/{id}/rating", ratingH.GetMovieRating)
		r.Get("/api/ratings", ratingH.GetMyRatings)

		r.Get("/api/watchlist", watchlistH.Get)
		r.Post("/api/watchlist", watchlistH.Add)
		r.Delete("/api/watchlist/{movieId}", watchlistH.Remove)

		r.Post("/api/recommendations", recH.Generate)
		r.Get("/api/recommendations", recH.History)
		r.Get("/api/recommendations/{id}", recH.GetByID)
		r.Get("/api/ws/recommendations", recH.GenerateWS)

		// ---- ADMIN only ----
		r.Group(func(r chi.Router) {
			r.Use(handler.AdminOnly())

			r.Post("/api/movies", movieH.Create)
			r.Put("/api/movies/{id}", movieH.Update)
			r.Delete("/api/movies/{id}", movieH.Delete)

			r.Get("/api/admin/stats", adminH.GetStats)
			r.Get("/api/admin/users", adminH.ListUsers)
			r.Get("/api/admin/users/{id}", adminH.GetUser)
			r.Put("/api/admin/users/{id}", adminH.UpdateUser)
			r.Delete("/api/admin/users/{id}", adminH.DeleteUser)
			r.Get("/api/admin/movies", adminH.ListMovies)
		})
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	log.Printf("HTTP listening on :%s", cfg.HTTPPort)
	log.Fatal(http.ListenAndServe(":"+cfg.HTTPPort, r))
}
