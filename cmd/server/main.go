package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/mvilela/sociable/internal/config"
	"github.com/mvilela/sociable/internal/database"
	mongorepo "github.com/mvilela/sociable/internal/repository/mongodb"
	"github.com/mvilela/sociable/internal/service"
	"github.com/mvilela/sociable/internal/storage"
	"github.com/mvilela/sociable/internal/transport/http/handlers"
	"github.com/mvilela/sociable/internal/transport/http/middleware"
)

func main() {
	// A missing .env is fine; the environment takes precedence anyway.
	_ = godotenv.Load()

	cfg := config.Load()

	// Database
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Client().Disconnect(context.Background())
	log.Println("Connected to database")

	// Repositories
	userRepo := mongorepo.NewUserRepo(db)
	postRepo := mongorepo.NewPostRepo(db)

	// Upload receiver
	receiver := storage.NewReceiver(cfg.UploadDir)

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	userService := service.NewUserService(userRepo)
	postService := service.NewPostService(postRepo, userRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, receiver)
	postHandler := handlers.NewPostHandler(postService, receiver)

	// Auth middleware
	auth := middleware.Auth(cfg.JWTSecret)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("POST /users/register", authHandler.Register)
	mux.HandleFunc("POST /tokens/login", authHandler.Login)

	// Uploaded images
	images := http.FileServer(http.Dir(filepath.Join(cfg.UploadDir, "images")))
	mux.Handle("GET /images/", http.StripPrefix("/images/", images))

	// Protected - Users
	mux.Handle("GET /users/{id}", auth(http.HandlerFunc(userHandler.Show)))
	mux.Handle("GET /users/{id}/friends", auth(http.HandlerFunc(userHandler.ListFriends)))
	mux.Handle("PATCH /users/update", auth(http.HandlerFunc(userHandler.Update)))
	mux.Handle("PATCH /users/update-friend/{friendId}", auth(http.HandlerFunc(userHandler.ToggleFriend)))

	// Protected - Posts
	mux.Handle("POST /posts/{page}", auth(http.HandlerFunc(postHandler.Create)))
	mux.Handle("GET /posts/{userId}", auth(http.HandlerFunc(postHandler.Feed)))
	mux.Handle("PATCH /posts/toggleLike/{postId}", auth(http.HandlerFunc(postHandler.ToggleLike)))

	// Start server with CORS
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, middleware.CORS(cfg.AllowedOrigins)(mux)))
}
