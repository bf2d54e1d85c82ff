package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"useradmin/handlers"
	"useradmin/middleware"
	"useradmin/models"
	"useradmin/utils"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, continuing..")
		}
	}

	cfg, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize the database connection pool
	dbPool, err := utils.OpenDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	if err := utils.EnsureSchema(ctx, dbPool); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}
	log.Println("DB Connection established")

	if err := utils.CreateDefaultUser(ctx, dbPool); err != nil {
		log.Println("Failed to seed default administrator:", err)
	}

	redisClient := utils.OpenRedisClient(cfg.RedisURL)
	defer redisClient.Close()

	// Periodic expired-session sweep, stopped with the server
	go utils.StartSessionCleanup(ctx, redisClient, cfg.CleanupInterval)

	protected := middleware.Protected(cfg, dbPool, redisClient)
	adminOnly := middleware.Protected(cfg, dbPool, redisClient, models.GroupAdministrator)

	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		handlers.Login(w, r, cfg, dbPool, redisClient)
	})
	mux.HandleFunc("GET /auth/{$}", protected(handlers.Me))
	mux.HandleFunc("PUT /auth/password", protected(func(w http.ResponseWriter, r *http.Request) {
		handlers.ChangeOwnPassword(w, r, dbPool)
	}))
	mux.HandleFunc("POST /auth/logout", protected(func(w http.ResponseWriter, r *http.Request) {
		handlers.Logout(w, r, redisClient)
	}))

	mux.HandleFunc("GET /users/{$}", protected(func(w http.ResponseWriter, r *http.Request) {
		handlers.ListUsers(w, r, dbPool)
	}))
	mux.HandleFunc("GET /users/{id}", protected(func(w http.ResponseWriter, r *http.Request) {
		handlers.GetUser(w, r, dbPool)
	}))
	mux.HandleFunc("POST /users/{$}", adminOnly(func(w http.ResponseWriter, r *http.Request) {
		handlers.CreateUser(w, r, dbPool)
	}))
	mux.HandleFunc("PUT /users/{id}", adminOnly(func(w http.ResponseWriter, r *http.Request) {
		handlers.UpdateUser(w, r, dbPool)
	}))
	mux.HandleFunc("PUT /users/{id}/password", adminOnly(func(w http.ResponseWriter, r *http.Request) {
		handlers.SetUserPassword(w, r, dbPool)
	}))
	mux.HandleFunc("DELETE /users/{id}", adminOnly(func(w http.ResponseWriter, r *http.Request) {
		handlers.DeleteUser(w, r, dbPool)
	}))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: middleware.CORS(cfg.AllowedHosts)(mux),
	}

	go func() {
		log.Println("Starting server on :" + cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down..")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("Shutdown error:", err)
	}
}
