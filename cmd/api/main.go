package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/chessnet/dataserver/internal/config"
	"github.com/chessnet/dataserver/internal/repository/postgres"
	"github.com/chessnet/dataserver/internal/repository/redis"
	"github.com/chessnet/dataserver/internal/service/game"
	"github.com/chessnet/dataserver/internal/service/user"
	transportHttp "github.com/chessnet/dataserver/internal/transport/http"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found")
		}
	}

	cfg := config.LoadConfig()
	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetimeMin) * time.Minute)

	if err := db.Ping(); err != nil {
		log.Fatal("Database unreachable:", err)
	}

	log.Println("Running database migrations...")
	if err := postgres.RunMigrations(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Repositories (Persistence Layer)
	userRepo := postgres.NewUserRepo(db)
	gameRepo := postgres.NewGameRepo(db)

	if err := redis.InitRedis(); err != nil {
		log.Printf("Failed to initialize Redis: %v", err)
	}
	defer redis.CloseRedis()

	// Lookup cache is best-effort; nil when Redis is down
	var cache user.CacheRepository
	if redis.IsRedisEnabled() && redis.RedisClient != nil {
		cache = redis.NewRedisCache(redis.RedisClient)
	}

	// Services (Business Logic Layer)
	userService := user.NewService(userRepo, cache, time.Duration(cfg.CacheTTLSeconds)*time.Second)
	gameService := game.NewService(gameRepo, userService)

	// HTTP Handlers (API Layer)
	userHandler := transportHttp.NewUserHandler(userService)
	gameHandler := transportHttp.NewGameHandler(gameService)

	router := transportHttp.NewRouter(userHandler, gameHandler)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
}
