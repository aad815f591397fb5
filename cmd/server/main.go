package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/tacoeaterman/yepagain/internal/handlers/ws"
	activityRepo "github.com/tacoeaterman/yepagain/internal/repositories/activity"
	sessionRepo "github.com/tacoeaterman/yepagain/internal/repositories/session"
	feed "github.com/tacoeaterman/yepagain/internal/services/activity"

	"github.com/tacoeaterman/yepagain/internal/deck"
	"github.com/tacoeaterman/yepagain/internal/services/game"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	redisDB := 0
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			slog.Error("invalid REDIS_DB", "value", raw, "error", err)
			os.Exit(1)
		}
		redisDB = parsed
	}

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       redisDB,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect to redis", "addr", redisAddr, "error", err)
		os.Exit(1)
	}

	sessions, err := sessionRepo.NewRedis(&sessionRepo.Config{RedisClient: client})
	if err != nil {
		slog.Error("failed to create session repository", "error", err)
		os.Exit(1)
	}

	activities, err := activityRepo.NewRedis(&activityRepo.Config{RedisClient: client})
	if err != nil {
		slog.Error("failed to create activity repository", "error", err)
		os.Exit(1)
	}

	gameService, err := game.New(&game.Config{
		SessionRepo:  sessions,
		ActivityRepo: activities,
		DeckManager:  deck.New(nil),
		Formatter:    feed.NewFormatter(nil),
	})
	if err != nil {
		slog.Error("failed to create game service", "error", err)
		os.Exit(1)
	}

	gateway, err := ws.New(&ws.Config{
		GameService: gameService,
		SessionRepo: sessions,
	})
	if err != nil {
		slog.Error("failed to create gateway", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", gateway)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := client.Ping(r.Context()).Err(); err != nil {
			http.Error(w, "redis unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		slog.Info("server listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for a signal to shut down
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}

	if err := client.Close(); err != nil {
		slog.Error("closing redis client", "error", err)
	}
}
