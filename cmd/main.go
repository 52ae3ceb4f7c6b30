package main

import (
	"bufio"
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"todo-api/internal/config"
	"todo-api/internal/controller"
	"todo-api/internal/database"
	"todo-api/internal/repository"
	"todo-api/internal/routes"
	"todo-api/pkg/logger"
)

func main() {
	loadEnvFile(".env")

	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		logger.Error(ctx, "Config load failed", "error", err)
		os.Exit(1)
	}

	// Open the pool and apply the schema before accepting any request.
	db, err := database.Open(ctx, cfg)
	if err != nil {
		logger.Error(ctx, "Database not available; exiting", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := database.EnsureSchema(ctx, db); err != nil {
		logger.Error(ctx, "Schema creation failed", "error", err)
		os.Exit(1)
	}

	repo := repository.New(db)
	handler := controller.New(repo, db)

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      routes.Router(handler),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	go func() {
		logger.Info(ctx, "HTTP server listening", "port", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Server shutdown error", "error", err)
	}
	logger.Info(ctx, "Server stopped")
}

// loadEnvFile reads a .env file and sets env vars (only if not already set).
func loadEnvFile(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.Index(line, "=")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		val := strings.TrimSpace(line[idx+1:])
		if strings.HasPrefix(val, `"`) && strings.HasSuffix(val, `"`) {
			val = strings.Trim(val, `"`)
		} else if strings.HasPrefix(val, "'") && strings.HasSuffix(val, "'") {
			val = strings.Trim(val, "'")
		}
		if key != "" && os.Getenv(key) == "" {
			_ = os.Setenv(key, val)
		}
	}
}
