package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mbeaulieu/courses/internal/database"
	"github.com/mbeaulieu/courses/internal/logging"
	"github.com/mbeaulieu/courses/internal/server"
	"github.com/mbeaulieu/courses/internal/session"
	"github.com/mbeaulieu/courses/internal/store"
	ws "github.com/mbeaulieu/courses/internal/websocket"
)

func main() {
	// Optional .env for local development; real deployments set env vars.
	_ = godotenv.Load()

	logger := logging.Setup(os.Getenv("COURSES_LOG_LEVEL"), os.Getenv("COURSES_LOG_FORMAT"))

	port := os.Getenv("COURSES_PORT")
	if port == "" {
		port = "8080"
	}
	dbPath := os.Getenv("COURSES_DB_PATH")
	if dbPath == "" {
		dbPath = "courses.db"
	}

	// The schema decision is made exactly once here. A database that
	// cannot be opened or whose schema is missing degrades the whole
	// process to the in-memory roster; only /api/retry re-probes.
	var sqliteGW *store.SQLite
	if os.Getenv("COURSES_SKIP_MIGRATIONS") == "true" {
		db, err := database.OpenRaw(dbPath)
		if err != nil {
			logger.Error("open database", "path", dbPath, "error", err)
		} else {
			defer db.Close()
			sqliteGW = store.NewSQLite(db)
		}
	} else {
		db, err := database.Open(dbPath)
		if err != nil {
			logger.Error("open database", "path", dbPath, "error", err)
		} else {
			defer db.Close()
			sqliteGW = store.NewSQLite(db)
		}
	}

	gw, mode := session.SelectGateway(context.Background(), sqliteGW, logger)
	logger.Info("storage mode selected", "mode", mode)

	hub := ws.NewHub(logger.With("component", "websocket"))
	registry := session.NewRegistry(gw, mode, sqliteGW, hub, logger.With("component", "session"))

	srv := server.New(registry, hub, logger)

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("courses running", "addr", "http://localhost:"+port, "mode", mode)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
