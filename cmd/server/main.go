package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"noteful/backend/internal/config"
	"noteful/backend/internal/db"
	"noteful/backend/internal/handler"
	transport "noteful/backend/internal/http"
	"noteful/backend/internal/logger"
	"noteful/backend/internal/repository"
	"noteful/backend/internal/service"
	"noteful/backend/internal/snowflake"
)

// @title Noteful API
// @version 1.0
// @description REST API for notes organized into folders and tagged with labels.
// @BasePath /api
func main() {
	cfg := config.Load()
	logger.Init(logger.ParseLevel(cfg.LogLevel))

	if err := snowflake.Init(cfg.NodeID); err != nil {
		log.Fatalf("init snowflake node: %v", err)
	}

	dbConn, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer dbConn.Close()

	folderRepo := repository.NewFolderRepository(dbConn)
	tagRepo := repository.NewTagRepository(dbConn)
	noteRepo := repository.NewNoteRepository(dbConn)

	folderService := service.NewFolderService(folderRepo)
	noteService := service.NewNoteService(noteRepo)
	tagService := service.NewTagService(tagRepo, noteRepo)

	folderHandler := handler.NewFolderHandler(folderService)
	noteHandler := handler.NewNoteHandler(noteService)
	tagHandler := handler.NewTagHandler(tagService)

	router := transport.NewRouter(folderHandler, noteHandler, tagHandler)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down", "module", "main")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := router.Shutdown(ctx); err != nil {
			logger.Error("shutdown", "module", "main", "error", err)
		}
	}()

	if err := router.Start(cfg.Addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("start server: %v", err)
	}
}
