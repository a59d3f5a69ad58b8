package main

import (
	"log"

	"emberlink/internal/config"
	"emberlink/internal/db"
	"emberlink/internal/handlers"
	"emberlink/internal/middleware"
	"emberlink/internal/repository"
	"emberlink/internal/router"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	logger.Info("database connection established")

	// Repositories
	userRepo := repository.NewUserRepository(conn)
	postRepo := repository.NewPostRepository(conn)
	commentRepo := repository.NewCommentRepository(conn)
	voteRepo := repository.NewVoteRepository(conn)

	gate, err := middleware.NewSessionGate(userRepo)
	if err != nil {
		logger.Fatal("failed to build session gate", zap.Error(err))
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(userRepo, logger, cfg.IsProduction())
	postHandler := handlers.NewPostHandler(postRepo, logger, cfg.IsProduction())
	commentHandler := handlers.NewCommentHandler(commentRepo, cfg.CommentPreviewLimit, logger, cfg.IsProduction())
	voteHandler := handlers.NewVoteHandler(voteRepo, logger, cfg.IsProduction())

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	handlers.RegisterValidations()

	r := gin.New()
	r.Use(middleware.RequestLogger(logger))
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("emberlink_session", store))

	router.RegisterRoutes(r, gate, authHandler, postHandler, commentHandler, voteHandler)

	logger.Info("emberlink server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
