package server

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"familysync/internal/auth"
	"familysync/internal/checkpoint"
	"familysync/internal/config"
	"familysync/internal/handler"
	"familysync/internal/logging"
	"familysync/internal/middleware"
	"familysync/internal/repository"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

// Deps are the collaborators the HTTP routes are built from.
type Deps struct {
	Store   repository.Store
	Members repository.MemberDirectory
	Tokens  *auth.TokenService
	Logger  *slog.Logger
}

func Init(cfg *config.Config) (*Server, error) {
	logger := logging.Setup(cfg.LogLevel)

	deps := Deps{
		Tokens: auth.NewTokenService(cfg.JWTSecret, cfg.JWTAudience, cfg.JWTExpiry),
		Logger: logger,
	}

	var db *gorm.DB
	switch cfg.StoreDriver {
	case config.StoreMemory:
		store := repository.NewMemoryStore()
		deps.Store, deps.Members = store, store
		log.Println("⚠️  Using in-memory store, data is lost on exit")
	case config.StorePostgres:
		var err error
		db, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
		}
		log.Println("✅ Connected to database")

		store := repository.NewGormStore(db)
		if cfg.AutoMigrate {
			if err := store.AutoMigrate(); err != nil {
				return nil, fmt.Errorf("❌ failed to migrate schema: %w", err)
			}
			log.Println("✅ Schema migrated")
		}
		deps.Store = store
		deps.Members = repository.NewMemberRepository(db)
	default:
		return nil, fmt.Errorf("❌ unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	return &Server{
		Engine: NewRouter(deps),
		DB:     db,
		Config: cfg,
	}, nil
}

func NewRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	applier := checkpoint.NewApplier(deps.Store, checkpoint.WithLogger(deps.Logger))

	authHandler := handler.NewAuthHandler(deps.Members, deps.Tokens)
	checkpointHandler := handler.NewCheckpointHandler(applier)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes
	r.GET("/api/auth/token/:memberId", authHandler.Token)
	r.POST("/api/auth/login", authHandler.Login)

	// Protected routes - require authentication
	sync := r.Group("/api/powersync")
	sync.Use(middleware.JWTAuthMiddleware(deps.Tokens))
	{
		sync.POST("/write-checkpoint", checkpointHandler.WriteCheckpoint)
	}
	return r
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	if s.DB != nil {
		if sqlDB, err := s.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
	log.Println("✅ Server exited properly")
}
