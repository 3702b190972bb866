package api

import (
	"context"

	"schooltech/internal/app/config"
	"schooltech/internal/app/dsn"
	"schooltech/internal/app/handler"
	"schooltech/internal/app/lending"
	"schooltech/internal/app/middleware"
	"schooltech/internal/app/notify"
	"schooltech/internal/app/redis"
	"schooltech/internal/app/repository"
	"schooltech/internal/app/storage"
	"schooltech/internal/pkg"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// StartServer собирает все зависимости и запускает HTTP-сервер
func StartServer() {
	logrus.Info("Starting server")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal("Error loading config: ", err)
	}

	repo, err := repository.New(dsn.FromEnv())
	if err != nil {
		logrus.Fatal("Error connecting to database: ", err)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logrus.Fatal("Error connecting to redis: ", err)
	}

	// Пустой endpoint — работаем без изображений
	var minioClient *storage.MinIOClient
	if cfg.Minio.Endpoint != "" {
		minioClient, err = storage.NewMinIOClient(
			cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey,
			cfg.Minio.Bucket, cfg.Minio.UseSSL)
		if err != nil {
			logrus.Fatal("Error connecting to minio: ", err)
		}
	} else {
		logrus.Warn("MinIO endpoint not set, image storage disabled")
	}

	notifier := notify.NewService(repo)
	engine := lending.NewEngine(repo, repo, notifier)

	authHandler := handler.NewAuthHandler(repo, redisClient, cfg)
	apiHandler := handler.NewAPIHandler(repo, engine, notifier, minioClient, authHandler)
	authMiddleware := middleware.NewAuthMiddleware(redisClient, cfg)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	app := pkg.NewApp(cfg, r, apiHandler, authMiddleware)
	app.RunApp()
}
