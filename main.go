package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"eventapi/config"
	"eventapi/db"
	"eventapi/models"
	"eventapi/notify"
	"eventapi/routes"
	"eventapi/services"
	"eventapi/utils"
)

func main() {
	cfg := config.Load()

	// Postgres
	sqldb, err := db.Open(cfg.PGDSN)
	if err != nil {
		log.Fatal("postgres open error:", err)
	}
	defer sqldb.Close()

	// Mongo holds the best-effort notification audit trail.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mg, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("mongo.Connect error:", err)
	}
	if err := mg.Ping(ctx, nil); err != nil {
		log.Fatal("mongo ping error:", err)
	}
	defer func() { _ = mg.Disconnect(context.Background()) }()

	auditCol := mg.Database("app").Collection("notifications")

	// Redis
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	inv := utils.NewCacheInvalidator(rdb)

	// Repositories
	users := models.NewSQLUserRepository(sqldb)
	events := models.NewSQLEventRepository(sqldb)
	regs := models.NewSQLRegistrationRepository(sqldb)
	images := models.NewSQLImageRepository(sqldb)

	// Notification sidecar
	var mailer notify.Mailer = notify.NoopMailer{}
	if cfg.SMTPAddr != "" {
		mailer = notify.NewSMTPMailer(cfg.SMTPAddr, cfg.MailFrom, auditCol)
	}

	// Services
	eventService := services.NewEventService(events, regs, images)
	regService := services.NewRegistrationService(regs, users, eventService, mailer)
	imageService := services.NewImageService(images)
	photos := services.NewUnsplashClient(cfg.UnsplashURL, cfg.UnsplashKey)

	// Daily reminder sweep
	services.NewReminder(events, regs, users, mailer).Start()

	server := gin.Default()
	routes.RegisterRoutes(server, users, eventService, regService, imageService, photos, rdb, inv)

	if err := server.Run(cfg.HTTPAddr); err != nil {
		log.Fatal("gin.Run error:", err)
	}
}
