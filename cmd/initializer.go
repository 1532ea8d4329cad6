package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"

	"github.com/ckinger23/flock-and-fur/internal/config"
	"github.com/ckinger23/flock-and-fur/internal/handlers"
	"github.com/ckinger23/flock-and-fur/internal/repositories"
	"github.com/ckinger23/flock-and-fur/internal/services"
	"github.com/ckinger23/flock-and-fur/internal/ws"
	"github.com/ckinger23/flock-and-fur/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger

	cfg config.Config
	db  *sql.DB

	userRepo    *repositories.UserRepository
	userService *services.UserService

	hub *ws.Hub

	userHandler        *handlers.UserHandler
	profileHandler     *handlers.CleanerProfileHandler
	jobHandler         *handlers.JobHandler
	applicationHandler *handlers.JobApplicationHandler
	photoHandler       *handlers.PhotoHandler
	reviewHandler      *handlers.ReviewHandler
	favoriteHandler    *handlers.FavoriteHandler
	disputeHandler     *handlers.DisputeHandler
	stripeHandler      *handlers.StripeHandler
}

func initializeApp(cfg config.Config, db *sql.DB, errorLog, infoLog *log.Logger) (*application, error) {
	// Repositories
	userRepo := &repositories.UserRepository{DB: db}
	profileRepo := &repositories.CleanerProfileRepository{DB: db}
	jobRepo := &repositories.JobRepository{DB: db}
	applicationRepo := &repositories.JobApplicationRepository{DB: db}
	photoRepo := &repositories.PhotoRepository{DB: db}
	reviewRepo := &repositories.ReviewRepository{DB: db}
	favoriteRepo := &repositories.FavoriteRepository{DB: db}

	storage, err := utils.NewStorage(cfg.S3.Region, cfg.S3.Endpoint, cfg.S3.Bucket, cfg.S3.AccessKey, cfg.S3.SecretKey)
	if err != nil {
		return nil, err
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	hub := ws.NewHub(errorLog)
	email := services.NewEmailService(cfg.Email.APIKey, cfg.Email.From, cfg.Server.BaseURL, infoLog, errorLog)
	push := &services.PushService{
		Client:   newMessagingClient(cfg.FCM.CredentialsFile, errorLog),
		UserRepo: userRepo,
		ErrorLog: errorLog,
	}

	// Services
	userService := &services.UserService{
		UserRepo:    userRepo,
		ProfileRepo: profileRepo,
		SigningKey:  cfg.Auth.SigningKey,
		AccessTTL:   time.Duration(cfg.Auth.AccessTTLMin) * time.Minute,
		RefreshTTL:  time.Duration(cfg.Auth.RefreshTTLHours) * time.Hour,
	}
	profileService := &services.CleanerProfileService{ProfileRepo: profileRepo}
	jobService := &services.JobService{
		JobRepo:   jobRepo,
		PhotoRepo: photoRepo,
		UserRepo:  userRepo,
		Email:     email,
		Push:      push,
		Notify:    hub,
	}
	applicationService := &services.JobApplicationService{
		ApplicationRepo: applicationRepo,
		JobRepo:         jobRepo,
		UserRepo:        userRepo,
		Email:           email,
		Push:            push,
		Notify:          hub,
	}
	photoService := &services.PhotoService{
		PhotoRepo: photoRepo,
		JobRepo:   jobRepo,
		Storage:   storage,
	}
	reviewService := &services.ReviewService{
		ReviewRepo: reviewRepo,
		JobRepo:    jobRepo,
		UserRepo:   userRepo,
		Email:      email,
	}
	favoriteService := &services.FavoriteService{
		FavoriteRepo: favoriteRepo,
		UserRepo:     userRepo,
	}
	disputeService := &services.DisputeService{
		JobRepo:  jobRepo,
		UserRepo: userRepo,
		Email:    email,
		Notify:   hub,
	}
	stripeService := services.NewStripeService(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret, cfg.Server.BaseURL, errorLog)
	stripeService.JobRepo = jobRepo
	stripeService.ProfileRepo = profileRepo
	stripeService.UserRepo = userRepo
	stripeService.Redis = redisClient
	stripeService.Email = email
	stripeService.Push = push
	stripeService.Notify = hub

	return &application{
		errorLog:           errorLog,
		infoLog:            infoLog,
		cfg:                cfg,
		db:                 db,
		userRepo:           userRepo,
		userService:        userService,
		hub:                hub,
		userHandler:        &handlers.UserHandler{Service: userService},
		profileHandler:     &handlers.CleanerProfileHandler{Service: profileService},
		jobHandler:         &handlers.JobHandler{Service: jobService},
		applicationHandler: &handlers.JobApplicationHandler{Service: applicationService},
		photoHandler:       &handlers.PhotoHandler{Service: photoService},
		reviewHandler:      &handlers.ReviewHandler{Service: reviewService},
		favoriteHandler:    &handlers.FavoriteHandler{Service: favoriteService},
		disputeHandler:     &handlers.DisputeHandler{Service: disputeService},
		stripeHandler:      &handlers.StripeHandler{Service: stripeService},
	}, nil
}

// newMessagingClient returns nil when FCM credentials are not configured;
// PushService treats a nil client as "push disabled".
func newMessagingClient(credentialsFile string, errorLog *log.Logger) *messaging.Client {
	if credentialsFile == "" {
		return nil
	}
	app, err := firebase.NewApp(context.Background(), nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		errorLog.Printf("firebase init: %v", err)
		return nil
	}
	client, err := app.Messaging(context.Background())
	if err != nil {
		errorLog.Printf("firebase messaging: %v", err)
		return nil
	}
	return client
}
