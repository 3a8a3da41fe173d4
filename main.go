package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"ehealth-portal-server/internal/blobstore"
	"ehealth-portal-server/internal/config"
	"ehealth-portal-server/internal/mailer"
	"ehealth-portal-server/internal/models"
	"ehealth-portal-server/internal/routes"
	"ehealth-portal-server/internal/store"
	"ehealth-portal-server/internal/triage"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database connection
	db, err := models.InitDB(models.DatabaseConfig{DSN: cfg.Database.DSN})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	// Make sure the admin account exists
	identityStore := store.NewIdentityStore(db)
	if err := identityStore.SeedAdmin(context.Background(), cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Fatalf("Error seeding admin account: %v", err)
	}

	// Attachment byte store
	var blobs blobstore.Store
	switch cfg.Blob.Driver {
	case "s3":
		blobs, err = blobstore.NewS3StoreFromEnv(context.Background(), cfg.Blob.Bucket)
		if err != nil {
			log.Fatalf("Error initializing S3 blob store: %v", err)
		}
	default:
		blobs, err = blobstore.NewDiskStore(cfg.Blob.Dir)
		if err != nil {
			log.Fatalf("Error initializing disk blob store: %v", err)
		}
	}

	// AI triage classifier is optional; without an API key the portal serves
	// the safe fallback recommendation.
	var classifier triage.Classifier
	if c := triage.NewOpenAIClassifier(cfg.OpenAI.APIKey, cfg.OpenAI.Model); c != nil {
		classifier = c
	} else {
		log.Println("OPENAI_API_KEY not set, symptom analysis will use the fallback recommendation")
	}

	// Verification email sender falls back to logging when SendGrid is not
	// configured, which keeps local development working.
	var mail mailer.Sender
	if s := mailer.NewSendGridSender(cfg.Mailer.SendGridAPIKey, cfg.Mailer.FromEmail, cfg.Mailer.FromName); s != nil {
		mail = s
	} else {
		log.Println("SENDGRID_API_KEY not set, verification emails will be logged instead of sent")
		mail = mailer.LogSender{}
	}

	// Initialize Gin router
	router := gin.Default()

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Set up routes
	routes.SetupRoutes(router, db, cfg, blobs, classifier, mail)

	// Start server
	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	fmt.Printf("Server running on port %s\n", cfg.Port)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
