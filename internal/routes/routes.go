package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ehealth-portal-server/internal/blobstore"
	"ehealth-portal-server/internal/chat"
	"ehealth-portal-server/internal/config"
	"ehealth-portal-server/internal/handlers"
	"ehealth-portal-server/internal/mailer"
	"ehealth-portal-server/internal/middleware"
	"ehealth-portal-server/internal/models"
	"ehealth-portal-server/internal/notify"
	"ehealth-portal-server/internal/store"
	"ehealth-portal-server/internal/triage"
	"ehealth-portal-server/internal/utils"
)

// SetupRoutes wires stores, services and handlers onto the router.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, blobs blobstore.Store, classifier triage.Classifier, mail mailer.Sender) {
	// Stores
	identityStore := store.NewIdentityStore(db)
	requestStore := store.NewRequestStore(db)
	messageStore := store.NewMessageStore(db)
	prescriptionStore := store.NewPrescriptionStore(db)
	notificationStore := store.NewNotificationStore(db)
	otpStore := store.NewOTPStore(db, time.Duration(cfg.OTPExpiryMinutes)*time.Minute)
	submissionStore := store.NewSubmissionStore(db)

	// Services
	notificationService := notify.NewService(notificationStore)
	chatService := chat.NewService(requestStore, messageStore, prescriptionStore, identityStore, notificationService)

	// Handlers
	authHandler := handlers.NewAuthHandler(identityStore, otpStore, mail, cfg)
	userHandler := handlers.NewUserHandler(identityStore)
	requestHandler := handlers.NewRequestHandler(chatService, notificationService)
	messageHandler := handlers.NewMessageHandler(chatService, blobs)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	prescriptionHandler := handlers.NewPrescriptionHandler(chatService)
	triageHandler := handlers.NewTriageHandler(classifier, submissionStore)
	feedbackHandler := handlers.NewFeedbackHandler(submissionStore)

	router.GET("/health", func(c *gin.Context) {
		utils.Success(c, "OK", nil)
	})

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/verify-otp", authHandler.VerifyOTP)
			authRoutes.POST("/resend-otp", authHandler.ResendOTP)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
		}

		userRoutes := private.Group("/users")
		{
			// Doctor directory is open to every authenticated user so
			// patients can pick a doctor for a request.
			userRoutes.GET("/doctors", userHandler.GetDoctors)

			adminRoutes := userRoutes.Group("")
			adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminRoutes.GET("/patients", userHandler.GetPatients)
				adminRoutes.POST("/doctors", userHandler.AddDoctor)
			}
		}

		requestRoutes := private.Group("/requests")
		{
			requestRoutes.POST("", middleware.RoleAuthMiddleware(models.RolePatient, models.RoleAdmin), requestHandler.CreateRequest)
			requestRoutes.GET("", requestHandler.ListRequests)
			requestRoutes.GET("/:id", requestHandler.GetRequest)
			requestRoutes.PATCH("/:id/accept", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), requestHandler.AcceptRequest)
			requestRoutes.PATCH("/:id/close", requestHandler.CloseRequest)
			requestRoutes.GET("/:id/timeline", requestHandler.GetTimeline)

			requestRoutes.POST("/:id/messages", messageHandler.PostMessage)
			requestRoutes.POST("/:id/attachments", messageHandler.UploadAttachment)

			requestRoutes.POST("/:id/prescriptions", middleware.RoleAuthMiddleware(models.RoleDoctor), prescriptionHandler.FilePrescription)
		}

		private.GET("/attachments/:attachmentId", messageHandler.DownloadAttachment)

		notificationRoutes := private.Group("/notifications")
		{
			notificationRoutes.GET("", notificationHandler.List)
			notificationRoutes.PATCH("/:id/read", notificationHandler.MarkRead)
			notificationRoutes.PATCH("/by-request/:id/read", notificationHandler.MarkReadByRequest)
		}

		private.GET("/prescriptions", prescriptionHandler.ListPrescriptions)

		triageRoutes := private.Group("/triage")
		{
			triageRoutes.POST("/analyze", middleware.RoleAuthMiddleware(models.RolePatient), triageHandler.Analyze)
			triageRoutes.GET("/history", middleware.RoleAuthMiddleware(models.RolePatient), triageHandler.History)
		}

		feedbackRoutes := private.Group("/feedback")
		{
			feedbackRoutes.POST("", feedbackHandler.Submit)
			feedbackRoutes.GET("", middleware.RoleAuthMiddleware(models.RoleAdmin), feedbackHandler.List)
		}
	}
}
