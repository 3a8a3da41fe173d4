package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"ehealth-portal-server/internal/chat"
	"ehealth-portal-server/internal/middleware"
	"ehealth-portal-server/internal/models"
	"ehealth-portal-server/internal/utils"
)

// ChatService is the slice of the lifecycle controller the handlers depend
// on, kept as an interface so handler tests can swap in fakes.
type ChatService interface {
	CreateRequest(ctx context.Context, in chat.CreateRequestInput) (*models.ChatRequest, error)
	GetRequest(ctx context.Context, id int64) (*models.ChatRequest, error)
	ListRequests(ctx context.Context, filter chat.RequestFilter) ([]models.ChatRequest, error)
	AcceptRequest(ctx context.Context, id int64) (*models.ChatRequest, error)
	CloseRequest(ctx context.Context, id int64, closerRole models.Role) (*models.ChatRequest, error)
	PostMessage(ctx context.Context, requestID int64, senderName string, senderRole models.Role, body string) (*models.ChatMessage, error)
	PostAttachment(ctx context.Context, requestID int64, senderName string, senderRole models.Role, fileName, locator string) (*models.ChatAttachment, error)
	Attachment(ctx context.Context, id uint) (*models.ChatAttachment, error)
	Timeline(ctx context.Context, requestID int64) ([]models.TimelineEntry, error)
	FilePrescription(ctx context.Context, in chat.FilePrescriptionInput) (*models.Prescription, error)
	PrescriptionsForPatient(ctx context.Context, patientEmail string) ([]models.Prescription, error)
}

// NotificationService is the read/write surface of the notification fan-out
// used by handlers.
type NotificationService interface {
	ListFor(ctx context.Context, recipientEmail string) ([]models.Notification, error)
	MarkRead(ctx context.Context, id uint) error
	MarkReadByRequest(ctx context.Context, requestID int64, recipientEmail string) (int64, error)
}

// actor is the authenticated caller extracted from the token claims.
type actor struct {
	Email string
	Name  string
	Role  models.Role
}

// requireActor pulls the caller out of the context, replying 401 when the
// auth middleware did not run.
func requireActor(c *gin.Context) (actor, bool) {
	email, ok := middleware.GetUserEmailFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return actor{}, false
	}
	name, _ := middleware.GetUserNameFromContext(c)
	role, _ := middleware.GetUserRoleFromContext(c)
	return actor{Email: email, Name: name, Role: role}, true
}

// requestIDParam parses the :id path parameter.
func requestIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "Invalid request ID format")
		return 0, false
	}
	return id, true
}

// canAccessRequest reports whether the actor participates in the request.
// The admin can access everything.
func canAccessRequest(req *models.ChatRequest, a actor) bool {
	if a.Role == models.RoleAdmin {
		return true
	}
	return req.PatientEmail == a.Email || req.DoctorEmail == a.Email
}

// respondCoreError translates a core error into the JSON envelope.
func respondCoreError(c *gin.Context, err error) {
	switch {
	case chat.IsValidation(err):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, chat.ErrNotFound):
		utils.NotFound(c, "Request not found")
	case errors.Is(err, chat.ErrRequestClosed):
		utils.Conflict(c, "This chat is closed")
	case errors.Is(err, chat.ErrInvalidTransition):
		utils.Conflict(c, "Status transition not permitted")
	default:
		utils.InternalServerError(c, err.Error())
	}
}
