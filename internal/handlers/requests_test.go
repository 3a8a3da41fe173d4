package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ehealth-portal-server/internal/chat"
	"ehealth-portal-server/internal/models"
)

// fakeChat scripts the lifecycle service per test through function fields.
type fakeChat struct {
	createFn  func(ctx context.Context, in chat.CreateRequestInput) (*models.ChatRequest, error)
	getFn     func(ctx context.Context, id int64) (*models.ChatRequest, error)
	acceptFn  func(ctx context.Context, id int64) (*models.ChatRequest, error)
	closeFn   func(ctx context.Context, id int64, closerRole models.Role) (*models.ChatRequest, error)
	messageFn func(ctx context.Context, requestID int64, senderName string, senderRole models.Role, body string) (*models.ChatMessage, error)
}

func (f *fakeChat) CreateRequest(ctx context.Context, in chat.CreateRequestInput) (*models.ChatRequest, error) {
	return f.createFn(ctx, in)
}

func (f *fakeChat) GetRequest(ctx context.Context, id int64) (*models.ChatRequest, error) {
	return f.getFn(ctx, id)
}

func (f *fakeChat) ListRequests(ctx context.Context, filter chat.RequestFilter) ([]models.ChatRequest, error) {
	return nil, nil
}

func (f *fakeChat) AcceptRequest(ctx context.Context, id int64) (*models.ChatRequest, error) {
	return f.acceptFn(ctx, id)
}

func (f *fakeChat) CloseRequest(ctx context.Context, id int64, closerRole models.Role) (*models.ChatRequest, error) {
	return f.closeFn(ctx, id, closerRole)
}

func (f *fakeChat) PostMessage(ctx context.Context, requestID int64, senderName string, senderRole models.Role, body string) (*models.ChatMessage, error) {
	return f.messageFn(ctx, requestID, senderName, senderRole, body)
}

func (f *fakeChat) PostAttachment(ctx context.Context, requestID int64, senderName string, senderRole models.Role, fileName, locator string) (*models.ChatAttachment, error) {
	return nil, nil
}

func (f *fakeChat) Attachment(ctx context.Context, id uint) (*models.ChatAttachment, error) {
	return nil, nil
}

func (f *fakeChat) Timeline(ctx context.Context, requestID int64) ([]models.TimelineEntry, error) {
	return nil, nil
}

func (f *fakeChat) FilePrescription(ctx context.Context, in chat.FilePrescriptionInput) (*models.Prescription, error) {
	return nil, nil
}

func (f *fakeChat) PrescriptionsForPatient(ctx context.Context, patientEmail string) ([]models.Prescription, error) {
	return nil, nil
}

// fakeNotifications records MarkReadByRequest calls.
type fakeNotifications struct {
	markedRequest int64
	markedEmail   string
}

func (f *fakeNotifications) ListFor(ctx context.Context, recipientEmail string) ([]models.Notification, error) {
	return nil, nil
}

func (f *fakeNotifications) MarkRead(ctx context.Context, id uint) error { return nil }

func (f *fakeNotifications) MarkReadByRequest(ctx context.Context, requestID int64, recipientEmail string) (int64, error) {
	f.markedRequest = requestID
	f.markedEmail = recipientEmail
	return 1, nil
}

func asUser(email, name string, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userEmail", email)
		c.Set("userName", name)
		c.Set("userRole", role)
	}
}

func openRequest() *models.ChatRequest {
	return &models.ChatRequest{
		RequestID:    1001,
		PatientEmail: "pat@example.com",
		PatientName:  "Pat Smith",
		DoctorEmail:  "doc@example.com",
		DoctorName:   "Grace Hope",
		Status:       models.RequestStatusAccepted,
	}
}

func TestCreateRequestUsesActorAsPatient(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var got chat.CreateRequestInput
	svc := &fakeChat{createFn: func(ctx context.Context, in chat.CreateRequestInput) (*models.ChatRequest, error) {
		got = in
		return openRequest(), nil
	}}
	h := NewRequestHandler(svc, &fakeNotifications{})

	router := gin.New()
	router.POST("/requests", asUser("pat@example.com", "Pat Smith", models.RolePatient), h.CreateRequest)

	body := `{"doctorEmail":"doc@example.com","query":"Chest pain","priority":true}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/requests", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "pat@example.com", got.PatientEmail)
	assert.Equal(t, "doc@example.com", got.DoctorEmail)
	assert.True(t, got.Priority)
	assert.False(t, got.AdminAssigned)
}

func TestCreateRequestAdminRequiresPatientEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewRequestHandler(&fakeChat{}, &fakeNotifications{})

	router := gin.New()
	router.POST("/requests", asUser("admin@app.com", "System Admin", models.RoleAdmin), h.CreateRequest)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/requests", strings.NewReader(`{"doctorEmail":"doc@example.com","query":"Referral"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAcceptRequestOnlyAssignedDoctor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeChat{getFn: func(ctx context.Context, id int64) (*models.ChatRequest, error) {
		return openRequest(), nil
	}}
	h := NewRequestHandler(svc, &fakeNotifications{})

	router := gin.New()
	router.PATCH("/requests/:id/accept", asUser("other@example.com", "Other Doc", models.RoleDoctor), h.AcceptRequest)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/requests/1001/accept", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAcceptRequestConflictOnLostSwap(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeChat{
		getFn: func(ctx context.Context, id int64) (*models.ChatRequest, error) {
			return openRequest(), nil
		},
		acceptFn: func(ctx context.Context, id int64) (*models.ChatRequest, error) {
			return nil, chat.ErrInvalidTransition
		},
	}
	h := NewRequestHandler(svc, &fakeNotifications{})

	router := gin.New()
	router.PATCH("/requests/:id/accept", asUser("doc@example.com", "Grace Hope", models.RoleDoctor), h.AcceptRequest)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/requests/1001/accept", nil))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetRequestNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeChat{getFn: func(ctx context.Context, id int64) (*models.ChatRequest, error) {
		return nil, chat.ErrNotFound
	}}
	h := NewRequestHandler(svc, &fakeNotifications{})

	router := gin.New()
	router.GET("/requests/:id", asUser("pat@example.com", "Pat Smith", models.RolePatient), h.GetRequest)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/requests/9999", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRequestForbiddenForOutsider(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeChat{getFn: func(ctx context.Context, id int64) (*models.ChatRequest, error) {
		return openRequest(), nil
	}}
	h := NewRequestHandler(svc, &fakeNotifications{})

	router := gin.New()
	router.GET("/requests/:id", asUser("stranger@example.com", "Stranger", models.RolePatient), h.GetRequest)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/requests/1001", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetTimelineMarksNotificationsRead(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeChat{getFn: func(ctx context.Context, id int64) (*models.ChatRequest, error) {
		return openRequest(), nil
	}}
	notifications := &fakeNotifications{}
	h := NewRequestHandler(svc, notifications)

	router := gin.New()
	router.GET("/requests/:id/timeline", asUser("doc@example.com", "Grace Hope", models.RoleDoctor), h.GetTimeline)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/requests/1001/timeline", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1001), notifications.markedRequest)
	assert.Equal(t, "doc@example.com", notifications.markedEmail)
}

func TestPostMessageClosedConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	closed := openRequest()
	closed.Status = models.RequestStatusClosed
	svc := &fakeChat{
		getFn: func(ctx context.Context, id int64) (*models.ChatRequest, error) {
			return closed, nil
		},
		messageFn: func(ctx context.Context, requestID int64, senderName string, senderRole models.Role, body string) (*models.ChatMessage, error) {
			return nil, chat.ErrRequestClosed
		},
	}
	mh := NewMessageHandler(svc, nil)

	router := gin.New()
	router.POST("/requests/:id/messages", asUser("pat@example.com", "Pat Smith", models.RolePatient), mh.PostMessage)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/requests/1001/messages", strings.NewReader(`{"body":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "This chat is closed")
}
