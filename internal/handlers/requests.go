package handlers

import (
	"log"

	"github.com/gin-gonic/gin"

	"ehealth-portal-server/internal/chat"
	"ehealth-portal-server/internal/models"
	"ehealth-portal-server/internal/utils"
)

// RequestHandler handles chat request lifecycle endpoints.
type RequestHandler struct {
	Chat          ChatService
	Notifications NotificationService
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(chatSvc ChatService, notifications NotificationService) *RequestHandler {
	return &RequestHandler{Chat: chatSvc, Notifications: notifications}
}

// CreateRequestBody represents the request body for opening a consultation.
type CreateRequestBody struct {
	DoctorEmail string `json:"doctorEmail" binding:"required,email"`
	Specialty   string `json:"specialty"`
	Query       string `json:"query" binding:"required"`
	Priority    bool   `json:"priority"`

	// PatientEmail is honored for admin-assigned requests only; patients
	// always create requests for themselves.
	PatientEmail string `json:"patientEmail" binding:"omitempty,email"`
}

// CreateRequest opens a consultation thread. A patient creates a Pending
// request for themselves; the admin can force-assign a patient to a doctor,
// which starts the thread directly in Accepted status.
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	a, ok := requireActor(c)
	if !ok {
		return
	}
	var body CreateRequestBody
	if !utils.BindAndValidate(c, &body) {
		return
	}

	in := chat.CreateRequestInput{
		PatientEmail: a.Email,
		DoctorEmail:  body.DoctorEmail,
		Specialty:    body.Specialty,
		Query:        body.Query,
		Priority:     body.Priority,
	}
	if a.Role == models.RoleAdmin {
		if body.PatientEmail == "" {
			utils.BadRequest(c, "patientEmail is required for admin-assigned requests")
			return
		}
		in.PatientEmail = body.PatientEmail
		in.AdminAssigned = true
	}

	req, err := h.Chat.CreateRequest(c.Request.Context(), in)
	if err != nil {
		respondCoreError(c, err)
		return
	}
	utils.Created(c, "Chat request created successfully", req)
}

// ListRequests returns the caller's requests newest-first. Patients and
// doctors see their own side; the admin sees everything. The status query
// parameter narrows the listing.
func (h *RequestHandler) ListRequests(c *gin.Context) {
	a, ok := requireActor(c)
	if !ok {
		return
	}

	filter := chat.RequestFilter{Status: models.RequestStatus(c.Query("status"))}
	switch a.Role {
	case models.RolePatient:
		filter.PatientEmail = a.Email
	case models.RoleDoctor:
		filter.DoctorEmail = a.Email
	}

	requests, err := h.Chat.ListRequests(c.Request.Context(), filter)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch requests: "+err.Error())
		return
	}
	utils.Success(c, "Requests fetched successfully", requests)
}

// GetRequest returns one request the caller participates in.
func (h *RequestHandler) GetRequest(c *gin.Context) {
	a, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := requestIDParam(c)
	if !ok {
		return
	}

	req, err := h.Chat.GetRequest(c.Request.Context(), id)
	if err != nil {
		respondCoreError(c, err)
		return
	}
	if !canAccessRequest(req, a) {
		utils.Forbidden(c, "You are not a participant of this request")
		return
	}
	utils.Success(c, "Request fetched successfully", req)
}

// AcceptRequest transitions a Pending request to Accepted. Only the assigned
// doctor (or the admin) may accept.
func (h *RequestHandler) AcceptRequest(c *gin.Context) {
	a, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := requestIDParam(c)
	if !ok {
		return
	}

	req, err := h.Chat.GetRequest(c.Request.Context(), id)
	if err != nil {
		respondCoreError(c, err)
		return
	}
	if a.Role != models.RoleAdmin && req.DoctorEmail != a.Email {
		utils.Forbidden(c, "Only the assigned doctor can accept this request")
		return
	}

	req, err = h.Chat.AcceptRequest(c.Request.Context(), id)
	if err != nil {
		respondCoreError(c, err)
		return
	}
	utils.Success(c, "Request accepted", req)
}

// CloseRequest transitions a request to the terminal Closed state. Either
// participant can close; closing a Pending request is a cancellation.
func (h *RequestHandler) CloseRequest(c *gin.Context) {
	a, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := requestIDParam(c)
	if !ok {
		return
	}

	req, err := h.Chat.GetRequest(c.Request.Context(), id)
	if err != nil {
		respondCoreError(c, err)
		return
	}
	if !canAccessRequest(req, a) {
		utils.Forbidden(c, "You are not a participant of this request")
		return
	}

	req, err = h.Chat.CloseRequest(c.Request.Context(), id, a.Role)
	if err != nil {
		respondCoreError(c, err)
		return
	}
	utils.Success(c, "Session closed", req)
}

// GetTimeline returns the merged message/attachment timeline of a request.
// Opening the thread also bulk-marks the caller's notifications for it as
// read, matching the polling UI contract.
func (h *RequestHandler) GetTimeline(c *gin.Context) {
	a, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := requestIDParam(c)
	if !ok {
		return
	}

	req, err := h.Chat.GetRequest(c.Request.Context(), id)
	if err != nil {
		respondCoreError(c, err)
		return
	}
	if !canAccessRequest(req, a) {
		utils.Forbidden(c, "You are not a participant of this request")
		return
	}

	entries, err := h.Chat.Timeline(c.Request.Context(), id)
	if err != nil {
		respondCoreError(c, err)
		return
	}

	if _, err := h.Notifications.MarkReadByRequest(c.Request.Context(), id, a.Email); err != nil {
		// The timeline read should not fail because of this.
		log.Printf("requests: mark-read by request %d for %s failed: %v", id, a.Email, err)
	}

	utils.Success(c, "Timeline fetched successfully", gin.H{
		"request":  req,
		"timeline": entries,
	})
}
