package handlers

import (
	"github.com/gin-gonic/gin"

	"ehealth-portal-server/internal/models"
	"ehealth-portal-server/internal/store"
	"ehealth-portal-server/internal/utils"
)

// FeedbackHandler handles user feedback.
type FeedbackHandler struct {
	Submissions *store.SubmissionStore
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(submissions *store.SubmissionStore) *FeedbackHandler {
	return &FeedbackHandler{Submissions: submissions}
}

// FeedbackBody represents the feedback payload.
type FeedbackBody struct {
	Text string `json:"text" binding:"required"`
}

// Submit records feedback from any logged-in user.
func (h *FeedbackHandler) Submit(c *gin.Context) {
	a, ok := requireActor(c)
	if !ok {
		return
	}
	var body FeedbackBody
	if !utils.BindAndValidate(c, &body) {
		return
	}

	fb := &models.Feedback{UserEmail: a.Email, Text: body.Text}
	if err := h.Submissions.AddFeedback(c.Request.Context(), fb); err != nil {
		utils.InternalServerError(c, "Failed to save feedback: "+err.Error())
		return
	}
	utils.Created(c, "Thank you for your feedback", fb)
}

// List returns all feedback newest-first. Admin only (route-enforced).
func (h *FeedbackHandler) List(c *gin.Context) {
	fbs, err := h.Submissions.ListFeedback(c.Request.Context())
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch feedback: "+err.Error())
		return
	}
	utils.Success(c, "Feedback fetched successfully", fbs)
}
