package handlers

import (
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"ehealth-portal-server/internal/models"
	"ehealth-portal-server/internal/store"
	"ehealth-portal-server/internal/triage"
	"ehealth-portal-server/internal/utils"
)

// TriageHandler handles AI symptom analysis. Classifier may be nil when no
// API key is configured; the handler then serves the safe fallback.
type TriageHandler struct {
	Classifier  triage.Classifier
	Submissions *store.SubmissionStore
}

// NewTriageHandler creates a new TriageHandler.
func NewTriageHandler(classifier triage.Classifier, submissions *store.SubmissionStore) *TriageHandler {
	return &TriageHandler{Classifier: classifier, Submissions: submissions}
}

// AnalyzeBody represents the symptom analysis payload.
type AnalyzeBody struct {
	Symptoms string `json:"symptoms" binding:"required"`
}

// Analyze classifies a patient's symptoms into a recommended specialty.
// Classifier failures never surface to the patient: the response degrades to
// the General Physician fallback so the booking flow always continues.
func (h *TriageHandler) Analyze(c *gin.Context) {
	a, ok := requireActor(c)
	if !ok {
		return
	}
	var body AnalyzeBody
	if !utils.BindAndValidate(c, &body) {
		return
	}
	symptoms := strings.TrimSpace(body.Symptoms)
	if symptoms == "" {
		utils.BadRequest(c, "Symptoms must not be empty")
		return
	}

	result := triage.Fallback()
	degraded := true
	if h.Classifier != nil {
		r, err := h.Classifier.Classify(c.Request.Context(), symptoms)
		if err != nil {
			log.Printf("triage: classification failed for %s: %v", a.Email, err)
		} else {
			result = r
			degraded = false
		}
	}

	sub := &models.Submission{
		PatientEmail: a.Email,
		Symptoms:     symptoms,
		Prediction:   result.Specialty,
		Urgency:      result.Urgency,
	}
	if err := h.Submissions.AddSubmission(c.Request.Context(), sub); err != nil {
		log.Printf("triage: failed to record submission for %s: %v", a.Email, err)
	}

	utils.Success(c, "Symptoms analyzed successfully", gin.H{
		"result":   result,
		"degraded": degraded,
	})
}

// History returns the caller's past triage submissions newest-first.
func (h *TriageHandler) History(c *gin.Context) {
	a, ok := requireActor(c)
	if !ok {
		return
	}
	subs, err := h.Submissions.SubmissionsFor(c.Request.Context(), a.Email)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch submission history: "+err.Error())
		return
	}
	utils.Success(c, "Submission history fetched successfully", subs)
}
