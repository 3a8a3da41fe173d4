package handlers

import (
	"github.com/gin-gonic/gin"

	"ehealth-portal-server/internal/chat"
	"ehealth-portal-server/internal/models"
	"ehealth-portal-server/internal/utils"
)

// PrescriptionHandler handles prescription endpoints.
type PrescriptionHandler struct {
	Chat ChatService
}

// NewPrescriptionHandler creates a new PrescriptionHandler.
func NewPrescriptionHandler(chatSvc ChatService) *PrescriptionHandler {
	return &PrescriptionHandler{Chat: chatSvc}
}

// FilePrescriptionBody represents the prescription payload.
type FilePrescriptionBody struct {
	Medicines []models.Medicine `json:"medicines" binding:"required,min=1,dive"`
	Advice    string            `json:"advice"`
}

// FilePrescription files a prescription against a request. Doctor only
// (route-enforced); the filer must be the assigned doctor. Works on closed
// threads too: prescriptions are historical records.
func (h *PrescriptionHandler) FilePrescription(c *gin.Context) {
	a, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := requestIDParam(c)
	if !ok {
		return
	}
	var body FilePrescriptionBody
	if !utils.BindAndValidate(c, &body) {
		return
	}

	req, err := h.Chat.GetRequest(c.Request.Context(), id)
	if err != nil {
		respondCoreError(c, err)
		return
	}
	if req.DoctorEmail != a.Email {
		utils.Forbidden(c, "Only the assigned doctor can file a prescription")
		return
	}

	p, err := h.Chat.FilePrescription(c.Request.Context(), chat.FilePrescriptionInput{
		RequestID:   id,
		DoctorEmail: a.Email,
		Medicines:   body.Medicines,
		Advice:      body.Advice,
	})
	if err != nil {
		respondCoreError(c, err)
		return
	}
	utils.Created(c, "Prescription saved and sent to patient", p)
}

// ListPrescriptions returns prescriptions newest-first. Patients see their
// own; the admin can pass the patient query parameter.
func (h *PrescriptionHandler) ListPrescriptions(c *gin.Context) {
	a, ok := requireActor(c)
	if !ok {
		return
	}

	patientEmail := a.Email
	if a.Role != models.RolePatient {
		patientEmail = c.Query("patient")
		if patientEmail == "" {
			utils.BadRequest(c, "patient query parameter is required")
			return
		}
	}

	ps, err := h.Chat.PrescriptionsForPatient(c.Request.Context(), patientEmail)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch prescriptions: "+err.Error())
		return
	}
	utils.Success(c, "Prescriptions fetched successfully", ps)
}
