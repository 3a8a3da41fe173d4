package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ehealth-portal-server/internal/chat"
	"ehealth-portal-server/internal/models"
	"ehealth-portal-server/internal/store"
	"ehealth-portal-server/internal/utils"
)

// UserHandler handles directory related requests.
type UserHandler struct {
	Identity *store.IdentityStore
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(identity *store.IdentityStore) *UserHandler {
	return &UserHandler{Identity: identity}
}

// GetDoctors lists doctors, optionally filtered by the specialty query
// parameter. Available to all authenticated users when picking a doctor for
// a chat request.
func (h *UserHandler) GetDoctors(c *gin.Context) {
	doctors, err := h.Identity.ListDoctors(c.Request.Context(), c.Query("specialty"))
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}
	utils.Success(c, "Doctors fetched successfully", doctors)
}

// GetPatients lists all registered patients. Admin only (route-enforced).
func (h *UserHandler) GetPatients(c *gin.Context) {
	patients, err := h.Identity.ListPatients(c.Request.Context())
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch patients: "+err.Error())
		return
	}
	utils.Success(c, "Patients fetched successfully", patients)
}

// AddDoctorRequest represents the doctor onboarding payload.
type AddDoctorRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	Name          string `json:"name" binding:"required"`
	Mobile        string `json:"mobile" binding:"omitempty,len=10,numeric"`
	Specialty     string `json:"specialty" binding:"required"`
	DoctorID      string `json:"doctorId"`
	Qualification string `json:"qualification" binding:"required"`
}

// AddDoctor onboards a new doctor. Admin only (route-enforced).
func (h *UserHandler) AddDoctor(c *gin.Context) {
	var req AddDoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if strings.EqualFold(req.Specialty, models.AdminSpecialty) {
		utils.BadRequest(c, "Specialty is reserved")
		return
	}

	docID := strings.TrimSpace(req.DoctorID)
	if docID == "" {
		docID = "D" + uuid.New().String()[:8]
	}

	doctor := &models.Doctor{
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Name:          strings.TrimSpace(req.Name),
		Mobile:        req.Mobile,
		Specialty:     req.Specialty,
		DoctorID:      docID,
		Qualification: req.Qualification,
	}
	if err := doctor.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password")
		return
	}

	if err := h.Identity.CreateDoctor(c.Request.Context(), doctor); err != nil {
		if chat.IsValidation(err) {
			utils.BadRequest(c, err.Error())
		} else {
			utils.InternalServerError(c, "Failed to add doctor: "+err.Error())
		}
		return
	}
	utils.Created(c, "Doctor added successfully", doctor)
}
