package handlers

import (
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"strings"

	"github.com/gin-gonic/gin"

	"ehealth-portal-server/internal/chat"
	"ehealth-portal-server/internal/config"
	"ehealth-portal-server/internal/mailer"
	"ehealth-portal-server/internal/models"
	"ehealth-portal-server/internal/store"
	"ehealth-portal-server/internal/utils"
)

// maxOTPAttempts caps verification tries per code.
const maxOTPAttempts = 5

// AuthHandler handles registration, verification and login.
type AuthHandler struct {
	Identity *store.IdentityStore
	OTPs     *store.OTPStore
	Mail     mailer.Sender
	Cfg      *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(identity *store.IdentityStore, otps *store.OTPStore, mail mailer.Sender, cfg *config.Config) *AuthHandler {
	return &AuthHandler{Identity: identity, OTPs: otps, Mail: mail, Cfg: cfg}
}

// RegisterRequest represents the patient registration payload.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Mobile   string `json:"mobile" binding:"omitempty,len=10,numeric"`
}

// Register creates a patient account and emails a verification code.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	patient := &models.Patient{
		Email:     email,
		Name:      strings.TrimSpace(req.Name),
		Mobile:    req.Mobile,
		PatientID: patientID(req.Mobile),
	}
	if err := patient.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password")
		return
	}

	if err := h.Identity.CreatePatient(c.Request.Context(), patient); err != nil {
		if chat.IsValidation(err) {
			utils.BadRequest(c, err.Error())
		} else {
			utils.InternalServerError(c, "Failed to register: "+err.Error())
		}
		return
	}

	code := otpCode()
	if err := h.OTPs.Save(c.Request.Context(), email, code); err != nil {
		utils.InternalServerError(c, "Failed to store verification code")
		return
	}
	if err := h.Mail.Send(c.Request.Context(), mailer.VerificationEmail(email, code)); err != nil {
		// Registration stands; the code can be resent.
		log.Printf("auth: verification email to %s failed: %v", email, err)
	}

	utils.Created(c, "Registered. Check your email for the verification code.", gin.H{
		"email":     patient.Email,
		"patientId": patient.PatientID,
	})
}

// VerifyOTPRequest represents the verification payload.
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

// VerifyOTP checks a pending verification code. Codes expire after the
// configured TTL and are invalidated after too many wrong attempts.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	otp, err := h.OTPs.Get(c.Request.Context(), email)
	if err != nil {
		utils.BadRequest(c, "Verification code expired or not found. Request a new one.")
		return
	}
	if otp.Attempts >= maxOTPAttempts {
		_ = h.OTPs.Delete(c.Request.Context(), email)
		utils.BadRequest(c, "Too many attempts. Request a new code.")
		return
	}
	if otp.Code != req.Code {
		_ = h.OTPs.IncrementAttempts(c.Request.Context(), email)
		utils.BadRequest(c, "Incorrect verification code")
		return
	}

	if err := h.OTPs.Delete(c.Request.Context(), email); err != nil {
		utils.InternalServerError(c, "Failed to finish verification")
		return
	}
	utils.Success(c, "Email verified successfully", nil)
}

// ResendOTP issues a fresh verification code for a registered patient.
func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if !utils.BindAndValidate(c, &req) {
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := h.Identity.PatientByEmail(c.Request.Context(), email); err != nil {
		utils.NotFound(c, "No account registered for this email")
		return
	}

	code := otpCode()
	if err := h.OTPs.Save(c.Request.Context(), email, code); err != nil {
		utils.InternalServerError(c, "Failed to store verification code")
		return
	}
	if err := h.Mail.Send(c.Request.Context(), mailer.VerificationEmail(email, code)); err != nil {
		utils.BadGateway(c, "Failed to send verification email. Try again later.")
		return
	}
	utils.Success(c, "Verification code sent", nil)
}

// LoginRequest represents the login payload.
type LoginRequest struct {
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required"`
	Role     models.Role `json:"role" binding:"required,oneof=patient doctor admin"`
}

// Login verifies credentials for the selected role and issues tokens.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var name string
	var role models.Role
	switch req.Role {
	case models.RolePatient:
		patient, err := h.Identity.PatientByEmail(c.Request.Context(), email)
		if err != nil || !patient.CheckPassword(req.Password) {
			utils.Unauthorized(c, "Invalid email or password")
			return
		}
		name, role = patient.Name, models.RolePatient
	default:
		doctor, err := h.Identity.DoctorByEmail(c.Request.Context(), email)
		if err != nil || !doctor.CheckPassword(req.Password) {
			utils.Unauthorized(c, "Invalid email or password")
			return
		}
		name, role = doctor.Name, doctor.Role()
		if req.Role == models.RoleAdmin && role != models.RoleAdmin {
			utils.Forbidden(c, "This account is not an admin")
			return
		}
	}

	accessToken, refreshToken, err := utils.GenerateTokens(email, name, role, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to issue tokens")
		return
	}

	utils.Success(c, "Logged in successfully", gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"profile": gin.H{
			"email": email,
			"name":  name,
			"role":  role,
		},
	})
}

// RefreshToken exchanges a valid refresh token for a fresh token pair.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if !utils.BindAndValidate(c, &req) {
		return
	}

	claims, err := utils.ValidateToken(req.RefreshToken, h.Cfg.JWTRefreshSecret)
	if err != nil {
		utils.Unauthorized(c, "Invalid refresh token: "+err.Error())
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(claims.Email, claims.Name, claims.Role, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to issue tokens")
		return
	}
	utils.Success(c, "Token refreshed", gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

// GetProfile returns the full record of the authenticated user.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	a, ok := requireActor(c)
	if !ok {
		return
	}

	if a.Role == models.RolePatient {
		patient, err := h.Identity.PatientByEmail(c.Request.Context(), a.Email)
		if err != nil {
			utils.NotFound(c, "Profile not found")
			return
		}
		utils.Success(c, "Profile fetched successfully", patient)
		return
	}

	doctor, err := h.Identity.DoctorByEmail(c.Request.Context(), a.Email)
	if err != nil {
		utils.NotFound(c, "Profile not found")
		return
	}
	utils.Success(c, "Profile fetched successfully", doctor)
}

// patientID derives the display id from the mobile number, falling back to a
// random six digit suffix.
func patientID(mobile string) string {
	if len(mobile) >= 6 {
		return "P" + mobile[len(mobile)-6:]
	}
	return "P" + randomDigits(6)
}

// otpCode returns a six digit verification code.
func otpCode() string {
	return randomDigits(6)
}

func randomDigits(n int) string {
	max := big.NewInt(10)
	var sb strings.Builder
	for i := 0; i < n; i++ {
		d, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken
			return fmt.Sprintf("%0*d", n, 0)
		}
		sb.WriteString(d.String())
	}
	return sb.String()
}
