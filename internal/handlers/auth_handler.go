package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/auth"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/validators"
)

type AuthHandler struct {
	db         *gorm.DB
	issuer     *auth.TokenIssuer
	audit      audit.Recorder
	checkEmail func(email string) bool
}

func NewAuthHandler(db *gorm.DB, issuer *auth.TokenIssuer, audit audit.Recorder) *AuthHandler {
	return &AuthHandler{
		db:         db,
		issuer:     issuer,
		audit:      audit,
		checkEmail: validators.IsEmailDomainValid,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"omitempty,max=20"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

type AuthResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleCustomer
	}
	if !models.ValidRole(role) || role == models.RoleAdmin {
		httperr.Abort(c, httperr.ErrBusiness("invalid_role"))
		return
	}

	email := normalizeEmail(req.Email)
	if !h.checkEmail(email) {
		httperr.Abort(c, httperr.ErrBusiness("invalid_email_domain"))
		return
	}

	var count int64
	if err := h.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		httperr.Abort(c, err)
		return
	}
	if count > 0 {
		httperr.Abort(c, httperr.ErrBusiness("email_already_exists"))
		return
	}

	phone := optionalString(req.Phone)
	if phone != nil {
		if err := h.db.Model(&models.User{}).Where("phone = ?", *phone).Count(&count).Error; err != nil {
			httperr.Abort(c, err)
			return
		}
		if count > 0 {
			httperr.Abort(c, httperr.ErrBusiness("phone_already_exists"))
			return
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hashed),
		Role:         role,
		Active:       true,
	}
	if err := h.db.Create(&user).Error; err != nil {
		httperr.Abort(c, err)
		return
	}

	token, err := h.issue(&user)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{User: user, Token: token})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", normalizeEmail(req.Email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Abort(c, httperr.ErrBusiness("invalid_credentials"))
			return
		}
		httperr.Abort(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Abort(c, httperr.ErrBusiness("invalid_credentials"))
		return
	}
	if !user.Active {
		httperr.Abort(c, httperr.ErrBusiness("user_inactive"))
		return
	}

	token, err := h.issue(&user)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{User: user, Token: token})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)

	var req ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.Abort(c, httperr.ErrBusiness("user_not_found"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		httperr.Abort(c, httperr.ErrBusiness("invalid_credentials"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	if err := h.db.Model(&user).Update("password_hash", string(hashed)).Error; err != nil {
		httperr.Abort(c, err)
		return
	}

	if user.ShopID != nil {
		h.audit.Dispatch(audit.Event{
			ShopID:   *user.ShopID,
			UserID:   &user.ID,
			Action:   "password_changed",
			Entity:   "user",
			EntityID: &user.ID,
		})
	}

	c.Status(http.StatusNoContent)
}

// --------- JWT ---------

// issue gera o token. Para o dono, shopId é a primeira barbearia dele.
func (h *AuthHandler) issue(user *models.User) (string, error) {
	var shopID uint
	switch {
	case user.ShopID != nil:
		shopID = *user.ShopID
	case user.Role == models.RoleShopOwner:
		var shop models.Shop
		if err := h.db.Select("id").Where("owner_id = ?", user.ID).Order("id ASC").First(&shop).Error; err == nil {
			shopID = shop.ID
		}
	}

	return h.issuer.Generate(auth.Claims{
		UserID: user.ID,
		Role:   user.Role,
		ShopID: shopID,
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
