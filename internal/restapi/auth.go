package restapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/restokit/restopos/internal/domain"
	"github.com/restokit/restopos/internal/webserver"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type loginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

type registerPayload struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func registerAuthRoutes() {
	webserver.PubPOST("/login", login)
	webserver.PubPOST("/register", register)
	webserver.ApiGET("/me", currentUser)
}

func login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse credentials", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	var user domain.User
	err := GetDB(c).Where("email = ?", strings.ToLower(strings.TrimSpace(payload.Email))).First(&user).Error
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)) != nil {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect", nil)
	}

	cfg := GetAppContext(c).Config()
	token, err := webserver.GenerateToken(&user, cfg.Web.Secret, 24*time.Hour)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to issue token", nil)
	}

	zap.L().Info("user login", zap.Int64("user_id", user.ID), zap.String("role", user.Role))
	return ok(c, map[string]interface{}{"token": token, "user": user})
}

func register(c echo.Context) error {
	var payload registerPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse registration", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	var count int64
	GetDB(c).Model(&domain.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return fail(c, http.StatusUnprocessableEntity, "EMAIL_TAKEN", "Email is already registered", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "HASH_ERROR", "Failed to hash password", nil)
	}

	user := domain.User{
		Name:     strings.TrimSpace(payload.Name),
		Email:    email,
		Password: string(hash),
		Role:     domain.RoleCustomer,
	}
	if err := GetDB(c).Create(&user).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create user", err.Error())
	}
	return created(c, user)
}

func currentUser(c echo.Context) error {
	var user domain.User
	if err := GetDB(c).First(&user, webserver.CurrentUserID(c)).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
	}
	return ok(c, user)
}
