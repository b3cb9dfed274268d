package authhandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"friendbot/companion-api/internal/application/audit"
	"friendbot/companion-api/internal/domain/user"
	"friendbot/companion-api/internal/infrastructure/auth"
	"friendbot/companion-api/internal/infrastructure/metrics"
	"friendbot/companion-api/internal/interfaces/httpserver/middlewares"
	authrequests "friendbot/companion-api/internal/interfaces/httpserver/requests/auth"
	"friendbot/companion-api/internal/interfaces/httpserver/responses"
	authresponses "friendbot/companion-api/internal/interfaces/httpserver/responses/auth"
	"friendbot/companion-api/internal/utils/platformerrors"
)

// AuthHandler handles registration, login and profile requests.
type AuthHandler struct {
	userService  *user.Service
	tokenService *auth.TokenService
	auditLogger  *audit.AccountAuditLogger
}

func NewAuthHandler(
	userService *user.Service,
	tokenService *auth.TokenService,
	auditLogger *audit.AccountAuditLogger,
) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		tokenService: tokenService,
		auditLogger:  auditLogger,
	}
}

func (h *AuthHandler) audit(c *gin.Context, userID uint, username, action string, statusCode int, err error) {
	h.auditLogger.Log(c.Request.Context(), audit.AccountAuditEntry{
		UserID:     userID,
		Username:   username,
		Action:     action,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		StatusCode: statusCode,
		Error:      err,
	})
}

// Register creates a new account and returns its public view.
func (h *AuthHandler) Register(c *gin.Context) {
	var req authrequests.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.AuthRequestsTotal.WithLabelValues("register", "invalid").Inc()
		responses.HandleError(c, platformerrors.NewError(
			c.Request.Context(),
			platformerrors.LayerHandler,
			platformerrors.ErrorTypeValidation,
			"invalid register payload",
			err,
			"0b7f38f2-24d2-4c11-9a3c-8f5a0d1e6b42",
		))
		return
	}

	preference := user.PersonaNeutral
	if req.PersonaPreference != "" {
		preference = user.PersonaPreference(req.PersonaPreference)
	}

	usr, err := h.userService.Register(c.Request.Context(), user.RegisterInput{
		Username:          req.Username,
		Email:             req.Email,
		Password:          req.Password,
		PersonaPreference: preference,
	})
	if err != nil {
		metrics.AuthRequestsTotal.WithLabelValues("register", "failure").Inc()
		h.audit(c, 0, req.Username, "register", errorStatus(err), err)
		responses.HandleError(c, err)
		return
	}

	metrics.AuthRequestsTotal.WithLabelValues("register", "success").Inc()
	h.audit(c, usr.ID, usr.Username, "register", http.StatusCreated, nil)
	c.JSON(http.StatusCreated, authresponses.NewUserResponse(usr))
}

// Login exchanges credentials for a signed access token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req authrequests.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.AuthRequestsTotal.WithLabelValues("login", "invalid").Inc()
		responses.HandleError(c, platformerrors.NewError(
			c.Request.Context(),
			platformerrors.LayerHandler,
			platformerrors.ErrorTypeValidation,
			"invalid login payload",
			err,
			"6d2c9a4e-1f0b-4c7d-8e3a-5b9f2d7c1a84",
		))
		return
	}

	usr, err := h.userService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		metrics.AuthRequestsTotal.WithLabelValues("login", "failure").Inc()
		h.audit(c, 0, req.Username, "login", errorStatus(err), err)
		responses.HandleError(c, err)
		return
	}

	token, expiresAt, err := h.tokenService.Issue(c.Request.Context(), usr)
	if err != nil {
		metrics.AuthRequestsTotal.WithLabelValues("login", "failure").Inc()
		h.audit(c, usr.ID, usr.Username, "login", errorStatus(err), err)
		responses.HandleError(c, err)
		return
	}

	metrics.AuthRequestsTotal.WithLabelValues("login", "success").Inc()
	h.audit(c, usr.ID, usr.Username, "login", http.StatusOK, nil)
	c.JSON(http.StatusOK, authresponses.NewTokenResponse(token, expiresAt, usr))
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(c)
	if !ok {
		responses.HandleErrorWithStatus(c, http.StatusUnauthorized, platformerrors.NewError(
			c.Request.Context(),
			platformerrors.LayerHandler,
			platformerrors.ErrorTypeUnauthorized,
			"missing principal",
			nil,
			"3c5e8d1a-9b4f-4a26-b7e0-2d8c6f1a9e53",
		))
		return
	}

	usr, err := h.userService.GetByID(c.Request.Context(), principal.UserID)
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, authresponses.NewUserResponse(usr))
}

// UpdateProfile applies partial profile mutations.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(c)
	if !ok {
		responses.HandleErrorWithStatus(c, http.StatusUnauthorized, platformerrors.NewError(
			c.Request.Context(),
			platformerrors.LayerHandler,
			platformerrors.ErrorTypeUnauthorized,
			"missing principal",
			nil,
			"c4d9a7f2-0e5b-4b38-a1c6-7f3e9d2b8a14",
		))
		return
	}

	var req authrequests.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleError(c, platformerrors.NewError(
			c.Request.Context(),
			platformerrors.LayerHandler,
			platformerrors.ErrorTypeValidation,
			"invalid profile payload",
			err,
			"1a8f4c2d-6b9e-4d70-93a5-e2c7b5f0d863",
		))
		return
	}

	input := user.UpdateProfileInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}
	if req.PersonaPreference != nil {
		preference := user.PersonaPreference(*req.PersonaPreference)
		input.PersonaPreference = &preference
	}

	usr, err := h.userService.UpdateProfile(c.Request.Context(), principal.UserID, input)
	if err != nil {
		h.audit(c, principal.UserID, principal.Username, "update_profile", errorStatus(err), err)
		responses.HandleError(c, err)
		return
	}

	h.audit(c, usr.ID, usr.Username, "update_profile", http.StatusOK, nil)
	c.JSON(http.StatusOK, authresponses.NewUserResponse(usr))
}

func errorStatus(err error) int {
	if platformErr := platformerrors.GetPlatformError(err); platformErr != nil {
		return platformerrors.ErrorTypeToHTTPStatus(platformErr.Type)
	}
	return http.StatusInternalServerError
}
