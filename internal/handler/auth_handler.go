package handler

import (
	"errors"
	"io"
	"net/http"

	"account_service/internal/middleware"
	"account_service/internal/model"
	"account_service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	msgDuplicateMobileNumber = "Please enter unique mobile number"
	msgInvalidCredentials    = "Invalid Credentials"
	msgUserNotFound          = "User not found"
	msgInvalidBody           = "Invalid request body"
	msgInternalError         = "Internal Server Error"
)

// AuthHandler handles account requests
type AuthHandler struct {
	service service.AccountService
	logger  *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AccountService, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	configureValidator()
	return &AuthHandler{service: s, logger: logger}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if !h.bind(c, &req) {
		return
	}

	_, token, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateMobileNumber) {
			respondWithError(c, http.StatusBadRequest, msgDuplicateMobileNumber)
			return
		}
		h.internalError(c, "register failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "authToken": token})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if !h.bind(c, &req) {
		return
	}

	_, token, err := h.service.Login(c.Request.Context(), req.MobileNumber, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondWithError(c, http.StatusBadRequest, msgInvalidCredentials)
			return
		}
		h.internalError(c, "login failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "authToken": token})
}

func (h *AuthHandler) GetUser(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		h.internalError(c, "get user failed", err)
		return
	}

	user, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondWithError(c, http.StatusNotFound, msgUserNotFound)
			return
		}
		h.internalError(c, "get user failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "user": user})
}

func (h *AuthHandler) EditUser(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		h.internalError(c, "edit user failed", err)
		return
	}

	var update model.ProfileUpdate
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&update); err != nil && !errors.Is(err, io.EOF) {
			h.respondBindError(c, err)
			return
		}
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), userID, update)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			respondWithError(c, http.StatusNotFound, msgUserNotFound)
		case errors.Is(err, service.ErrDuplicateMobileNumber):
			respondWithError(c, http.StatusBadRequest, msgDuplicateMobileNumber)
		default:
			h.internalError(c, "edit user failed", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "user": user})
}

// RegisterAuthRoutes registers the account routes under /auth. authMW guards
// the profile routes.
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/getuser", authMW, h.GetUser)
		authGroup.PUT("/edituser", authMW, h.EditUser)
	}
}

func (h *AuthHandler) bind(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.respondBindError(c, err)
		return false
	}
	return true
}

func (h *AuthHandler) respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		respondWithValidationError(c, verrs)
		return
	}
	respondWithError(c, http.StatusBadRequest, msgInvalidBody)
}

func (h *AuthHandler) internalError(c *gin.Context, msg string, err error) {
	h.logger.Error(msg,
		zap.String("request_id", c.GetString(middleware.RequestIDKey)),
		zap.Error(err),
	)
	respondWithError(c, http.StatusInternalServerError, msgInternalError)
}

// Helper to get authenticated user ID from context
func getAuthUserID(c *gin.Context) (string, error) {
	userIDVal, exists := c.Get(middleware.AuthUserKey)
	if !exists {
		return "", errors.New("user ID not found in context")
	}
	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		return "", errors.New("invalid user ID type in context")
	}
	return userID, nil
}
