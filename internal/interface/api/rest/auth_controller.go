package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mds-registry-api/internal/application/ports"
	"mds-registry-api/internal/application/services"
	"mds-registry-api/internal/interface/api/rest/dto"
	"mds-registry-api/internal/interface/api/rest/dto/auth"
	"mds-registry-api/internal/interface/api/rest/validator"
)

type AuthController struct {
	logger      *zap.Logger
	authService ports.Auth
}

func NewAuthController(
	r *gin.Engine,
	logger *zap.Logger,
	authService ports.Auth,
) *AuthController {
	ac := &AuthController{
		logger:      logger,
		authService: authService,
	}

	r.POST(RouteLogin, ac.LoginHandler)

	return ac
}

func (ac *AuthController) LoginHandler(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			dto.Error{Error: "invalid json"},
		)
		return
	}

	if errs := validator.ValidateLogin(req); errs != nil {
		c.JSON(http.StatusBadRequest, dto.Error{
			Error:   "Username and password are required",
			Details: errs,
		})
		return
	}

	token, acc, err := ac.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, dto.Error{Error: "Invalid credentials"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			dto.Error{Error: "failed to log in"},
		)
		ac.logger.Error("Login() error", zap.Error(err), zap.String("username", req.Username))
		return
	}

	c.JSON(http.StatusOK, auth.LoginResponse{
		Message: "Login successful",
		Token:   token,
		User:    auth.ToResponseUser(*acc),
	})
}
