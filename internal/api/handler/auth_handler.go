package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bankdemo/bank-api/internal/api/metrics"
	"github.com/bankdemo/bank-api/internal/core/domain"
	"github.com/bankdemo/bank-api/internal/core/ports"
)

const MessageIncorrectCredentials = "Incorrect username or password"

type AuthHandler struct {
	authService ports.AuthService
	stack       string
	log         zerolog.Logger
}

// NewAuthHandler binds the handler to one stack. stack only labels metrics
// and logs.
func NewAuthHandler(authService ports.AuthService, stack string, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, stack: stack, log: log}
}

// Blank fields are not rejected here; they fail as bad credentials.
type loginRequest struct {
	UserName string `json:"UserName" validate:"max=256"`
	Password string `json:"Password" validate:"max=1024"`
}

type tokenResponse struct {
	Token string `json:"Token"`
}

type messageResponse struct {
	Message string `json:"Message"`
}

// Login verifies a username and password and returns a signed bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Router       /api/v2/auth [post]
// @Router       /testing/api/v2/auth [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(h.stack, "error").Inc()
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(h.stack, "error").Inc()
		return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	}

	token, err := h.authService.Login(c.Request().Context(), req.UserName, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues(h.stack, "rejected").Inc()
			return c.JSON(http.StatusUnauthorized, messageResponse{Message: MessageIncorrectCredentials})
		}
		metrics.LoginAttemptsTotal.WithLabelValues(h.stack, "error").Inc()
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues(h.stack, "success").Inc()
	h.log.Info().Str("stack", h.stack).Msg("token issued")
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// Info describes the caller of the request.
//
// @Summary      Who am I
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.UserInfo
// @Failure      401  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/v2/info [get]
// @Router       /testing/api/v2/info [get]
func (h *AuthHandler) Info(c echo.Context) error {
	name, err := callerName(c)
	if err != nil {
		return err
	}

	info, err := h.authService.WhoAmI(c.Request().Context(), name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, info)
}
