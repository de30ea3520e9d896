package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	MessageInvalidToken = "Invalid token"
	MessageAccessDenied = "Access denied"
)

// MessageResponse is the body of every authentication and authorization failure.
type MessageResponse struct {
	Message string `json:"Message"`
}

// challenge writes the 401 response. errorCode is the RFC 6750 error
// attribute; it is omitted when the request carried no credentials.
func challenge(c echo.Context, errorCode string) error {
	header := "Bearer"
	if errorCode != "" {
		header += ` error="` + errorCode + `"`
	}
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, header)
	return c.JSON(http.StatusUnauthorized, MessageResponse{Message: MessageInvalidToken})
}

func forbid(c echo.Context) error {
	return c.JSON(http.StatusForbidden, MessageResponse{Message: MessageAccessDenied})
}
