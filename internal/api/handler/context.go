package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bankdemo/bank-api/internal/api/middleware"
)

// callerName returns the name of the principal set by the Authenticate
// middleware. Routes that call it are registered behind RequireAuthenticated
// or RequirePolicy, so an anonymous caller here gets the same 401 challenge
// those would have sent.
func callerName(c echo.Context) (string, error) {
	p := middleware.Principal(c)
	if !p.IsAuthenticated() {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		return "", echo.NewHTTPError(http.StatusUnauthorized, middleware.MessageInvalidToken)
	}
	return p.Name, nil
}
