package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/trainermarkt/backend/internal/dto"
)

// ErrorHandler renders every error, echo-raised or handler-returned, as
// the API's uniform error payload.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	resp := dto.ErrorResponse{Message: err.Error()}
	code := http.StatusInternalServerError

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			resp.Message = m
		}
	}

	_ = c.JSON(code, resp)
}
