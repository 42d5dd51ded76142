package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"noteful/backend/internal/logger"
	"noteful/backend/internal/service"
)

type errorResponse struct {
	Message string `json:"message"`
}

const invalidIDMessage = "The `id` is not valid"

// writeServiceError renders a service error with the status its kind
// calls for. Anything outside the taxonomy is logged and reported as an
// opaque internal error.
func writeServiceError(c echo.Context, err error) error {
	message := ""
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		message = svcErr.Error()
	}

	switch {
	case errors.Is(err, service.ErrInvalid):
		if message == "" {
			message = "invalid request"
		}
		return c.JSON(http.StatusBadRequest, errorResponse{Message: message})
	case errors.Is(err, service.ErrConflict):
		if message == "" {
			message = "name exists"
		}
		return c.JSON(http.StatusBadRequest, errorResponse{Message: message})
	case errors.Is(err, service.ErrNotFound):
		if message == "" {
			message = "resource not found"
		}
		return c.JSON(http.StatusNotFound, errorResponse{Message: message})
	default:
		logger.Error("request failed",
			"module", "handler",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"error", err,
		)
		return c.JSON(http.StatusInternalServerError, errorResponse{Message: "internal error"})
	}
}

// Error returns a JSON error response with the given status and message
func Error(c echo.Context, status int, message string) error {
	return c.JSON(status, errorResponse{Message: message})
}
