package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"epilag/internal/errors"
)

// statusFor maps application error codes onto HTTP statuses.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeInvalidInput, errors.CodeIncompatibleResolution:
		return http.StatusBadRequest
	case errors.CodeNotFound, errors.CodeSessionNotFound:
		return http.StatusNotFound
	case errors.CodeNoValidLag:
		return http.StatusUnprocessableEntity
	case errors.CodeExternalService:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}
