package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"employee-records-api/config"
	"employee-records-api/services"
)

// respondError maps service errors onto HTTP statuses with a {message, error} body.
func respondError(c *gin.Context, message string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrInvalidState):
		status = http.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	}

	if status == http.StatusInternalServerError {
		config.Logger.Error().Err(err).Str("path", c.FullPath()).Msg(message)
		c.JSON(status, gin.H{"message": message})
		return
	}
	c.JSON(status, gin.H{"message": message, "error": err.Error()})
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func actorFrom(c *gin.Context) services.Actor {
	return services.Actor{
		UserID: c.GetUint("userID"),
		Role:   c.GetString("role"),
	}
}
