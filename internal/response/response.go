package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/domain"
)

// Envelope is the JSON body of every API response.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success writes a 200 response with data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Created writes a 201 response with data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// BadRequest writes a 400 response.
func BadRequest(c *gin.Context, msg string) {
	Fail(c, http.StatusBadRequest, msg)
}

// Conflict writes a 409 response.
func Conflict(c *gin.Context, msg string) {
	Fail(c, http.StatusConflict, msg)
}

// Fail writes an error response with status.
func Fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Error: msg})
}

// Error maps err to a status code. Unclassified errors are reported as 500 without their
// message.
func Error(c *gin.Context, err error) {
	var de *domain.DomainError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		Fail(c, http.StatusNotFound, messageOf(err, de))
	case errors.Is(err, domain.ErrValidation):
		Fail(c, http.StatusBadRequest, messageOf(err, de))
	case errors.Is(err, domain.ErrConflict):
		Fail(c, http.StatusConflict, messageOf(err, de))
	default:
		_ = c.Error(err)
		Fail(c, http.StatusInternalServerError, "internal server error")
	}
}

func messageOf(err error, de *domain.DomainError) string {
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}
