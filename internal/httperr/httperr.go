package httperr

import "github.com/gin-gonic/gin"

type HTTPError struct {
	Success             bool   `json:"success"`
	Code                string `json:"error"`
	Message             string `json:"message"`
	ConcurrencyConflict bool   `json:"concurrencyConflict,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:                code,
		Message:             message,
		ConcurrencyConflict: code == CodeConcurrencyConflict,
	})
}

// Business writes a taxonomy error with its catalog status.
func Business(c *gin.Context, be BusinessError) {
	msg := be.Message
	if msg == "" {
		msg = MessageOf(be.Code)
	}
	Write(c, StatusOf(be.Code), be.Code, msg)
}

// Code writes a taxonomy error with the catalog status and message.
func Code(c *gin.Context, code string) {
	Write(c, StatusOf(code), code, MessageOf(code))
}
