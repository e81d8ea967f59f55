package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/joblynk/internal/utils"
)

type APIError struct {
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

type Envelope struct {
	Data    any    `json:"data"`
	Message string `json:"message"`
}

func respond(c *gin.Context, status int, data any, message string) {
	c.JSON(status, Envelope{Data: data, Message: message})
}

// writeError maps err to a status. Internal failures are attached to the
// context so the request logger records them once.
func writeError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}

	var ae *utils.AppError
	if errors.As(err, &ae) {
		c.JSON(status, APIError{
			Code:    ae.Code,
			Message: ae.Message,
		})
		return
	}

	switch status {
	case http.StatusNotFound:
		c.JSON(status, APIError{Code: utils.CodeNotFound, Message: http.StatusText(status)})
	case http.StatusConflict:
		c.JSON(status, APIError{Code: utils.CodeConflict, Message: http.StatusText(status)})
	default:
		c.JSON(status, APIError{Code: utils.CodeInternal, Message: "Internal Server Error"})
	}
}

func badRequest(c *gin.Context, op, msg string, err error) {
	writeError(c, utils.E(utils.CodeInvalidArgument, op, msg, err))
}

func requireUserID(c *gin.Context) (string, bool) {
	if v, ok := c.Get("user_id"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s, true
		}
	}

	writeError(c, utils.E(utils.CodeUnauthorized, "Auth", "User ID missing.", nil))
	return "", false
}
