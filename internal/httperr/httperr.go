package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string   `json:"error_code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

// Unauthorized e Forbidden respondem e interrompem a cadeia.
func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
	c.Abort()
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
	c.Abort()
}

// Abort registra o erro para o ErrorHandler e interrompe a cadeia.
func Abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
