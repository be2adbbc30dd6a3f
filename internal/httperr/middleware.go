package httperr

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// ErrorHandler converte o último erro registrado via c.Error em resposta JSON.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		status, body := Resolve(c.Errors.Last().Err)
		if status >= http.StatusInternalServerError {
			slog.Error("request failed",
				"path", c.FullPath(),
				"error", c.Errors.Last().Err.Error(),
			)
		}
		c.JSON(status, body)
	}
}

// Resolve mapeia um erro para status + corpo.
func Resolve(err error) (int, HTTPError) {
	var be BusinessError
	if errors.As(err, &be) {
		status, msg := StatusFor(be.Code)
		return status, HTTPError{Code: be.Code, Message: msg}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		status, msg := StatusFor("not_found")
		return status, HTTPError{Code: "not_found", Message: msg}
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		status, msg := StatusFor("invalid_id")
		return status, HTTPError{Code: "invalid_id", Message: msg}
	}

	if isDuplicateKey(err) {
		status, msg := StatusFor("duplicate_key")
		return status, HTTPError{Code: "duplicate_key", Message: msg}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field()+":"+fe.Tag())
		}
		return http.StatusBadRequest, HTTPError{
			Code:    "validation_error",
			Message: "Dados inválidos.",
			Fields:  fields,
		}
	}

	if isJWTError(err) {
		return http.StatusUnauthorized, HTTPError{Code: "invalid_token", Message: "Token inválido."}
	}

	return http.StatusInternalServerError, HTTPError{
		Code:    "internal_error",
		Message: "Erro interno.",
	}
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func isJWTError(err error) bool {
	return errors.Is(err, jwt.ErrTokenMalformed) ||
		errors.Is(err, jwt.ErrTokenExpired) ||
		errors.Is(err, jwt.ErrTokenSignatureInvalid) ||
		errors.Is(err, jwt.ErrTokenNotValidYet) ||
		errors.Is(err, jwt.ErrTokenUnverifiable) ||
		errors.Is(err, jwt.ErrTokenInvalidClaims)
}
