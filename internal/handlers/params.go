package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// bindJSON registra o erro de binding e devolve false.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		abortBind(c, err)
		return false
	}
	return true
}

// abortBind: erros de validação seguem com a lista de campos; o resto vira invalid_request.
func abortBind(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		httperr.Abort(c, err)
		return
	}
	httperr.Abort(c, httperr.ErrBusiness("invalid_request"))
}

// failedField diz se a validação falhou no campo informado (nome do struct).
func failedField(err error, field string) bool {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return false
	}
	for _, fe := range verrs {
		if fe.StructField() == field {
			return true
		}
	}
	return false
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		httperr.Abort(c, httperr.ErrBusiness("invalid_id"))
		return 0, false
	}
	return uint(v), true
}

// uintQuery devolve 0 quando o parâmetro não foi enviado.
func uintQuery(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		httperr.Abort(c, httperr.ErrBusiness("invalid_id"))
		return 0, false
	}
	return uint(v), true
}

func pagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	return page, limit
}

func offset(page, limit int) int {
	return (page - 1) * limit
}
