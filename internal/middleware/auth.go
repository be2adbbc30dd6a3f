package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/auth"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
)

const (
	ContextUserID   = "userID"
	ContextShopID   = "shopID"
	ContextUserRole = "userRole"
)

func AuthMiddleware(issuer *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Token não informado.")
			return
		}

		tokenString, ok := BearerToken(authHeader)
		if !ok {
			httperr.Unauthorized(c, "invalid_authorization_header", "Cabeçalho Authorization inválido.")
			return
		}

		claims, err := issuer.Parse(tokenString)
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "Token inválido.")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextShopID, claims.ShopID)
		c.Set(ContextUserRole, claims.Role)

		c.Next()
	}
}

// RequireRole deve vir depois do AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		if _, ok := allowed[role]; !ok {
			httperr.Forbidden(c, "forbidden", "Acesso negado.")
			return
		}
		c.Next()
	}
}

func BearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// ActorFrom lê o usuário autenticado do contexto.
func ActorFrom(c *gin.Context) auth.Actor {
	return auth.Actor{
		UserID: c.GetUint(ContextUserID),
		Role:   c.GetString(ContextUserRole),
	}
}
