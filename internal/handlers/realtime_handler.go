package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/auth"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/realtime"
)

type RealtimeHandler struct {
	hub    *realtime.Hub
	issuer *auth.TokenIssuer
	log    *slog.Logger
}

func NewRealtimeHandler(hub *realtime.Hub, issuer *auth.TokenIssuer, log *slog.Logger) *RealtimeHandler {
	return &RealtimeHandler{hub: hub, issuer: issuer, log: log}
}

// requestToken aceita ?token= ou o header Bearer.
func requestToken(c *gin.Context) string {
	if t := c.Query("token"); t != "" {
		return t
	}
	if t, ok := middleware.BearerToken(c.GetHeader("Authorization")); ok {
		return t
	}
	return ""
}

// Serve: sem token a conexão é anônima; token inválido é recusado.
func (h *RealtimeHandler) Serve(c *gin.Context) {
	var userID uint
	if token := requestToken(c); token != "" {
		claims, err := h.issuer.Parse(token)
		if err != nil {
			httperr.Abort(c, httperr.ErrBusiness("invalid_token"))
			return
		}
		userID = claims.UserID
	}

	if err := h.hub.Serve(c.Writer, c.Request, userID); err != nil {
		h.log.Warn("websocket upgrade failed", "error", err)
	}
}
