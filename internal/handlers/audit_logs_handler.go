package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	slotdomain "github.com/BruksfildServices01/barbershop-booking/internal/domain/slot"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db   *gorm.DB
	logs *audit.Logger
}

func NewAuditLogsHandler(db *gorm.DB, logs *audit.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{db: db, logs: logs}
}

// List: admin vê tudo (shop_id opcional); dono só a própria barbearia.
func (h *AuditLogsHandler) List(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	shopID, ok := uintQuery(c, "shop_id")
	if !ok {
		return
	}

	if !actor.IsAdmin() {
		if shopID == 0 {
			shopID = c.GetUint(middleware.ContextShopID)
		}
		if shopID == 0 {
			httperr.Abort(c, httperr.ErrBusiness("shop_not_found"))
			return
		}
		if _, err := ownedShop(h.db, actor, shopID); err != nil {
			httperr.Abort(c, err)
			return
		}
	}

	page, limit := pagination(c)
	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Page:   page,
		Limit:  limit,
	}
	if shopID != 0 {
		f.ShopID = &shopID
	}

	// --------------------------------------------------
	// Filtros de data
	// --------------------------------------------------

	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(slotdomain.DateLayout, raw)
		if err != nil {
			httperr.Abort(c, httperr.ErrBusiness("invalid_date"))
			return
		}
		f.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(slotdomain.DateLayout, raw)
		if err != nil {
			httperr.Abort(c, httperr.ErrBusiness("invalid_date"))
			return
		}
		f.To = &to
	}

	logs, total, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.Page(c, logs, page, limit, total)
}
