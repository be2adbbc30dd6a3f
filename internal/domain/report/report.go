package report

import (
	"context"
	"time"
)

type Range struct {
	ShopID uint
	From   string
	To     string
}

// StatusRow é uma linha agregada por status.
type StatusRow struct {
	Status string
	Total  int64
	Amount float64
}

type ServiceRow struct {
	ServiceID uint    `json:"service_id"`
	Name      string  `json:"name"`
	Total     int64   `json:"total"`
	Revenue   float64 `json:"revenue"`
}

type ShopStats struct {
	ShopID      uint             `json:"shop_id"`
	From        string           `json:"from"`
	To          string           `json:"to"`
	Total       int64            `json:"total"`
	ByStatus    map[string]int64 `json:"by_status"`
	Revenue     float64          `json:"revenue"`
	TopServices []ServiceRow     `json:"top_services"`
	GeneratedAt time.Time        `json:"generated_at"`
}

type Repository interface {
	CountByStatus(ctx context.Context, r Range) ([]StatusRow, error)
	TopServices(ctx context.Context, r Range, limit int) ([]ServiceRow, error)
}

// Build junta as linhas agregadas. Receita só conta atendimentos concluídos.
func Build(r Range, rows []StatusRow, top []ServiceRow, now time.Time) ShopStats {
	out := ShopStats{
		ShopID:      r.ShopID,
		From:        r.From,
		To:          r.To,
		ByStatus:    make(map[string]int64, len(rows)),
		TopServices: top,
		GeneratedAt: now,
	}
	if out.TopServices == nil {
		out.TopServices = []ServiceRow{}
	}

	for _, row := range rows {
		out.ByStatus[row.Status] += row.Total
		out.Total += row.Total
		if row.Status == "completed" {
			out.Revenue += row.Amount
		}
	}

	return out
}
