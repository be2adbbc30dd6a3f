package audit

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	log := models.AuditLog{
		ShopID:   ev.ShopID,
		UserID:   ev.UserID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	}

	return l.db.WithContext(ctx).Create(&log).Error
}

type Filter struct {
	ShopID *uint
	Action string
	Entity string
	From   *time.Time
	To     *time.Time
	Page   int
	Limit  int
}

// List devolve a página pedida e o total sem paginação.
func (l *Logger) List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error) {
	q := l.db.WithContext(ctx).Model(&models.AuditLog{})

	if f.ShopID != nil {
		q = q.Where("shop_id = ?", *f.ShopID)
	}
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", f.To.Add(24*time.Hour))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	err := q.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&logs).Error

	return logs, total, err
}
