package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/report"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type ReportSQLRepository struct {
	db *gorm.DB
}

func NewReportSQLRepository(db *gorm.DB) *ReportSQLRepository {
	return &ReportSQLRepository{db: db}
}

func statusQuery(r report.Range) sq.SelectBuilder {
	return psql.
		Select("status", "COUNT(*) AS total", "COALESCE(SUM(total_amount), 0) AS amount").
		From("bookings").
		Where(sq.Eq{"shop_id": r.ShopID}).
		Where(sq.GtOrEq{"date": r.From}).
		Where(sq.LtOrEq{"date": r.To}).
		GroupBy("status").
		OrderBy("status")
}

func topServicesQuery(r report.Range, limit int) sq.SelectBuilder {
	return psql.
		Select("bs.service_id", "bs.name", "COUNT(*) AS total", "COALESCE(SUM(bs.price), 0) AS revenue").
		From("booking_services bs").
		Join("bookings b ON b.id = bs.booking_id").
		Where(sq.Eq{"b.shop_id": r.ShopID, "b.status": "completed"}).
		Where(sq.GtOrEq{"b.date": r.From}).
		Where(sq.LtOrEq{"b.date": r.To}).
		GroupBy("bs.service_id", "bs.name").
		OrderBy("total DESC", "revenue DESC").
		Limit(uint64(limit))
}

func (r *ReportSQLRepository) CountByStatus(
	ctx context.Context,
	rg report.Range,
) ([]report.StatusRow, error) {

	query, args, err := statusQuery(rg).ToSql()
	if err != nil {
		return nil, err
	}

	var rows []report.StatusRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReportSQLRepository) TopServices(
	ctx context.Context,
	rg report.Range,
	limit int,
) ([]report.ServiceRow, error) {

	query, args, err := topServicesQuery(rg, limit).ToSql()
	if err != nil {
		return nil, err
	}

	var rows []report.ServiceRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Compile-time check
var _ report.Repository = (*ReportSQLRepository)(nil)
