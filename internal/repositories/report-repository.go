package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"solar-crm/internal/entities"
)

type ReportRepositoryInterface interface {
	GetInstallationsReport(ctx context.Context, filter entities.ReportFilter) ([]entities.ReportItem, uint64, error)
}

type ReportRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewReportRepository(storage *pgxpool.Pool, logger *zap.Logger) ReportRepositoryInterface {
	return &ReportRepository{storage: storage, logger: logger}
}

func applyReportFilter(builder sq.SelectBuilder, filter entities.ReportFilter) sq.SelectBuilder {
	if filter.DateFrom != nil {
		builder = builder.Where(sq.GtOrEq{"i.created_at": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		builder = builder.Where(sq.LtOrEq{"i.created_at": *filter.DateTo})
	}
	if len(filter.ClientIDs) > 0 {
		builder = builder.Where(sq.Eq{"i.client_id": filter.ClientIDs})
	}
	if len(filter.ResponsibleIDs) > 0 {
		builder = builder.Where(sq.Eq{"i.responsible_id": filter.ResponsibleIDs})
	}
	if len(filter.Priorities) > 0 {
		builder = builder.Where(sq.Eq{"i.priority": filter.Priorities})
	}
	return builder
}

func (r *ReportRepository) GetInstallationsReport(ctx context.Context, filter entities.ReportFilter) ([]entities.ReportItem, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	countBuilder := applyReportFilter(
		psql.Select("COUNT(i.id)").From("installations AS i"), filter)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.ReportItem{}, 0, nil
	}

	builder := applyReportFilter(psql.Select(
		"i.id", "i.name", "c.name", "i.priority", "i.status", "i.current_stage",
		"i.capacity_kw", "i.total_cost", "i.paid_amount", "e.full_name", "i.created_at",
	).From("installations AS i").
		LeftJoin("clients c ON i.client_id = c.id").
		LeftJoin("employees e ON i.responsible_id = e.id").
		OrderBy("i.id DESC"), filter)

	if filter.PerPage > 0 {
		builder = builder.Limit(uint64(filter.PerPage))
		if filter.Page > 1 {
			builder = builder.Offset(uint64((filter.Page - 1) * filter.PerPage))
		}
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]entities.ReportItem, 0, filter.PerPage)
	for rows.Next() {
		var item entities.ReportItem
		err := rows.Scan(&item.InstallationID, &item.Name, &item.ClientName,
			&item.Priority, &item.Status, &item.CurrentStage,
			&item.CapacityKW, &item.TotalCost, &item.PaidAmount,
			&item.ResponsibleName, &item.CreatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования строки отчёта: %w", err)
		}
		items = append(items, item)
	}
	return items, total, rows.Err()
}
