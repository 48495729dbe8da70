package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"solar-crm/internal/dto"
	"solar-crm/internal/entities"
	db "solar-crm/internal/infrastructure/bd"
	apperrors "solar-crm/pkg/errors"
	"solar-crm/pkg/types"
)

const installationTable = "installations"

// Единая карта полей (фильтр + сортировка)
var installationMap = map[string]string{
	"id":             "i.id",
	"name":           "i.name",
	"priority":       "i.priority",
	"status":         "i.status",
	"current_stage":  "i.current_stage",
	"responsible_id": "i.responsible_id",
	"client_id":      "i.client_id",
	"created_at":     "i.created_at",
	"updated_at":     "i.updated_at",
}

type InstallationRepositoryInterface interface {
	GetInstallations(ctx context.Context, filter types.Filter) ([]entities.Installation, uint64, error)
	FindInstallation(ctx context.Context, id uint64) (*entities.Installation, error)
	CreateInstallation(ctx context.Context, payload dto.CreateInstallationDTO) (uint64, error)
	UpdateInstallation(ctx context.Context, id uint64, payload dto.UpdateInstallationDTO) error
	SetCurrentStageInTx(ctx context.Context, tx pgx.Tx, id uint64, stageKey string) error
	DeleteInstallation(ctx context.Context, id uint64) error
}

type InstallationRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewInstallationRepository(storage *pgxpool.Pool, logger *zap.Logger) InstallationRepositoryInterface {
	return &InstallationRepository{storage: storage, logger: logger}
}

func scanInstallation(row pgx.Row) (*entities.Installation, error) {
	var i entities.Installation
	var currentStage, clientName, responsibleName sql.NullString
	var capacity, totalCost, paidAmount sql.NullFloat64
	var responsibleID sql.NullInt64
	var updatedAt sql.NullTime

	err := row.Scan(
		&i.ID, &i.Name, &i.Priority, &i.Status, &currentStage,
		&capacity, &totalCost, &paidAmount,
		&responsibleID, &i.ClientID, &i.CreatedAt, &updatedAt,
		&clientName, &responsibleName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования installation: %w", err)
	}

	if currentStage.Valid {
		i.CurrentStage = &currentStage.String
	}
	if capacity.Valid {
		i.CapacityKW = &capacity.Float64
	}
	if totalCost.Valid {
		i.TotalCost = &totalCost.Float64
	}
	if paidAmount.Valid {
		i.PaidAmount = &paidAmount.Float64
	}
	if responsibleID.Valid {
		v := uint64(responsibleID.Int64)
		i.ResponsibleID = &v
	}
	if updatedAt.Valid {
		i.UpdatedAt = &updatedAt.Time
	}
	if clientName.Valid {
		i.ClientName = &clientName.String
	}
	if responsibleName.Valid {
		i.ResponsibleName = &responsibleName.String
	}
	return &i, nil
}

var installationColumns = []string{
	"i.id", "i.name", "i.priority", "i.status", "i.current_stage",
	"i.capacity_kw", "i.total_cost", "i.paid_amount",
	"i.responsible_id", "i.client_id", "i.created_at", "i.updated_at",
	"c.name", "e.full_name",
}

func (r *InstallationRepository) GetInstallations(ctx context.Context, filter types.Filter) ([]entities.Installation, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	// Числовой поиск - точное совпадение по id ("042" находит объект 42),
	// текстовый - подстрока по названию и клиенту.
	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search == "" {
			return b
		}
		if id, err := strconv.ParseUint(filter.Search, 10, 64); err == nil {
			return b.Where(sq.Eq{"i.id": id})
		}
		pat := "%" + filter.Search + "%"
		return b.Where(sq.Or{
			sq.ILike{"i.name": pat},
			sq.ILike{"c.name": pat},
		})
	}

	countBuilder := psql.Select("COUNT(i.id)").
		From("installations AS i").
		LeftJoin("clients c ON i.client_id = c.id")
	countBuilder = applySearch(countBuilder)

	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = db.ApplyListParams(countBuilder, countFilter, installationMap)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Installation{}, 0, nil
	}

	baseBuilder := psql.Select(installationColumns...).
		From("installations AS i").
		LeftJoin("clients c ON i.client_id = c.id").
		LeftJoin("employees e ON i.responsible_id = e.id")
	baseBuilder = applySearch(baseBuilder)

	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("i.id DESC")
	}
	baseBuilder = db.ApplyListParams(baseBuilder, filter, installationMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	installations := make([]entities.Installation, 0, filter.Limit)
	for rows.Next() {
		inst, err := scanInstallation(rows)
		if err != nil {
			return nil, 0, err
		}
		installations = append(installations, *inst)
	}
	return installations, total, rows.Err()
}

func (r *InstallationRepository) FindInstallation(ctx context.Context, id uint64) (*entities.Installation, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	queryBuilder := psql.Select(installationColumns...).
		From("installations i").
		LeftJoin("clients c ON i.client_id = c.id").
		LeftJoin("employees e ON i.responsible_id = e.id").
		Where(sq.Eq{"i.id": id})

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}
	return scanInstallation(r.storage.QueryRow(ctx, query, args...))
}

func (r *InstallationRepository) CreateInstallation(ctx context.Context, payload dto.CreateInstallationDTO) (uint64, error) {
	status := payload.Status
	if status == "" {
		status = entities.InstallationPlanning
	}

	query := fmt.Sprintf(`INSERT INTO %s (name, priority, status, capacity_kw, total_cost, paid_amount, responsible_id, client_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`, installationTable)

	var id uint64
	err := r.storage.QueryRow(ctx, query,
		payload.Name, payload.Priority, status,
		payload.CapacityKW.Ptr(), payload.TotalCost.Ptr(), payload.PaidAmount.Ptr(),
		payload.ResponsibleID.Ptr(), payload.ClientID,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return 0, apperrors.NewHttpError(400, "Клиент или ответственный не найден", apperrors.ErrBadRequest, nil)
		}
		return 0, err
	}
	return id, nil
}

func (r *InstallationRepository) UpdateInstallation(ctx context.Context, id uint64, payload dto.UpdateInstallationDTO) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	builder := psql.Update(installationTable).Where(sq.Eq{"id": id})
	changed := false

	if payload.Name != nil {
		builder = builder.Set("name", *payload.Name)
		changed = true
	}
	if payload.Priority != nil {
		builder = builder.Set("priority", *payload.Priority)
		changed = true
	}
	if payload.Status != nil {
		builder = builder.Set("status", *payload.Status)
		changed = true
	}
	if payload.CurrentStage.Valid {
		builder = builder.Set("current_stage", payload.CurrentStage.String)
		changed = true
	}
	if payload.CapacityKW.Valid {
		builder = builder.Set("capacity_kw", payload.CapacityKW.Float64)
		changed = true
	}
	if payload.TotalCost.Valid {
		builder = builder.Set("total_cost", payload.TotalCost.Float64)
		changed = true
	}
	if payload.PaidAmount.Valid {
		builder = builder.Set("paid_amount", payload.PaidAmount.Float64)
		changed = true
	}
	if payload.ResponsibleID.Valid {
		builder = builder.Set("responsible_id", payload.ResponsibleID.Int64)
		changed = true
	}
	if !changed {
		return nil
	}
	builder = builder.Set("updated_at", sq.Expr("NOW()"))

	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.NewHttpError(400, "Ответственный не найден", apperrors.ErrBadRequest, nil)
		}
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetCurrentStageInTx обновляет глобальный этап объекта в рамках уже
// открытой транзакции быстрого обновления.
func (r *InstallationRepository) SetCurrentStageInTx(ctx context.Context, tx pgx.Tx, id uint64, stageKey string) error {
	result, err := tx.Exec(ctx,
		fmt.Sprintf("UPDATE %s SET current_stage = $1, updated_at = NOW() WHERE id = $2", installationTable),
		stageKey, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *InstallationRepository) DeleteInstallation(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", installationTable), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
