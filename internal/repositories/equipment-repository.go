package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"solar-crm/internal/dto"
	"solar-crm/internal/entities"
	apperrors "solar-crm/pkg/errors"
)

const equipmentTable = "equipment_orders"

type EquipmentRepositoryInterface interface {
	GetOrdersByInstallation(ctx context.Context, installationID uint64) ([]entities.EquipmentOrder, error)
	FindOrder(ctx context.Context, id uint64) (*entities.EquipmentOrder, error)
	CreateOrder(ctx context.Context, payload dto.CreateEquipmentOrderDTO) (uint64, error)
	UpdateOrder(ctx context.Context, id uint64, payload dto.UpdateEquipmentOrderDTO) error
	DeleteOrder(ctx context.Context, id uint64) error
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEquipmentRepository(storage *pgxpool.Pool, logger *zap.Logger) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage, logger: logger}
}

func scanEquipmentOrder(row pgx.Row) (*entities.EquipmentOrder, error) {
	var o entities.EquipmentOrder
	var supplier sql.NullString
	var orderedAt, expectedAt, receivedAt, updatedAt sql.NullTime

	err := row.Scan(&o.ID, &o.InstallationID, &o.Name, &o.Quantity, &supplier, &o.Status,
		&orderedAt, &expectedAt, &receivedAt, &o.CreatedAt, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования equipment_order: %w", err)
	}

	if supplier.Valid {
		o.Supplier = &supplier.String
	}
	if orderedAt.Valid {
		o.OrderedAt = &orderedAt.Time
	}
	if expectedAt.Valid {
		o.ExpectedAt = &expectedAt.Time
	}
	if receivedAt.Valid {
		o.ReceivedAt = &receivedAt.Time
	}
	if updatedAt.Valid {
		o.UpdatedAt = &updatedAt.Time
	}
	return &o, nil
}

const equipmentFields = "id, installation_id, name, quantity, supplier, status, ordered_at, expected_at, received_at, created_at, updated_at"

func (r *EquipmentRepository) GetOrdersByInstallation(ctx context.Context, installationID uint64) ([]entities.EquipmentOrder, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE installation_id = $1 ORDER BY id DESC",
		equipmentFields, equipmentTable)

	rows, err := r.storage.Query(ctx, query, installationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]entities.EquipmentOrder, 0)
	for rows.Next() {
		order, err := scanEquipmentOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func (r *EquipmentRepository) FindOrder(ctx context.Context, id uint64) (*entities.EquipmentOrder, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", equipmentFields, equipmentTable)
	return scanEquipmentOrder(r.storage.QueryRow(ctx, query, id))
}

func (r *EquipmentRepository) CreateOrder(ctx context.Context, payload dto.CreateEquipmentOrderDTO) (uint64, error) {
	query := fmt.Sprintf(`INSERT INTO %s (installation_id, name, quantity, supplier, status, expected_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`, equipmentTable)

	var id uint64
	err := r.storage.QueryRow(ctx, query,
		payload.InstallationID, payload.Name, payload.Quantity,
		payload.Supplier.Ptr(), entities.EquipmentDraft, payload.ExpectedAt.Ptr(),
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return 0, apperrors.NewHttpError(400, "Объект не найден", apperrors.ErrBadRequest, nil)
		}
		return 0, err
	}
	return id, nil
}

func (r *EquipmentRepository) UpdateOrder(ctx context.Context, id uint64, payload dto.UpdateEquipmentOrderDTO) error {
	var setClauses []string
	var args []interface{}
	argId := 1

	addClause := func(col string, val interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, argId))
		args = append(args, val)
		argId++
	}

	if payload.Name != nil {
		addClause("name", *payload.Name)
	}
	if payload.Quantity != nil {
		addClause("quantity", *payload.Quantity)
	}
	if payload.Supplier.Valid {
		addClause("supplier", payload.Supplier.String)
	}
	if payload.Status != nil {
		addClause("status", *payload.Status)
	}
	if payload.OrderedAt.Valid {
		addClause("ordered_at", payload.OrderedAt.Time)
	}
	if payload.ExpectedAt.Valid {
		addClause("expected_at", payload.ExpectedAt.Time)
	}
	if payload.ReceivedAt.Valid {
		addClause("received_at", payload.ReceivedAt.Time)
	}
	if len(setClauses) == 0 {
		return nil
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d",
		equipmentTable, strings.Join(setClauses, ", "), argId)
	args = append(args, id)

	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) DeleteOrder(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", equipmentTable), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
