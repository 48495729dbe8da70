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

const microtaskTable = "microtasks"

type MicrotaskRepositoryInterface interface {
	GetMicrotasksByAssignee(ctx context.Context, assigneeID uint64, onlyOpen bool) ([]entities.Microtask, error)
	FindMicrotask(ctx context.Context, id uint64) (*entities.Microtask, error)
	CreateMicrotask(ctx context.Context, payload dto.CreateMicrotaskDTO) (uint64, error)
	UpdateMicrotask(ctx context.Context, id uint64, payload dto.UpdateMicrotaskDTO) error
	DeleteMicrotask(ctx context.Context, id uint64) error
}

type MicrotaskRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewMicrotaskRepository(storage *pgxpool.Pool, logger *zap.Logger) MicrotaskRepositoryInterface {
	return &MicrotaskRepository{storage: storage, logger: logger}
}

func scanMicrotask(row pgx.Row) (*entities.Microtask, error) {
	var m entities.Microtask
	var installationID sql.NullInt64
	var dueDate, updatedAt sql.NullTime
	var installationName sql.NullString

	err := row.Scan(&m.ID, &m.Title, &installationID, &m.AssigneeID,
		&dueDate, &m.IsDone, &m.CreatedAt, &updatedAt, &installationName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования microtask: %w", err)
	}

	if installationID.Valid {
		v := uint64(installationID.Int64)
		m.InstallationID = &v
	}
	if dueDate.Valid {
		m.DueDate = &dueDate.Time
	}
	if updatedAt.Valid {
		m.UpdatedAt = &updatedAt.Time
	}
	if installationName.Valid {
		m.InstallationName = &installationName.String
	}
	return &m, nil
}

const microtaskSelect = `SELECT m.id, m.title, m.installation_id, m.assignee_id,
	m.due_date, m.is_done, m.created_at, m.updated_at, i.name
	FROM microtasks m
	LEFT JOIN installations i ON m.installation_id = i.id`

func (r *MicrotaskRepository) GetMicrotasksByAssignee(ctx context.Context, assigneeID uint64, onlyOpen bool) ([]entities.Microtask, error) {
	query := microtaskSelect + " WHERE m.assignee_id = $1"
	if onlyOpen {
		query += " AND m.is_done = FALSE"
	}
	// Просроченные и близкие дедлайны сверху, без дедлайна - в конце.
	query += " ORDER BY m.due_date ASC NULLS LAST, m.id DESC"

	rows, err := r.storage.Query(ctx, query, assigneeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]entities.Microtask, 0)
	for rows.Next() {
		task, err := scanMicrotask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *MicrotaskRepository) FindMicrotask(ctx context.Context, id uint64) (*entities.Microtask, error) {
	return scanMicrotask(r.storage.QueryRow(ctx, microtaskSelect+" WHERE m.id = $1", id))
}

func (r *MicrotaskRepository) CreateMicrotask(ctx context.Context, payload dto.CreateMicrotaskDTO) (uint64, error) {
	query := fmt.Sprintf(`INSERT INTO %s (title, installation_id, assignee_id, due_date)
		VALUES ($1, $2, $3, $4) RETURNING id`, microtaskTable)

	var id uint64
	err := r.storage.QueryRow(ctx, query,
		payload.Title, payload.InstallationID.Ptr(), payload.AssigneeID, payload.DueDate.Ptr(),
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return 0, apperrors.NewHttpError(400, "Объект или исполнитель не найден", apperrors.ErrBadRequest, nil)
		}
		return 0, err
	}
	return id, nil
}

func (r *MicrotaskRepository) UpdateMicrotask(ctx context.Context, id uint64, payload dto.UpdateMicrotaskDTO) error {
	var setClauses []string
	var args []interface{}
	argId := 1

	if payload.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", argId))
		args = append(args, *payload.Title)
		argId++
	}
	if payload.AssigneeID != nil {
		setClauses = append(setClauses, fmt.Sprintf("assignee_id = $%d", argId))
		args = append(args, *payload.AssigneeID)
		argId++
	}
	if payload.DueDate.Valid {
		setClauses = append(setClauses, fmt.Sprintf("due_date = $%d", argId))
		args = append(args, payload.DueDate.Time)
		argId++
	}
	if payload.IsDone != nil {
		setClauses = append(setClauses, fmt.Sprintf("is_done = $%d", argId))
		args = append(args, *payload.IsDone)
		argId++
	}
	if len(setClauses) == 0 {
		return nil
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d",
		microtaskTable, strings.Join(setClauses, ", "), argId)
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

func (r *MicrotaskRepository) DeleteMicrotask(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", microtaskTable), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
