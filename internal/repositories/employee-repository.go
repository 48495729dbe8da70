package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"solar-crm/internal/dto"
	"solar-crm/internal/entities"
	apperrors "solar-crm/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	employeeTable  = "employees"
	employeeFields = "id, full_name, position, role, email, password_hash, created_at, updated_at"
)

type EmployeeRepositoryInterface interface {
	GetEmployees(ctx context.Context, limit, offset uint64, search string) ([]dto.EmployeeResponseDTO, uint64, error)
	FindEmployeeByID(ctx context.Context, id uint64) (*entities.Employee, error)
	FindEmployeeByEmail(ctx context.Context, email string) (*entities.Employee, error)
	CreateEmployee(ctx context.Context, payload dto.CreateEmployeeDTO, passwordHash string) (uint64, error)
	UpdateEmployee(ctx context.Context, id uint64, payload dto.UpdateEmployeeDTO, passwordHash *string) error
	DeleteEmployee(ctx context.Context, id uint64) error
}

type EmployeeRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEmployeeRepository(storage *pgxpool.Pool, logger *zap.Logger) EmployeeRepositoryInterface {
	return &EmployeeRepository{storage: storage, logger: logger}
}

func scanEmployee(row pgx.Row) (*entities.Employee, error) {
	var e entities.Employee
	var position sql.NullString
	var updatedAt sql.NullTime

	err := row.Scan(&e.ID, &e.FullName, &position, &e.Role, &e.Email, &e.PasswordHash, &e.CreatedAt, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования employee: %w", err)
	}

	if position.Valid {
		e.Position = &position.String
	}
	if updatedAt.Valid {
		e.UpdatedAt = &updatedAt.Time
	}
	return &e, nil
}

func (r *EmployeeRepository) GetEmployees(ctx context.Context, limit, offset uint64, search string) ([]dto.EmployeeResponseDTO, uint64, error) {
	var total uint64
	var args []interface{}
	whereClause := ""

	if search != "" {
		whereClause = "WHERE full_name ILIKE $1 OR email ILIKE $1"
		args = append(args, "%"+search+"%")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s %s", employeeTable, whereClause)
	if err := r.storage.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []dto.EmployeeResponseDTO{}, 0, nil
	}

	queryArgs := append(args, limit, offset)
	query := fmt.Sprintf("SELECT %s FROM %s %s ORDER BY full_name LIMIT $%d OFFSET $%d",
		employeeFields, employeeTable, whereClause, len(args)+1, len(args)+2)

	rows, err := r.storage.Query(ctx, query, queryArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	employees := make([]dto.EmployeeResponseDTO, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, err
		}
		employees = append(employees, dto.EmployeeResponseDTO{
			ID:        e.ID,
			FullName:  e.FullName,
			Position:  e.Position,
			Role:      e.Role,
			Email:     e.Email,
			CreatedAt: e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
		})
	}
	return employees, total, rows.Err()
}

func (r *EmployeeRepository) FindEmployeeByID(ctx context.Context, id uint64) (*entities.Employee, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", employeeFields, employeeTable)
	return scanEmployee(r.storage.QueryRow(ctx, query, id))
}

func (r *EmployeeRepository) FindEmployeeByEmail(ctx context.Context, email string) (*entities.Employee, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE LOWER(email) = LOWER($1)", employeeFields, employeeTable)
	return scanEmployee(r.storage.QueryRow(ctx, query, email))
}

func (r *EmployeeRepository) CreateEmployee(ctx context.Context, payload dto.CreateEmployeeDTO, passwordHash string) (uint64, error) {
	query := fmt.Sprintf(`INSERT INTO %s (full_name, position, role, email, password_hash)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`, employeeTable)
	var id uint64
	err := r.storage.QueryRow(ctx, query,
		payload.FullName, payload.Position.Ptr(), payload.Role, payload.Email, passwordHash,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, apperrors.ErrConflict
		}
		return 0, err
	}
	return id, nil
}

func (r *EmployeeRepository) UpdateEmployee(ctx context.Context, id uint64, payload dto.UpdateEmployeeDTO, passwordHash *string) error {
	var setClauses []string
	var args []interface{}
	argId := 1

	if payload.FullName != nil {
		setClauses = append(setClauses, fmt.Sprintf("full_name = $%d", argId))
		args = append(args, *payload.FullName)
		argId++
	}
	if payload.Position.Valid {
		setClauses = append(setClauses, fmt.Sprintf("position = $%d", argId))
		args = append(args, payload.Position.String)
		argId++
	}
	if payload.Role != nil {
		setClauses = append(setClauses, fmt.Sprintf("role = $%d", argId))
		args = append(args, *payload.Role)
		argId++
	}
	if payload.Email != nil {
		setClauses = append(setClauses, fmt.Sprintf("email = $%d", argId))
		args = append(args, *payload.Email)
		argId++
	}
	if passwordHash != nil {
		setClauses = append(setClauses, fmt.Sprintf("password_hash = $%d", argId))
		args = append(args, *passwordHash)
		argId++
	}
	if len(setClauses) == 0 {
		return nil
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d",
		employeeTable, strings.Join(setClauses, ", "), argId)
	args = append(args, id)

	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrConflict
		}
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EmployeeRepository) DeleteEmployee(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", employeeTable), id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.NewHttpError(409, "Сотрудник назначен на этапы или задачи и не может быть удалён", apperrors.ErrConflict, nil)
		}
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
