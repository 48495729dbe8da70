package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"solar-crm/internal/dto"
	"solar-crm/internal/entities"
	apperrors "solar-crm/pkg/errors"
)

const visitTable = "visits"

type VisitRepositoryInterface interface {
	GetVisitsByEmployee(ctx context.Context, employeeID uint64, from, to *time.Time) ([]entities.Visit, error)
	GetVisitsByInstallation(ctx context.Context, installationID uint64) ([]entities.Visit, error)
	FindVisit(ctx context.Context, id uint64) (*entities.Visit, error)
	CreateVisit(ctx context.Context, payload dto.CreateVisitDTO) (uint64, error)
	UpdateVisit(ctx context.Context, id uint64, payload dto.UpdateVisitDTO) error
	DeleteVisit(ctx context.Context, id uint64) error
}

type VisitRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewVisitRepository(storage *pgxpool.Pool, logger *zap.Logger) VisitRepositoryInterface {
	return &VisitRepository{storage: storage, logger: logger}
}

func scanVisit(row pgx.Row) (*entities.Visit, error) {
	var v entities.Visit
	var note, installationName, employeeName sql.NullString

	err := row.Scan(&v.ID, &v.InstallationID, &v.EmployeeID, &v.VisitDate, &v.VisitType,
		&note, &v.IsDone, &v.CreatedAt, &installationName, &employeeName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования visit: %w", err)
	}

	if note.Valid {
		v.Note = &note.String
	}
	if installationName.Valid {
		v.InstallationName = &installationName.String
	}
	if employeeName.Valid {
		v.EmployeeName = &employeeName.String
	}
	return &v, nil
}

const visitSelect = `SELECT v.id, v.installation_id, v.employee_id, v.visit_date, v.visit_type,
	v.note, v.is_done, v.created_at, i.name, e.full_name
	FROM visits v
	LEFT JOIN installations i ON v.installation_id = i.id
	LEFT JOIN employees e ON v.employee_id = e.id`

func (r *VisitRepository) listVisits(ctx context.Context, query string, args ...interface{}) ([]entities.Visit, error) {
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	visits := make([]entities.Visit, 0)
	for rows.Next() {
		visit, err := scanVisit(rows)
		if err != nil {
			return nil, err
		}
		visits = append(visits, *visit)
	}
	return visits, rows.Err()
}

func (r *VisitRepository) GetVisitsByEmployee(ctx context.Context, employeeID uint64, from, to *time.Time) ([]entities.Visit, error) {
	query := visitSelect + " WHERE v.employee_id = $1"
	args := []interface{}{employeeID}

	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND v.visit_date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND v.visit_date <= $%d", len(args))
	}
	query += " ORDER BY v.visit_date ASC"

	return r.listVisits(ctx, query, args...)
}

func (r *VisitRepository) GetVisitsByInstallation(ctx context.Context, installationID uint64) ([]entities.Visit, error) {
	return r.listVisits(ctx, visitSelect+" WHERE v.installation_id = $1 ORDER BY v.visit_date DESC", installationID)
}

func (r *VisitRepository) FindVisit(ctx context.Context, id uint64) (*entities.Visit, error) {
	return scanVisit(r.storage.QueryRow(ctx, visitSelect+" WHERE v.id = $1", id))
}

func (r *VisitRepository) CreateVisit(ctx context.Context, payload dto.CreateVisitDTO) (uint64, error) {
	query := fmt.Sprintf(`INSERT INTO %s (installation_id, employee_id, visit_date, visit_type, note)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`, visitTable)

	var id uint64
	err := r.storage.QueryRow(ctx, query,
		payload.InstallationID, payload.EmployeeID, payload.VisitDate, payload.VisitType, payload.Note.Ptr(),
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return 0, apperrors.NewHttpError(400, "Объект или сотрудник не найден", apperrors.ErrBadRequest, nil)
		}
		return 0, err
	}
	return id, nil
}

func (r *VisitRepository) UpdateVisit(ctx context.Context, id uint64, payload dto.UpdateVisitDTO) error {
	var setClauses []string
	var args []interface{}
	argId := 1

	if payload.VisitDate != nil {
		setClauses = append(setClauses, fmt.Sprintf("visit_date = $%d", argId))
		args = append(args, *payload.VisitDate)
		argId++
	}
	if payload.VisitType != nil {
		setClauses = append(setClauses, fmt.Sprintf("visit_type = $%d", argId))
		args = append(args, *payload.VisitType)
		argId++
	}
	if payload.Note.Valid {
		setClauses = append(setClauses, fmt.Sprintf("note = $%d", argId))
		args = append(args, payload.Note.String)
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

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d",
		visitTable, strings.Join(setClauses, ", "), argId)
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

func (r *VisitRepository) DeleteVisit(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", visitTable), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
