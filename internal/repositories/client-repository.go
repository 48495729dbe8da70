package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"solar-crm/internal/dto"
	apperrors "solar-crm/pkg/errors"
	"solar-crm/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	clientTable  = "clients"
	clientFields = "id, name, company, phone, email, location, object_type, created_at, updated_at"
)

type dbClient struct {
	ID         uint64
	Name       string
	Company    sql.NullString
	Phone      sql.NullString
	Email      sql.NullString
	Location   sql.NullString
	ObjectType sql.NullString
	CreatedAt  time.Time
	UpdatedAt  sql.NullTime
}

func (db *dbClient) ToDTO() dto.ClientResponseDTO {
	out := dto.ClientResponseDTO{
		ID:        db.ID,
		Name:      db.Name,
		CreatedAt: db.CreatedAt.Local().Format("2006-01-02 15:04:05"),
		UpdatedAt: utils.NullTimeToEmptyString(db.UpdatedAt),
	}
	if db.Company.Valid {
		out.Company = &db.Company.String
	}
	if db.Phone.Valid {
		out.Phone = &db.Phone.String
	}
	if db.Email.Valid {
		out.Email = &db.Email.String
	}
	if db.Location.Valid {
		out.Location = &db.Location.String
	}
	if db.ObjectType.Valid {
		out.ObjectType = &db.ObjectType.String
	}
	return out
}

type ClientRepositoryInterface interface {
	GetClients(ctx context.Context, limit, offset uint64, search string) ([]dto.ClientResponseDTO, uint64, error)
	FindClient(ctx context.Context, id uint64) (*dto.ClientResponseDTO, error)
	CreateClient(ctx context.Context, payload dto.CreateClientDTO) (*dto.ClientResponseDTO, error)
	UpdateClient(ctx context.Context, id uint64, payload dto.UpdateClientDTO) (*dto.ClientResponseDTO, error)
	DeleteClient(ctx context.Context, id uint64) error
}

type clientRepository struct{ storage *pgxpool.Pool }

func NewClientRepository(storage *pgxpool.Pool) ClientRepositoryInterface {
	return &clientRepository{storage: storage}
}

func (r *clientRepository) GetClients(ctx context.Context, limit, offset uint64, search string) ([]dto.ClientResponseDTO, uint64, error) {
	var total uint64
	var args []interface{}
	whereClause := ""

	if search != "" {
		whereClause = "WHERE name ILIKE $1 OR company ILIKE $1 OR phone ILIKE $1"
		args = append(args, "%"+search+"%")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s %s", clientTable, whereClause)
	if err := r.storage.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []dto.ClientResponseDTO{}, 0, nil
	}

	queryArgs := append(args, limit, offset)
	query := fmt.Sprintf("SELECT %s FROM %s %s ORDER BY id LIMIT $%d OFFSET $%d",
		clientFields, clientTable, whereClause, len(args)+1, len(args)+2)

	rows, err := r.storage.Query(ctx, query, queryArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	clients := make([]dto.ClientResponseDTO, 0)
	for rows.Next() {
		var dbRow dbClient
		if err := rows.Scan(&dbRow.ID, &dbRow.Name, &dbRow.Company, &dbRow.Phone, &dbRow.Email,
			&dbRow.Location, &dbRow.ObjectType, &dbRow.CreatedAt, &dbRow.UpdatedAt); err != nil {
			return nil, 0, err
		}
		clients = append(clients, dbRow.ToDTO())
	}
	return clients, total, rows.Err()
}

func (r *clientRepository) FindClient(ctx context.Context, id uint64) (*dto.ClientResponseDTO, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", clientFields, clientTable)
	var dbRow dbClient
	err := r.storage.QueryRow(ctx, query, id).Scan(&dbRow.ID, &dbRow.Name, &dbRow.Company, &dbRow.Phone,
		&dbRow.Email, &dbRow.Location, &dbRow.ObjectType, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	clientDTO := dbRow.ToDTO()
	return &clientDTO, nil
}

func (r *clientRepository) CreateClient(ctx context.Context, payload dto.CreateClientDTO) (*dto.ClientResponseDTO, error) {
	query := fmt.Sprintf(`INSERT INTO %s (name, company, phone, email, location, object_type)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING %s`, clientTable, clientFields)
	var dbRow dbClient
	err := r.storage.QueryRow(ctx, query,
		payload.Name, payload.Company.Ptr(), payload.Phone.Ptr(), payload.Email.Ptr(),
		payload.Location.Ptr(), payload.ObjectType.Ptr(),
	).Scan(&dbRow.ID, &dbRow.Name, &dbRow.Company, &dbRow.Phone, &dbRow.Email,
		&dbRow.Location, &dbRow.ObjectType, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}
	clientDTO := dbRow.ToDTO()
	return &clientDTO, nil
}

func (r *clientRepository) UpdateClient(ctx context.Context, id uint64, payload dto.UpdateClientDTO) (*dto.ClientResponseDTO, error) {
	var setClauses []string
	var args []interface{}
	argId := 1

	if payload.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argId))
		args = append(args, *payload.Name)
		argId++
	}
	if payload.Company.Valid {
		setClauses = append(setClauses, fmt.Sprintf("company = $%d", argId))
		args = append(args, payload.Company.String)
		argId++
	}
	if payload.Phone.Valid {
		setClauses = append(setClauses, fmt.Sprintf("phone = $%d", argId))
		args = append(args, payload.Phone.String)
		argId++
	}
	if payload.Email.Valid {
		setClauses = append(setClauses, fmt.Sprintf("email = $%d", argId))
		args = append(args, payload.Email.String)
		argId++
	}
	if payload.Location.Valid {
		setClauses = append(setClauses, fmt.Sprintf("location = $%d", argId))
		args = append(args, payload.Location.String)
		argId++
	}
	if payload.ObjectType.Valid {
		setClauses = append(setClauses, fmt.Sprintf("object_type = $%d", argId))
		args = append(args, payload.ObjectType.String)
		argId++
	}
	if len(setClauses) == 0 {
		return r.FindClient(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		clientTable, strings.Join(setClauses, ", "), argId, clientFields)
	args = append(args, id)

	var dbRow dbClient
	err := r.storage.QueryRow(ctx, query, args...).Scan(&dbRow.ID, &dbRow.Name, &dbRow.Company, &dbRow.Phone,
		&dbRow.Email, &dbRow.Location, &dbRow.ObjectType, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	clientDTO := dbRow.ToDTO()
	return &clientDTO, nil
}

func (r *clientRepository) DeleteClient(ctx context.Context, id uint64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", clientTable)
	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.NewHttpError(409, "Клиент используется в объектах и не может быть удалён", apperrors.ErrConflict, nil)
		}
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
