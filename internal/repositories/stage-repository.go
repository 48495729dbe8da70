package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"solar-crm/internal/entities"
	apperrors "solar-crm/pkg/errors"
)

const stageTable = "project_stages"

// ActiveStageRow - строка этапа с данными объекта для списка
// "мої активні етапи". Завершённость здесь не вычисляется: решает
// справочник воронки на уровне сервиса.
type ActiveStageRow struct {
	InstallationID   uint64
	InstallationName string
	ClientName       string
	StageKey         string
	Status           string
	ResponsibleID    *uint64
	UpdatedAt        string
}

// UpdateStageParams - аргументы SQL-функции update_workflow_stage.
// Одна функция делает оба изменения (этап + журнал) атомарно.
type UpdateStageParams struct {
	InstallationID   uint64
	StageKey         string
	NewStatus        string
	ActorName        string
	Comment          *string
	Photos           []string
	PhotoFileIDs     []string
	NewResponsibleID *uint64
	SetAsGlobalStage bool
	BatchUID         uuid.UUID
}

type StageRepositoryInterface interface {
	FindByPair(ctx context.Context, installationID uint64, stageKey string) (*entities.StageRecord, error)
	ListByInstallation(ctx context.Context, installationID uint64) ([]entities.StageRecord, error)
	ListActiveByResponsible(ctx context.Context, employeeID uint64) ([]ActiveStageRow, error)
	UpsertInTx(ctx context.Context, tx pgx.Tx, installationID uint64, stageKey, status string, responsibleID *uint64) (*entities.StageRecord, error)
	CallUpdateWorkflowStage(ctx context.Context, params UpdateStageParams) (uint64, error)
}

type StageRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewStageRepository(storage *pgxpool.Pool, logger *zap.Logger) StageRepositoryInterface {
	return &StageRepository{storage: storage, logger: logger}
}

func scanStageRecord(row pgx.Row) (*entities.StageRecord, error) {
	var s entities.StageRecord
	var responsibleID sql.NullInt64

	err := row.Scan(&s.ID, &s.InstallationID, &s.StageKey, &s.Status, &responsibleID, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования project_stage: %w", err)
	}
	if responsibleID.Valid {
		v := uint64(responsibleID.Int64)
		s.ResponsibleID = &v
	}
	return &s, nil
}

func (r *StageRepository) FindByPair(ctx context.Context, installationID uint64, stageKey string) (*entities.StageRecord, error) {
	query := fmt.Sprintf(`SELECT id, installation_id, stage_key, status, responsible_id, updated_at
		FROM %s WHERE installation_id = $1 AND stage_key = $2`, stageTable)
	return scanStageRecord(r.storage.QueryRow(ctx, query, installationID, stageKey))
}

func (r *StageRepository) ListByInstallation(ctx context.Context, installationID uint64) ([]entities.StageRecord, error) {
	query := fmt.Sprintf(`SELECT id, installation_id, stage_key, status, responsible_id, updated_at
		FROM %s WHERE installation_id = $1`, stageTable)

	rows, err := r.storage.Query(ctx, query, installationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]entities.StageRecord, 0)
	for rows.Next() {
		rec, err := scanStageRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// ListActiveByResponsible отдаёт ВСЕ этапы сотрудника; отсечение
// завершённых статусов делает сервис по справочнику воронки.
func (r *StageRepository) ListActiveByResponsible(ctx context.Context, employeeID uint64) ([]ActiveStageRow, error) {
	query := fmt.Sprintf(`SELECT s.installation_id, i.name, COALESCE(c.name, ''),
			s.stage_key, s.status, s.responsible_id, s.updated_at
		FROM %s s
		JOIN installations i ON s.installation_id = i.id
		LEFT JOIN clients c ON i.client_id = c.id
		WHERE s.responsible_id = $1
		ORDER BY s.updated_at DESC`, stageTable)

	rows, err := r.storage.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]ActiveStageRow, 0)
	for rows.Next() {
		var row ActiveStageRow
		var responsibleID sql.NullInt64
		var updatedAt sql.NullTime

		if err := rows.Scan(&row.InstallationID, &row.InstallationName, &row.ClientName,
			&row.StageKey, &row.Status, &responsibleID, &updatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования активного этапа: %w", err)
		}
		if responsibleID.Valid {
			v := uint64(responsibleID.Int64)
			row.ResponsibleID = &v
		}
		if updatedAt.Valid {
			row.UpdatedAt = updatedAt.Time.Local().Format("2006-01-02 15:04:05")
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// UpsertInTx - запасной путь на случай недоступности SQL-функции:
// пишет состояние этапа в рамках внешней транзакции.
func (r *StageRepository) UpsertInTx(ctx context.Context, tx pgx.Tx, installationID uint64, stageKey, status string, responsibleID *uint64) (*entities.StageRecord, error) {
	query := fmt.Sprintf(`INSERT INTO %s (installation_id, stage_key, status, responsible_id, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (installation_id, stage_key)
		DO UPDATE SET status = EXCLUDED.status,
			responsible_id = COALESCE(EXCLUDED.responsible_id, %s.responsible_id),
			updated_at = NOW()
		RETURNING id, installation_id, stage_key, status, responsible_id, updated_at`,
		stageTable, stageTable)

	return scanStageRecord(tx.QueryRow(ctx, query, installationID, stageKey, status, responsibleID))
}

// CallUpdateWorkflowStage вызывает хранимую функцию: upsert этапа,
// запись в журнал и (опционально) глобальный этап объекта за один
// серверный вызов. Возвращает id созданного события.
func (r *StageRepository) CallUpdateWorkflowStage(ctx context.Context, params UpdateStageParams) (uint64, error) {
	var eventID uint64
	err := r.storage.QueryRow(ctx,
		`SELECT update_workflow_stage($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		params.InstallationID, params.StageKey, params.NewStatus, params.ActorName,
		params.Comment, params.Photos, params.PhotoFileIDs,
		params.NewResponsibleID, params.SetAsGlobalStage, params.BatchUID,
	).Scan(&eventID)
	if err != nil {
		return 0, err
	}
	return eventID, nil
}
