package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"solar-crm/internal/entities"
)

const stageEventTable = "workflow_events"

type StageEventRepositoryInterface interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, event entities.StageEvent) (uint64, error)
	FindByPair(ctx context.Context, installationID uint64, stageKey string) ([]entities.StageEvent, error)
}

type StageEventRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewStageEventRepository(storage *pgxpool.Pool, logger *zap.Logger) StageEventRepositoryInterface {
	return &StageEventRepository{storage: storage, logger: logger}
}

// CreateInTx пишет событие журнала в той же транзакции, что и
// изменение этапа: журнал не может разойтись с состоянием.
func (r *StageEventRepository) CreateInTx(ctx context.Context, tx pgx.Tx, event entities.StageEvent) (uint64, error) {
	query := fmt.Sprintf(`INSERT INTO %s
		(installation_id, stage_key, old_status, new_status, old_responsible_id, new_responsible_id,
		 comment, photos, photo_file_ids, actor_name, batch_uid)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`, stageEventTable)

	var id uint64
	err := tx.QueryRow(ctx, query,
		event.InstallationID, event.StageKey,
		event.OldStatus, event.NewStatus,
		event.OldResponsibleID, event.NewResponsibleID,
		event.Comment, event.Photos, event.PhotoFileIDs,
		event.ActorName, event.BatchUID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("не удалось записать событие журнала: %w", err)
	}
	return id, nil
}

// FindByPair возвращает журнал этапа от новых к старым.
func (r *StageEventRepository) FindByPair(ctx context.Context, installationID uint64, stageKey string) ([]entities.StageEvent, error) {
	query := fmt.Sprintf(`SELECT id, installation_id, stage_key, old_status, new_status,
			old_responsible_id, new_responsible_id, comment,
			COALESCE(photos, '{}'), COALESCE(photo_file_ids, '{}'),
			actor_name, batch_uid, created_at
		FROM %s
		WHERE installation_id = $1 AND stage_key = $2
		ORDER BY created_at DESC, id DESC`, stageEventTable)

	rows, err := r.storage.Query(ctx, query, installationID, stageKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]entities.StageEvent, 0)
	for rows.Next() {
		var e entities.StageEvent
		var oldStatus, newStatus, comment sql.NullString
		var oldResp, newResp sql.NullInt64

		err := rows.Scan(&e.ID, &e.InstallationID, &e.StageKey, &oldStatus, &newStatus,
			&oldResp, &newResp, &comment, &e.Photos, &e.PhotoFileIDs,
			&e.ActorName, &e.BatchUID, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования события журнала: %w", err)
		}

		if oldStatus.Valid {
			e.OldStatus = &oldStatus.String
		}
		if newStatus.Valid {
			e.NewStatus = &newStatus.String
		}
		if comment.Valid {
			e.Comment = &comment.String
		}
		if oldResp.Valid {
			v := uint64(oldResp.Int64)
			e.OldResponsibleID = &v
		}
		if newResp.Valid {
			v := uint64(newResp.Int64)
			e.NewResponsibleID = &v
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
