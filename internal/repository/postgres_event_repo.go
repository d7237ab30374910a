package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/jobtrack/internal/model"
)

// PostgresApplicationEventRepo はPostgreSQLを使用した遷移イベントリポジトリ。
type PostgresApplicationEventRepo struct {
	db *sql.DB
}

// NewPostgresApplicationEventRepo はPostgresApplicationEventRepoを生成する。
func NewPostgresApplicationEventRepo(db *sql.DB) *PostgresApplicationEventRepo {
	return &PostgresApplicationEventRepo{db: db}
}

// Create は遷移イベントを作成する。
func (r *PostgresApplicationEventRepo) Create(ctx context.Context, event *model.ApplicationEvent) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO application_events (
			id, application_id, previous_stage, new_stage, previous_status, new_status, note, created_at
		 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		event.ID, event.ApplicationID,
		nullStage(event.PreviousStage), nullStage(event.NewStage),
		nullStatus(event.PreviousStatus), nullStatus(event.NewStatus),
		nullIfEmpty(event.Note), event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert application event: %w", err)
	}
	return nil
}

// ListByApplicationID は指定応募記録の遷移イベントを発生日時の昇順で返す。
func (r *PostgresApplicationEventRepo) ListByApplicationID(ctx context.Context, applicationID string) ([]*model.ApplicationEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, application_id, previous_stage, new_stage, previous_status, new_status, note, created_at
		 FROM application_events
		 WHERE application_id = $1
		 ORDER BY created_at ASC`,
		applicationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list application events: %w", err)
	}
	defer rows.Close()

	var events []*model.ApplicationEvent
	for rows.Next() {
		event := &model.ApplicationEvent{}
		var (
			prevStage  sql.NullString
			newStage   sql.NullString
			prevStatus sql.NullString
			newStatus  sql.NullString
			note       sql.NullString
		)
		err := rows.Scan(
			&event.ID, &event.ApplicationID,
			&prevStage, &newStage, &prevStatus, &newStatus,
			&note, &event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application event: %w", err)
		}
		if prevStage.Valid {
			s := model.ApplicationStage(prevStage.String)
			event.PreviousStage = &s
		}
		if newStage.Valid {
			s := model.ApplicationStage(newStage.String)
			event.NewStage = &s
		}
		if prevStatus.Valid {
			s := model.ApplicationStatus(prevStatus.String)
			event.PreviousStatus = &s
		}
		if newStatus.Valid {
			s := model.ApplicationStatus(newStatus.String)
			event.NewStatus = &s
		}
		event.Note = note.String
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate application events: %w", err)
	}

	return events, nil
}

// nullStage はnilのApplicationStageをNULLに変換する。
func nullStage(s *model.ApplicationStage) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*s), Valid: true}
}

// nullStatus はnilのApplicationStatusをNULLに変換する。
func nullStatus(s *model.ApplicationStatus) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*s), Valid: true}
}

// compile-time interface check
var _ ApplicationEventRepository = (*PostgresApplicationEventRepo)(nil)
