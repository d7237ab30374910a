package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/jobtrack/internal/model"
)

// PostgresJobApplicationRepo はPostgreSQLを使用した応募記録リポジトリ。
type PostgresJobApplicationRepo struct {
	db *sql.DB
}

// NewPostgresJobApplicationRepo はPostgresJobApplicationRepoを生成する。
func NewPostgresJobApplicationRepo(db *sql.DB) *PostgresJobApplicationRepo {
	return &PostgresJobApplicationRepo{db: db}
}

const applicationColumns = `id, user_id, application_date, company_name, job_title,
	contract_type, work_style, work_location_city, work_location_state, work_location_country,
	job_offer_url, current_stage, status, salary_expectation, source, notes,
	created_at, updated_at`

// rowScanner はsql.Rowとsql.Rowsの共通スキャンインターフェース。
type rowScanner interface {
	Scan(dest ...any) error
}

// scanApplication は1行をmodel.JobApplicationに読み込む。
func scanApplication(row rowScanner) (*model.JobApplication, error) {
	app := &model.JobApplication{}
	var (
		city    sql.NullString
		country sql.NullString
		url     sql.NullString
		salary  sql.NullFloat64
		source  sql.NullString
		notes   sql.NullString
	)
	err := row.Scan(
		&app.ID, &app.UserID, &app.ApplicationDate, &app.CompanyName, &app.JobTitle,
		&app.ContractType, &app.WorkStyle, &city, &app.WorkLocationState, &country,
		&url, &app.CurrentStage, &app.Status, &salary, &source, &notes,
		&app.CreatedAt, &app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	app.WorkLocationCity = city.String
	app.WorkLocationCountry = country.String
	app.JobOfferURL = url.String
	app.Source = source.String
	app.Notes = notes.String
	if salary.Valid {
		app.SalaryExpectation = &salary.Float64
	}
	return app, nil
}

// FindByID は指定IDの応募記録を取得する。見つからない場合はnilを返す。
func (r *PostgresJobApplicationRepo) FindByID(ctx context.Context, id string) (*model.JobApplication, error) {
	app, err := scanApplication(r.db.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`,
		id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find application by ID: %w", err)
	}
	return app, nil
}

// ListByUserID は指定ユーザーが所有する応募記録の一覧を返す。
// 応募日の降順、同日内は作成日時の降順で返す。
func (r *PostgresJobApplicationRepo) ListByUserID(ctx context.Context, userID string) ([]*model.JobApplication, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+applicationColumns+` FROM applications
		 WHERE user_id = $1
		 ORDER BY application_date DESC, created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []*model.JobApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate applications: %w", err)
	}

	return apps, nil
}

// Create は応募記録を作成する。
func (r *PostgresJobApplicationRepo) Create(ctx context.Context, app *model.JobApplication) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO applications (
			id, user_id, application_date, company_name, job_title,
			contract_type, work_style, work_location_city, work_location_state, work_location_country,
			job_offer_url, current_stage, status, salary_expectation, source, notes,
			created_at, updated_at
		 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		app.ID, app.UserID, app.ApplicationDate, app.CompanyName, app.JobTitle,
		app.ContractType, app.WorkStyle,
		nullIfEmpty(app.WorkLocationCity), app.WorkLocationState, nullIfEmpty(app.WorkLocationCountry),
		nullIfEmpty(app.JobOfferURL), app.CurrentStage, app.Status,
		app.SalaryExpectation, nullIfEmpty(app.Source), nullIfEmpty(app.Notes),
		app.CreatedAt, app.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert application: %w", err)
	}
	return nil
}

// Update は応募記録の全フィールドを上書き保存する。
func (r *PostgresJobApplicationRepo) Update(ctx context.Context, app *model.JobApplication) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE applications SET
			application_date = $2, company_name = $3, job_title = $4,
			contract_type = $5, work_style = $6,
			work_location_city = $7, work_location_state = $8, work_location_country = $9,
			job_offer_url = $10, current_stage = $11, status = $12,
			salary_expectation = $13, source = $14, notes = $15, updated_at = $16
		 WHERE id = $1`,
		app.ID, app.ApplicationDate, app.CompanyName, app.JobTitle,
		app.ContractType, app.WorkStyle,
		nullIfEmpty(app.WorkLocationCity), app.WorkLocationState, nullIfEmpty(app.WorkLocationCountry),
		nullIfEmpty(app.JobOfferURL), app.CurrentStage, app.Status,
		app.SalaryExpectation, nullIfEmpty(app.Source), nullIfEmpty(app.Notes),
		app.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("application not found: %s", app.ID)
	}
	return nil
}

// Delete は応募記録を削除する。
func (r *PostgresJobApplicationRepo) Delete(ctx context.Context, app *model.JobApplication) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM applications WHERE id = $1`,
		app.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("application not found: %s", app.ID)
	}
	return nil
}

// nullIfEmpty は空文字列をNULLに変換する。
func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// compile-time interface check
var _ JobApplicationRepository = (*PostgresJobApplicationRepo)(nil)
