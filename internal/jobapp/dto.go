// Package jobapp は応募記録管理のドメインロジックを提供する。
package jobapp

import (
	"github.com/hitoshi/jobtrack/internal/model"
)

// CreateRequest は応募記録作成の入力DTO。
// 任意項目はポインタで表現し、nilは「未指定」を意味する。
type CreateRequest struct {
	ApplicationDate     model.Date               `json:"application_date"`
	CompanyName         string                   `json:"company_name"`
	JobTitle            string                   `json:"job_title"`
	ContractType        model.ContractType       `json:"contract_type"`
	WorkStyle           model.WorkStyle          `json:"work_style"`
	WorkLocationState   string                   `json:"work_location_state"`
	WorkLocationCity    string                   `json:"work_location_city,omitempty"`
	WorkLocationCountry string                   `json:"work_location_country,omitempty"`
	JobOfferURL         *string                  `json:"job_offer_url,omitempty"`
	SalaryExpectation   *float64                 `json:"salary_expectation,omitempty"`
	Source              *string                  `json:"source,omitempty"`
	Notes               *string                  `json:"notes,omitempty"`
	CurrentStage        *model.ApplicationStage  `json:"current_stage,omitempty"`
	Status              *model.ApplicationStatus `json:"status,omitempty"`
}

// UpdateRequest は応募記録部分更新の入力DTO。
// 全項目がポインタで、nilは「変更なし」を意味する。
// 名前系フィールドはnilのみスキップされ、空白のみの値はバリデーションエラーになる。
type UpdateRequest struct {
	ApplicationDate     *model.Date              `json:"application_date,omitempty"`
	CompanyName         *string                  `json:"company_name,omitempty"`
	JobTitle            *string                  `json:"job_title,omitempty"`
	ContractType        *model.ContractType      `json:"contract_type,omitempty"`
	WorkStyle           *model.WorkStyle         `json:"work_style,omitempty"`
	WorkLocationState   *string                  `json:"work_location_state,omitempty"`
	WorkLocationCity    *string                  `json:"work_location_city,omitempty"`
	WorkLocationCountry *string                  `json:"work_location_country,omitempty"`
	JobOfferURL         *string                  `json:"job_offer_url,omitempty"`
	SalaryExpectation   *float64                 `json:"salary_expectation,omitempty"`
	Source              *string                  `json:"source,omitempty"`
	Notes               *string                  `json:"notes,omitempty"`
	CurrentStage        *model.ApplicationStage  `json:"current_stage,omitempty"`
	Status              *model.ApplicationStatus `json:"status,omitempty"`
}

// Response は応募記録のAPIレスポンスDTO。
// ProcessDaysは永続化されず、読み取り時に再計算される。
type Response struct {
	ID                  string                  `json:"id"`
	UserID              string                  `json:"user_id"`
	ApplicationDate     model.Date              `json:"application_date"`
	CompanyName         string                  `json:"company_name"`
	JobTitle            string                  `json:"job_title"`
	ContractType        model.ContractType      `json:"contract_type"`
	WorkStyle           model.WorkStyle         `json:"work_style"`
	WorkLocationCity    string                  `json:"work_location_city,omitempty"`
	WorkLocationState   string                  `json:"work_location_state"`
	WorkLocationCountry string                  `json:"work_location_country,omitempty"`
	JobOfferURL         string                  `json:"job_offer_url,omitempty"`
	CurrentStage        model.ApplicationStage  `json:"current_stage"`
	Status              model.ApplicationStatus `json:"status"`
	SalaryExpectation   *float64                `json:"salary_expectation,omitempty"`
	Source              string                  `json:"source,omitempty"`
	Notes               string                  `json:"notes,omitempty"`
	ProcessDays         int                     `json:"process_days"`
	CreatedAt           string                  `json:"created_at"`
	UpdatedAt           string                  `json:"updated_at"`
}

// EventResponse は遷移イベントのAPIレスポンスDTO。
type EventResponse struct {
	ID             string                   `json:"id"`
	ApplicationID  string                   `json:"application_id"`
	PreviousStage  *model.ApplicationStage  `json:"previous_stage,omitempty"`
	NewStage       *model.ApplicationStage  `json:"new_stage,omitempty"`
	PreviousStatus *model.ApplicationStatus `json:"previous_status,omitempty"`
	NewStatus      *model.ApplicationStatus `json:"new_status,omitempty"`
	Note           string                   `json:"note,omitempty"`
	OccurredAt     string                   `json:"occurred_at"`
}
