package model

import (
	"strings"
	"time"
)

// JobApplication は求人への応募記録を表す。
// フィールドの変更はコンストラクタとミューテーターメソッド経由でのみ行うこと。
// すべてのミューテーターはUpdatedAtを現在UTC時刻に更新する。
// CurrentStage/Statusは定義済みメンバーのみを取り、遷移の順序は制約しない。
type JobApplication struct {
	ID                  string
	UserID              string // 作成後は不変
	ApplicationDate     Date
	CompanyName         string
	JobTitle            string
	ContractType        ContractType
	WorkStyle           WorkStyle
	WorkLocationCity    string
	WorkLocationState   string
	WorkLocationCountry string
	JobOfferURL         string
	CurrentStage        ApplicationStage
	Status              ApplicationStatus
	SalaryExpectation   *float64
	Source              string
	Notes               string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// NewJobApplication は必須フィールドから新規応募記録を生成する。
// CurrentStage=Applied、Status=InProgressで初期化する。
func NewJobApplication(
	id, userID string,
	applicationDate Date,
	companyName, jobTitle string,
	contractType ContractType,
	workStyle WorkStyle,
	workLocationState string,
) *JobApplication {
	now := time.Now().UTC()
	return &JobApplication{
		ID:                id,
		UserID:            userID,
		ApplicationDate:   applicationDate,
		CompanyName:       companyName,
		JobTitle:          jobTitle,
		ContractType:      contractType,
		WorkStyle:         workStyle,
		WorkLocationState: workLocationState,
		CurrentStage:      StageApplied,
		Status:            StatusInProgress,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// ChangeStage は選考段階を変更する。
// noteが非nilの場合はNotesを上書きする。遷移の妥当性は検証しない。
func (a *JobApplication) ChangeStage(newStage ApplicationStage, note *string) {
	a.CurrentStage = newStage
	if note != nil {
		a.Notes = *note
	}
	a.touchUpdated()
}

// ChangeStatus は結果状態を変更する。
// noteが非nilの場合はNotesを上書きする。遷移の妥当性は検証しない。
func (a *JobApplication) ChangeStatus(newStatus ApplicationStatus, note *string) {
	a.Status = newStatus
	if note != nil {
		a.Notes = *note
	}
	a.touchUpdated()
}

// ApplicationUpdate は部分更新の入力フィールド。
// nilフィールドは「変更なし」を意味する。
type ApplicationUpdate struct {
	ApplicationDate     *Date
	CompanyName         *string
	JobTitle            *string
	ContractType        *ContractType
	WorkStyle           *WorkStyle
	WorkLocationCity    *string
	WorkLocationState   *string
	WorkLocationCountry *string
	JobOfferURL         *string
	SalaryExpectation   *float64
	Source              *string
	Notes               *string
}

// UpdateFromFields は部分更新を適用する。
// nilフィールドは変更しない。名前系フィールド（CompanyName、JobTitle、
// WorkLocationState）は空白のみの値も「変更なし」として扱う。
// それ以外の任意項目は指定された値でそのまま上書きする（空文字列によるクリアを許す）。
func (a *JobApplication) UpdateFromFields(f ApplicationUpdate) {
	if f.ApplicationDate != nil {
		a.ApplicationDate = *f.ApplicationDate
	}
	if f.CompanyName != nil && strings.TrimSpace(*f.CompanyName) != "" {
		a.CompanyName = *f.CompanyName
	}
	if f.JobTitle != nil && strings.TrimSpace(*f.JobTitle) != "" {
		a.JobTitle = *f.JobTitle
	}
	if f.ContractType != nil {
		a.ContractType = *f.ContractType
	}
	if f.WorkStyle != nil {
		a.WorkStyle = *f.WorkStyle
	}
	if f.WorkLocationCity != nil {
		a.WorkLocationCity = *f.WorkLocationCity
	}
	if f.WorkLocationState != nil && strings.TrimSpace(*f.WorkLocationState) != "" {
		a.WorkLocationState = *f.WorkLocationState
	}
	if f.WorkLocationCountry != nil {
		a.WorkLocationCountry = *f.WorkLocationCountry
	}
	if f.JobOfferURL != nil {
		a.JobOfferURL = *f.JobOfferURL
	}
	if f.SalaryExpectation != nil {
		a.SalaryExpectation = f.SalaryExpectation
	}
	if f.Source != nil {
		a.Source = *f.Source
	}
	if f.Notes != nil {
		a.Notes = *f.Notes
	}
	a.touchUpdated()
}

// ProcessDays は応募日から現在UTC日付までの経過日数を返す。
// 永続化せず、読み取り時に都度計算する。応募日当日は0。
func (a *JobApplication) ProcessDays() int {
	return a.ApplicationDate.DaysUntil(Today())
}

// touchUpdated は更新日時を現在UTC時刻に設定する。
func (a *JobApplication) touchUpdated() {
	a.UpdatedAt = time.Now().UTC()
}
