package jobapp

import (
	"net/url"
	"strings"

	"github.com/hitoshi/jobtrack/internal/model"
)

// バリデーションエンジン。
// DTOの形ごとに純粋関数としてルールを適用し、順序付きメッセージリストを返す。
// 最初のエラーで打ち切らず、全ルールを評価する。空リストは妥当を意味する。

// ValidateCreate は作成DTOを検証し、エラーメッセージのリストを返す。
func ValidateCreate(req CreateRequest) []string {
	var errs []string

	requireNotBlank(req.CompanyName, "CompanyName", &errs)
	requireNotBlank(req.JobTitle, "JobTitle", &errs)
	requireNotFuture(req.ApplicationDate, "ApplicationDate", &errs)

	if !req.ContractType.IsValid() {
		errs = append(errs, "ContractType is invalid")
	}
	if !req.WorkStyle.IsValid() {
		errs = append(errs, "WorkStyle is invalid")
	}

	requireNotBlank(req.WorkLocationState, "WorkLocationState", &errs)

	if req.SalaryExpectation != nil && *req.SalaryExpectation < 0 {
		errs = append(errs, "SalaryExpectation cannot be negative")
	}
	if req.JobOfferURL != nil {
		requireValidURL(*req.JobOfferURL, "JobOfferUrl", &errs)
	}
	if req.CurrentStage != nil && !req.CurrentStage.IsValid() {
		errs = append(errs, "CurrentStage is invalid")
	}
	if req.Status != nil && !req.Status.IsValid() {
		errs = append(errs, "Status is invalid")
	}

	return errs
}

// ValidateUpdate は部分更新DTOを検証し、エラーメッセージのリストを返す。
// nilフィールドは検証をスキップする。値が指定された名前系フィールドは
// 空白のみの場合にエラーとする（nilのみスキップ、空文字列はスキップしない）。
func ValidateUpdate(req UpdateRequest) []string {
	var errs []string

	if req.CompanyName != nil && strings.TrimSpace(*req.CompanyName) == "" {
		errs = append(errs, "CompanyName cannot be empty")
	}
	if req.JobTitle != nil && strings.TrimSpace(*req.JobTitle) == "" {
		errs = append(errs, "JobTitle cannot be empty")
	}
	if req.ApplicationDate != nil {
		requireNotFuture(*req.ApplicationDate, "ApplicationDate", &errs)
	}
	if req.ContractType != nil && !req.ContractType.IsValid() {
		errs = append(errs, "ContractType is invalid")
	}
	if req.WorkStyle != nil && !req.WorkStyle.IsValid() {
		errs = append(errs, "WorkStyle is invalid")
	}
	if req.WorkLocationState != nil && strings.TrimSpace(*req.WorkLocationState) == "" {
		errs = append(errs, "WorkLocationState cannot be empty")
	}
	if req.SalaryExpectation != nil && *req.SalaryExpectation < 0 {
		errs = append(errs, "SalaryExpectation cannot be negative")
	}
	if req.JobOfferURL != nil {
		requireValidURL(*req.JobOfferURL, "JobOfferUrl", &errs)
	}
	if req.CurrentStage != nil && !req.CurrentStage.IsValid() {
		errs = append(errs, "CurrentStage is invalid")
	}
	if req.Status != nil && !req.Status.IsValid() {
		errs = append(errs, "Status is invalid")
	}

	return errs
}

// requireNotBlank は必須テキスト項目の空白チェックを行う。
func requireNotBlank(value, fieldName string, errs *[]string) {
	if strings.TrimSpace(value) == "" {
		*errs = append(*errs, fieldName+" is required")
	}
}

// requireNotFuture は日付が未来でないことを検証する。現在のUTC日付は許容する。
func requireNotFuture(date model.Date, fieldName string, errs *[]string) {
	if date.After(model.Today()) {
		*errs = append(*errs, fieldName+" cannot be in the future")
	}
}

// requireValidURL はURLが絶対URLとして整形式であることを検証する。
// 空白のみの値は「未指定」として扱いスキップする。
func requireValidURL(rawURL, fieldName string, errs *[]string) {
	if strings.TrimSpace(rawURL) == "" {
		return
	}
	if !isWellFormedAbsoluteURL(rawURL) {
		*errs = append(*errs, fieldName+" is invalid")
	}
}

// isWellFormedAbsoluteURL はスキームとホストを持つ絶対URLかを返す。
func isWellFormedAbsoluteURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Host != ""
}
