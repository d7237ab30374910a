package jobapp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/jobtrack/internal/model"
	"github.com/hitoshi/jobtrack/internal/repository"
	"github.com/hitoshi/jobtrack/internal/security"
)

// MetricsRecorder は応募記録操作のメトリクス記録インターフェース。
// metrics.Collectorの部分集合として定義する。
type MetricsRecorder interface {
	RecordApplicationCreated()
	RecordStageTransition(stage string)
	RecordStatusTransition(status string)
}

// Service は応募記録管理のサービス層。
// バリデーション → エンティティ構築・変更 → 永続化 → レスポンス射影を編成する。
// 認証済みユーザーIDは常に明示的な引数として受け取り、
// リクエストスコープの暗黙状態には依存しない。
type Service struct {
	appRepo   repository.JobApplicationRepository
	eventRepo repository.ApplicationEventRepository
	sanitizer security.TextSanitizerService
	metrics   MetricsRecorder
}

// NewService はServiceの新しいインスタンスを生成する。
// eventRepo、sanitizer、metricsはnil許容（指定しない場合は該当処理をスキップする）。
func NewService(
	appRepo repository.JobApplicationRepository,
	eventRepo repository.ApplicationEventRepository,
	sanitizer security.TextSanitizerService,
	metrics MetricsRecorder,
) *Service {
	return &Service{
		appRepo:   appRepo,
		eventRepo: eventRepo,
		sanitizer: sanitizer,
		metrics:   metrics,
	}
}

// Create は新規応募記録を作成する。
// バリデーション失敗時はValidationErrorを返す。
// 必須フィールドでエンティティを構築した後、任意フィールドを部分更新として適用し、
// DTOがデフォルト以外の段階・状態を指定していればChangeStage/ChangeStatusを適用する。
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (*Response, error) {
	if errs := ValidateCreate(req); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	app := model.NewJobApplication(
		uuid.New().String(),
		userID,
		req.ApplicationDate,
		req.CompanyName,
		req.JobTitle,
		req.ContractType,
		req.WorkStyle,
		req.WorkLocationState,
	)

	app.UpdateFromFields(model.ApplicationUpdate{
		WorkLocationCity:    optional(req.WorkLocationCity),
		WorkLocationCountry: optional(req.WorkLocationCountry),
		JobOfferURL:         req.JobOfferURL,
		SalaryExpectation:   req.SalaryExpectation,
		Source:              s.sanitized(req.Source),
		Notes:               s.sanitized(req.Notes),
	})

	// デフォルト値（Applied/InProgress）以外が指定された場合のみ適用する
	if req.CurrentStage != nil && *req.CurrentStage != model.StageApplied {
		app.ChangeStage(*req.CurrentStage, nil)
	}
	if req.Status != nil && *req.Status != model.StatusInProgress {
		app.ChangeStatus(*req.Status, nil)
	}

	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("応募記録の作成に失敗しました: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordApplicationCreated()
	}

	resp := toResponse(app)
	return &resp, nil
}

// GetAllByUser は指定ユーザーが所有する応募記録の一覧を返す。
// リポジトリのクエリが所有者でフィルタリングするため、他ユーザーの記録は含まれない。
func (s *Service) GetAllByUser(ctx context.Context, userID string) ([]Response, error) {
	apps, err := s.appRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("応募記録一覧の取得に失敗しました: %w", err)
	}

	results := make([]Response, len(apps))
	for i, app := range apps {
		results[i] = toResponse(app)
	}
	return results, nil
}

// GetByID は指定IDの応募記録を返す。
// 見つからない場合、または呼び出しユーザーが所有者でない場合はnilを返す
// （存在の有無を漏らさないため、両者を区別しない）。
func (s *Service) GetByID(ctx context.Context, userID, id string) (*Response, error) {
	app, err := s.appRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("応募記録の取得に失敗しました: %w", err)
	}
	if app == nil || app.UserID != userID {
		return nil, nil
	}

	resp := toResponse(app)
	return &resp, nil
}

// Update は応募記録を部分更新する。
// バリデーション失敗時はValidationError、対象が存在しない（または所有者でない）場合は
// APPLICATION_NOT_FOUNDを返す。いずれの場合も永続化は行わない。
// 段階・状態が変更された場合は遷移イベントを記録する。
func (s *Service) Update(ctx context.Context, userID, id string, req UpdateRequest) error {
	if errs := ValidateUpdate(req); len(errs) > 0 {
		return model.NewValidationError(errs)
	}

	app, err := s.appRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("応募記録の取得に失敗しました: %w", err)
	}
	if app == nil || app.UserID != userID {
		return model.NewApplicationNotFoundError(id)
	}

	previousStage := app.CurrentStage
	previousStatus := app.Status

	app.UpdateFromFields(model.ApplicationUpdate{
		ApplicationDate:     req.ApplicationDate,
		CompanyName:         req.CompanyName,
		JobTitle:            req.JobTitle,
		ContractType:        req.ContractType,
		WorkStyle:           req.WorkStyle,
		WorkLocationCity:    req.WorkLocationCity,
		WorkLocationState:   req.WorkLocationState,
		WorkLocationCountry: req.WorkLocationCountry,
		JobOfferURL:         req.JobOfferURL,
		SalaryExpectation:   req.SalaryExpectation,
		Source:              s.sanitized(req.Source),
		Notes:               s.sanitized(req.Notes),
	})

	if req.CurrentStage != nil {
		app.ChangeStage(*req.CurrentStage, nil)
	}
	if req.Status != nil {
		app.ChangeStatus(*req.Status, nil)
	}

	if err := s.appRepo.Update(ctx, app); err != nil {
		return fmt.Errorf("応募記録の更新に失敗しました: %w", err)
	}

	s.recordTransition(ctx, app, previousStage, previousStatus, req)

	return nil
}

// Delete は応募記録を削除する。
// 対象が存在しない（または所有者でない）場合はAPPLICATION_NOT_FOUNDを返し、
// リポジトリの削除は呼び出さない。
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	app, err := s.appRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("応募記録の取得に失敗しました: %w", err)
	}
	if app == nil || app.UserID != userID {
		return model.NewApplicationNotFoundError(id)
	}

	if err := s.appRepo.Delete(ctx, app); err != nil {
		return fmt.Errorf("応募記録の削除に失敗しました: %w", err)
	}

	return nil
}

// ListEvents は応募記録の遷移イベント一覧を発生日時の昇順で返す。
// 対象が存在しない（または所有者でない）場合はAPPLICATION_NOT_FOUNDを返す。
func (s *Service) ListEvents(ctx context.Context, userID, id string) ([]EventResponse, error) {
	app, err := s.appRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("応募記録の取得に失敗しました: %w", err)
	}
	if app == nil || app.UserID != userID {
		return nil, model.NewApplicationNotFoundError(id)
	}

	events, err := s.eventRepo.ListByApplicationID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("遷移イベント一覧の取得に失敗しました: %w", err)
	}

	results := make([]EventResponse, len(events))
	for i, event := range events {
		results[i] = EventResponse{
			ID:             event.ID,
			ApplicationID:  event.ApplicationID,
			PreviousStage:  event.PreviousStage,
			NewStage:       event.NewStage,
			PreviousStatus: event.PreviousStatus,
			NewStatus:      event.NewStatus,
			Note:           event.Note,
			OccurredAt:     event.CreatedAt.Format(time.RFC3339),
		}
	}
	return results, nil
}

// recordTransition は更新で段階・状態が指定された場合に遷移イベントを記録する。
// イベント記録の失敗は更新本体の成功を妨げない（ログ相当の監査情報のため）。
func (s *Service) recordTransition(
	ctx context.Context,
	app *model.JobApplication,
	previousStage model.ApplicationStage,
	previousStatus model.ApplicationStatus,
	req UpdateRequest,
) {
	if s.eventRepo == nil {
		return
	}
	if req.CurrentStage == nil && req.Status == nil {
		return
	}

	event := model.NewApplicationEvent(
		uuid.New().String(),
		app.ID,
		nil, nil, nil, nil,
		"",
	)
	if req.CurrentStage != nil {
		prev := previousStage
		next := app.CurrentStage
		event.PreviousStage = &prev
		event.NewStage = &next
		if s.metrics != nil {
			s.metrics.RecordStageTransition(string(next))
		}
	}
	if req.Status != nil {
		prev := previousStatus
		next := app.Status
		event.PreviousStatus = &prev
		event.NewStatus = &next
		if s.metrics != nil {
			s.metrics.RecordStatusTransition(string(next))
		}
	}
	if req.Notes != nil {
		event.Note = app.Notes
	}

	// ベストエフォート: 監査イベントが書けなくても更新自体は成立させる
	_ = s.eventRepo.Create(ctx, event)
}

// sanitized は自由記述フィールドをサニタイズする。nilはそのまま通す。
func (s *Service) sanitized(value *string) *string {
	if value == nil || s.sanitizer == nil {
		return value
	}
	cleaned := s.sanitizer.Sanitize(*value)
	return &cleaned
}

// optional は空文字列をnil（未指定）に変換する。
func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// toResponse はエンティティをAPIレスポンスDTOに射影する。
func toResponse(app *model.JobApplication) Response {
	return Response{
		ID:                  app.ID,
		UserID:              app.UserID,
		ApplicationDate:     app.ApplicationDate,
		CompanyName:         app.CompanyName,
		JobTitle:            app.JobTitle,
		ContractType:        app.ContractType,
		WorkStyle:           app.WorkStyle,
		WorkLocationCity:    app.WorkLocationCity,
		WorkLocationState:   app.WorkLocationState,
		WorkLocationCountry: app.WorkLocationCountry,
		JobOfferURL:         app.JobOfferURL,
		CurrentStage:        app.CurrentStage,
		Status:              app.Status,
		SalaryExpectation:   app.SalaryExpectation,
		Source:              app.Source,
		Notes:               app.Notes,
		ProcessDays:         app.ProcessDays(),
		CreatedAt:           app.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           app.UpdatedAt.Format(time.RFC3339),
	}
}
