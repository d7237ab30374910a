package jobapp

import (
	"context"
	"errors"
	"testing"

	"github.com/hitoshi/jobtrack/internal/model"
)

// --- モック ---

type mockAppRepo struct {
	findByIDFn     func(ctx context.Context, id string) (*model.JobApplication, error)
	listByUserIDFn func(ctx context.Context, userID string) ([]*model.JobApplication, error)
	createFn       func(ctx context.Context, app *model.JobApplication) error
	updateFn       func(ctx context.Context, app *model.JobApplication) error
	deleteFn       func(ctx context.Context, app *model.JobApplication) error
}

func (m *mockAppRepo) FindByID(ctx context.Context, id string) (*model.JobApplication, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}
func (m *mockAppRepo) ListByUserID(ctx context.Context, userID string) ([]*model.JobApplication, error) {
	if m.listByUserIDFn != nil {
		return m.listByUserIDFn(ctx, userID)
	}
	return nil, nil
}
func (m *mockAppRepo) Create(ctx context.Context, app *model.JobApplication) error {
	if m.createFn != nil {
		return m.createFn(ctx, app)
	}
	return nil
}
func (m *mockAppRepo) Update(ctx context.Context, app *model.JobApplication) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, app)
	}
	return nil
}
func (m *mockAppRepo) Delete(ctx context.Context, app *model.JobApplication) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, app)
	}
	return nil
}

type mockEventRepo struct {
	createFn              func(ctx context.Context, event *model.ApplicationEvent) error
	listByApplicationIDFn func(ctx context.Context, applicationID string) ([]*model.ApplicationEvent, error)
}

func (m *mockEventRepo) Create(ctx context.Context, event *model.ApplicationEvent) error {
	if m.createFn != nil {
		return m.createFn(ctx, event)
	}
	return nil
}
func (m *mockEventRepo) ListByApplicationID(ctx context.Context, applicationID string) ([]*model.ApplicationEvent, error) {
	if m.listByApplicationIDFn != nil {
		return m.listByApplicationIDFn(ctx, applicationID)
	}
	return nil, nil
}

type mockSanitizer struct {
	sanitizeFn func(raw string) string
}

func (m *mockSanitizer) Sanitize(raw string) string {
	if m.sanitizeFn != nil {
		return m.sanitizeFn(raw)
	}
	return raw
}

func existingApplication(id, userID string) *model.JobApplication {
	return model.NewJobApplication(
		id, userID,
		model.NewDate(2026, 1, 15),
		"Acme", "Backend Engineer",
		model.ContractTypePermanent,
		model.WorkStyleRemote,
		"Tokyo",
	)
}

// --- テスト ---

func TestService_Create_AppliesDefaults(t *testing.T) {
	var created *model.JobApplication
	appRepo := &mockAppRepo{
		createFn: func(ctx context.Context, app *model.JobApplication) error {
			created = app
			return nil
		},
	}
	svc := NewService(appRepo, nil, nil, nil)

	resp, err := svc.Create(context.Background(), "user-1", validCreateRequest())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created == nil {
		t.Fatal("expected repository Create to be called")
	}
	if created.CurrentStage != model.StageApplied {
		t.Errorf("CurrentStage = %q, want %q", created.CurrentStage, model.StageApplied)
	}
	if created.Status != model.StatusInProgress {
		t.Errorf("Status = %q, want %q", created.Status, model.StatusInProgress)
	}
	if created.UserID != "user-1" {
		t.Errorf("UserID = %q, want %q", created.UserID, "user-1")
	}
	if created.ID == "" {
		t.Error("expected generated ID")
	}
	if resp.CurrentStage != model.StageApplied {
		t.Errorf("response CurrentStage = %q, want %q", resp.CurrentStage, model.StageApplied)
	}
}

func TestService_Create_OverridesDefaultsWhenSpecified(t *testing.T) {
	var created *model.JobApplication
	appRepo := &mockAppRepo{
		createFn: func(ctx context.Context, app *model.JobApplication) error {
			created = app
			return nil
		},
	}
	svc := NewService(appRepo, nil, nil, nil)

	req := validCreateRequest()
	stage := model.StageTechnicalInterview
	status := model.StatusProposal
	req.CurrentStage = &stage
	req.Status = &status

	if _, err := svc.Create(context.Background(), "user-1", req); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.CurrentStage != model.StageTechnicalInterview {
		t.Errorf("CurrentStage = %q, want %q", created.CurrentStage, model.StageTechnicalInterview)
	}
	if created.Status != model.StatusProposal {
		t.Errorf("Status = %q, want %q", created.Status, model.StatusProposal)
	}
}

func TestService_Create_InvalidRequest_NeverCallsRepository(t *testing.T) {
	createCalled := false
	appRepo := &mockAppRepo{
		createFn: func(ctx context.Context, app *model.JobApplication) error {
			createCalled = true
			return nil
		},
	}
	svc := NewService(appRepo, nil, nil, nil)

	req := validCreateRequest()
	req.CompanyName = ""

	_, err := svc.Create(context.Background(), "user-1", req)

	var valErr *model.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(valErr.Errors) != 1 || valErr.Errors[0] != "CompanyName is required" {
		t.Errorf("Errors = %v, want [CompanyName is required]", valErr.Errors)
	}
	if createCalled {
		t.Error("repository Create should not be called on validation failure")
	}
}

func TestService_Create_SanitizesNotesAndSource(t *testing.T) {
	var created *model.JobApplication
	appRepo := &mockAppRepo{
		createFn: func(ctx context.Context, app *model.JobApplication) error {
			created = app
			return nil
		},
	}
	sanitizer := &mockSanitizer{
		sanitizeFn: func(raw string) string { return "clean" },
	}
	svc := NewService(appRepo, nil, sanitizer, nil)

	req := validCreateRequest()
	req.Notes = strPtr("<script>alert(1)</script>")
	req.Source = strPtr("<b>LinkedIn</b>")

	if _, err := svc.Create(context.Background(), "user-1", req); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Notes != "clean" {
		t.Errorf("Notes = %q, want %q", created.Notes, "clean")
	}
	if created.Source != "clean" {
		t.Errorf("Source = %q, want %q", created.Source, "clean")
	}
}

func TestService_GetByID_ReturnsNilForMissing(t *testing.T) {
	svc := NewService(&mockAppRepo{}, nil, nil, nil)

	resp, err := svc.GetByID(context.Background(), "user-1", "missing")
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if resp != nil {
		t.Errorf("expected nil response, got %+v", resp)
	}
}

// 他ユーザーの記録は存在しないものとして扱い、存在有無を漏らさない。
func TestService_GetByID_ReturnsNilForOtherOwner(t *testing.T) {
	appRepo := &mockAppRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.JobApplication, error) {
			return existingApplication(id, "owner"), nil
		},
	}
	svc := NewService(appRepo, nil, nil, nil)

	resp, err := svc.GetByID(context.Background(), "intruder", "app-1")
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if resp != nil {
		t.Errorf("expected nil response for non-owner, got %+v", resp)
	}
}

func TestService_GetByID_ReturnsOwnedApplication(t *testing.T) {
	appRepo := &mockAppRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.JobApplication, error) {
			return existingApplication(id, "user-1"), nil
		},
	}
	svc := NewService(appRepo, nil, nil, nil)

	resp, err := svc.GetByID(context.Background(), "user-1", "app-1")
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if resp == nil {
		t.Fatal("expected response, got nil")
	}
	if resp.CompanyName != "Acme" {
		t.Errorf("CompanyName = %q, want %q", resp.CompanyName, "Acme")
	}
}

func TestService_Update_NotFound_NeverCallsPersistence(t *testing.T) {
	updateCalled := false
	appRepo := &mockAppRepo{
		updateFn: func(ctx context.Context, app *model.JobApplication) error {
			updateCalled = true
			return nil
		},
	}
	svc := NewService(appRepo, &mockEventRepo{}, nil, nil)

	err := svc.Update(context.Background(), "user-1", "missing", UpdateRequest{CompanyName: strPtr("New")})

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeApplicationNotFound {
		t.Fatalf("expected APPLICATION_NOT_FOUND, got %v", err)
	}
	if updateCalled {
		t.Error("repository Update should not be called when application is missing")
	}
}

func TestService_Update_OtherOwner_ReturnsNotFound(t *testing.T) {
	appRepo := &mockAppRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.JobApplication, error) {
			return existingApplication(id, "owner"), nil
		},
	}
	svc := NewService(appRepo, &mockEventRepo{}, nil, nil)

	err := svc.Update(context.Background(), "intruder", "app-1", UpdateRequest{})

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeApplicationNotFound {
		t.Fatalf("expected APPLICATION_NOT_FOUND, got %v", err)
	}
}

func TestService_Update_InvalidRequest_NeverFetches(t *testing.T) {
	findCalled := false
	appRepo := &mockAppRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.JobApplication, error) {
			findCalled = true
			return existingApplication(id, "user-1"), nil
		},
	}
	svc := NewService(appRepo, &mockEventRepo{}, nil, nil)

	err := svc.Update(context.Background(), "user-1", "app-1", UpdateRequest{CompanyName: strPtr("  ")})

	var valErr *model.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if findCalled {
		t.Error("repository FindByID should not be called on validation failure")
	}
}

func TestService_Update_StageChange_RecordsEvent(t *testing.T) {
	var recorded *model.ApplicationEvent
	appRepo := &mockAppRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.JobApplication, error) {
			return existingApplication(id, "user-1"), nil
		},
	}
	eventRepo := &mockEventRepo{
		createFn: func(ctx context.Context, event *model.ApplicationEvent) error {
			recorded = event
			return nil
		},
	}
	svc := NewService(appRepo, eventRepo, nil, nil)

	stage := model.StageHRInterview
	err := svc.Update(context.Background(), "user-1", "app-1", UpdateRequest{CurrentStage: &stage})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if recorded == nil {
		t.Fatal("expected transition event to be recorded")
	}
	if recorded.PreviousStage == nil || *recorded.PreviousStage != model.StageApplied {
		t.Errorf("PreviousStage = %v, want Applied", recorded.PreviousStage)
	}
	if recorded.NewStage == nil || *recorded.NewStage != model.StageHRInterview {
		t.Errorf("NewStage = %v, want HRInterview", recorded.NewStage)
	}
	if recorded.PreviousStatus != nil || recorded.NewStatus != nil {
		t.Error("status fields should be nil for stage-only transition")
	}
}

func TestService_Update_NoTransition_RecordsNoEvent(t *testing.T) {
	eventCreated := false
	appRepo := &mockAppRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.JobApplication, error) {
			return existingApplication(id, "user-1"), nil
		},
	}
	eventRepo := &mockEventRepo{
		createFn: func(ctx context.Context, event *model.ApplicationEvent) error {
			eventCreated = true
			return nil
		},
	}
	svc := NewService(appRepo, eventRepo, nil, nil)

	err := svc.Update(context.Background(), "user-1", "app-1", UpdateRequest{CompanyName: strPtr("New Corp")})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if eventCreated {
		t.Error("no event should be recorded when stage and status are unchanged")
	}
}

func TestService_Update_AppliesPartialFields(t *testing.T) {
	var updated *model.JobApplication
	appRepo := &mockAppRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.JobApplication, error) {
			return existingApplication(id, "user-1"), nil
		},
		updateFn: func(ctx context.Context, app *model.JobApplication) error {
			updated = app
			return nil
		},
	}
	svc := NewService(appRepo, nil, nil, nil)

	err := svc.Update(context.Background(), "user-1", "app-1", UpdateRequest{
		JobTitle: strPtr("Staff Engineer"),
		Notes:    strPtr("recruiter follow-up"),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.JobTitle != "Staff Engineer" {
		t.Errorf("JobTitle = %q, want %q", updated.JobTitle, "Staff Engineer")
	}
	if updated.Notes != "recruiter follow-up" {
		t.Errorf("Notes = %q, want %q", updated.Notes, "recruiter follow-up")
	}
	// 未指定フィールドは変更されない
	if updated.CompanyName != "Acme" {
		t.Errorf("CompanyName = %q, want unchanged %q", updated.CompanyName, "Acme")
	}
}

func TestService_Delete_NotFound_NeverCallsDelete(t *testing.T) {
	deleteCalled := false
	appRepo := &mockAppRepo{
		deleteFn: func(ctx context.Context, app *model.JobApplication) error {
			deleteCalled = true
			return nil
		},
	}
	svc := NewService(appRepo, nil, nil, nil)

	err := svc.Delete(context.Background(), "user-1", "missing")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeApplicationNotFound {
		t.Fatalf("expected APPLICATION_NOT_FOUND, got %v", err)
	}
	if deleteCalled {
		t.Error("repository Delete should not be called when application is missing")
	}
}

func TestService_Delete_Owned_CallsDelete(t *testing.T) {
	deleteCalled := false
	appRepo := &mockAppRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.JobApplication, error) {
			return existingApplication(id, "user-1"), nil
		},
		deleteFn: func(ctx context.Context, app *model.JobApplication) error {
			deleteCalled = true
			return nil
		},
	}
	svc := NewService(appRepo, nil, nil, nil)

	if err := svc.Delete(context.Background(), "user-1", "app-1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if !deleteCalled {
		t.Error("expected repository Delete to be called")
	}
}

func TestService_GetAllByUser_MapsResponses(t *testing.T) {
	appRepo := &mockAppRepo{
		listByUserIDFn: func(ctx context.Context, userID string) ([]*model.JobApplication, error) {
			return []*model.JobApplication{
				existingApplication("app-1", userID),
				existingApplication("app-2", userID),
			}, nil
		},
	}
	svc := NewService(appRepo, nil, nil, nil)

	results, err := svc.GetAllByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetAllByUser returned error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].ID != "app-1" || results[1].ID != "app-2" {
		t.Errorf("unexpected IDs: %q, %q", results[0].ID, results[1].ID)
	}
}

// 応募日当日のProcessDaysは0になる。
func TestService_ProcessDays_TodayIsZero(t *testing.T) {
	appRepo := &mockAppRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.JobApplication, error) {
			app := existingApplication(id, "user-1")
			app.ApplicationDate = model.Today()
			return app, nil
		},
	}
	svc := NewService(appRepo, nil, nil, nil)

	resp, err := svc.GetByID(context.Background(), "user-1", "app-1")
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if resp.ProcessDays != 0 {
		t.Errorf("ProcessDays = %d, want 0", resp.ProcessDays)
	}
}

func TestService_ListEvents_NotFound_ReturnsError(t *testing.T) {
	svc := NewService(&mockAppRepo{}, &mockEventRepo{}, nil, nil)

	_, err := svc.ListEvents(context.Background(), "user-1", "missing")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeApplicationNotFound {
		t.Fatalf("expected APPLICATION_NOT_FOUND, got %v", err)
	}
}

func TestService_ListEvents_ReturnsEventsInOrder(t *testing.T) {
	stage1 := model.StageApplied
	stage2 := model.StageFirstInterview
	appRepo := &mockAppRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.JobApplication, error) {
			return existingApplication(id, "user-1"), nil
		},
	}
	eventRepo := &mockEventRepo{
		listByApplicationIDFn: func(ctx context.Context, applicationID string) ([]*model.ApplicationEvent, error) {
			return []*model.ApplicationEvent{
				model.NewApplicationEvent("evt-1", applicationID, &stage1, &stage2, nil, nil, ""),
			}, nil
		},
	}
	svc := NewService(appRepo, eventRepo, nil, nil)

	events, err := svc.ListEvents(context.Background(), "user-1", "app-1")
	if err != nil {
		t.Fatalf("ListEvents returned error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}
	if events[0].NewStage == nil || *events[0].NewStage != model.StageFirstInterview {
		t.Errorf("NewStage = %v, want FirstInterview", events[0].NewStage)
	}
}
