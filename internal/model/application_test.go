package model

import (
	"testing"
	"time"
)

func newTestApplication() *JobApplication {
	return NewJobApplication(
		"app-1", "user-1",
		NewDate(2026, time.January, 15),
		"Acme", "Backend Engineer",
		ContractTypePermanent,
		WorkStyleRemote,
		"Tokyo",
	)
}

func TestNewJobApplication_Defaults(t *testing.T) {
	app := newTestApplication()

	if app.CurrentStage != StageApplied {
		t.Errorf("CurrentStage = %q, want %q", app.CurrentStage, StageApplied)
	}
	if app.Status != StatusInProgress {
		t.Errorf("Status = %q, want %q", app.Status, StatusInProgress)
	}
	if app.CreatedAt.IsZero() || app.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
	if !app.CreatedAt.Equal(app.UpdatedAt) {
		t.Error("expected CreatedAt == UpdatedAt on construction")
	}
}

func TestChangeStage_OverwritesNotesOnlyWhenGiven(t *testing.T) {
	app := newTestApplication()
	app.Notes = "original"

	app.ChangeStage(StageFirstInterview, nil)
	if app.CurrentStage != StageFirstInterview {
		t.Errorf("CurrentStage = %q, want %q", app.CurrentStage, StageFirstInterview)
	}
	if app.Notes != "original" {
		t.Errorf("Notes = %q, want unchanged %q", app.Notes, "original")
	}

	note := "passed screening"
	app.ChangeStage(StageHRInterview, &note)
	if app.Notes != "passed screening" {
		t.Errorf("Notes = %q, want %q", app.Notes, "passed screening")
	}
}

func TestChangeStatus_UpdatesTimestamp(t *testing.T) {
	app := newTestApplication()
	before := app.UpdatedAt

	time.Sleep(time.Millisecond)
	app.ChangeStatus(StatusProposal, nil)

	if app.Status != StatusProposal {
		t.Errorf("Status = %q, want %q", app.Status, StatusProposal)
	}
	if !app.UpdatedAt.After(before) {
		t.Error("expected UpdatedAt to advance")
	}
}

func TestUpdateFromFields_NilMeansNoChange(t *testing.T) {
	app := newTestApplication()

	app.UpdateFromFields(ApplicationUpdate{})

	if app.CompanyName != "Acme" {
		t.Errorf("CompanyName = %q, want unchanged %q", app.CompanyName, "Acme")
	}
	if app.JobTitle != "Backend Engineer" {
		t.Errorf("JobTitle = %q, want unchanged %q", app.JobTitle, "Backend Engineer")
	}
}

// 名前系フィールドは空白のみの値も「変更なし」として扱う。
func TestUpdateFromFields_BlankNameFieldsAreSkipped(t *testing.T) {
	app := newTestApplication()
	blank := "   "

	app.UpdateFromFields(ApplicationUpdate{
		CompanyName:       &blank,
		JobTitle:          &blank,
		WorkLocationState: &blank,
	})

	if app.CompanyName != "Acme" {
		t.Errorf("CompanyName = %q, want unchanged %q", app.CompanyName, "Acme")
	}
	if app.JobTitle != "Backend Engineer" {
		t.Errorf("JobTitle = %q, want unchanged %q", app.JobTitle, "Backend Engineer")
	}
	if app.WorkLocationState != "Tokyo" {
		t.Errorf("WorkLocationState = %q, want unchanged %q", app.WorkLocationState, "Tokyo")
	}
}

// 名前系以外の任意項目は空文字列によるクリアを許す。
func TestUpdateFromFields_EmptyOptionalFieldsClearValues(t *testing.T) {
	app := newTestApplication()
	app.Notes = "some notes"
	app.Source = "LinkedIn"
	empty := ""

	app.UpdateFromFields(ApplicationUpdate{
		Notes:  &empty,
		Source: &empty,
	})

	if app.Notes != "" {
		t.Errorf("Notes = %q, want cleared", app.Notes)
	}
	if app.Source != "" {
		t.Errorf("Source = %q, want cleared", app.Source)
	}
}

func TestUpdateFromFields_AppliesGivenValues(t *testing.T) {
	app := newTestApplication()
	newDate := NewDate(2026, time.February, 1)
	ct := ContractTypeContractor
	ws := WorkStyleHybrid
	salary := 9000000.0
	city := "Shibuya"

	app.UpdateFromFields(ApplicationUpdate{
		ApplicationDate:   &newDate,
		ContractType:      &ct,
		WorkStyle:         &ws,
		SalaryExpectation: &salary,
		WorkLocationCity:  &city,
	})

	if app.ApplicationDate.String() != "2026-02-01" {
		t.Errorf("ApplicationDate = %q, want 2026-02-01", app.ApplicationDate)
	}
	if app.ContractType != ContractTypeContractor {
		t.Errorf("ContractType = %q, want %q", app.ContractType, ContractTypeContractor)
	}
	if app.WorkStyle != WorkStyleHybrid {
		t.Errorf("WorkStyle = %q, want %q", app.WorkStyle, WorkStyleHybrid)
	}
	if app.SalaryExpectation == nil || *app.SalaryExpectation != 9000000.0 {
		t.Errorf("SalaryExpectation = %v, want 9000000", app.SalaryExpectation)
	}
	if app.WorkLocationCity != "Shibuya" {
		t.Errorf("WorkLocationCity = %q, want %q", app.WorkLocationCity, "Shibuya")
	}
}

func TestProcessDays(t *testing.T) {
	app := newTestApplication()

	t.Run("応募日当日は0", func(t *testing.T) {
		app.ApplicationDate = Today()
		if got := app.ProcessDays(); got != 0 {
			t.Errorf("ProcessDays = %d, want 0", got)
		}
	})

	t.Run("3日前の応募は3", func(t *testing.T) {
		app.ApplicationDate = Today().AddDays(-3)
		if got := app.ProcessDays(); got != 3 {
			t.Errorf("ProcessDays = %d, want 3", got)
		}
	})
}
