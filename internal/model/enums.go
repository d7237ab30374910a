// Package model はドメインモデルを定義する。
package model

// ContractType は雇用契約の形態を表す。
type ContractType string

const (
	ContractTypePermanent  ContractType = "Permanent"
	ContractTypeContractor ContractType = "Contractor"
	ContractTypeInternship ContractType = "Internship"
	ContractTypeFreelance  ContractType = "Freelance"
)

// IsValid はContractTypeが定義済みのメンバーかを返す。
func (c ContractType) IsValid() bool {
	switch c {
	case ContractTypePermanent, ContractTypeContractor, ContractTypeInternship, ContractTypeFreelance:
		return true
	}
	return false
}

// WorkStyle は勤務スタイルを表す。
type WorkStyle string

const (
	WorkStyleRemote WorkStyle = "Remote"
	WorkStyleHybrid WorkStyle = "Hybrid"
	WorkStyleOnSite WorkStyle = "OnSite"
)

// IsValid はWorkStyleが定義済みのメンバーかを返す。
func (w WorkStyle) IsValid() bool {
	switch w {
	case WorkStyleRemote, WorkStyleHybrid, WorkStyleOnSite:
		return true
	}
	return false
}

// ApplicationStage は選考パイプライン上の段階を表す。
// 段階間の遷移グラフは意図的に定義しない。任意の段階から任意の段階へ移動できる。
type ApplicationStage string

const (
	StageApplied            ApplicationStage = "Applied"
	StageFirstInterview     ApplicationStage = "FirstInterview"
	StageHRInterview        ApplicationStage = "HRInterview"
	StageTechnicalInterview ApplicationStage = "TechnicalInterview"
	StageGroupDynamic       ApplicationStage = "GroupDynamic"
	StageManagerInterview   ApplicationStage = "ManagerInterview"
	StageAssessment         ApplicationStage = "Assessment"
)

// IsValid はApplicationStageが定義済みのメンバーかを返す。
func (s ApplicationStage) IsValid() bool {
	switch s {
	case StageApplied, StageFirstInterview, StageHRInterview, StageTechnicalInterview,
		StageGroupDynamic, StageManagerInterview, StageAssessment:
		return true
	}
	return false
}

// ApplicationStatus は応募全体の結果状態を表す。
// ApplicationStageと同様に遷移グラフは定義しない。
type ApplicationStatus string

const (
	StatusInProgress ApplicationStatus = "InProgress"
	StatusClosed     ApplicationStatus = "Closed"
	StatusCancelled  ApplicationStatus = "Cancelled"
	StatusNoResponse ApplicationStatus = "NoResponse"
	StatusProposal   ApplicationStatus = "Proposal"
	StatusDenied     ApplicationStatus = "Denied"
)

// IsValid はApplicationStatusが定義済みのメンバーかを返す。
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case StatusInProgress, StatusClosed, StatusCancelled, StatusNoResponse,
		StatusProposal, StatusDenied:
		return true
	}
	return false
}
