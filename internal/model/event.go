package model

import "time"

// ApplicationEvent は応募の段階・状態遷移の監査レコードを表す。
// 遷移前後の段階と状態をnil許容で保持する（段階のみの変更では状態側がnil）。
type ApplicationEvent struct {
	ID             string
	ApplicationID  string
	PreviousStage  *ApplicationStage
	NewStage       *ApplicationStage
	PreviousStatus *ApplicationStatus
	NewStatus      *ApplicationStatus
	Note           string
	CreatedAt      time.Time
}

// NewApplicationEvent は遷移イベントを生成する。作成日時が遷移発生時刻を兼ねる。
func NewApplicationEvent(
	id, applicationID string,
	previousStage, newStage *ApplicationStage,
	previousStatus, newStatus *ApplicationStatus,
	note string,
) *ApplicationEvent {
	return &ApplicationEvent{
		ID:             id,
		ApplicationID:  applicationID,
		PreviousStage:  previousStage,
		NewStage:       newStage,
		PreviousStatus: previousStatus,
		NewStatus:      newStatus,
		Note:           note,
		CreatedAt:      time.Now().UTC(),
	}
}
