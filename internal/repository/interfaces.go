// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/jobtrack/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByEmail は指定メールアドレスのユーザーを有効・無効を問わず取得する。
	// 見つからない場合はnilを返す。登録時の重複チェックに使用する。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// FindActiveByEmail は指定メールアドレスの有効なユーザーを取得する。
	// 見つからない場合、または無効化済みの場合はnilを返す。ログインに使用する。
	FindActiveByEmail(ctx context.Context, email string) (*model.User, error)

	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// Create はユーザーを作成する。
	Create(ctx context.Context, user *model.User) error

	// Update はユーザーの状態（無効化等）を保存する。
	Update(ctx context.Context, user *model.User) error
}

// JobApplicationRepository は応募記録の永続化インターフェース。
type JobApplicationRepository interface {
	// FindByID は指定IDの応募記録を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.JobApplication, error)

	// ListByUserID は指定ユーザーが所有する応募記録の一覧を返す。
	// 所有者によるフィルタリングはクエリ側で行い、他ユーザーの記録を含めない。
	// 応募日の降順、同日内は作成日時の降順で返す。
	ListByUserID(ctx context.Context, userID string) ([]*model.JobApplication, error)

	// Create は応募記録を作成する。
	Create(ctx context.Context, app *model.JobApplication) error

	// Update は応募記録の全フィールドを上書き保存する。
	Update(ctx context.Context, app *model.JobApplication) error

	// Delete は応募記録を削除する。
	Delete(ctx context.Context, app *model.JobApplication) error
}

// ApplicationEventRepository は遷移イベントの永続化インターフェース。
type ApplicationEventRepository interface {
	// Create は遷移イベントを作成する。
	Create(ctx context.Context, event *model.ApplicationEvent) error

	// ListByApplicationID は指定応募記録の遷移イベントを発生日時の昇順で返す。
	ListByApplicationID(ctx context.Context, applicationID string) ([]*model.ApplicationEvent, error)
}
