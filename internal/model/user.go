package model

import "time"

// RoleUser は標準ユーザーのロール値。現状ロールはこれのみ。
const RoleUser = "User"

// User はサービス利用ユーザーを表す。
// フィールドの変更はコンストラクタとメソッド経由でのみ行うこと。
// PasswordHashはハッシュ済みの値のみを保持し、平文は一切扱わない。
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser は新規ユーザーを生成する。
// active=true、role="User"で初期化し、作成・更新日時を現在UTC時刻に設定する。
func NewUser(id, email, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         RoleUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Deactivate はユーザーを無効化する。一方向の操作で、再有効化は提供しない。
func (u *User) Deactivate() {
	u.IsActive = false
	u.touchUpdated()
}

// touchUpdated は更新日時を現在UTC時刻に設定する。
func (u *User) touchUpdated() {
	u.UpdatedAt = time.Now().UTC()
}
