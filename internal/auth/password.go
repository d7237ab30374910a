package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher はパスワードのハッシュ化と照合のインターフェースを定義する。
// 平文パスワードはこのインターフェースの外に出さない。
type PasswordHasher interface {
	// Hash は平文パスワードのハッシュ値を返す。
	Hash(password string) (string, error)

	// Compare はハッシュ値と平文パスワードを照合する。不一致の場合はエラーを返す。
	Compare(hashed, password string) error
}

// bcryptHasher はbcryptによるPasswordHasherの実装。
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher はPasswordHasherの新しいインスタンスを生成する。
// costが範囲外の場合はbcryptのデフォルトコストを使用する。
func NewBcryptHasher(cost int) *bcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

// Hash は平文パスワードのbcryptハッシュ値を返す。
func (h *bcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Compare はハッシュ値と平文パスワードを照合する。
func (h *bcryptHasher) Compare(hashed, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password))
}

// compile-time interface check
var _ PasswordHasher = (*bcryptHasher)(nil)
