// Package auth はユーザー登録・認証・トークン発行を提供する。
package auth

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/hitoshi/jobtrack/internal/model"
	"github.com/hitoshi/jobtrack/internal/repository"
)

// パスワードの最小文字数。
const minPasswordLength = 8

// RegisterRequest はユーザー登録の入力DTO。
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse はユーザー登録のレスポンスDTO。
// パスワードハッシュは含めない。
type RegisterResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// LoginRequest はログインの入力DTO。
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse はログイン成功時のレスポンスDTO。
type LoginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Service はユーザー登録と認証のサービス層。
type Service struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	issuer   TokenIssuer
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(userRepo repository.UserRepository, hasher PasswordHasher, issuer TokenIssuer) *Service {
	return &Service{
		userRepo: userRepo,
		hasher:   hasher,
		issuer:   issuer,
	}
}

// Register は新規ユーザーを登録する。
// メールアドレスは保存された表記のまま大文字小文字を区別して比較し、
// 無効化済みユーザーも含めて一意とする。重複時はDUPLICATE_USERを返す。
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	if errs := validateRegister(req); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	email := trimEmail(req.Email)

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if existing != nil {
		return nil, model.NewDuplicateUserError()
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("パスワードのハッシュ化に失敗しました: %w", err)
	}

	user := model.NewUser(uuid.New().String(), email, hashed)
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("ユーザーの作成に失敗しました: %w", err)
	}

	return &RegisterResponse{
		ID:    user.ID,
		Email: user.Email,
	}, nil
}

// Login は認証を行い、アクセストークンを発行する。
// 未登録・無効化済み・パスワード不一致はすべて同一のINVALID_CREDENTIALSを返し、
// アカウントの存在有無を漏らさない。
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindActiveByEmail(ctx, trimEmail(req.Email))
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return nil, model.NewInvalidCredentialsError()
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, model.NewInvalidCredentialsError()
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("トークンの発行に失敗しました: %w", err)
	}

	return &LoginResponse{
		Token: token,
		Email: user.Email,
		Role:  user.Role,
	}, nil
}

// validateRegister は登録DTOを検証し、エラーメッセージのリストを返す。
func validateRegister(req RegisterRequest) []string {
	var errs []string

	if strings.TrimSpace(req.Email) == "" {
		errs = append(errs, "Email is required")
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		errs = append(errs, "Email is invalid")
	}

	if req.Password == "" {
		errs = append(errs, "Password is required")
	} else if len(req.Password) < minPasswordLength {
		errs = append(errs, fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}

	return errs
}

// trimEmail はメールアドレスの前後空白を除去する。
// 大文字小文字は変換せず、保存された表記のまま扱う。
func trimEmail(email string) string {
	return strings.TrimSpace(email)
}
