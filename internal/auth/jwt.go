package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hitoshi/jobtrack/internal/model"
)

// Claims は検証済みトークンから取り出す認証情報。
type Claims struct {
	UserID string
	Email  string
	Role   string
}

// TokenIssuer はアクセストークンの発行と検証のインターフェースを定義する。
type TokenIssuer interface {
	// Issue はユーザーの署名付きアクセストークンを発行する。
	Issue(user *model.User) (string, error)

	// Verify はトークンを検証し、クレームを取り出す。
	// 署名不正・期限切れ・発行者不一致はすべてエラーを返す。
	Verify(tokenString string) (*Claims, error)
}

// jwtIssuer はHMAC-SHA256署名のJWTによるTokenIssuerの実装。
type jwtIssuer struct {
	secret   []byte
	issuer   string
	audience string
	expiry   time.Duration
}

// NewJWTIssuer はTokenIssuerの新しいインスタンスを生成する。
func NewJWTIssuer(secret, issuer, audience string, expiry time.Duration) *jwtIssuer {
	return &jwtIssuer{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		expiry:   expiry,
	}
}

// Issue はユーザーの署名付きアクセストークンを発行する。
// sub/email/roleのクレームを含み、有効期限は発行時刻からexpiry後。
func (j *jwtIssuer) Issue(user *model.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"iss":   j.issuer,
		"aud":   j.audience,
		"iat":   now.Unix(),
		"exp":   now.Add(j.expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify はトークンを検証し、クレームを取り出す。
func (j *jwtIssuer) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return j.secret, nil
		},
		jwt.WithIssuer(j.issuer),
		jwt.WithAudience(j.audience),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type")
	}

	sub, _ := mapClaims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("missing sub claim")
	}
	email, _ := mapClaims["email"].(string)
	role, _ := mapClaims["role"].(string)

	return &Claims{
		UserID: sub,
		Email:  email,
		Role:   role,
	}, nil
}

// compile-time interface check
var _ TokenIssuer = (*jwtIssuer)(nil)
