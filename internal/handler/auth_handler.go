package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hitoshi/jobtrack/internal/auth"
	"github.com/hitoshi/jobtrack/internal/middleware"
	"github.com/hitoshi/jobtrack/internal/model"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	// Register は新規ユーザーを登録する。
	Register(ctx context.Context, req auth.RegisterRequest) (*auth.RegisterResponse, error)
	// Login は認証を行い、アクセストークンを発行する。
	Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error)
}

// AuthHandler はユーザー登録・認証のHTTPハンドラー。
type AuthHandler struct {
	service AuthServiceInterface
	metrics middleware.AuthMetricsRecorder
}

// NewAuthHandler はAuthHandlerを生成する。
// metricsはnil可（記録をスキップする）。
func NewAuthHandler(service AuthServiceInterface, metrics middleware.AuthMetricsRecorder) *AuthHandler {
	return &AuthHandler{service: service, metrics: metrics}
}

// Register はユーザー登録を処理する。
// POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, invalidRequestBodyError())
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// Login はログインを処理し、アクセストークンを返す。
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, invalidRequestBodyError())
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		h.recordLoginFailure(err)
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// recordLoginFailure は認証情報不一致によるログイン失敗をメトリクスに記録する。
// インフラ起因のエラーは対象外。
func (h *AuthHandler) recordLoginFailure(err error) {
	if h.metrics == nil {
		return
	}
	var apiErr *model.APIError
	if errors.As(err, &apiErr) && apiErr.Code == model.ErrCodeInvalidCredentials {
		h.metrics.RecordAuthFailure("invalid_credentials")
	}
}

// invalidRequestBodyError はリクエストボディ解析失敗のエラーを生成する。
func invalidRequestBodyError() *model.APIError {
	return &model.APIError{
		Code:     "INVALID_REQUEST",
		Message:  "リクエストボディの解析に失敗しました。",
		Category: "validation",
		Action:   "正しいJSON形式でリクエストしてください。",
	}
}
