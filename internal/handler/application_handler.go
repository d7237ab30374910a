// Package handler はHTTP APIのハンドラーとルーティングを提供する。
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/jobtrack/internal/jobapp"
	"github.com/hitoshi/jobtrack/internal/middleware"
	"github.com/hitoshi/jobtrack/internal/model"
)

// ApplicationServiceInterface は応募記録ハンドラーが必要とするサービスインターフェース。
type ApplicationServiceInterface interface {
	// Create は新規応募記録を作成する。
	Create(ctx context.Context, userID string, req jobapp.CreateRequest) (*jobapp.Response, error)
	// GetAllByUser はユーザーが所有する応募記録の一覧を返す。
	GetAllByUser(ctx context.Context, userID string) ([]jobapp.Response, error)
	// GetByID は指定IDの応募記録を返す。見つからない場合はnilを返す。
	GetByID(ctx context.Context, userID, id string) (*jobapp.Response, error)
	// Update は応募記録を部分更新する。
	Update(ctx context.Context, userID, id string, req jobapp.UpdateRequest) error
	// Delete は応募記録を削除する。
	Delete(ctx context.Context, userID, id string) error
	// ListEvents は応募記録の遷移イベント一覧を返す。
	ListEvents(ctx context.Context, userID, id string) ([]jobapp.EventResponse, error)
}

// ApplicationHandler は応募記録管理のHTTPハンドラー。
type ApplicationHandler struct {
	service ApplicationServiceInterface
}

// NewApplicationHandler はApplicationHandlerを生成する。
func NewApplicationHandler(service ApplicationServiceInterface) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// apiErrorResponse は統一エラーフォーマットのレスポンス。
type apiErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// validationErrorResponse はバリデーションエラーのレスポンス。
// 評価順のメッセージリストをそのまま返す。
type validationErrorResponse struct {
	Errors []string `json:"errors"`
}

// Create は応募記録の作成を処理する。
// POST /api/jobapplications
func (h *ApplicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	var req jobapp.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, invalidRequestBodyError())
		return
	}

	resp, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// List は応募記録の一覧取得を処理する。
// GET /api/jobapplications
func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	results, err := h.service.GetAllByUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	// 空の場合もnullではなく[]を返す
	if results == nil {
		results = []jobapp.Response{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}

// Get は応募記録の詳細取得を処理する。
// GET /api/jobapplications/{id}
func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	id := chi.URLParam(r, "id")

	resp, err := h.service.GetByID(r.Context(), userID, id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if resp == nil {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewApplicationNotFoundError(id))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// Update は応募記録の部分更新を処理する。
// PUT /api/jobapplications/{id}
func (h *ApplicationHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	id := chi.URLParam(r, "id")

	var req jobapp.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, invalidRequestBodyError())
		return
	}

	if err := h.service.Update(r.Context(), userID, id, req); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete は応募記録の削除を処理する。
// DELETE /api/jobapplications/{id}
func (h *ApplicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListEvents は応募記録の遷移イベント一覧取得を処理する。
// GET /api/jobapplications/{id}/events
func (h *ApplicationHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	id := chi.URLParam(r, "id")

	events, err := h.service.ListEvents(r.Context(), userID, id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if events == nil {
		events = []jobapp.EventResponse{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(events)
}

// --- ヘルパー関数 ---

// writeAPIErrorResponse は統一エラーフォーマットでエラーレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(apiErrorResponse{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	})
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
// バリデーションエラーは400でメッセージリスト、APIErrorはコードに応じたステータス、
// それ以外は詳細をログに残して500を返す。
func handleServiceError(w http.ResponseWriter, err error) {
	var valErr *model.ValidationError
	if errors.As(err, &valErr) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrorResponse{Errors: valErr.Errors})
		return
	}

	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		writeAPIErrorResponse(w, mapAPIErrorToHTTPStatus(apiErr), apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	writeAPIErrorResponse(w, http.StatusInternalServerError, &model.APIError{
		Code:     "INTERNAL_ERROR",
		Message:  "内部エラーが発生しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	})
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeApplicationNotFound, model.ErrCodeUserNotFound:
		return http.StatusNotFound
	case model.ErrCodeDuplicateUser:
		return http.StatusBadRequest
	case model.ErrCodeInvalidCredentials, model.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
