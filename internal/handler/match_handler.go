// Package handler はHTTP APIハンドラーを提供する。
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/foundermatch/internal/middleware"
	"github.com/hitoshi/foundermatch/internal/model"
)

// MatchServiceInterface はマッチハンドラーが必要とするサービスインターフェース。
type MatchServiceInterface interface {
	// RefreshMatches はマッチ候補を再計算して上位候補を返す。
	RefreshMatches(ctx context.Context, userID string) ([]matchCandidateResponse, error)
	// Pass は指定相手とのマッチを見送る。
	Pass(ctx context.Context, userID, otherUserID string) error
	// Unpass は見送り済みマッチの見送りを取り消す。
	Unpass(ctx context.Context, userID, otherUserID string) error
	// Save は指定相手とのマッチを保存（active化）する。
	Save(ctx context.Context, userID, otherUserID string) error
	// ListSaved は保存済みマッチの一覧を返す。
	ListSaved(ctx context.Context, userID string) ([]savedMatchResponse, error)
}

// MatchHandler はマッチングのHTTPハンドラー。
type MatchHandler struct {
	service MatchServiceInterface
}

// NewMatchHandler はMatchHandlerを生成する。
func NewMatchHandler(service MatchServiceInterface) *MatchHandler {
	return &MatchHandler{
		service: service,
	}
}

// profileSummaryResponse は候補一覧に埋め込むプロフィール投影のAPIレスポンス。
// 内部管理用フィールド（is_actively_looking、作成・更新日時）は含めない。
type profileSummaryResponse struct {
	UserID                string   `json:"user_id"`
	DisplayName           string   `json:"display_name"`
	AvatarURL             string   `json:"avatar_url,omitempty"`
	Headline              string   `json:"headline,omitempty"`
	Bio                   string   `json:"bio,omitempty"`
	Roles                 []string `json:"roles"`
	Skills                []string `json:"skills"`
	Industries            []string `json:"industries"`
	Commitment            string   `json:"commitment,omitempty"`
	IdeaStage             string   `json:"idea_stage,omitempty"`
	Country               string   `json:"country,omitempty"`
	City                  string   `json:"city,omitempty"`
	Languages             []string `json:"languages"`
	LookingForRoles       []string `json:"looking_for_roles"`
	LookingForDescription string   `json:"looking_for_description,omitempty"`
	EcosystemTags         []string `json:"ecosystem_tags"`
}

// matchCandidateResponse は順位付けされたマッチ候補のAPIレスポンス。
type matchCandidateResponse struct {
	Profile        profileSummaryResponse `json:"profile"`
	Score          int                    `json:"score"`
	ScoreBreakdown model.ScoreBreakdown   `json:"score_breakdown"`
	Reasons        []string               `json:"reasons"`
	Status         string                 `json:"status"`
}

// savedMatchResponse は保存済みマッチのAPIレスポンス。
type savedMatchResponse struct {
	Partner        profileSummaryResponse `json:"partner"`
	Score          int                    `json:"score"`
	ScoreBreakdown model.ScoreBreakdown   `json:"score_breakdown"`
	Status         string                 `json:"status"`
	LastComputedAt time.Time              `json:"last_computed_at"`
}

// matchListResponse はマッチ再計算エンドポイントのレスポンスボディ。
type matchListResponse struct {
	Matches []matchCandidateResponse `json:"matches"`
	Count   int                      `json:"count"`
}

// savedListResponse は保存済みマッチ一覧エンドポイントのレスポンスボディ。
type savedListResponse struct {
	Saved []savedMatchResponse `json:"saved"`
	Count int                  `json:"count"`
}

// RefreshMatches はマッチ候補を再計算して上位候補を返す。
// GET /api/matches
func (h *MatchHandler) RefreshMatches(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, &model.APIError{
			Code:     "UNAUTHORIZED",
			Message:  "認証が必要です。",
			Category: "auth",
			Action:   "ログインしてください。",
		})
		return
	}

	candidates, err := h.service.RefreshMatches(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if candidates == nil {
		candidates = []matchCandidateResponse{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(matchListResponse{
		Matches: candidates,
		Count:   len(candidates),
	})
}

// Pass は指定相手とのマッチを見送る。
// POST /api/matches/:userID/pass
func (h *MatchHandler) Pass(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, &model.APIError{
			Code:     "UNAUTHORIZED",
			Message:  "認証が必要です。",
			Category: "auth",
			Action:   "ログインしてください。",
		})
		return
	}

	otherUserID := chi.URLParam(r, "userID")

	if err := h.service.Pass(r.Context(), userID, otherUserID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Unpass は見送り済みマッチの見送りを取り消す。
// POST /api/matches/:userID/unpass
func (h *MatchHandler) Unpass(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, &model.APIError{
			Code:     "UNAUTHORIZED",
			Message:  "認証が必要です。",
			Category: "auth",
			Action:   "ログインしてください。",
		})
		return
	}

	otherUserID := chi.URLParam(r, "userID")

	if err := h.service.Unpass(r.Context(), userID, otherUserID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Save は指定相手とのマッチを保存する。
// POST /api/matches/:userID/save
func (h *MatchHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, &model.APIError{
			Code:     "UNAUTHORIZED",
			Message:  "認証が必要です。",
			Category: "auth",
			Action:   "ログインしてください。",
		})
		return
	}

	otherUserID := chi.URLParam(r, "userID")

	if err := h.service.Save(r.Context(), userID, otherUserID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListSaved は保存済みマッチの一覧を取得する。
// GET /api/matches/saved
func (h *MatchHandler) ListSaved(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, &model.APIError{
			Code:     "UNAUTHORIZED",
			Message:  "認証が必要です。",
			Category: "auth",
			Action:   "ログインしてください。",
		})
		return
	}

	saved, err := h.service.ListSaved(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if saved == nil {
		saved = []savedMatchResponse{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(savedListResponse{
		Saved: saved,
		Count: len(saved),
	})
}

// apiErrorResponse はAPIエラーレスポンスの統一フォーマット。
type apiErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

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
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		statusCode := mapAPIErrorToHTTPStatus(apiErr)
		writeAPIErrorResponse(w, statusCode, apiErr)
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
	case model.ErrCodeProfileNotFound, model.ErrCodeMatchNotFound:
		return http.StatusNotFound
	case model.ErrCodeInvalidRole, model.ErrCodeInvalidCommitment, model.ErrCodeInvalidIdeaStage:
		return http.StatusBadRequest
	case model.ErrCodeSelfMatch:
		return http.StatusBadRequest
	case model.ErrCodeInvalidTransition:
		return http.StatusConflict
	case model.ErrCodeUpstream:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
