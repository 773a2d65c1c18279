package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/foundermatch/internal/middleware"
	"github.com/hitoshi/foundermatch/internal/model"
	"github.com/hitoshi/foundermatch/internal/profile"
)

// ProfileServiceInterface はプロフィールハンドラーが必要とするサービスインターフェース。
type ProfileServiceInterface interface {
	// GetProfile は指定ユーザーのプロフィールを返す。
	GetProfile(ctx context.Context, userID string) (*profileResponse, error)
	// UpdateProfile は自分のプロフィールを検証・保存して返す。
	UpdateProfile(ctx context.Context, userID string, input profile.UpdateInput) (*profileResponse, error)
}

// ProfileHandler は創業者プロフィールのHTTPハンドラー。
type ProfileHandler struct {
	service ProfileServiceInterface
}

// NewProfileHandler はProfileHandlerを生成する。
func NewProfileHandler(service ProfileServiceInterface) *ProfileHandler {
	return &ProfileHandler{
		service: service,
	}
}

// profileResponse は創業者プロフィールのAPIレスポンス。
type profileResponse struct {
	UserID                string    `json:"user_id"`
	DisplayName           string    `json:"display_name"`
	AvatarURL             string    `json:"avatar_url,omitempty"`
	Headline              string    `json:"headline,omitempty"`
	Bio                   string    `json:"bio,omitempty"`
	Roles                 []string  `json:"roles"`
	Skills                []string  `json:"skills"`
	Industries            []string  `json:"industries"`
	Commitment            string    `json:"commitment,omitempty"`
	IdeaStage             string    `json:"idea_stage,omitempty"`
	Country               string    `json:"country,omitempty"`
	City                  string    `json:"city,omitempty"`
	Languages             []string  `json:"languages"`
	LookingForRoles       []string  `json:"looking_for_roles"`
	LookingForDescription string    `json:"looking_for_description,omitempty"`
	EcosystemTags         []string  `json:"ecosystem_tags"`
	IsActivelyLooking     bool      `json:"is_actively_looking"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// profileUpdateRequest はプロフィール更新リクエストのボディ。
type profileUpdateRequest struct {
	DisplayName           string   `json:"display_name"`
	AvatarURL             string   `json:"avatar_url"`
	Headline              string   `json:"headline"`
	Bio                   string   `json:"bio"`
	Roles                 []string `json:"roles"`
	Skills                []string `json:"skills"`
	Industries            []string `json:"industries"`
	Commitment            string   `json:"commitment"`
	IdeaStage             string   `json:"idea_stage"`
	Country               string   `json:"country"`
	City                  string   `json:"city"`
	Languages             []string `json:"languages"`
	LookingForRoles       []string `json:"looking_for_roles"`
	LookingForDescription string   `json:"looking_for_description"`
	EcosystemTags         []string `json:"ecosystem_tags"`
	IsActivelyLooking     bool     `json:"is_actively_looking"`
}

// GetMyProfile は自分のプロフィールを取得する。
// GET /api/profiles/me
func (h *ProfileHandler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
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

	p, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

// UpdateMyProfile は自分のプロフィールを作成または更新する。
// PUT /api/profiles/me
func (h *ProfileHandler) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
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

	var req profileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     "INVALID_REQUEST",
			Message:  "リクエストボディの解析に失敗しました。",
			Category: "validation",
			Action:   "正しいJSON形式でリクエストしてください。",
		})
		return
	}

	p, err := h.service.UpdateProfile(r.Context(), userID, profile.UpdateInput{
		DisplayName:           req.DisplayName,
		AvatarURL:             req.AvatarURL,
		Headline:              req.Headline,
		Bio:                   req.Bio,
		Roles:                 req.Roles,
		Skills:                req.Skills,
		Industries:            req.Industries,
		Commitment:            req.Commitment,
		IdeaStage:             req.IdeaStage,
		Country:               req.Country,
		City:                  req.City,
		Languages:             req.Languages,
		LookingForRoles:       req.LookingForRoles,
		LookingForDescription: req.LookingForDescription,
		EcosystemTags:         req.EcosystemTags,
		IsActivelyLooking:     req.IsActivelyLooking,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

// GetProfileByID は指定ユーザーのプロフィールを取得する。
// GET /api/profiles/:userID
func (h *ProfileHandler) GetProfileByID(w http.ResponseWriter, r *http.Request) {
	_, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, &model.APIError{
			Code:     "UNAUTHORIZED",
			Message:  "認証が必要です。",
			Category: "auth",
			Action:   "ログインしてください。",
		})
		return
	}

	targetUserID := chi.URLParam(r, "userID")

	p, err := h.service.GetProfile(r.Context(), targetUserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}
