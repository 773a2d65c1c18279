// Package profile は創業者プロフィール管理のドメインロジックを提供する。
package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hitoshi/foundermatch/internal/model"
	"github.com/hitoshi/foundermatch/internal/repository"
	"github.com/hitoshi/foundermatch/internal/security"
)

// UpdateInput はプロフィール更新リクエストのドメイン入力。
// 集合フィールドは重複除去と正規化を経て保存される。
type UpdateInput struct {
	DisplayName           string
	AvatarURL             string
	Headline              string
	Bio                   string
	Roles                 []string
	Skills                []string
	Industries            []string
	Commitment            string
	IdeaStage             string
	Country               string
	City                  string
	Languages             []string
	LookingForRoles       []string
	LookingForDescription string
	EcosystemTags         []string
	IsActivelyLooking     bool
}

// Service は創業者プロフィール管理のサービス層。
// プロフィールの取得・更新と入力正規化のビジネスロジックを提供する。
type Service struct {
	profileRepo     repository.ProfileRepository
	sanitizer       security.ProfileSanitizerService
	avatarValidator security.AvatarURLValidatorService
	now             func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	profileRepo repository.ProfileRepository,
	sanitizer security.ProfileSanitizerService,
	avatarValidator security.AvatarURLValidatorService,
) *Service {
	return &Service{
		profileRepo:     profileRepo,
		sanitizer:       sanitizer,
		avatarValidator: avatarValidator,
		now:             time.Now,
	}
}

// GetProfile は指定ユーザーのプロフィールを取得する。
// プロフィールが存在しない場合はPROFILE_NOT_FOUNDエラーを返す。
func (s *Service) GetProfile(ctx context.Context, userID string) (*model.FounderProfile, error) {
	p, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("プロフィールの取得に失敗しました: %w", err)
	}
	if p == nil {
		return nil, model.NewProfileNotFoundError()
	}
	return p, nil
}

// UpdateProfile は自分のプロフィールを検証・正規化して保存し、保存後の値を返す。
// 列挙値の検証に失敗した場合はvalidationカテゴリのAPIErrorを返す。
// 自由入力テキストは保存前にサニタイズされる。
// 初回呼び出しではプロフィールが新規作成される（UPSERT）。
func (s *Service) UpdateProfile(ctx context.Context, userID string, input UpdateInput) (*model.FounderProfile, error) {
	roles, err := normalizeRoles(input.Roles)
	if err != nil {
		return nil, err
	}
	lookingFor, err := normalizeRoles(input.LookingForRoles)
	if err != nil {
		return nil, err
	}

	commitment := model.Commitment(strings.TrimSpace(input.Commitment))
	if !commitment.IsValid() {
		return nil, model.NewInvalidCommitmentError(input.Commitment)
	}
	stage := model.IdeaStage(strings.TrimSpace(input.IdeaStage))
	if !stage.IsValid() {
		return nil, model.NewInvalidIdeaStageError(input.IdeaStage)
	}

	existing, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("既存プロフィールの取得に失敗しました: %w", err)
	}

	// アバターURLは静的検証に通らない場合は保存しない。
	// javascript:スキームや内部ネットワークを指すURLの混入を防ぐ。
	avatarURL := strings.TrimSpace(input.AvatarURL)
	if avatarURL != "" && s.avatarValidator.ValidateURL(avatarURL) != nil {
		avatarURL = ""
	}

	now := s.now()
	p := &model.FounderProfile{
		UserID:                userID,
		DisplayName:           s.sanitizer.Sanitize(input.DisplayName),
		AvatarURL:             avatarURL,
		Headline:              s.sanitizer.Sanitize(input.Headline),
		Bio:                   s.sanitizer.Sanitize(input.Bio),
		Roles:                 roles,
		Skills:                normalizeSet(input.Skills, false),
		Industries:            normalizeSet(input.Industries, true),
		Commitment:            commitment,
		IdeaStage:             stage,
		Country:               strings.ToUpper(strings.TrimSpace(input.Country)),
		City:                  strings.TrimSpace(input.City),
		Languages:             normalizeSet(input.Languages, true),
		LookingForRoles:       lookingFor,
		LookingForDescription: s.sanitizer.Sanitize(input.LookingForDescription),
		EcosystemTags:         normalizeSet(input.EcosystemTags, true),
		IsActivelyLooking:     input.IsActivelyLooking,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if existing != nil {
		p.CreatedAt = existing.CreatedAt
	}

	if err := s.profileRepo.Upsert(ctx, p); err != nil {
		return nil, fmt.Errorf("プロフィールの保存に失敗しました: %w", err)
	}
	return p, nil
}

// normalizeRoles は役割タグの入力列を検証し、重複を除去して返す。
// 先頭の役割が主たる役割として扱われるため、初出順を維持する。
func normalizeRoles(values []string) ([]model.RoleTag, error) {
	seen := make(map[model.RoleTag]bool, len(values))
	var roles []model.RoleTag
	for _, v := range values {
		role := model.RoleTag(strings.ToLower(strings.TrimSpace(v)))
		if role == "" {
			continue
		}
		if !role.IsValid() {
			return nil, model.NewInvalidRoleError(v)
		}
		if seen[role] {
			continue
		}
		seen[role] = true
		roles = append(roles, role)
	}
	return roles, nil
}

// normalizeSet は集合フィールドの入力列をトリムし、重複を除去して返す。
// lowerがtrueの場合は小文字に統一する（業界・言語など照合に使う集合）。
func normalizeSet(values []string, lower bool) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if lower {
			v = strings.ToLower(v)
		}
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
