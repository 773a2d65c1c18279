package handler

import (
	"context"

	"github.com/hitoshi/foundermatch/internal/match"
	"github.com/hitoshi/foundermatch/internal/model"
	"github.com/hitoshi/foundermatch/internal/profile"
)

// MatchServiceAdapter は match.Service を MatchServiceInterface に適合させるアダプタ。
type MatchServiceAdapter struct {
	svc *match.Service
}

// NewMatchServiceAdapter はMatchServiceAdapterを生成する。
func NewMatchServiceAdapter(svc *match.Service) *MatchServiceAdapter {
	return &MatchServiceAdapter{svc: svc}
}

// RefreshMatches はマッチ候補を再計算しhandlerレスポンス型で返す。
func (a *MatchServiceAdapter) RefreshMatches(ctx context.Context, userID string) ([]matchCandidateResponse, error) {
	ranked, err := a.svc.RefreshMatches(ctx, userID)
	if err != nil {
		return nil, err
	}

	results := make([]matchCandidateResponse, len(ranked))
	for i, c := range ranked {
		results[i] = matchCandidateResponse{
			Profile:        toProfileSummaryResponse(c.Profile),
			Score:          c.Score,
			ScoreBreakdown: c.Breakdown,
			Reasons:        c.Reasons,
			Status:         string(c.Status),
		}
	}
	return results, nil
}

// Pass は指定相手とのマッチを見送る。
func (a *MatchServiceAdapter) Pass(ctx context.Context, userID, otherUserID string) error {
	return a.svc.Pass(ctx, userID, otherUserID)
}

// Unpass は見送り済みマッチの見送りを取り消す。
func (a *MatchServiceAdapter) Unpass(ctx context.Context, userID, otherUserID string) error {
	return a.svc.Unpass(ctx, userID, otherUserID)
}

// Save は指定相手とのマッチを保存する。
func (a *MatchServiceAdapter) Save(ctx context.Context, userID, otherUserID string) error {
	return a.svc.Save(ctx, userID, otherUserID)
}

// ListSaved は保存済みマッチの一覧をhandlerレスポンス型で返す。
func (a *MatchServiceAdapter) ListSaved(ctx context.Context, userID string) ([]savedMatchResponse, error) {
	saved, err := a.svc.ListSaved(ctx, userID)
	if err != nil {
		return nil, err
	}

	results := make([]savedMatchResponse, len(saved))
	for i, s := range saved {
		results[i] = savedMatchResponse{
			Partner:        toProfileSummaryResponse(s.Partner),
			Score:          s.Record.Score,
			ScoreBreakdown: s.Record.ScoreBreakdown,
			Status:         string(s.Record.Status),
			LastComputedAt: s.Record.LastComputedAt,
		}
	}
	return results, nil
}

// ProfileServiceAdapter は profile.Service を ProfileServiceInterface に適合させるアダプタ。
type ProfileServiceAdapter struct {
	svc *profile.Service
}

// NewProfileServiceAdapter はProfileServiceAdapterを生成する。
func NewProfileServiceAdapter(svc *profile.Service) *ProfileServiceAdapter {
	return &ProfileServiceAdapter{svc: svc}
}

// GetProfile は指定ユーザーのプロフィールをhandlerレスポンス型で返す。
func (a *ProfileServiceAdapter) GetProfile(ctx context.Context, userID string) (*profileResponse, error) {
	p, err := a.svc.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := toProfileResponse(p)
	return &resp, nil
}

// UpdateProfile は自分のプロフィールを保存しhandlerレスポンス型で返す。
func (a *ProfileServiceAdapter) UpdateProfile(ctx context.Context, userID string, input profile.UpdateInput) (*profileResponse, error) {
	p, err := a.svc.UpdateProfile(ctx, userID, input)
	if err != nil {
		return nil, err
	}
	resp := toProfileResponse(p)
	return &resp, nil
}

// toProfileSummaryResponse はドメインのプロフィールをhandlerの投影レスポンス型に変換する。
// 内部管理用フィールドは写さない。
func toProfileSummaryResponse(p *model.FounderProfile) profileSummaryResponse {
	return profileSummaryResponse{
		UserID:                p.UserID,
		DisplayName:           p.DisplayName,
		AvatarURL:             p.AvatarURL,
		Headline:              p.Headline,
		Bio:                   p.Bio,
		Roles:                 roleTagStrings(p.Roles),
		Skills:                emptyIfNil(p.Skills),
		Industries:            emptyIfNil(p.Industries),
		Commitment:            string(p.Commitment),
		IdeaStage:             string(p.IdeaStage),
		Country:               p.Country,
		City:                  p.City,
		Languages:             emptyIfNil(p.Languages),
		LookingForRoles:       roleTagStrings(p.LookingForRoles),
		LookingForDescription: p.LookingForDescription,
		EcosystemTags:         emptyIfNil(p.EcosystemTags),
	}
}

// toProfileResponse はドメインのプロフィールをhandlerのレスポンス型に変換する。
func toProfileResponse(p *model.FounderProfile) profileResponse {
	return profileResponse{
		UserID:                p.UserID,
		DisplayName:           p.DisplayName,
		AvatarURL:             p.AvatarURL,
		Headline:              p.Headline,
		Bio:                   p.Bio,
		Roles:                 roleTagStrings(p.Roles),
		Skills:                emptyIfNil(p.Skills),
		Industries:            emptyIfNil(p.Industries),
		Commitment:            string(p.Commitment),
		IdeaStage:             string(p.IdeaStage),
		Country:               p.Country,
		City:                  p.City,
		Languages:             emptyIfNil(p.Languages),
		LookingForRoles:       roleTagStrings(p.LookingForRoles),
		LookingForDescription: p.LookingForDescription,
		EcosystemTags:         emptyIfNil(p.EcosystemTags),
		IsActivelyLooking:     p.IsActivelyLooking,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

// roleTagStrings は役割タグのスライスをJSON出力用の文字列スライスに変換する。
// nilの場合も空配列として出力されるよう長さ0のスライスを返す。
func roleTagStrings(roles []model.RoleTag) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

// emptyIfNil はnilスライスをJSONでnullでなく[]として出力するための変換。
func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
