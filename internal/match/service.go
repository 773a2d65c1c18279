// Package match はマッチ候補の計算・順位付け・ステータス管理のドメインロジックを提供する。
package match

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/foundermatch/internal/metrics"
	"github.com/hitoshi/foundermatch/internal/model"
	"github.com/hitoshi/foundermatch/internal/repository"
	"github.com/hitoshi/foundermatch/internal/scoring"
)

// RankedCandidate は順位付けされたマッチ候補を表す。
// スコア降順、同点時は候補者ID昇順で並ぶ。
type RankedCandidate struct {
	Profile   *model.FounderProfile
	Score     int
	Breakdown model.ScoreBreakdown
	Reasons   []string
	Status    model.MatchStatus
}

// SavedMatch は保存済みマッチ（active）と相手プロフィールの結合を表す。
type SavedMatch struct {
	Record  *model.MatchRecord
	Partner *model.FounderProfile
}

// Service はマッチングのサービス層。
// 候補プールの構築、スコア計算、上位選抜、マッチレコードの永続化、
// およびステータス遷移（見送り・取り消し）のビジネスロジックを提供する。
type Service struct {
	profileRepo repository.ProfileRepository
	connRepo    repository.ConnectionRepository
	matchRepo   repository.MatchRepository
	collector   metrics.MetricsCollector
	logger      *slog.Logger

	topN           int
	maxConcurrency int
	now            func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
// topNは返却する候補の最大数、maxConcurrencyはマッチレコード
// UPSERTの最大並列数。
func NewService(
	profileRepo repository.ProfileRepository,
	connRepo repository.ConnectionRepository,
	matchRepo repository.MatchRepository,
	collector metrics.MetricsCollector,
	logger *slog.Logger,
	topN int,
	maxConcurrency int,
) *Service {
	return &Service{
		profileRepo:    profileRepo,
		connRepo:       connRepo,
		matchRepo:      matchRepo,
		collector:      collector,
		logger:         logger,
		topN:           topN,
		maxConcurrency: maxConcurrency,
		now:            time.Now,
	}
}

// RefreshMatches は指定ユーザーのマッチ候補を再計算して上位候補を返す。
//
// 処理の流れ:
//  1. 本人プロフィールをロードする。未作成の場合はPROFILE_NOT_FOUND。
//  2. 探索中（is_actively_looking）の全プロフィールから本人を除いた候補プールを構築する。
//  3. コネクション申請が存在する相手（ステータス不問）と見送り済みペアの相手を除外する。
//  4. 各候補とのスコアとマッチ理由を計算する。
//  5. スコア降順、同点時は候補者ID昇順で整列し、上位topN件に切り詰める。
//  6. 上位候補のマッチレコードを並列にUPSERTする。既存レコードのステータスは維持される。
//
// UPSERTの部分的な失敗は許容される。失敗はログとメトリクスに記録され、
// 計算済みの順位はそのまま返される。次回の再計算が同じレコードを冪等に更新する。
func (s *Service) RefreshMatches(ctx context.Context, userID string) ([]RankedCandidate, error) {
	start := s.now()

	self, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("本人プロフィールの取得に失敗しました", slog.String("error", err.Error()))
		return nil, model.NewUpstreamError()
	}
	if self == nil {
		return nil, model.NewProfileNotFoundError()
	}

	pool, err := s.profileRepo.ListActivelyLooking(ctx, userID)
	if err != nil {
		s.logger.Error("候補プールの取得に失敗しました", slog.String("error", err.Error()))
		return nil, model.NewUpstreamError()
	}

	excluded, err := s.buildExclusionSet(ctx, userID)
	if err != nil {
		return nil, err
	}

	var ranked []RankedCandidate
	for _, candidate := range pool {
		if candidate.UserID == userID || excluded[candidate.UserID] {
			continue
		}
		score := scoring.ComputeScore(self, candidate)
		ranked = append(ranked, RankedCandidate{
			Profile:   candidate,
			Score:     score.Total,
			Breakdown: score.Breakdown,
			Reasons:   scoring.GenerateReasons(self, candidate),
			Status:    model.MatchStatusPending,
		})
	}

	// スコア降順、同点時は候補者ID昇順。候補者IDは一意のため順序は全順序になる。
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Profile.UserID < ranked[j].Profile.UserID
	})
	if len(ranked) > s.topN {
		ranked = ranked[:s.topN]
	}

	s.persistScores(ctx, userID, ranked)
	s.applyExistingStatuses(ctx, userID, ranked)

	s.collector.RecordMatchRefresh(len(ranked))
	s.collector.RecordScoringLatency(s.now().Sub(start))

	s.logger.Info("マッチ再計算が完了しました",
		slog.String("user_id", userID),
		slog.Int("pool_size", len(pool)),
		slog.Int("result_count", len(ranked)),
	)
	return ranked, nil
}

// buildExclusionSet は候補プールから除外すべきユーザーIDの集合を構築する。
// コネクション申請が存在する相手（ステータス不問）と、見送り済みマッチの相手を含む。
func (s *Service) buildExclusionSet(ctx context.Context, userID string) (map[string]bool, error) {
	connected, err := s.connRepo.ListUserIDsInvolving(ctx, userID)
	if err != nil {
		s.logger.Error("コネクション除外リストの取得に失敗しました", slog.String("error", err.Error()))
		return nil, model.NewUpstreamError()
	}

	passed, err := s.matchRepo.ListInvolving(ctx, userID, model.MatchStatusPassed)
	if err != nil {
		s.logger.Error("見送り済みマッチの取得に失敗しました", slog.String("error", err.Error()))
		return nil, model.NewUpstreamError()
	}

	excluded := make(map[string]bool, len(connected)+len(passed))
	for _, id := range connected {
		excluded[id] = true
	}
	for _, record := range passed {
		excluded[record.Counterpart(userID)] = true
	}
	return excluded, nil
}

// persistScores は上位候補のマッチレコードをsemaphoreパターンで並列にUPSERTする。
// 個別の失敗はログとメトリクスに記録し、処理は継続する。
func (s *Service) persistScores(ctx context.Context, userID string, ranked []RankedCandidate) {
	sem := make(chan struct{}, s.maxConcurrency)
	var wg sync.WaitGroup

	for _, candidate := range ranked {
		wg.Add(1)
		sem <- struct{}{} // semaphore取得（ブロック）

		go func(c RankedCandidate) {
			defer wg.Done()
			defer func() { <-sem }() // semaphore解放

			userA, userB := model.NormalizePair(userID, c.Profile.UserID)
			record := &model.MatchRecord{
				ID:             uuid.NewString(),
				UserA:          userA,
				UserB:          userB,
				Score:          c.Score,
				ScoreBreakdown: c.Breakdown,
				LastComputedAt: s.now(),
			}
			if err := s.matchRepo.UpsertScore(ctx, record); err != nil {
				s.collector.RecordMatchUpsertFailure()
				s.logger.Error("マッチレコードのUPSERTに失敗しました",
					slog.String("user_a", userA),
					slog.String("user_b", userB),
					slog.String("error", err.Error()),
				)
			}
		}(candidate)
	}

	wg.Wait()
}

// applyExistingStatuses は保存済みレコードのステータスを順位付け結果に反映する。
// UPSERTはステータスを上書きしないため、activeなマッチはactiveのまま表示される。
func (s *Service) applyExistingStatuses(ctx context.Context, userID string, ranked []RankedCandidate) {
	records, err := s.matchRepo.ListInvolving(ctx, userID, "")
	if err != nil {
		// ステータス反映は表示上の補助であり、順位付け結果自体は有効
		s.logger.Warn("マッチステータスの取得に失敗しました",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return
	}

	statusByPartner := make(map[string]model.MatchStatus, len(records))
	for _, record := range records {
		statusByPartner[record.Counterpart(userID)] = record.Status
	}
	for i := range ranked {
		if status, ok := statusByPartner[ranked[i].Profile.UserID]; ok {
			ranked[i].Status = status
		}
	}
}

// Pass は指定相手とのマッチを見送る。
// 見送られたペアは以後のマッチ再計算で候補プールから除外される。
// 既に見送り済みの場合は何もせず成功を返す（冪等）。
func (s *Service) Pass(ctx context.Context, userID, otherUserID string) error {
	if userID == otherUserID {
		return model.NewSelfMatchError()
	}

	record, err := s.matchRepo.FindByPair(ctx, userID, otherUserID)
	if err != nil {
		return fmt.Errorf("マッチレコードの取得に失敗しました: %w", err)
	}
	if record == nil {
		return model.NewMatchNotFoundError(otherUserID)
	}
	if record.Status == model.MatchStatusPassed {
		return nil
	}

	if err := s.matchRepo.UpdateStatus(ctx, userID, otherUserID, model.MatchStatusPassed); err != nil {
		return fmt.Errorf("マッチの見送りに失敗しました: %w", err)
	}

	s.collector.RecordStatusChange(string(model.MatchStatusPassed))
	s.logger.Info("マッチを見送りました",
		slog.String("user_id", userID),
		slog.String("other_user_id", otherUserID),
	)
	return nil
}

// Unpass は見送り済みマッチの見送りを取り消し、ステータスをactiveに戻す。
// 見送り済み以外のステータスからの取り消しはINVALID_STATUS_TRANSITIONエラーを返す。
func (s *Service) Unpass(ctx context.Context, userID, otherUserID string) error {
	if userID == otherUserID {
		return model.NewSelfMatchError()
	}

	record, err := s.matchRepo.FindByPair(ctx, userID, otherUserID)
	if err != nil {
		return fmt.Errorf("マッチレコードの取得に失敗しました: %w", err)
	}
	if record == nil {
		return model.NewMatchNotFoundError(otherUserID)
	}
	if record.Status != model.MatchStatusPassed {
		return model.NewInvalidTransitionError(record.Status)
	}

	if err := s.matchRepo.UpdateStatus(ctx, userID, otherUserID, model.MatchStatusActive); err != nil {
		return fmt.Errorf("見送りの取り消しに失敗しました: %w", err)
	}

	s.collector.RecordStatusChange(string(model.MatchStatusActive))
	s.logger.Info("マッチの見送りを取り消しました",
		slog.String("user_id", userID),
		slog.String("other_user_id", otherUserID),
	)
	return nil
}

// Save は指定相手とのマッチに関心を示し、ステータスをactiveに変更する。
// 見送り済みマッチはSaveできない。先にUnpassで取り消す必要がある。
func (s *Service) Save(ctx context.Context, userID, otherUserID string) error {
	if userID == otherUserID {
		return model.NewSelfMatchError()
	}

	record, err := s.matchRepo.FindByPair(ctx, userID, otherUserID)
	if err != nil {
		return fmt.Errorf("マッチレコードの取得に失敗しました: %w", err)
	}
	if record == nil {
		return model.NewMatchNotFoundError(otherUserID)
	}
	if record.Status == model.MatchStatusActive {
		return nil
	}
	if record.Status == model.MatchStatusPassed {
		return model.NewInvalidTransitionError(record.Status)
	}

	if err := s.matchRepo.UpdateStatus(ctx, userID, otherUserID, model.MatchStatusActive); err != nil {
		return fmt.Errorf("マッチの保存に失敗しました: %w", err)
	}

	s.collector.RecordStatusChange(string(model.MatchStatusActive))
	return nil
}

// ListSaved は保存済み（active）マッチの一覧を相手プロフィール付きで返す。
// スコア降順で返す。相手プロフィールが削除済みの場合はその項目をスキップする。
func (s *Service) ListSaved(ctx context.Context, userID string) ([]SavedMatch, error) {
	records, err := s.matchRepo.ListInvolving(ctx, userID, model.MatchStatusActive)
	if err != nil {
		return nil, fmt.Errorf("保存済みマッチの取得に失敗しました: %w", err)
	}

	var saved []SavedMatch
	for _, record := range records {
		partnerID := record.Counterpart(userID)
		partner, err := s.profileRepo.FindByUserID(ctx, partnerID)
		if err != nil {
			return nil, fmt.Errorf("相手プロフィールの取得に失敗しました: %w", err)
		}
		if partner == nil {
			continue
		}
		saved = append(saved, SavedMatch{Record: record, Partner: partner})
	}
	return saved, nil
}
