package match

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/hitoshi/foundermatch/internal/model"
)

// --- モック ---

type mockProfileRepo struct {
	findByUserIDFn        func(ctx context.Context, userID string) (*model.FounderProfile, error)
	listActivelyLookingFn func(ctx context.Context, excludeUserID string) ([]*model.FounderProfile, error)
}

func (m *mockProfileRepo) FindByUserID(ctx context.Context, userID string) (*model.FounderProfile, error) {
	if m.findByUserIDFn != nil {
		return m.findByUserIDFn(ctx, userID)
	}
	return nil, nil
}
func (m *mockProfileRepo) ListActivelyLooking(ctx context.Context, excludeUserID string) ([]*model.FounderProfile, error) {
	if m.listActivelyLookingFn != nil {
		return m.listActivelyLookingFn(ctx, excludeUserID)
	}
	return nil, nil
}
func (m *mockProfileRepo) Upsert(ctx context.Context, p *model.FounderProfile) error {
	return nil
}

type mockConnRepo struct {
	listUserIDsInvolvingFn func(ctx context.Context, userID string) ([]string, error)
}

func (m *mockConnRepo) ListUserIDsInvolving(ctx context.Context, userID string) ([]string, error) {
	if m.listUserIDsInvolvingFn != nil {
		return m.listUserIDsInvolvingFn(ctx, userID)
	}
	return nil, nil
}

type mockMatchRepo struct {
	mu       sync.Mutex
	upserted []*model.MatchRecord

	findByPairFn    func(ctx context.Context, userX, userY string) (*model.MatchRecord, error)
	listInvolvingFn func(ctx context.Context, userID string, statusFilter model.MatchStatus) ([]*model.MatchRecord, error)
	upsertScoreFn   func(ctx context.Context, record *model.MatchRecord) error
	updateStatusFn  func(ctx context.Context, userX, userY string, status model.MatchStatus) error
}

func (m *mockMatchRepo) FindByPair(ctx context.Context, userX, userY string) (*model.MatchRecord, error) {
	if m.findByPairFn != nil {
		return m.findByPairFn(ctx, userX, userY)
	}
	return nil, nil
}
func (m *mockMatchRepo) ListInvolving(ctx context.Context, userID string, statusFilter model.MatchStatus) ([]*model.MatchRecord, error) {
	if m.listInvolvingFn != nil {
		return m.listInvolvingFn(ctx, userID, statusFilter)
	}
	return nil, nil
}
func (m *mockMatchRepo) UpsertScore(ctx context.Context, record *model.MatchRecord) error {
	if m.upsertScoreFn != nil {
		if err := m.upsertScoreFn(ctx, record); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserted = append(m.upserted, record)
	return nil
}
func (m *mockMatchRepo) UpdateStatus(ctx context.Context, userX, userY string, status model.MatchStatus) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, userX, userY, status)
	}
	return nil
}

func (m *mockMatchRepo) upsertedRecords() []*model.MatchRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.MatchRecord, len(m.upserted))
	copy(out, m.upserted)
	return out
}

// nopCollector はメトリクスを破棄するテスト用実装。
type nopCollector struct{}

func (nopCollector) RecordMatchRefresh(candidateCount int)       {}
func (nopCollector) RecordScoringLatency(duration time.Duration) {}
func (nopCollector) RecordMatchUpsertFailure()                   {}
func (nopCollector) RecordStatusChange(status string)            {}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(profileRepo *mockProfileRepo, connRepo *mockConnRepo, matchRepo *mockMatchRepo) *Service {
	return NewService(profileRepo, connRepo, matchRepo, nopCollector{}, testLogger(), 20, 4)
}

// fullProfile は全スコア要因で一致するプロフィールを生成するテストヘルパー。
func fullProfile(userID string, roles ...model.RoleTag) *model.FounderProfile {
	if len(roles) == 0 {
		roles = []model.RoleTag{model.RoleTechnical}
	}
	return &model.FounderProfile{
		UserID:            userID,
		DisplayName:       "テストユーザー " + userID,
		Roles:             roles,
		Industries:        []string{"fintech"},
		Commitment:        model.CommitmentFullTime,
		IdeaStage:         model.StageHaveIdea,
		Country:           "JP",
		City:              "Tokyo",
		Languages:         []string{"japanese", "english"},
		IsActivelyLooking: true,
	}
}

// プロフィール未作成のユーザーはPROFILE_NOT_FOUNDになることを検証
func TestRefreshMatches_ProfileNotFound(t *testing.T) {
	svc := newTestService(&mockProfileRepo{}, &mockConnRepo{}, &mockMatchRepo{})

	_, err := svc.RefreshMatches(context.Background(), "user-1")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeProfileNotFound {
		t.Errorf("code = %q, want %q", apiErr.Code, model.ErrCodeProfileNotFound)
	}
}

// ストア読み取りの失敗がUPSTREAM_UNAVAILABLEとして返ることを検証
func TestRefreshMatches_StoreReadFailure_ReturnsUpstreamError(t *testing.T) {
	storeErr := errors.New("接続がタイムアウトしました")

	tests := []struct {
		name        string
		profileRepo *mockProfileRepo
		connRepo    *mockConnRepo
		matchRepo   *mockMatchRepo
	}{
		{
			name: "本人プロフィールの読み取り失敗",
			profileRepo: &mockProfileRepo{
				findByUserIDFn: func(ctx context.Context, userID string) (*model.FounderProfile, error) {
					return nil, storeErr
				},
			},
			connRepo:  &mockConnRepo{},
			matchRepo: &mockMatchRepo{},
		},
		{
			name: "候補プールの読み取り失敗",
			profileRepo: &mockProfileRepo{
				findByUserIDFn: func(ctx context.Context, userID string) (*model.FounderProfile, error) {
					return fullProfile(userID), nil
				},
				listActivelyLookingFn: func(ctx context.Context, excludeUserID string) ([]*model.FounderProfile, error) {
					return nil, storeErr
				},
			},
			connRepo:  &mockConnRepo{},
			matchRepo: &mockMatchRepo{},
		},
		{
			name: "コネクション除外リストの読み取り失敗",
			profileRepo: &mockProfileRepo{
				findByUserIDFn: func(ctx context.Context, userID string) (*model.FounderProfile, error) {
					return fullProfile(userID), nil
				},
			},
			connRepo: &mockConnRepo{
				listUserIDsInvolvingFn: func(ctx context.Context, userID string) ([]string, error) {
					return nil, storeErr
				},
			},
			matchRepo: &mockMatchRepo{},
		},
		{
			name: "見送り済みマッチの読み取り失敗",
			profileRepo: &mockProfileRepo{
				findByUserIDFn: func(ctx context.Context, userID string) (*model.FounderProfile, error) {
					return fullProfile(userID), nil
				},
			},
			connRepo: &mockConnRepo{},
			matchRepo: &mockMatchRepo{
				listInvolvingFn: func(ctx context.Context, userID string, statusFilter model.MatchStatus) ([]*model.MatchRecord, error) {
					return nil, storeErr
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(tt.profileRepo, tt.connRepo, tt.matchRepo)

			_, err := svc.RefreshMatches(context.Background(), "user-1")
			var apiErr *model.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.Code != model.ErrCodeUpstream {
				t.Errorf("code = %q, want %q", apiErr.Code, model.ErrCodeUpstream)
			}
		})
	}
}

// 候補がスコア降順で返ることを検証
func TestRefreshMatches_RanksByScoreDescending(t *testing.T) {
	self := fullProfile("user-self", model.RoleTechnical)
	// businessは役割30点、technical同士は5点で順位が分かれる
	profileRepo := &mockProfileRepo{
		findByUserIDFn: func(ctx context.Context, userID string) (*model.FounderProfile, error) {
			if userID == "user-self" {
				return self, nil
			}
			return nil, nil
		},
		listActivelyLookingFn: func(ctx context.Context, excludeUserID string) ([]*model.FounderProfile, error) {
			return []*model.FounderProfile{
				fullProfile("user-tech", model.RoleTechnical),
				fullProfile("user-biz", model.RoleBusiness),
			}, nil
		},
	}
	svc := newTestService(profileRepo, &mockConnRepo{}, &mockMatchRepo{})

	ranked, err := svc.RefreshMatches(context.Background(), "user-self")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("len(ranked) = %d, want 2", len(ranked))
	}
	if ranked[0].Profile.UserID != "user-biz" {
		t.Errorf("top candidate = %q, want user-biz", ranked[0].Profile.UserID)
	}
	if ranked[0].Score <= ranked[1].Score {
		t.Errorf("scores not descending: %d, %d", ranked[0].Score, ranked[1].Score)
	}
	if ranked[0].Score != 100 {
		t.Errorf("top score = %d, want 100", ranked[0].Score)
	}
	if len(ranked[0].Reasons) == 0 || len(ranked[0].Reasons) > 3 {
		t.Errorf("reasons count = %d, want 1..3", len(ranked[0].Reasons))
	}
}

// 同点候補が候補者ID昇順で並ぶことを検証
func TestRefreshMatches_TieBreakByCandidateID(t *testing.T) {
	self := fullProfile("user-self", model.RoleTechnical)
	profileRepo := &mockProfileRepo{
		findByUserIDFn: func(ctx context.Context, userID string) (*model.FounderProfile, error) {
			return self, nil
		},
		listActivelyLookingFn: func(ctx context.Context, excludeUserID string) ([]*model.FounderProfile, error) {
			return []*model.FounderProfile{
				fullProfile("user-c", model.RoleBusiness),
				fullProfile("user-a", model.RoleBusiness),
				fullProfile("user-b", model.RoleBusiness),
			}, nil
		},
	}
	svc := newTestService(profileRepo, &mockConnRepo{}, &mockMatchRepo{})

	ranked, err := svc.RefreshMatches(context.Background(), "user-self")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"user-a", "user-b", "user-c"}
	for i, id := range want {
		if ranked[i].Profile.UserID != id {
			t.Errorf("ranked[%d] = %q, want %q", i, ranked[i].Profile.UserID, id)
		}
	}
}

// コネクション済みと見送り済みの相手が除外されることを検証
func TestRefreshMatches_ExcludesConnectedAndPassed(t *testing.T) {
	self := fullProfile("user-self", model.RoleTechnical)
	profileRepo := &mockProfileRepo{
		findByUserIDFn: func(ctx context.Context, userID string) (*model.FounderProfile, error) {
			return self, nil
		},
		listActivelyLookingFn: func(ctx context.Context, excludeUserID string) ([]*model.FounderProfile, error) {
			return []*model.FounderProfile{
				fullProfile("user-connected", model.RoleBusiness),
				fullProfile("user-passed", model.RoleBusiness),
				fullProfile("user-fresh", model.RoleBusiness),
			}, nil
		},
	}
	connRepo := &mockConnRepo{
		listUserIDsInvolvingFn: func(ctx context.Context, userID string) ([]string, error) {
			return []string{"user-connected"}, nil
		},
	}
	matchRepo := &mockMatchRepo{
		listInvolvingFn: func(ctx context.Context, userID string, statusFilter model.MatchStatus) ([]*model.MatchRecord, error) {
			if statusFilter == model.MatchStatusPassed {
				userA, userB := model.NormalizePair("user-self", "user-passed")
				return []*model.MatchRecord{
					{UserA: userA, UserB: userB, Status: model.MatchStatusPassed},
				}, nil
			}
			return nil, nil
		},
	}
	svc := newTestService(profileRepo, connRepo, matchRepo)

	ranked, err := svc.RefreshMatches(context.Background(), "user-self")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ranked) != 1 {
		t.Fatalf("len(ranked) = %d, want 1", len(ranked))
	}
	if ranked[0].Profile.UserID != "user-fresh" {
		t.Errorf("remaining candidate = %q, want user-fresh", ranked[0].Profile.UserID)
	}
}

// 上位topN件に切り詰められることを検証
func TestRefreshMatches_TruncatesToTopN(t *testing.T) {
	self := fullProfile("user-self", model.RoleTechnical)
	var pool []*model.FounderProfile
	for i := 0; i < 30; i++ {
		pool = append(pool, fullProfile(genUserID(i), model.RoleBusiness))
	}
	profileRepo := &mockProfileRepo{
		findByUserIDFn: func(ctx context.Context, userID string) (*model.FounderProfile, error) {
			return self, nil
		},
		listActivelyLookingFn: func(ctx context.Context, excludeUserID string) ([]*model.FounderProfile, error) {
			return pool, nil
		},
	}
	matchRepo := &mockMatchRepo{}
	svc := newTestService(profileRepo, &mockConnRepo{}, matchRepo)

	ranked, err := svc.RefreshMatches(context.Background(), "user-self")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ranked) != 20 {
		t.Errorf("len(ranked) = %d, want 20", len(ranked))
	}
	if got := len(matchRepo.upsertedRecords()); got != 20 {
		t.Errorf("upserted records = %d, want 20", got)
	}
}

// UPSERTされるレコードのペアが正規化されていることを検証
func TestRefreshMatches_UpsertsNormalizedPairs(t *testing.T) {
	// "zz-self" > "user-biz" なので正規化でuser_bizがuser_aになる
	self := fullProfile("zz-self", model.RoleTechnical)
	profileRepo := &mockProfileRepo{
		findByUserIDFn: func(ctx context.Context, userID string) (*model.FounderProfile, error) {
			return self, nil
		},
		listActivelyLookingFn: func(ctx context.Context, excludeUserID string) ([]*model.FounderProfile, error) {
			return []*model.FounderProfile{fullProfile("user-biz", model.RoleBusiness)}, nil
		},
	}
	matchRepo := &mockMatchRepo{}
	svc := newTestService(profileRepo, &mockConnRepo{}, matchRepo)

	if _, err := svc.RefreshMatches(context.Background(), "zz-self"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records := matchRepo.upsertedRecords()
	if len(records) != 1 {
		t.Fatalf("upserted records = %d, want 1", len(records))
	}
	record := records[0]
	if record.UserA != "user-biz" || record.UserB != "zz-self" {
		t.Errorf("pair = (%q, %q), want (user-biz, zz-self)", record.UserA, record.UserB)
	}
	if record.Score != record.ScoreBreakdown.Sum() {
		t.Errorf("score %d != breakdown sum %d", record.Score, record.ScoreBreakdown.Sum())
	}
	if record.ID == "" {
		t.Error("record ID should be generated")
	}
}

// UPSERTの部分的な失敗があっても順位付け結果が返ることを検証
func TestRefreshMatches_ToleratesUpsertFailure(t *testing.T) {
	self := fullProfile("user-self", model.RoleTechnical)
	profileRepo := &mockProfileRepo{
		findByUserIDFn: func(ctx context.Context, userID string) (*model.FounderProfile, error) {
			return self, nil
		},
		listActivelyLookingFn: func(ctx context.Context, excludeUserID string) ([]*model.FounderProfile, error) {
			return []*model.FounderProfile{
				fullProfile("user-a", model.RoleBusiness),
				fullProfile("user-b", model.RoleBusiness),
			}, nil
		},
	}
	matchRepo := &mockMatchRepo{
		upsertScoreFn: func(ctx context.Context, record *model.MatchRecord) error {
			if record.UserA == "user-a" || record.UserB == "user-a" {
				return errors.New("接続がタイムアウトしました")
			}
			return nil
		},
	}
	svc := newTestService(profileRepo, &mockConnRepo{}, matchRepo)

	ranked, err := svc.RefreshMatches(context.Background(), "user-self")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ranked) != 2 {
		t.Errorf("len(ranked) = %d, want 2 despite upsert failure", len(ranked))
	}
}

// 既存レコードのステータスが結果に反映されることを検証
func TestRefreshMatches_ReflectsExistingStatus(t *testing.T) {
	self := fullProfile("user-self", model.RoleTechnical)
	profileRepo := &mockProfileRepo{
		findByUserIDFn: func(ctx context.Context, userID string) (*model.FounderProfile, error) {
			return self, nil
		},
		listActivelyLookingFn: func(ctx context.Context, excludeUserID string) ([]*model.FounderProfile, error) {
			return []*model.FounderProfile{
				fullProfile("user-active", model.RoleBusiness),
				fullProfile("user-new", model.RoleDesign),
			}, nil
		},
	}
	matchRepo := &mockMatchRepo{
		listInvolvingFn: func(ctx context.Context, userID string, statusFilter model.MatchStatus) ([]*model.MatchRecord, error) {
			if statusFilter == "" {
				userA, userB := model.NormalizePair("user-self", "user-active")
				return []*model.MatchRecord{
					{UserA: userA, UserB: userB, Status: model.MatchStatusActive},
				}, nil
			}
			return nil, nil
		},
	}
	svc := newTestService(profileRepo, &mockConnRepo{}, matchRepo)

	ranked, err := svc.RefreshMatches(context.Background(), "user-self")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	statuses := map[string]model.MatchStatus{}
	for _, c := range ranked {
		statuses[c.Profile.UserID] = c.Status
	}
	if statuses["user-active"] != model.MatchStatusActive {
		t.Errorf("user-active status = %q, want active", statuses["user-active"])
	}
	if statuses["user-new"] != model.MatchStatusPending {
		t.Errorf("user-new status = %q, want pending", statuses["user-new"])
	}
}

// 自分自身の見送りがSELF_MATCHエラーになることを検証
func TestPass_SelfMatch(t *testing.T) {
	svc := newTestService(&mockProfileRepo{}, &mockConnRepo{}, &mockMatchRepo{})

	err := svc.Pass(context.Background(), "user-1", "user-1")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeSelfMatch {
		t.Errorf("code = %q, want %q", apiErr.Code, model.ErrCodeSelfMatch)
	}
}

// レコードのないペアの見送りがMATCH_NOT_FOUNDになることを検証
func TestPass_MatchNotFound(t *testing.T) {
	svc := newTestService(&mockProfileRepo{}, &mockConnRepo{}, &mockMatchRepo{})

	err := svc.Pass(context.Background(), "user-1", "user-2")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeMatchNotFound {
		t.Errorf("code = %q, want %q", apiErr.Code, model.ErrCodeMatchNotFound)
	}
}

// 見送りがステータスをpassedに更新することを検証
func TestPass_UpdatesStatus(t *testing.T) {
	var gotStatus model.MatchStatus
	matchRepo := &mockMatchRepo{
		findByPairFn: func(ctx context.Context, userX, userY string) (*model.MatchRecord, error) {
			return &model.MatchRecord{UserA: "user-1", UserB: "user-2", Status: model.MatchStatusPending}, nil
		},
		updateStatusFn: func(ctx context.Context, userX, userY string, status model.MatchStatus) error {
			gotStatus = status
			return nil
		},
	}
	svc := newTestService(&mockProfileRepo{}, &mockConnRepo{}, matchRepo)

	if err := svc.Pass(context.Background(), "user-1", "user-2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotStatus != model.MatchStatusPassed {
		t.Errorf("status = %q, want passed", gotStatus)
	}
}

// 見送り済みマッチへの見送りが冪等であることを検証
func TestPass_AlreadyPassedIsIdempotent(t *testing.T) {
	updateCalled := false
	matchRepo := &mockMatchRepo{
		findByPairFn: func(ctx context.Context, userX, userY string) (*model.MatchRecord, error) {
			return &model.MatchRecord{UserA: "user-1", UserB: "user-2", Status: model.MatchStatusPassed}, nil
		},
		updateStatusFn: func(ctx context.Context, userX, userY string, status model.MatchStatus) error {
			updateCalled = true
			return nil
		},
	}
	svc := newTestService(&mockProfileRepo{}, &mockConnRepo{}, matchRepo)

	if err := svc.Pass(context.Background(), "user-1", "user-2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updateCalled {
		t.Error("update should not be called for already passed match")
	}
}

// 見送りの取り消しがactiveに戻すことを検証
func TestUnpass_RestoresActive(t *testing.T) {
	var gotStatus model.MatchStatus
	matchRepo := &mockMatchRepo{
		findByPairFn: func(ctx context.Context, userX, userY string) (*model.MatchRecord, error) {
			return &model.MatchRecord{UserA: "user-1", UserB: "user-2", Status: model.MatchStatusPassed}, nil
		},
		updateStatusFn: func(ctx context.Context, userX, userY string, status model.MatchStatus) error {
			gotStatus = status
			return nil
		},
	}
	svc := newTestService(&mockProfileRepo{}, &mockConnRepo{}, matchRepo)

	if err := svc.Unpass(context.Background(), "user-1", "user-2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotStatus != model.MatchStatusActive {
		t.Errorf("status = %q, want active", gotStatus)
	}
}

// 見送り済み以外からの取り消しがINVALID_STATUS_TRANSITIONになることを検証
func TestUnpass_InvalidTransition(t *testing.T) {
	matchRepo := &mockMatchRepo{
		findByPairFn: func(ctx context.Context, userX, userY string) (*model.MatchRecord, error) {
			return &model.MatchRecord{UserA: "user-1", UserB: "user-2", Status: model.MatchStatusPending}, nil
		},
	}
	svc := newTestService(&mockProfileRepo{}, &mockConnRepo{}, matchRepo)

	err := svc.Unpass(context.Background(), "user-1", "user-2")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeInvalidTransition {
		t.Errorf("code = %q, want %q", apiErr.Code, model.ErrCodeInvalidTransition)
	}
}

// 見送り済みマッチの保存がINVALID_STATUS_TRANSITIONになることを検証
func TestSave_PassedMatchRejected(t *testing.T) {
	matchRepo := &mockMatchRepo{
		findByPairFn: func(ctx context.Context, userX, userY string) (*model.MatchRecord, error) {
			return &model.MatchRecord{UserA: "user-1", UserB: "user-2", Status: model.MatchStatusPassed}, nil
		},
	}
	svc := newTestService(&mockProfileRepo{}, &mockConnRepo{}, matchRepo)

	err := svc.Save(context.Background(), "user-1", "user-2")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeInvalidTransition {
		t.Errorf("code = %q, want %q", apiErr.Code, model.ErrCodeInvalidTransition)
	}
}

// 保存済みマッチ一覧が相手プロフィール付きで返ることを検証
func TestListSaved_ReturnsPartnerProfiles(t *testing.T) {
	profileRepo := &mockProfileRepo{
		findByUserIDFn: func(ctx context.Context, userID string) (*model.FounderProfile, error) {
			if userID == "user-partner" {
				return fullProfile("user-partner", model.RoleBusiness), nil
			}
			return nil, nil
		},
	}
	matchRepo := &mockMatchRepo{
		listInvolvingFn: func(ctx context.Context, userID string, statusFilter model.MatchStatus) ([]*model.MatchRecord, error) {
			if statusFilter != model.MatchStatusActive {
				t.Errorf("statusFilter = %q, want active", statusFilter)
			}
			userA, userB := model.NormalizePair("user-self", "user-partner")
			return []*model.MatchRecord{
				{UserA: userA, UserB: userB, Score: 75, Status: model.MatchStatusActive},
			}, nil
		},
	}
	svc := newTestService(profileRepo, &mockConnRepo{}, matchRepo)

	saved, err := svc.ListSaved(context.Background(), "user-self")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(saved) != 1 {
		t.Fatalf("len(saved) = %d, want 1", len(saved))
	}
	if saved[0].Partner.UserID != "user-partner" {
		t.Errorf("partner = %q, want user-partner", saved[0].Partner.UserID)
	}
	if saved[0].Record.Score != 75 {
		t.Errorf("score = %d, want 75", saved[0].Record.Score)
	}
}

// 相手プロフィールが削除済みの保存済みマッチがスキップされることを検証
func TestListSaved_SkipsDeletedPartner(t *testing.T) {
	matchRepo := &mockMatchRepo{
		listInvolvingFn: func(ctx context.Context, userID string, statusFilter model.MatchStatus) ([]*model.MatchRecord, error) {
			return []*model.MatchRecord{
				{UserA: "user-gone", UserB: "user-self", Status: model.MatchStatusActive},
			}, nil
		},
	}
	svc := newTestService(&mockProfileRepo{}, &mockConnRepo{}, matchRepo)

	saved, err := svc.ListSaved(context.Background(), "user-self")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(saved) != 0 {
		t.Errorf("len(saved) = %d, want 0", len(saved))
	}
}

// genUserID はゼロ埋めした連番ユーザーIDを生成するテストヘルパー。
func genUserID(i int) string {
	const digits = "0123456789"
	return "user-" + string([]byte{digits[i/10%10], digits[i%10]})
}
