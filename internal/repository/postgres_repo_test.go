package repository

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/hitoshi/foundermatch/internal/model"
)

// 各リポジトリがインターフェースを満たすことを検証
func TestPostgresRepos_ImplementInterfaces(t *testing.T) {
	var _ ProfileRepository = (*PostgresProfileRepo)(nil)
	var _ ConnectionRepository = (*PostgresConnectionRepo)(nil)
	var _ MatchRepository = (*PostgresMatchRepo)(nil)
	var _ SessionRepository = (*PostgresSessionRepo)(nil)
}

// 各リポジトリのコンストラクタが正しく初期化されることを検証
func TestNewPostgresRepos_Initialize(t *testing.T) {
	if NewPostgresProfileRepo(nil) == nil {
		t.Fatal("expected non-nil profile repo")
	}
	if NewPostgresConnectionRepo(nil) == nil {
		t.Fatal("expected non-nil connection repo")
	}
	if NewPostgresMatchRepo(nil) == nil {
		t.Fatal("expected non-nil match repo")
	}
	if NewPostgresSessionRepo(nil) == nil {
		t.Fatal("expected non-nil session repo")
	}
}

// 役割タグとtext[]値の相互変換を検証
func TestRoleTagConversion_RoundTrip(t *testing.T) {
	roles := []model.RoleTag{model.RoleTechnical, model.RoleBusiness}

	values := roleTagsToStrings(roles)
	if len(values) != 2 {
		t.Fatalf("len(values) = %d, want 2", len(values))
	}
	if values[0] != "technical" || values[1] != "business" {
		t.Errorf("values = %v, want [technical business]", values)
	}

	back := stringsToRoleTags(values)
	if len(back) != 2 {
		t.Fatalf("len(back) = %d, want 2", len(back))
	}
	if back[0] != model.RoleTechnical || back[1] != model.RoleBusiness {
		t.Errorf("back = %v, want [technical business]", back)
	}
}

// 空のtext[]値がnilスライスに変換されることを検証
func TestStringsToRoleTags_Empty(t *testing.T) {
	if got := stringsToRoleTags(nil); got != nil {
		t.Errorf("stringsToRoleTags(nil) = %v, want nil", got)
	}
	if got := stringsToRoleTags([]string{}); got != nil {
		t.Errorf("stringsToRoleTags([]) = %v, want nil", got)
	}
}

// スコア内訳のJSONシリアライズが固定キーで行われることを検証
func TestScoreBreakdown_JSONKeys(t *testing.T) {
	breakdown := model.ScoreBreakdown{
		Roles:      30,
		Industry:   10,
		Commitment: 20,
		Stage:      0,
		Location:   10,
		Languages:  5,
	}

	data, err := json.Marshal(breakdown)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded model.ScoreBreakdown
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded != breakdown {
		t.Errorf("decoded = %+v, want %+v", decoded, breakdown)
	}
	if decoded.Sum() != 75 {
		t.Errorf("decoded.Sum() = %d, want 75", decoded.Sum())
	}
}

// マッチレコードのモデルフィールドが正しく構築されることを検証
func TestPostgresMatchRepo_RecordModel_Fields(t *testing.T) {
	now := time.Now()
	userA, userB := model.NormalizePair("user-b", "user-a")
	record := &model.MatchRecord{
		ID:             "match-id-1",
		UserA:          userA,
		UserB:          userB,
		Score:          75,
		Status:         model.MatchStatusPending,
		LastComputedAt: now,
	}

	if record.UserA != "user-a" || record.UserB != "user-b" {
		t.Errorf("pair = (%q, %q), want (user-a, user-b)", record.UserA, record.UserB)
	}
	if !record.Involves("user-a") || !record.Involves("user-b") {
		t.Error("record should involve both users")
	}
	if got := record.Counterpart("user-a"); got != "user-b" {
		t.Errorf("Counterpart(user-a) = %q, want user-b", got)
	}
}
