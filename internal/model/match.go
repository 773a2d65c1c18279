package model

import "time"

// ScoreBreakdown はマッチスコアの要因別内訳を表す。
// 6要因の固定形レコードとして永続化時にもこの型で検証する。
// 各値は非負で、合計がMatchScore.Totalと一致する。
type ScoreBreakdown struct {
	Roles      int `json:"roles"`
	Industry   int `json:"industry"`
	Commitment int `json:"commitment"`
	Stage      int `json:"stage"`
	Location   int `json:"location"`
	Languages  int `json:"languages"`
}

// Sum は内訳の合計を返す。
func (b ScoreBreakdown) Sum() int {
	return b.Roles + b.Industry + b.Commitment + b.Stage + b.Location + b.Languages
}

// MatchScore は2人の創業者間の適合スコアを表す。
// Totalは0〜100の整数で、内訳の合計と常に一致する。
type MatchScore struct {
	Total     int
	Breakdown ScoreBreakdown
}

// MatchStatus はマッチレコードのステータスを表す。
type MatchStatus string

// 定義済みのマッチステータス
const (
	// MatchStatusPending - 提案済みで未応答。
	MatchStatusPending MatchStatus = "pending"
	// MatchStatusActive - 明示的に関心が示された状態。
	MatchStatusActive MatchStatus = "active"
	// MatchStatusPassed - いずれかの当事者が見送った状態。再表示されない。
	MatchStatusPassed MatchStatus = "passed"
)

// IsValid はマッチステータスが定義済みかどうかを検証する。
func (s MatchStatus) IsValid() bool {
	switch s {
	case MatchStatusPending, MatchStatusActive, MatchStatusPassed:
		return true
	default:
		return false
	}
}

// MatchRecord は創業者の非順序ペアに対するマッチ状態を表す。
// 不変条件: UserA < UserB（識別子の辞書順）。この正規化により
// どちらのユーザーが計算を起動しても同一の保存スロットに解決される。
// レコードは両当事者が共同で所有し、どちらも単独では削除できず、
// ステータス遷移のみが許される。
type MatchRecord struct {
	ID             string
	UserA          string
	UserB          string
	Score          int
	ScoreBreakdown ScoreBreakdown
	Status         MatchStatus
	LastComputedAt time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NormalizePair は2つのユーザーIDを正規化ペア（辞書順）に並べて返す。
func NormalizePair(x, y string) (userA, userB string) {
	if x < y {
		return x, y
	}
	return y, x
}

// Counterpart は指定ユーザーから見た相手側のユーザーIDを返す。
func (m *MatchRecord) Counterpart(userID string) string {
	if m.UserA == userID {
		return m.UserB
	}
	return m.UserA
}

// Involves は指定ユーザーがこのペアの当事者かどうかを返す。
func (m *MatchRecord) Involves(userID string) bool {
	return m.UserA == userID || m.UserB == userID
}
