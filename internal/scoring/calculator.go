// Package scoring は創業者プロフィール間の適合スコア計算を提供する。
//
// ComputeScoreは2つのプロフィールから6要因の加算スコア（合計0〜100）を
// 決定的に計算する純粋関数で、I/Oも共有状態も持たない。
// 欠損・空のフィールドは当該要因への寄与0として扱い、エラーにはならない。
// GenerateReasonsはスコア内訳とは独立した簡易ヒューリスティクスで
// 表示用のマッチ理由（最大3件）を生成する。
package scoring

import (
	"math"

	"github.com/hitoshi/foundermatch/internal/model"
)

// 要因別の最大配点
const (
	maxRolePoints       = 30
	maxIndustryPoints   = 20
	maxCommitmentPoints = 20
	maxStagePoints      = 10
	maxLocationPoints   = 10
	maxLanguagePoints   = 10
)

// ComputeScore は2つの創業者プロフィール間の適合スコアを計算する。
// 決定的かつ副作用なし。内訳の各値は非負で、合計はTotalと一致する。
func ComputeScore(a, b *model.FounderProfile) model.MatchScore {
	breakdown := model.ScoreBreakdown{
		Roles:      roleScore(a.Roles, b.Roles),
		Industry:   industryScore(a.Industries, b.Industries),
		Commitment: commitmentScore(a.Commitment, b.Commitment),
		Stage:      stageScore(a.IdeaStage, b.IdeaStage),
		Location:   locationScore(a, b),
		Languages:  languageScore(a.Languages, b.Languages),
	}

	return model.MatchScore{
		Total:     breakdown.Sum(),
		Breakdown: breakdown,
	}
}

// roleScore は役割相補性スコア（0〜30）を計算する。
// 両者の役割の全組み合わせについてテーブルを参照し、最大値を採用する。
// どちらかの役割集合が空なら0。
func roleScore(rolesA, rolesB []model.RoleTag) int {
	if len(rolesA) == 0 || len(rolesB) == 0 {
		return 0
	}

	best := 0
	for _, ra := range rolesA {
		for _, rb := range rolesB {
			if s := lookupRoleScore(ra, rb); s > best {
				best = s
			}
		}
	}
	return best
}

// industryScore は業界の重なりスコア（0〜20）をJaccard係数で計算する。
// round(20 * |A∩B| / |A∪B|)。どちらかが空なら0。
func industryScore(indA, indB []string) int {
	if len(indA) == 0 || len(indB) == 0 {
		return 0
	}

	setA := toSet(indA)
	setB := toSet(indB)

	intersection := 0
	for v := range setA {
		if _, ok := setB[v]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}

	return int(math.Round(float64(maxIndustryPoints) * float64(intersection) / float64(union)))
}

// commitmentScore はコミットメント整合スコア（0〜20）を計算する。
// 一致（非空）⇒20。どちらかがexploringで不一致⇒5。
// それ以外の不一致（full_timeとpart_time。本気度は双方高い）⇒10。
// どちらかが未設定⇒0。
func commitmentScore(a, b model.Commitment) int {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return maxCommitmentPoints
	}
	if a == model.CommitmentExploring || b == model.CommitmentExploring {
		return 5
	}
	return 10
}

// stageScore はアイデア段階の近接度スコア（0〜10）を計算する。
// 4値の序数リストに基づき、一致⇒10、隣接⇒5、それ以外⇒0。
// 序数リストにない段階（concept/prototype/未設定）は常に0。
func stageScore(a, b model.IdeaStage) int {
	ia, okA := stageOrdinal[a]
	ib, okB := stageOrdinal[b]
	if !okA || !okB {
		return 0
	}

	diff := ia - ib
	if diff < 0 {
		diff = -diff
	}
	switch diff {
	case 0:
		return maxStagePoints
	case 1:
		return 5
	default:
		return 0
	}
}

// locationScore は地理的近接度スコア（0〜10）を計算する。
// 同一都市⇒10、同一国⇒7、隣接国⇒4、それ以外⇒0。
// どちらかの国が未設定なら0。
func locationScore(a, b *model.FounderProfile) int {
	if a.Country == "" || b.Country == "" {
		return 0
	}
	if a.City != "" && a.City == b.City {
		return maxLocationPoints
	}
	if a.Country == b.Country {
		return 7
	}
	if areNeighboringCountries(a.Country, b.Country) {
		return 4
	}
	return 0
}

// languageScore は共通言語スコア（0〜10）を計算する。
// 共通言語2つ以上⇒10、1つ⇒5、なし⇒0。どちらかが空なら0。
func languageScore(langsA, langsB []string) int {
	if len(langsA) == 0 || len(langsB) == 0 {
		return 0
	}

	shared := sharedLanguages(langsA, langsB)
	switch {
	case len(shared) >= 2:
		return maxLanguagePoints
	case len(shared) == 1:
		return 5
	default:
		return 0
	}
}

// sharedLanguages は共通言語を入力Aの出現順で返す。
func sharedLanguages(langsA, langsB []string) []string {
	setB := toSet(langsB)
	seen := make(map[string]struct{}, len(langsA))

	var shared []string
	for _, l := range langsA {
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		if _, ok := setB[l]; ok {
			shared = append(shared, l)
		}
	}
	return shared
}

// toSet は文字列スライスを集合に変換する。
func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
