package scoring

import (
	"fmt"

	"github.com/hitoshi/foundermatch/internal/model"
)

// maxReasons は表示するマッチ理由の最大件数。
const maxReasons = 3

// rolePair は順序付きの主要役割ペア。
type rolePair struct {
	a, b model.RoleTag
}

// 最も強い相補ペア。専用フレーズを使用する。
var strongComplements = map[rolePair]struct{}{
	{model.RoleTechnical, model.RoleBusiness}: {},
	{model.RoleBusiness, model.RoleTechnical}: {},
	{model.RoleTechnical, model.RoleProduct}:  {},
	{model.RoleProduct, model.RoleTechnical}:  {},
}

// 良好な相補ペア。
var goodComplements = map[rolePair]struct{}{
	{model.RoleTechnical, model.RoleDesign}:    {},
	{model.RoleDesign, model.RoleTechnical}:    {},
	{model.RoleTechnical, model.RoleOperations}: {},
	{model.RoleOperations, model.RoleTechnical}: {},
	{model.RoleBusiness, model.RoleProduct}:    {},
	{model.RoleProduct, model.RoleBusiness}:    {},
	{model.RoleBusiness, model.RoleDesign}:     {},
	{model.RoleDesign, model.RoleBusiness}:     {},
	{model.RoleDesign, model.RoleProduct}:      {},
	{model.RoleProduct, model.RoleDesign}:      {},
}

// コミットメント一致時の定型フレーズ。
var commitmentLabels = map[model.Commitment]string{
	model.CommitmentFullTime:  "どちらもフルタイムで取り組む覚悟があります",
	model.CommitmentPartTime:  "どちらもパートタイムで現実的に進めるスタイルです",
	model.CommitmentExploring: "どちらも模索段階で、気軽に対話を始められます",
}

// GenerateReasons は2つのプロフィールからマッチ理由を最大3件生成する。
// 表示優先度順の有限リストで、同一入力に対して常に同一の結果を返す。
// スコア内訳とは独立した簡易ヒューリスティクスを用いるため、
// 数値スコアが中程度の要因に言及することもある。純粋な説明テキストであり、
// 網羅性やスコア内訳との一致は保証しない。
func GenerateReasons(a, b *model.FounderProfile) []string {
	reasons := make([]string, 0, maxReasons)

	// 1. 主要役割（各役割集合の先頭のみ）のペアリング
	if r, ok := primaryRoleReason(a.PrimaryRole(), b.PrimaryRole()); ok {
		reasons = append(reasons, r)
	}

	// 2. コミットメントの一致
	if len(reasons) < maxReasons && a.Commitment != "" && a.Commitment == b.Commitment {
		if label, ok := commitmentLabels[a.Commitment]; ok {
			reasons = append(reasons, label)
		}
	}

	// 3. 共通の業界
	if len(reasons) < maxReasons {
		if r, ok := sharedIndustryReason(a.Industries, b.Industries); ok {
			reasons = append(reasons, r)
		}
	}

	// 4. フォールバック: 同一都市、なければ同一国（理由が3件未満の場合のみ）
	if len(reasons) < maxReasons {
		if r, ok := locationReason(a, b); ok {
			reasons = append(reasons, r)
		}
	}

	// 5. さらなるフォールバック: 共通言語（理由が2件未満の場合のみ）
	if len(reasons) < 2 {
		if r, ok := sharedLanguageReason(a.Languages, b.Languages); ok {
			reasons = append(reasons, r)
		}
	}

	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}
	return reasons
}

// primaryRoleReason は主要役割ペアに応じた理由フレーズを返す。
// 両者の主要役割が同一、またはどちらかが未設定の場合はスキップする。
func primaryRoleReason(ra, rb model.RoleTag) (string, bool) {
	if ra == "" || rb == "" || ra == rb {
		return "", false
	}

	pair := rolePair{ra, rb}
	if _, ok := strongComplements[pair]; ok {
		return fmt.Sprintf("%s×%sは理想的な共同創業者の組み合わせです", ra, rb), true
	}
	if _, ok := goodComplements[pair]; ok {
		return fmt.Sprintf("%sと%sは互いを強く補完する役割です", ra, rb), true
	}
	return "互いに補完し合う役割の組み合わせです", true
}

// sharedIndustryReason は共通業界に応じた理由フレーズを返す。
// 2つ以上共通なら2つを挙げ、1つなら名指しする。共通なしならスキップ。
func sharedIndustryReason(indA, indB []string) (string, bool) {
	setB := toSet(indB)
	var shared []string
	seen := make(map[string]struct{}, len(indA))
	for _, ind := range indA {
		if _, dup := seen[ind]; dup {
			continue
		}
		seen[ind] = struct{}{}
		if _, ok := setB[ind]; ok {
			shared = append(shared, ind)
		}
	}

	switch {
	case len(shared) >= 2:
		return fmt.Sprintf("%sや%sなど共通の業界に関心があります", shared[0], shared[1]), true
	case len(shared) == 1:
		return fmt.Sprintf("どちらも%s業界に関心があります", shared[0]), true
	default:
		return "", false
	}
}

// locationReason は同一都市・同一国に応じた理由フレーズを返す。
func locationReason(a, b *model.FounderProfile) (string, bool) {
	if a.City != "" && a.City == b.City {
		return fmt.Sprintf("どちらも%sを拠点にしています", a.City), true
	}
	if a.Country != "" && a.Country == b.Country {
		return fmt.Sprintf("同じ国（%s）を拠点にしています", a.Country), true
	}
	return "", false
}

// sharedLanguageReason は共通言語に応じた理由フレーズを返す。
// 最大2言語まで名指しする。
func sharedLanguageReason(langsA, langsB []string) (string, bool) {
	shared := sharedLanguages(langsA, langsB)
	switch {
	case len(shared) >= 2:
		return fmt.Sprintf("%s・%sで会話できます", shared[0], shared[1]), true
	case len(shared) == 1:
		return fmt.Sprintf("%sで会話できます", shared[0]), true
	default:
		return "", false
	}
}
