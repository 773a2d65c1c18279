package scoring

import "github.com/hitoshi/foundermatch/internal/model"

// 役割相補性テーブル。非順序ペアごとに1エントリを持ち、
// 参照はlookupRoleScoreで両方向に対して行う（実質的に対称）。
// technical×businessが最も強い相補ペアで、同一役割は冗長なため弱い。
// イミュータブルな静的テーブルとして初期化後は一切変更しない。
var roleComplementarity = map[model.RoleTag]map[model.RoleTag]int{
	model.RoleTechnical: {
		model.RoleBusiness:   30,
		model.RoleProduct:    20,
		model.RoleDesign:     20,
		model.RoleOperations: 15,
	},
	model.RoleBusiness: {
		model.RoleProduct:    15,
		model.RoleDesign:     15,
		model.RoleOperations: 10,
	},
	model.RoleDesign: {
		model.RoleProduct:    15,
		model.RoleOperations: 10,
	},
	model.RoleProduct: {
		model.RoleOperations: 10,
	},
}

// 同一役割ペアのスコア。重なるスキルセットは相補性が低い。
const sameRoleScore = 5

// lookupRoleScore は役割ペアの相補性スコアを返す。
// テーブルにないペアは0を返す。同一役割（定義済みタグ）は固定で5を返す。
func lookupRoleScore(a, b model.RoleTag) int {
	if a == b {
		if a.IsValid() {
			return sameRoleScore
		}
		return 0
	}
	if inner, ok := roleComplementarity[a]; ok {
		if score, ok := inner[b]; ok {
			return score
		}
	}
	if inner, ok := roleComplementarity[b]; ok {
		if score, ok := inner[a]; ok {
			return score
		}
	}
	return 0
}

// アイデア段階の序数リスト。
// 意図的にconcept/prototypeを含まない4値のみ。これらの段階を持つ
// プロフィールは相手に関わらず段階要因で0点となる（元仕様からの互換動作）。
// 全6段階にまたがる順序は定義されていないため、このリストを拡張しないこと。
var stageOrdinal = map[model.IdeaStage]int{
	model.StageNoIdea:        0,
	model.StageHaveIdea:      1,
	model.StageSideProject:   2,
	model.StageEarlyTraction: 3,
}

// 隣接国テーブル。双方向に参照する固定テーブルで、
// 同一都市・同一国に次ぐ近接度（4点）の判定に使用する。
var neighboringCountries = map[string][]string{
	"KZ": {"KG", "UZ", "RU", "CN"},
	"UZ": {"KG", "TJ"},
	"RU": {"BY", "UA", "GE", "AM"},
	"US": {"CA", "MX"},
	"GB": {"IE"},
	"DE": {"AT", "CH", "NL", "PL", "FR", "DK"},
	"FR": {"BE", "ES", "IT"},
	"ES": {"PT"},
	"IN": {"NP", "BD", "LK"},
	"SG": {"MY", "ID"},
	"AE": {"SA", "OM"},
	"SE": {"NO", "FI", "DK"},
}

// areNeighboringCountries は2国が隣接国テーブルに含まれるかを返す。
// テーブルは片方向で保持し、参照は両方向に対して行う。
func areNeighboringCountries(a, b string) bool {
	for _, n := range neighboringCountries[a] {
		if n == b {
			return true
		}
	}
	for _, n := range neighboringCountries[b] {
		if n == a {
			return true
		}
	}
	return false
}
