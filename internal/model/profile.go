// Package model はドメインモデルを定義する。
package model

import "time"

// RoleTag は創業者の役割タグを表す。
type RoleTag string

// 定義済みの役割タグ
const (
	RoleTechnical  RoleTag = "technical"
	RoleBusiness   RoleTag = "business"
	RoleDesign     RoleTag = "design"
	RoleProduct    RoleTag = "product"
	RoleOperations RoleTag = "operations"
)

// IsValid は役割タグが定義済みの値かどうかを検証する。
func (r RoleTag) IsValid() bool {
	switch r {
	case RoleTechnical, RoleBusiness, RoleDesign, RoleProduct, RoleOperations:
		return true
	default:
		return false
	}
}

// Commitment は創業活動へのコミットメント度を表す。
// 空文字列は未設定を意味する。
type Commitment string

// 定義済みのコミットメント値
const (
	CommitmentFullTime  Commitment = "full_time"
	CommitmentPartTime  Commitment = "part_time"
	CommitmentExploring Commitment = "exploring"
)

// IsValid はコミットメント値が定義済みかどうかを検証する。
// 空文字列（未設定）は有効とみなす。
func (c Commitment) IsValid() bool {
	switch c {
	case "", CommitmentFullTime, CommitmentPartTime, CommitmentExploring:
		return true
	default:
		return false
	}
}

// IdeaStage はアイデアの進捗段階を表す。
// 空文字列は未設定を意味する。
type IdeaStage string

// 定義済みのアイデア段階
// 注意: ConceptとPrototypeはプロフィール上有効な値だが、
// スコア計算の序数リストには含まれない（scoringパッケージを参照）。
const (
	StageNoIdea        IdeaStage = "no_idea"
	StageHaveIdea      IdeaStage = "have_idea"
	StageSideProject   IdeaStage = "side_project"
	StageEarlyTraction IdeaStage = "early_traction"
	StageConcept       IdeaStage = "concept"
	StagePrototype     IdeaStage = "prototype"
)

// IsValid はアイデア段階が定義済みかどうかを検証する。
// 空文字列（未設定）は有効とみなす。
func (s IdeaStage) IsValid() bool {
	switch s {
	case "", StageNoIdea, StageHaveIdea, StageSideProject, StageEarlyTraction,
		StageConcept, StagePrototype:
		return true
	default:
		return false
	}
}

// FounderProfile は創業者プロフィールを表す。
// スコア計算への読み取り専用入力として扱う。
// Roles/Industries/Languagesは順序を持たない集合であり、
// 所属判定と重なり判定のみが定義される。
type FounderProfile struct {
	UserID                string
	DisplayName           string
	AvatarURL             string
	Headline              string
	Bio                   string
	Roles                 []RoleTag
	Skills                []string
	Industries            []string
	Commitment            Commitment
	IdeaStage             IdeaStage
	Country               string
	City                  string
	Languages             []string
	LookingForRoles       []RoleTag
	LookingForDescription string
	EcosystemTags         []string
	IsActivelyLooking     bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// PrimaryRole は先頭の役割タグを返す。役割が未設定の場合は空文字列を返す。
func (p *FounderProfile) PrimaryRole() RoleTag {
	if len(p.Roles) == 0 {
		return ""
	}
	return p.Roles[0]
}

// ConnectionRecord は創業者同士のコネクション申請を表す。
// マッチング候補の除外判定にのみ使用し、ステータスは問わない。
type ConnectionRecord struct {
	ID          string
	RequesterID string
	RecipientID string
	Status      string
	CreatedAt   time.Time
}
