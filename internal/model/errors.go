package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, match, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeProfileNotFound   = "PROFILE_NOT_FOUND"
	ErrCodeMatchNotFound     = "MATCH_NOT_FOUND"
	ErrCodeInvalidRole       = "INVALID_ROLE"
	ErrCodeInvalidCommitment = "INVALID_COMMITMENT"
	ErrCodeInvalidIdeaStage  = "INVALID_IDEA_STAGE"
	ErrCodeInvalidTransition = "INVALID_STATUS_TRANSITION"
	ErrCodeSelfMatch         = "SELF_MATCH"
	ErrCodeUpstream          = "UPSTREAM_UNAVAILABLE"
)

// NewProfileNotFoundError はプロフィール未作成エラーを生成する。
// オンボーディング未完了のユーザーがマッチングを要求した場合に返す。
func NewProfileNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeProfileNotFound,
		Message:  "創業者プロフィールが見つかりません。",
		Category: "match",
		Action:   "プロフィールを作成してオンボーディングを完了してください。",
	}
}

// NewMatchNotFoundError はマッチレコード未検出エラーを生成する。
func NewMatchNotFoundError(otherUserID string) *APIError {
	return &APIError{
		Code:     ErrCodeMatchNotFound,
		Message:  fmt.Sprintf("指定された相手とのマッチが見つかりません: %s", otherUserID),
		Category: "match",
		Action:   "マッチ一覧を更新してから再度お試しください。",
	}
}

// NewInvalidRoleError は無効な役割タグエラーを生成する。
func NewInvalidRoleError(role string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRole,
		Message:  fmt.Sprintf("無効な役割タグです: %s", role),
		Category: "validation",
		Action:   "役割には technical、business、design、product、operations のいずれかを指定してください。",
	}
}

// NewInvalidCommitmentError は無効なコミットメント値エラーを生成する。
func NewInvalidCommitmentError(commitment string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCommitment,
		Message:  fmt.Sprintf("無効なコミットメント値です: %s", commitment),
		Category: "validation",
		Action:   "コミットメントには full_time、part_time、exploring のいずれかを指定してください。",
	}
}

// NewInvalidIdeaStageError は無効なアイデア段階エラーを生成する。
func NewInvalidIdeaStageError(stage string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidIdeaStage,
		Message:  fmt.Sprintf("無効なアイデア段階です: %s", stage),
		Category: "validation",
		Action:   "アイデア段階には no_idea、have_idea、side_project、early_traction、concept、prototype のいずれかを指定してください。",
	}
}

// NewInvalidTransitionError は許可されないステータス遷移エラーを生成する。
func NewInvalidTransitionError(from MatchStatus) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidTransition,
		Message:  fmt.Sprintf("現在のステータスからは遷移できません: %s", from),
		Category: "match",
		Action:   "マッチの現在のステータスを確認してください。見送りの取り消しは見送り済みのマッチに対してのみ実行できます。",
	}
}

// NewSelfMatchError は自分自身を対象にした操作のエラーを生成する。
func NewSelfMatchError() *APIError {
	return &APIError{
		Code:     ErrCodeSelfMatch,
		Message:  "自分自身をマッチ対象に指定することはできません。",
		Category: "validation",
		Action:   "他のユーザーを指定してください。",
	}
}

// NewUpstreamError はデータストア到達不能エラーを生成する。
// 読み取りは冪等のため呼び出し側での再試行が安全である。
func NewUpstreamError() *APIError {
	return &APIError{
		Code:     ErrCodeUpstream,
		Message:  "データストアへのアクセスに失敗しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	}
}
