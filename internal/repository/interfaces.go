// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/foundermatch/internal/model"
)

// ProfileRepository は創業者プロフィールの永続化インターフェース。
type ProfileRepository interface {
	// FindByUserID は指定ユーザーのプロフィールを取得する。見つからない場合はnilを返す。
	FindByUserID(ctx context.Context, userID string) (*model.FounderProfile, error)

	// ListActivelyLooking は共同創業者を探索中のプロフィール一覧を返す。
	// excludeUserIDに一致するプロフィールは除外する。
	ListActivelyLooking(ctx context.Context, excludeUserID string) ([]*model.FounderProfile, error)

	// Upsert はプロフィールを冪等にUPSERTする。user_idをキーとする。
	Upsert(ctx context.Context, profile *model.FounderProfile) error
}

// ConnectionRepository はコネクション申請の永続化インターフェース。
// マッチング候補の除外判定にのみ使用する。
type ConnectionRepository interface {
	// ListUserIDsInvolving は指定ユーザーが申請者または受信者である
	// 全コネクションの相手側ユーザーIDを返す。ステータスは問わない。
	ListUserIDsInvolving(ctx context.Context, userID string) ([]string, error)
}

// MatchRepository はマッチレコードの永続化インターフェース。
// レコードは正規化ペア（user_a < user_b）をキーとする。
type MatchRepository interface {
	// FindByPair は正規化ペアでマッチレコードを取得する。見つからない場合はnilを返す。
	// 引数の順序は問わない（内部で正規化する）。
	FindByPair(ctx context.Context, userX, userY string) (*model.MatchRecord, error)

	// ListInvolving は指定ユーザーが当事者である全マッチレコードを返す。
	// statusFilterが空でない場合は該当ステータスのみを返す。
	ListInvolving(ctx context.Context, userID string, statusFilter model.MatchStatus) ([]*model.MatchRecord, error)

	// UpsertScore はスコア・内訳・計算日時を冪等にUPSERTする。
	// 新規作成時のみstatusをpendingで書き込み、既存レコードのstatusは
	// いかなる場合も上書きしない（見送り済みレコードの再浮上を防ぐ）。
	// UNIQUE(user_a, user_b)制約下の同時UPSERTに対して安全であること。
	UpsertScore(ctx context.Context, record *model.MatchRecord) error

	// UpdateStatus は正規化ペアのマッチステータスを更新する。
	// レコードが存在しない場合はエラーを返す。
	UpdateStatus(ctx context.Context, userX, userY string, status model.MatchStatus) error
}

// SessionRepository はセッションデータの永続化インターフェース。
// セッションの発行は外部の認証基盤が担うため、本サービスは検証と削除のみを行う。
type SessionRepository interface {
	// FindByID は指定IDのセッションを取得する。期限切れの場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Session, error)

	// DeleteByID は指定IDのセッションを削除する。
	DeleteByID(ctx context.Context, id string) error
}
