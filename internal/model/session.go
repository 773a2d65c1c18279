package model

import "time"

// Session はユーザーのログインセッションを表す。
// セッションの発行（ログイン）は外部の認証基盤が担い、
// 本サービスは検証のみを行う。
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
