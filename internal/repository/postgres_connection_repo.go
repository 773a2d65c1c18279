package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresConnectionRepo はPostgreSQLを使用したコネクションリポジトリ。
type PostgresConnectionRepo struct {
	db *sql.DB
}

// NewPostgresConnectionRepo はPostgresConnectionRepoを生成する。
func NewPostgresConnectionRepo(db *sql.DB) *PostgresConnectionRepo {
	return &PostgresConnectionRepo{db: db}
}

// ListUserIDsInvolving は指定ユーザーが申請者または受信者である
// 全コネクションの相手側ユーザーIDを返す。ステータスは問わない。
// 申請中・承諾済み・拒否済みのいずれであっても、一度コネクションが
// 存在したペアはマッチング候補から除外するため。
func (r *PostgresConnectionRepo) ListUserIDsInvolving(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT CASE WHEN requester_id = $1 THEN recipient_id ELSE requester_id END
		 FROM connections
		 WHERE requester_id = $1 OR recipient_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("コネクション一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("コネクション行の読み取りに失敗しました: %w", err)
		}
		userIDs = append(userIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("コネクション一覧の走査に失敗しました: %w", err)
	}
	return userIDs, nil
}

// compile-time interface check
var _ ConnectionRepository = (*PostgresConnectionRepo)(nil)
