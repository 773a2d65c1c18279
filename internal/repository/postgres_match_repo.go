package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/hitoshi/foundermatch/internal/model"
)

// PostgresMatchRepo はPostgreSQLを使用したマッチレコードリポジトリ。
// テーブルはCHECK(user_a < user_b)とUNIQUE(user_a, user_b)で
// 正規化ペアの一意性を保証する。
type PostgresMatchRepo struct {
	db *sql.DB
}

// NewPostgresMatchRepo はPostgresMatchRepoを生成する。
func NewPostgresMatchRepo(db *sql.DB) *PostgresMatchRepo {
	return &PostgresMatchRepo{db: db}
}

const matchColumns = `id, user_a, user_b, score, score_breakdown, status,
	last_computed_at, created_at, updated_at`

// FindByPair は正規化ペアでマッチレコードを取得する。見つからない場合はnilを返す。
func (r *PostgresMatchRepo) FindByPair(ctx context.Context, userX, userY string) (*model.MatchRecord, error) {
	userA, userB := model.NormalizePair(userX, userY)
	row := r.db.QueryRowContext(ctx,
		`SELECT `+matchColumns+` FROM matches WHERE user_a = $1 AND user_b = $2`,
		userA, userB,
	)

	record, err := scanMatch(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("マッチレコードの取得に失敗しました: %w", err)
	}
	return record, nil
}

// ListInvolving は指定ユーザーが当事者である全マッチレコードを返す。
// statusFilterが空でない場合は該当ステータスのみを返す。
// スコア降順、同点時は相手ユーザーID昇順で返す。
func (r *PostgresMatchRepo) ListInvolving(ctx context.Context, userID string, statusFilter model.MatchStatus) ([]*model.MatchRecord, error) {
	query := `SELECT ` + matchColumns + `
		 FROM matches
		 WHERE (user_a = $1 OR user_b = $1)`
	args := []any{userID}
	if statusFilter != "" {
		query += ` AND status = $2`
		args = append(args, string(statusFilter))
	}
	query += ` ORDER BY score DESC, user_a ASC, user_b ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("マッチレコード一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var records []*model.MatchRecord
	for rows.Next() {
		record, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("マッチレコード行の読み取りに失敗しました: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("マッチレコード一覧の走査に失敗しました: %w", err)
	}
	return records, nil
}

// UpsertScore はスコア・内訳・計算日時を冪等にUPSERTする。
// ON CONFLICTのSET句にstatusを含めないことで、新規作成時のみ
// pendingが書き込まれ、既存レコードのstatusは決して上書きされない。
// UNIQUE(user_a, user_b)制約下の同時UPSERTでも行レベルロックにより安全。
func (r *PostgresMatchRepo) UpsertScore(ctx context.Context, record *model.MatchRecord) error {
	userA, userB := model.NormalizePair(record.UserA, record.UserB)
	breakdown, err := json.Marshal(record.ScoreBreakdown)
	if err != nil {
		return fmt.Errorf("スコア内訳のシリアライズに失敗しました: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO matches (id, user_a, user_b, score, score_breakdown, status, last_computed_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		 ON CONFLICT (user_a, user_b) DO UPDATE SET
		     score = EXCLUDED.score,
		     score_breakdown = EXCLUDED.score_breakdown,
		     last_computed_at = EXCLUDED.last_computed_at,
		     updated_at = NOW()`,
		record.ID, userA, userB, record.Score, breakdown,
		string(model.MatchStatusPending), record.LastComputedAt,
	)
	if err != nil {
		return fmt.Errorf("マッチスコアのUPSERTに失敗しました: %w", err)
	}
	return nil
}

// UpdateStatus は正規化ペアのマッチステータスを更新する。
// レコードが存在しない場合はエラーを返す。
func (r *PostgresMatchRepo) UpdateStatus(ctx context.Context, userX, userY string, status model.MatchStatus) error {
	userA, userB := model.NormalizePair(userX, userY)
	result, err := r.db.ExecContext(ctx,
		`UPDATE matches SET status = $1, updated_at = NOW() WHERE user_a = $2 AND user_b = $3`,
		string(status), userA, userB,
	)
	if err != nil {
		return fmt.Errorf("マッチステータスの更新に失敗しました: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("更新行数の取得に失敗しました: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("マッチレコードが見つかりません: %s/%s", userA, userB)
	}
	return nil
}

// scanMatch は1行分のマッチカラムをスキャンする。
func scanMatch(row rowScanner) (*model.MatchRecord, error) {
	m := &model.MatchRecord{}
	var breakdown []byte
	var status string

	err := row.Scan(
		&m.ID, &m.UserA, &m.UserB, &m.Score, &breakdown, &status,
		&m.LastComputedAt, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(breakdown, &m.ScoreBreakdown); err != nil {
		return nil, fmt.Errorf("スコア内訳のデシリアライズに失敗しました: %w", err)
	}
	m.Status = model.MatchStatus(status)
	return m, nil
}

// compile-time interface check
var _ MatchRepository = (*PostgresMatchRepo)(nil)
