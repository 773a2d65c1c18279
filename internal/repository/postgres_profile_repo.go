package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/hitoshi/foundermatch/internal/model"
)

// PostgresProfileRepo はPostgreSQLを使用したプロフィールリポジトリ。
// 役割・業界・言語などの集合フィールドはtext[]カラムにマッピングする。
type PostgresProfileRepo struct {
	db *sql.DB
}

// NewPostgresProfileRepo はPostgresProfileRepoを生成する。
func NewPostgresProfileRepo(db *sql.DB) *PostgresProfileRepo {
	return &PostgresProfileRepo{db: db}
}

const profileColumns = `user_id, display_name, avatar_url, headline, bio,
	roles, skills, industries, commitment, idea_stage, country, city, languages,
	looking_for_roles, looking_for_description, ecosystem_tags,
	is_actively_looking, created_at, updated_at`

// FindByUserID は指定ユーザーのプロフィールを取得する。見つからない場合はnilを返す。
func (r *PostgresProfileRepo) FindByUserID(ctx context.Context, userID string) (*model.FounderProfile, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM founder_profiles WHERE user_id = $1`,
		userID,
	)

	profile, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("プロフィールの取得に失敗しました: %w", err)
	}
	return profile, nil
}

// ListActivelyLooking は共同創業者を探索中のプロフィール一覧を返す。
// excludeUserIDに一致するプロフィールは除外する。
// user_id昇順で返すため、同一入力に対する候補プールの列挙順は安定する。
func (r *PostgresProfileRepo) ListActivelyLooking(ctx context.Context, excludeUserID string) ([]*model.FounderProfile, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+profileColumns+`
		 FROM founder_profiles
		 WHERE is_actively_looking = true AND user_id != $1
		 ORDER BY user_id ASC`,
		excludeUserID,
	)
	if err != nil {
		return nil, fmt.Errorf("候補プロフィール一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var profiles []*model.FounderProfile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("プロフィール行の読み取りに失敗しました: %w", err)
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("候補プロフィール一覧の走査に失敗しました: %w", err)
	}
	return profiles, nil
}

// Upsert はプロフィールを冪等にUPSERTする。
// UNIQUE(user_id)制約を利用したINSERT ON CONFLICTで実装する。
// created_atは新規作成時のみ書き込み、既存レコードでは維持される。
func (r *PostgresProfileRepo) Upsert(ctx context.Context, p *model.FounderProfile) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO founder_profiles (`+profileColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		 ON CONFLICT (user_id) DO UPDATE SET
		     display_name = EXCLUDED.display_name,
		     avatar_url = EXCLUDED.avatar_url,
		     headline = EXCLUDED.headline,
		     bio = EXCLUDED.bio,
		     roles = EXCLUDED.roles,
		     skills = EXCLUDED.skills,
		     industries = EXCLUDED.industries,
		     commitment = EXCLUDED.commitment,
		     idea_stage = EXCLUDED.idea_stage,
		     country = EXCLUDED.country,
		     city = EXCLUDED.city,
		     languages = EXCLUDED.languages,
		     looking_for_roles = EXCLUDED.looking_for_roles,
		     looking_for_description = EXCLUDED.looking_for_description,
		     ecosystem_tags = EXCLUDED.ecosystem_tags,
		     is_actively_looking = EXCLUDED.is_actively_looking,
		     updated_at = EXCLUDED.updated_at`,
		p.UserID, p.DisplayName, p.AvatarURL, p.Headline, p.Bio,
		pq.Array(roleTagsToStrings(p.Roles)), pq.Array(p.Skills), pq.Array(p.Industries),
		string(p.Commitment), string(p.IdeaStage), p.Country, p.City, pq.Array(p.Languages),
		pq.Array(roleTagsToStrings(p.LookingForRoles)), p.LookingForDescription, pq.Array(p.EcosystemTags),
		p.IsActivelyLooking, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("プロフィールのUPSERTに失敗しました: %w", err)
	}
	return nil
}

// rowScanner はsql.Rowとsql.Rowsの共通Scanインターフェース。
type rowScanner interface {
	Scan(dest ...any) error
}

// scanProfile は1行分のプロフィールカラムをスキャンする。
func scanProfile(row rowScanner) (*model.FounderProfile, error) {
	p := &model.FounderProfile{}
	var roles, skills, industries, languages, lookingForRoles, ecosystemTags pq.StringArray
	var commitment, ideaStage string

	err := row.Scan(
		&p.UserID, &p.DisplayName, &p.AvatarURL, &p.Headline, &p.Bio,
		&roles, &skills, &industries, &commitment, &ideaStage,
		&p.Country, &p.City, &languages,
		&lookingForRoles, &p.LookingForDescription, &ecosystemTags,
		&p.IsActivelyLooking, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Roles = stringsToRoleTags(roles)
	p.Skills = skills
	p.Industries = industries
	p.Commitment = model.Commitment(commitment)
	p.IdeaStage = model.IdeaStage(ideaStage)
	p.Languages = languages
	p.LookingForRoles = stringsToRoleTags(lookingForRoles)
	p.EcosystemTags = ecosystemTags
	return p, nil
}

// roleTagsToStrings は役割タグのスライスをtext[]書き込み用に変換する。
func roleTagsToStrings(roles []model.RoleTag) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

// stringsToRoleTags はtext[]カラムの値を役割タグのスライスに変換する。
func stringsToRoleTags(values []string) []model.RoleTag {
	if len(values) == 0 {
		return nil
	}
	out := make([]model.RoleTag, len(values))
	for i, v := range values {
		out[i] = model.RoleTag(v)
	}
	return out
}

// compile-time interface check
var _ ProfileRepository = (*PostgresProfileRepo)(nil)
