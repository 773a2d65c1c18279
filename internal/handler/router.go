package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/foundermatch/internal/middleware"
)

// Pinger はヘルスチェックでデータベース疎通を確認するためのインターフェース。
// *sql.DB がそのまま満たす。
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	SessionFinder     middleware.SessionFinder
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter

	// /health のデータベース疎通確認。nilの場合は疎通確認をスキップする。
	DBPinger Pinger

	// マッチング
	MatchService MatchServiceInterface

	// プロフィール
	ProfileService ProfileServiceInterface

	// Prometheusメトリクス公開用ハンドラー。nilの場合は/metricsを公開しない。
	MetricsHandler http.Handler
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	RecoveryMiddleware → CORSMiddleware → LoggingMiddleware → SessionMiddleware → RateLimitMiddleware(GeneralMiddleware)
//
// 認証（Session）とレート制限は/api配下のグループにのみ適用する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	// リカバリーを最外周に適用（後続ミドルウェアのpanicも捕捉する）
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewLoggingMiddleware(slog.Default()))

	matchHandler := NewMatchHandler(deps.MatchService)
	profileHandler := NewProfileHandler(deps.ProfileService)

	// --- 認証不要のルート ---

	// ヘルスチェック（データベース疎通を含む）
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if deps.DBPinger != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
			defer cancel()
			if err := deps.DBPinger.PingContext(ctx); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{"status": "unavailable"})
				return
			}
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// メトリクス（監視基盤からのスクレイプを想定）
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Session → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSessionMiddleware(deps.SessionFinder))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// マッチング
		r.Route("/api/matches", func(r chi.Router) {
			// GET /api/matches - マッチ再計算（候補プール全件のスコア計算を伴うため専用レート制限を追加）
			r.With(deps.RateLimiter.RefreshMiddleware()).Get("/", matchHandler.RefreshMatches)

			// GET /api/matches/saved - 保存済みマッチ一覧
			r.Get("/saved", matchHandler.ListSaved)

			r.Route("/{userID}", func(r chi.Router) {
				r.Post("/pass", matchHandler.Pass)
				r.Post("/unpass", matchHandler.Unpass)
				r.Post("/save", matchHandler.Save)
			})
		})

		// プロフィール管理
		r.Route("/api/profiles", func(r chi.Router) {
			r.Get("/me", profileHandler.GetMyProfile)
			r.Put("/me", profileHandler.UpdateMyProfile)
			r.Get("/{userID}", profileHandler.GetProfileByID)
		})
	})

	return r
}
