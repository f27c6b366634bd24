package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"WeatherWise-App/internal/config"
	"WeatherWise-App/internal/domain/repository"
	"WeatherWise-App/internal/domain/service"
	"WeatherWise-App/internal/handler"
	"WeatherWise-App/internal/infrastructure/ai"
	"WeatherWise-App/internal/infrastructure/database"
	firestoreClient "WeatherWise-App/internal/infrastructure/firestore"
	"WeatherWise-App/internal/infrastructure/mockweather"
	repoImpl "WeatherWise-App/internal/repository"
	"WeatherWise-App/internal/usecase"
)

const (
	janitorInterval = time.Minute
	shutdownTimeout = 10 * time.Second
)

// expiredDeleter は期限切れスナップショットを自前で削除するストア（FirestoreはTTLポリシーに任せる）
type expiredDeleter interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ 設定の読み込みに失敗: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 天気プロバイダー（モック）
	weatherOpts := mockweather.DefaultOptions()
	if !cfg.MockLatency {
		weatherOpts = mockweather.NoLatencyOptions()
	}
	weatherProvider := mockweather.NewProvider(weatherOpts)
	log.Printf("🌤️ 天気プロバイダー: %s (遅延: %t)", weatherProvider.Name(), cfg.MockLatency)

	// Gemini
	if cfg.GeminiAPIKey == "" {
		log.Println("⚠️ GEMINI_API_KEYが設定されていません。AI生成はすべて失敗します")
	}
	geminiClient := ai.NewGeminiClient(ai.GeminiConfig{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
		Timeout: cfg.GeminiTimeout,
		RPS:     cfg.GeminiRPS,
		Burst:   cfg.GeminiBurst,
	})
	tipsRepo := ai.NewGeminiWeatherTipsRepository(geminiClient)
	tripRepo := ai.NewGeminiTripPlanRepository(geminiClient)

	// セッションストア
	sessionRepo, cleanup, err := newSessionRepository(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ セッションストアの初期化に失敗: %v", err)
	}
	defer cleanup()

	// UseCase / Handler
	weatherUseCase := usecase.NewWeatherUseCase(weatherProvider, tipsRepo)
	tripUseCase := usecase.NewTripUseCase(tripRepo)
	sessionUseCase := usecase.NewSessionUseCase(
		service.NewWeatherSearchService(weatherProvider),
		tripRepo,
		tipsRepo,
		sessionRepo,
		cfg.DefaultLocation,
	)

	router := handler.NewRouter(handler.Handlers{
		Weather: handler.NewWeatherHandler(weatherUseCase),
		Trip:    handler.NewTripHandler(tripUseCase),
		Session: handler.NewSessionHandler(sessionUseCase),
	})

	go runJanitor(ctx, sessionUseCase, sessionRepo, cfg.SessionIdleTimeout)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}
	go func() {
		log.Printf("🚀 WeatherWise-App server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ サーバー起動失敗: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 シャットダウン中...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️ サーバーのシャットダウンに失敗: %v", err)
	}
	log.Println("✅ サーバーを停止しました")
}

// newSessionRepository はSESSION_STOREに応じたストアと後始末の関数を返す
func newSessionRepository(ctx context.Context, cfg *config.Config) (repository.SessionRepository, func(), error) {
	switch cfg.SessionStore {
	case config.SessionStoreFirestore:
		log.Println("🔥 Firestoreクライアントを初期化中...")
		fsClient, err := firestoreClient.NewFirestoreClient(ctx, cfg.FirestoreProjectID, cfg.GoogleCredentialsFile)
		if err != nil {
			return nil, nil, err
		}
		log.Println("✅ Firestore接続成功")
		repo := repoImpl.NewFirestoreSessionRepository(fsClient.GetClient(), cfg.SessionTTLHours)
		return repo, func() { _ = fsClient.Close() }, nil

	case config.SessionStorePostgres:
		log.Println("🐘 PostgreSQLクライアントを初期化中...")
		pgClient, err := database.NewPostgreSQLClient(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		repo := repoImpl.NewPostgresSessionRepository(pgClient, cfg.SessionTTL())
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = pgClient.Close()
			return nil, nil, err
		}
		log.Println("✅ PostgreSQL接続成功")
		return repo, func() { _ = pgClient.Close() }, nil

	default:
		log.Println("🗂️ インメモリのセッションストアを使用します")
		return repoImpl.NewMemorySessionRepository(cfg.SessionTTL()), func() {}, nil
	}
}

// runJanitor はアイドルセッションの終了と期限切れスナップショットの削除を定期的に行う
func runJanitor(ctx context.Context, sessions usecase.SessionUseCase, store repository.SessionRepository, idleTimeout time.Duration) {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	deleter, canDelete := store.(expiredDeleter)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sessions.EvictIdle(idleTimeout)
			if !canDelete {
				continue
			}
			n, err := deleter.DeleteExpired(ctx)
			if err != nil {
				log.Printf("⚠️ 期限切れスナップショットの削除に失敗: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("🧹 期限切れスナップショットを%d件削除しました", n)
			}
		}
	}
}
