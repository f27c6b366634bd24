package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"WeatherWise-App/internal/domain/model"
	"WeatherWise-App/internal/domain/repository"
	"WeatherWise-App/internal/domain/schema"
	"WeatherWise-App/internal/domain/service"
)

// ErrWeatherUnavailable はアドバイス生成に必要な天気データがまだないことを表す
var ErrWeatherUnavailable = errors.New(model.TipsUnavailableMessage)

const snapshotSaveTimeout = 5 * time.Second

type SessionUseCase interface {
	// CreateSession は新しいセッションを作成し、デフォルト地点の天気検索を開始する
	CreateSession(ctx context.Context) (*model.SessionSnapshot, error)

	// SearchWeather はセッションで天気検索を開始する。waitがtrueなら完了まで待つ
	SearchWeather(ctx context.Context, sessionID string, req *model.WeatherSearchRequest, wait bool) (*model.SessionSnapshot, error)

	// GetWeatherState はセッションの天気検索の状態を返す
	GetWeatherState(ctx context.Context, sessionID string) (*model.SessionSnapshot, error)

	// PlanTrip はセッションで旅行プラン生成を開始する。waitがtrueなら完了まで待つ
	PlanTrip(ctx context.Context, sessionID string, req *model.TripPlanRequest, wait bool) (*model.SessionSnapshot, error)

	// GetTripState はセッションの旅行プランの状態を返す
	GetTripState(ctx context.Context, sessionID string) (*model.SessionSnapshot, error)

	// GenerateTips はセッションの現在の天気から天気アドバイスを生成する
	GenerateTips(ctx context.Context, sessionID string, preferences string) (*model.WeatherTipsResult, error)

	// CloseSession はセッションを終了し、実行中のリクエストをキャンセルする
	CloseSession(ctx context.Context, sessionID string) error

	// EvictIdle は一定時間アクセスのないセッションを終了し、終了した件数を返す
	EvictIdle(maxIdle time.Duration) int
}

// session はページ1つ分の状態（天気検索と旅行プランのオーケストレーター）
type session struct {
	id       string
	weather  *service.Orchestrator[string, *model.WeatherReport]
	trip     *service.Orchestrator[*model.TripPlanRequest, *model.TripPlan]
	lastSeen time.Time
}

func (s *session) close() {
	s.weather.Close()
	s.trip.Close()
}

// sessionUseCaseImpl はSessionUseCaseの実装
type sessionUseCaseImpl struct {
	searchService   service.WeatherSearchService
	tripRepo        repository.TripPlanGenerationRepository
	tipsRepo        repository.WeatherTipsGenerationRepository
	sessionRepo     repository.SessionRepository
	defaultLocation string
	now             func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

// NewSessionUseCase は新しいSessionUseCaseインスタンスを作成
func NewSessionUseCase(
	searchService service.WeatherSearchService,
	tripRepo repository.TripPlanGenerationRepository,
	tipsRepo repository.WeatherTipsGenerationRepository,
	sessionRepo repository.SessionRepository,
	defaultLocation string,
) SessionUseCase {
	return &sessionUseCaseImpl{
		searchService:   searchService,
		tripRepo:        tripRepo,
		tipsRepo:        tipsRepo,
		sessionRepo:     sessionRepo,
		defaultLocation: defaultLocation,
		now:             time.Now,
		sessions:        make(map[string]*session),
	}
}

// CreateSession は新しいセッションを作成し、デフォルト地点の天気検索を開始する
func (u *sessionUseCaseImpl) CreateSession(ctx context.Context) (*model.SessionSnapshot, error) {
	id := uuid.NewString()

	s := &session{
		id: id,
		weather: service.NewOrchestrator(id,
			service.NewWeatherSearchTask(u.searchService),
			service.WithOnChange[string, *model.WeatherReport](u.saveSnapshot),
		),
		trip: service.NewOrchestrator(id,
			service.NewTripPlanTask(u.tripRepo.PlanTrip),
			service.WithOnChange[*model.TripPlanRequest, *model.TripPlan](u.saveSnapshot),
		),
		lastSeen: u.now(),
	}

	u.mu.Lock()
	u.sessions[id] = s
	u.mu.Unlock()

	log.Printf("🆕 セッション作成: %s", id)

	if u.defaultLocation != "" {
		s.weather.Submit(u.defaultLocation)
	}

	snapshot := s.weather.Snapshot()
	return &snapshot, nil
}

// SearchWeather はセッションで天気検索を開始する
func (u *sessionUseCaseImpl) SearchWeather(ctx context.Context, sessionID string, req *model.WeatherSearchRequest, wait bool) (*model.SessionSnapshot, error) {
	if err := schema.ValidateWeatherSearch(req); err != nil {
		return nil, err
	}

	s, err := u.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	s.weather.Submit(req.Location)
	if !wait {
		snapshot := s.weather.Snapshot()
		return &snapshot, nil
	}

	snapshot, err := s.weather.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("天気検索の完了待ちに失敗: %w", err)
	}
	return &snapshot, nil
}

// GetWeatherState はセッションの天気検索の状態を返す
func (u *sessionUseCaseImpl) GetWeatherState(ctx context.Context, sessionID string) (*model.SessionSnapshot, error) {
	if s, err := u.lookup(sessionID); err == nil {
		snapshot := s.weather.Snapshot()
		return &snapshot, nil
	}
	return u.loadSnapshot(ctx, sessionID, model.KindWeather)
}

// PlanTrip はセッションで旅行プラン生成を開始する
func (u *sessionUseCaseImpl) PlanTrip(ctx context.Context, sessionID string, req *model.TripPlanRequest, wait bool) (*model.SessionSnapshot, error) {
	if err := schema.ValidateTripPlanRequest(req); err != nil {
		return nil, err
	}

	s, err := u.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	s.trip.Submit(req)
	if !wait {
		snapshot := s.trip.Snapshot()
		return &snapshot, nil
	}

	snapshot, err := s.trip.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("旅行プランの完了待ちに失敗: %w", err)
	}
	return &snapshot, nil
}

// GetTripState はセッションの旅行プランの状態を返す
func (u *sessionUseCaseImpl) GetTripState(ctx context.Context, sessionID string) (*model.SessionSnapshot, error) {
	if s, err := u.lookup(sessionID); err == nil {
		snapshot := s.trip.Snapshot()
		return &snapshot, nil
	}
	return u.loadSnapshot(ctx, sessionID, model.KindTrip)
}

// GenerateTips はセッションの現在の天気から天気アドバイスを生成する
func (u *sessionUseCaseImpl) GenerateTips(ctx context.Context, sessionID string, preferences string) (*model.WeatherTipsResult, error) {
	s, err := u.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	report, ok := s.weather.Result()
	if !ok || report == nil {
		return nil, ErrWeatherUnavailable
	}

	return u.tipsRepo.GenerateWeatherTips(ctx, model.NewWeatherTipsRequest(&report.Current, preferences))
}

// CloseSession はセッションを終了する
func (u *sessionUseCaseImpl) CloseSession(ctx context.Context, sessionID string) error {
	u.mu.Lock()
	s, ok := u.sessions[sessionID]
	delete(u.sessions, sessionID)
	u.mu.Unlock()

	if !ok {
		return repository.ErrSessionNotFound
	}
	s.close()
	log.Printf("👋 セッション終了: %s", sessionID)
	return nil
}

// EvictIdle は一定時間アクセスのないセッションを終了する
func (u *sessionUseCaseImpl) EvictIdle(maxIdle time.Duration) int {
	threshold := u.now().Add(-maxIdle)

	u.mu.Lock()
	var idle []*session
	for id, s := range u.sessions {
		if s.lastSeen.Before(threshold) {
			idle = append(idle, s)
			delete(u.sessions, id)
		}
	}
	u.mu.Unlock()

	for _, s := range idle {
		s.close()
	}
	if len(idle) > 0 {
		log.Printf("🧹 アイドルセッションを%d件終了しました", len(idle))
	}
	return len(idle)
}

// lookup は稼働中のセッションを取得し、最終アクセス時刻を更新する
func (u *sessionUseCaseImpl) lookup(sessionID string) (*session, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	s, ok := u.sessions[sessionID]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	s.lastSeen = u.now()
	return s, nil
}

// loadSnapshot は他のインスタンスが保存したスナップショットをストアから取得する
func (u *sessionUseCaseImpl) loadSnapshot(ctx context.Context, sessionID string, kind model.SessionKind) (*model.SessionSnapshot, error) {
	if u.sessionRepo == nil {
		return nil, repository.ErrSessionNotFound
	}
	snapshot, err := u.sessionRepo.Get(ctx, sessionID, kind)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("セッションの取得に失敗: %w", err)
	}
	return snapshot, nil
}

// saveSnapshot はオーケストレーターの状態変化をストアに書き込む
func (u *sessionUseCaseImpl) saveSnapshot(snapshot model.SessionSnapshot) {
	if u.sessionRepo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), snapshotSaveTimeout)
	defer cancel()
	if err := u.sessionRepo.Save(ctx, &snapshot); err != nil {
		log.Printf("⚠️ セッションの保存に失敗 (session: %s, kind: %s): %v", snapshot.SessionID, snapshot.Kind, err)
	}
}
