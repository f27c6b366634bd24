package service

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"WeatherWise-App/internal/domain/model"
	"WeatherWise-App/internal/domain/repository"
	"WeatherWise-App/internal/domain/schema"
)

// WeatherSearchService は現在の天気と予報をまとめて取得するサービス
type WeatherSearchService interface {
	Search(ctx context.Context, location string) (*model.WeatherReport, error)
}

type weatherSearchService struct {
	weatherRepo repository.WeatherRepository
}

// NewWeatherSearchService は新しいWeatherSearchServiceインスタンスを作成
func NewWeatherSearchService(weatherRepo repository.WeatherRepository) WeatherSearchService {
	return &weatherSearchService{
		weatherRepo: weatherRepo,
	}
}

// Search は現在の天気と5日間予報を並行取得する。
// どちらかが失敗した時点でもう一方はキャンセルされ、部分的な結果は返さない。
// スキーマに合わないデータも失敗として扱う
func (s *weatherSearchService) Search(ctx context.Context, location string) (*model.WeatherReport, error) {
	log.Printf("🔍 天気検索開始: %s", location)

	g, gctx := errgroup.WithContext(ctx)

	var current *model.WeatherSnapshot
	var forecast []model.ForecastDay

	g.Go(func() error {
		snapshot, err := s.weatherRepo.GetCurrentWeather(gctx, location)
		if err != nil {
			return fmt.Errorf("現在の天気の取得に失敗: %w", err)
		}
		current = snapshot
		return nil
	})

	g.Go(func() error {
		days, err := s.weatherRepo.GetForecast(gctx, location)
		if err != nil {
			return fmt.Errorf("予報の取得に失敗: %w", err)
		}
		forecast = days
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &model.WeatherReport{
		Current:  *current,
		Forecast: forecast,
	}
	if err := schema.ValidateWeatherReport(report); err != nil {
		log.Printf("❌ プロバイダーの天気データが不正です: %s: %v", location, err)
		return nil, fmt.Errorf("天気データの検証に失敗: %w", err)
	}

	log.Printf("✅ 天気検索完了: %s (%s, 予報%d日分)", location, current.ConditionText, len(forecast))
	return report, nil
}

// NewWeatherSearchTask は天気検索用のオーケストレーター処理を作成
func NewWeatherSearchTask(search WeatherSearchService) Task[string, *model.WeatherReport] {
	return Task[string, *model.WeatherReport]{
		Kind: model.KindWeather,
		Run:  search.Search,
		Describe: func(location string) string {
			return location
		},
		Attach: func(snapshot *model.SessionSnapshot, report *model.WeatherReport) {
			snapshot.Weather = report
		},
		FallbackMessage: model.WeatherFallbackMessage,
	}
}

// NewTripPlanTask は旅行プラン用のオーケストレーター処理を作成
func NewTripPlanTask(planTrip func(ctx context.Context, req *model.TripPlanRequest) (*model.TripPlan, error)) Task[*model.TripPlanRequest, *model.TripPlan] {
	return Task[*model.TripPlanRequest, *model.TripPlan]{
		Kind: model.KindTrip,
		Run:  planTrip,
		Describe: func(req *model.TripPlanRequest) string {
			return req.Origin + " → " + req.Destination
		},
		Attach: func(snapshot *model.SessionSnapshot, plan *model.TripPlan) {
			snapshot.Trip = plan
		},
		FallbackMessage: model.TripFallbackMessage,
	}
}
