package repository

import (
	"context"

	"WeatherWise-App/internal/domain/model"
)

// WeatherTipsGenerationRepository は天気アドバイス生成の責務を持つリポジトリインターフェース
type WeatherTipsGenerationRepository interface {
	// GenerateWeatherTips は現在の天気と好みからアドバイスを生成する
	GenerateWeatherTips(ctx context.Context, req *model.WeatherTipsRequest) (*model.WeatherTipsResult, error)
}

// TripPlanGenerationRepository は旅行プラン生成の責務を持つリポジトリインターフェース
type TripPlanGenerationRepository interface {
	// PlanTrip は出発地と目的地からルートと推定天気を含むプランを生成する
	PlanTrip(ctx context.Context, req *model.TripPlanRequest) (*model.TripPlan, error)
}
