package usecase

import (
	"context"
	"strings"

	"WeatherWise-App/internal/domain/model"
	"WeatherWise-App/internal/domain/repository"
	"WeatherWise-App/internal/domain/schema"
)

type WeatherUseCase interface {
	// GetCurrentWeather は地点の現在の天気を取得する
	GetCurrentWeather(ctx context.Context, req *model.WeatherSearchRequest) (*model.WeatherSnapshot, error)

	// GetForecast は地点の5日間予報を取得する
	GetForecast(ctx context.Context, req *model.WeatherSearchRequest) ([]model.ForecastDay, error)

	// SuggestLocations は入力途中の地名から候補を返す
	SuggestLocations(ctx context.Context, query string) ([]model.LocationSuggestion, error)

	// GenerateWeatherTips は天気と好みからアドバイスを生成する
	GenerateWeatherTips(ctx context.Context, req *model.WeatherTipsRequest) (*model.WeatherTipsResult, error)
}

// weatherUseCaseImpl はWeatherUseCaseの実装
type weatherUseCaseImpl struct {
	weatherRepo repository.WeatherRepository
	tipsRepo    repository.WeatherTipsGenerationRepository
}

// NewWeatherUseCase は新しいWeatherUseCaseインスタンスを作成
func NewWeatherUseCase(weatherRepo repository.WeatherRepository, tipsRepo repository.WeatherTipsGenerationRepository) WeatherUseCase {
	return &weatherUseCaseImpl{
		weatherRepo: weatherRepo,
		tipsRepo:    tipsRepo,
	}
}

func (u *weatherUseCaseImpl) GetCurrentWeather(ctx context.Context, req *model.WeatherSearchRequest) (*model.WeatherSnapshot, error) {
	if err := schema.ValidateWeatherSearch(req); err != nil {
		return nil, err
	}
	return u.weatherRepo.GetCurrentWeather(ctx, req.Location)
}

func (u *weatherUseCaseImpl) GetForecast(ctx context.Context, req *model.WeatherSearchRequest) ([]model.ForecastDay, error) {
	if err := schema.ValidateWeatherSearch(req); err != nil {
		return nil, err
	}
	return u.weatherRepo.GetForecast(ctx, req.Location)
}

func (u *weatherUseCaseImpl) SuggestLocations(ctx context.Context, query string) ([]model.LocationSuggestion, error) {
	return u.weatherRepo.SuggestLocations(ctx, strings.TrimSpace(query))
}

func (u *weatherUseCaseImpl) GenerateWeatherTips(ctx context.Context, req *model.WeatherTipsRequest) (*model.WeatherTipsResult, error) {
	if err := schema.ValidateWeatherTipsRequest(req); err != nil {
		return nil, err
	}
	return u.tipsRepo.GenerateWeatherTips(ctx, req)
}
