package repository

import (
	"context"

	"WeatherWise-App/internal/domain/model"
)

// WeatherRepository は天気データ取得の責務を持つリポジトリインターフェース
type WeatherRepository interface {
	// GetCurrentWeather は地点の現在の天気を取得する
	GetCurrentWeather(ctx context.Context, location string) (*model.WeatherSnapshot, error)

	// GetForecast は今日から5日分の予報を日付の昇順で取得する
	GetForecast(ctx context.Context, location string) ([]model.ForecastDay, error)

	// SuggestLocations は入力途中の文字列から地名候補を最大5件返す
	SuggestLocations(ctx context.Context, query string) ([]model.LocationSuggestion, error)
}
