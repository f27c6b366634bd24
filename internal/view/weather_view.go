package view

import (
	"time"

	"WeatherWise-App/internal/domain/model"
)

// chartDateLayout はチャートのX軸ラベル（例: "Oct 19"）
const chartDateLayout = "Jan 2"

// WeatherView は天気ページのビュー
type WeatherView struct {
	Status   model.SessionStatus `json:"status"`
	Query    string              `json:"query,omitempty"`
	Skeleton *Skeleton           `json:"skeleton,omitempty"`
	Error    *ErrorBanner        `json:"error,omitempty"`
	Current  *CurrentWeatherCard `json:"current,omitempty"`
	Forecast *ForecastChart      `json:"forecast,omitempty"`
}

// CurrentWeatherCard は現在の天気カード
type CurrentWeatherCard struct {
	LocationName  string       `json:"locationName"`
	LastUpdated   string       `json:"lastUpdated"`
	Icon          string       `json:"icon"`
	Temperature   string       `json:"temperature"`
	ConditionText string       `json:"conditionText"`
	Details       []DetailItem `json:"details"`
}

// DetailItem は詳細グリッドの1項目
type DetailItem struct {
	Icon  string `json:"icon"`
	Label string `json:"label"`
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

// ForecastChart は5日間の気温チャート
type ForecastChart struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Points      []ChartPoint `json:"points"`
}

// ChartPoint はチャートの1点
type ChartPoint struct {
	Label   string  `json:"date"`
	MaxTemp float64 `json:"maxTemp"`
	MinTemp float64 `json:"minTemp"`
	Icon    string  `json:"icon"`
}

// RenderWeather は天気検索の状態からビューを組み立てる
func RenderWeather(snapshot model.SessionSnapshot) WeatherView {
	v := WeatherView{Status: snapshot.Status, Query: snapshot.Query}

	switch {
	case showsSkeleton(snapshot.Status):
		v.Skeleton = newSkeleton(weatherSkeletonBlocks)
	case snapshot.Status == model.StatusFailed:
		v.Error = &ErrorBanner{Title: weatherErrorTitle, Message: snapshot.ErrorMessage}
	case snapshot.Status == model.StatusSuccess && snapshot.Weather != nil:
		v.Current = RenderCurrentWeather(snapshot.Weather.Current)
		v.Forecast = RenderForecastChart(snapshot.Weather.Forecast)
	}
	return v
}

// RenderCurrentWeather は現在の天気カードを組み立てる
func RenderCurrentWeather(w model.WeatherSnapshot) *CurrentWeatherCard {
	lastUpdated := ""
	if w.CapturedAtEpochMs > 0 {
		lastUpdated = time.UnixMilli(w.CapturedAtEpochMs).UTC().Format("Jan 2, 2006 3:04 PM")
	}
	return &CurrentWeatherCard{
		LocationName:  w.LocationName,
		LastUpdated:   lastUpdated,
		Icon:          ConditionIcon(w.ConditionCode),
		Temperature:   formatNumber(w.TemperatureC) + "°C",
		ConditionText: w.ConditionText,
		Details: []DetailItem{
			{Icon: IconDroplets, Label: "Humidity", Value: formatNumber(w.HumidityPct), Unit: "%"},
			{Icon: IconWind, Label: "Wind Speed", Value: formatNumber(w.WindKph), Unit: "km/h"},
			{Icon: IconGauge, Label: "Precipitation", Value: formatNumber(w.PrecipitationMm), Unit: "mm"},
		},
	}
}

// RenderForecastChart は予報をチャートの点に変換する
func RenderForecastChart(days []model.ForecastDay) *ForecastChart {
	chart := &ForecastChart{
		Title:  "5-Day Temperature Forecast",
		Points: make([]ChartPoint, 0, len(days)),
	}
	if len(days) == 0 {
		chart.Description = "No forecast data available."
		return chart
	}

	chart.Description = "Temperature trend for the next 5 days."
	for _, day := range days {
		label := day.Date
		if d, err := time.Parse(time.DateOnly, day.Date); err == nil {
			label = d.Format(chartDateLayout)
		}
		chart.Points = append(chart.Points, ChartPoint{
			Label:   label,
			MaxTemp: day.TempMaxC,
			MinTemp: day.TempMinC,
			Icon:    ConditionIcon(day.ConditionCode),
		})
	}
	return chart
}
