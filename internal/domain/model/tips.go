package model

import "strings"

// WeatherTipsRequest は天気アドバイス生成の入力
type WeatherTipsRequest struct {
	Location     string   `json:"location" validate:"required"`
	TemperatureC *float64 `json:"temperature" validate:"required,finite"` // 未指定と0°Cを区別するためポインタ
	Condition    string   `json:"condition" validate:"required"`
	HumidityPct  *float64 `json:"humidity" validate:"required,finite"`
	WindKph      *float64 `json:"windSpeed" validate:"required,finite"`
	Preferences  string   `json:"preferences,omitempty"`
}

// Normalize は前後の空白を取り除く
func (r *WeatherTipsRequest) Normalize() {
	r.Location = strings.TrimSpace(r.Location)
	r.Condition = strings.TrimSpace(r.Condition)
	r.Preferences = strings.TrimSpace(r.Preferences)
}

// NewWeatherTipsRequest は現在の天気からアドバイス生成リクエストを作成する
func NewWeatherTipsRequest(snapshot *WeatherSnapshot, preferences string) *WeatherTipsRequest {
	return &WeatherTipsRequest{
		Location:     snapshot.LocationName,
		TemperatureC: Float64(snapshot.TemperatureC),
		Condition:    snapshot.ConditionText,
		HumidityPct:  Float64(snapshot.HumidityPct),
		WindKph:      Float64(snapshot.WindKph),
		Preferences:  preferences,
	}
}

// Float64 は数値のポインタを返す
func Float64(v float64) *float64 {
	return &v
}

// WeatherTipsResult は生成された天気アドバイス
type WeatherTipsResult struct {
	Tips []string `json:"tips" validate:"required,min=1,dive,required"`
}
