package model

import "strings"

// ConditionCode は天気状態のコード
type ConditionCode string

const (
	ConditionSunny        ConditionCode = "sunny"
	ConditionCloudy       ConditionCode = "cloudy"
	ConditionPartlyCloudy ConditionCode = "partly-cloudy"
	ConditionRainy        ConditionCode = "rainy"
	ConditionSnowy        ConditionCode = "snowy"
	ConditionThunderstorm ConditionCode = "thunderstorm"
	ConditionWindy        ConditionCode = "windy"
	ConditionFoggy        ConditionCode = "foggy"
	ConditionUnknown      ConditionCode = "unknown"
)

// AllConditionCodes は有効な天気コードの一覧を返す
func AllConditionCodes() []ConditionCode {
	return []ConditionCode{
		ConditionSunny,
		ConditionCloudy,
		ConditionPartlyCloudy,
		ConditionRainy,
		ConditionSnowy,
		ConditionThunderstorm,
		ConditionWindy,
		ConditionFoggy,
		ConditionUnknown,
	}
}

// IsValid は定義済みの天気コードかどうかを判定する
func (c ConditionCode) IsValid() bool {
	for _, code := range AllConditionCodes() {
		if c == code {
			return true
		}
	}
	return false
}

// WeatherSnapshot は検索時点の現在の天気
type WeatherSnapshot struct {
	LocationName      string        `json:"locationName" firestore:"locationName" validate:"required"`
	TemperatureC      float64       `json:"temperature" firestore:"temperature" validate:"finite"`
	HumidityPct       float64       `json:"humidity" firestore:"humidity" validate:"finite,min=0,max=100"`
	WindKph           float64       `json:"windSpeed" firestore:"windSpeed" validate:"finite,min=0"`
	PrecipitationMm   float64       `json:"precipitation" firestore:"precipitation" validate:"finite,min=0"`
	ConditionCode     ConditionCode `json:"conditionCode" firestore:"conditionCode" validate:"condition"`
	ConditionText     string        `json:"conditionText" firestore:"conditionText"`
	CapturedAtEpochMs int64         `json:"timestamp" firestore:"timestamp"`
}

// ForecastDay は1日分の予報
type ForecastDay struct {
	Date          string        `json:"date" firestore:"date" validate:"required,datetime=2006-01-02"` // YYYY-MM-DD
	TempMaxC      float64       `json:"temp_max" firestore:"temp_max" validate:"finite"`
	TempMinC      float64       `json:"temp_min" firestore:"temp_min" validate:"finite"`
	ConditionCode ConditionCode `json:"conditionCode" firestore:"conditionCode" validate:"condition"`
	ConditionText string        `json:"conditionText" firestore:"conditionText"`
}

// ForecastDays は予報の日数
const ForecastDays = 5

// LocationSuggestion は地名の候補
type LocationSuggestion struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

// WeatherSearchRequest は天気検索フォームの入力
type WeatherSearchRequest struct {
	Location string `json:"location" validate:"min=2"`
}

// Normalize は前後の空白を取り除く
func (r *WeatherSearchRequest) Normalize() {
	r.Location = strings.TrimSpace(r.Location)
}

// WeatherReport は1回の検索で得られる現在の天気と予報の組
type WeatherReport struct {
	Current  WeatherSnapshot `json:"current" firestore:"current"`
	Forecast []ForecastDay   `json:"forecast" firestore:"forecast"`
}
