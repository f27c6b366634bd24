package model

import (
	"fmt"
	"strings"
)

// TripPlanRequest は旅行プランナーフォームの入力
type TripPlanRequest struct {
	Origin      string `json:"origin" validate:"required"`      // 出発地
	Destination string `json:"destination" validate:"required"` // 目的地
	TravelDate  string `json:"travelDate,omitempty"`            // 任意："tomorrow", "2024-12-25" など自由形式
}

// Normalize は前後の空白を取り除く
func (r *TripPlanRequest) Normalize() {
	r.Origin = strings.TrimSpace(r.Origin)
	r.Destination = strings.TrimSpace(r.Destination)
	r.TravelDate = strings.TrimSpace(r.TravelDate)
}

// EstimatedWeather はウェイポイントの推定天気（モデルが生成する自由記述）
type EstimatedWeather struct {
	Condition   string `json:"condition" firestore:"condition" validate:"required"`
	Temperature string `json:"temperature" firestore:"temperature" validate:"required"` // 単位付き 例: "22°C"
}

// TripWaypoint はルート上の区間
type TripWaypoint struct {
	LocationName     string           `json:"locationName" firestore:"locationName" validate:"required"`
	Instruction      string           `json:"instruction" firestore:"instruction" validate:"required"`
	DistanceToNext   string           `json:"distanceToNext,omitempty" firestore:"distanceToNext,omitempty"`
	EstimatedWeather EstimatedWeather `json:"estimatedWeather" firestore:"estimatedWeather"`
}

// RouteSuggestion はルート提案
type RouteSuggestion struct {
	Summary       string         `json:"summary" firestore:"summary" validate:"required"`
	TotalDistance string         `json:"totalDistance" firestore:"totalDistance" validate:"required"`
	TotalDuration string         `json:"totalDuration" firestore:"totalDuration" validate:"required"`
	Waypoints     []TripWaypoint `json:"waypoints" firestore:"waypoints" validate:"required,min=1,dive"`
	MapImageURL   string         `json:"mapImageUrl" firestore:"mapImageUrl" validate:"required,url"`
	MapImageHint  string         `json:"mapImageHint" firestore:"mapImageHint" validate:"maxwords=2"`
}

// TripPlan は旅行プラン全体
type TripPlan struct {
	SuggestedRoute   *RouteSuggestion `json:"suggestedRoute" firestore:"suggestedRoute" validate:"required"`
	AlternativeRoute *RouteSuggestion `json:"alternativeRoute,omitempty" firestore:"alternativeRoute,omitempty" validate:"omitempty"`
	GeneralAdvice    []string         `json:"generalAdvice,omitempty" firestore:"generalAdvice,omitempty"`
}

// 地図画像ヒントのデフォルト値
const (
	DefaultSuggestedRouteHint   = "route map"
	DefaultAlternativeRouteHint = "alternate route"
)

// プレースホルダー地図画像の設定
const (
	MapImageHost          = "placehold.co"
	DefaultMapImageWidth  = 600
	WideMapImageWidth     = 800
	DefaultMapImageHeight = 400
)

// MapImageURL はプレースホルダー地図画像のURLを組み立てる（クエリなし）
func MapImageURL(width, height int) string {
	return fmt.Sprintf("https://%s/%dx%d.png", MapImageHost, width, height)
}
