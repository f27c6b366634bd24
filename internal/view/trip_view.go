package view

import (
	"strings"

	"WeatherWise-App/internal/domain/model"
)

// TripView は旅行プランナーのビュー
type TripView struct {
	Status           model.SessionStatus `json:"status"`
	Query            string              `json:"query,omitempty"`
	Skeleton         *Skeleton           `json:"skeleton,omitempty"`
	Error            *ErrorBanner        `json:"error,omitempty"`
	SuggestedRoute   *RouteCard          `json:"suggestedRoute,omitempty"`
	AlternativeRoute *RouteCard          `json:"alternativeRoute,omitempty"`
	GeneralAdvice    []string            `json:"generalAdvice,omitempty"`
	Map              *MapView            `json:"map,omitempty"`
}

// RouteCard はルート1本分のカード
type RouteCard struct {
	Title         string         `json:"title"`
	Summary       string         `json:"summary"`
	TotalDistance string         `json:"totalDistance"`
	TotalDuration string         `json:"totalDuration"`
	MapImage      *MapImage      `json:"mapImage,omitempty"`
	Waypoints     []WaypointItem `json:"waypoints"`
}

// MapImage はプレースホルダーの地図画像
type MapImage struct {
	URL  string `json:"url"`
	Alt  string `json:"alt"`
	Hint string `json:"hint"`
}

// WaypointItem はアコーディオンの1行
type WaypointItem struct {
	Index          int    `json:"index"`
	LocationName   string `json:"locationName"`
	Instruction    string `json:"instruction"`
	DistanceToNext string `json:"distanceToNext,omitempty"`
	WeatherIcon    string `json:"weatherIcon"`
	Condition      string `json:"condition"`
	Temperature    string `json:"temperature"`
}

const (
	suggestedRouteTitle   = "Suggested Route"
	alternativeRouteTitle = "Alternative Route"
)

// RenderTrip は旅行プランの状態からビューを組み立てる
func RenderTrip(snapshot model.SessionSnapshot) TripView {
	v := TripView{Status: snapshot.Status, Query: snapshot.Query}

	switch {
	case showsSkeleton(snapshot.Status):
		v.Skeleton = newSkeleton(tripSkeletonBlocks)
	case snapshot.Status == model.StatusFailed:
		v.Error = &ErrorBanner{Title: defaultErrorTitle, Message: snapshot.ErrorMessage}
	case snapshot.Status == model.StatusSuccess && snapshot.Trip != nil:
		renderPlan(&v, snapshot.Trip)
	}
	return v
}

// RenderTripPlan はセッションを介さずにプランを描画する
func RenderTripPlan(plan *model.TripPlan) TripView {
	v := TripView{Status: model.StatusSuccess}
	renderPlan(&v, plan)
	return v
}

func renderPlan(v *TripView, plan *model.TripPlan) {
	v.SuggestedRoute = RenderRoute(plan.SuggestedRoute, suggestedRouteTitle, model.DefaultSuggestedRouteHint)
	v.AlternativeRoute = RenderRoute(plan.AlternativeRoute, alternativeRouteTitle, model.DefaultAlternativeRouteHint)
	if len(plan.GeneralAdvice) > 0 {
		v.GeneralAdvice = append([]string(nil), plan.GeneralAdvice...)
	}
	m := DefaultMapView()
	v.Map = &m
}

// RenderRoute はルートカードを組み立てる。routeがnilならnil
func RenderRoute(route *model.RouteSuggestion, title, defaultHint string) *RouteCard {
	if route == nil {
		return nil
	}

	card := &RouteCard{
		Title:         title,
		Summary:       route.Summary,
		TotalDistance: route.TotalDistance,
		TotalDuration: route.TotalDuration,
		Waypoints:     make([]WaypointItem, 0, len(route.Waypoints)),
	}

	if route.MapImageURL != "" {
		hint := strings.TrimSpace(route.MapImageHint)
		if hint == "" {
			hint = defaultHint
		}
		card.MapImage = &MapImage{URL: route.MapImageURL, Alt: "Map for " + title, Hint: hint}
	}

	for i, wp := range route.Waypoints {
		card.Waypoints = append(card.Waypoints, WaypointItem{
			Index:          i + 1,
			LocationName:   wp.LocationName,
			Instruction:    wp.Instruction,
			DistanceToNext: wp.DistanceToNext,
			WeatherIcon:    WaypointWeatherIcon(wp.EstimatedWeather.Condition),
			Condition:      wp.EstimatedWeather.Condition,
			Temperature:    wp.EstimatedWeather.Temperature,
		})
	}
	return card
}
