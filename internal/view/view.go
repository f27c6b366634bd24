// Package view は状態（SessionSnapshot）から表示用のビューモデルを組み立てる純粋関数群。
// 同じスナップショットからは常に同じビューが得られ、副作用を持たない
package view

import (
	"strconv"

	"WeatherWise-App/internal/domain/model"
)

// Skeleton は読み込み中に表示するプレースホルダー
type Skeleton struct {
	Blocks []string `json:"blocks"`
}

// ErrorBanner はページ上部に表示するエラー
type ErrorBanner struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

const (
	weatherErrorTitle = "Error Fetching Weather"
	defaultErrorTitle = "Error"
)

var (
	weatherSkeletonBlocks = []string{"current-weather", "weather-details", "forecast-chart"}
	tripSkeletonBlocks    = []string{"suggested-route", "waypoints", "map"}
)

// showsSkeleton はIdleとLoadingでスケルトンを表示する
func showsSkeleton(status model.SessionStatus) bool {
	return status == model.StatusIdle || status == model.StatusLoading
}

func newSkeleton(blocks []string) *Skeleton {
	return &Skeleton{Blocks: append([]string(nil), blocks...)}
}

// formatNumber は余計な0を付けずに数値を文字列にする
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
