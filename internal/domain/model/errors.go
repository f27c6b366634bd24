package model

import (
	"fmt"
	"strings"
)

// FieldError は1つのフィールドで失敗したルール
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError はスキーマ検証エラーを表す
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasField は指定フィールドのエラーが含まれるかを判定する
func (e *ValidationError) HasField(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// LookupError は地点の天気を解決できなかったことを表す
type LookupError struct {
	Location string
	Message  string
}

func (e *LookupError) Error() string {
	return e.Message
}

// GenerationError は生成モデルが有効な出力を返さなかったことを表す
type GenerationError struct {
	Flow string // "weatherTips" / "planTrip"
	Err  error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: model produced no output", e.Flow)
	}
	return fmt.Sprintf("%s: %v", e.Flow, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// ユーザー向けのエラーメッセージ
const (
	LookupFailedMessage     = "Failed to fetch weather data for this location."
	WeatherFallbackMessage  = "Failed to fetch weather data. Please try a different location or check your connection."
	TripFallbackMessage     = "Failed to generate trip plan. Please try again."
	TipsFallbackMessage     = "Failed to generate AI weather tips. Please try again."
	GenerationFailedMessage = "The AI assistant could not produce a result. Please try again."
	TipsUnavailableMessage  = "Weather data is not available to generate tips."
)
