package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"WeatherWise-App/internal/domain/model"
	"WeatherWise-App/internal/usecase"
)

// WeatherHandler は天気APIのハンドラー
type WeatherHandler struct {
	weatherUseCase usecase.WeatherUseCase
}

// NewWeatherHandler は新しいWeatherHandlerインスタンスを作成
func NewWeatherHandler(weatherUseCase usecase.WeatherUseCase) *WeatherHandler {
	return &WeatherHandler{
		weatherUseCase: weatherUseCase,
	}
}

// GetCurrentWeather は現在の天気を返すエンドポイント
// GET /weather/current?location=
func (h *WeatherHandler) GetCurrentWeather(c *gin.Context) {
	req := &model.WeatherSearchRequest{Location: c.Query("location")}

	snapshot, err := h.weatherUseCase.GetCurrentWeather(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, model.WeatherFallbackMessage)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// GetForecast は5日間予報を返すエンドポイント
// GET /weather/forecast?location=
func (h *WeatherHandler) GetForecast(c *gin.Context) {
	req := &model.WeatherSearchRequest{Location: c.Query("location")}

	forecast, err := h.weatherUseCase.GetForecast(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, model.WeatherFallbackMessage)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"location": req.Location,
		"forecast": forecast,
	})
}

// SuggestLocations は地名候補を返すエンドポイント
// GET /locations/suggest?q=
func (h *WeatherHandler) SuggestLocations(c *gin.Context) {
	suggestions, err := h.weatherUseCase.SuggestLocations(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err, model.WeatherFallbackMessage)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"suggestions": suggestions,
	})
}

// PostWeatherTips は天気アドバイスを生成するエンドポイント
// POST /weather/tips
func (h *WeatherHandler) PostWeatherTips(c *gin.Context) {
	var req model.WeatherTipsRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.weatherUseCase.GenerateWeatherTips(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, model.TipsFallbackMessage)
		return
	}
	c.JSON(http.StatusOK, result)
}
