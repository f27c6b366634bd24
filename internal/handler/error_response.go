package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"WeatherWise-App/internal/domain/model"
	"WeatherWise-App/internal/domain/repository"
	"WeatherWise-App/internal/usecase"
)

// respondError はドメインのエラーをHTTPレスポンスに変換する
func respondError(c *gin.Context, err error, fallbackMessage string) {
	var verr *model.ValidationError
	var lookupErr *model.LookupError
	var genErr *model.GenerationError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "バリデーションエラー",
			"fields": verr.Fields,
		})
	case errors.As(err, &lookupErr):
		c.JSON(http.StatusNotFound, gin.H{
			"error": lookupErr.Message,
		})
	case errors.As(err, &genErr):
		log.Printf("❌ 生成エラー: %v", genErr)
		c.JSON(http.StatusBadGateway, gin.H{
			"error": model.GenerationFailedMessage,
		})
	case errors.Is(err, repository.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "セッションが見つかりません（有効期限切れまたは無効なID）",
		})
	case errors.Is(err, usecase.ErrWeatherUnavailable):
		c.JSON(http.StatusConflict, gin.H{
			"error": model.TipsUnavailableMessage,
		})
	default:
		log.Printf("❌ 予期しないエラー: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": fallbackMessage,
		})
	}
}

// bindJSON はリクエストボディをバインドし、失敗時は400を返してfalseを返す
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return false
	}
	return true
}
