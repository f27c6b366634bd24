package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"WeatherWise-App/internal/domain/model"
	"WeatherWise-App/internal/usecase"
	"WeatherWise-App/internal/view"
)

// TripHandler は旅行プランAPIのハンドラー
type TripHandler struct {
	tripUseCase usecase.TripUseCase
}

// NewTripHandler は新しいTripHandlerインスタンスを作成
func NewTripHandler(tripUseCase usecase.TripUseCase) *TripHandler {
	return &TripHandler{
		tripUseCase: tripUseCase,
	}
}

// PostTripPlan は旅行プランを生成するエンドポイント（セッションなし）
// POST /trips/plan
func (h *TripHandler) PostTripPlan(c *gin.Context) {
	var req model.TripPlanRequest
	if !bindJSON(c, &req) {
		return
	}

	plan, err := h.tripUseCase.PlanTrip(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, model.TripFallbackMessage)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"plan": plan,
		"view": view.RenderTripPlan(plan),
	})
}
