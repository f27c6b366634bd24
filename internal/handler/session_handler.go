package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"WeatherWise-App/internal/domain/model"
	"WeatherWise-App/internal/usecase"
	"WeatherWise-App/internal/view"
)

// SessionHandler はページ単位の状態（セッション）APIのハンドラー
type SessionHandler struct {
	sessionUseCase usecase.SessionUseCase
}

// NewSessionHandler は新しいSessionHandlerインスタンスを作成
func NewSessionHandler(sessionUseCase usecase.SessionUseCase) *SessionHandler {
	return &SessionHandler{
		sessionUseCase: sessionUseCase,
	}
}

// sessionTipsRequest はセッションの天気からアドバイスを生成するリクエスト
type sessionTipsRequest struct {
	Preferences string `json:"preferences"`
}

// PostSession はセッションを作成し、デフォルト地点の検索を開始するエンドポイント
// POST /sessions
func (h *SessionHandler) PostSession(c *gin.Context) {
	snapshot, err := h.sessionUseCase.CreateSession(c.Request.Context())
	if err != nil {
		respondError(c, err, model.WeatherFallbackMessage)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"session_id": snapshot.SessionID,
		"weather":    view.RenderWeather(*snapshot),
	})
}

// GetWeather はセッションの天気ビューを返すエンドポイント
// GET /sessions/:id/weather
func (h *SessionHandler) GetWeather(c *gin.Context) {
	snapshot, err := h.sessionUseCase.GetWeatherState(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, model.WeatherFallbackMessage)
		return
	}
	c.JSON(http.StatusOK, view.RenderWeather(*snapshot))
}

// PostWeatherSearch は天気検索を送信するエンドポイント
// POST /sessions/:id/weather/search?wait=true
func (h *SessionHandler) PostWeatherSearch(c *gin.Context) {
	var req model.WeatherSearchRequest
	if !bindJSON(c, &req) {
		return
	}

	snapshot, err := h.sessionUseCase.SearchWeather(c.Request.Context(), c.Param("id"), &req, wantsWait(c))
	if err != nil {
		respondError(c, err, model.WeatherFallbackMessage)
		return
	}
	c.JSON(statusFor(snapshot), view.RenderWeather(*snapshot))
}

// PostWeatherTips はセッションの現在の天気からアドバイスを生成するエンドポイント
// POST /sessions/:id/weather/tips
func (h *SessionHandler) PostWeatherTips(c *gin.Context) {
	var req sessionTipsRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	result, err := h.sessionUseCase.GenerateTips(c.Request.Context(), c.Param("id"), req.Preferences)
	if err != nil {
		respondError(c, err, model.TipsFallbackMessage)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetTrip はセッションの旅行プランビューを返すエンドポイント
// GET /sessions/:id/trip
func (h *SessionHandler) GetTrip(c *gin.Context) {
	snapshot, err := h.sessionUseCase.GetTripState(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, model.TripFallbackMessage)
		return
	}
	c.JSON(http.StatusOK, view.RenderTrip(*snapshot))
}

// PostTripPlan は旅行プラン生成を送信するエンドポイント
// POST /sessions/:id/trip/plan?wait=true
func (h *SessionHandler) PostTripPlan(c *gin.Context) {
	var req model.TripPlanRequest
	if !bindJSON(c, &req) {
		return
	}

	snapshot, err := h.sessionUseCase.PlanTrip(c.Request.Context(), c.Param("id"), &req, wantsWait(c))
	if err != nil {
		respondError(c, err, model.TripFallbackMessage)
		return
	}
	c.JSON(statusFor(snapshot), view.RenderTrip(*snapshot))
}

// DeleteSession はセッションを終了するエンドポイント
// DELETE /sessions/:id
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	if err := h.sessionUseCase.CloseSession(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "セッションの終了に失敗しました")
		return
	}
	c.Status(http.StatusNoContent)
}

func wantsWait(c *gin.Context) bool {
	wait, err := strconv.ParseBool(c.DefaultQuery("wait", "false"))
	return err == nil && wait
}

// statusFor は処理中なら202、完了していれば200を返す
func statusFor(snapshot *model.SessionSnapshot) int {
	if snapshot.Status == model.StatusLoading {
		return http.StatusAccepted
	}
	return http.StatusOK
}
